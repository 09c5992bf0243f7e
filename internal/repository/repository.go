package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/chainvoice/backend/internal/entity"
)

type Repository struct {
	db *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{
		db: pool,
	}
}

func (r *Repository) CreateInvoice(ctx context.Context, inv entity.Invoice) (entity.Invoice, error) {
	const q = `
	INSERT INTO invoices (
		recipient_address,
		collection_address,
		company_name,
		cryptocurrency,
		due_date,
		description,
		company_email,
		category,
		payment_due,
		is_pending,
		created_at,
		updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		q,
		inv.RecipientAddress,
		inv.CollectionAddress,
		inv.CompanyName,
		inv.Cryptocurrency,
		inv.DueDate,
		inv.Description,
		inv.CompanyEmail,
		inv.Category,
		inv.PaymentDue,
		inv.IsPending,
		inv.CreatedAt,
		inv.UpdatedAt,
	).Scan(&inv.ID)
	if err != nil {
		return entity.Invoice{}, err
	}

	return inv, nil
}

func (r *Repository) Invoice(ctx context.Context, id int64) (entity.Invoice, error) {
	q := selectInvoice + " WHERE id = $1"
	return scanInvoice(r.db.QueryRow(ctx, q, id))
}

// InvoicesByRecipient matches the recipient wallet address case-insensitively:
// hex addresses arrive with whatever casing the wallet or the user produced.
func (r *Repository) InvoicesByRecipient(ctx context.Context, recipientAddress string) ([]entity.Invoice, error) {
	stmt := sq.Select(invoiceColumns...).
		From("invoices").
		Where(sq.Expr("LOWER(recipient_address) = LOWER(?)", recipientAddress)).
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar)

	return r.selectInvoices(ctx, stmt)
}

func (r *Repository) InvoicesByPending(ctx context.Context, isPending bool) ([]entity.Invoice, error) {
	stmt := sq.Select(invoiceColumns...).
		From("invoices").
		Where(sq.Eq{"is_pending": isPending}).
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar)

	return r.selectInvoices(ctx, stmt)
}

func (r *Repository) selectInvoices(ctx context.Context, stmt sq.SelectBuilder) ([]entity.Invoice, error) {
	sql, args, err := stmt.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := make([]entity.Invoice, 0)

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}

		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}

// ApplyPayment runs the reconciliation transaction: it locks the invoice row,
// validates the proposed amount against the remaining balance, rewrites the
// balance and appends a payment record. Either both writes commit or neither
// does; concurrent calls against the same invoice serialize on the row lock,
// so a stale balance can never approve an overdraw.
func (r *Repository) ApplyPayment(
	ctx context.Context,
	invoiceID int64,
	amount decimal.Decimal,
	senderAddress string,
	txHash string,
	now time.Time,
) (entity.Invoice, int64, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return entity.Invoice{}, 0, fmt.Errorf("begin tx: %w", err)
	}

	defer func() { _ = tx.Rollback(ctx) }()

	inv, err := scanInvoice(tx.QueryRow(ctx, selectInvoice+" WHERE id = $1 FOR UPDATE", invoiceID))
	if err != nil {
		return entity.Invoice{}, 0, err
	}

	remaining, err := inv.RemainingAfter(amount)
	if err != nil {
		return entity.Invoice{}, 0, err
	}

	inv.PaymentDue = remaining.StringFixed(entity.AmountScale)
	inv.IsPending = remaining.IsPositive()
	inv.UpdatedAt = now

	const updateInvoice = `UPDATE invoices SET payment_due = $1, is_pending = $2, updated_at = $3 WHERE id = $4`

	_, err = tx.Exec(ctx, updateInvoice, inv.PaymentDue, inv.IsPending, inv.UpdatedAt, invoiceID)
	if err != nil {
		return entity.Invoice{}, 0, fmt.Errorf("update invoice balance: %w", err)
	}

	const insertPayment = `
	INSERT INTO payments (sender_address, recipient_address, amount_paid, paid_at, invoice_id, tx_hash)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id
	`

	var paymentID int64

	err = tx.QueryRow(
		ctx,
		insertPayment,
		senderAddress,
		inv.CollectionAddress,
		amount.StringFixed(entity.AmountScale),
		now,
		invoiceID,
		txHash,
	).Scan(&paymentID)
	if err != nil {
		return entity.Invoice{}, 0, fmt.Errorf("insert payment: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return entity.Invoice{}, 0, fmt.Errorf("commit tx: %w", err)
	}

	return inv, paymentID, nil
}

func (r *Repository) PaymentsByInvoice(ctx context.Context, invoiceID int64) (payments []entity.Payment, err error) {
	q := selectPayment + " WHERE invoice_id = $1 ORDER BY id ASC"

	rows, err := r.db.Query(ctx, q, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p entity.Payment

		err = rows.Scan(
			&p.ID,
			&p.SenderAddress,
			&p.RecipientAddress,
			&p.AmountPaid,
			&p.PaidAt,
			&p.InvoiceID,
			&p.TxHash,
		)
		if err != nil {
			return nil, err
		}

		payments = append(payments, p)
	}

	return payments, rows.Err()
}

// DriftedInvoiceIDs reports invoices whose stored pending flag or balance
// violates the balance invariants. The reconciliation transaction is the only
// writer, so a non-empty result means writes happened outside it.
func (r *Repository) DriftedInvoiceIDs(ctx context.Context) (ids []int64, err error) {
	const q = `
	SELECT id FROM invoices
	WHERE payment_due ~ '^-?[0-9]+(\.[0-9]+)?$'
	  AND (payment_due::numeric < 0 OR is_pending <> (payment_due::numeric > 0))
	ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64

		err = rows.Scan(&id)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func scanInvoice(row pgx.Row) (inv entity.Invoice, err error) {
	err = row.Scan(
		&inv.ID,
		&inv.RecipientAddress,
		&inv.CollectionAddress,
		&inv.CompanyName,
		&inv.Cryptocurrency,
		&inv.DueDate,
		&inv.Description,
		&inv.CompanyEmail,
		&inv.Category,
		&inv.PaymentDue,
		&inv.IsPending,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Invoice{}, entity.ErrNotFound
		}

		return entity.Invoice{}, err
	}

	return inv, nil
}
