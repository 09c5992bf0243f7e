package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chainvoice/backend/internal/entity"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/service.go -package=mocks

type Repository interface {
	CreateInvoice(ctx context.Context, inv entity.Invoice) (entity.Invoice, error)
	InvoicesByRecipient(ctx context.Context, recipientAddress string) ([]entity.Invoice, error)
	InvoicesByPending(ctx context.Context, isPending bool) ([]entity.Invoice, error)
	ApplyPayment(ctx context.Context, invoiceID int64, amount decimal.Decimal, senderAddress, txHash string, now time.Time) (entity.Invoice, int64, error)
	DriftedInvoiceIDs(ctx context.Context) ([]int64, error)
}

type Mailer interface {
	SendMessage(subject, message string, recipients []string) error
}

type Producer interface {
	SendPaymentRecorded(ctx context.Context, invoiceID, paymentID int64, amount, remaining decimal.Decimal, settled bool, txHash string)
}

type Service struct {
	repo              Repository
	mailer            Mailer
	producer          Producer
	collectionAddress string
	invoiceBaseURL    string
}

func New(repo Repository, mailer Mailer, producer Producer, collectionAddress, invoiceBaseURL string) *Service {
	return &Service{
		repo:              repo,
		mailer:            mailer,
		producer:          producer,
		collectionAddress: collectionAddress,
		invoiceBaseURL:    invoiceBaseURL,
	}
}

// CreateInvoice persists a new pending invoice and mails a notification to
// the company contact. A notification failure fails the whole call even
// though the row is already committed, matching the behavior callers rely on.
func (s *Service) CreateInvoice(ctx context.Context, inv entity.Invoice) (entity.Invoice, error) {
	if inv.CollectionAddress == "" {
		inv.CollectionAddress = s.collectionAddress
	}

	err := validateNewInvoice(inv)
	if err != nil {
		return entity.Invoice{}, err
	}

	now := time.Now()

	inv.IsPending = true
	inv.CreatedAt = now
	inv.UpdatedAt = now

	inv, err = s.repo.CreateInvoice(ctx, inv)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("create invoice: %w", err)
	}

	subject := "Invoice Created"
	message := fmt.Sprintf("An invoice has been created. View it here: %s/invoice/%d", s.invoiceBaseURL, inv.ID)

	err = s.mailer.SendMessage(subject, message, []string{inv.CompanyEmail})
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("%w: invoice %d created but email to %q not sent: %s",
			entity.ErrNotificationFailed, inv.ID, inv.CompanyEmail, err)
	}

	slog.InfoContext(ctx, "invoice created",
		"invoice_id", inv.ID,
		"recipient", inv.RecipientAddress,
		"payment_due", inv.PaymentDue,
		"currency", inv.Cryptocurrency,
	)

	return inv, nil
}

func (s *Service) InvoicesByRecipient(ctx context.Context, recipientAddress string) ([]entity.Invoice, error) {
	if recipientAddress == "" {
		return nil, fmt.Errorf("%w: recipient address is required", entity.ErrInvalidArgument)
	}

	invoices, err := s.repo.InvoicesByRecipient(ctx, recipientAddress)
	if err != nil {
		return nil, fmt.Errorf("get invoices for recipient %q: %w", recipientAddress, err)
	}

	return invoices, nil
}

func (s *Service) PendingInvoices(ctx context.Context) ([]entity.Invoice, error) {
	invoices, err := s.repo.InvoicesByPending(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("get pending invoices: %w", err)
	}

	return invoices, nil
}

func (s *Service) CompletedInvoices(ctx context.Context) ([]entity.Invoice, error) {
	invoices, err := s.repo.InvoicesByPending(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("get completed invoices: %w", err)
	}

	return invoices, nil
}

// RecordPayment applies a client-reported on-chain payment to an invoice.
// The amount arrives as a raw string so that an empty or non-numeric value
// surfaces as ErrInvalidAmount rather than a decode failure.
func (s *Service) RecordPayment(
	ctx context.Context,
	invoiceID int64,
	rawAmount string,
	senderAddress string,
	txHash string,
) (entity.Invoice, int64, error) {
	err := validatePayment(senderAddress, txHash)
	if err != nil {
		return entity.Invoice{}, 0, err
	}

	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return entity.Invoice{}, 0, fmt.Errorf("%w: amount %q is not a number", entity.ErrInvalidAmount, rawAmount)
	}

	if !amount.IsPositive() {
		return entity.Invoice{}, 0, fmt.Errorf("%w: amount %s must be positive", entity.ErrInvalidAmount, amount)
	}

	// Amounts finer than the stored scale would record a rounded payment
	// that no longer matches the balance decrement.
	if !amount.Equal(amount.Round(entity.AmountScale)) {
		return entity.Invoice{}, 0, fmt.Errorf("%w: amount %s has more than %d decimal places",
			entity.ErrInvalidAmount, amount, entity.AmountScale)
	}

	inv, paymentID, err := s.repo.ApplyPayment(ctx, invoiceID, amount, senderAddress, txHash, time.Now())
	if err != nil {
		return entity.Invoice{}, 0, fmt.Errorf("apply payment to invoice %d: %w", invoiceID, err)
	}

	remaining := decimal.RequireFromString(inv.PaymentDue)

	s.producer.SendPaymentRecorded(ctx, inv.ID, paymentID, amount, remaining, !inv.IsPending, txHash)

	slog.InfoContext(ctx, "payment recorded",
		"invoice_id", inv.ID,
		"payment_id", paymentID,
		"amount", amount.StringFixed(entity.AmountScale),
		"remaining", inv.PaymentDue,
		"settled", !inv.IsPending,
	)

	return inv, paymentID, nil
}

// AuditBalances logs invoices whose denormalized balance drifted from the
// pending-flag invariant. Read-only; drift means something wrote outside the
// reconciliation transaction and needs a human.
func (s *Service) AuditBalances(ctx context.Context) error {
	ids, err := s.repo.DriftedInvoiceIDs(ctx)
	if err != nil {
		return fmt.Errorf("find drifted invoices: %w", err)
	}

	if len(ids) > 0 {
		slog.WarnContext(ctx, "invoice balance drift detected", "invoice_ids", ids)
	}

	return nil
}
