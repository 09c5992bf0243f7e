package repository

const (
	selectInvoice = `SELECT
		id,
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
	FROM invoices`

	selectPayment = `SELECT
		id,
		sender_address,
		recipient_address,
		amount_paid,
		paid_at,
		invoice_id,
		tx_hash
	FROM payments`
)

var invoiceColumns = []string{
	"id",
	"recipient_address",
	"collection_address",
	"company_name",
	"cryptocurrency",
	"due_date",
	"description",
	"company_email",
	"category",
	"payment_due",
	"is_pending",
	"created_at",
	"updated_at",
}
