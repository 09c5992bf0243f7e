package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID               int64
	SenderAddress    string
	RecipientAddress string // The invoice's collection address, not its logical recipient.
	AmountPaid       decimal.Decimal
	PaidAt           time.Time
	InvoiceID        int64
	TxHash           string
}
