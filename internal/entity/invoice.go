package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits kept on every amount the
// service writes: the invoice's remaining balance and recorded payments.
const AmountScale int32 = 5

type Invoice struct {
	ID                int64
	RecipientAddress  string
	CollectionAddress string
	CompanyName       string
	Cryptocurrency    string
	DueDate           time.Time
	Description       string
	CompanyEmail      string
	Category          string
	PaymentDue        string // Remaining balance. Opaque string until the first payment.
	IsPending         bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RemainingAfter returns the balance left on the invoice once amount is
// applied, rounded to AmountScale. PaymentDue is stored as submitted at
// creation, so it may turn out to be unparseable only here, and it may carry
// more fractional digits than the scale the balance is rewritten at.
func (i Invoice) RemainingAfter(amount decimal.Decimal) (decimal.Decimal, error) {
	due, err := decimal.NewFromString(i.PaymentDue)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: payment due %q is not a number", ErrInvalidAmount, i.PaymentDue)
	}

	remaining := due.Sub(amount)
	if remaining.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: amount %s exceeds remaining balance %s", ErrOverpayment, amount, due)
	}

	// The rewritten balance and the pending flag must be derived from the
	// same value, so any sub-scale remainder is rounded away here rather
	// than at formatting time.
	return remaining.Round(AmountScale), nil
}
