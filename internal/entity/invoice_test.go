package entity_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/chainvoice/backend/internal/entity"
)

func TestInvoice_RemainingAfter(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name          string
		paymentDue    string
		amount        string
		wantRemaining string
		wantErr       error
	}{
		{
			name:          "partial payment",
			paymentDue:    "100.00000",
			amount:        "60",
			wantRemaining: "40",
		},
		{
			name:          "exact settlement",
			paymentDue:    "40.00000",
			amount:        "40",
			wantRemaining: "0",
		},
		{
			name:          "opaque creation-time balance",
			paymentDue:    "100",
			amount:        "0.5",
			wantRemaining: "99.5",
		},
		{
			name:          "fractional amounts",
			paymentDue:    "1.23456",
			amount:        "1.2",
			wantRemaining: "0.03456",
		},
		{
			name:          "sub-scale stored balance settles",
			paymentDue:    "100.000004",
			amount:        "100",
			wantRemaining: "0",
		},
		{
			name:          "sub-scale remainder rounds up",
			paymentDue:    "100.000006",
			amount:        "100",
			wantRemaining: "0.00001",
		},
		{
			name:       "overpayment",
			paymentDue: "0.00000",
			amount:     "1",
			wantErr:    entity.ErrOverpayment,
		},
		{
			name:       "overpayment by a hair",
			paymentDue: "10",
			amount:     "10.00001",
			wantErr:    entity.ErrOverpayment,
		},
		{
			name:       "unparseable stored balance",
			paymentDue: "a lot",
			amount:     "1",
			wantErr:    entity.ErrInvalidAmount,
		},
		{
			name:       "empty stored balance",
			paymentDue: "",
			amount:     "1",
			wantErr:    entity.ErrInvalidAmount,
		},
	} {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			inv := entity.Invoice{PaymentDue: tt.paymentDue}

			remaining, err := inv.RemainingAfter(decimal.RequireFromString(tt.amount))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("RemainingAfter() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("RemainingAfter() unexpected error: %v", err)
			}

			if remaining.String() != tt.wantRemaining {
				t.Errorf("RemainingAfter() = %s, want %s", remaining, tt.wantRemaining)
			}
		})
	}
}
