package service

import (
	"fmt"

	"github.com/chainvoice/backend/internal/entity"
)

func validateNewInvoice(inv entity.Invoice) error { //nolint:cyclop
	if inv.RecipientAddress == "" {
		return fmt.Errorf("%w: recipient address is required", entity.ErrInvalidArgument)
	}

	if inv.CollectionAddress == "" {
		return fmt.Errorf("%w: collection address is required", entity.ErrInvalidArgument)
	}

	if inv.CompanyName == "" {
		return fmt.Errorf("%w: company name is required", entity.ErrInvalidArgument)
	}

	if inv.Cryptocurrency == "" {
		return fmt.Errorf("%w: cryptocurrency is required", entity.ErrInvalidArgument)
	}

	if inv.DueDate.IsZero() {
		return fmt.Errorf("%w: due date is required", entity.ErrInvalidArgument)
	}

	if inv.Description == "" {
		return fmt.Errorf("%w: description is required", entity.ErrInvalidArgument)
	}

	if inv.CompanyEmail == "" {
		return fmt.Errorf("%w: company email is required", entity.ErrInvalidArgument)
	}

	if inv.Category == "" {
		return fmt.Errorf("%w: category is required", entity.ErrInvalidArgument)
	}

	// Accepted as an opaque string: stored as-is, parsed only at payment time.
	if inv.PaymentDue == "" {
		return fmt.Errorf("%w: payment due is required", entity.ErrInvalidArgument)
	}

	return nil
}

func validatePayment(senderAddress, txHash string) error {
	if senderAddress == "" {
		return fmt.Errorf("%w: sender wallet address is required", entity.ErrInvalidArgument)
	}

	if txHash == "" {
		return fmt.Errorf("%w: transaction hash is required", entity.ErrInvalidArgument)
	}

	return nil
}
