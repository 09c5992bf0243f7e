package entity

import (
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrOverpayment        = errors.New("overpayment")
	ErrNotificationFailed = errors.New("notification failed")
)
