package payments

import "errors"

var (
	ErrBadRequest      = errors.New("invalid payment request")
	ErrAmountMismatch  = errors.New("the payment amount does not match the order total")
	ErrOrderNotPayable = errors.New("order not payable")
	ErrPaymentNotFound = errors.New("payment id invalid")
	ErrNotConfirmable  = errors.New("payment not confirmable")
	ErrUnknownStatus   = errors.New("unknown payment status")
)
