package domain

import "errors"

var (
	// ErrInvoiceIDRequired is returned when an invoice has no identifier.
	ErrInvoiceIDRequired = errors.New("invoice id is required")
	// ErrAmountNegative is returned when an invoice total is negative.
	ErrAmountNegative = errors.New("total must be non-negative")
	// ErrRemainingNegative is returned when the remaining balance is negative.
	ErrRemainingNegative = errors.New("remaining must be non-negative")
	// ErrArchivedAtMissing is returned when an archived record has no archive timestamp.
	ErrArchivedAtMissing = errors.New("archived record must carry archivedAt")
	// ErrUnresolvableOrderRef is returned when neither side of an
	// invoice/work-order pair carries a concrete identifier.
	ErrUnresolvableOrderRef = errors.New("neither invoice nor work order identifier is resolvable")
)
