package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes what the invoice was raised for.
type InvoiceType string

const (
	InvoiceTypeGlasses  InvoiceType = "glasses"
	InvoiceTypeContacts InvoiceType = "contacts"
	InvoiceTypeExam     InvoiceType = "exam"
	InvoiceTypeRepair   InvoiceType = "repair"
)

// Invoice is the billing record for a sale. Patient name/phone are
// denormalized copies taken at sale time, not a join against the patient
// catalog.
type Invoice struct {
	InvoiceID   string      `json:"invoiceId"` // Primary Key (e.g., "INV-2024-0042")
	WorkOrderID string      `json:"workOrderId,omitempty"`
	PatientID   string      `json:"patientId,omitempty"`
	InvoiceType InvoiceType `json:"invoiceType,omitempty"`

	PatientName  string `json:"patientName,omitempty"`
	PatientPhone string `json:"patientPhone,omitempty"`

	Total     decimal.Decimal `json:"total"`
	Deposit   decimal.Decimal `json:"deposit"`
	Remaining decimal.Decimal `json:"remaining"` // informational only, never mutated by the lifecycle engine

	IsPaid     bool `json:"isPaid"`
	IsPickedUp bool `json:"isPickedUp"`
	IsRefunded bool `json:"isRefunded"`
	IsArchived bool `json:"isArchived"`

	CreatedAt    time.Time  `json:"createdAt"`
	PickedUpAt   *time.Time `json:"pickedUpAt,omitempty"`
	LastEditedAt *time.Time `json:"lastEditedAt,omitempty"`

	// Refund details, populated by the refund workflow (an external
	// collaborator); the lifecycle engine only reads these.
	RefundID     string           `json:"refundId,omitempty"`
	RefundAmount *decimal.Decimal `json:"refundAmount,omitempty"`
	RefundMethod string           `json:"refundMethod,omitempty"`
	RefundReason string           `json:"refundReason,omitempty"`
	RefundDate   *time.Time       `json:"refundDate,omitempty"`

	ArchivedAt    *time.Time `json:"archivedAt,omitempty"`
	ArchiveReason string     `json:"archiveReason,omitempty"`
}

// ValidateInvariants checks the invoice's basic invariants and returns all violations.
func (i *Invoice) ValidateInvariants() []error {
	var errs []error

	if i.InvoiceID == "" {
		errs = append(errs, ErrInvoiceIDRequired)
	}
	if i.Total.IsNegative() {
		errs = append(errs, ErrAmountNegative)
	}
	if i.Remaining.IsNegative() {
		errs = append(errs, ErrRemainingNegative)
	}
	if i.IsArchived && i.ArchivedAt == nil {
		errs = append(errs, ErrArchivedAtMissing)
	}

	return errs
}

// SortKey is the timestamp the display partitions order by: archive time
// when present, creation time otherwise.
func (i *Invoice) SortKey() time.Time {
	if i.ArchivedAt != nil {
		return *i.ArchivedAt
	}
	return i.CreatedAt
}
