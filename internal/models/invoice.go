package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice represents one row of the invoices table. Patient name/phone
// are denormalized copies taken at sale time.
type Invoice struct {
	InvoiceID   string `json:"invoiceId" db:"invoice_id"`
	WorkOrderID string `json:"workOrderId,omitempty" db:"work_order_id"`
	PatientID   string `json:"patientId,omitempty" db:"patient_id"`
	InvoiceType string `json:"invoiceType,omitempty" db:"invoice_type"`

	PatientName  string `json:"patientName,omitempty" db:"patient_name"`
	PatientPhone string `json:"patientPhone,omitempty" db:"patient_phone"`

	Total     decimal.Decimal `json:"total" db:"total"`
	Deposit   decimal.Decimal `json:"deposit" db:"deposit"`
	Remaining decimal.Decimal `json:"remaining" db:"remaining"`

	IsPaid     bool `json:"isPaid" db:"is_paid"`
	IsPickedUp bool `json:"isPickedUp" db:"is_picked_up"`
	IsRefunded bool `json:"isRefunded" db:"is_refunded"`
	IsArchived bool `json:"isArchived" db:"is_archived"`

	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	PickedUpAt   *time.Time `json:"pickedUpAt,omitempty" db:"picked_up_at"`
	LastEditedAt *time.Time `json:"lastEditedAt,omitempty" db:"last_edited_at"`

	RefundID     string           `json:"refundId,omitempty" db:"refund_id"`
	RefundAmount *decimal.Decimal `json:"refundAmount,omitempty" db:"refund_amount"`
	RefundMethod string           `json:"refundMethod,omitempty" db:"refund_method"`
	RefundReason string           `json:"refundReason,omitempty" db:"refund_reason"`
	RefundDate   *time.Time       `json:"refundDate,omitempty" db:"refund_date"`

	ArchivedAt    *time.Time `json:"archivedAt,omitempty" db:"archived_at"`
	ArchiveReason string     `json:"archiveReason,omitempty" db:"archive_reason"`
}
