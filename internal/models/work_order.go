package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkOrder represents one row of the work_orders table.
type WorkOrder struct {
	WorkOrderID string `json:"id" db:"work_order_id"`
	InvoiceID   string `json:"invoiceId,omitempty" db:"invoice_id"`
	PatientID   string `json:"patientId,omitempty" db:"patient_id"`

	LensTypeName  string           `json:"lensTypeName,omitempty" db:"lens_type_name"`
	LensTypePrice *decimal.Decimal `json:"lensTypePrice,omitempty" db:"lens_type_price"`

	IsPaid     bool `json:"isPaid" db:"is_paid"`
	IsPickedUp bool `json:"isPickedUp" db:"is_picked_up"`
	IsRefunded bool `json:"isRefunded" db:"is_refunded"`
	IsArchived bool `json:"isArchived" db:"is_archived"`

	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	PickedUpAt    *time.Time `json:"pickedUpAt,omitempty" db:"picked_up_at"`
	ArchivedAt    *time.Time `json:"archivedAt,omitempty" db:"archived_at"`
	ArchiveReason string     `json:"archiveReason,omitempty" db:"archive_reason"`
}
