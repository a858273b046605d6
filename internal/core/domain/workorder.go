package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// WorkOrder is the fulfillment record tracking production/fitting of the
// ordered goods. It carries the same lifecycle flags as the invoice it is
// linked to; the lifecycle engine keeps the two sides in step.
type WorkOrder struct {
	ID        string `json:"id"` // Primary Key
	InvoiceID string `json:"invoiceId,omitempty"`
	PatientID string `json:"patientId,omitempty"`

	LensTypeName  string           `json:"lensTypeName,omitempty"`
	LensTypePrice *decimal.Decimal `json:"lensTypePrice,omitempty"`

	IsPaid     bool `json:"isPaid"`
	IsPickedUp bool `json:"isPickedUp"`
	IsRefunded bool `json:"isRefunded"`
	IsArchived bool `json:"isArchived"`

	CreatedAt     time.Time  `json:"createdAt"`
	PickedUpAt    *time.Time `json:"pickedUpAt,omitempty"`
	ArchivedAt    *time.Time `json:"archivedAt,omitempty"`
	ArchiveReason string     `json:"archiveReason,omitempty"`

	// Synthesized is set on fallback objects assembled from invoice fields
	// when no persisted work order record was found. They carry identifiers
	// only and must not be written back as real records.
	Synthesized bool `json:"-"`
}

// workOrderAlias avoids UnmarshalJSON recursion.
type workOrderAlias WorkOrder

// UnmarshalJSON tolerates both reference spellings found in source data:
// newer rows use "invoiceId", older ones "invoice_id". The camelCase key
// wins when both are present.
func (w *WorkOrder) UnmarshalJSON(data []byte) error {
	var alias workOrderAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*w = WorkOrder(alias)

	if w.InvoiceID == "" {
		var legacy struct {
			InvoiceID string `json:"invoice_id"`
		}
		if err := json.Unmarshal(data, &legacy); err != nil {
			return err
		}
		w.InvoiceID = legacy.InvoiceID
	}
	return nil
}

// SortKey mirrors Invoice.SortKey for the archived partition ordering.
func (w *WorkOrder) SortKey() time.Time {
	if w.ArchivedAt != nil {
		return *w.ArchivedAt
	}
	return w.CreatedAt
}

// NewFallbackWorkOrder assembles a minimal work-order-like value from an
// invoice when the referenced work order record cannot be found. Archive
// can still make best-effort progress on whichever side has an identifier.
func NewFallbackWorkOrder(inv Invoice) WorkOrder {
	return WorkOrder{
		ID:          inv.WorkOrderID,
		InvoiceID:   inv.InvoiceID,
		PatientID:   inv.PatientID,
		CreatedAt:   inv.CreatedAt,
		Synthesized: true,
	}
}
