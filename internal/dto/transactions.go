package dto

import (
	"encoding/json"

	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
)

// MarkPickedUpRequest identifies the entity the user acted on.
type MarkPickedUpRequest struct {
	ID        string `json:"id" binding:"required"`
	IsInvoice *bool  `json:"isInvoice" binding:"required"`
}

// ArchiveOrderRequest is a work-order-like archive input. Real work
// orders, legacy rows and invoice-only fallbacks all decode into it, so
// it tolerates both reference spellings the data carries.
type ArchiveOrderRequest struct {
	WorkOrderID string
	InvoiceID   string
	Reason      string
}

// UnmarshalJSON accepts "id"/"workOrderId" for the work order side and
// "invoiceId"/"invoice_id" for the invoice side.
func (r *ArchiveOrderRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID              string `json:"id"`
		WorkOrderID     string `json:"workOrderId"`
		InvoiceID       string `json:"invoiceId"`
		LegacyInvoiceID string `json:"invoice_id"`
		Reason          string `json:"reason"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.WorkOrderID = raw.ID
	if r.WorkOrderID == "" {
		r.WorkOrderID = raw.WorkOrderID
	}
	r.InvoiceID = raw.InvoiceID
	if r.InvoiceID == "" {
		r.InvoiceID = raw.LegacyInvoiceID
	}
	r.Reason = raw.Reason
	return nil
}

// OrderRef converts the request to the normalized domain reference.
func (r ArchiveOrderRequest) OrderRef() domain.OrderRef {
	return domain.OrderRef{InvoiceID: r.InvoiceID, WorkOrderID: r.WorkOrderID}
}

// LifecycleResultResponse reports a completed lifecycle operation back to
// the caller. Secondary/one-sided failures are surfaced as warnings, not
// errors, mirroring the engine's success criterion.
type LifecycleResultResponse struct {
	ID       string   `json:"id"`
	Success  bool     `json:"success"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// PartitionResponse carries the four display partitions.
type PartitionResponse struct {
	Active             []domain.Invoice   `json:"active"`
	Completed          []domain.Invoice   `json:"completed"`
	Refunded           []domain.Invoice   `json:"refunded"`
	ArchivedInvoices   []domain.Invoice   `json:"archivedInvoices"`
	ArchivedWorkOrders []domain.WorkOrder `json:"archivedWorkOrders"`
	Version            int64              `json:"version"`
}

// ToPartitionResponse converts a domain.PartitionResult to the response DTO.
func ToPartitionResponse(p domain.PartitionResult, version int64) PartitionResponse {
	return PartitionResponse{
		Active:             p.Active,
		Completed:          p.Completed,
		Refunded:           p.Refunded,
		ArchivedInvoices:   p.ArchivedInvoices,
		ArchivedWorkOrders: p.ArchivedWorkOrders,
		Version:            version,
	}
}
