package repositories

import (
	"context"
	"time"
)

// StatusUpdate names the lifecycle fields a Store write may touch. Only
// non-nil fields are written, so the same type serves both pickup and
// archive updates. The lifecycle engine only ever sets flags to true;
// monotonicity of isPickedUp/isArchived follows from that.
type StatusUpdate struct {
	IsPickedUp    *bool
	PickedUpAt    *time.Time
	IsArchived    *bool
	ArchivedAt    *time.Time
	ArchiveReason *string
}

// InvoiceStatusWriter updates lifecycle fields on an invoice by key.
type InvoiceStatusWriter interface {
	// UpdateInvoice applies the non-nil fields to the invoice keyed by invoiceID.
	UpdateInvoice(ctx context.Context, invoiceID string, fields StatusUpdate) error
}

// WorkOrderStatusWriter updates lifecycle fields on a work order by key.
type WorkOrderStatusWriter interface {
	// UpdateWorkOrder applies the non-nil fields to the work order keyed by workOrderID.
	UpdateWorkOrder(ctx context.Context, workOrderID string, fields StatusUpdate) error
}

// OrderRefReader resolves the cross-reference between the two tables.
// An empty id with a nil error means the row exists but holds no reference.
type OrderRefReader interface {
	// GetInvoiceWorkOrderRef returns the work order id linked from the invoice.
	GetInvoiceWorkOrderRef(ctx context.Context, invoiceID string) (string, error)

	// GetWorkOrderInvoiceRef returns the invoice id linked from the work order.
	GetWorkOrderInvoiceRef(ctx context.Context, workOrderID string) (string, error)
}

// OrderStore is the complete persistence surface the lifecycle engine
// depends on. Any keyed-update store can back it; no transactions or
// batch operations are required.
type OrderStore interface {
	InvoiceStatusWriter
	WorkOrderStatusWriter
	OrderRefReader
}
