package repositories

import (
	"context"

	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves a specific invoice by its id.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByPatient retrieves the patient's non-archived,
	// non-refunded invoices (the active/completed source set).
	ListInvoicesByPatient(ctx context.Context, patientID string) ([]domain.Invoice, error)

	// ListRefundedInvoicesByPatient retrieves the patient's refunded, non-archived invoices.
	ListRefundedInvoicesByPatient(ctx context.Context, patientID string) ([]domain.Invoice, error)

	// ListArchivedInvoicesByPatient retrieves the patient's archived invoices.
	ListArchivedInvoicesByPatient(ctx context.Context, patientID string) ([]domain.Invoice, error)
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceStatusWriter
	// GetInvoiceWorkOrderRef is the invoice half of the cross-reference lookup.
	GetInvoiceWorkOrderRef(ctx context.Context, invoiceID string) (string, error)
}
