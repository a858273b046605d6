package repositories

import (
	"context"

	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
)

// WorkOrderReader defines read operations for work order data
type WorkOrderReader interface {
	// FindWorkOrderByID retrieves a specific work order by its id.
	FindWorkOrderByID(ctx context.Context, workOrderID string) (*domain.WorkOrder, error)

	// ListWorkOrdersByPatient retrieves the patient's non-archived work orders.
	ListWorkOrdersByPatient(ctx context.Context, patientID string) ([]domain.WorkOrder, error)

	// ListArchivedWorkOrdersByPatient retrieves the patient's archived work orders.
	ListArchivedWorkOrdersByPatient(ctx context.Context, patientID string) ([]domain.WorkOrder, error)
}

// WorkOrderRepositoryFacade combines all work-order-related repository interfaces
type WorkOrderRepositoryFacade interface {
	WorkOrderReader
	WorkOrderStatusWriter
	// GetWorkOrderInvoiceRef is the work order half of the cross-reference lookup.
	GetWorkOrderInvoiceRef(ctx context.Context, workOrderID string) (string, error)
}
