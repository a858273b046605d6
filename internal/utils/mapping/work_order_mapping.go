package mapping

import (
	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
	"github.com/alqattan-optics/optical_pos_app/internal/models"
)

// ToModelWorkOrder converts a domain WorkOrder to a model WorkOrder.
// Synthesized fallbacks are never persisted, so the flag has no model side.
func ToModelWorkOrder(d domain.WorkOrder) models.WorkOrder {
	return models.WorkOrder{
		WorkOrderID:   d.ID,
		InvoiceID:     d.InvoiceID,
		PatientID:     d.PatientID,
		LensTypeName:  d.LensTypeName,
		LensTypePrice: d.LensTypePrice,
		IsPaid:        d.IsPaid,
		IsPickedUp:    d.IsPickedUp,
		IsRefunded:    d.IsRefunded,
		IsArchived:    d.IsArchived,
		CreatedAt:     d.CreatedAt,
		PickedUpAt:    d.PickedUpAt,
		ArchivedAt:    d.ArchivedAt,
		ArchiveReason: d.ArchiveReason,
	}
}

// ToDomainWorkOrder converts a model WorkOrder to a domain WorkOrder
func ToDomainWorkOrder(m models.WorkOrder) domain.WorkOrder {
	return domain.WorkOrder{
		ID:            m.WorkOrderID,
		InvoiceID:     m.InvoiceID,
		PatientID:     m.PatientID,
		LensTypeName:  m.LensTypeName,
		LensTypePrice: m.LensTypePrice,
		IsPaid:        m.IsPaid,
		IsPickedUp:    m.IsPickedUp,
		IsRefunded:    m.IsRefunded,
		IsArchived:    m.IsArchived,
		CreatedAt:     m.CreatedAt,
		PickedUpAt:    m.PickedUpAt,
		ArchivedAt:    m.ArchivedAt,
		ArchiveReason: m.ArchiveReason,
	}
}

// ToDomainWorkOrderSlice converts a slice of model WorkOrders to a slice of domain WorkOrders
func ToDomainWorkOrderSlice(ms []models.WorkOrder) []domain.WorkOrder {
	ds := make([]domain.WorkOrder, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWorkOrder(m)
	}
	return ds
}
