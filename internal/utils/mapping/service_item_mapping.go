package mapping

import (
	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
	"github.com/alqattan-optics/optical_pos_app/internal/models"
)

// ToModelServiceItem converts a domain ServiceItem to a model ServiceItem
func ToModelServiceItem(d domain.ServiceItem) models.ServiceItem {
	return models.ServiceItem{
		ServiceID:   d.ServiceID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Category:    string(d.Category),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainServiceItem converts a model ServiceItem to a domain ServiceItem
func ToDomainServiceItem(m models.ServiceItem) domain.ServiceItem {
	return domain.ServiceItem{
		ServiceID:   m.ServiceID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Category:    domain.ServiceCategory(m.Category),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainServiceItemSlice converts a slice of model ServiceItems to a slice of domain ServiceItems
func ToDomainServiceItemSlice(ms []models.ServiceItem) []domain.ServiceItem {
	ds := make([]domain.ServiceItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainServiceItem(m)
	}
	return ds
}
