package dto

import (
	"time"

	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateServiceRequest defines the data needed to add a catalog service.
type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" binding:"required,oneof=exam repair other"`
}

// UpdateServiceRequest defines the mutable fields of a catalog service.
type UpdateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" binding:"required,oneof=exam repair other"`
}

// ServiceResponse defines the data returned for a catalog service.
type ServiceResponse struct {
	ServiceID   string          `json:"serviceId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// ToServiceResponse converts a domain.ServiceItem to a ServiceResponse DTO
func ToServiceResponse(s *domain.ServiceItem) ServiceResponse {
	return ServiceResponse{
		ServiceID:   s.ServiceID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		Category:    string(s.Category),
		CreatedAt:   s.CreatedAt,
		CreatedBy:   s.CreatedBy,
	}
}

// ToListServiceResponse converts a slice of domain.ServiceItem to response DTOs
func ToListServiceResponse(services []domain.ServiceItem) []ServiceResponse {
	res := make([]ServiceResponse, len(services))
	for i := range services {
		res[i] = ToServiceResponse(&services[i])
	}
	return res
}
