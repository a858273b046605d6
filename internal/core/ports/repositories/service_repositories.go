package repositories

import (
	"context"

	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
)

// ServiceItemReader defines read operations for catalog services
type ServiceItemReader interface {
	// FindServiceByID retrieves a specific catalog service by its id.
	FindServiceByID(ctx context.Context, serviceID string) (*domain.ServiceItem, error)

	// ListServices retrieves all catalog services.
	ListServices(ctx context.Context) ([]domain.ServiceItem, error)
}

// ServiceItemWriter defines write operations for catalog services
type ServiceItemWriter interface {
	// SaveService persists a new catalog service.
	SaveService(ctx context.Context, service domain.ServiceItem) error

	// UpdateService replaces the mutable fields of an existing catalog service.
	UpdateService(ctx context.Context, service domain.ServiceItem) error

	// DeleteService removes a catalog service.
	DeleteService(ctx context.Context, serviceID string) error
}

// ServiceItemRepositoryFacade combines all catalog repository interfaces
type ServiceItemRepositoryFacade interface {
	ServiceItemReader
	ServiceItemWriter
}
