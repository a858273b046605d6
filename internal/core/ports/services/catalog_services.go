package services

import (
	"context"

	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
	"github.com/alqattan-optics/optical_pos_app/internal/dto"
)

// CatalogSvcFacade manages the clinic's billable service catalog.
type CatalogSvcFacade interface {
	CreateService(ctx context.Context, req dto.CreateServiceRequest, userID string) (*domain.ServiceItem, error)
	UpdateService(ctx context.Context, serviceID string, req dto.UpdateServiceRequest, userID string) (*domain.ServiceItem, error)
	DeleteService(ctx context.Context, serviceID string) error
	GetServiceByID(ctx context.Context, serviceID string) (*domain.ServiceItem, error)
	ListServices(ctx context.Context) ([]domain.ServiceItem, error)
}
