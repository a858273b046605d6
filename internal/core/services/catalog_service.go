package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alqattan-optics/optical_pos_app/internal/apperrors"
	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
	portsrepo "github.com/alqattan-optics/optical_pos_app/internal/core/ports/repositories"
	portssvc "github.com/alqattan-optics/optical_pos_app/internal/core/ports/services"
	"github.com/alqattan-optics/optical_pos_app/internal/dto"
)

// CatalogService manages the billable service catalog (eye exams,
// repairs and the like) sold alongside optical goods.
type CatalogService struct {
	serviceRepo portsrepo.ServiceItemRepositoryFacade
}

func NewCatalogService(serviceRepo portsrepo.ServiceItemRepositoryFacade) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo}
}

func validateServicePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", apperrors.ErrValidation)
	}
	return nil
}

func (s *CatalogService) CreateService(ctx context.Context, req dto.CreateServiceRequest, creatorUserID string) (*domain.ServiceItem, error) {
	// Name and category presence are handled by DTO binding.
	if err := validateServicePrice(req.Price); err != nil {
		return nil, err
	}

	now := time.Now()
	item := domain.ServiceItem{
		ServiceID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    domain.ServiceCategory(req.Category),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.serviceRepo.SaveService(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	return &item, nil
}

func (s *CatalogService) UpdateService(ctx context.Context, serviceID string, req dto.UpdateServiceRequest, updaterUserID string) (*domain.ServiceItem, error) {
	if err := validateServicePrice(req.Price); err != nil {
		return nil, err
	}

	item, err := s.serviceRepo.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find catalog service %s: %w", serviceID, err)
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.Category = domain.ServiceCategory(req.Category)
	item.LastUpdatedAt = time.Now()
	item.LastUpdatedBy = updaterUserID

	if err := s.serviceRepo.UpdateService(ctx, *item); err != nil {
		return nil, fmt.Errorf("failed to update catalog service %s: %w", serviceID, err)
	}

	return item, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, serviceID string) error {
	if err := s.serviceRepo.DeleteService(ctx, serviceID); err != nil {
		return fmt.Errorf("failed to delete catalog service %s: %w", serviceID, err)
	}
	return nil
}

func (s *CatalogService) GetServiceByID(ctx context.Context, serviceID string) (*domain.ServiceItem, error) {
	item, err := s.serviceRepo.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog service %s: %w", serviceID, err)
	}
	return item, nil
}

func (s *CatalogService) ListServices(ctx context.Context) ([]domain.ServiceItem, error) {
	items, err := s.serviceRepo.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog services: %w", err)
	}
	return items, nil
}

var _ portssvc.CatalogSvcFacade = (*CatalogService)(nil)
