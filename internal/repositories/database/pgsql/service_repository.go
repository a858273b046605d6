package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/alqattan-optics/optical_pos_app/internal/apperrors"
	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
	portsrepo "github.com/alqattan-optics/optical_pos_app/internal/core/ports/repositories"
	"github.com/alqattan-optics/optical_pos_app/internal/models"
	"github.com/alqattan-optics/optical_pos_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxServiceRepository struct {
	BaseRepository
}

// newPgxServiceRepository creates a new repository for catalog service data.
func newPgxServiceRepository(pool *pgxpool.Pool) portsrepo.ServiceItemRepositoryFacade {
	return &PgxServiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ServiceItemRepositoryFacade = (*PgxServiceRepository)(nil)

const serviceColumns = `service_id, name, COALESCE(description, ''), price, category, created_at, created_by, last_updated_at, last_updated_by`

func scanServiceRow(row pgx.Row) (models.ServiceItem, error) {
	var item models.ServiceItem
	err := row.Scan(
		&item.ServiceID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Category,
		&item.CreatedAt,
		&item.CreatedBy,
		&item.LastUpdatedAt,
		&item.LastUpdatedBy,
	)
	return item, err
}

// SaveService persists a new catalog service.
func (r *PgxServiceRepository) SaveService(ctx context.Context, service domain.ServiceItem) error {
	modelItem := mapping.ToModelServiceItem(service)

	query := `
		INSERT INTO services (service_id, name, description, price, category, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelItem.ServiceID,
		modelItem.Name,
		modelItem.Description,
		modelItem.Price,
		modelItem.Category,
		modelItem.CreatedAt,
		modelItem.CreatedBy,
		modelItem.LastUpdatedAt,
		modelItem.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save catalog service %s: %w", modelItem.ServiceID, err)
	}
	return nil
}

// UpdateService replaces the mutable fields of an existing catalog service.
func (r *PgxServiceRepository) UpdateService(ctx context.Context, service domain.ServiceItem) error {
	modelItem := mapping.ToModelServiceItem(service)

	query := `
		UPDATE services
		SET name = $2, description = $3, price = $4, category = $5, last_updated_at = $6, last_updated_by = $7
		WHERE service_id = $1;
	`

	tag, err := r.Pool.Exec(ctx, query,
		modelItem.ServiceID,
		modelItem.Name,
		modelItem.Description,
		modelItem.Price,
		modelItem.Category,
		modelItem.LastUpdatedAt,
		modelItem.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update catalog service %s: %w", modelItem.ServiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteService removes a catalog service.
func (r *PgxServiceRepository) DeleteService(ctx context.Context, serviceID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM services WHERE service_id = $1;`, serviceID)
	if err != nil {
		return fmt.Errorf("failed to delete catalog service %s: %w", serviceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindServiceByID retrieves a single catalog service by its id.
func (r *PgxServiceRepository) FindServiceByID(ctx context.Context, serviceID string) (*domain.ServiceItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM services WHERE service_id = $1;`, serviceColumns)

	modelItem, err := scanServiceRow(r.Pool.QueryRow(ctx, query, serviceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find catalog service %s: %w", serviceID, err)
	}

	domainItem := mapping.ToDomainServiceItem(modelItem)
	return &domainItem, nil
}

// ListServices retrieves all catalog services.
func (r *PgxServiceRepository) ListServices(ctx context.Context) ([]domain.ServiceItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM services ORDER BY name;`, serviceColumns)

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog services: %w", err)
	}
	defer rows.Close()

	modelItems, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ServiceItem, error) {
		return scanServiceRow(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan catalog services: %w", err)
	}

	return mapping.ToDomainServiceItemSlice(modelItems), nil
}
