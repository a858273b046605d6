package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alqattan-optics/optical_pos_app/internal/apperrors"
	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
	portsrepo "github.com/alqattan-optics/optical_pos_app/internal/core/ports/repositories"
	"github.com/alqattan-optics/optical_pos_app/internal/models"
	"github.com/alqattan-optics/optical_pos_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxWorkOrderRepository struct {
	BaseRepository
}

// newPgxWorkOrderRepository creates a new repository for work order data.
func newPgxWorkOrderRepository(pool *pgxpool.Pool) portsrepo.WorkOrderRepositoryFacade {
	return &PgxWorkOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.WorkOrderRepositoryFacade = (*PgxWorkOrderRepository)(nil)

const workOrderColumns = `
	work_order_id, COALESCE(invoice_id, ''), COALESCE(patient_id, ''),
	COALESCE(lens_type_name, ''), lens_type_price,
	is_paid, is_picked_up, is_refunded, is_archived,
	created_at, picked_up_at, archived_at, COALESCE(archive_reason, '')`

func scanWorkOrderRow(row pgx.Row) (models.WorkOrder, error) {
	var wo models.WorkOrder
	err := row.Scan(
		&wo.WorkOrderID,
		&wo.InvoiceID,
		&wo.PatientID,
		&wo.LensTypeName,
		&wo.LensTypePrice,
		&wo.IsPaid,
		&wo.IsPickedUp,
		&wo.IsRefunded,
		&wo.IsArchived,
		&wo.CreatedAt,
		&wo.PickedUpAt,
		&wo.ArchivedAt,
		&wo.ArchiveReason,
	)
	return wo, err
}

// FindWorkOrderByID retrieves a single work order by its id.
func (r *PgxWorkOrderRepository) FindWorkOrderByID(ctx context.Context, workOrderID string) (*domain.WorkOrder, error) {
	query := fmt.Sprintf(`SELECT %s FROM work_orders WHERE work_order_id = $1;`, workOrderColumns)

	modelWO, err := scanWorkOrderRow(r.Pool.QueryRow(ctx, query, workOrderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find work order %s: %w", workOrderID, err)
	}

	domainWO := mapping.ToDomainWorkOrder(modelWO)
	return &domainWO, nil
}

func (r *PgxWorkOrderRepository) listWorkOrders(ctx context.Context, where string, patientID string) ([]domain.WorkOrder, error) {
	query := fmt.Sprintf(`SELECT %s FROM work_orders WHERE %s ORDER BY created_at DESC;`, workOrderColumns, where)

	rows, err := r.Pool.Query(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query work orders: %w", err)
	}
	defer rows.Close()

	modelWorkOrders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.WorkOrder, error) {
		return scanWorkOrderRow(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan work orders: %w", err)
	}

	return mapping.ToDomainWorkOrderSlice(modelWorkOrders), nil
}

// ListWorkOrdersByPatient retrieves the patient's non-archived work orders.
func (r *PgxWorkOrderRepository) ListWorkOrdersByPatient(ctx context.Context, patientID string) ([]domain.WorkOrder, error) {
	return r.listWorkOrders(ctx, `patient_id = $1 AND is_archived = false`, patientID)
}

// ListArchivedWorkOrdersByPatient retrieves the patient's archived work orders.
func (r *PgxWorkOrderRepository) ListArchivedWorkOrdersByPatient(ctx context.Context, patientID string) ([]domain.WorkOrder, error) {
	return r.listWorkOrders(ctx, `patient_id = $1 AND is_archived = true`, patientID)
}

// UpdateWorkOrder applies the set fields of the status update to one row.
func (r *PgxWorkOrderRepository) UpdateWorkOrder(ctx context.Context, workOrderID string, fields portsrepo.StatusUpdate) error {
	set, args := buildStatusSet(fields)
	if len(set) == 0 {
		return fmt.Errorf("%w: no status fields to update", apperrors.ErrValidation)
	}
	args = append(args, workOrderID)
	query := fmt.Sprintf(`UPDATE work_orders SET %s WHERE work_order_id = $%d;`, strings.Join(set, ", "), len(args))

	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update work order %s: %w", workOrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetWorkOrderInvoiceRef returns the invoice id referenced by the work
// order, empty when the work order has no linked invoice.
func (r *PgxWorkOrderRepository) GetWorkOrderInvoiceRef(ctx context.Context, workOrderID string) (string, error) {
	query := `SELECT COALESCE(invoice_id, '') FROM work_orders WHERE work_order_id = $1;`

	var invoiceID string
	err := r.Pool.QueryRow(ctx, query, workOrderID).Scan(&invoiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to resolve invoice ref for work order %s: %w", workOrderID, err)
	}
	return invoiceID, nil
}
