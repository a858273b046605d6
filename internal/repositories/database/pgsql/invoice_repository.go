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

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `
	invoice_id, COALESCE(work_order_id, ''), COALESCE(patient_id, ''), COALESCE(invoice_type, ''),
	COALESCE(patient_name, ''), COALESCE(patient_phone, ''),
	total, deposit, remaining,
	is_paid, is_picked_up, is_refunded, is_archived,
	created_at, picked_up_at, last_edited_at,
	COALESCE(refund_id, ''), refund_amount, COALESCE(refund_method, ''), COALESCE(refund_reason, ''), refund_date,
	archived_at, COALESCE(archive_reason, '')`

func scanInvoiceRow(row pgx.Row) (models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(
		&inv.InvoiceID,
		&inv.WorkOrderID,
		&inv.PatientID,
		&inv.InvoiceType,
		&inv.PatientName,
		&inv.PatientPhone,
		&inv.Total,
		&inv.Deposit,
		&inv.Remaining,
		&inv.IsPaid,
		&inv.IsPickedUp,
		&inv.IsRefunded,
		&inv.IsArchived,
		&inv.CreatedAt,
		&inv.PickedUpAt,
		&inv.LastEditedAt,
		&inv.RefundID,
		&inv.RefundAmount,
		&inv.RefundMethod,
		&inv.RefundReason,
		&inv.RefundDate,
		&inv.ArchivedAt,
		&inv.ArchiveReason,
	)
	return inv, err
}

// FindInvoiceByID retrieves a single invoice by its id.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE invoice_id = $1;`, invoiceColumns)

	modelInv, err := scanInvoiceRow(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}

	domainInv := mapping.ToDomainInvoice(modelInv)
	return &domainInv, nil
}

func (r *PgxInvoiceRepository) listInvoices(ctx context.Context, where string, patientID string) ([]domain.Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE %s ORDER BY created_at DESC;`, invoiceColumns, where)

	rows, err := r.Pool.Query(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	modelInvoices, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Invoice, error) {
		return scanInvoiceRow(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoices: %w", err)
	}

	return mapping.ToDomainInvoiceSlice(modelInvoices), nil
}

// ListInvoicesByPatient retrieves the patient's non-archived, non-refunded invoices.
func (r *PgxInvoiceRepository) ListInvoicesByPatient(ctx context.Context, patientID string) ([]domain.Invoice, error) {
	return r.listInvoices(ctx, `patient_id = $1 AND is_archived = false AND is_refunded = false`, patientID)
}

// ListRefundedInvoicesByPatient retrieves the patient's refunded, non-archived invoices.
func (r *PgxInvoiceRepository) ListRefundedInvoicesByPatient(ctx context.Context, patientID string) ([]domain.Invoice, error) {
	return r.listInvoices(ctx, `patient_id = $1 AND is_archived = false AND is_refunded = true`, patientID)
}

// ListArchivedInvoicesByPatient retrieves the patient's archived invoices.
func (r *PgxInvoiceRepository) ListArchivedInvoicesByPatient(ctx context.Context, patientID string) ([]domain.Invoice, error) {
	return r.listInvoices(ctx, `patient_id = $1 AND is_archived = true`, patientID)
}

// UpdateInvoice applies the set fields of the status update to one row.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoiceID string, fields portsrepo.StatusUpdate) error {
	set, args := buildStatusSet(fields)
	if len(set) == 0 {
		return fmt.Errorf("%w: no status fields to update", apperrors.ErrValidation)
	}
	args = append(args, invoiceID)
	query := fmt.Sprintf(`UPDATE invoices SET %s WHERE invoice_id = $%d;`, strings.Join(set, ", "), len(args))

	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetInvoiceWorkOrderRef returns the work order id referenced by the
// invoice, empty when the invoice has no linked work order.
func (r *PgxInvoiceRepository) GetInvoiceWorkOrderRef(ctx context.Context, invoiceID string) (string, error) {
	query := `SELECT COALESCE(work_order_id, '') FROM invoices WHERE invoice_id = $1;`

	var workOrderID string
	err := r.Pool.QueryRow(ctx, query, invoiceID).Scan(&workOrderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to resolve work order ref for invoice %s: %w", invoiceID, err)
	}
	return workOrderID, nil
}
