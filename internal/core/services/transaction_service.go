package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alqattan-optics/optical_pos_app/internal/apperrors"
	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
	portsrepo "github.com/alqattan-optics/optical_pos_app/internal/core/ports/repositories"
	portssvc "github.com/alqattan-optics/optical_pos_app/internal/core/ports/services"
	"github.com/alqattan-optics/optical_pos_app/internal/middleware"
)

// TransactionService assembles the per-patient partition snapshot from
// the store and the lifecycle engine's optimistic pending buffer. It
// holds no state of its own; every call recomputes from what it reads.
type TransactionService struct {
	invoiceRepo   portsrepo.InvoiceReader
	workOrderRepo portsrepo.WorkOrderReader
	lifecycle     portssvc.LifecycleSvcFacade
	reconciler    *Reconciler
}

func NewTransactionService(invoiceRepo portsrepo.InvoiceReader, workOrderRepo portsrepo.WorkOrderReader, lifecycle portssvc.LifecycleSvcFacade, reconciler *Reconciler) *TransactionService {
	return &TransactionService{
		invoiceRepo:   invoiceRepo,
		workOrderRepo: workOrderRepo,
		lifecycle:     lifecycle,
		reconciler:    reconciler,
	}
}

// GetPatientTransactions fetches the patient's five entity sets, feeds
// the freshest edit timestamp to the reconciler and partitions the whole
// into the four views.
func (s *TransactionService) GetPatientTransactions(ctx context.Context, patientID string) (domain.PartitionResult, error) {
	if patientID == "" {
		return domain.PartitionResult{}, fmt.Errorf("%w: patient id is required", apperrors.ErrValidation)
	}

	invoices, err := s.invoiceRepo.ListInvoicesByPatient(ctx, patientID)
	if err != nil {
		return domain.PartitionResult{}, fmt.Errorf("listing invoices: %w", err)
	}
	workOrders, err := s.workOrderRepo.ListWorkOrdersByPatient(ctx, patientID)
	if err != nil {
		return domain.PartitionResult{}, fmt.Errorf("listing work orders: %w", err)
	}
	refunded, err := s.invoiceRepo.ListRefundedInvoicesByPatient(ctx, patientID)
	if err != nil {
		return domain.PartitionResult{}, fmt.Errorf("listing refunded invoices: %w", err)
	}
	archivedInvoices, err := s.invoiceRepo.ListArchivedInvoicesByPatient(ctx, patientID)
	if err != nil {
		return domain.PartitionResult{}, fmt.Errorf("listing archived invoices: %w", err)
	}
	archivedWorkOrders, err := s.workOrderRepo.ListArchivedWorkOrdersByPatient(ctx, patientID)
	if err != nil {
		return domain.PartitionResult{}, fmt.Errorf("listing archived work orders: %w", err)
	}

	if s.reconciler != nil {
		s.reconciler.NoteLastEdited(latestEditTime(invoices))
	}

	result := domain.Partition(domain.PartitionInput{
		Invoices:           invoices,
		WorkOrders:         workOrders,
		RefundedInvoices:   refunded,
		ArchivedInvoices:   archivedInvoices,
		ArchivedWorkOrders: archivedWorkOrders,
		PendingPickups:     s.lifecycle.PendingPickups(),
	})

	middleware.GetLoggerFromCtx(ctx).Debug("Partitioned patient transactions",
		slog.String("patient_id", patientID),
		slog.Int("active", len(result.Active)),
		slog.Int("completed", len(result.Completed)),
		slog.Int("refunded", len(result.Refunded)),
		slog.Int("archived", len(result.ArchivedInvoices)+len(result.ArchivedWorkOrders)))

	return result, nil
}

// ArchiveInvoiceOrder archives the pair starting from an invoice id. The
// paired work order is resolved against the patient's known work orders;
// a missing pair record degrades to a ref carrying the invoice side only.
func (s *TransactionService) ArchiveInvoiceOrder(ctx context.Context, patientID, invoiceID, reason string) (<-chan portssvc.ArchiveResult, error) {
	if invoiceID == "" {
		return nil, fmt.Errorf("%w: invoice id is required", apperrors.ErrValidation)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("finding invoice %s: %w", invoiceID, err)
	}

	workOrders, err := s.workOrderRepo.ListWorkOrdersByPatient(ctx, patientID)
	if err != nil {
		// The invoice side alone is still archivable.
		middleware.GetLoggerFromCtx(ctx).Warn("Work order listing failed before archive",
			slog.String("patient_id", patientID),
			slog.String("error", err.Error()))
		workOrders = nil
	}

	ref, workOrder := domain.ResolveOrderRef(*invoice, workOrders)
	if workOrder.Synthesized {
		middleware.GetLoggerFromCtx(ctx).Info("Archiving with synthesized work order ref",
			slog.String("invoice_id", invoiceID),
			slog.String("work_order_id", ref.WorkOrderID))
	}

	return s.lifecycle.ArchiveOrder(ctx, ref, reason)
}

func latestEditTime(invoices []domain.Invoice) time.Time {
	var latest time.Time
	for i := range invoices {
		if t := invoices[i].LastEditedAt; t != nil && t.After(latest) {
			latest = *t
		}
	}
	return latest
}

var _ portssvc.TransactionViewSvcFacade = (*TransactionService)(nil)
