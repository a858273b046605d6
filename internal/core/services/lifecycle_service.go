package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alqattan-optics/optical_pos_app/internal/apperrors"
	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
	portsrepo "github.com/alqattan-optics/optical_pos_app/internal/core/ports/repositories"
	portssvc "github.com/alqattan-optics/optical_pos_app/internal/core/ports/services"
	"github.com/alqattan-optics/optical_pos_app/internal/metrics"
	"github.com/alqattan-optics/optical_pos_app/internal/middleware"
)

const (
	defaultSettleDelay   = 500 * time.Millisecond
	defaultConvergeDelay = 800 * time.Millisecond

	// DefaultArchiveReason is recorded when the caller supplies none.
	DefaultArchiveReason = "Archived by user"
)

// LifecycleService transitions the pickup and archive status of an
// invoice/work-order pair. The entity the user acted on is the primary
// write and decides success; the paired entity is mirrored best-effort.
// Both operations return before the store is touched and report through
// a single-result channel, with the optimistic pending buffer updated
// up front so dependent views reflect the transition immediately.
type LifecycleService struct {
	store      portsrepo.OrderStore
	reconciler *Reconciler
	metrics    *metrics.LifecycleMetrics

	settleDelay   time.Duration
	convergeDelay time.Duration
	now           func() time.Time

	mu      sync.RWMutex
	pending map[string]struct{}
}

// NewLifecycleService wires the engine. Zero delays fall back to the
// defaults; metrics may be nil in tests that do not assert on them.
func NewLifecycleService(store portsrepo.OrderStore, reconciler *Reconciler, m *metrics.LifecycleMetrics, settleDelay, convergeDelay time.Duration) *LifecycleService {
	if settleDelay <= 0 {
		settleDelay = defaultSettleDelay
	}
	if convergeDelay <= 0 {
		convergeDelay = defaultConvergeDelay
	}
	return &LifecycleService{
		store:         store,
		reconciler:    reconciler,
		metrics:       m,
		settleDelay:   settleDelay,
		convergeDelay: convergeDelay,
		now:           time.Now,
		pending:       make(map[string]struct{}),
	}
}

// MarkPickedUp flags the entity as picked up. The id is buffered into the
// pending set before the write so a snapshot taken immediately after this
// call already shows the invoice as completed; a failed primary write
// rolls that entry back.
func (s *LifecycleService) MarkPickedUp(ctx context.Context, id string, isInvoice bool) (<-chan portssvc.PickupResult, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", apperrors.ErrValidation)
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	s.addPending(id)

	results := make(chan portssvc.PickupResult, 1)
	// The write must not be cancelled when the originating request ends.
	taskCtx := context.WithoutCancel(ctx)

	go func() {
		defer close(results)
		result := portssvc.PickupResult{ID: id, IsInvoice: isInvoice}

		pickedUpAt := s.now()
		flag := true
		fields := portsrepo.StatusUpdate{IsPickedUp: &flag, PickedUpAt: &pickedUpAt}

		var err error
		if isInvoice {
			err = s.store.UpdateInvoice(taskCtx, id, fields)
			if err != nil {
				result.Primary = apperrors.NewPersistenceError("update", "invoices", id, err)
			}
		} else {
			err = s.store.UpdateWorkOrder(taskCtx, id, fields)
			if err != nil {
				result.Primary = apperrors.NewPersistenceError("update", "work_orders", id, err)
			}
		}

		if result.Primary != nil {
			s.removePending(id)
			logger.Error("Primary pickup write failed",
				slog.String("id", id),
				slog.Bool("is_invoice", isInvoice),
				slog.String("error", result.Primary.Error()))
			if s.metrics != nil {
				s.metrics.PickupCompleted(isInvoice, false)
			}
			result.CompletedAt = s.now()
			results <- result
			return
		}

		result.PairedID, result.Secondary = s.mirrorPickup(taskCtx, id, isInvoice, fields)
		if result.Secondary != nil {
			// Best-effort mirror: the user-visible record is already
			// updated, so this is logged and swallowed.
			logger.Warn("Paired pickup write failed",
				slog.String("id", id),
				slog.String("paired_id", result.PairedID),
				slog.String("error", result.Secondary.Error()))
			if s.metrics != nil {
				s.metrics.SecondaryWriteFailed()
			}
		}

		logger.Info("Order marked as picked up",
			slog.String("id", id),
			slog.Bool("is_invoice", isInvoice))
		if s.metrics != nil {
			s.metrics.PickupCompleted(isInvoice, true)
		}

		s.scheduleRecompute(false)
		result.CompletedAt = s.now()
		results <- result
	}()

	return results, nil
}

// mirrorPickup resolves the paired entity through the store and applies
// the same update to it. Lookup and write failures are both returned as
// the secondary outcome.
func (s *LifecycleService) mirrorPickup(ctx context.Context, id string, isInvoice bool, fields portsrepo.StatusUpdate) (string, error) {
	if isInvoice {
		pairedID, err := s.store.GetInvoiceWorkOrderRef(ctx, id)
		if err != nil {
			return "", apperrors.NewPersistenceError("lookup", "invoices", id, err)
		}
		if pairedID == "" {
			return "", nil
		}
		if err := s.store.UpdateWorkOrder(ctx, pairedID, fields); err != nil {
			return pairedID, apperrors.NewPersistenceError("update", "work_orders", pairedID, err)
		}
		return pairedID, nil
	}

	pairedID, err := s.store.GetWorkOrderInvoiceRef(ctx, id)
	if err != nil {
		return "", apperrors.NewPersistenceError("lookup", "work_orders", id, err)
	}
	if pairedID == "" {
		return "", nil
	}
	if err := s.store.UpdateInvoice(ctx, pairedID, fields); err != nil {
		return pairedID, apperrors.NewPersistenceError("update", "invoices", pairedID, err)
	}
	return pairedID, nil
}

// ArchiveOrder soft-deletes the pair the ref resolves to. The invoice id
// is taken from the ref when present, else looked up from the work order
// row; each resolvable side is attempted independently and one landed
// write is enough for the operation to succeed.
func (s *LifecycleService) ArchiveOrder(ctx context.Context, ref domain.OrderRef, reason string) (<-chan portssvc.ArchiveResult, error) {
	if !ref.Resolvable() {
		return nil, &apperrors.ArchiveError{}
	}
	if reason == "" {
		reason = DefaultArchiveReason
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	results := make(chan portssvc.ArchiveResult, 1)
	taskCtx := context.WithoutCancel(ctx)

	go func() {
		defer close(results)

		archivedAt := s.now()
		flag := true
		fields := portsrepo.StatusUpdate{IsArchived: &flag, ArchivedAt: &archivedAt, ArchiveReason: &reason}

		result := portssvc.ArchiveResult{
			InvoiceID:   ref.InvoiceID,
			WorkOrderID: ref.WorkOrderID,
			ArchivedAt:  archivedAt,
		}

		if result.InvoiceID == "" && ref.WorkOrderID != "" {
			invoiceID, err := s.store.GetWorkOrderInvoiceRef(taskCtx, ref.WorkOrderID)
			if err != nil {
				// The work order side may still archive; keep going.
				logger.Warn("Invoice reference lookup failed",
					slog.String("work_order_id", ref.WorkOrderID),
					slog.String("error", err.Error()))
			} else {
				result.InvoiceID = invoiceID
			}
		}

		if result.InvoiceID != "" {
			result.InvoiceAttempted = true
			if err := s.store.UpdateInvoice(taskCtx, result.InvoiceID, fields); err != nil {
				result.InvoiceErr = apperrors.NewPersistenceError("update", "invoices", result.InvoiceID, err)
				logger.Warn("Invoice archive write failed",
					slog.String("invoice_id", result.InvoiceID),
					slog.String("error", err.Error()))
			}
		}

		if ref.WorkOrderID != "" {
			result.WorkOrderAttempted = true
			if err := s.store.UpdateWorkOrder(taskCtx, ref.WorkOrderID, fields); err != nil {
				result.WorkOrderErr = apperrors.NewPersistenceError("update", "work_orders", ref.WorkOrderID, err)
				logger.Warn("Work order archive write failed",
					slog.String("work_order_id", ref.WorkOrderID),
					slog.String("error", err.Error()))
			}
		}

		archivedInvoice := result.InvoiceAttempted && result.InvoiceErr == nil
		archivedWorkOrder := result.WorkOrderAttempted && result.WorkOrderErr == nil

		if !archivedInvoice && !archivedWorkOrder {
			result.Err = &apperrors.ArchiveError{
				InvoiceAttempted:   result.InvoiceAttempted,
				WorkOrderAttempted: result.WorkOrderAttempted,
				InvoiceErr:         result.InvoiceErr,
				WorkOrderErr:       result.WorkOrderErr,
			}
			logger.Error("Archive failed on all attempted sides", slog.String("error", result.Err.Error()))
			if s.metrics != nil {
				s.metrics.ArchiveCompleted(false)
			}
			results <- result
			return
		}

		if archivedInvoice != archivedWorkOrder && result.InvoiceAttempted && result.WorkOrderAttempted {
			// Known eventual-consistency gap: one side archived, the other
			// not. Reported successful; a later read reconciles.
			logger.Warn("Archive landed on one side only",
				slog.Bool("invoice_archived", archivedInvoice),
				slog.Bool("work_order_archived", archivedWorkOrder))
		}

		logger.Info("Order archived",
			slog.String("invoice_id", result.InvoiceID),
			slog.String("work_order_id", ref.WorkOrderID),
			slog.String("reason", reason))
		if s.metrics != nil {
			s.metrics.ArchiveCompleted(true)
		}

		s.reconciler.NoteArchived(archivedAt)
		s.scheduleRecompute(true)
		results <- result
	}()

	return results, nil
}

// PendingPickups snapshots the optimistic pending-pickup buffer.
func (s *LifecycleService) PendingPickups() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make(map[string]struct{}, len(s.pending))
	for id := range s.pending {
		snapshot[id] = struct{}{}
	}
	return snapshot
}

func (s *LifecycleService) addPending(id string) {
	s.mu.Lock()
	s.pending[id] = struct{}{}
	n := len(s.pending)
	s.mu.Unlock()
	if s.metrics != nil {
		s.metrics.SetPendingPickups(n)
	}
}

func (s *LifecycleService) removePending(id string) {
	s.mu.Lock()
	delete(s.pending, id)
	n := len(s.pending)
	s.mu.Unlock()
	if s.metrics != nil {
		s.metrics.SetPendingPickups(n)
	}
}

// scheduleRecompute bumps the reconciler now and again after the settle
// and converge delays, letting the projector converge on the
// authoritative state once the store's read-after-write lag has passed.
// The immediate bump is skipped when the operation already produced one.
func (s *LifecycleService) scheduleRecompute(alreadyBumped bool) {
	if !alreadyBumped {
		s.reconciler.Bump(false)
	}
	s.reconciler.ScheduleBump(s.settleDelay)
	s.reconciler.ScheduleBump(s.convergeDelay)
}

var _ portssvc.LifecycleSvcFacade = (*LifecycleService)(nil)
