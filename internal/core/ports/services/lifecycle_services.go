package services

import (
	"context"
	"time"

	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
)

// PickupResult reports the outcome of one MarkPickedUp task. Primary and
// secondary outcomes are kept separate: the record the user acted on
// decides success, the linked record is a best-effort mirror.
type PickupResult struct {
	ID        string
	IsInvoice bool
	// PairedID is the resolved identifier on the other side, empty when
	// no cross-reference was found.
	PairedID    string
	Primary     error
	Secondary   error
	CompletedAt time.Time
}

// Succeeded reports whether the primary write landed.
func (r PickupResult) Succeeded() bool {
	return r.Primary == nil
}

// ArchiveResult reports the outcome of one ArchiveOrder task. At least
// one side must succeed for the operation to count as successful; a
// one-sided success is recorded here so callers can see the gap.
type ArchiveResult struct {
	InvoiceID          string
	WorkOrderID        string
	InvoiceAttempted   bool
	WorkOrderAttempted bool
	InvoiceErr         error
	WorkOrderErr       error
	// Err is nil on success and an *apperrors.ArchiveError when every
	// attempted side failed (or nothing was resolvable).
	Err        error
	ArchivedAt time.Time
}

// Succeeded reports whether at least one side was archived.
func (r ArchiveResult) Succeeded() bool {
	return r.Err == nil
}

// LifecycleSvcFacade is the order lifecycle engine surface exposed to
// the presentation layer. Both operations return before the store is
// touched; the channel delivers exactly one result and is then closed.
type LifecycleSvcFacade interface {
	// MarkPickedUp flags the entity (invoice when isInvoice, else work
	// order) as picked up and mirrors the flag onto the paired entity
	// best-effort. The id is buffered optimistically before the write.
	MarkPickedUp(ctx context.Context, id string, isInvoice bool) (<-chan PickupResult, error)

	// ArchiveOrder soft-deletes whichever sides of the pair the ref
	// resolves to. The reason is recorded on every archived row.
	ArchiveOrder(ctx context.Context, ref domain.OrderRef, reason string) (<-chan ArchiveResult, error)

	// PendingPickups snapshots the optimistic pending-pickup buffer.
	PendingPickups() map[string]struct{}
}
