package services

import (
	"context"
	"time"

	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
)

// RefreshSignal tells a subscriber the partitions are stale. Signals are
// coalesced: a subscriber that misses intermediate versions re-queries
// once and is up to date.
type RefreshSignal struct {
	Version int64
	// SuggestArchivedView is set when something was archived within the
	// recency window, hinting the consumer to surface the archived view.
	SuggestArchivedView bool
}

// ReconcilerSvcFacade is the recomputation signal the presentation layer
// subscribes to.
type ReconcilerSvcFacade interface {
	// Subscribe registers a listener; the returned func unsubscribes.
	Subscribe() (<-chan RefreshSignal, func())

	// Version returns the current trigger counter value.
	Version() int64

	// NoteLastEdited feeds an externally supplied "last edited" signal;
	// a changed timestamp forces a recomputation.
	NoteLastEdited(t time.Time)

	// Close stops all pending settle timers and drops subscribers.
	Close()
}

// TransactionViewSvcFacade assembles partition snapshots for a patient.
type TransactionViewSvcFacade interface {
	// GetPatientTransactions fetches the patient's entity sets, merges the
	// optimistic pending buffer and returns the four partitions.
	GetPatientTransactions(ctx context.Context, patientID string) (domain.PartitionResult, error)

	// ArchiveInvoiceOrder archives starting from an invoice id: resolves
	// the paired work order (falling back to a synthesized ref when the
	// record is missing) and hands the ref to the lifecycle engine.
	ArchiveInvoiceOrder(ctx context.Context, patientID, invoiceID, reason string) (<-chan ArchiveResult, error)
}
