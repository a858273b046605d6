package domain

import (
	"sort"
	"time"
)

// PartitionInput is one snapshot of everything the display partitions are
// derived from. PendingPickups is the lifecycle engine's optimistic
// buffer: invoice ids already confirmed picked up locally but not yet
// reflected by the source of truth.
type PartitionInput struct {
	Invoices           []Invoice
	WorkOrders         []WorkOrder
	RefundedInvoices   []Invoice
	ArchivedInvoices   []Invoice
	ArchivedWorkOrders []WorkOrder
	PendingPickups     map[string]struct{}
}

// PartitionResult holds the four display partitions. Active, Completed
// and Refunded are disjoint by invoice id; Archived is a separate view
// over both entity kinds.
type PartitionResult struct {
	Active             []Invoice
	Completed          []Invoice
	Refunded           []Invoice
	ArchivedInvoices   []Invoice
	ArchivedWorkOrders []WorkOrder
}

// Partition derives the display partitions from a snapshot. It is a pure
// function: for a fixed input the output is fully determined by the
// stated sort keys (createdAt newest-first; archivedAt with createdAt
// fallback for archived) and the first-seen-wins de-duplication in
// Completed.
func Partition(in PartitionInput) PartitionResult {
	sorted := sortInvoicesNewestFirst(in.Invoices)

	active := make([]Invoice, 0, len(sorted))
	for _, inv := range sorted {
		if inv.IsPickedUp || inv.IsRefunded {
			continue
		}
		if _, pending := in.PendingPickups[inv.InvoiceID]; pending {
			continue
		}
		active = append(active, inv)
	}

	// Picked-up invoices first, then optimistically-pending ones; an
	// invoice that is both flagged and pending appears once (first wins).
	completed := make([]Invoice, 0, len(sorted))
	seen := make(map[string]struct{}, len(sorted))
	for _, inv := range sorted {
		if inv.IsPickedUp && !inv.IsRefunded {
			if _, dup := seen[inv.InvoiceID]; dup {
				continue
			}
			seen[inv.InvoiceID] = struct{}{}
			completed = append(completed, inv)
		}
	}
	for _, inv := range sorted {
		if _, pending := in.PendingPickups[inv.InvoiceID]; !pending {
			continue
		}
		if _, dup := seen[inv.InvoiceID]; dup {
			continue
		}
		seen[inv.InvoiceID] = struct{}{}
		completed = append(completed, inv)
	}

	refunded := sortInvoicesNewestFirst(in.RefundedInvoices)

	archivedInvoices := append([]Invoice(nil), in.ArchivedInvoices...)
	sort.SliceStable(archivedInvoices, func(a, b int) bool {
		return archivedInvoices[a].SortKey().After(archivedInvoices[b].SortKey())
	})

	archivedWorkOrders := append([]WorkOrder(nil), in.ArchivedWorkOrders...)
	sort.SliceStable(archivedWorkOrders, func(a, b int) bool {
		return archivedWorkOrders[a].SortKey().After(archivedWorkOrders[b].SortKey())
	})

	return PartitionResult{
		Active:             active,
		Completed:          completed,
		Refunded:           refunded,
		ArchivedInvoices:   archivedInvoices,
		ArchivedWorkOrders: archivedWorkOrders,
	}
}

func sortInvoicesNewestFirst(invoices []Invoice) []Invoice {
	out := append([]Invoice(nil), invoices...)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})
	return out
}

// LatestArchivedAt returns the most recent archive timestamp across both
// entity kinds, used by the reconciler's archive-recency heuristic. The
// second return is false when nothing carries an archive timestamp.
func LatestArchivedAt(invoices []Invoice, workOrders []WorkOrder) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, inv := range invoices {
		if inv.ArchivedAt != nil && inv.ArchivedAt.After(latest) {
			latest = *inv.ArchivedAt
			found = true
		}
	}
	for _, wo := range workOrders {
		if wo.ArchivedAt != nil && wo.ArchivedAt.After(latest) {
			latest = *wo.ArchivedAt
			found = true
		}
	}
	return latest, found
}
