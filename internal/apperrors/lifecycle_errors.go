package apperrors

import (
	"fmt"
	"strings"
)

// PersistenceError reports a failed read or write against the backing store.
// It wraps the underlying adapter error so callers can still use errors.Is/As.
type PersistenceError struct {
	Op    string // e.g. "update", "lookup"
	Table string // e.g. "invoices", "work_orders"
	Key   string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s %s %q: %v", e.Op, e.Table, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError wraps an adapter failure with its operation context.
func NewPersistenceError(op, table, key string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Table: table, Key: key, Err: err}
}

// ArchiveError is returned when an archive operation could not land on
// either side of the invoice/work-order pair. It records which sides were
// attempted and the per-side failures, so callers can distinguish "nothing
// was resolvable" from "both writes failed".
type ArchiveError struct {
	InvoiceAttempted   bool
	WorkOrderAttempted bool
	InvoiceErr         error
	WorkOrderErr       error
}

func (e *ArchiveError) Error() string {
	if !e.InvoiceAttempted && !e.WorkOrderAttempted {
		return "archive: no resolvable invoice or work order identifier"
	}
	parts := make([]string, 0, 2)
	if e.InvoiceAttempted {
		parts = append(parts, fmt.Sprintf("invoice: %v", e.InvoiceErr))
	}
	if e.WorkOrderAttempted {
		parts = append(parts, fmt.Sprintf("work order: %v", e.WorkOrderErr))
	}
	return "archive failed on all attempted sides (" + strings.Join(parts, "; ") + ")"
}
