package domain

// OrderRef is the normalized cross-reference between an invoice and its
// work order. Either side may be empty; Resolvable reports whether at
// least one concrete identifier is present.
//
// Producing this once, via ResolveOrderRef, replaces the shape-guessing
// the call sites would otherwise do against work-order-like values of
// uncertain origin (real records, legacy rows, synthesized fallbacks).
type OrderRef struct {
	InvoiceID   string
	WorkOrderID string
}

// Resolvable reports whether the ref identifies at least one side.
func (r OrderRef) Resolvable() bool {
	return r.InvoiceID != "" || r.WorkOrderID != ""
}

// Ref normalizes the work order's own identifiers into an OrderRef.
func (w WorkOrder) Ref() OrderRef {
	return OrderRef{InvoiceID: w.InvoiceID, WorkOrderID: w.ID}
}

// ResolveOrderRef pairs an invoice with its work order. Resolution order:
// the work order referenced by the invoice's workOrderId among the known
// set, else a synthesized fallback carrying the identifiers the invoice
// itself holds. The returned ref is unresolvable only when the invoice
// has neither an id nor a work order reference.
func ResolveOrderRef(inv Invoice, workOrders []WorkOrder) (OrderRef, WorkOrder) {
	if inv.WorkOrderID != "" {
		for _, wo := range workOrders {
			if wo.ID == inv.WorkOrderID {
				ref := wo.Ref()
				if ref.InvoiceID == "" {
					ref.InvoiceID = inv.InvoiceID
				}
				return ref, wo
			}
		}
	}
	fallback := NewFallbackWorkOrder(inv)
	return fallback.Ref(), fallback
}
