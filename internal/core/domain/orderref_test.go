package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkOrder_UnmarshalJSON_ToleratesBothReferenceSpellings(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "camelCase reference",
			body: `{"id":"WO-1","invoiceId":"INV-1"}`,
			want: "INV-1",
		},
		{
			name: "snake_case legacy reference",
			body: `{"id":"WO-1","invoice_id":"INV-2"}`,
			want: "INV-2",
		},
		{
			name: "camelCase wins when both present",
			body: `{"id":"WO-1","invoiceId":"INV-1","invoice_id":"INV-2"}`,
			want: "INV-1",
		},
		{
			name: "no reference at all",
			body: `{"id":"WO-1"}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var wo domain.WorkOrder
			require.NoError(t, json.Unmarshal([]byte(tt.body), &wo))
			assert.Equal(t, "WO-1", wo.ID)
			assert.Equal(t, tt.want, wo.InvoiceID)
		})
	}
}

func TestResolveOrderRef_PrefersKnownWorkOrder(t *testing.T) {
	inv := domain.Invoice{InvoiceID: "INV-1", WorkOrderID: "WO-1"}
	known := []domain.WorkOrder{
		{ID: "WO-0"},
		{ID: "WO-1", InvoiceID: "INV-1"},
	}

	ref, wo := domain.ResolveOrderRef(inv, known)

	assert.Equal(t, domain.OrderRef{InvoiceID: "INV-1", WorkOrderID: "WO-1"}, ref)
	assert.False(t, wo.Synthesized)
}

func TestResolveOrderRef_FillsMissingInvoiceSideFromInvoice(t *testing.T) {
	// The stored work order row lost its back-reference; the invoice side
	// of the ref must still be populated from the invoice itself.
	inv := domain.Invoice{InvoiceID: "INV-1", WorkOrderID: "WO-1"}
	known := []domain.WorkOrder{{ID: "WO-1"}}

	ref, _ := domain.ResolveOrderRef(inv, known)

	assert.Equal(t, "INV-1", ref.InvoiceID)
	assert.Equal(t, "WO-1", ref.WorkOrderID)
}

func TestResolveOrderRef_SynthesizesFallback(t *testing.T) {
	created := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	inv := domain.Invoice{InvoiceID: "INV-1", WorkOrderID: "WO-GONE", CreatedAt: created}

	ref, wo := domain.ResolveOrderRef(inv, nil)

	assert.Equal(t, domain.OrderRef{InvoiceID: "INV-1", WorkOrderID: "WO-GONE"}, ref)
	assert.True(t, wo.Synthesized)
	assert.Equal(t, created, wo.CreatedAt)
}

func TestOrderRef_Resolvable(t *testing.T) {
	assert.True(t, domain.OrderRef{InvoiceID: "INV-1"}.Resolvable())
	assert.True(t, domain.OrderRef{WorkOrderID: "WO-1"}.Resolvable())
	assert.False(t, domain.OrderRef{}.Resolvable())
}
