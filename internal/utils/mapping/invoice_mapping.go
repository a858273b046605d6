package mapping

import (
	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
	"github.com/alqattan-optics/optical_pos_app/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		WorkOrderID:   d.WorkOrderID,
		PatientID:     d.PatientID,
		InvoiceType:   string(d.InvoiceType),
		PatientName:   d.PatientName,
		PatientPhone:  d.PatientPhone,
		Total:         d.Total,
		Deposit:       d.Deposit,
		Remaining:     d.Remaining,
		IsPaid:        d.IsPaid,
		IsPickedUp:    d.IsPickedUp,
		IsRefunded:    d.IsRefunded,
		IsArchived:    d.IsArchived,
		CreatedAt:     d.CreatedAt,
		PickedUpAt:    d.PickedUpAt,
		LastEditedAt:  d.LastEditedAt,
		RefundID:      d.RefundID,
		RefundAmount:  d.RefundAmount,
		RefundMethod:  d.RefundMethod,
		RefundReason:  d.RefundReason,
		RefundDate:    d.RefundDate,
		ArchivedAt:    d.ArchivedAt,
		ArchiveReason: d.ArchiveReason,
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		WorkOrderID:   m.WorkOrderID,
		PatientID:     m.PatientID,
		InvoiceType:   domain.InvoiceType(m.InvoiceType),
		PatientName:   m.PatientName,
		PatientPhone:  m.PatientPhone,
		Total:         m.Total,
		Deposit:       m.Deposit,
		Remaining:     m.Remaining,
		IsPaid:        m.IsPaid,
		IsPickedUp:    m.IsPickedUp,
		IsRefunded:    m.IsRefunded,
		IsArchived:    m.IsArchived,
		CreatedAt:     m.CreatedAt,
		PickedUpAt:    m.PickedUpAt,
		LastEditedAt:  m.LastEditedAt,
		RefundID:      m.RefundID,
		RefundAmount:  m.RefundAmount,
		RefundMethod:  m.RefundMethod,
		RefundReason:  m.RefundReason,
		RefundDate:    m.RefundDate,
		ArchivedAt:    m.ArchivedAt,
		ArchiveReason: m.ArchiveReason,
	}
}

// ToDomainInvoiceSlice converts a slice of model Invoices to a slice of domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}
