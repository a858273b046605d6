package pgsql

import (
	portsrepo "github.com/alqattan-optics/optical_pos_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		InvoiceRepo:   newPgxInvoiceRepository(dbPool),
		WorkOrderRepo: newPgxWorkOrderRepository(dbPool),
		ServiceRepo:   newPgxServiceRepository(dbPool),
		StaffRepo:     newPgxStaffRepository(dbPool),
	}
}
