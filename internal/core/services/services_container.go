package services

import (
	portsrepo "github.com/alqattan-optics/optical_pos_app/internal/core/ports/repositories"
	portssvc "github.com/alqattan-optics/optical_pos_app/internal/core/ports/services"
	"github.com/alqattan-optics/optical_pos_app/internal/metrics"
	"github.com/alqattan-optics/optical_pos_app/pkg/config"
)

// orderStore joins the two repository facades into the single store
// surface the lifecycle engine writes through.
type orderStore struct {
	portsrepo.InvoiceRepositoryFacade
	portsrepo.WorkOrderRepositoryFacade
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.LifecycleMetrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The reconciler comes first since the lifecycle engine feeds it.
	reconciler := NewReconciler(cfg.ArchiveRecencyWindow)
	container.Reconciler = reconciler

	store := orderStore{
		InvoiceRepositoryFacade:   repos.InvoiceRepo,
		WorkOrderRepositoryFacade: repos.WorkOrderRepo,
	}
	lifecycle := NewLifecycleService(store, reconciler, m, cfg.SettleDelay, cfg.ConvergeDelay)
	container.Lifecycle = lifecycle

	container.Transactions = NewTransactionService(repos.InvoiceRepo, repos.WorkOrderRepo, lifecycle, reconciler)
	container.Catalog = NewCatalogService(repos.ServiceRepo)
	container.Auth = NewAuthService(repos.StaffRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)

	return container
}

var (
	_ portsrepo.OrderStore = (*orderStore)(nil)
)
