package services

import (
	portsrepo "github.com/hostelworks/housing_ops_app/internal/core/ports/repositories"
	portssvc "github.com/hostelworks/housing_ops_app/internal/core/ports/services"
)

// NewServiceContainer creates a service container with properly initialized
// dependencies. The entry store comes first: the corrective engines all post
// their entries back through it, so its validation gate covers every write.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Entry = NewEntryService(repos.EntryRepo, repos.AccountRepo, repos.TxManager)
	container.Reversal = NewReversalService(repos.EntryRepo, container.Entry, repos.TxManager)
	container.Cascade = NewCascadeService(
		repos.EntryRepo,
		repos.PaymentRepo,
		repos.ExpenseRepo,
		repos.DeletionLog,
		repos.AuditLog,
		repos.TxManager,
	)
	container.Adjustment = NewAdjustmentService(repos.EntryRepo, container.Entry, repos.AccountRepo, repos.DebtorRepo, repos.TxManager)
	container.Forfeiture = NewForfeitureService(
		repos.EntryRepo,
		container.Entry,
		container.Reversal,
		repos.AccountRepo,
		repos.DebtorRepo,
		repos.PaymentRepo,
		repos.ApplicationRepo,
		repos.AuditLog,
		repos.TxManager,
	)
	container.Debtor = NewDebtorService(repos.EntryRepo, repos.DebtorRepo)

	return container
}
