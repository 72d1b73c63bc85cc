package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/hostelworks/housing_ops_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx-backed repositories over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		EntryRepo:       newPgxEntryRepository(dbPool),
		AccountRepo:     newPgxAccountRepository(dbPool),
		DebtorRepo:      newPgxDebtorRepository(dbPool),
		PaymentRepo:     newPgxPaymentRepository(dbPool),
		ExpenseRepo:     newPgxExpenseRepository(dbPool),
		ApplicationRepo: newPgxApplicationRepository(dbPool),
		DeletionLog:     newPgxDeletionLogRepository(dbPool),
		AuditLog:        newPgxAuditLogRepository(dbPool),
		TxManager:       NewPgxTransactionManager(dbPool),
	}
}
