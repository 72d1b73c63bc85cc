package repositories

// RepositoryProvider bundles the repository implementations for service wiring.
type RepositoryProvider struct {
	EntryRepo       EntryRepositoryFacade
	AccountRepo     AccountDirectory
	DebtorRepo      DebtorRepository
	PaymentRepo     PaymentRepository
	ExpenseRepo     ExpenseRepository
	ApplicationRepo ApplicationRepository
	DeletionLog     DeletionLogSink
	AuditLog        AuditLogSink
	TxManager       TransactionManager
}
