package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	portsrepo "github.com/hostelworks/housing_ops_app/internal/core/ports/repositories"
	portssvc "github.com/hostelworks/housing_ops_app/internal/core/ports/services"
	"github.com/hostelworks/housing_ops_app/internal/dto"
)

// passthroughTxManager runs the function directly; service tests exercise the
// logic inside the transaction without a real database.
type passthroughTxManager struct{}

var _ portsrepo.TransactionManager = (*passthroughTxManager)(nil)

func (passthroughTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepositoryFacade = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindReversalOf(ctx context.Context, originalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, originalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindEntriesBySource(ctx context.Context, kind domain.SourceKind, sourceID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, kind, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindEntriesByReference(ctx context.Context, reference string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindEntriesByLineMetadata(ctx context.Context, key, value string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, key, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindOpenAccrualsForStudent(ctx context.Context, studentID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntryTotals(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteLines(ctx context.Context, lineIDs []string) error {
	args := m.Called(ctx, lineIDs)
	return args.Error(0)
}

// --- Mock AccountDirectory ---
type MockAccountDirectory struct {
	mock.Mock
}

var _ portsrepo.AccountDirectory = (*MockAccountDirectory)(nil)

func (m *MockAccountDirectory) Resolve(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountDirectory) ResolveMany(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountDirectory) Ensure(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock DebtorRepository ---
type MockDebtorRepository struct {
	mock.Mock
}

var _ portsrepo.DebtorRepository = (*MockDebtorRepository)(nil)

func (m *MockDebtorRepository) FindDebtorByStudentID(ctx context.Context, studentID string) (*domain.Debtor, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debtor), args.Error(1)
}

func (m *MockDebtorRepository) SaveDebtor(ctx context.Context, debtor domain.Debtor) error {
	args := m.Called(ctx, debtor)
	return args.Error(0)
}

func (m *MockDebtorRepository) SumDepositHeld(ctx context.Context, studentID string) (decimal.Decimal, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock DeletionLogSink ---
type MockDeletionLogSink struct {
	mock.Mock
}

var _ portsrepo.DeletionLogSink = (*MockDeletionLogSink)(nil)

func (m *MockDeletionLogSink) AppendDeletionRecord(ctx context.Context, record domain.DeletionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// --- Mock AuditLogSink ---
type MockAuditLogSink struct {
	mock.Mock
}

var _ portsrepo.AuditLogSink = (*MockAuditLogSink)(nil)

func (m *MockAuditLogSink) AppendAuditRecord(ctx context.Context, record domain.AuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepository = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentsByStudentID(ctx context.Context, studentID string) ([]domain.Payment, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentsByReference(ctx context.Context, reference string) ([]domain.Payment, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) DeletePayment(ctx context.Context, paymentID string) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.ExpenseRepository = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.VendorExpense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VendorExpense), args.Error(1)
}

func (m *MockExpenseRepository) FindExpensesByReference(ctx context.Context, reference string) ([]domain.VendorExpense, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VendorExpense), args.Error(1)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

// --- Mock ApplicationRepository ---
type MockApplicationRepository struct {
	mock.Mock
}

var _ portsrepo.ApplicationRepository = (*MockApplicationRepository)(nil)

func (m *MockApplicationRepository) FindApplicationsByStudentID(ctx context.Context, studentID string) ([]domain.Application, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) UpdateApplicationStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, applicationID, status, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock EntryService ---
type MockEntryService struct {
	mock.Mock
}

var _ portssvc.EntrySvcFacade = (*MockEntryService)(nil)

func (m *MockEntryService) PostEntry(ctx context.Context, req dto.PostEntryRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) RemoveLine(ctx context.Context, entryID, lineID string, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, lineID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryService) VoidEntry(ctx context.Context, entryID string, actorID string) error {
	args := m.Called(ctx, entryID, actorID)
	return args.Error(0)
}

// --- Mock ReversalService ---
type MockReversalService struct {
	mock.Mock
}

var _ portssvc.ReversalSvcFacade = (*MockReversalService)(nil)

func (m *MockReversalService) ReverseEntry(ctx context.Context, originalEntryID, reason string, effectiveDate *time.Time, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, originalEntryID, reason, effectiveDate, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
