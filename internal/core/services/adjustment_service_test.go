package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hostelworks/housing_ops_app/internal/apperrors"
	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	portssvc "github.com/hostelworks/housing_ops_app/internal/core/ports/services"
	"github.com/hostelworks/housing_ops_app/internal/core/services"
	"github.com/hostelworks/housing_ops_app/internal/dto"
)

type AdjustmentServiceTestSuite struct {
	suite.Suite
	mockEntryRepo *MockEntryRepository
	mockEntrySvc  *MockEntryService
	mockAccounts  *MockAccountDirectory
	mockDebtors   *MockDebtorRepository
	service       portssvc.AdjustmentSvcFacade
	actorID       string
	studentID     string
}

func (suite *AdjustmentServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockEntrySvc = new(MockEntryService)
	suite.mockAccounts = new(MockAccountDirectory)
	suite.mockDebtors = new(MockDebtorRepository)
	suite.service = services.NewAdjustmentService(
		suite.mockEntryRepo,
		suite.mockEntrySvc,
		suite.mockAccounts,
		suite.mockDebtors,
		passthroughTxManager{},
	)
	suite.actorID = uuid.NewString()
	suite.studentID = uuid.NewString()
}

func (suite *AdjustmentServiceTestSuite) expectEnsuredAccounts(ctx context.Context) {
	rentIncome := domain.Account{AccountCode: domain.AccountRentIncome, Name: "Rent Income", AccountType: domain.Income}
	receivables := domain.Account{AccountCode: domain.AccountStudentReceivables, Name: "Student Receivables", AccountType: domain.Asset}
	suite.mockAccounts.On("Ensure", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountCode == domain.AccountRentIncome
	})).Return(&rentIncome, nil)
	suite.mockAccounts.On("Ensure", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountCode == domain.AccountStudentReceivables
	})).Return(&receivables, nil)
}

func (suite *AdjustmentServiceTestSuite) TestApplyDiscount_Success() {
	ctx := context.Background()
	req := dto.ApplyDiscountRequest{
		StudentID:        suite.studentID,
		OriginalAmount:   decimal.NewFromInt(150),
		NegotiatedAmount: decimal.NewFromInt(140),
		PaymentType:      string(domain.PaymentRent),
	}

	suite.expectEnsuredAccounts(ctx)

	var captured dto.PostEntryRequest
	posted := &domain.JournalEntry{EntryID: uuid.NewString(), Status: domain.Posted}
	suite.mockEntrySvc.On("PostEntry", ctx, mock.AnythingOfType("dto.PostEntryRequest"), suite.actorID).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(dto.PostEntryRequest)
		}).
		Return(posted, nil).Once()

	existing := domain.Debtor{
		StudentID:      suite.studentID,
		Status:         domain.DebtorActive,
		TotalOwed:      decimal.NewFromInt(150),
		TotalPaid:      decimal.Zero,
		CurrentBalance: decimal.NewFromInt(150),
		OverdueAmount:  decimal.Zero,
	}
	suite.mockDebtors.On("FindDebtorByStudentID", ctx, suite.studentID).Return(&existing, nil).Once()

	var savedDebtor domain.Debtor
	suite.mockDebtors.On("SaveDebtor", ctx, mock.AnythingOfType("domain.Debtor")).
		Run(func(args mock.Arguments) {
			savedDebtor = args.Get(1).(domain.Debtor)
		}).
		Return(nil).Once()

	entry, err := suite.service.ApplyDiscount(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(posted.EntryID, entry.EntryID)

	// A 10 discount: debit the income account, credit the receivable.
	suite.Require().Len(captured.Lines, 2)
	suite.Equal(domain.AccountRentIncome, captured.Lines[0].AccountCode)
	suite.True(captured.Lines[0].Debit.Equal(decimal.NewFromInt(10)))
	suite.Equal(domain.AccountStudentReceivables, captured.Lines[1].AccountCode)
	suite.True(captured.Lines[1].Credit.Equal(decimal.NewFromInt(10)))
	for _, l := range captured.Lines {
		suite.Equal(domain.MetaTrue, l.Metadata[domain.MetaIsAdjustment])
		suite.Equal(suite.studentID, l.Metadata[domain.MetaStudentID])
	}

	// The negotiated amount is the student's effective outstanding afterwards.
	suite.True(savedDebtor.TotalOwed.Equal(decimal.NewFromInt(140)))
	suite.True(savedDebtor.CurrentBalance.Equal(decimal.NewFromInt(140)))

	suite.mockEntrySvc.AssertExpectations(suite.T())
	suite.mockDebtors.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestApplyDiscount_LinkedAccrual() {
	ctx := context.Background()
	accrual := &domain.JournalEntry{
		EntryID:              uuid.NewString(),
		TransactionReference: "RENT-2026-03",
		EntryDate:            time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:               domain.Posted,
	}
	req := dto.ApplyDiscountRequest{
		StudentID:        suite.studentID,
		OriginalAmount:   decimal.NewFromInt(450),
		NegotiatedAmount: decimal.NewFromInt(400),
		PaymentType:      string(domain.PaymentRent),
		LinkedAccrualID:  &accrual.EntryID,
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, accrual.EntryID).Return(accrual, nil).Once()
	suite.expectEnsuredAccounts(ctx)

	var captured dto.PostEntryRequest
	suite.mockEntrySvc.On("PostEntry", ctx, mock.AnythingOfType("dto.PostEntryRequest"), suite.actorID).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(dto.PostEntryRequest)
		}).
		Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()
	suite.mockDebtors.On("FindDebtorByStudentID", ctx, suite.studentID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockDebtors.On("SaveDebtor", ctx, mock.AnythingOfType("domain.Debtor")).Return(nil).Once()

	_, err := suite.service.ApplyDiscount(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.True(accrual.EntryDate.Equal(captured.Date))
	suite.Equal(accrual.TransactionReference, captured.TransactionReference)
	suite.Equal(accrual.EntryID, captured.Lines[0].Metadata[domain.MetaOriginalEntryID])
}

func (suite *AdjustmentServiceTestSuite) TestApplyDiscount_InvalidAmounts() {
	ctx := context.Background()

	cases := []struct {
		name       string
		original   decimal.Decimal
		negotiated decimal.Decimal
	}{
		{"negotiated above original", decimal.NewFromInt(100), decimal.NewFromInt(120)},
		{"negotiated equals original", decimal.NewFromInt(100), decimal.NewFromInt(100)},
		{"negotiated zero", decimal.NewFromInt(100), decimal.Zero},
		{"negotiated negative", decimal.NewFromInt(100), decimal.NewFromInt(-5)},
	}
	for _, tc := range cases {
		req := dto.ApplyDiscountRequest{
			StudentID:        suite.studentID,
			OriginalAmount:   tc.original,
			NegotiatedAmount: tc.negotiated,
			PaymentType:      string(domain.PaymentRent),
		}
		_, err := suite.service.ApplyDiscount(ctx, req, suite.actorID)
		suite.Require().Error(err, tc.name)
		suite.ErrorIs(err, services.ErrInvalidAmounts, tc.name)
	}
	suite.mockEntrySvc.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestApplyDiscount_UnknownPaymentType() {
	ctx := context.Background()
	req := dto.ApplyDiscountRequest{
		StudentID:        suite.studentID,
		OriginalAmount:   decimal.NewFromInt(100),
		NegotiatedAmount: decimal.NewFromInt(80),
		PaymentType:      "TUITION",
	}

	_, err := suite.service.ApplyDiscount(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AdjustmentServiceTestSuite) TestApplyDiscount_AccrualNotFound() {
	ctx := context.Background()
	missingID := uuid.NewString()
	req := dto.ApplyDiscountRequest{
		StudentID:        suite.studentID,
		OriginalAmount:   decimal.NewFromInt(100),
		NegotiatedAmount: decimal.NewFromInt(80),
		PaymentType:      string(domain.PaymentRent),
		LinkedAccrualID:  &missingID,
	}

	suite.mockEntryRepo.On("FindEntryByID", ctx, missingID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ApplyDiscount(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccrualNotFound)
	suite.mockEntrySvc.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdjustmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdjustmentServiceTestSuite))
}
