package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hostelworks/housing_ops_app/internal/apperrors"
	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	portssvc "github.com/hostelworks/housing_ops_app/internal/core/ports/services"
	"github.com/hostelworks/housing_ops_app/internal/core/services"
	"github.com/hostelworks/housing_ops_app/internal/dto"
	"github.com/hostelworks/housing_ops_app/internal/handlers"
	"github.com/hostelworks/housing_ops_app/internal/middleware"
)

// --- Mock EntryService ---
type MockEntryService struct {
	mock.Mock
}

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

var _ portssvc.EntrySvcFacade = (*MockEntryService)(nil)

// --- Mock ReversalService ---
type MockReversalService struct {
	mock.Mock
}

func (m *MockReversalService) ReverseEntry(ctx context.Context, originalEntryID, reason string, effectiveDate *time.Time, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, originalEntryID, reason, effectiveDate, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.ReversalSvcFacade = (*MockReversalService)(nil)

// --- Mock CascadeService ---
type MockCascadeService struct {
	mock.Mock
}

func (m *MockCascadeService) DeleteWithCascade(ctx context.Context, entryID string, actor string, reason string, opts dto.CascadeOptions) (*dto.CascadeResult, error) {
	args := m.Called(ctx, entryID, actor, reason, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CascadeResult), args.Error(1)
}

var _ portssvc.CascadeSvcFacade = (*MockCascadeService)(nil)

// --- Mock AdjustmentService ---
type MockAdjustmentService struct {
	mock.Mock
}

func (m *MockAdjustmentService) ApplyDiscount(ctx context.Context, req dto.ApplyDiscountRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.AdjustmentSvcFacade = (*MockAdjustmentService)(nil)

// --- Mock ForfeitureService ---
type MockForfeitureService struct {
	mock.Mock
}

func (m *MockForfeitureService) ForfeitStudent(ctx context.Context, studentID, reason string, actorID string) (*domain.ForfeitureResult, error) {
	args := m.Called(ctx, studentID, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ForfeitureResult), args.Error(1)
}

var _ portssvc.ForfeitureSvcFacade = (*MockForfeitureService)(nil)

// --- Mock DebtorService ---
type MockDebtorService struct {
	mock.Mock
}

func (m *MockDebtorService) GetStatus(ctx context.Context, studentID string) (*dto.StudentStatusResponse, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StudentStatusResponse), args.Error(1)
}

var _ portssvc.DebtorSvcFacade = (*MockDebtorService)(nil)

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockEntrySvc      *MockEntryService
	mockReversalSvc   *MockReversalService
	mockCascadeSvc    *MockCascadeService
	mockAdjustmentSvc *MockAdjustmentService
	mockForfeitureSvc *MockForfeitureService
	mockDebtorSvc     *MockDebtorService
	actorID           string
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.actorID = uuid.NewString()

	suite.mockEntrySvc = new(MockEntryService)
	suite.mockReversalSvc = new(MockReversalService)
	suite.mockCascadeSvc = new(MockCascadeService)
	suite.mockAdjustmentSvc = new(MockAdjustmentService)
	suite.mockForfeitureSvc = new(MockForfeitureService)
	suite.mockDebtorSvc = new(MockDebtorService)

	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Entry:      suite.mockEntrySvc,
		Reversal:   suite.mockReversalSvc,
		Cascade:    suite.mockCascadeSvc,
		Adjustment: suite.mockAdjustmentSvc,
		Forfeiture: suite.mockForfeitureSvc,
		Debtor:     suite.mockDebtorSvc,
	})
}

func (suite *LedgerHandlerTestSuite) doJSON(method, url string, body any, withActor bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		suite.Require().NoError(err)
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if withActor {
		req.Header.Set(middleware.ActorHeader, suite.actorID)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LedgerHandlerTestSuite) samplePostRequest() dto.PostEntryRequest {
	return dto.PostEntryRequest{
		TransactionReference: "INV-2025-001",
		Date:                 time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		Description:          "September rent accrual",
		Lines: []dto.EntryLineRequest{
			{AccountCode: domain.AccountStudentReceivables, Debit: decimal.NewFromInt(450)},
			{AccountCode: domain.AccountRentIncome, Credit: decimal.NewFromInt(450)},
		},
	}
}

func (suite *LedgerHandlerTestSuite) TestPostEntry_Success() {
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{
		EntryID:              entryID,
		TransactionReference: "INV-2025-001",
		EntryDate:            time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		Status:               domain.Posted,
		TotalDebit:           decimal.NewFromInt(450),
		TotalCredit:          decimal.NewFromInt(450),
	}

	suite.mockEntrySvc.On("PostEntry", mock.Anything, mock.AnythingOfType("dto.PostEntryRequest"), suite.actorID).
		Return(posted, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/entries/", suite.samplePostRequest(), true)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entryID, resp.EntryID)
	suite.Equal("POSTED", resp.Status)
	suite.mockEntrySvc.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestPostEntry_MissingActorHeader() {
	w := suite.doJSON(http.MethodPost, "/api/v1/entries/", suite.samplePostRequest(), false)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEntrySvc.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestPostEntry_UnbalancedRejected() {
	suite.mockEntrySvc.On("PostEntry", mock.Anything, mock.AnythingOfType("dto.PostEntryRequest"), suite.actorID).
		Return(nil, services.ErrEntryUnbalanced).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/entries/", suite.samplePostRequest(), true)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetEntry_NotFound() {
	entryID := uuid.NewString()
	suite.mockEntrySvc.On("GetEntryByID", mock.Anything, entryID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/entries/"+entryID, nil, true)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestReverseEntry_AlreadyReversedConflict() {
	entryID := uuid.NewString()
	suite.mockReversalSvc.On("ReverseEntry", mock.Anything, entryID, "duplicate charge", (*time.Time)(nil), suite.actorID).
		Return(nil, services.ErrAlreadyReversed).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/entries/"+entryID+"/reverse",
		dto.ReverseEntryRequest{Reason: "duplicate charge"}, true)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestDeleteWithCascade_Success() {
	entryID := uuid.NewString()
	result := &dto.CascadeResult{
		TargetEntryID:   entryID,
		DeletedEntryIDs: []string{entryID},
		EntriesDeleted:  1,
		DeletionRecords: 1,
		AuditLogged:     true,
	}
	suite.mockCascadeSvc.On("DeleteWithCascade", mock.Anything, entryID, suite.actorID, "posted in error", dto.CascadeOptions{}).
		Return(result, nil).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/entries/"+entryID,
		dto.DeleteWithCascadeRequest{Reason: "posted in error"}, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CascadeResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(1, resp.EntriesDeleted)
	suite.True(resp.AuditLogged)
	suite.mockCascadeSvc.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestDeleteWithCascade_IntegrityRefusal() {
	entryID := uuid.NewString()
	suite.mockCascadeSvc.On("DeleteWithCascade", mock.Anything, entryID, suite.actorID, "", dto.CascadeOptions{}).
		Return(nil, services.ErrWouldUnbalanceRemainder).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/entries/"+entryID,
		dto.DeleteWithCascadeRequest{}, true)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestDeleteWithCascade_MissingActorHeader() {
	entryID := uuid.NewString()

	w := suite.doJSON(http.MethodDelete, "/api/v1/entries/"+entryID,
		dto.DeleteWithCascadeRequest{Reason: "posted in error"}, false)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCascadeSvc.AssertNotCalled(suite.T(), "DeleteWithCascade",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestForfeitStudent_Success() {
	studentID := uuid.NewString()
	result := &domain.ForfeitureResult{
		StudentID:        studentID,
		ReversedEntryIDs: []string{uuid.NewString()},
		ReversedTotal:    decimal.NewFromInt(900),
	}
	suite.mockForfeitureSvc.On("ForfeitStudent", mock.Anything, studentID, "abandoned room", suite.actorID).
		Return(result, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/students/"+studentID+"/forfeit",
		dto.ForfeitStudentRequest{Reason: "abandoned room"}, true)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetStudentStatus_Success() {
	studentID := uuid.NewString()
	status := &dto.StudentStatusResponse{
		StudentID:      studentID,
		Status:         string(domain.DebtorActive),
		CurrentBalance: decimal.NewFromInt(150),
		DepositHeld:    decimal.NewFromInt(200),
	}
	suite.mockDebtorSvc.On("GetStatus", mock.Anything, studentID).
		Return(status, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/students/"+studentID+"/status", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.StudentStatusResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.CurrentBalance.Equal(decimal.NewFromInt(150)))
}

func TestLedgerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
