package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/hostelworks/housing_ops_app/internal/apperrors"
	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	portsrepo "github.com/hostelworks/housing_ops_app/internal/core/ports/repositories"
	portssvc "github.com/hostelworks/housing_ops_app/internal/core/ports/services"
	"github.com/hostelworks/housing_ops_app/internal/dto"
	"github.com/hostelworks/housing_ops_app/internal/middleware"
)

// debtorService exposes the per-student financial summary: debtor balances plus
// the open accrual and deposit picture.
type debtorService struct {
	entryRepo portsrepo.EntryReader
	debtors   portsrepo.DebtorRepository
}

// NewDebtorService creates the debtor status service.
func NewDebtorService(entryRepo portsrepo.EntryReader, debtors portsrepo.DebtorRepository) portssvc.DebtorSvcFacade {
	return &debtorService{
		entryRepo: entryRepo,
		debtors:   debtors,
	}
}

var _ portssvc.DebtorSvcFacade = (*debtorService)(nil)

// GetStatus returns the student's current balances and outstanding accrual
// summary. A student with no debtor record yet reads as a zeroed active debtor.
func (s *debtorService) GetStatus(ctx context.Context, studentID string) (*dto.StudentStatusResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	debtor, err := s.debtors.FindDebtorByStudentID(ctx, studentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch debtor", slog.String("error", err.Error()), slog.String("student_id", studentID))
			return nil, err
		}
		d := domain.NewDebtor(studentID)
		debtor = &d
	}

	accruals, err := s.entryRepo.FindOpenAccrualsForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	openTotal := decimal.Zero
	for _, a := range accruals {
		openTotal = openTotal.Add(a.TotalDebit)
	}

	deposit, err := s.debtors.SumDepositHeld(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &dto.StudentStatusResponse{
		StudentID:        studentID,
		Status:           string(debtor.Status),
		TotalOwed:        debtor.TotalOwed,
		TotalPaid:        debtor.TotalPaid,
		CurrentBalance:   debtor.CurrentBalance,
		OverdueAmount:    debtor.OverdueAmount,
		DepositHeld:      deposit,
		OpenAccrualCount: len(accruals),
		OpenAccrualTotal: openTotal,
	}, nil
}
