package repositories

import (
	"context"

	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DebtorRepository stores per-student running balance records.
type DebtorRepository interface {
	// FindDebtorByStudentID retrieves a debtor record, or apperrors.ErrNotFound.
	FindDebtorByStudentID(ctx context.Context, studentID string) (*domain.Debtor, error)

	// SaveDebtor upserts a debtor record.
	SaveDebtor(ctx context.Context, debtor domain.Debtor) error

	// SumDepositHeld returns the net credit balance of deposit-liability lines
	// tagged with the student's id (deposits held minus deposits released).
	SumDepositHeld(ctx context.Context, studentID string) (decimal.Decimal, error)
}
