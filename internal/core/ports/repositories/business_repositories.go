package repositories

import (
	"context"
	"time"

	"github.com/hostelworks/housing_ops_app/internal/core/domain"
)

// PaymentRepository gives the core read access to payment records, plus the
// explicit delete used by cascade deletion.
type PaymentRepository interface {
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	FindPaymentsByStudentID(ctx context.Context, studentID string) ([]domain.Payment, error)
	// FindPaymentsByReference matches the reference field exactly; no pattern
	// matching.
	FindPaymentsByReference(ctx context.Context, reference string) ([]domain.Payment, error)
	DeletePayment(ctx context.Context, paymentID string) error
}

// ExpenseRepository gives the core read access to expense records, plus the
// explicit delete used by cascade deletion.
type ExpenseRepository interface {
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.VendorExpense, error)
	FindExpensesByReference(ctx context.Context, reference string) ([]domain.VendorExpense, error)
	DeleteExpense(ctx context.Context, expenseID string) error
}

// ApplicationRepository exposes the single write the forfeiture orchestrator
// performs on application records (marking them expired) and the lookup feeding
// it. Application lifecycle management otherwise lives outside the core.
type ApplicationRepository interface {
	FindApplicationsByStudentID(ctx context.Context, studentID string) ([]domain.Application, error)
	UpdateApplicationStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus, updatedBy string, updatedAt time.Time) error
}
