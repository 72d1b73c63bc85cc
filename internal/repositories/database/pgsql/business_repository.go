package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelworks/housing_ops_app/internal/apperrors"
	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	portsrepo "github.com/hostelworks/housing_ops_app/internal/core/ports/repositories"
	"github.com/hostelworks/housing_ops_app/internal/models"
	"github.com/hostelworks/housing_ops_app/internal/utils/mapping"
)

const paymentColumns = `payment_id, student_id, amount, payment_type, payment_date, reference,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment records.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepository {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PaymentRepository = (*PgxPaymentRepository)(nil)

// FindPaymentByID retrieves a payment by exact id.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	m, err := r.scanPayment(r.conn(ctx).QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment "+paymentID, err)
	}
	payment := mapping.ToDomainPayment(*m)
	return &payment, nil
}

// FindPaymentsByStudentID retrieves all payments recorded for a student.
func (r *PgxPaymentRepository) FindPaymentsByStudentID(ctx context.Context, studentID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE student_id = $1 ORDER BY payment_date;`
	return r.queryPayments(ctx, query, studentID)
}

// FindPaymentsByReference retrieves payments whose reference field exactly
// equals reference.
func (r *PgxPaymentRepository) FindPaymentsByReference(ctx context.Context, reference string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE reference = $1 ORDER BY payment_date;`
	return r.queryPayments(ctx, query, reference)
}

// DeletePayment removes a payment record.
func (r *PgxPaymentRepository) DeletePayment(ctx context.Context, paymentID string) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete payment "+paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPaymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		m, err := r.scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments = append(payments, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}
	return mapping.ToDomainPaymentSlice(payments), nil
}

func (r *PgxPaymentRepository) scanPayment(row pgx.Row) (*models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.StudentID,
		&m.Amount,
		&m.PaymentType,
		&m.PaymentDate,
		&m.Reference,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const expenseColumns = `expense_id, vendor_name, amount, expense_date, reference,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense records.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepository {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

// FindExpenseByID retrieves an expense by exact id.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.VendorExpense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	m, err := r.scanExpense(r.conn(ctx).QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find expense "+expenseID, err)
	}
	expense := mapping.ToDomainVendorExpense(*m)
	return &expense, nil
}

// FindExpensesByReference retrieves expenses whose reference field exactly
// equals reference.
func (r *PgxExpenseRepository) FindExpensesByReference(ctx context.Context, reference string) ([]domain.VendorExpense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE reference = $1 ORDER BY expense_date;`
	rows, err := r.conn(ctx).Query(ctx, query, reference)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		m, err := r.scanExpense(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		expenses = append(expenses, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense rows", err)
	}
	return mapping.ToDomainVendorExpenseSlice(expenses), nil
}

// DeleteExpense removes an expense record.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete expense "+expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxExpenseRepository) scanExpense(row pgx.Row) (*models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.VendorName,
		&m.Amount,
		&m.ExpenseDate,
		&m.Reference,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

type PgxApplicationRepository struct {
	BaseRepository
}

// newPgxApplicationRepository creates a new repository for housing applications.
func newPgxApplicationRepository(pool *pgxpool.Pool) portsrepo.ApplicationRepository {
	return &PgxApplicationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ApplicationRepository = (*PgxApplicationRepository)(nil)

// FindApplicationsByStudentID retrieves a student's housing applications.
func (r *PgxApplicationRepository) FindApplicationsByStudentID(ctx context.Context, studentID string) ([]domain.Application, error) {
	query := `
		SELECT application_id, student_id, status, created_at, created_by, last_updated_at, last_updated_by
		FROM applications
		WHERE student_id = $1
		ORDER BY created_at;
	`
	rows, err := r.conn(ctx).Query(ctx, query, studentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query applications for student "+studentID, err)
	}
	defer rows.Close()

	applications := []models.Application{}
	for rows.Next() {
		var m models.Application
		err := rows.Scan(
			&m.ApplicationID,
			&m.StudentID,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan application row", err)
		}
		applications = append(applications, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating application rows", err)
	}
	return mapping.ToDomainApplicationSlice(applications), nil
}

// UpdateApplicationStatus transitions an application's status.
func (r *PgxApplicationRepository) UpdateApplicationStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE applications
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE application_id = $1;
	`
	tag, err := r.conn(ctx).Exec(ctx, query, applicationID, string(status), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update application "+applicationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
