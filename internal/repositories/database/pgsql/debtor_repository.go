package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hostelworks/housing_ops_app/internal/apperrors"
	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	portsrepo "github.com/hostelworks/housing_ops_app/internal/core/ports/repositories"
	"github.com/hostelworks/housing_ops_app/internal/models"
	"github.com/hostelworks/housing_ops_app/internal/utils/mapping"
)

type PgxDebtorRepository struct {
	BaseRepository
}

// newPgxDebtorRepository creates a new repository for debtor balance records.
func newPgxDebtorRepository(pool *pgxpool.Pool) portsrepo.DebtorRepository {
	return &PgxDebtorRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxDebtorRepository implements portsrepo.DebtorRepository
var _ portsrepo.DebtorRepository = (*PgxDebtorRepository)(nil)

// FindDebtorByStudentID retrieves a debtor record by student id.
func (r *PgxDebtorRepository) FindDebtorByStudentID(ctx context.Context, studentID string) (*domain.Debtor, error) {
	query := `
		SELECT student_id, total_owed, total_paid, current_balance, overdue_amount, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM debtors
		WHERE student_id = $1;
	`
	var m models.Debtor
	err := r.conn(ctx).QueryRow(ctx, query, studentID).Scan(
		&m.StudentID,
		&m.TotalOwed,
		&m.TotalPaid,
		&m.CurrentBalance,
		&m.OverdueAmount,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find debtor "+studentID, err)
	}
	debtor := mapping.ToDomainDebtor(m)
	return &debtor, nil
}

// SaveDebtor upserts a debtor record.
func (r *PgxDebtorRepository) SaveDebtor(ctx context.Context, debtor domain.Debtor) error {
	m := mapping.ToModelDebtor(debtor)
	query := `
		INSERT INTO debtors (
			student_id, total_owed, total_paid, current_balance, overdue_amount, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (student_id) DO UPDATE SET
			total_owed = EXCLUDED.total_owed,
			total_paid = EXCLUDED.total_paid,
			current_balance = EXCLUDED.current_balance,
			overdue_amount = EXCLUDED.overdue_amount,
			status = EXCLUDED.status,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.StudentID,
		m.TotalOwed,
		m.TotalPaid,
		m.CurrentBalance,
		m.OverdueAmount,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save debtor "+m.StudentID, err)
	}
	return nil
}

// SumDepositHeld returns the net credit balance of deposit-liability lines
// tagged with the student's id on posted entries.
func (r *PgxDebtorRepository) SumDepositHeld(ctx context.Context, studentID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.credit - l.debit), 0)
		FROM entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_code = $1
		  AND l.metadata ->> $2 = $3
		  AND e.status = $4;
	`
	var total decimal.Decimal
	err := r.conn(ctx).QueryRow(ctx, query,
		domain.AccountDepositsHeld,
		domain.MetaStudentID,
		studentID,
		string(domain.Posted),
	).Scan(&total)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum deposits for student "+studentID, err)
	}
	return total, nil
}
