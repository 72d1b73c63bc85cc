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

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for the account directory.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountDirectory {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountRepository implements portsrepo.AccountDirectory
var _ portsrepo.AccountDirectory = (*PgxAccountRepository)(nil)

const accountColumns = `account_code, name, account_type, created_at, created_by, last_updated_at, last_updated_by`

// Resolve returns the account for code, or apperrors.ErrNotFound.
func (r *PgxAccountRepository) Resolve(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_code = $1;`
	var m models.Account
	err := r.conn(ctx).QueryRow(ctx, query, code).Scan(
		&m.AccountCode,
		&m.Name,
		&m.AccountType,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to resolve account "+code, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// ResolveMany returns the accounts for the given codes, keyed by code. Codes
// absent from the directory are simply missing from the map.
func (r *PgxAccountRepository) ResolveMany(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_code = ANY($1);`
	rows, err := r.conn(ctx).Query(ctx, query, codes)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to resolve accounts", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Account, len(codes))
	for rows.Next() {
		var m models.Account
		err := rows.Scan(
			&m.AccountCode,
			&m.Name,
			&m.AccountType,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		result[m.AccountCode] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return result, nil
}

// Ensure returns the account for the given code, creating it when absent. The
// insert is a no-op when the code already exists; the stored name and type win.
func (r *PgxAccountRepository) Ensure(ctx context.Context, account domain.Account) (*domain.Account, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $4, $5)
		ON CONFLICT (account_code) DO NOTHING;
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		account.AccountCode,
		account.Name,
		string(account.AccountType),
		now,
		account.CreatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to ensure account "+account.AccountCode, err)
	}
	return r.Resolve(ctx, account.AccountCode)
}
