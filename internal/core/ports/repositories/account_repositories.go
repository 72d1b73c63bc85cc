package repositories

import (
	"context"

	"github.com/hostelworks/housing_ops_app/internal/core/domain"
)

// AccountDirectory resolves account codes to directory entries. The ledger core
// treats the directory as read-only apart from Ensure.
type AccountDirectory interface {
	// Resolve returns the account for code, or apperrors.ErrNotFound.
	Resolve(ctx context.Context, code string) (*domain.Account, error)

	// ResolveMany returns the accounts for the given codes, keyed by code.
	// Codes absent from the directory are simply missing from the map.
	ResolveMany(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// Ensure returns the account for the given code, creating it with the given
	// name and type when it does not exist yet.
	Ensure(ctx context.Context, account domain.Account) (*domain.Account, error)
}
