package repositories

import "context"

// TransactionManager scopes a function to a single storage transaction. The
// transaction handle travels in the context value passed to fn, so every
// repository call made with that context joins the same transaction. Nested calls
// reuse the surrounding transaction. The core issues one transaction per logical
// operation and never retries; retry-on-conflict is a caller concern.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
