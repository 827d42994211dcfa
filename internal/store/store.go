package store

import (
	"context"
	"errors"

	"github.com/kenzo08/saa-soft-account-note/internal/domain"
)

// ErrNotFound is returned by row-level lookups when no account matches.
var ErrNotFound = errors.New("account not found")

// Store is the persistence boundary for the account collection. Every
// account field round-trips exactly, including a nil password, and labels
// are kept as structured sequences.
type Store interface {
	// LoadAccounts returns the persisted collection in order.
	LoadAccounts(ctx context.Context) ([]domain.Account, error)
	// SaveAccounts replaces the persisted collection with accounts.
	SaveAccounts(ctx context.Context, accounts []domain.Account) error

	// Lifecycle
	Close() error
}
