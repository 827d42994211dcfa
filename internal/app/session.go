package app

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kenzo08/saa-soft-account-note/internal/domain"
	"github.com/kenzo08/saa-soft-account-note/internal/store"
)

// Session binds an AccountStore to its persistence for one run of the
// application: Load at startup, Save after changes or on exit.
type Session struct {
	accounts *AccountStore
	store    store.Store
	log      *zap.Logger

	// saveMu orders saves so a later snapshot is never overwritten by an
	// earlier one.
	saveMu sync.Mutex
}

// NewSession creates a Session with an empty AccountStore backed by s.
func NewSession(s store.Store, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		accounts: NewAccountStore(WithLogger(logger)),
		store:    s,
		log:      logger.Named("session"),
	}
}

// Accounts returns the session's AccountStore.
func (s *Session) Accounts() *AccountStore {
	return s.accounts
}

// Load restores the collection from the store, replacing whatever the
// AccountStore held.
func (s *Session) Load(ctx context.Context) error {
	accounts, err := s.store.LoadAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}
	s.accounts.Replace(accounts)
	s.log.Info("accounts loaded", zap.Int("count", len(accounts)))
	return nil
}

// Save writes the current collection to the store. It is safe to call from
// several goroutines.
func (s *Session) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	accounts := s.accounts.Accounts()
	if err := s.store.SaveAccounts(ctx, accounts); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}
	s.log.Info("accounts saved", zap.Int("count", len(accounts)))
	return nil
}

// Import replaces the collection with accounts and saves it.
func (s *Session) Import(ctx context.Context, accounts []domain.Account) error {
	s.accounts.Replace(accounts)
	return s.Save(ctx)
}

// Close releases the underlying store.
func (s *Session) Close() error {
	return s.store.Close()
}
