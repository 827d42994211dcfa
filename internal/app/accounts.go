package app

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kenzo08/saa-soft-account-note/internal/domain"
)

// AccountStore owns the ordered account collection. Every operation is a
// single scan-and-mutate under the lock, so callers never observe a
// half-applied change. Lookups for unknown ids are no-ops, not errors.
type AccountStore struct {
	mu       sync.RWMutex
	accounts []domain.Account
	newID    func() string
	log      *zap.Logger
}

// AccountStoreOption configures an AccountStore.
type AccountStoreOption func(*AccountStore)

// WithIDGenerator overrides the uuid-based id generator.
func WithIDGenerator(gen func() string) AccountStoreOption {
	return func(s *AccountStore) { s.newID = gen }
}

// WithLogger attaches a logger for mutation events.
func WithLogger(l *zap.Logger) AccountStoreOption {
	return func(s *AccountStore) { s.log = l.Named("accounts") }
}

// NewAccountStore returns an empty AccountStore.
func NewAccountStore(opts ...AccountStoreOption) *AccountStore {
	s := &AccountStore{
		newID: uuid.NewString,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddAccount appends a new Local account with empty fields and returns it.
func (s *AccountStore) AddAccount() domain.Account {
	acct := domain.Account{
		ID:     s.newID(),
		Labels: []domain.Label{},
		Type:   domain.AccountTypeLocal,
	}
	acct.SetPassword("")

	s.mu.Lock()
	s.accounts = append(s.accounts, acct)
	n := len(s.accounts)
	s.mu.Unlock()

	s.log.Debug("account added", zap.String("id", acct.ID), zap.Int("count", n))
	return acct.Clone()
}

// UpdateAccount replaces the entry with acct.ID in place. It reports whether
// an entry was replaced; an unknown id leaves the collection untouched.
func (s *AccountStore) UpdateAccount(acct domain.Account) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(acct.ID)
	if i < 0 {
		s.log.Debug("update ignored, unknown id", zap.String("id", acct.ID))
		return false
	}
	s.accounts[i] = acct.Clone()
	s.log.Debug("account updated", zap.String("id", acct.ID), zap.Int("position", i))
	return true
}

// DeleteAccount removes the entry with the given id, keeping the order of the
// rest. It reports whether an entry was removed.
func (s *AccountStore) DeleteAccount(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.log.Debug("delete ignored, unknown id", zap.String("id", id))
		return false
	}
	s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
	s.log.Debug("account deleted", zap.String("id", id), zap.Int("count", len(s.accounts)))
	return true
}

// AccountByID returns a copy of the account with the given id.
func (s *AccountStore) AccountByID(id string) (domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Account{}, false
	}
	return s.accounts[i].Clone(), true
}

// LocalAccounts returns the Local accounts in collection order.
func (s *AccountStore) LocalAccounts() []domain.Account {
	return s.byType(domain.AccountTypeLocal)
}

// LDAPAccounts returns the LDAP accounts in collection order.
func (s *AccountStore) LDAPAccounts() []domain.Account {
	return s.byType(domain.AccountTypeLDAP)
}

// Accounts returns a copy of the whole collection.
func (s *AccountStore) Accounts() []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.accounts)
}

// Len returns the number of accounts.
func (s *AccountStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// Replace swaps in a restored collection, e.g. one loaded at startup.
func (s *AccountStore) Replace(accounts []domain.Account) {
	restored := cloneAll(accounts)
	s.mu.Lock()
	s.accounts = restored
	s.mu.Unlock()
	s.log.Debug("accounts restored", zap.Int("count", len(restored)))
}

func (s *AccountStore) byType(t domain.AccountType) []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Account{}
	for i := range s.accounts {
		if s.accounts[i].Type == t {
			out = append(out, s.accounts[i].Clone())
		}
	}
	return out
}

// indexOf must be called with s.mu held.
func (s *AccountStore) indexOf(id string) int {
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(accounts []domain.Account) []domain.Account {
	out := make([]domain.Account, len(accounts))
	for i := range accounts {
		out[i] = accounts[i].Clone()
	}
	return out
}
