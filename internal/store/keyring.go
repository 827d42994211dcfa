package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/kenzo08/saa-soft-account-note/internal/domain"
)

const serviceName = "accountnote"

// SecretStore keeps account passwords outside the main store.
type SecretStore interface {
	SavePassword(accountID, password string) error
	LoadPassword(accountID string) (string, bool, error)
	DeletePassword(accountID string) error
}

// KeyringSecretStore persists passwords in the OS keyring
// (macOS Keychain, Windows Credential Manager, or Linux Secret Service).
type KeyringSecretStore struct{}

// NewKeyringSecretStore returns a new KeyringSecretStore.
func NewKeyringSecretStore() *KeyringSecretStore {
	return &KeyringSecretStore{}
}

// SavePassword stores the password in the OS keyring under the account ID.
func (k *KeyringSecretStore) SavePassword(accountID, password string) error {
	if err := keyring.Set(serviceName, accountID, password); err != nil {
		return fmt.Errorf("failed to save password to keyring: %w", err)
	}
	return nil
}

// LoadPassword retrieves the password for the given account ID. The boolean
// is false when the keyring holds no entry for it.
func (k *KeyringSecretStore) LoadPassword(accountID string) (string, bool, error) {
	p, err := keyring.Get(serviceName, accountID)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load password from keyring: %w", err)
	}
	return p, true, nil
}

// DeletePassword removes the password for the given account ID. A missing
// entry is not an error.
func (k *KeyringSecretStore) DeletePassword(accountID string) error {
	err := keyring.Delete(serviceName, accountID)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete password from keyring: %w", err)
	}
	return nil
}

// secretStore moves passwords into a SecretStore on save and puts them back
// on load. After a save the inner store only holds nil passwords.
type secretStore struct {
	Store
	secrets SecretStore
}

// WithSecrets wraps inner so that passwords are held by secrets instead.
// Plain-text passwords already in inner are kept on load and moved into
// secrets by the next save.
func WithSecrets(inner Store, secrets SecretStore) Store {
	return &secretStore{Store: inner, secrets: secrets}
}

func (s *secretStore) LoadAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.Store.LoadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		p, ok, err := s.secrets.LoadPassword(accounts[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to restore password for %s: %w", accounts[i].ID, err)
		}
		if ok {
			accounts[i].SetPassword(p)
		}
	}
	return accounts, nil
}

// SaveAccounts writes new passwords before the inner save and removes stale
// ones only after it succeeds.
func (s *secretStore) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	previous, err := s.Store.LoadAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to read previous accounts: %w", err)
	}

	stripped := make([]domain.Account, len(accounts))
	kept := make(map[string]bool, len(accounts))
	var cleared []string
	for i := range accounts {
		stripped[i] = accounts[i].Clone()
		stripped[i].Password = nil
		kept[accounts[i].ID] = true

		if accounts[i].Password == nil {
			cleared = append(cleared, accounts[i].ID)
			continue
		}
		if err := s.secrets.SavePassword(accounts[i].ID, *accounts[i].Password); err != nil {
			return err
		}
	}

	if err := s.Store.SaveAccounts(ctx, stripped); err != nil {
		return err
	}

	for _, a := range previous {
		if !kept[a.ID] {
			cleared = append(cleared, a.ID)
		}
	}
	for _, id := range cleared {
		if err := s.secrets.DeletePassword(id); err != nil {
			return err
		}
	}
	return nil
}
