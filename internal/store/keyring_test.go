package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zalando/go-keyring"

	"github.com/kenzo08/saa-soft-account-note/internal/domain"
)

// memStore is a Store that keeps accounts in a slice. SaveAccounts fails
// with saveErr when it is set.
type memStore struct {
	accounts []domain.Account
	saveErr  error
}

func (m *memStore) LoadAccounts(ctx context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, len(m.accounts))
	for i := range m.accounts {
		out[i] = m.accounts[i].Clone()
	}
	return out, nil
}

func (m *memStore) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.accounts = make([]domain.Account, len(accounts))
	for i := range accounts {
		m.accounts[i] = accounts[i].Clone()
	}
	return nil
}

func (m *memStore) Close() error { return nil }

func ptr(s string) *string { return &s }

func TestKeyringSecretStore(t *testing.T) {
	keyring.MockInit()
	k := NewKeyringSecretStore()

	if _, ok, err := k.LoadPassword("missing"); err != nil || ok {
		t.Fatalf("LoadPassword(missing) = ok %v, err %v; want false, nil", ok, err)
	}
	if err := k.SavePassword("a1", "pw"); err != nil {
		t.Fatalf("SavePassword() error: %v", err)
	}
	got, ok, err := k.LoadPassword("a1")
	if err != nil || !ok || got != "pw" {
		t.Fatalf("LoadPassword(a1) = %q, %v, %v; want %q, true, nil", got, ok, err, "pw")
	}
	if err := k.DeletePassword("a1"); err != nil {
		t.Fatalf("DeletePassword() error: %v", err)
	}
	if err := k.DeletePassword("a1"); err != nil {
		t.Fatalf("DeletePassword() on missing entry error: %v", err)
	}
}

func TestWithSecrets_RoundTrip(t *testing.T) {
	keyring.MockInit()
	inner := &memStore{}
	s := WithSecrets(inner, NewKeyringSecretStore())
	ctx := context.Background()

	accounts := []domain.Account{
		{ID: "a1", Type: domain.AccountTypeLocal, Login: "alice", Password: ptr("pw1"), Labels: []domain.Label{{Text: "x"}}},
		{ID: "a2", Type: domain.AccountTypeLDAP, Login: "bob", Password: nil},
		{ID: "a3", Type: domain.AccountTypeLocal, Login: "carol", Password: ptr("")},
	}
	if err := s.SaveAccounts(ctx, accounts); err != nil {
		t.Fatalf("SaveAccounts() error: %v", err)
	}

	for _, a := range inner.accounts {
		if a.Password != nil {
			t.Errorf("inner store holds password for %s", a.ID)
		}
	}

	got, err := s.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("LoadAccounts() error: %v", err)
	}
	if diff := cmp.Diff(accounts, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWithSecrets_DropsRemovedAccountPasswords(t *testing.T) {
	keyring.MockInit()
	secrets := NewKeyringSecretStore()
	s := WithSecrets(&memStore{}, secrets)
	ctx := context.Background()

	if err := s.SaveAccounts(ctx, []domain.Account{{ID: "a1", Password: ptr("pw")}}); err != nil {
		t.Fatalf("SaveAccounts() error: %v", err)
	}
	if err := s.SaveAccounts(ctx, nil); err != nil {
		t.Fatalf("SaveAccounts(nil) error: %v", err)
	}
	if _, ok, _ := secrets.LoadPassword("a1"); ok {
		t.Error("password for removed account still in keyring")
	}
}

func TestWithSecrets_FailedSaveKeepsPasswords(t *testing.T) {
	keyring.MockInit()
	inner := &memStore{}
	s := WithSecrets(inner, NewKeyringSecretStore())
	ctx := context.Background()

	want := []domain.Account{{ID: "a1", Type: domain.AccountTypeLocal, Login: "alice", Password: ptr("secret")}}
	if err := s.SaveAccounts(ctx, want); err != nil {
		t.Fatalf("SaveAccounts() error: %v", err)
	}

	boom := errors.New("disk full")
	inner.saveErr = boom
	if err := s.SaveAccounts(ctx, nil); !errors.Is(err, boom) {
		t.Fatalf("SaveAccounts(nil) error = %v, want %v", err, boom)
	}
	cleared := []domain.Account{{ID: "a1", Type: domain.AccountTypeLocal, Login: "alice"}}
	if err := s.SaveAccounts(ctx, cleared); !errors.Is(err, boom) {
		t.Fatalf("SaveAccounts(cleared) error = %v, want %v", err, boom)
	}

	got, err := s.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("LoadAccounts() error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("accounts after failed save mismatch (-want +got):\n%s", diff)
	}
}

func TestWithSecrets_MovesPlainPasswords(t *testing.T) {
	keyring.MockInit()
	secrets := NewKeyringSecretStore()
	inner := &memStore{accounts: []domain.Account{
		{ID: "a1", Type: domain.AccountTypeLocal, Login: "alice", Password: ptr("plain")},
		{ID: "a2", Type: domain.AccountTypeLDAP, Login: "bob"},
	}}
	s := WithSecrets(inner, secrets)
	ctx := context.Background()

	loaded, err := s.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("LoadAccounts() error: %v", err)
	}
	if got := loaded[0].PasswordValue(); got != "plain" {
		t.Fatalf("loaded password = %q, want %q", got, "plain")
	}
	if loaded[1].Password != nil {
		t.Errorf("loaded password for a2 = %q, want nil", *loaded[1].Password)
	}

	if err := s.SaveAccounts(ctx, loaded); err != nil {
		t.Fatalf("SaveAccounts() error: %v", err)
	}
	if inner.accounts[0].Password != nil {
		t.Error("inner store still holds plain-text password after save")
	}
	if p, ok, _ := secrets.LoadPassword("a1"); !ok || p != "plain" {
		t.Errorf("keyring password = %q, %v; want %q, true", p, ok, "plain")
	}

	again, err := s.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("LoadAccounts() after save error: %v", err)
	}
	if diff := cmp.Diff(loaded, again); diff != "" {
		t.Errorf("reload mismatch (-want +got):\n%s", diff)
	}
}
