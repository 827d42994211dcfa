package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kenzo08/saa-soft-account-note/internal/domain"
	"github.com/kenzo08/saa-soft-account-note/internal/store"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr(s string) *string { return &s }

func TestCreateAccount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	acct := &domain.Account{
		ID:         "acc-1",
		Type:       domain.AccountTypeLocal,
		Login:      "alice",
		Password:   ptr("secret"),
		LabelInput: "ops;db",
		Labels:     []domain.Label{{Text: "ops"}, {Text: "db"}},
	}
	if err := db.CreateAccount(ctx, acct); err != nil {
		t.Fatalf("CreateAccount() error: %v", err)
	}

	got, err := db.GetAccount(ctx, "acc-1")
	if err != nil {
		t.Fatalf("GetAccount() error: %v", err)
	}
	if diff := cmp.Diff(acct, got); diff != "" {
		t.Errorf("GetAccount() mismatch (-want +got):\n%s", diff)
	}
}

func TestGetAccount_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetAccount(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("GetAccount(missing) error = %v, want ErrNotFound", err)
	}
}

func TestListAccounts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	db.CreateAccount(ctx, &domain.Account{ID: "a2", Type: domain.AccountTypeLDAP, Login: "b"})
	db.CreateAccount(ctx, &domain.Account{ID: "a1", Type: domain.AccountTypeLocal, Login: "a"})

	accounts, err := db.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts() error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("got %d accounts, want 2", len(accounts))
	}
	// Insertion order, not id order.
	if accounts[0].ID != "a2" || accounts[1].ID != "a1" {
		t.Errorf("order = [%s %s], want [a2 a1]", accounts[0].ID, accounts[1].ID)
	}
	if accounts[0].Labels == nil {
		t.Error("Labels = nil, want empty slice")
	}
}

func TestUpdateAccount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	db.CreateAccount(ctx, &domain.Account{ID: "a1", Type: domain.AccountTypeLocal, Login: "a", Password: ptr("x"),
		Labels: []domain.Label{{Text: "old"}}})

	updated := &domain.Account{ID: "a1", Type: domain.AccountTypeLDAP, Login: "ldap-a", Password: nil,
		Labels: []domain.Label{{Text: "n1"}, {Text: "n2"}}}
	if err := db.UpdateAccount(ctx, updated); err != nil {
		t.Fatalf("UpdateAccount() error: %v", err)
	}

	got, err := db.GetAccount(ctx, "a1")
	if err != nil {
		t.Fatalf("GetAccount() error: %v", err)
	}
	if diff := cmp.Diff(updated, got); diff != "" {
		t.Errorf("UpdateAccount() mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateAccount_UnknownIDIsNoop(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	db.CreateAccount(ctx, &domain.Account{ID: "a1", Type: domain.AccountTypeLocal, Login: "a"})
	if err := db.UpdateAccount(ctx, &domain.Account{ID: "ghost", Login: "g",
		Labels: []domain.Label{{Text: "x"}}}); err != nil {
		t.Fatalf("UpdateAccount(ghost) error: %v", err)
	}

	accounts, _ := db.ListAccounts(ctx)
	if len(accounts) != 1 || accounts[0].ID != "a1" {
		t.Errorf("accounts = %+v, want only a1", accounts)
	}
	labels, _ := db.allLabels(ctx)
	if _, ok := labels["ghost"]; ok {
		t.Error("labels written for unknown account")
	}
}

func TestDeleteAccount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	db.CreateAccount(ctx, &domain.Account{ID: "a1", Type: domain.AccountTypeLocal, Labels: []domain.Label{{Text: "x"}}})
	if err := db.DeleteAccount(ctx, "a1"); err != nil {
		t.Fatalf("DeleteAccount() error: %v", err)
	}
	if err := db.DeleteAccount(ctx, "a1"); err != nil {
		t.Fatalf("DeleteAccount() second call error: %v", err)
	}

	accounts, err := db.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts() error: %v", err)
	}
	if len(accounts) != 0 {
		t.Errorf("got %d accounts after delete, want 0", len(accounts))
	}
	labels, _ := db.allLabels(ctx)
	if len(labels) != 0 {
		t.Errorf("labels left after delete: %v", labels)
	}
}

func TestListAccounts_UnknownType(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.db.ExecContext(ctx,
		`INSERT INTO accounts (id, position, account_type, login) VALUES ('a1', 0, 'admin', 'x')`,
	); err != nil {
		t.Fatalf("insert error: %v", err)
	}

	if _, err := db.ListAccounts(ctx); !errors.Is(err, domain.ErrInvalidAccountType) {
		t.Errorf("ListAccounts() error = %v, want ErrInvalidAccountType", err)
	}
	if _, err := db.GetAccount(ctx, "a1"); !errors.Is(err, domain.ErrInvalidAccountType) {
		t.Errorf("GetAccount() error = %v, want ErrInvalidAccountType", err)
	}
}

func TestSaveAndLoadAccounts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	db.CreateAccount(ctx, &domain.Account{ID: "stale", Type: domain.AccountTypeLocal})

	accounts := []domain.Account{
		{ID: "z", Type: domain.AccountTypeLocal, Login: "z", Password: ptr(""), Labels: []domain.Label{}},
		{ID: "a", Type: domain.AccountTypeLDAP, Login: "a", Password: nil, LabelInput: "p ; q",
			Labels: []domain.Label{{Text: "p"}, {Text: "q"}, {Text: "p"}}},
		{ID: "m", Type: domain.AccountTypeLocal, Login: "m", Password: ptr("pw"), Labels: []domain.Label{}},
	}
	if err := db.SaveAccounts(ctx, accounts); err != nil {
		t.Fatalf("SaveAccounts() error: %v", err)
	}

	got, err := db.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("LoadAccounts() error: %v", err)
	}
	if diff := cmp.Diff(accounts, got); diff != "" {
		t.Errorf("LoadAccounts() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveAccounts_FileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.db")
	ctx := context.Background()

	db, err := New(path)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	want := []domain.Account{{ID: "a1", Type: domain.AccountTypeLocal, Login: "a", Password: ptr("pw"),
		Labels: []domain.Label{{Text: "x"}}}}
	if err := db.SaveAccounts(ctx, want); err != nil {
		t.Fatalf("SaveAccounts() error: %v", err)
	}
	db.Close()

	db, err = New(path)
	if err != nil {
		t.Fatalf("New() reopen error: %v", err)
	}
	defer db.Close()

	got, err := db.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("LoadAccounts() error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reopened mismatch (-want +got):\n%s", diff)
	}
}
