package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kenzo08/saa-soft-account-note/internal/domain"
	"github.com/kenzo08/saa-soft-account-note/internal/store"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const accountColumns = `id, account_type, login, password, label_input`

// CreateAccount appends acct after the last stored account.
func (s *DB) CreateAccount(ctx context.Context, acct *domain.Account) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM accounts`,
	).Scan(&next); err != nil {
		return fmt.Errorf("failed to read next position: %w", err)
	}

	if err := insertAccount(ctx, tx, acct, next); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit account: %w", err)
	}
	return nil
}

// GetAccount returns the account with the given id, or store.ErrNotFound.
func (s *DB) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	a, err := scanAccount(s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get account %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", id, err)
	}

	labels, err := s.listLabels(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Labels = labels
	return &a, nil
}

// ListAccounts returns all accounts in collection order.
func (s *DB) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	labels, err := s.allLabels(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if l, ok := labels[accounts[i].ID]; ok {
			accounts[i].Labels = l
		}
	}
	return accounts, nil
}

// UpdateAccount overwrites the stored fields and labels of acct. An unknown
// id is a no-op.
func (s *DB) UpdateAccount(ctx context.Context, acct *domain.Account) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE accounts SET
			account_type = ?,
			login        = ?,
			password     = ?,
			label_input  = ?,
			updated_at   = CURRENT_TIMESTAMP
		WHERE id = ?`,
		string(acct.Type), acct.Login, nullPassword(acct.Password), acct.LabelInput, acct.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", acct.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return nil
	}
	if err := replaceLabels(ctx, tx, acct.ID, acct.Labels); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit account %s: %w", acct.ID, err)
	}
	return nil
}

// DeleteAccount removes the account and its labels. An unknown id is a no-op.
func (s *DB) DeleteAccount(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", id, err)
	}
	return nil
}

// LoadAccounts implements store.Store.
func (s *DB) LoadAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.ListAccounts(ctx)
}

// SaveAccounts replaces every stored account with accounts in one transaction.
func (s *DB) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
		return fmt.Errorf("failed to clear accounts: %w", err)
	}
	for i := range accounts {
		if err := insertAccount(ctx, tx, &accounts[i], i); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit accounts: %w", err)
	}
	return nil
}

func insertAccount(ctx context.Context, tx execer, acct *domain.Account, position int) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO accounts (id, position, account_type, login, password, label_input) VALUES (?, ?, ?, ?, ?, ?)`,
		acct.ID, position, string(acct.Type), acct.Login, nullPassword(acct.Password), acct.LabelInput,
	)
	if err != nil {
		return fmt.Errorf("failed to create account %s: %w", acct.ID, err)
	}
	return replaceLabels(ctx, tx, acct.ID, acct.Labels)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		a        domain.Account
		acctType string
		password sql.NullString
	)
	if err := row.Scan(&a.ID, &acctType, &a.Login, &password, &a.LabelInput); err != nil {
		return domain.Account{}, err
	}
	t, err := domain.ParseAccountType(acctType)
	if err != nil {
		return domain.Account{}, fmt.Errorf("account %s: %w", a.ID, err)
	}
	a.Type = t
	if password.Valid {
		a.SetPassword(password.String)
	}
	a.Labels = []domain.Label{}
	return a, nil
}

func nullPassword(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}
