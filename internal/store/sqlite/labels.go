package sqlite

import (
	"context"
	"fmt"

	"github.com/kenzo08/saa-soft-account-note/internal/domain"
)

// replaceLabels rewrites the label sequence of an account, keeping order.
func replaceLabels(ctx context.Context, tx execer, accountID string, labels []domain.Label) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM account_labels WHERE account_id = ?`, accountID); err != nil {
		return fmt.Errorf("failed to clear labels for %s: %w", accountID, err)
	}
	for i, l := range labels {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO account_labels (account_id, position, text) VALUES (?, ?, ?)`,
			accountID, i, l.Text,
		)
		if err != nil {
			return fmt.Errorf("failed to insert label for %s: %w", accountID, err)
		}
	}
	return nil
}

// listLabels returns the labels of one account in order.
func (s *DB) listLabels(ctx context.Context, accountID string) ([]domain.Label, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT text FROM account_labels WHERE account_id = ? ORDER BY position`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	defer rows.Close()

	labels := []domain.Label{}
	for rows.Next() {
		var l domain.Label
		if err := rows.Scan(&l.Text); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate labels: %w", err)
	}

	return labels, nil
}

// allLabels returns every stored label grouped by account ID.
func (s *DB) allLabels(ctx context.Context) (map[string][]domain.Label, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT account_id, text FROM account_labels ORDER BY account_id, position`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Label)
	for rows.Next() {
		var accountID string
		var l domain.Label
		if err := rows.Scan(&accountID, &l.Text); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		out[accountID] = append(out[accountID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate labels: %w", err)
	}

	return out, nil
}
