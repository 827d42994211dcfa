// Package jsonfile persists the account collection as a versioned JSON
// snapshot.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kenzo08/saa-soft-account-note/internal/domain"
)

// Version is the snapshot format version written by Encode.
const Version = 1

type snapshot struct {
	Version  int           `json:"version"`
	Accounts []jsonAccount `json:"accounts"`
}

type jsonLabel struct {
	Text string `json:"text"`
}

type jsonAccount struct {
	ID          string      `json:"id"`
	Label       []jsonLabel `json:"label"`
	LabelInput  string      `json:"labelInput,omitempty"`
	AccountType string      `json:"accountType"`
	Login       string      `json:"login"`
	// No omitempty: null and "" are distinct passwords.
	Password *string `json:"password"`
}

// Encode serializes accounts into a snapshot.
func Encode(accounts []domain.Account) ([]byte, error) {
	snap := snapshot{Version: Version, Accounts: make([]jsonAccount, 0, len(accounts))}
	for _, a := range accounts {
		labels := make([]jsonLabel, 0, len(a.Labels))
		for _, l := range a.Labels {
			labels = append(labels, jsonLabel{Text: l.Text})
		}
		a = a.Clone()
		snap.Accounts = append(snap.Accounts, jsonAccount{
			ID:          a.ID,
			Label:       labels,
			LabelInput:  a.LabelInput,
			AccountType: string(a.Type),
			Login:       a.Login,
			Password:    a.Password,
		})
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a snapshot produced by Encode. Empty input is an empty
// collection.
func Decode(data []byte) ([]domain.Account, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.Account{}, nil
	}

	var snap snapshot
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Version != Version {
		return nil, fmt.Errorf("unsupported snapshot version %d (want %d)", snap.Version, Version)
	}

	accounts := make([]domain.Account, 0, len(snap.Accounts))
	seen := make(map[string]bool, len(snap.Accounts))
	for _, ja := range snap.Accounts {
		if ja.ID == "" {
			return nil, errors.New("failed to decode snapshot: account without id")
		}
		if seen[ja.ID] {
			return nil, fmt.Errorf("failed to decode snapshot: duplicate account id %s", ja.ID)
		}
		seen[ja.ID] = true

		acctType, err := domain.ParseAccountType(ja.AccountType)
		if err != nil {
			return nil, fmt.Errorf("failed to decode snapshot: account %s: %w", ja.ID, err)
		}

		labels := make([]domain.Label, 0, len(ja.Label))
		for _, l := range ja.Label {
			labels = append(labels, domain.Label{Text: l.Text})
		}
		accounts = append(accounts, domain.Account{
			ID:         ja.ID,
			Labels:     labels,
			LabelInput: ja.LabelInput,
			Type:       acctType,
			Login:      ja.Login,
			Password:   ja.Password,
		})
	}
	return accounts, nil
}

// FileStore keeps the snapshot in a single file.
type FileStore struct {
	path string
}

// New returns a FileStore at path. The file is created on first save.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the snapshot file path.
func (f *FileStore) Path() string {
	return f.path
}

// LoadAccounts reads the snapshot. A missing file is an empty collection.
func (f *FileStore) LoadAccounts(ctx context.Context) ([]domain.Account, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Account{}, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Decode(data)
}

// SaveAccounts writes the snapshot via a temp file and rename so readers
// never see a partial file.
func (f *FileStore) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(accounts)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".accounts-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Close is a no-op; FileStore holds no open handles.
func (f *FileStore) Close() error {
	return nil
}
