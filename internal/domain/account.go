package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAccountType is returned when a string names no known account type.
var ErrInvalidAccountType = errors.New("invalid account type")

type AccountType string

const (
	AccountTypeLDAP  AccountType = "LDAP"
	AccountTypeLocal AccountType = "Local"
)

// ParseAccountType matches s case-insensitively against the known types.
func ParseAccountType(s string) (AccountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ldap":
		return AccountTypeLDAP, nil
	case "local":
		return AccountTypeLocal, nil
	}
	return "", fmt.Errorf("%w: %q (use ldap or local)", ErrInvalidAccountType, s)
}

type Account struct {
	ID         string
	Labels     []Label
	LabelInput string
	Type       AccountType
	Login      string
	// Password is nil when absent. An empty string is a present, empty password.
	Password *string
}

// PasswordValue returns the password or "" when it is absent.
func (a *Account) PasswordValue() string {
	if a.Password == nil {
		return ""
	}
	return *a.Password
}

// SetPassword stores a copy of p as the account password.
func (a *Account) SetPassword(p string) {
	a.Password = &p
}

// SyncLabelsFromInput replaces Labels with the parsed LabelInput.
func (a *Account) SyncLabelsFromInput() {
	a.Labels = ParseLabels(a.LabelInput)
}

// SyncInputFromLabels rewrites LabelInput from Labels.
func (a *Account) SyncInputFromLabels() {
	a.LabelInput = LabelsString(a.Labels)
}

// Clone returns a deep copy so the result shares no memory with a.
func (a Account) Clone() Account {
	out := a
	if a.Labels != nil {
		out.Labels = make([]Label, len(a.Labels))
		copy(out.Labels, a.Labels)
	}
	if a.Password != nil {
		p := *a.Password
		out.Password = &p
	}
	return out
}
