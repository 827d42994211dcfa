package cli

import (
	"github.com/kenzo08/saa-soft-account-note/internal/domain"
)

// ---------------------------------------------------------------------------
// Account JSON types (account list / show)
// ---------------------------------------------------------------------------

type jsonAccount struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Login       string   `json:"login"`
	Labels      []string `json:"labels"`
	LabelInput  string   `json:"label_input,omitempty"`
	HasPassword bool     `json:"has_password"`
	Password    *string  `json:"password,omitempty"`
}

func toJSONAccount(a domain.Account, showPasswords bool) jsonAccount {
	labels := make([]string, 0, len(a.Labels))
	for _, l := range a.Labels {
		labels = append(labels, l.Text)
	}
	out := jsonAccount{
		ID:          a.ID,
		Type:        string(a.Type),
		Login:       a.Login,
		Labels:      labels,
		LabelInput:  a.LabelInput,
		HasPassword: a.Password != nil && *a.Password != "",
	}
	if showPasswords && a.Password != nil {
		p := *a.Password
		out.Password = &p
	}
	return out
}

func toJSONAccounts(accounts []domain.Account, showPasswords bool) []jsonAccount {
	out := make([]jsonAccount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toJSONAccount(a, showPasswords))
	}
	return out
}

// ---------------------------------------------------------------------------
// Label JSON types (labels parse)
// ---------------------------------------------------------------------------

type jsonLabel struct {
	Text string `json:"text"`
}

func toJSONLabels(labels []domain.Label) []jsonLabel {
	out := make([]jsonLabel, 0, len(labels))
	for _, l := range labels {
		out = append(out, jsonLabel{Text: l.Text})
	}
	return out
}

// ---------------------------------------------------------------------------
// Action result JSON type
// ---------------------------------------------------------------------------

type jsonAction struct {
	OK        bool   `json:"ok"`
	Action    string `json:"action"`
	AccountID string `json:"account_id,omitempty"`
	Changed   bool   `json:"changed"`
	Count     int    `json:"count,omitempty"`
}

// maskPassword renders a password for table output.
func maskPassword(p *string, show bool) string {
	switch {
	case p == nil:
		return "-"
	case *p == "":
		return "(empty)"
	case show:
		return *p
	default:
		return "********"
	}
}
