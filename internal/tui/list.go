package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kenzo08/saa-soft-account-note/internal/domain"
)

// Messages emitted by accountListModel.

type editAccountMsg struct {
	id string
}

type deleteAccountMsg struct {
	id string
}

// accountListModel is a scrollable list of accounts with a cursor.
type accountListModel struct {
	accounts      []domain.Account
	cursor        int
	offset        int
	width         int
	height        int
	showPasswords bool
}

func newAccountList(showPasswords bool) accountListModel {
	return accountListModel{showPasswords: showPasswords}
}

// SetAccounts replaces the displayed accounts, keeping the cursor in range.
func (l *accountListModel) SetAccounts(accounts []domain.Account) {
	l.accounts = accounts
	if l.cursor >= len(accounts) {
		l.cursor = len(accounts) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.clampOffset()
}

// SelectID moves the cursor to the account with the given id, if shown.
func (l *accountListModel) SelectID(id string) {
	for i := range l.accounts {
		if l.accounts[i].ID == id {
			l.cursor = i
			l.clampOffset()
			return
		}
	}
}

// Selected returns the account under the cursor.
func (l accountListModel) Selected() (domain.Account, bool) {
	if l.cursor < 0 || l.cursor >= len(l.accounts) {
		return domain.Account{}, false
	}
	return l.accounts[l.cursor], true
}

// SetSize updates the list dimensions.
func (l *accountListModel) SetSize(w, h int) {
	l.width = w
	l.height = h
	l.clampOffset()
}

// Update handles navigation and the per-account actions.
func (l accountListModel) Update(msg tea.Msg) (accountListModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(l.accounts) == 0 {
		return l, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if l.cursor < len(l.accounts)-1 {
			l.cursor++
		}
	case key.Matches(keyMsg, keys.Edit):
		id := l.accounts[l.cursor].ID
		return l, func() tea.Msg { return editAccountMsg{id: id} }
	case key.Matches(keyMsg, keys.Delete):
		id := l.accounts[l.cursor].ID
		return l, func() tea.Msg { return deleteAccountMsg{id: id} }
	}
	l.clampOffset()
	return l, nil
}

// View renders one row per account.
func (l accountListModel) View() string {
	if len(l.accounts) == 0 {
		return mutedTextStyle.Render("No accounts. Press a to add one.")
	}

	labelsW, typeW, loginW := l.columnWidths()
	header := mutedTextStyle.Render(fmt.Sprintf("  %-*s %-*s %-*s %s",
		labelsW, "LABELS", typeW, "TYPE", loginW, "LOGIN", "PASSWORD"))

	rows := []string{header}
	end := min(l.offset+l.visibleRows(), len(l.accounts))
	for i := l.offset; i < end; i++ {
		a := l.accounts[i]
		typeText := fmt.Sprintf("%-*s", typeW, a.Type)
		if a.Type == domain.AccountTypeLDAP {
			typeText = ldapStyle.Render(typeText)
		} else {
			typeText = localStyle.Render(typeText)
		}
		row := fmt.Sprintf("%s %s %s %s",
			fmt.Sprintf("%-*s", labelsW, truncate(domain.LabelsString(a.Labels), labelsW)),
			typeText,
			fmt.Sprintf("%-*s", loginW, truncate(a.Login, loginW)),
			passwordText(a, l.showPasswords),
		)
		if i == l.cursor {
			rows = append(rows, selectedStyle.Render("> "+row))
		} else {
			rows = append(rows, "  "+row)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (l accountListModel) columnWidths() (labelsW, typeW, loginW int) {
	typeW = 6
	rest := l.width - typeW - 14
	if rest < 20 {
		rest = 20
	}
	labelsW = rest / 2
	loginW = rest - labelsW
	return
}

func (l accountListModel) visibleRows() int {
	// One line is taken by the header.
	if l.height <= 1 {
		return len(l.accounts)
	}
	return l.height - 1
}

func (l *accountListModel) clampOffset() {
	rows := l.visibleRows()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+rows {
		l.offset = l.cursor - rows + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

func passwordText(a domain.Account, show bool) string {
	switch {
	case a.Type == domain.AccountTypeLDAP:
		return mutedTextStyle.Render("n/a")
	case a.Password == nil || *a.Password == "":
		return errorTextStyle.Render("missing")
	case show:
		return *a.Password
	default:
		return strings.Repeat("•", 8)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
