package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kenzo08/saa-soft-account-note/internal/app"
	"github.com/kenzo08/saa-soft-account-note/internal/domain"
)

type filterMode int

const (
	filterAll filterMode = iota
	filterLocal
	filterLDAP
)

func (f filterMode) String() string {
	switch f {
	case filterLocal:
		return "Local"
	case filterLDAP:
		return "LDAP"
	default:
		return "All"
	}
}

// --- async result messages ---

type accountAddedMsg struct {
	account domain.Account
}

type accountSavedMsg struct {
	id      string
	changed bool
}

type accountDeletedMsg struct {
	id      string
	changed bool
}

type errMsg struct {
	err error
}

// --- root model ---

type model struct {
	session *app.Session

	list      accountListModel
	form      formModel
	filter    filterMode
	statusBar statusBar

	width  int
	height int
}

// NewModel creates the root TUI model over an already loaded session.
func NewModel(s *app.Session, showPasswords bool) model {
	m := model{
		session:   s,
		list:      newAccountList(showPasswords),
		form:      newForm(showPasswords),
		statusBar: newStatusBar(),
	}
	m.refresh()
	m.statusBar.setMessage(fmt.Sprintf("%d accounts", s.Accounts().Len()))
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- window resize ---
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.width = msg.Width
		m.list.SetSize(msg.Width-4, msg.Height-5)
		m.form.SetSize(msg.Width)
		return m, nil

	// --- async result messages ---
	case accountAddedMsg:
		m.refresh()
		m.list.SelectID(msg.account.ID)
		m.openForm(msg.account)
		m.statusBar.setMessage("Account added")
		return m, nil

	case accountSavedMsg:
		m.form.Close()
		m.statusBar.editing = false
		m.refresh()
		m.list.SelectID(msg.id)
		if msg.changed {
			m.statusBar.setMessage("Account saved")
		} else {
			m.statusBar.setMessage("Account no longer exists; nothing saved")
		}
		return m, nil

	case accountDeletedMsg:
		m.refresh()
		if msg.changed {
			m.statusBar.setMessage("Account deleted")
		}
		return m, nil

	case errMsg:
		if m.form.IsVisible() {
			m.form.SetError(msg.err)
		}
		m.statusBar.setError(fmt.Sprintf("Error: %v", msg.err))
		return m, nil

	// --- sub-model emitted messages ---
	case editAccountMsg:
		acct, ok := m.session.Accounts().AccountByID(msg.id)
		if !ok {
			m.refresh()
			return m, nil
		}
		m.openForm(acct)
		return m, nil

	case deleteAccountMsg:
		m.statusBar.setMessage("Deleting account...")
		return m, m.deleteCmd(msg.id)

	case saveAccountMsg:
		m.statusBar.setMessage("Saving account...")
		return m, m.saveCmd(msg.account)

	case cancelFormMsg:
		m.form.Close()
		m.statusBar.editing = false
		m.statusBar.setMessage("Edit cancelled")
		return m, nil

	// --- key events ---
	case tea.KeyMsg:
		// The form gets all key events when visible.
		if m.form.IsVisible() {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Add):
			return m, m.addCmd()

		case key.Matches(msg, keys.Filter):
			m.filter = (m.filter + 1) % 3
			m.refresh()
			m.statusBar.setMessage(fmt.Sprintf("Showing %s accounts", m.filter))
			return m, nil
		}

		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	// Cursor blink and other input ticks.
	if m.form.IsVisible() {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := titleStyle.Render("accountnote") + "  " +
		mutedTextStyle.Render(fmt.Sprintf("[%s]", m.filter))

	contentHeight := m.height - 4
	var content string
	if m.form.IsVisible() {
		content = lipgloss.NewStyle().
			Width(m.width).
			Height(contentHeight).
			Render(m.form.View())
	} else {
		content = listStyle.
			Width(m.width - 2).
			Height(contentHeight).
			Render(m.list.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, m.statusBar.View())
}

// --- helpers ---

func (m *model) openForm(acct domain.Account) {
	m.form.Open(acct)
	m.statusBar.editing = true
	m.statusBar.setMessage("Editing account")
}

// refresh reloads the list from the store using the current filter.
func (m *model) refresh() {
	accounts := m.session.Accounts()
	switch m.filter {
	case filterLocal:
		m.list.SetAccounts(accounts.LocalAccounts())
	case filterLDAP:
		m.list.SetAccounts(accounts.LDAPAccounts())
	default:
		m.list.SetAccounts(accounts.Accounts())
	}
}

// --- async commands ---

func (m model) addCmd() tea.Cmd {
	return func() tea.Msg {
		acct := m.session.Accounts().AddAccount()
		if err := m.session.Save(context.Background()); err != nil {
			return errMsg{err: err}
		}
		return accountAddedMsg{account: acct}
	}
}

func (m model) saveCmd(acct domain.Account) tea.Cmd {
	return func() tea.Msg {
		changed := m.session.Accounts().UpdateAccount(acct)
		if changed {
			if err := m.session.Save(context.Background()); err != nil {
				return errMsg{err: err}
			}
		}
		return accountSavedMsg{id: acct.ID, changed: changed}
	}
}

func (m model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		changed := m.session.Accounts().DeleteAccount(id)
		if changed {
			if err := m.session.Save(context.Background()); err != nil {
				return errMsg{err: err}
			}
		}
		return accountDeletedMsg{id: id, changed: changed}
	}
}

// Run starts the Bubble Tea TUI application.
func Run(s *app.Session, showPasswords bool) error {
	prog := tea.NewProgram(
		NewModel(s, showPasswords),
		tea.WithAltScreen(),
	)
	_, err := prog.Run()
	return err
}
