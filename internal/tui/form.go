package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kenzo08/saa-soft-account-note/internal/domain"
)

var (
	errLoginRequired    = errors.New("login is required")
	errPasswordRequired = errors.New("password is required for Local accounts")
)

// Messages emitted by formModel.

type saveAccountMsg struct {
	account domain.Account
}

type cancelFormMsg struct{}

// Field indices within the account form.
const (
	fieldLabels = iota
	fieldType
	fieldLogin
	fieldPassword
)

// formModel edits a single account.
type formModel struct {
	labelsInput   textinput.Model
	loginInput    textinput.Model
	passwordInput textinput.Model

	account     domain.Account
	accountType domain.AccountType
	activeField int
	err         error

	width   int
	visible bool
}

func newForm(showPasswords bool) formModel {
	labels := textinput.New()
	labels.Placeholder = "label1; label2"
	labels.CharLimit = 50
	labels.Prompt = ""

	login := textinput.New()
	login.Placeholder = "login"
	login.CharLimit = 100
	login.Prompt = ""

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 100
	password.Prompt = ""
	if !showPasswords {
		password.EchoMode = textinput.EchoPassword
		password.EchoCharacter = '•'
	}

	return formModel{
		labelsInput:   labels,
		loginInput:    login,
		passwordInput: password,
	}
}

// Open shows the form pre-filled from acct.
func (f *formModel) Open(acct domain.Account) {
	f.account = acct.Clone()
	f.accountType = acct.Type
	if f.accountType == "" {
		f.accountType = domain.AccountTypeLocal
	}

	labelText := acct.LabelInput
	if labelText == "" {
		labelText = domain.LabelsString(acct.Labels)
	}
	f.labelsInput.SetValue(labelText)
	f.loginInput.SetValue(acct.Login)
	f.passwordInput.SetValue(acct.PasswordValue())

	f.err = nil
	f.visible = true
	f.activeField = fieldLabels
	f.updateFocus()
}

// Close hides the form.
func (f *formModel) Close() {
	f.visible = false
	f.err = nil
	f.labelsInput.Blur()
	f.loginInput.Blur()
	f.passwordInput.Blur()
}

// IsVisible reports whether the form is displayed.
func (f formModel) IsVisible() bool {
	return f.visible
}

// SetSize updates the available width.
func (f *formModel) SetSize(w int) {
	f.width = w
}

// SetError shows err under the form fields.
func (f *formModel) SetError(err error) {
	f.err = err
}

// Update handles key events for the form.
func (f formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	if !f.visible {
		return f, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.Back):
			return f, func() tea.Msg { return cancelFormMsg{} }

		case key.Matches(keyMsg, keys.Next):
			f.moveField(1)
			return f, nil

		case key.Matches(keyMsg, keys.Prev):
			f.moveField(-1)
			return f, nil

		case key.Matches(keyMsg, keys.Save):
			acct, err := f.BuildAccount()
			if err != nil {
				f.err = err
				return f, nil
			}
			return f, func() tea.Msg { return saveAccountMsg{account: acct} }

		case f.activeField == fieldType && key.Matches(keyMsg, keys.Toggle):
			f.toggleType()
			return f, nil
		}
	}

	var cmd tea.Cmd
	switch f.activeField {
	case fieldLabels:
		f.labelsInput, cmd = f.labelsInput.Update(msg)
	case fieldLogin:
		f.loginInput, cmd = f.loginInput.Update(msg)
	case fieldPassword:
		f.passwordInput, cmd = f.passwordInput.Update(msg)
	}
	return f, cmd
}

// BuildAccount applies the field values to the edited account. Labels are
// parsed from the label text here, at the edit boundary. LDAP accounts
// carry no password.
func (f formModel) BuildAccount() (domain.Account, error) {
	acct := f.account.Clone()
	acct.LabelInput = f.labelsInput.Value()
	acct.SyncLabelsFromInput()
	acct.Type = f.accountType
	acct.Login = f.loginInput.Value()

	if strings.TrimSpace(acct.Login) == "" {
		return domain.Account{}, errLoginRequired
	}
	if acct.Type == domain.AccountTypeLDAP {
		acct.Password = nil
		return acct, nil
	}
	if f.passwordInput.Value() == "" {
		return domain.Account{}, errPasswordRequired
	}
	acct.SetPassword(f.passwordInput.Value())
	return acct, nil
}

// View renders the form inside a bordered box.
func (f formModel) View() string {
	if !f.visible {
		return ""
	}

	innerWidth := max(f.width-4, 20)
	inputWidth := max(innerWidth-11, 10)
	f.labelsInput.Width = inputWidth
	f.loginInput.Width = inputWidth
	f.passwordInput.Width = inputWidth

	rows := []string{
		f.fieldLabel(fieldLabels, "Labels:") + f.labelsInput.View(),
		f.fieldLabel(fieldType, "Type:") + f.typeView(),
		f.fieldLabel(fieldLogin, "Login:") + f.loginInput.View(),
	}
	if f.accountType != domain.AccountTypeLDAP {
		rows = append(rows, f.fieldLabel(fieldPassword, "Password:")+f.passwordInput.View())
	}
	rows = append(rows, mutedTextStyle.Render("Separate labels with ;"))
	if f.err != nil {
		rows = append(rows, errorTextStyle.Render(f.err.Error()))
	}
	rows = append(rows, "", mutedTextStyle.Render("Tab:fields  Space:type  Ctrl+S:save  Esc:cancel"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Padding(0, 1).
		Width(max(f.width-2, 10))

	title := titleStyle.Render(" Edit account ")
	return title + "\n" + boxStyle.Render(strings.Join(rows, "\n"))
}

// --- internal helpers ---

func (f formModel) fields() []int {
	if f.accountType == domain.AccountTypeLDAP {
		return []int{fieldLabels, fieldType, fieldLogin}
	}
	return []int{fieldLabels, fieldType, fieldLogin, fieldPassword}
}

func (f *formModel) moveField(delta int) {
	fields := f.fields()
	pos := 0
	for i, fld := range fields {
		if fld == f.activeField {
			pos = i
			break
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)
	f.activeField = fields[pos]
	f.updateFocus()
}

func (f *formModel) toggleType() {
	if f.accountType == domain.AccountTypeLDAP {
		f.accountType = domain.AccountTypeLocal
	} else {
		f.accountType = domain.AccountTypeLDAP
		f.passwordInput.SetValue("")
	}
}

func (f *formModel) updateFocus() {
	f.labelsInput.Blur()
	f.loginInput.Blur()
	f.passwordInput.Blur()

	switch f.activeField {
	case fieldLabels:
		f.labelsInput.Focus()
	case fieldLogin:
		f.loginInput.Focus()
	case fieldPassword:
		f.passwordInput.Focus()
	}
}

func (f formModel) fieldLabel(field int, text string) string {
	label := fmt.Sprintf("%-10s ", text)
	if f.activeField == field {
		return titleStyle.Render(label)
	}
	return mutedTextStyle.Render(label)
}

func (f formModel) typeView() string {
	local, ldap := "( ) Local", "( ) LDAP"
	if f.accountType == domain.AccountTypeLDAP {
		ldap = "(•) LDAP"
	} else {
		local = "(•) Local"
	}
	return local + "  " + ldap
}
