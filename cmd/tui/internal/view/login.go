package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/chama/internal/auth"
)

// LoginMsg is sent once a role secret has been accepted.
type LoginMsg struct {
	Session Session
}

type loginFields struct {
	role   auth.Role
	secret string
}

type LoginModel struct {
	CommonModel
	auth *auth.Service

	form       *huh.Form
	fields     *loginFields
	submitting bool
	err        error
}

func NewLoginModel(authSvc *auth.Service) LoginModel {
	m := LoginModel{auth: authSvc}
	m.reset()

	return m
}

func (m *LoginModel) reset() {
	m.fields = &loginFields{role: auth.RoleTreasurer}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[auth.Role]().
				Title("Role").
				Options(
					huh.NewOption("Treasurer", auth.RoleTreasurer),
					huh.NewOption("Admin", auth.RoleAdmin),
					huh.NewOption("Viewer", auth.RoleViewer),
				).
				Value(&m.fields.role),
			huh.NewInput().
				Title("PIN").
				EchoMode(huh.EchoModePassword).
				Value(&m.fields.secret),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(loginFailedMsg); ok {
		m.err = msg.err
		m.submitting = false
		m.reset()

		return m, m.form.Init()
	}

	if m.submitting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitting = true
		return m, m.authenticateCmd()
	case huh.StateAborted:
		return m, tea.Quit
	}

	return m, cmd
}

func (m LoginModel) View() string {
	content := "Chama\n\n" + m.form.View()
	if m.err != nil {
		content += "\n" + errorStyle(fmt.Sprintf("Login failed: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}

type loginFailedMsg struct {
	err error
}

func (m LoginModel) authenticateCmd() tea.Cmd {
	role, secret := m.fields.role, m.fields.secret

	return func() tea.Msg {
		token, err := m.auth.Authenticate(role, secret)
		if err != nil {
			return loginFailedMsg{err: err}
		}

		return LoginMsg{Session: Session{Role: token.Role}}
	}
}
