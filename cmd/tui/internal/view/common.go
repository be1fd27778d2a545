package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/chama/internal/auth"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// Session is the role the operator logged in with.
type Session struct {
	Role auth.Role
}

func (s Session) Can(c auth.Capability) bool {
	return s.Role.Can(c)
}
