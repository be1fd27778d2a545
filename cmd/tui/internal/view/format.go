package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MrJamesThe3rd/chama/internal/contribution"
)

const dbTimeout = 5 * time.Second

var printer = message.NewPrinter(language.English)

// FormatAmount formats whole currency units with thousands separators.
func FormatAmount(v int64) string {
	return printer.Sprintf("%d", v)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func errorStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(s)
}

func successStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(s)
}

func statusLabel(s contribution.Status) string {
	switch s {
	case contribution.StatusClear:
		return successStyle("CLEAR")
	case contribution.StatusPending:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("PENDING")
	case contribution.StatusArrears:
		return errorStyle("ARREARS")
	}

	return string(s)
}
