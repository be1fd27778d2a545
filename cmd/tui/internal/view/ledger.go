package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/chama/internal/auth"
	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/ledger"
	"github.com/MrJamesThe3rd/chama/internal/snapshot"
)

const (
	columnWidth = 44
	descWidth   = columnWidth - 20 // Date, amount and padding take the rest
)

type LedgerModel struct {
	CommonModel
	svc     *Services
	session Session

	month   time.Time
	snap    *snapshot.Snapshot
	loading bool
	err     error
	status  string
}

func NewLedgerModel(svc *Services, session Session) LedgerModel {
	return LedgerModel{
		svc:     svc,
		session: session,
		month:   chama.MonthStart(svc.now()),
		loading: true,
	}
}

func (m LedgerModel) Title() string { return "Ledger" }

func (m LedgerModel) ShortHelp() string {
	return "Esc: back | ←/→: month | s: sync (late fees) | r: refresh"
}

func (m LedgerModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerLoadedMsg:
		m.loading = false
		m.snap, m.err = msg.snap, msg.err

		return m, nil

	case sweepDoneMsg:
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Sync failed after %d penalties: %v", msg.posted, msg.err))
		} else {
			m.status = successStyle(fmt.Sprintf("Synced. %d late fees posted.", msg.posted))
		}

		return m, m.loadCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			m.month = shiftMonth(m.month, -1)
		case "right", "l":
			m.month = shiftMonth(m.month, 1)
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			if !m.session.Can(auth.CapSweep) {
				m.status = errorStyle("Your role cannot run the late fee sweep.")
				return m, nil
			}

			m.status = "Running late fee sweep..."

			return m, m.sweepCmd()
		}
	}

	return m, nil
}

func (m LedgerModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Syncing ledger...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	d := ledger.Summarize(m.snap.Members, m.snap.Loans, m.snap.Transactions)
	acct := ledger.Balance(m.snap.Transactions, m.month)

	header := fmt.Sprintf("%s | Liquidity: %s | Loans out: %s (%d)",
		activeStyle(monthLabel(m.month)),
		FormatAmount(d.TotalLiquidity),
		FormatAmount(d.ActiveLoanExposure),
		d.ActiveLoans,
	)

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		renderColumn("Dr (Receipts)", acct.Debits, acct.DebitFooter()),
		renderColumn("Cr (Payments)", acct.Credits, acct.CreditFooter()),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		columns,
	)

	if m.status != "" {
		content = m.status + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func renderColumn(title string, lines []ledger.Line, footer int64) string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(title) + "\n\n")

	for _, l := range lines {
		desc := l.Description
		if len(desc) > descWidth {
			desc = desc[:descWidth-3] + "..."
		}

		row := fmt.Sprintf("%s %-*s %10s", l.Date.Format("02 Jan"), descWidth, desc, FormatAmount(l.Amount))
		if l.Balancing {
			row = lipgloss.NewStyle().Italic(true).Render(row)
		}

		sb.WriteString(row + "\n")
	}

	sb.WriteString(strings.Repeat("-", columnWidth-2) + "\n")
	fmt.Fprintf(&sb, "%-*s %10s", columnWidth-13, "Total", FormatAmount(footer))

	return lipgloss.NewStyle().
		Width(columnWidth).
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(sb.String())
}

// Messages

type ledgerLoadedMsg struct {
	snap *snapshot.Snapshot
	err  error
}

func (m LedgerModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		snap, err := m.svc.Loader.Load(ctx)

		return ledgerLoadedMsg{snap: snap, err: err}
	}
}

type sweepDoneMsg struct {
	posted int
	err    error
}

func (m LedgerModel) sweepCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.svc.Sweeper.Run(ctx)

		return sweepDoneMsg{posted: len(res.Posted), err: err}
	}
}
