package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/transaction"
)

var kindFilters = []chama.Kind{
	"",
	chama.KindDeposit,
	chama.KindFine,
	chama.KindLatePenalty,
	chama.KindLoanIssuance,
	chama.KindLoanRepayment,
}

var dateLabels = []string{"All Time", "This Month", "Last Month"}

type ListModel struct {
	CommonModel
	svc *Services

	table table.Model
	txs   []*chama.Transaction
	names map[uuid.UUID]string

	kindFilterIdx int
	dateFilterIdx int

	filter  transaction.ListFilter
	loading bool
	err     error
}

func NewListModel(svc *Services) ListModel {
	return ListModel{
		svc:     svc,
		loading: true,
		table: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Member", Width: 20},
			{Title: "Kind", Width: 15},
			{Title: "Amount", Width: 10},
			{Title: "Description", Width: 40},
		}),
	}
}

func (m ListModel) Title() string { return "Transactions" }

func (m ListModel) ShortHelp() string {
	return "Esc: back | k: kind filter | d: date filter | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.txs = msg.txs
		m.names = msg.names
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadTxsCmd()
		case "k":
			m.kindFilterIdx = (m.kindFilterIdx + 1) % len(kindFilters)
			m.applyFilter()

			return m, m.loadTxsCmd()
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % len(dateLabels)
			m.applyFilter()

			return m, m.loadTxsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	kind := "All"
	if k := kindFilters[m.kindFilterIdx]; k != "" {
		kind = k.Label()
	}

	header := fmt.Sprintf(
		"Filter: [k] Kind: %s | [d] Date: %s",
		activeStyle(kind),
		activeStyle(dateLabels[m.dateFilterIdx]),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	))
}

func (m *ListModel) applyFilter() {
	m.filter.Kind = nil
	if k := kindFilters[m.kindFilterIdx]; k != "" {
		m.filter.Kind = &k
	}

	now := m.svc.now()

	switch m.dateFilterIdx {
	case 1:
		s, e := monthRange(now)
		m.filter.StartDate = &s
		m.filter.EndDate = &e
	case 2:
		s, e := monthRange(shiftMonth(now, -1))
		m.filter.StartDate = &s
		m.filter.EndDate = &e
	default:
		m.filter.StartDate = nil
		m.filter.EndDate = nil
	}
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))

	// Newest first.
	for i := len(m.txs) - 1; i >= 0; i-- {
		tx := m.txs[i]
		rows = append(rows, table.Row{
			FormatDate(tx.CreatedAt),
			m.names[tx.MemberID],
			tx.Kind.Label(),
			FormatAmount(tx.Amount),
			tx.Description,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadListMsg struct {
	txs   []*chama.Transaction
	names map[uuid.UUID]string
	err   error
}

func (m ListModel) loadTxsCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		members, err := m.svc.Members.List(ctx)
		if err != nil {
			return loadListMsg{err: err}
		}

		names := make(map[uuid.UUID]string, len(members))
		for _, mem := range members {
			names[mem.ID] = mem.Name
		}

		txs, err := m.svc.Transactions.List(ctx, filter)

		return loadListMsg{txs: txs, names: names, err: err}
	}
}
