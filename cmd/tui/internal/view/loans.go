package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/auth"
	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/loan"
	"github.com/MrJamesThe3rd/chama/internal/snapshot"
)

type loansState int

const (
	loansStateBrowse loansState = iota
	loansStateForm
	loansStatePosting
)

type loanFields struct {
	memberID  uuid.UUID
	principal string
	duration  string
	amount    string
}

type LoansModel struct {
	CommonModel
	svc     *Services
	session Session

	state     loansState
	table     table.Model
	snap      *snapshot.Snapshot
	loans     []*chama.Loan
	form      *huh.Form
	fields    *loanFields
	repayment bool

	showPaid bool
	loading  bool
	err      error
	status   string
}

func NewLoansModel(svc *Services, session Session) LoansModel {
	return LoansModel{
		svc:     svc,
		session: session,
		loading: true,
		table: newTable([]table.Column{
			{Title: "Member", Width: 22},
			{Title: "Principal", Width: 11},
			{Title: "Interest", Width: 10},
			{Title: "Outstanding", Width: 12},
			{Title: "Status", Width: 8},
			{Title: "Due", Width: 12},
			{Title: "Last Paid", Width: 12},
		}),
	}
}

func (m LoansModel) Title() string { return "Loans" }

func (m LoansModel) ShortHelp() string {
	if m.state == loansStateForm {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: disburse | p: repay | a: toggle paid | r: refresh"
}

func (m LoansModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LoansModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loansLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.snap = msg.snap
		m.refreshTable()

		return m, nil

	case loanPostedMsg:
		m.state = loansStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}

		m.status = successStyle(msg.status)

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case loansStateBrowse:
		return m.updateBrowse(msg)
	case loansStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m LoansModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			m.showPaid = !m.showPaid
			m.refreshTable()

			return m, nil
		case "n":
			return m.openDisburse()
		case "p":
			return m.openRepay()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LoansModel) selected() (*chama.Loan, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.loans) {
		return nil, false
	}

	return m.loans[idx], true
}

func (m LoansModel) openDisburse() (tea.Model, tea.Cmd) {
	if !m.session.Can(auth.CapPost) {
		m.status = errorStyle("Your role cannot post.")
		return m, nil
	}

	if m.snap == nil || len(m.snap.Members) == 0 {
		m.status = errorStyle("Register a member first.")
		return m, nil
	}

	m.fields = &loanFields{duration: "3"}

	options := make([]huh.Option[uuid.UUID], 0, len(m.snap.Members))
	for _, mem := range m.snap.Members {
		options = append(options, huh.NewOption(mem.Name, mem.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Title("Borrower").
				Options(options...).
				Value(&m.fields.memberID),
			huh.NewInput().
				Title("Principal").
				Value(&m.fields.principal).
				Validate(validateAmount),
			huh.NewInput().
				Title("Duration (months)").
				Value(&m.fields.duration).
				Validate(func(s string) error {
					if n, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || n < 1 {
						return errors.New("at least one month")
					}

					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.repayment = false
	m.state = loansStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m LoansModel) openRepay() (tea.Model, tea.Cmd) {
	if !m.session.Can(auth.CapPost) {
		m.status = errorStyle("Your role cannot post.")
		return m, nil
	}

	l, ok := m.selected()
	if !ok {
		return m, nil
	}

	if l.Status == chama.LoanPaid {
		m.status = errorStyle("Loan is already paid.")
		return m, nil
	}

	m.fields = &loanFields{amount: strconv.FormatInt(l.Amount, 10)}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Repayment amount").
				Value(&m.fields.amount).
				Validate(validateAmount),
		),
	).WithWidth(45).WithShowHelp(false)

	m.repayment = true
	m.state = loansStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m LoansModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = loansStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = loansStatePosting
	m.status = "Posting..."

	return m, m.postCmd()
}

func (m LoansModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Syncing loans...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	filter := "Active"
	if m.showPaid {
		filter = "All"
	}

	header := fmt.Sprintf("Showing: %s | Interest rate: %s%%",
		activeStyle(filter),
		activeStyle(m.snap.Settings.LoanInterestRate.String()),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View()),
	)

	if m.state == loansStateForm && m.form != nil {
		title := "Disburse Loan"
		if m.repayment {
			if l, ok := m.selected(); ok {
				title = fmt.Sprintf("Repay: %s (owes %s)", l.MemberName, FormatAmount(l.Amount))
			}
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = m.status + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *LoansModel) refreshTable() {
	m.loans = make([]*chama.Loan, 0, len(m.snap.Loans))

	rows := make([]table.Row, 0, len(m.snap.Loans))

	for _, l := range m.snap.Loans {
		if l.Status == chama.LoanPaid && !m.showPaid {
			continue
		}

		lastPaid := "-"
		if l.LastRepaymentDate != nil {
			lastPaid = FormatDate(*l.LastRepaymentDate)
		}

		m.loans = append(m.loans, l)
		rows = append(rows, table.Row{
			l.MemberName,
			FormatAmount(l.Principal),
			FormatAmount(l.InterestAccrued),
			FormatAmount(l.Amount),
			strings.ToUpper(string(l.Status)),
			FormatDate(l.DueDate),
			lastPaid,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loansLoadedMsg struct {
	snap *snapshot.Snapshot
	err  error
}

func (m LoansModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		snap, err := m.svc.Loader.Load(ctx)

		return loansLoadedMsg{snap: snap, err: err}
	}
}

type loanPostedMsg struct {
	status string
	err    error
}

func (m LoansModel) postCmd() tea.Cmd {
	fields := *m.fields
	repayment := m.repayment
	selected, _ := m.selected()
	rate := m.snap.Settings.LoanInterestRate

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if repayment {
			res, err := m.svc.Loans.Repay(ctx, selected.ID, parseAmount(fields.amount))
			if err != nil {
				return loanPostedMsg{err: err}
			}

			status := fmt.Sprintf("Applied %s. Outstanding: %s.", FormatAmount(res.Repayment.Applied), FormatAmount(res.Loan.Amount))
			if res.Repayment.Excess > 0 {
				status += fmt.Sprintf(" %s above the balance was not taken.", FormatAmount(res.Repayment.Excess))
			}

			return loanPostedMsg{status: status}
		}

		duration, _ := strconv.Atoi(strings.TrimSpace(fields.duration))

		d, err := m.svc.Loans.Initiate(ctx, loan.InitiateParams{
			MemberID:       fields.memberID,
			Principal:      parseAmount(fields.principal),
			DurationMonths: duration,
			Rate:           rate,
		})
		if err != nil {
			return loanPostedMsg{err: err}
		}

		return loanPostedMsg{status: fmt.Sprintf("Disbursed %s to %s. Repay %s by %s.",
			FormatAmount(d.Loan.Principal), d.Loan.MemberName, FormatAmount(d.Loan.Amount), FormatDate(d.Loan.DueDate))}
	}
}
