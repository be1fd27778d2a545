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

	"github.com/MrJamesThe3rd/chama/internal/auth"
	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/contribution"
	"github.com/MrJamesThe3rd/chama/internal/member"
	"github.com/MrJamesThe3rd/chama/internal/report"
	"github.com/MrJamesThe3rd/chama/internal/snapshot"
)

const historyRows = 10

type membersState int

const (
	membersStateBrowse membersState = iota
	membersStateDetail
	membersStateForm
	membersStatePosting
)

type memberFormKind int

const (
	memberFormPayment memberFormKind = iota
	memberFormFine
	memberFormRegister
)

type memberFields struct {
	name   string
	amount string
	month  string
}

type memberRow struct {
	member *chama.Member
	fin    contribution.Financials
}

type MembersModel struct {
	CommonModel
	svc     *Services
	session Session

	state    membersState
	table    table.Model
	snap     *snapshot.Snapshot
	rows     []memberRow
	form     *huh.Form
	formKind memberFormKind
	fields   *memberFields

	loading bool
	err     error
	status  string
}

func NewMembersModel(svc *Services, session Session) MembersModel {
	return MembersModel{
		svc:     svc,
		session: session,
		loading: true,
		table: newTable([]table.Column{
			{Title: "Member", Width: 24},
			{Title: "Carry Fwd", Width: 12},
			{Title: "Expected", Width: 12},
			{Title: "Net", Width: 12},
			{Title: "This Month", Width: 12},
			{Title: "Arrears", Width: 8},
		}),
	}
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m MembersModel) Title() string { return "Members" }

func (m MembersModel) ShortHelp() string {
	switch m.state {
	case membersStateForm:
		return "Navigate form | Esc: cancel"
	case membersStateDetail:
		return "Esc: back | p: payment | f: fine"
	}

	return "Esc: back | Enter: detail | p: payment | f: fine | n: new member | r: refresh"
}

func (m MembersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m MembersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case membersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.snap = msg.snap
		m.refreshTable()

		return m, nil

	case memberPostedMsg:
		m.state = membersStateBrowse
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
	case membersStateBrowse:
		return m.updateBrowse(msg)
	case membersStateDetail:
		return m.updateDetail(msg)
	case membersStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m MembersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "enter":
			if _, ok := m.selected(); ok {
				m.state = membersStateDetail
			}

			return m, nil
		case "p":
			return m.openForm(memberFormPayment)
		case "f":
			return m.openForm(memberFormFine)
		case "n":
			return m.openForm(memberFormRegister)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m MembersModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.state = membersStateBrowse
	case "p":
		return m.openForm(memberFormPayment)
	case "f":
		return m.openForm(memberFormFine)
	}

	return m, nil
}

func (m MembersModel) selected() (memberRow, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return memberRow{}, false
	}

	return m.rows[idx], true
}

func validateAmount(s string) error {
	v, err := strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 10, 64)
	if err != nil || v <= 0 {
		return errors.New("enter a positive whole amount")
	}

	return nil
}

func parseAmount(s string) int64 {
	v, _ := strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 10, 64)
	return v
}

func (m MembersModel) openForm(kind memberFormKind) (tea.Model, tea.Cmd) {
	if !m.session.Can(auth.CapPost) {
		m.status = errorStyle("Your role cannot post.")
		return m, nil
	}

	if kind != memberFormRegister {
		if _, ok := m.selected(); !ok {
			return m, nil
		}
	}

	m.fields = &memberFields{month: chama.PeriodKey(m.svc.now())}
	if kind == memberFormPayment && m.snap != nil {
		m.fields.amount = strconv.FormatInt(m.snap.Settings.MonthlyContribution, 10)
	}

	var fields []huh.Field

	switch kind {
	case memberFormRegister:
		fields = append(fields, huh.NewInput().
			Title("Full name").
			Value(&m.fields.name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("name cannot be empty")
				}

				return nil
			}))
	case memberFormPayment:
		fields = append(fields, huh.NewInput().
			Title("Amount received").
			Value(&m.fields.amount).
			Validate(validateAmount))
	case memberFormFine:
		fields = append(fields,
			huh.NewInput().
				Title("Fine amount").
				Value(&m.fields.amount).
				Validate(validateAmount),
			huh.NewInput().
				Title("Month (YYYY-MM)").
				Value(&m.fields.month).
				Validate(func(s string) error {
					_, err := chama.ParsePeriod(strings.TrimSpace(s), m.svc.Location)
					return err
				}),
		)
	}

	m.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(45).WithShowHelp(false)
	m.formKind = kind
	m.state = membersStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m MembersModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = membersStateBrowse
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

	m.state = membersStatePosting
	m.status = "Posting..."

	return m, m.postCmd()
}

func (m MembersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Syncing members...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var content string
	if m.state == membersStateDetail {
		content = m.viewDetail()
	} else {
		header := fmt.Sprintf("Monthly contribution: %s | Late fee: %s",
			activeStyle(FormatAmount(m.snap.Settings.MonthlyContribution)),
			activeStyle(FormatAmount(m.snap.Settings.LateFeeAmount)),
		)
		if !contribution.InSafeZone(m.svc.now()) {
			header += " | " + errorStyle("outside the on-time window")
		}

		content = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")).
				Render(m.table.View()),
		)
	}

	if m.state == membersStateForm && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.viewFormPanel())
	}

	if m.status != "" {
		content = m.status + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m MembersModel) viewFormPanel() string {
	title := "New Member"

	if row, ok := m.selected(); ok {
		switch m.formKind {
		case memberFormPayment:
			title = "Payment: " + row.member.Name
		case memberFormFine:
			title = "Fine: " + row.member.Name
		}
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(48).
		Render(title + "\n\n" + m.form.View())
}

func (m MembersModel) viewDetail() string {
	row, ok := m.selected()
	if !ok {
		return ""
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n\n", lipgloss.NewStyle().Bold(true).Render(row.member.Name))
	fmt.Fprintf(&sb, "Total paid:     %s\n", FormatAmount(row.fin.TotalPaid))
	fmt.Fprintf(&sb, "Total expected: %s\n", FormatAmount(row.fin.TotalExpected))
	fmt.Fprintf(&sb, "Net balance:    %s\n\n", FormatAmount(row.fin.NetBalance))

	for _, b := range row.fin.Breakdown {
		line := fmt.Sprintf("%-10s %s", b.Month.Format("January"), statusLabel(b.Status))
		if b.Shortfall > 0 {
			line += fmt.Sprintf("  short %s", FormatAmount(b.Shortfall))
		}

		sb.WriteString(line + "\n")
	}

	hist, err := report.MemberHistory(m.snap, row.member.ID)
	if err != nil {
		return sb.String()
	}

	sb.WriteString("\nRecent activity\n")

	for i, r := range hist.Rows {
		if i == historyRows {
			break
		}

		fmt.Fprintf(&sb, "%s  %-15s %10s  %s\n", FormatDate(r.Date), r.Activity, FormatAmount(r.Amount), r.Details)
	}

	return sb.String()
}

func (m *MembersModel) refreshTable() {
	now := m.svc.now()

	m.rows = make([]memberRow, 0, len(m.snap.Members))
	rows := make([]table.Row, 0, len(m.snap.Members))

	for _, mem := range m.snap.Members {
		fin := contribution.Compute(*mem, m.snap.Settings.MonthlyContribution, now)

		current := "-"
		if cm, ok := fin.CurrentMonth(now); ok {
			current = strings.ToUpper(string(cm.Status))
		}

		arrears := 0
		for _, b := range fin.Breakdown {
			if b.Status == contribution.StatusArrears {
				arrears++
			}
		}

		m.rows = append(m.rows, memberRow{member: mem, fin: fin})
		rows = append(rows, table.Row{
			mem.Name,
			FormatAmount(mem.CarryForward),
			FormatAmount(fin.TotalExpected),
			FormatAmount(fin.NetBalance),
			current,
			strconv.Itoa(arrears),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type membersLoadedMsg struct {
	snap *snapshot.Snapshot
	err  error
}

func (m MembersModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		snap, err := m.svc.Loader.Load(ctx)

		return membersLoadedMsg{snap: snap, err: err}
	}
}

type memberPostedMsg struct {
	status string
	err    error
}

func (m MembersModel) postCmd() tea.Cmd {
	kind := m.formKind
	fields := *m.fields
	row, _ := m.selected()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		switch kind {
		case memberFormRegister:
			created, err := m.svc.Members.Register(ctx, fields.name)
			if err != nil {
				return memberPostedMsg{err: err}
			}

			return memberPostedMsg{status: "Registered " + created.Name + "."}

		case memberFormPayment:
			receipt, err := m.svc.Members.ProcessPayment(ctx, member.PaymentParams{
				MemberID: row.member.ID,
				Amount:   parseAmount(fields.amount),
			})
			if err != nil {
				return memberPostedMsg{err: err}
			}

			return memberPostedMsg{status: fmt.Sprintf("Recorded %s from %s. Carry forward: %s.",
				FormatAmount(receipt.Transaction.Amount), row.member.Name, FormatAmount(receipt.CarryForward))}

		case memberFormFine:
			month, err := chama.ParsePeriod(strings.TrimSpace(fields.month), m.svc.Location)
			if err != nil {
				return memberPostedMsg{err: err}
			}

			receipt, err := m.svc.Members.ApplyFine(ctx, member.FineParams{
				MemberID: row.member.ID,
				Month:    month,
				Amount:   parseAmount(fields.amount),
			})
			if err != nil {
				return memberPostedMsg{err: err}
			}

			return memberPostedMsg{status: receipt.Transaction.Description + "."}
		}

		return memberPostedMsg{}
	}
}
