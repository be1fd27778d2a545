package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/importer"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStatePreview
	importStateAlias
	importStateResult
)

type ImportModel struct {
	CommonModel
	svc *Services

	state      importState
	filePicker filepicker.Model
	path       string

	preview     *importer.Result
	previewList list.Model

	aliasForm   *huh.Form
	aliasMember *uuid.UUID
	aliasRow    importer.Row

	status string
	err    error
}

func NewImportModel(svc *Services) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		svc:        svc,
		filePicker: fp,
	}
}

func (m ImportModel) Title() string { return "Import Statement" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStatePreview:
		return "Enter: post payments | a: alias unresolved payer | Esc: cancel"
	case importStateAlias:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		switch m.state {
		case importStatePreview:
			return m.updatePreview(msg)
		case importStateAlias:
			return m.updateAlias(msg)
		}

	case importResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		if !msg.dryRun {
			m.state = importStateResult
			m.status = fmt.Sprintf("Posted %d payments. Skipped %d duplicates and %d unresolved rows.",
				len(msg.result.Posted), len(msg.result.Duplicates), len(msg.result.Unresolved))

			return m, nil
		}

		m.preview = msg.result
		m.state = importStatePreview
		m.previewList = newPreviewList(msg.result)

		return m, nil

	case aliasLearnedMsg:
		if msg.err != nil {
			m.state = importStatePreview
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))

			return m, nil
		}

		m.state = importStateImporting
		m.status = "Re-checking statement..."

		return m, m.importCmd(m.path, true)
	}

	if m.state == importStateAlias {
		return m.updateAlias(msg)
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.path = path
		m.state = importStateImporting
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.importCmd(path, true)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateAlias:
		m.state = importStatePreview
		m.aliasForm = nil

		return m, nil
	case importStatePreview, importStateResult:
		m.state = importStateFilePick
		m.preview = nil
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.state = importStateImporting
		m.status = "Posting payments..."

		return m, m.importCmd(m.path, false)
	case "a":
		item, ok := m.previewList.SelectedItem().(previewItem)
		if !ok || item.kind != previewUnresolved {
			return m, nil
		}

		return m.openAlias(item.row)
	}

	var cmd tea.Cmd
	m.previewList, cmd = m.previewList.Update(msg)

	return m, cmd
}

func (m ImportModel) openAlias(row importer.Row) (tea.Model, tea.Cmd) {
	ctx, cancel := DbCtx()
	defer cancel()

	members, err := m.svc.Members.List(ctx)
	if err != nil {
		m.status = errorStyle(fmt.Sprintf("Error: %v", err))
		return m, nil
	}

	if len(members) == 0 {
		return m, nil
	}

	options := make([]huh.Option[uuid.UUID], 0, len(members))
	for _, mem := range members {
		options = append(options, huh.NewOption(mem.Name, mem.ID))
	}

	m.aliasRow = row
	m.aliasMember = new(uuid.UUID)
	m.aliasForm = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Title(fmt.Sprintf("Who is %q?", row.Raw)).
				Options(options...).
				Value(m.aliasMember),
		),
	).WithWidth(60).WithShowHelp(false)
	m.state = importStateAlias

	return m, m.aliasForm.Init()
}

func (m ImportModel) updateAlias(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.aliasForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.aliasForm = f
	}

	if m.aliasForm.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = importStateImporting
	m.status = "Saving alias..."

	return m, m.learnCmd(m.aliasRow.Raw, *m.aliasMember)
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"Select an M-Pesa or bank statement (CSV):\n\n" + m.filePicker.View(),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStatePreview:
		header := fmt.Sprintf("Format: %s | Encoding: %s | To post: %d | Duplicates: %d | Unresolved: %d",
			activeStyle(m.preview.Profile), m.preview.Charset,
			len(m.preview.Posted), len(m.preview.Duplicates), len(m.preview.Unresolved))
		if m.status != "" {
			header = m.status + "\n" + header
		}

		return lipgloss.NewStyle().Padding(1).Render(header + "\n\n" + m.previewList.View())
	case importStateAlias:
		return lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Render("Learn Payer Alias\n\n" + m.aliasForm.View())
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle(m.status) + "\n\n(Esc to go back)")
	}

	return style.Render(successStyle(m.status) + "\n\n(Esc to go back)")
}

// Messages

type importResultMsg struct {
	result *importer.Result
	dryRun bool
	err    error
}

type aliasLearnedMsg struct {
	err error
}

func (m ImportModel) importCmd(path string, dryRun bool) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		result, err := m.svc.Importer.Import(ctx, f, importer.Options{DryRun: dryRun})
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{result: result, dryRun: dryRun}
	}
}

func (m ImportModel) learnCmd(pattern string, memberID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return aliasLearnedMsg{err: m.svc.Aliases.Learn(ctx, pattern, memberID)}
	}
}

// Preview list

type previewKind int

const (
	previewPost previewKind = iota
	previewDuplicate
	previewUnresolved
)

type previewItem struct {
	kind   previewKind
	row    importer.Row
	member string
}

func (i previewItem) Title() string       { return i.row.Raw }
func (i previewItem) Description() string { return i.member }
func (i previewItem) FilterValue() string { return i.row.Raw }

func newPreviewList(res *importer.Result) list.Model {
	items := make([]list.Item, 0, len(res.Posted)+len(res.Duplicates)+len(res.Unresolved))

	for _, row := range res.Unresolved {
		items = append(items, previewItem{kind: previewUnresolved, row: row})
	}

	for _, match := range res.Posted {
		items = append(items, previewItem{kind: previewPost, row: match.Row, member: match.Member.Name})
	}

	for _, match := range res.Duplicates {
		items = append(items, previewItem{kind: previewDuplicate, row: match.Row, member: match.Member.Name})
	}

	l := list.New(items, previewDelegate{}, 100, 20)
	l.Title = "Statement Rows"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

type previewDelegate struct{}

func (d previewDelegate) Height() int                             { return 2 }
func (d previewDelegate) Spacing() int                            { return 0 }
func (d previewDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d previewDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(previewItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	var tag, target string

	switch item.kind {
	case previewPost:
		tag, target = successStyle("[post]"), "-> "+item.member
	case previewDuplicate:
		tag, target = activeStyle("[dup] "), "-> "+item.member+" (already recorded)"
	case previewUnresolved:
		tag, target = errorStyle("[?]   "), "unknown payer, press a to alias"
	}

	line1 := fmt.Sprintf("%s%s %s  %10s  %s", cursor, tag, FormatDate(item.row.Date), FormatAmount(item.row.Amount), item.row.Raw)
	line2 := fmt.Sprintf("      line %d  %s", item.row.Line, target)

	fmt.Fprintf(w, "%s\n%s\n", line1, line2)
}
