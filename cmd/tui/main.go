package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/chama/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/chama/internal/alias"
	aliasStore "github.com/MrJamesThe3rd/chama/internal/alias/store"
	"github.com/MrJamesThe3rd/chama/internal/auth"
	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/config"
	"github.com/MrJamesThe3rd/chama/internal/database"
	"github.com/MrJamesThe3rd/chama/internal/importer"
	"github.com/MrJamesThe3rd/chama/internal/latefee"
	"github.com/MrJamesThe3rd/chama/internal/loan"
	loanStore "github.com/MrJamesThe3rd/chama/internal/loan/store"
	"github.com/MrJamesThe3rd/chama/internal/member"
	memberStore "github.com/MrJamesThe3rd/chama/internal/member/store"
	postingStore "github.com/MrJamesThe3rd/chama/internal/posting/store"
	settingsStore "github.com/MrJamesThe3rd/chama/internal/settings/store"
	"github.com/MrJamesThe3rd/chama/internal/snapshot"
	"github.com/MrJamesThe3rd/chama/internal/transaction"
	txStore "github.com/MrJamesThe3rd/chama/internal/transaction/store"
)

type model struct {
	services *view.Services
	session  view.Session

	currentView View

	loginView   view.LoginModel
	membersView view.MembersModel
	loansView   view.LoansModel
	ledgerView  view.LedgerModel
	listView    view.ListModel
	importView  view.ImportModel
}

type View int

const (
	ViewLogin   View = 0
	ViewMenu    View = 1
	ViewMembers View = 2
	ViewLoans   View = 3
	ViewLedger  View = 4
	ViewList    View = 5
	ViewImport  View = 6
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to load timezone", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	var (
		members      = memberStore.New(db)
		loans        = loanStore.New(db)
		transactions = txStore.New(db)
		settingsRepo = settingsStore.New(db)
		postings     = postingStore.New(db)
	)

	memberSvc := member.NewService(members, postings)
	txSvc := transaction.NewService(transactions)
	aliasSvc := alias.NewService(aliasStore.New(db), memberSvc)
	loader := snapshot.NewLoader(members, loans, transactions, settingsRepo)

	svc := &view.Services{
		Auth: auth.NewService(auth.Config{
			JWTSecret: cfg.Auth.JWTSecret,
			TokenTTL:  cfg.Auth.TokenTTL,
			SecretHashes: map[auth.Role]string{
				auth.RoleAdmin:     cfg.Auth.AdminSecretHash,
				auth.RoleTreasurer: cfg.Auth.TreasurerSecretHash,
				auth.RoleViewer:    cfg.Auth.ViewerSecretHash,
			},
		}),
		Members:      memberSvc,
		Loans:        loan.NewService(loans, memberSvc, postings, loan.WithClock(chama.ClockIn(loc))),
		Transactions: txSvc,
		Aliases:      aliasSvc,
		Importer:     importer.NewService(aliasSvc, memberSvc, memberSvc, txSvc, loc),
		Loader:       loader,
		Sweeper:      latefee.NewSweeper(loader, memberSvc).WithClock(chama.ClockIn(loc)),
		Location:     loc,
	}

	return model{
		services:    svc,
		currentView: ViewLogin,
		loginView:   view.NewLoginModel(svc.Auth),
	}
}

func (m model) Init() tea.Cmd {
	return m.loginView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewMembers
				m.membersView = view.NewMembersModel(m.services, m.session)

				return m, m.membersView.Init()
			case "2":
				m.currentView = ViewLoans
				m.loansView = view.NewLoansModel(m.services, m.session)

				return m, m.loansView.Init()
			case "3":
				m.currentView = ViewLedger
				m.ledgerView = view.NewLedgerModel(m.services, m.session)

				return m, m.ledgerView.Init()
			case "4":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.services)

				return m, m.listView.Init()
			case "5":
				if !m.session.Can(auth.CapImport) {
					return m, nil
				}

				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.services)

				return m, m.importView.Init()
			}
		}
	case view.LoginMsg:
		m.session = msg.Session
		m.currentView = ViewMenu

		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewMembers:
		var newModel tea.Model
		newModel, cmd = m.membersView.Update(msg)
		m.membersView = newModel.(view.MembersModel)
	case ViewLoans:
		var newModel tea.Model
		newModel, cmd = m.loansView.Update(msg)
		m.loansView = newModel.(view.LoansModel)
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		menu := "Chama TUI (" + string(m.session.Role) + ")\n\n" +
			"1. Members\n" +
			"2. Loans\n" +
			"3. Ledger\n" +
			"4. Transactions\n"
		if m.session.Can(auth.CapImport) {
			menu += "5. Import Statement\n"
		}

		return lipgloss.NewStyle().Padding(2).Render(menu + "\nq. Quit")
	case ViewMembers:
		return m.membersView.View()
	case ViewLoans:
		return m.loansView.View()
	case ViewLedger:
		return m.ledgerView.View()
	case ViewList:
		return m.listView.View()
	case ViewImport:
		return m.importView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
