package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/chama/internal/alias"
	aliasStore "github.com/MrJamesThe3rd/chama/internal/alias/store"
	"github.com/MrJamesThe3rd/chama/internal/auth"
	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/config"
	"github.com/MrJamesThe3rd/chama/internal/database"
	chamaHttp "github.com/MrJamesThe3rd/chama/internal/http"
	authHandler "github.com/MrJamesThe3rd/chama/internal/http/auth"
	importHandler "github.com/MrJamesThe3rd/chama/internal/http/importcsv"
	ledgerHandler "github.com/MrJamesThe3rd/chama/internal/http/ledger"
	loanHandler "github.com/MrJamesThe3rd/chama/internal/http/loan"
	memberHandler "github.com/MrJamesThe3rd/chama/internal/http/member"
	reportHandler "github.com/MrJamesThe3rd/chama/internal/http/report"
	settingsHandler "github.com/MrJamesThe3rd/chama/internal/http/settings"
	txHandler "github.com/MrJamesThe3rd/chama/internal/http/transaction"
	"github.com/MrJamesThe3rd/chama/internal/importer"
	"github.com/MrJamesThe3rd/chama/internal/latefee"
	"github.com/MrJamesThe3rd/chama/internal/loan"
	loanStore "github.com/MrJamesThe3rd/chama/internal/loan/store"
	"github.com/MrJamesThe3rd/chama/internal/member"
	memberStore "github.com/MrJamesThe3rd/chama/internal/member/store"
	postingStore "github.com/MrJamesThe3rd/chama/internal/posting/store"
	"github.com/MrJamesThe3rd/chama/internal/report"
	"github.com/MrJamesThe3rd/chama/internal/settings"
	settingsStore "github.com/MrJamesThe3rd/chama/internal/settings/store"
	"github.com/MrJamesThe3rd/chama/internal/snapshot"
	"github.com/MrJamesThe3rd/chama/internal/transaction"
	txStore "github.com/MrJamesThe3rd/chama/internal/transaction/store"
)

func main() {
	hashSecret := flag.Bool("hash-secret", false, "read a role secret from stdin and print its bcrypt hash")
	flag.Parse()

	if *hashSecret {
		if err := writeSecretHash(os.Stdout, os.Stdin); err != nil {
			slog.Error("failed to hash secret", "error", err)
			os.Exit(1)
		}

		return
	}

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	var (
		members      = memberStore.New(db)
		loans        = loanStore.New(db)
		transactions = txStore.New(db)
		settingsRepo = settingsStore.New(db)
		postings     = postingStore.New(db)
	)

	var (
		memberService      = member.NewService(members, postings)
		loanService        = loan.NewService(loans, memberService, postings, loan.WithClock(chama.ClockIn(loc)))
		transactionService = transaction.NewService(transactions)
		settingsService    = settings.NewService(settingsRepo)
		aliasService       = alias.NewService(aliasStore.New(db), memberService)
		importService      = importer.NewService(aliasService, memberService, memberService, transactionService, loc)
		loader             = snapshot.NewLoader(members, loans, transactions, settingsRepo)
		reportService      = report.NewService(loader)
		sweeper            = latefee.NewSweeper(loader, memberService).WithClock(chama.ClockIn(loc))
		authService        = auth.NewService(auth.Config{
			JWTSecret: cfg.Auth.JWTSecret,
			TokenTTL:  cfg.Auth.TokenTTL,
			SecretHashes: map[auth.Role]string{
				auth.RoleAdmin:     cfg.Auth.AdminSecretHash,
				auth.RoleTreasurer: cfg.Auth.TreasurerSecretHash,
				auth.RoleViewer:    cfg.Auth.ViewerSecretHash,
			},
		})
	)

	router := chamaHttp.New(authService, chamaHttp.Handlers{
		Auth:         authHandler.NewHandler(authService),
		Members:      memberHandler.NewHandler(memberService, settingsService, reportService, loc),
		Loans:        loanHandler.NewHandler(loanService, settingsService),
		Ledger:       ledgerHandler.NewHandler(loader, sweeper, loc),
		Reports:      reportHandler.NewHandler(reportService, report.NewFormatter(cfg.App.Currency), loc),
		Transactions: txHandler.NewHandler(transactionService, loc),
		Settings:     settingsHandler.NewHandler(settingsService),
		Import:       importHandler.NewHandler(importService, aliasService),
	}, cfg.CORS.AllowedOrigins)

	if cfg.Sweep.Enabled {
		go sweeper.Start(ctx, cfg.Sweep.Interval)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "timezone", loc.String())

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
