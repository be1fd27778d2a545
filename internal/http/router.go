package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/chama/internal/auth"
	authHandler "github.com/MrJamesThe3rd/chama/internal/http/auth"
	"github.com/MrJamesThe3rd/chama/internal/http/importcsv"
	"github.com/MrJamesThe3rd/chama/internal/http/ledger"
	"github.com/MrJamesThe3rd/chama/internal/http/loan"
	"github.com/MrJamesThe3rd/chama/internal/http/member"
	"github.com/MrJamesThe3rd/chama/internal/http/report"
	"github.com/MrJamesThe3rd/chama/internal/http/settings"
	"github.com/MrJamesThe3rd/chama/internal/http/transaction"
)

type Handlers struct {
	Auth         *authHandler.Handler
	Members      *member.Handler
	Loans        *loan.Handler
	Ledger       *ledger.Handler
	Reports      *report.Handler
	Transactions *transaction.Handler
	Settings     *settings.Handler
	Import       *importcsv.Handler
}

func New(authSvc *auth.Service, h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Auth.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(authSvc.Middleware)

			r.Route("/members", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Members.Routes(r)
			})

			r.Route("/loans", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Loans.Routes(r)
			})

			r.Route("/transactions", h.Transactions.Routes)
			r.Route("/reports", h.Reports.Routes)

			r.Route("/settings", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Settings.Routes(r)
			})

			r.Route("/import", h.Import.Routes)

			h.Ledger.Routes(r)
		})
	})

	return router
}
