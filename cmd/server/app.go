package main

import (
	"log/slog"
	"net/http"

	"github.com/diewo77/go-contracts/auth"
	"github.com/diewo77/go-contracts/httpx"
)

// maxBodyBytes bounds request bodies; a drawn signature is well below it.
const maxBodyBytes = 2 << 20

// App is the main application handler that sets up all routes.
type App struct {
	mux       *http.ServeMux
	routerCfg *RouterConfig
	handler   http.Handler
}

// NewApp creates a new application with all routes configured.
func NewApp(routerCfg *RouterConfig, logger *slog.Logger) *App {
	app := &App{
		mux:       http.NewServeMux(),
		routerCfg: routerCfg,
	}
	app.setupRoutes()
	// Global middleware: request id, access log, body limit, admin session.
	app.handler = httpx.Chain(app.mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(maxBodyBytes),
		routerCfg.Admin.Middleware,
	)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

func requireAdmin(h http.HandlerFunc) http.Handler {
	return auth.RequireAdmin(h)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	// ─────────────────────────────────────────────────────────────────────────
	// Enrollment wizard (public)
	// ─────────────────────────────────────────────────────────────────────────
	wh := a.routerCfg.WizardHandler
	a.mux.HandleFunc("GET /{$}", wh.Show)
	a.mux.HandleFunc("POST /wizard/identity", wh.SubmitIdentity)
	a.mux.HandleFunc("POST /wizard/plan", wh.ChoosePlan)
	a.mux.HandleFunc("POST /wizard/signature", wh.SubmitSignature)
	a.mux.HandleFunc("POST /wizard/back", wh.Back)
	a.mux.HandleFunc("POST /wizard/reset", wh.Reset)
	a.mux.HandleFunc("GET /wizard/contract.pdf", wh.ContractPDF)

	// ─────────────────────────────────────────────────────────────────────────
	// Back office (admin password)
	// ─────────────────────────────────────────────────────────────────────────
	ah := a.routerCfg.AdminHandler
	a.mux.HandleFunc("GET /admin/login", ah.LoginForm)
	a.mux.HandleFunc("POST /admin/login", ah.Login)
	a.mux.HandleFunc("POST /admin/logout", ah.Logout)
	a.mux.Handle("GET /admin", requireAdmin(ah.Contracts))
	a.mux.Handle("GET /admin/contracts/{number}/pdf", requireAdmin(ah.ContractPDF))
	a.mux.Handle("GET /admin/settings", requireAdmin(ah.SettingsForm))
	a.mux.Handle("POST /admin/settings", requireAdmin(ah.SaveSettings))

	// ─────────────────────────────────────────────────────────────────────────
	// JSON API
	// ─────────────────────────────────────────────────────────────────────────
	api := a.routerCfg.APIHandler
	a.mux.HandleFunc("GET /api/plans", api.Plans)
	a.mux.HandleFunc("POST /api/contracts", api.CreateContract)
	a.mux.Handle("GET /api/contracts", requireAdmin(api.ListContracts))
	a.mux.Handle("GET /api/contracts/{number}", requireAdmin(api.GetContract))
	a.mux.Handle("GET /api/contracts/{number}/pdf", requireAdmin(api.ContractPDF))
	a.mux.Handle("GET /api/settings", requireAdmin(api.GetSettings))
	a.mux.Handle("PUT /api/settings", requireAdmin(api.PutSettings))

	// ─────────────────────────────────────────────────────────────────────────
	// Health and static files
	// ─────────────────────────────────────────────────────────────────────────
	hh := a.routerCfg.HealthHandler
	a.mux.HandleFunc("GET /health", hh.Live)
	a.mux.HandleFunc("GET /healthz", hh.Ready)
	a.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
}
