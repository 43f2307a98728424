package main

import (
	"log/slog"
	"time"

	"github.com/diewo77/go-contracts/auth"
	"github.com/diewo77/go-contracts/gate"
	"github.com/diewo77/go-contracts/internal/handlers"
	"github.com/diewo77/go-contracts/internal/pdf"
	"github.com/diewo77/go-contracts/internal/policy"
	"github.com/diewo77/go-contracts/internal/services"
	"github.com/diewo77/go-contracts/internal/wizard"
	"gorm.io/gorm"
)

// RouterConfig holds configured handlers and the authorization gate.
type RouterConfig struct {
	Gate  *gate.Gate[auth.Subject]
	Admin *auth.Admin

	// Services
	Contracts *services.ContractService
	Settings  *services.SettingsService
	Documents *services.DocumentService

	// Handlers
	WizardHandler *handlers.WizardHandler
	AdminHandler  *handlers.AdminHandler
	APIHandler    *handlers.APIHandler
	HealthHandler *handlers.HealthHandler
}

// Deps are the collaborators built by main before routing.
type Deps struct {
	DB       *gorm.DB
	Logger   *slog.Logger
	Admin    *auth.Admin
	Store    wizard.Store
	Renderer *pdf.Renderer
	// SessionTTL is the lifetime of the wizard cookie.
	SessionTTL time.Duration
}

// NewRouterConfig wires services, the gate and handlers together.
func NewRouterConfig(d Deps) *RouterConfig {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	store := d.Store
	if store == nil {
		store = wizard.NewMemoryStore(d.SessionTTL)
	}
	renderer := d.Renderer
	if renderer == nil {
		renderer = pdf.NewRenderer(pdf.DefaultBranding(), log)
	}

	g := policy.NewGate()
	contracts := services.NewContractService(d.DB, log)
	settings := services.NewSettingsService(d.DB)
	docs := services.NewDocumentService(settings, renderer, log)

	return &RouterConfig{
		Gate:          g,
		Admin:         d.Admin,
		Contracts:     contracts,
		Settings:      settings,
		Documents:     docs,
		WizardHandler: handlers.NewWizardHandler(store, contracts, docs, g, log, d.SessionTTL),
		AdminHandler:  handlers.NewAdminHandler(d.Admin, contracts, docs, settings, g, log),
		APIHandler:    handlers.NewAPIHandler(contracts, docs, settings, log),
		HealthHandler: handlers.NewHealthHandler(d.DB),
	}
}
