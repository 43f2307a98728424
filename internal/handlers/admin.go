package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/diewo77/go-contracts/auth"
	"github.com/diewo77/go-contracts/gate"
	"github.com/diewo77/go-contracts/i18n"
	"github.com/diewo77/go-contracts/internal/models"
	"github.com/diewo77/go-contracts/internal/policy"
	"github.com/diewo77/go-contracts/internal/services"
	"github.com/diewo77/go-contracts/validation"
	"github.com/diewo77/go-contracts/view"
)

// AdminHandler serves the password-protected back office.
type AdminHandler struct {
	admin     *auth.Admin
	contracts *services.ContractService
	docs      *services.DocumentService
	settings  *services.SettingsService
	gate      *gate.Gate[auth.Subject]
	log       *slog.Logger
}

func NewAdminHandler(admin *auth.Admin, contracts *services.ContractService, docs *services.DocumentService, settings *services.SettingsService, g *gate.Gate[auth.Subject], log *slog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, contracts: contracts, docs: docs, settings: settings, gate: g, log: log}
}

func (h *AdminHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if auth.IsAdmin(r.Context()) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	view.Render(w, r, "admin/login.html", nil)
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if !h.admin.CheckPassword(r.FormValue("password")) {
		h.log.WarnContext(r.Context(), "admin login refused")
		view.RenderStatus(w, r, http.StatusUnauthorized, "admin/login.html", map[string]any{"Error": i18n.T("invalid_password")})
		return
	}
	h.admin.CreateSession(w)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.admin.ClearSession(w)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// Contracts lists contracts, optionally filtered by client name (?q=).
func (h *AdminHandler) Contracts(w http.ResponseWriter, r *http.Request) {
	subject := auth.SubjectFrom(r.Context(), "")
	if err := h.gate.Authorize(r.Context(), subject, gate.ActionList, policy.ResourceContract, nil); err != nil {
		http.Error(w, i18n.T("forbidden"), http.StatusForbidden)
		return
	}
	q := r.URL.Query().Get("q")
	list, err := h.contracts.Search(r.Context(), q)
	if err != nil {
		h.log.ErrorContext(r.Context(), "search contracts", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	view.Render(w, r, "admin/contracts.html", map[string]any{
		"Contracts": list,
		"Query":     q,
	})
}

// ContractPDF regenerates the PDF of any stored contract.
func (h *AdminHandler) ContractPDF(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")
	c, err := h.contracts.Get(r.Context(), number)
	if err != nil {
		notFoundOrError(w, err)
		return
	}
	if err := h.gate.Authorize(r.Context(), auth.SubjectFrom(r.Context(), ""), gate.ActionDownload, policy.ResourceContract, c); err != nil {
		http.Error(w, i18n.T("forbidden"), http.StatusForbidden)
		return
	}
	servePDF(w, r, h.docs, c, h.log)
}

func (h *AdminHandler) SettingsForm(w http.ResponseWriter, r *http.Request) {
	h.renderSettings(w, r, http.StatusOK, nil, nil, "")
}

func (h *AdminHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Authorize(r.Context(), auth.SubjectFrom(r.Context(), ""), gate.ActionUpdate, policy.ResourceSettings, nil); err != nil {
		http.Error(w, i18n.T("forbidden"), http.StatusForbidden)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	values := make(map[string]string, len(models.SettingKeys()))
	for _, k := range models.SettingKeys() {
		values[k] = r.FormValue(k)
	}
	err := h.settings.Update(r.Context(), values)
	var v validation.Violations
	switch {
	case errors.As(err, &v):
		h.renderSettings(w, r, http.StatusUnprocessableEntity, values, translate(v), "")
		return
	case err != nil:
		h.log.ErrorContext(r.Context(), "save settings", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.log.InfoContext(r.Context(), "settings updated")
	h.renderSettings(w, r, http.StatusOK, nil, nil, i18n.T("settings_saved"))
}

type settingField struct {
	Key   string
	Label string
	Value string
	Error string
}

func (h *AdminHandler) renderSettings(w http.ResponseWriter, r *http.Request, status int, submitted, errs map[string]string, flash string) {
	values := submitted
	if values == nil {
		var err error
		values, err = h.settings.All(r.Context())
		if err != nil {
			h.log.ErrorContext(r.Context(), "load settings", "err", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
	fields := make([]settingField, 0, len(models.SettingKeys()))
	for _, k := range models.SettingKeys() {
		fields = append(fields, settingField{Key: k, Label: i18n.T(k), Value: values[k], Error: errs[k]})
	}
	view.RenderStatus(w, r, status, "admin/settings.html", map[string]any{
		"Fields": fields,
		"Flash":  flash,
	})
}
