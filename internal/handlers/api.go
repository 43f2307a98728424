package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/diewo77/go-contracts/httpx"
	"github.com/diewo77/go-contracts/internal/models"
	"github.com/diewo77/go-contracts/internal/plans"
	"github.com/diewo77/go-contracts/internal/services"
	"github.com/diewo77/go-contracts/validation"
)

// APIHandler exposes plans, contracts and settings as JSON.
type APIHandler struct {
	contracts *services.ContractService
	docs      *services.DocumentService
	settings  *services.SettingsService
	log       *slog.Logger
}

func NewAPIHandler(contracts *services.ContractService, docs *services.DocumentService, settings *services.SettingsService, log *slog.Logger) *APIHandler {
	return &APIHandler{contracts: contracts, docs: docs, settings: settings, log: log}
}

// contractDTO is a contract without its signature payload.
type contractDTO struct {
	Number       string    `json:"contract_number"`
	CreatedAt    time.Time `json:"created_at"`
	Name         string    `json:"name"`
	TaxID        string    `json:"tax_id"`
	WhatsApp     string    `json:"whatsapp"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	Plan         string    `json:"plan"`
	HasSignature bool      `json:"has_signature"`
}

func toDTO(c models.Contract) contractDTO {
	return contractDTO{
		Number:       c.Number,
		CreatedAt:    c.CreatedAt,
		Name:         c.Name,
		TaxID:        c.TaxID,
		WhatsApp:     c.WhatsApp,
		Email:        c.Email,
		Address:      c.Address,
		Plan:         c.Plan,
		HasSignature: c.HasSignature(),
	}
}

func (h *APIHandler) Plans(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"plans":                   plans.All(),
		"comparison":              plans.ComparisonRows(),
		"reference_session_price": plans.ReferenceSessionPrice(),
	})
}

// ListContracts answers GET /api/contracts?search=.
func (h *APIHandler) ListContracts(w http.ResponseWriter, r *http.Request) {
	list, err := h.contracts.Search(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.log.ErrorContext(r.Context(), "search contracts", "err", err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	items := make([]contractDTO, 0, len(list))
	for _, c := range list {
		items = append(items, toDTO(c))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

// CreateContract accepts JSON or form bodies.
func (h *APIHandler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var in services.NewContract
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
			return
		}
		in = services.NewContract{
			Name:      r.FormValue("name"),
			TaxID:     r.FormValue("tax_id"),
			WhatsApp:  r.FormValue("whatsapp"),
			Email:     r.FormValue("email"),
			Address:   r.FormValue("address"),
			Plan:      r.FormValue("plan"),
			Signature: r.FormValue("signature"),
		}
	}
	c, err := h.contracts.Create(r.Context(), in)
	var v validation.Violations
	switch {
	case errors.As(err, &v):
		httpx.JSONError(w, http.StatusBadRequest, "validation", v)
		return
	case err != nil:
		h.log.ErrorContext(r.Context(), "create contract", "err", err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, toDTO(*c))
}

func (h *APIHandler) GetContract(w http.ResponseWriter, r *http.Request) {
	c, err := h.contracts.Get(r.Context(), r.PathValue("number"))
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, toDTO(*c))
}

func (h *APIHandler) ContractPDF(w http.ResponseWriter, r *http.Request) {
	c, err := h.contracts.Get(r.Context(), r.PathValue("number"))
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	servePDF(w, r, h.docs, c, h.log)
}

func (h *APIHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	values, err := h.settings.All(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, values)
}

// PutSettings answers PUT /api/settings with a flat key/value JSON object.
func (h *APIHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	err := h.settings.Update(r.Context(), values)
	var v validation.Violations
	switch {
	case errors.As(err, &v):
		httpx.JSONError(w, http.StatusBadRequest, "validation", v)
		return
	case err != nil:
		h.log.ErrorContext(r.Context(), "update settings", "err", err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	h.GetSettings(w, r)
}
