package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/diewo77/go-contracts/httpx"
	"github.com/diewo77/go-contracts/i18n"
	"github.com/diewo77/go-contracts/internal/models"
	"github.com/diewo77/go-contracts/internal/services"
	"github.com/diewo77/go-contracts/validation"
)

// servePDF renders c and streams it. A document that could not be produced
// is answered with 500 and a support message, never with an empty file.
func servePDF(w http.ResponseWriter, r *http.Request, docs *services.DocumentService, c *models.Contract, log *slog.Logger) {
	out, err := docs.Render(r.Context(), c)
	if err == nil {
		err = httpx.PDF(w, c.Number+".pdf", out)
		if err == nil {
			return
		}
	}
	log.ErrorContext(r.Context(), "serve contract pdf", "number", c.Number, "err", err)
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_failed", i18n.T("pdf_failed"))
		return
	}
	http.Error(w, i18n.T("pdf_failed"), http.StatusInternalServerError)
}

func notFoundOrError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrNotFound) {
		http.Error(w, i18n.T("not_found"), http.StatusNotFound)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// translate maps violation codes to display messages.
func translate(v validation.Violations) map[string]string {
	out := make(map[string]string, len(v))
	for field, code := range v {
		out[field] = i18n.T(code)
	}
	return out
}
