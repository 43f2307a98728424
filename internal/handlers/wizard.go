package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/diewo77/go-contracts/auth"
	"github.com/diewo77/go-contracts/gate"
	"github.com/diewo77/go-contracts/i18n"
	"github.com/diewo77/go-contracts/internal/models"
	"github.com/diewo77/go-contracts/internal/plans"
	"github.com/diewo77/go-contracts/internal/policy"
	"github.com/diewo77/go-contracts/internal/services"
	"github.com/diewo77/go-contracts/internal/wizard"
	"github.com/diewo77/go-contracts/view"
	"github.com/google/uuid"
)

const wizardCookieName = "wizard_session"

// WizardHandler drives the client enrollment pages.
type WizardHandler struct {
	store     wizard.Store
	contracts *services.ContractService
	docs      *services.DocumentService
	gate      *gate.Gate[auth.Subject]
	log       *slog.Logger
	ttl       time.Duration
}

func NewWizardHandler(store wizard.Store, contracts *services.ContractService, docs *services.DocumentService, g *gate.Gate[auth.Subject], log *slog.Logger, ttl time.Duration) *WizardHandler {
	if ttl <= 0 {
		ttl = wizard.DefaultTTL
	}
	return &WizardHandler{store: store, contracts: contracts, docs: docs, gate: g, log: log, ttl: ttl}
}

// session returns the wizard session id, creating the cookie on first visit,
// and the stored state (initial state when none is stored).
func (h *WizardHandler) session(w http.ResponseWriter, r *http.Request) (string, wizard.State, error) {
	id := ""
	if c, err := r.Cookie(wizardCookieName); err == nil {
		if _, perr := uuid.Parse(c.Value); perr == nil {
			id = c.Value
		}
	}
	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     wizardCookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(h.ttl.Seconds()),
		})
		return id, wizard.New(), nil
	}
	st, err := h.store.Load(r.Context(), id)
	if errors.Is(err, wizard.ErrNoSession) {
		return id, wizard.New(), nil
	}
	return id, st, err
}

// Show renders the page of the current step.
func (h *WizardHandler) Show(w http.ResponseWriter, r *http.Request) {
	_, st, err := h.session(w, r)
	if err != nil {
		h.log.ErrorContext(r.Context(), "load wizard session", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.render(w, r, http.StatusOK, st, nil)
}

func (h *WizardHandler) render(w http.ResponseWriter, r *http.Request, status int, st wizard.State, errs map[string]string) {
	data := map[string]any{
		"State":  st,
		"Form":   st.Form,
		"Step":   st.Step.Index(),
		"Errors": errs,
		"Steps": []string{
			i18n.T("step_identity"), i18n.T("step_plan"), i18n.T("step_signature"), i18n.T("step_success"),
		},
	}
	switch st.Step {
	case wizard.StepPlan:
		data["Plans"] = plans.All()
		data["Comparison"] = plans.ComparisonRows()
		data["ReferencePrice"] = plans.ReferenceSessionPrice()
	case wizard.StepSignature:
		plan := plans.Resolve(st.Form.Plan)
		data["Plan"] = plan
		preview, err := h.docs.Preview(r.Context(), draftContract(st.Form))
		if err != nil {
			h.log.WarnContext(r.Context(), "contract preview unavailable", "err", err)
		}
		data["Preview"] = preview
	case wizard.StepSuccess:
		data["Number"] = st.ContractNumber
	}
	if err := view.RenderStatus(w, r, status, "wizard/"+string(st.Step)+".html", data); err != nil {
		h.log.ErrorContext(r.Context(), "render wizard page", "step", st.Step, "err", err)
	}
}

// apply runs ev against the session. Validation failures re-render the step
// with 422; illegal events send the client back to the current step.
func (h *WizardHandler) apply(w http.ResponseWriter, r *http.Request, ev wizard.Event) (string, wizard.State, bool) {
	id, st, err := h.session(w, r)
	if err != nil {
		h.log.ErrorContext(r.Context(), "load wizard session", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return "", st, false
	}
	next, err := wizard.Transition(st, ev)
	var verr *wizard.ValidationError
	switch {
	case errors.As(err, &verr):
		shown := st
		if f, ok := ev.(wizard.IdentitySubmitted); ok {
			shown.Form.Name, shown.Form.TaxID, shown.Form.WhatsApp, shown.Form.Email, shown.Form.Address = f.Name, f.TaxID, f.WhatsApp, f.Email, f.Address
		}
		h.render(w, r, http.StatusUnprocessableEntity, shown, translate(verr.Violations))
		return "", st, false
	case errors.Is(err, wizard.ErrInvalidTransition):
		h.log.DebugContext(r.Context(), "ignored wizard event", "err", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return "", st, false
	case err != nil:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return "", st, false
	}
	return id, next, true
}

func (h *WizardHandler) saveAndRedirect(w http.ResponseWriter, r *http.Request, id string, st wizard.State) {
	if err := h.store.Save(r.Context(), id, st); err != nil {
		h.log.ErrorContext(r.Context(), "save wizard session", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *WizardHandler) SubmitIdentity(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	id, st, ok := h.apply(w, r, wizard.IdentitySubmitted{
		Name:     r.FormValue("name"),
		TaxID:    r.FormValue("tax_id"),
		WhatsApp: r.FormValue("whatsapp"),
		Email:    r.FormValue("email"),
		Address:  r.FormValue("address"),
	})
	if ok {
		h.saveAndRedirect(w, r, id, st)
	}
}

func (h *WizardHandler) ChoosePlan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	id, st, ok := h.apply(w, r, wizard.PlanChosen{Plan: r.FormValue("plan")})
	if ok {
		h.saveAndRedirect(w, r, id, st)
	}
}

// SubmitSignature validates the drawing, stores the contract and moves the
// session to the success step.
func (h *WizardHandler) SubmitSignature(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	id, st, ok := h.apply(w, r, wizard.SignatureSubmitted{Signature: r.FormValue("signature")})
	if !ok {
		return
	}
	c, err := h.contracts.Create(r.Context(), services.NewContract{
		Name:      st.Form.Name,
		TaxID:     st.Form.TaxID,
		WhatsApp:  st.Form.WhatsApp,
		Email:     st.Form.Email,
		Address:   st.Form.Address,
		Plan:      st.Form.Plan,
		Signature: st.Form.Signature,
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "create contract", "err", err)
		h.render(w, r, http.StatusInternalServerError, st, map[string]string{"signature": i18n.T("save_failed")})
		return
	}
	done, err := wizard.Transition(st, wizard.Finalized{Number: c.Number})
	if err != nil {
		h.log.ErrorContext(r.Context(), "finalize wizard", "number", c.Number, "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.saveAndRedirect(w, r, id, done)
}

func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	id, st, ok := h.apply(w, r, wizard.Back{})
	if ok {
		h.saveAndRedirect(w, r, id, st)
	}
}

func (h *WizardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, _, err := h.session(w, r)
	if err == nil {
		err = h.store.Delete(r.Context(), id)
	}
	if err != nil {
		h.log.ErrorContext(r.Context(), "reset wizard session", "err", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ContractPDF serves the contract created by this session.
func (h *WizardHandler) ContractPDF(w http.ResponseWriter, r *http.Request) {
	_, st, err := h.session(w, r)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	subject := auth.SubjectFrom(r.Context(), st.ContractNumber)
	if err := h.gate.Authorize(r.Context(), subject, gate.ActionDownload, policy.ResourceContract, st.ContractNumber); err != nil {
		http.Error(w, i18n.T("forbidden"), http.StatusForbidden)
		return
	}
	c, err := h.contracts.Get(r.Context(), st.ContractNumber)
	if err != nil {
		notFoundOrError(w, err)
		return
	}
	servePDF(w, r, h.docs, c, h.log)
}

// draftContract is the unsaved contract shown for review before signing.
func draftContract(f wizard.Form) *models.Contract {
	return &models.Contract{
		Name:     f.Name,
		TaxID:    f.TaxID,
		WhatsApp: f.WhatsApp,
		Email:    f.Email,
		Address:  f.Address,
		Plan:     f.Plan,
	}
}
