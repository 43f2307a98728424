// Package wizard models the enrollment flow as a state machine. Transition is
// pure; persistence of the state between requests is left to a Store.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/go-contracts/internal/plans"
	"github.com/diewo77/go-contracts/internal/sigimage"
	"github.com/diewo77/go-contracts/validation"
)

type Step string

const (
	StepIdentity  Step = "identity"
	StepPlan      Step = "plan"
	StepSignature Step = "signature"
	StepSuccess   Step = "success"
)

// Index is the 1-based position of the step, used by the progress bar.
func (s Step) Index() int {
	switch s {
	case StepPlan:
		return 2
	case StepSignature:
		return 3
	case StepSuccess:
		return 4
	default:
		return 1
	}
}

// Form accumulates what the client typed across steps.
type Form struct {
	Name      string `json:"name"`
	TaxID     string `json:"tax_id"`
	WhatsApp  string `json:"whatsapp"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Plan      string `json:"plan"`
	Signature string `json:"signature,omitempty"`
}

type State struct {
	Step           Step   `json:"step"`
	Form           Form   `json:"form"`
	ContractNumber string `json:"contract_number,omitempty"`
}

// New returns the initial state.
func New() State { return State{Step: StepIdentity} }

// ReadyToFinalize reports whether a signed form is waiting for a contract number.
func (s State) ReadyToFinalize() bool {
	return s.Step == StepSignature && s.Form.Signature != ""
}

// Event is one of the types below.
type Event interface{ isEvent() }

type IdentitySubmitted struct {
	Name     string
	TaxID    string
	WhatsApp string
	Email    string
	Address  string
}

type PlanChosen struct{ Plan string }

type SignatureSubmitted struct{ Signature string }

type Finalized struct{ Number string }

type Back struct{}

type Reset struct{}

func (IdentitySubmitted) isEvent()  {}
func (PlanChosen) isEvent()         {}
func (SignatureSubmitted) isEvent() {}
func (Finalized) isEvent()          {}
func (Back) isEvent()               {}
func (Reset) isEvent()              {}

var ErrInvalidTransition = errors.New("wizard: invalid transition")

// ValidationError carries per-field codes; the state is left unchanged.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string { return e.Violations.Error() }

func (e *ValidationError) Unwrap() error { return e.Violations }

func invalid(v validation.Violations) error { return &ValidationError{Violations: v} }

// Transition applies e to s. On error the returned state is s.
func Transition(s State, e Event) (State, error) {
	if s.Step == "" {
		s.Step = StepIdentity
	}
	switch ev := e.(type) {
	case Reset:
		return New(), nil

	case IdentitySubmitted:
		if s.Step != StepIdentity {
			return s, transitionErr(s, e)
		}
		f := Form{
			Name:     strings.TrimSpace(ev.Name),
			TaxID:    strings.TrimSpace(ev.TaxID),
			WhatsApp: strings.TrimSpace(ev.WhatsApp),
			Email:    strings.TrimSpace(ev.Email),
			Address:  strings.TrimSpace(ev.Address),
		}
		v := validation.Violations{}
		validation.Required("name", f.Name, v)
		validation.Required("tax_id", f.TaxID, v)
		validation.Required("whatsapp", f.WhatsApp, v)
		validation.Required("email", f.Email, v)
		validation.Email("email", f.Email, v)
		validation.Required("address", f.Address, v)
		if !v.Empty() {
			return s, invalid(v)
		}
		next := s
		f.Plan, f.Signature = s.Form.Plan, s.Form.Signature
		next.Form = f
		next.Step = StepPlan
		return next, nil

	case PlanChosen:
		if s.Step != StepPlan {
			return s, transitionErr(s, e)
		}
		key := strings.TrimSpace(ev.Plan)
		v := validation.Violations{}
		validation.Required("plan", key, v)
		if v.Empty() {
			validation.OneOf("plan", key, "invalid_plan", func(k string) bool {
				_, ok := plans.Get(k)
				return ok
			}, v)
		}
		if !v.Empty() {
			return s, invalid(v)
		}
		next := s
		next.Form.Plan = key
		next.Step = StepSignature
		return next, nil

	case SignatureSubmitted:
		if s.Step != StepSignature {
			return s, transitionErr(s, e)
		}
		v := validation.Violations{}
		img, err := sigimage.Decode(ev.Signature)
		switch {
		case strings.TrimSpace(ev.Signature) == "":
			v["signature"] = "signature_required"
		case err != nil:
			v["signature"] = "signature_invalid"
		case sigimage.IsBlank(img):
			v["signature"] = "signature_required"
		}
		if !v.Empty() {
			return s, invalid(v)
		}
		next := s
		next.Form.Signature = ev.Signature
		return next, nil

	case Finalized:
		if !s.ReadyToFinalize() || strings.TrimSpace(ev.Number) == "" {
			return s, transitionErr(s, e)
		}
		next := s
		next.ContractNumber = ev.Number
		next.Step = StepSuccess
		return next, nil

	case Back:
		next := s
		switch s.Step {
		case StepPlan:
			next.Step = StepIdentity
		case StepSignature:
			next.Step = StepPlan
			next.Form.Signature = ""
		default:
			return s, transitionErr(s, e)
		}
		return next, nil
	}
	return s, transitionErr(s, e)
}

func transitionErr(s State, e Event) error {
	return fmt.Errorf("%w: %T at step %s", ErrInvalidTransition, e, s.Step)
}
