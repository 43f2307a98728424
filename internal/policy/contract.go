package policy

import (
	"context"

	"github.com/diewo77/go-contracts/auth"
	"github.com/diewo77/go-contracts/gate"
	"github.com/diewo77/go-contracts/internal/models"
)

// Resource types registered on the gate.
const (
	ResourceContract = "contract"
	ResourceSettings = "settings"
)

// ContractPolicy lets the admin do anything with contracts and a client
// only view or download the contract their own session produced.
type ContractPolicy struct{}

func (ContractPolicy) Can(_ context.Context, s auth.Subject, action gate.Action, resource any) bool {
	if s.Admin {
		return true
	}
	switch action {
	case gate.ActionView, gate.ActionDownload:
		n := contractNumber(resource)
		return n != "" && n == s.Contract
	}
	return false
}

func contractNumber(resource any) string {
	switch v := resource.(type) {
	case string:
		return v
	case *models.Contract:
		if v != nil {
			return v.Number
		}
	case models.Contract:
		return v.Number
	}
	return ""
}

// SettingsPolicy restricts the company settings to the admin.
type SettingsPolicy struct{}

func (SettingsPolicy) Can(_ context.Context, s auth.Subject, _ gate.Action, _ any) bool {
	return s.Admin
}

// NewGate returns a gate with the contract and settings policies registered.
func NewGate() *gate.Gate[auth.Subject] {
	g := gate.NewGate[auth.Subject]()
	g.Register(ResourceContract, ContractPolicy{})
	g.Register(ResourceSettings, SettingsPolicy{})
	return g
}
