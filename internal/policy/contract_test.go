package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/diewo77/go-contracts/auth"
	"github.com/diewo77/go-contracts/gate"
	"github.com/diewo77/go-contracts/internal/models"
)

func TestContractPolicy(t *testing.T) {
	g := NewGate()
	ctx := context.Background()
	admin := auth.Subject{Admin: true}
	client := auth.Subject{Contract: "CTR-2026-0001"}
	own := &models.Contract{Number: "CTR-2026-0001"}
	other := models.Contract{Number: "CTR-2026-0002"}

	cases := []struct {
		name     string
		subject  auth.Subject
		action   gate.Action
		resource any
		want     bool
	}{
		{"admin lists", admin, gate.ActionList, nil, true},
		{"admin downloads any", admin, gate.ActionDownload, other, true},
		{"client downloads own", client, gate.ActionDownload, own, true},
		{"client views own by number", client, gate.ActionView, "CTR-2026-0001", true},
		{"client downloads other", client, gate.ActionDownload, other, false},
		{"client lists", client, gate.ActionList, nil, false},
		{"client with empty resource", client, gate.ActionView, "", false},
		{"nil contract", client, gate.ActionView, (*models.Contract)(nil), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Can(ctx, tc.subject, tc.action, ResourceContract, tc.resource); got != tc.want {
				t.Fatalf("Can = %v, want %v", got, tc.want)
			}
		})
	}

	if err := g.Authorize(ctx, auth.Subject{}, gate.ActionView, ResourceContract, "CTR-2026-0001"); !errors.Is(err, gate.ErrUnauthorized) {
		t.Fatalf("anonymous subject must be refused, got %v", err)
	}
}

func TestSettingsPolicy(t *testing.T) {
	g := NewGate()
	ctx := context.Background()
	if !g.Can(ctx, auth.Subject{Admin: true}, gate.ActionUpdate, ResourceSettings, nil) {
		t.Fatalf("admin should edit settings")
	}
	if g.Can(ctx, auth.Subject{Contract: "CTR-2026-0001"}, gate.ActionView, ResourceSettings, nil) {
		t.Fatalf("clients must not read settings")
	}
}
