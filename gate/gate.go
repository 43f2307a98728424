// Package gate is a small policy registry used to decide who may read
// contracts and change settings. Policies are keyed by resource type and
// evaluated against a comparable subject value.
package gate

import (
	"context"
	"sync"
)

// Gate is the central authorization checkpoint.
// S is the subject type; its zero value means "anonymous".
type Gate[S comparable] struct {
	mu       sync.RWMutex
	policies map[string]Policy[S]
}

// NewGate creates an empty Gate ready to register policies.
func NewGate[S comparable]() *Gate[S] {
	return &Gate[S]{policies: make(map[string]Policy[S])}
}

// Register adds a policy for a resource type, replacing any previous one.
func (g *Gate[S]) Register(resourceType string, p Policy[S]) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.policies[resourceType] = p
}

// Authorize returns ErrUnauthorized for an anonymous subject or a denied
// action, and ErrNoPolicyDefined when resourceType is unknown.
func (g *Gate[S]) Authorize(ctx context.Context, subject S, action Action, resourceType string, resource any) error {
	var zero S
	if subject == zero {
		return ErrUnauthorized
	}
	g.mu.RLock()
	p, ok := g.policies[resourceType]
	g.mu.RUnlock()
	if !ok {
		return ErrNoPolicyDefined
	}
	if !p.Can(ctx, subject, action, resource) {
		return ErrUnauthorized
	}
	return nil
}

// Can is Authorize as a bool.
func (g *Gate[S]) Can(ctx context.Context, subject S, action Action, resourceType string, resource any) bool {
	return g.Authorize(ctx, subject, action, resourceType, resource) == nil
}
