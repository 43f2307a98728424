package wizard

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoSession is returned by Load for unknown or expired sessions.
var ErrNoSession = errors.New("wizard: session not found")

// DefaultTTL is how long an idle enrollment is kept.
const DefaultTTL = time.Hour

// Store keeps wizard state between requests, keyed by session id.
type Store interface {
	Load(ctx context.Context, id string) (State, error)
	Save(ctx context.Context, id string, s State) error
	Delete(ctx context.Context, id string) error
}

type memEntry struct {
	state   State
	expires time.Time
}

// MemoryStore is a process-local Store. Entries expire after ttl of inactivity.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{entries: make(map[string]memEntry), ttl: ttl, now: time.Now}
}

func (m *MemoryStore) Load(_ context.Context, id string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return State{}, ErrNoSession
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, id)
		return State{}, ErrNoSession
	}
	return e.state, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = memEntry{state: s, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for id, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}
