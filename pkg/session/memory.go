package session

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/mealfinder/pkg/domain"
)

// MemoryStore is an in-process session store with idle expiration
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*memoryEntry
}

type memoryEntry struct {
	session *domain.Session
	expires time.Time
}

// NewMemoryStore makes a memory store, sessions idle longer than ttl are dropped
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, sessions: make(map[string]*memoryEntry)}
}

// Get returns a copy of the session, or a new empty one if missing or expired
func (m *MemoryStore) Get(_ context.Context, id string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.load(id)), nil
}

// Update applies fn to the session under the store lock and saves the result.
// If fn returns an error nothing is saved.
func (m *MemoryStore) Update(_ context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := clone(m.load(id))
	if err := fn(sess); err != nil {
		return nil, err
	}
	m.sessions[id] = &memoryEntry{session: sess, expires: m.now().Add(m.ttl)}
	return clone(sess), nil
}

// Len returns the number of live sessions
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep removes expired sessions and returns how many were dropped
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for id, e := range m.sessions {
		if now.After(e.expires) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until the context is canceled
func (m *MemoryStore) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				lgr.Printf("[DEBUG] removed %d expired sessions, %d left", n, m.Len())
			}
		}
	}
}

// load returns the stored session or a fresh one, expired entries are treated as missing.
// must be called with lock held.
func (m *MemoryStore) load(id string) *domain.Session {
	e, ok := m.sessions[id]
	if !ok || m.now().After(e.expires) {
		delete(m.sessions, id)
		return domain.NewSession(id)
	}
	e.expires = m.now().Add(m.ttl)
	return e.session
}
