// Package session holds the SessionStore implementations.
package session

import (
	"context"
	"sync"
	"time"

	"bioportal/internal/core/domain"
)

// MemoryStore keeps sessions in process memory. Expired sessions are swept
// periodically until Close is called.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	now      func() time.Time
	stop     chan struct{}
	once     sync.Once
}

func NewMemoryStore(sweepEvery time.Duration) *MemoryStore {
	m := &MemoryStore{
		sessions: make(map[string]*domain.Session),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	if sweepEvery > 0 {
		go m.janitor(sweepEvery)
	}
	return m
}

func (m *MemoryStore) Get(_ context.Context, id string) (*domain.Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok || sess.Expired(m.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return clone(sess), nil
}

func (m *MemoryStore) Save(_ context.Context, sess *domain.Session) error {
	m.mu.Lock()
	m.sessions[sess.ID] = clone(sess)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops expired sessions and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, sess := range m.sessions {
		if sess.Expired(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

func (m *MemoryStore) Close() error {
	m.once.Do(func() { close(m.stop) })
	return nil
}

func (m *MemoryStore) janitor(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// clone copies the session and its output map. Artifact payloads are
// shared since nothing mutates them after creation.
func clone(sess *domain.Session) *domain.Session {
	c := *sess
	if sess.Outputs != nil {
		c.Outputs = make(map[string][]domain.Artifact, len(sess.Outputs))
		for set, arts := range sess.Outputs {
			c.Outputs[set] = append([]domain.Artifact(nil), arts...)
		}
	}
	return &c
}
