package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"bioportal/internal/core/domain"
	"bioportal/internal/core/ports"
)

type SessionService struct {
	store ports.SessionStore
	ttl   time.Duration
	now   func() time.Time
}

func NewSessionService(store ports.SessionStore, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionService{store: store, ttl: ttl, now: time.Now}
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Load returns the session for id, starting a fresh one when id is empty,
// unknown or expired. created reports whether a new session was started.
func (s *SessionService) Load(ctx context.Context, id string) (sess *domain.Session, created bool, err error) {
	if id != "" {
		sess, err = s.store.Get(ctx, id)
		switch {
		case err == nil && !sess.Expired(s.now()):
			return sess, false, nil
		case err != nil && !errors.Is(err, domain.ErrSessionNotFound):
			return nil, false, err
		}
	}

	now := s.now()
	sess = &domain.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, false, err
	}
	return sess, true, nil
}

// Touch extends the session lifetime and persists it.
func (s *SessionService) Touch(ctx context.Context, sess *domain.Session) error {
	sess.ExpiresAt = s.now().Add(s.ttl)
	return s.store.Save(ctx, sess)
}

// StoreOutputs replaces the named artifact set of the session.
func (s *SessionService) StoreOutputs(ctx context.Context, sess *domain.Session, set string, artifacts []domain.Artifact) error {
	sess.SetOutputs(set, artifacts)
	return s.store.Save(ctx, sess)
}

func (s *SessionService) End(ctx context.Context, sess *domain.Session) error {
	return s.store.Delete(ctx, sess.ID)
}
