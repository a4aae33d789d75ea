package services

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"bioportal/internal/core/domain"
	"bioportal/internal/core/logger"
)

const (
	loginBurst       = 5
	limiterIdleAfter = 10 * time.Minute
	maxLimiters      = 4096
)

// AuthService gates the portal behind a single shared password. With no
// password configured every session is authorized.
type AuthService struct {
	password string
	sessions *SessionService

	perMinute int
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewAuthService(password string, sessions *SessionService, attemptsPerMinute int) *AuthService {
	if attemptsPerMinute <= 0 {
		attemptsPerMinute = 10
	}
	return &AuthService{
		password:  password,
		sessions:  sessions,
		perMinute: attemptsPerMinute,
		limiters:  make(map[string]*clientLimiter),
	}
}

func (s *AuthService) Enabled() bool {
	return s.password != ""
}

func (s *AuthService) Authorized(sess *domain.Session) bool {
	if !s.Enabled() {
		return true
	}
	return sess != nil && sess.Authenticated
}

// Login checks password and marks sess authenticated on success. clientKey
// identifies the caller for attempt throttling.
func (s *AuthService) Login(ctx context.Context, sess *domain.Session, clientKey, password string) error {
	if !s.Enabled() {
		return nil
	}
	if !s.allow(clientKey) {
		logger.WarnContext(ctx, "Login throttled", "client", clientKey)
		return domain.ErrTooManyAttempts
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		logger.InfoContext(ctx, "Login rejected", "client", clientKey)
		return domain.ErrInvalidPassword
	}

	sess.Authenticated = true
	return s.sessions.Touch(ctx, sess)
}

func (s *AuthService) Logout(ctx context.Context, sess *domain.Session) error {
	sess.Authenticated = false
	return s.sessions.End(ctx, sess)
}

func (s *AuthService) allow(clientKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if len(s.limiters) >= maxLimiters {
		for key, cl := range s.limiters {
			if now.Sub(cl.lastSeen) > limiterIdleAfter {
				delete(s.limiters, key)
			}
		}
	}

	cl, ok := s.limiters[clientKey]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMinute)), loginBurst)}
		s.limiters[clientKey] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}
