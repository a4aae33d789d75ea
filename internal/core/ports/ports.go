package ports

import (
	"context"

	"bioportal/internal/core/domain"
)

// DesignBackend is one execution strategy for design runs.
type DesignBackend interface {
	Name() string
	Run(ctx context.Context, cfg domain.RunConfig) ([]domain.RunResult, error)
}

type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}

type ProgressPublisher interface {
	PublishProgress(ctx context.Context, event domain.ProgressEvent) error
}

// HealthChecker is implemented by adapters that depend on an external
// service.
type HealthChecker interface {
	Name() string
	Ping(ctx context.Context) error
}

type BackendRegistry interface {
	Get(name string) (DesignBackend, error)
	Names() []string
}
