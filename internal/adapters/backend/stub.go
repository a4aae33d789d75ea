package backend

import (
	"context"

	"bioportal/internal/core/domain"
)

const (
	NameStub = "stub"
	NameCLI  = "cli"
	NameAPI  = "api"
)

// Stub returns the fixed placeholder structure for every requested design.
// It is meant for UI development while CLI and API backends are unavailable.
type Stub struct{}

func NewStub() *Stub {
	return &Stub{}
}

func (s *Stub) Name() string { return NameStub }

func (s *Stub) Run(ctx context.Context, cfg domain.RunConfig) ([]domain.RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	results := make([]domain.RunResult, 0, cfg.NumDesigns)
	for i := 0; i < cfg.NumDesigns; i++ {
		results = append(results, domain.Succeeded(domain.StubPDB, domain.DesignName(cfg.OutputPrefix, i)))
	}
	return results, nil
}
