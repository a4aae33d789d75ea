package backend

import (
	"context"
	"fmt"

	"bioportal/internal/core/domain"
)

// API submits designs to a remote HTTP service (custom or hosted).
type API struct {
	URL    string
	APIKey string
}

func NewAPI(url, apiKey string) *API {
	return &API{URL: url, APIKey: apiKey}
}

func (a *API) Name() string { return NameAPI }

func (a *API) Run(ctx context.Context, cfg domain.RunConfig) ([]domain.RunResult, error) {
	return nil, fmt.Errorf("%w: API backend not yet implemented, use stub for development", domain.ErrNotImplemented)
}
