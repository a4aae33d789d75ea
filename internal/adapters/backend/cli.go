package backend

import (
	"context"
	"fmt"

	"bioportal/internal/core/domain"
)

// CLI runs designs through the foundry command line (`rfd3 design ...`).
type CLI struct {
	Binary string
	OutDir string
}

func NewCLI(binary, outDir string) *CLI {
	if binary == "" {
		binary = "rfd3"
	}
	if outDir == "" {
		outDir = "/tmp/rdf3_out"
	}
	return &CLI{Binary: binary, OutDir: outDir}
}

func (c *CLI) Name() string { return NameCLI }

// TODO: invoke `<binary> design out_dir=<OutDir> inputs=...` and collect the PDB files it writes.
func (c *CLI) Run(ctx context.Context, cfg domain.RunConfig) ([]domain.RunResult, error) {
	return nil, fmt.Errorf("%w: CLI backend not yet implemented, use stub for development", domain.ErrNotImplemented)
}
