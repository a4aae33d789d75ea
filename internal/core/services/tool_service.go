package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"bioportal/internal/core/domain"
	"bioportal/internal/core/logger"
)

// ToolService fronts the tools that have no compute backend yet. Every run
// validates its input and then fails with domain.ErrNotImplemented, returning
// the example output the page shows instead.
type ToolService struct{}

func NewToolService() *ToolService {
	return &ToolService{}
}

func (s *ToolService) PredictStructure(ctx context.Context, req domain.StructureRequest) error {
	logger.DebugContext(ctx, "Structure prediction requested", "model", req.Model, "recycles", req.Recycles)
	return fmt.Errorf("%w: structure prediction will be available in a future release", domain.ErrNotImplemented)
}

func (s *ToolService) DesignSequences(ctx context.Context, req domain.SequenceDesignRequest) (*domain.PlaceholderOutput, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	logger.DebugContext(ctx, "Sequence design requested", "sequences", req.NumSequences, "temperature", req.Temperature)

	out := &domain.PlaceholderOutput{
		Preview:   strings.TrimSpace(domain.ExampleFASTA),
		Artifacts: []domain.Artifact{domain.TextArtifact("mpnn_designs.fasta", domain.ExampleFASTA)},
	}
	return out, fmt.Errorf("%w: ProteinMPNN backend not yet integrated", domain.ErrNotImplemented)
}

func (s *ToolService) Dock(ctx context.Context, req domain.DockingRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	logger.DebugContext(ctx, "Docking requested", "mode", req.Mode, "exhaustiveness", req.Exhaustiveness)
	return fmt.Errorf("%w: docking backend not yet integrated", domain.ErrNotImplemented)
}

func (s *ToolService) PredictADMET(ctx context.Context, req domain.ADMETRequest) (*domain.PlaceholderOutput, error) {
	if strings.TrimSpace(req.SMILES) == "" && len(req.Molecules) == 0 {
		return nil, fmt.Errorf("%w: please provide a SMILES string or upload a file", domain.ErrInvalidInput)
	}
	logger.DebugContext(ctx, "ADMET prediction requested", "properties", req.Properties)

	table, err := exampleADMETTable()
	if err != nil {
		return nil, err
	}
	out := &domain.PlaceholderOutput{
		Preview:   table,
		Artifacts: []domain.Artifact{domain.TextArtifact("admet_results.csv", table)},
	}
	return out, fmt.Errorf("%w: ADMET backend not yet integrated", domain.ErrNotImplemented)
}

func exampleADMETTable() (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Property", "Value"}); err != nil {
		return "", err
	}
	for _, row := range domain.ExampleADMETRows {
		if err := w.Write(row[:]); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}
