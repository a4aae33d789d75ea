package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StubPDB is a minimal valid PDB payload (a single alanine residue) returned
// by the stub design backend.
const StubPDB = `ATOM      1  N   ALA A   1       0.000   0.000   0.000  1.00  0.00           N
ATOM      2  CA  ALA A   1       1.458   0.000   0.000  1.00  0.00           C
ATOM      3  C   ALA A   1       2.009   1.420   0.000  1.00  0.00           C
ATOM      4  O   ALA A   1       1.247   2.394   0.000  1.00  0.00           O
ATOM      5  CB  ALA A   1       1.991  -0.774  -1.229  1.00  0.00           C
END
`

const (
	DefaultOutputPrefix = "design"
	DefaultConstraints  = "{}"

	// MaxDesigns caps a single run on every entry path.
	MaxDesigns = 20
)

type RunStatus string

const (
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// RunConfig describes a single design run.
type RunConfig struct {
	Scaffold     []byte `json:"-"`
	ScaffoldPath string `json:"scaffold_path,omitempty"`
	Ligand       []byte `json:"-"`
	LigandPath   string `json:"ligand_path,omitempty"`
	Constraints  string `json:"constraints,omitempty"`
	NumDesigns   int    `json:"num_designs"`
	OutputPrefix string `json:"output_prefix"`
}

// NewRunConfig returns a config with the portal defaults applied.
func NewRunConfig() RunConfig {
	return RunConfig{
		Constraints:  DefaultConstraints,
		NumDesigns:   1,
		OutputPrefix: DefaultOutputPrefix,
	}
}

func (c RunConfig) Validate() error {
	if c.NumDesigns < 1 || c.NumDesigns > MaxDesigns {
		return fmt.Errorf("%w: number of designs must be between 1 and %d, got %d", ErrInvalidInput, MaxDesigns, c.NumDesigns)
	}
	if strings.TrimSpace(c.OutputPrefix) == "" {
		return fmt.Errorf("%w: output prefix is required", ErrInvalidInput)
	}
	if s := strings.TrimSpace(c.Constraints); s != "" && !json.Valid([]byte(s)) {
		return fmt.Errorf("%w: constraints must be valid JSON", ErrInvalidInput)
	}
	return nil
}

// RunResult is the outcome of one design. Structure is set when the status is
// succeeded, Error when it is failed.
type RunResult struct {
	Status     RunStatus `json:"status"`
	Structure  string    `json:"structure,omitempty"`
	Error      string    `json:"error,omitempty"`
	OutputName string    `json:"output_name,omitempty"`
}

func Succeeded(structure, outputName string) RunResult {
	return RunResult{Status: RunStatusSucceeded, Structure: structure, OutputName: outputName}
}

func Failed(err error, outputName string) RunResult {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return RunResult{Status: RunStatusFailed, Error: msg, OutputName: outputName}
}

func (r RunResult) OK() bool {
	return r.Status == RunStatusSucceeded && r.Structure != ""
}

// DesignName is the derived output name of the i-th design of a run.
func DesignName(prefix string, i int) string {
	return fmt.Sprintf("%s_%d.pdb", prefix, i)
}
