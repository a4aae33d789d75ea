package domain

import "fmt"

const (
	ModelMonomer  = "monomer"
	ModelMultimer = "multimer"

	DockingProteinLigand  = "Protein–ligand"
	DockingProteinProtein = "Protein–protein (AF2BIND)"
)

var ADMETProperties = []string{"Lipinski Rule of 5", "Solubility", "Permeability", "Toxicity", "Drug-likeness"}

var DefaultADMETProperties = []string{"Lipinski Rule of 5", "Drug-likeness"}

// StructureRequest is an AlphaFold-like prediction request.
type StructureRequest struct {
	Sequence []byte
	Model    string
	Recycles int
}

// SequenceDesignRequest is a ProteinMPNN request.
type SequenceDesignRequest struct {
	Backbone     []byte
	NumSequences int
	Temperature  float64
}

func (r SequenceDesignRequest) Validate() error {
	if len(r.Backbone) == 0 {
		return fmt.Errorf("%w: please upload a backbone structure", ErrInvalidInput)
	}
	if r.NumSequences < 1 || r.NumSequences > 64 {
		return fmt.Errorf("%w: number of sequences must be between 1 and 64", ErrInvalidInput)
	}
	if r.Temperature < 0.01 || r.Temperature > 1.0 {
		return fmt.Errorf("%w: sampling temperature must be between 0.01 and 1.0", ErrInvalidInput)
	}
	return nil
}

// DockingRequest is a protein-ligand or protein-protein docking request.
type DockingRequest struct {
	Protein        []byte
	Ligand         []byte
	Mode           string
	Exhaustiveness int
}

func (r DockingRequest) Validate() error {
	if len(r.Protein) == 0 || len(r.Ligand) == 0 {
		return fmt.Errorf("%w: please upload both protein and ligand files", ErrInvalidInput)
	}
	if r.Exhaustiveness < 1 || r.Exhaustiveness > 64 {
		return fmt.Errorf("%w: search exhaustiveness must be between 1 and 64", ErrInvalidInput)
	}
	return nil
}

// ADMETRequest carries either a SMILES string or a molecule file.
type ADMETRequest struct {
	SMILES     string
	Molecules  []byte
	Properties []string
}

// PlaceholderOutput is the example output a page shows while a tool has no
// backend.
type PlaceholderOutput struct {
	Preview   string
	Artifacts []Artifact
}

const ExampleFASTA = ">design_1\nMKVLWAALLVTFLAGCQAKVEQAVETEPEPELRQQTEWQSG\n"

// ExampleADMETRows is the placeholder property table.
var ExampleADMETRows = [][2]string{
	{"MW", "180.2"},
	{"LogP", "1.4"},
	{"HBD", "0"},
	{"HBA", "4"},
	{"Lipinski pass", "Yes"},
}
