package components

import (
	"github.com/a-h/templ"

	"bioportal/internal/adapters/upload"
	"bioportal/internal/core/domain"
)

// Notice is one inline message on a tool page.
type Notice struct {
	Kind MessageKind
	Text string
}

func Notices(ns []Notice) templ.Component {
	cs := make([]templ.Component, len(ns))
	for i, n := range ns {
		cs[i] = Message(n.Kind, n.Text)
	}
	return Group(cs...)
}

func tool(slug string) domain.Tool {
	t, _ := domain.LookupTool(slug)
	return t
}

// RFD3View is the state of the RFdiffusion3 page.
type RFD3View struct {
	NumDesigns   string
	OutputPrefix string
	Constraints  string
	Backend      string
	Backends     []string

	Notices []Notice
	Set     string
	Results []domain.Artifact

	BatchID       string
	BatchBackend  string
	BatchFile     string
	BatchNotices  []Notice
	BatchTable    *domain.Table
	BatchOutcomes []domain.RowOutcome
	BatchSet      string
	BatchFiles    int
}

func RFD3Page(v RFD3View) templ.Component {
	single := Section("Single design",
		Form("/tools/rfdiffusion3", true,
			Columns(
				Group(
					UploadField(Upload{
						Name:  "scaffold",
						Label: "Scaffold PDB (optional)",
						Types: upload.StructureTypes,
						Help:  "Upload a scaffold structure. Leave empty for de novo design.",
					}),
					UploadField(Upload{
						Name:  "ligand",
						Label: "Ligand SDF (optional)",
						Types: upload.LigandTypes,
						Help:  "Upload ligand for protein–ligand design.",
					}),
				),
				Group(
					InputField(Input{Name: "num_designs", Label: "Number of designs", Type: "number", Value: v.NumDesigns, Min: "1", Max: itoa(domain.MaxDesigns)}),
					InputField(Input{Name: "output_prefix", Label: "Output prefix", Value: v.OutputPrefix}),
					Select("backend", "Backend", v.Backends, v.Backend),
				),
			),
			TextArea("constraints", "Constraints JSON (optional)", v.Constraints,
				"JSON with conditioning (motifs, symmetry, etc.). Leave {} for default.", 4),
			SubmitButton(Button{Label: "Run design"}),
		),
		Notices(v.Notices),
		DesignResults(v.Set, v.Results),
	)

	batchChildren := []templ.Component{
		Hidden("batch_id", v.BatchID),
		UploadField(Upload{
			Name:  "batch_file",
			Label: "Upload CSV or Excel",
			Types: upload.BatchTypes,
			Help:  "Columns: scaffold_pdb (path or inline), output_prefix, num_designs. Or use a template.",
		}),
		Select("backend", "Backend", v.Backends, v.BatchBackend),
	}
	if v.BatchFile != "" {
		batchChildren = append(batchChildren, Caption("Loaded file: "+v.BatchFile))
	}
	batchChildren = append(batchChildren,
		SubmitButton(Button{Label: "Preview", Name: "action", Value: "preview", Secondary: true}),
		SubmitButton(Button{Label: "Run batch", Name: "action", Value: "run"}),
		Progress(v.BatchID),
	)

	batch := []templ.Component{Form("/tools/rfdiffusion3/batch", true, batchChildren...), Notices(v.BatchNotices)}
	if v.BatchTable != nil && len(v.BatchOutcomes) == 0 {
		batch = append(batch, BatchPreview(v.BatchTable, 10))
	}
	if len(v.BatchOutcomes) > 0 {
		batch = append(batch, BatchResults(v.BatchOutcomes))
	}
	if v.BatchSet != "" && v.BatchFiles > 0 {
		batch = append(batch, DownloadLink(ZipURL(v.BatchSet), "Download all (ZIP)"))
	}

	return Group(
		ToolHeader(tool(domain.ToolRFdiffusion3)),
		single,
		Section("Batch design", batch...),
	)
}

// AlphaFoldView is the state of the structure prediction preview page.
type AlphaFoldView struct {
	Model    string
	Recycles string
	Preview  string
	Notices  []Notice
}

func AlphaFoldPage(v AlphaFoldView) templ.Component {
	return Group(
		ToolHeader(tool(domain.ToolAlphaFold)),
		Message(MessageWarning, "🚧 Coming soon. Structure prediction will be available in a future release."),
		Notices(v.Notices),
		Section("",
			Details("Preview: Upload and parameters", v.Preview != "",
				Form("/tools/alphafold", true,
					UploadField(Upload{
						Name:  "sequence",
						Label: "Sequence (FASTA)",
						Types: upload.SequenceTypes,
						Help:  "Upload FASTA or paste sequence.",
					}),
					Select("model", "Model", []string{domain.ModelMonomer, domain.ModelMultimer}, v.Model),
					InputField(Input{Name: "recycles", Label: "Number of recycles", Type: "number", Value: v.Recycles, Min: "1", Max: "20"}),
					SubmitButton(Button{Label: "Preview sequence", Secondary: true}),
					SubmitButton(Button{Label: "Run prediction", Disabled: true, Title: "Coming soon"}),
				),
				previewBlock(v.Preview),
			),
		),
	)
}

func previewBlock(text string) templ.Component {
	if text == "" {
		return nil
	}
	return Code(text)
}

// MPNNView is the state of the ProteinMPNN page.
type MPNNView struct {
	NumSequences string
	Temperature  string
	Backbone     []byte
	Notices      []Notice
	Output       *domain.PlaceholderOutput
	Set          string
}

func MPNNPage(v MPNNView) templ.Component {
	out := []templ.Component{
		ToolHeader(tool(domain.ToolProteinMPNN)),
		Section("",
			Form("/tools/proteinmpnn", true,
				Columns(
					UploadField(Upload{
						Name:  "backbone",
						Label: "Backbone PDB",
						Types: upload.StructureTypes,
						Help:  "Upload a protein structure. Designed sequences will fit this backbone.",
					}),
					Group(
						InputField(Input{Name: "num_sequences", Label: "Number of sequences", Type: "number", Value: v.NumSequences, Min: "1", Max: "64"}),
						InputField(Input{Name: "temperature", Label: "Sampling temperature", Type: "number", Value: v.Temperature, Min: "0.01", Max: "1.0", Step: "0.01"}),
					),
				),
				SubmitButton(Button{Label: "Run ProteinMPNN"}),
			),
		),
	}
	if len(v.Backbone) > 0 {
		out = append(out, Details("Structure preview", true, StructureViewer("mpnn-backbone", v.Backbone, DefaultViewer)))
	}
	out = append(out, Notices(v.Notices))
	if v.Output != nil {
		children := []templ.Component{Code(v.Output.Preview)}
		for _, a := range v.Output.Artifacts {
			children = append(children, DownloadLink(DownloadURL(v.Set, a.Name), "Download FASTA"))
		}
		out = append(out, Details("Example output (placeholder)", true, children...))
	}
	return Group(out...)
}

// DockingView is the state of the docking page.
type DockingView struct {
	Mode           string
	Exhaustiveness string
	Protein        []byte
	Notices        []Notice
}

func DockingPage(v DockingView) templ.Component {
	out := []templ.Component{
		ToolHeader(tool(domain.ToolDocking)),
		Section("",
			Form("/tools/docking", true,
				Columns(
					Group(
						UploadField(Upload{Name: "protein", Label: "Protein structure (PDB)", Types: upload.StructureTypes, Help: "Target protein structure."}),
						UploadField(Upload{Name: "ligand", Label: "Ligand (SDF/MOL)", Types: upload.DockingLigandTypes, Help: "Small molecule to dock."}),
					),
					Group(
						Select("mode", "Mode", []string{domain.DockingProteinLigand, domain.DockingProteinProtein}, v.Mode),
						InputField(Input{Name: "exhaustiveness", Label: "Search exhaustiveness", Type: "number", Value: v.Exhaustiveness, Min: "1", Max: "64"}),
					),
				),
				SubmitButton(Button{Label: "Run docking"}),
			),
		),
	}
	if len(v.Protein) > 0 {
		out = append(out, Details("Protein structure preview", true, StructureViewer("dock-protein", v.Protein, DefaultViewer)))
	}
	out = append(out, Notices(v.Notices))
	return Group(out...)
}

const (
	InputSMILES = "SMILES"
	InputFile   = "File upload"
)

// ADMETView is the state of the ADMET page.
type ADMETView struct {
	InputMode  string
	SMILES     string
	Properties []string
	Notices    []Notice
	Rows       [][]string
	Set        string
	Artifacts  []domain.Artifact
}

func ADMETPage(v ADMETView) templ.Component {
	mode := v.InputMode
	if mode == "" {
		mode = InputSMILES
	}
	out := []templ.Component{
		ToolHeader(tool(domain.ToolADMET)),
		Section("",
			Form("/tools/admet", true,
				Choices("properties", "Properties to predict", domain.ADMETProperties, v.Properties, true),
				Choices("input_mode", "Input mode", []string{InputSMILES, InputFile}, []string{mode}, false),
				InputField(Input{Name: "smiles", Label: "SMILES string", Value: v.SMILES, Placeholder: "CC(=O)OC1=CC=CC=C1C(=O)O"}),
				UploadField(Upload{
					Name:  "molecules",
					Label: "Molecules (SDF, CSV with SMILES column)",
					Types: upload.MoleculeTypes,
					Help:  "Upload a file with molecular structures.",
				}),
				SubmitButton(Button{Label: "Run ADMET prediction"}),
			),
		),
		Notices(v.Notices),
	}
	if len(v.Rows) > 0 {
		children := []templ.Component{Table([]string{"Property", "Value"}, v.Rows)}
		for _, a := range v.Artifacts {
			children = append(children, DownloadLink(DownloadURL(v.Set, a.Name), "Download CSV"))
		}
		out = append(out, Details("Example output (placeholder)", true, children...))
	}
	return Group(out...)
}
