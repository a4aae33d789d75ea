package domain

// Tool is an entry in the portal catalog.
type Tool struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Available   bool   `json:"available"`
	Paper       string `json:"paper,omitempty"`
	Code        string `json:"code,omitempty"`
}

func (t Tool) Path() string {
	return "/tools/" + t.Slug
}

const (
	ToolRFdiffusion3 = "rfdiffusion3"
	ToolAlphaFold    = "alphafold"
	ToolProteinMPNN  = "proteinmpnn"
	ToolDocking      = "docking"
	ToolADMET        = "admet"
)

var Catalog = []Tool{
	{
		Slug:        ToolRFdiffusion3,
		Title:       "RFdiffusion3",
		Description: "Generate protein structures with all-atom diffusion models. Design proteins, enzymes, and protein–ligand complexes.",
		Icon:        "🧬",
		Category:    "Protein Design",
		Available:   true,
		Paper:       "https://www.biorxiv.org/",
		Code:        "https://github.com/RosettaCommons/foundry",
	},
	{
		Slug:        ToolAlphaFold,
		Title:       "AlphaFold-like",
		Description: "Predict protein structures from sequences. Multimer and monomer support.",
		Icon:        "📐",
		Category:    "Structure Prediction",
		Paper:       "https://www.nature.com/articles/s41586-021-03819-2",
		Code:        "https://github.com/deepmind/alphafold",
	},
	{
		Slug:        ToolProteinMPNN,
		Title:       "ProteinMPNN",
		Description: "Design sequences for fixed backbone structures. Inverse folding.",
		Icon:        "🧪",
		Category:    "Sequence Design",
		Available:   true,
		Paper:       "https://www.science.org/doi/10.1126/science.add2187",
		Code:        "https://github.com/dauparas/ProteinMPNN",
	},
	{
		Slug:        ToolDocking,
		Title:       "Molecular Docking",
		Description: "Protein–ligand or protein–protein docking. AF2BIND-style binding prediction.",
		Icon:        "⚗️",
		Category:    "Docking",
		Available:   true,
		Code:        "https://github.com/gcorso/DiffDock",
	},
	{
		Slug:        ToolADMET,
		Title:       "ADMET Prediction",
		Description: "Physicochemical and drug-likeness properties. Absorption, distribution, metabolism, excretion, toxicity.",
		Icon:        "💊",
		Category:    "Property Prediction",
		Available:   true,
	},
}

func LookupTool(slug string) (Tool, bool) {
	for _, t := range Catalog {
		if t.Slug == slug {
			return t, true
		}
	}
	return Tool{}, false
}
