package domain

// Artifact is a named downloadable file produced by a tool.
type Artifact struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

func TextArtifact(name, content string) Artifact {
	return Artifact{Name: name, Data: []byte(content)}
}

// ArtifactsFromResults returns one artifact per successful run result.
func ArtifactsFromResults(results []RunResult) []Artifact {
	out := make([]Artifact, 0, len(results))
	for _, r := range results {
		if r.OK() {
			out = append(out, TextArtifact(r.OutputName, r.Structure))
		}
	}
	return out
}
