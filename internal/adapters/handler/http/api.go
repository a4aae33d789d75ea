package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bioportal/internal/core/circuitbreaker"
	"bioportal/internal/core/domain"
	"bioportal/internal/web/components"
)

type toolsResponse struct {
	Tools          []domain.Tool `json:"tools"`
	Backends       []string      `json:"backends"`
	DefaultBackend string        `json:"default_backend"`
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toolsResponse{
		Tools:          domain.Catalog,
		Backends:       s.deps.Design.Backends(),
		DefaultBackend: s.deps.Design.DefaultBackend(),
	})
}

// CreateRunRequest is the JSON body of POST /api/rfdiffusion3/runs.
// Structures are passed inline as text.
type CreateRunRequest struct {
	Backend      string  `json:"backend"`
	NumDesigns   *int    `json:"num_designs"`
	OutputPrefix *string `json:"output_prefix"`
	Constraints  string  `json:"constraints"`
	ScaffoldPDB  string  `json:"scaffold_pdb"`
	LigandSDF    string  `json:"ligand_sdf"`
}

type CreateRunResponse struct {
	Backend   string             `json:"backend"`
	Results   []domain.RunResult `json:"results"`
	Downloads []string           `json:"downloads"`
	Archive   string             `json:"archive"`
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, s.deps.MaxUploadBytes)

	var req CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	cfg := domain.NewRunConfig()
	if req.NumDesigns != nil {
		cfg.NumDesigns = *req.NumDesigns
	}
	if req.OutputPrefix != nil {
		cfg.OutputPrefix = strings.TrimSpace(*req.OutputPrefix)
	}
	if c := strings.TrimSpace(req.Constraints); c != "" {
		cfg.Constraints = c
	}
	if req.ScaffoldPDB != "" {
		cfg.Scaffold = []byte(req.ScaffoldPDB)
	}
	if req.LigandSDF != "" {
		cfg.Ligand = []byte(req.LigandSDF)
	}

	backend := req.Backend
	if backend == "" {
		backend = s.deps.Design.DefaultBackend()
	}

	results, err := s.deps.Design.Run(ctx, backend, cfg)
	RecordRun(domain.ToolRFdiffusion3, backend, runStatus(err))
	if err != nil {
		writeError(w, apiStatus(err), http.StatusText(apiStatus(err)), userMessage(err))
		return
	}

	arts := domain.ArtifactsFromResults(results)
	RecordDesigns(backend, len(arts))
	if err := s.deps.Sessions.StoreOutputs(ctx, sessionFrom(ctx), setRFD3, arts); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store results", err.Error())
		return
	}

	resp := CreateRunResponse{Backend: backend, Results: results, Archive: components.ZipURL(setRFD3)}
	for _, a := range arts {
		resp.Downloads = append(resp.Downloads, components.DownloadURL(setRFD3, a.Name))
	}
	writeJSON(w, http.StatusOK, resp)
}

func apiStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnknownBackend),
		errors.Is(err, domain.ErrUnsupportedFormat),
		errors.Is(err, domain.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
