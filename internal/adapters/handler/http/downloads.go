package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"bioportal/internal/adapters/download"
	"bioportal/internal/core/logger"
)

var zipNames = map[string]string{
	setRFD3Batch: "rdf3_batch_results.zip",
}

func urlParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	art, err := sess.Artifact(urlParam(r, "set"), urlParam(r, "name"))
	if err != nil {
		http.Error(w, "artifact not found", http.StatusNotFound)
		return
	}
	download.ServeFile(w, art)
}

func (s *Server) handleZipDownload(w http.ResponseWriter, r *http.Request) {
	set, ok := strings.CutSuffix(urlParam(r, "archive"), ".zip")
	if !ok {
		http.Error(w, "artifact not found", http.StatusNotFound)
		return
	}
	arts := sessionFrom(r.Context()).Outputs[set]
	if len(arts) == 0 {
		http.Error(w, "artifact not found", http.StatusNotFound)
		return
	}

	name, ok := zipNames[set]
	if !ok {
		name = set + "_results.zip"
	}
	if err := download.ServeZip(w, name, arts); err != nil {
		logger.ErrorContext(r.Context(), "Failed to build zip", "set", set, "error", err)
		http.Error(w, "failed to build archive", http.StatusInternalServerError)
	}
}
