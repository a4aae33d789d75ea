// Package download serves tool artifacts as single files or zip archives.
package download

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"

	"bioportal/internal/core/domain"
)

const DefaultZipName = "results.zip"

var contentTypes = map[string]string{
	".pdb":   "chemical/x-pdb",
	".csv":   "text/csv",
	".png":   "image/png",
	".jpg":   "image/jpg",
	".jpeg":  "image/jpeg",
	".zip":   "application/zip",
	".fasta": "text/plain",
}

// ContentType picks the MIME type for an artifact by its extension.
func ContentType(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return "application/octet-stream"
	}
	if ct, ok := contentTypes[strings.ToLower(name[i:])]; ok {
		return ct
	}
	return "application/octet-stream"
}

// BuildZip packs artifacts into a deflate-compressed archive, one entry per
// artifact in the given order.
func BuildZip(arts []domain.Artifact) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	modified := time.Now()
	for _, a := range arts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     a.Name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("zip entry %s: %w", a.Name, err)
		}
		if _, err := w.Write(a.Data); err != nil {
			return nil, fmt.Errorf("zip entry %s: %w", a.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}

// ServeFile writes a single artifact as an attachment.
func ServeFile(w http.ResponseWriter, a domain.Artifact) {
	writeAttachment(w, a.Name, ContentType(a.Name), a.Data)
}

// ServeZip writes the artifacts as one zip attachment.
func ServeZip(w http.ResponseWriter, name string, arts []domain.Artifact) error {
	data, err := BuildZip(arts)
	if err != nil {
		return err
	}
	if name == "" {
		name = DefaultZipName
	}
	writeAttachment(w, name, "application/zip", data)
	return nil
}

func writeAttachment(w http.ResponseWriter, name, contentType string, data []byte) {
	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
