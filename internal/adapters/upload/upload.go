package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"bioportal/internal/core/domain"
)

// Accepted file extensions per upload widget.
var (
	StructureTypes     = []string{"pdb", "pdb1", "ent", "cif"}
	LigandTypes        = []string{"sdf", "mol", "mol2"}
	DockingLigandTypes = []string{"sdf", "mol", "mol2", "pdb"}
	SequenceTypes      = []string{"fasta", "fa", "faa", "fna", "txt"}
	BatchTypes         = []string{"csv", "xlsx"} // excelize reads OOXML only
	MoleculeTypes      = []string{"sdf", "mol", "csv"}
)

const DefaultPreviewLines = 50

// File is an uploaded file held in memory.
type File struct {
	Name string
	Data []byte
}

func (f *File) Text() string {
	if f == nil {
		return ""
	}
	return string(bytes.ToValidUTF8(f.Data, []byte("�")))
}

// Bytes returns the file content, or nil when no file was uploaded.
func (f *File) Bytes() []byte {
	if f == nil {
		return nil
	}
	return f.Data
}

// Extension returns the lower-case extension of name without the dot.
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// Allowed reports whether name carries one of the allowed extensions. An
// empty allow-list accepts anything.
func Allowed(name string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	ext := Extension(name)
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// Describe renders the allow-list for help texts.
func Describe(allowed []string) string {
	if len(allowed) == 0 {
		return "any"
	}
	return strings.Join(allowed, ", ")
}

// Read returns the file posted under field. It returns (nil, nil) when the
// form carries no file for field. The multipart form must already be parsed.
func Read(r *http.Request, field string, allowed []string, maxBytes int64) (*File, error) {
	f, fh, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	defer f.Close()

	if fh.Filename == "" {
		return nil, nil
	}
	if !Allowed(fh.Filename, allowed) {
		return nil, fmt.Errorf("%w: %s is not an accepted file type (accepted formats: %s)",
			domain.ErrUnsupportedFormat, fh.Filename, Describe(allowed))
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds the %d byte upload limit", domain.ErrInvalidInput, fh.Filename, maxBytes)
	}

	var buf bytes.Buffer
	reader := io.Reader(f)
	if maxBytes > 0 {
		reader = io.LimitReader(f, maxBytes+1)
	}
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}
	if maxBytes > 0 && int64(buf.Len()) > maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds the %d byte upload limit", domain.ErrInvalidInput, fh.Filename, maxBytes)
	}

	return &File{Name: filepath.Base(fh.Filename), Data: buf.Bytes()}, nil
}

// Preview returns the first n lines of data, replacing invalid UTF-8.
func Preview(data []byte, n int) string {
	if n <= 0 {
		n = DefaultPreviewLines
	}
	text := string(bytes.ToValidUTF8(data, []byte("�")))
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
