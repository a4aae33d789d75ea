package domain

import "strings"

// Record is one raw row of a batch file keyed by column header.
type Record map[string]string

// ColumnMapping maps batch file columns to the field names a tool expects,
// e.g. {"sequence": "seq", "id": "name"}.
type ColumnMapping map[string]string

// Fields is a row after column mapping. A mapped column that is missing from
// the file has no entry.
type Fields map[string]string

func (f Fields) Get(key string) (string, bool) {
	v, ok := f[key]
	return v, ok
}

// Text returns the trimmed value of key, or "" when absent.
func (f Fields) Text(key string) string {
	return strings.TrimSpace(f[key])
}

// Map resolves the mapping against a single record.
func (m ColumnMapping) Map(r Record) Fields {
	fields := make(Fields, len(m))
	for column, key := range m {
		if v, ok := r[column]; ok {
			fields[key] = v
		}
	}
	return fields
}

// Table is a parsed batch file.
type Table struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Head returns at most n records for the preview table.
func (t *Table) Head(n int) []Record {
	if t == nil {
		return nil
	}
	if n > len(t.Records) {
		n = len(t.Records)
	}
	return t.Records[:n]
}

type RowStatus string

const (
	RowStatusDone   RowStatus = "done"
	RowStatusFailed RowStatus = "failed"
)

// RowResult is what a per-row handler reports back.
type RowResult struct {
	Status    RowStatus
	Artifacts []Artifact
	Message   string
}

// RowOutcome is the recorded outcome of one batch row.
type RowOutcome struct {
	Row       int        `json:"row"`
	Status    RowStatus  `json:"status"`
	Artifacts []Artifact `json:"artifacts,omitempty"`
	Message   string     `json:"message,omitempty"`
	Error     string     `json:"error,omitempty"`
	Kind      ErrorKind  `json:"kind,omitempty"`
}

type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 1
	}
	return float64(p.Completed) / float64(p.Total)
}

// ProgressEvent is published to live listeners while a batch runs.
type ProgressEvent struct {
	BatchID   string  `json:"batch_id"`
	Tool      string  `json:"tool"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Fraction  float64 `json:"fraction"`
}

func NewProgressEvent(batchID, tool string, p Progress) ProgressEvent {
	return ProgressEvent{
		BatchID:   batchID,
		Tool:      tool,
		Completed: p.Completed,
		Total:     p.Total,
		Fraction:  p.Fraction(),
	}
}

// BatchSummary counts outcomes per status.
type BatchSummary struct {
	Total  int `json:"total"`
	Done   int `json:"done"`
	Failed int `json:"failed"`
}

func Summarize(outcomes []RowOutcome) BatchSummary {
	s := BatchSummary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Status == RowStatusDone {
			s.Done++
		} else {
			s.Failed++
		}
	}
	return s
}

// CollectArtifacts flattens the artifacts of successful rows in row order.
func CollectArtifacts(outcomes []RowOutcome) []Artifact {
	var out []Artifact
	for _, o := range outcomes {
		if o.Status == RowStatusDone {
			out = append(out, o.Artifacts...)
		}
	}
	return out
}
