package output

import (
	"encoding/json"
	"io"

	"github.com/bgricker/opreport/internal/report"
)

// JSONRenderer emits structured catalog data.
type JSONRenderer struct {
	out io.Writer
}

// NewJSON creates a JSON renderer writing to out.
func NewJSON(out io.Writer) *JSONRenderer {
	return &JSONRenderer{out: out}
}

// Report captures JSON output schema.
type Report struct {
	Version    string         `json:"version"`
	Summary    report.Summary `json:"summary"`
	Operations []report.Row   `json:"operations"`
	Warnings   []string       `json:"warnings,omitempty"`
}

// Render encodes the report as JSON.
func (j *JSONRenderer) Render(r Report) error {
	if r.Operations == nil {
		r.Operations = []report.Row{}
	}
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
