package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/bgricker/opreport/internal/report"
)

// PrettyRenderer renders catalog rows in a human-friendly format.
type PrettyRenderer struct {
	out io.Writer
}

// NewPretty creates a PrettyRenderer writing to the provided writer.
func NewPretty(out io.Writer) *PrettyRenderer {
	return &PrettyRenderer{out: out}
}

// RenderList prints the catalog summary followed by one entry per operation.
func (p *PrettyRenderer) RenderList(version string, summary report.Summary, rows []report.Row) error {
	var buffer bytes.Buffer

	fmt.Fprintf(&buffer, "Catalog %s\n", version)
	for _, row := range rows {
		fmt.Fprintf(&buffer, "  %s %s [%s]\n", statusGlyph(row.Status), row.Name, row.Category)
		fmt.Fprintf(&buffer, "      steps: %s\n", indent(row.JoinedSteps, "             "))
	}
	fmt.Fprintf(&buffer, "SUMMARY: %s\n", SummaryLine(summary))

	_, err := buffer.WriteTo(p.out)
	return err
}

// SummaryLine is the one-line count summary shared by every command.
func SummaryLine(s report.Summary) string {
	return fmt.Sprintf("%d operations (%d with alternatives, %d%%; %d without, %d%%)",
		s.Total, s.With, s.WithPercent, s.Without, s.WithoutPercent)
}

func statusGlyph(status report.TransactionStatus) string {
	switch status {
	case report.AllSafe:
		return "✅"
	case report.AllUnsafe:
		return "❌"
	case report.Mixed:
		return "⚠️"
	default:
		return "•"
	}
}

func indent(s, prefix string) string {
	s = strings.TrimRight(s, "\n")
	if !strings.Contains(s, "\n") {
		return s
	}
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}
