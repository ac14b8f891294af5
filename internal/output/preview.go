package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Preview styles accepted by NewPreview.
const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

const minPreviewWidth = 24

// PreviewRenderer prints a report document as styled terminal markdown.
type PreviewRenderer struct {
	out   io.Writer
	style string
	width int
}

// NewPreview creates a PreviewRenderer. An empty style selects StyleAuto.
func NewPreview(out io.Writer, style string, width int) *PreviewRenderer {
	style = strings.ToLower(strings.TrimSpace(style))
	if style == "" {
		style = StyleAuto
	}
	if width < minPreviewWidth {
		width = minPreviewWidth
	}
	return &PreviewRenderer{out: out, style: style, width: width}
}

// Render writes the styled document. When glamour cannot render, the raw
// markdown is written instead so the preview never comes up empty.
func (p *PreviewRenderer) Render(markdown string) error {
	rendered, err := p.render(markdown)
	if err != nil {
		rendered = markdown
	}
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}
	_, err = io.WriteString(p.out, rendered)
	return err
}

func (p *PreviewRenderer) render(markdown string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(p.width)}
	switch p.style {
	case StyleAuto:
		opts = append(opts, glamour.WithAutoStyle())
	case StyleDark, StyleLight, StyleNoTTY:
		opts = append(opts, glamour.WithStandardStyle(p.style))
	default:
		return "", fmt.Errorf("unknown preview style %q", p.style)
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return renderer.Render(markdown)
}
