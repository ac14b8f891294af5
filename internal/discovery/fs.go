package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoCatalog indicates that no catalog file was found during discovery.
var ErrNoCatalog = errors.New("no catalog discovered")

// Default locations, relative to the repository root.
var DefaultCatalogCandidates = []string{
	"docs/operations.yml",
	"docs/operations.yaml",
	"operations.yml",
	"operations.yaml",
}

const (
	DefaultTemplate = "docs/operations.md.tmpl"
	DefaultOutput   = "docs/operations.md"
)

// Inputs holds the three file locations of one pipeline run. Paths inside
// Root are kept relative for display; Abs resolves them.
type Inputs struct {
	Root     string
	Catalog  string
	Template string
	Output   string
}

// Abs joins a display path onto Root unless it is already absolute.
func (in Inputs) Abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(in.Root, path)
}

// Resolve determines the catalog, template and output locations. Explicit
// values win; otherwise the defaults above are used. Only the catalog must
// already exist here, the template is checked when it is read.
func Resolve(root, catalog, template, output string) (Inputs, error) {
	catalogPath, err := Catalog(root, catalog)
	if err != nil {
		return Inputs{}, err
	}
	if strings.TrimSpace(template) == "" {
		template = DefaultTemplate
	}
	if strings.TrimSpace(output) == "" {
		output = DefaultOutput
	}
	return Inputs{
		Root:     root,
		Catalog:  catalogPath,
		Template: display(root, template),
		Output:   display(root, output),
	}, nil
}

// Catalog returns the catalog path. An explicit path is validated; otherwise
// the first existing default candidate is used.
func Catalog(root, explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return resolveExplicit(root, explicit)
	}
	for _, candidate := range DefaultCatalogCandidates {
		info, err := os.Stat(filepath.Join(root, candidate))
		if err == nil && !info.IsDir() {
			return filepath.Clean(candidate), nil
		}
	}
	return "", ErrNoCatalog
}

func resolveExplicit(root, input string) (string, error) {
	cleaned := input
	if !filepath.IsAbs(cleaned) {
		cleaned = filepath.Join(root, cleaned)
	}
	info, err := os.Stat(cleaned)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("catalog %q not found", input)
		}
		return "", fmt.Errorf("stat %q: %w", input, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("catalog %q is a directory", input)
	}
	return mustRelOrClean(root, cleaned), nil
}

func display(root, path string) string {
	if !filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return mustRelOrClean(root, path)
}

func mustRelOrClean(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Clean(path)
	}
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return filepath.Clean(path)
	}
	return rel
}
