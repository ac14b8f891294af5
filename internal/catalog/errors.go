package catalog

import (
	"errors"
	"fmt"
)

// ErrMalformedCatalog matches every structural or schema violation reported by the loader.
var ErrMalformedCatalog = errors.New("malformed catalog")

// MalformedError identifies the offending field of a catalog document.
type MalformedError struct {
	File   string
	Path   string // dotted field path, empty for document-level problems
	Line   int
	Reason string
}

func (e *MalformedError) Error() string {
	loc := fmt.Sprintf("catalog %q", e.File)
	if e.Path != "" {
		loc += ": " + e.Path
	}
	if e.Line > 0 {
		loc += fmt.Sprintf(" (line %d)", e.Line)
	}
	return loc + ": " + e.Reason
}

// Is lets errors.Is match ErrMalformedCatalog.
func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedCatalog
}
