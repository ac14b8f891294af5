package catalog

// Collection keys as they appear in the catalog document.
const (
	KeyVersion             = "version"
	KeyWithAlternatives    = "operations_with_alternatives"
	KeyWithoutAlternatives = "operations_without_alternatives"
)

// Catalog is the decoded operations catalog.
type Catalog struct {
	Version             string      `json:"version"`
	WithAlternatives    []Operation `json:"operations_with_alternatives"`
	WithoutAlternatives []Operation `json:"operations_without_alternatives"`
}

// Operation is one cataloged schema change.
type Operation struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Steps    []Step `json:"steps,omitempty"`
}

// Step is a single action of an operation's procedure.
type Step struct {
	Description         string `json:"description"`
	CanRunInTransaction bool   `json:"can_run_in_transaction"`
}

// Total returns the number of operations across both collections.
func (c Catalog) Total() int {
	return len(c.WithAlternatives) + len(c.WithoutAlternatives)
}
