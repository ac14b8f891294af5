package report

import (
	"errors"

	"github.com/bgricker/opreport/internal/catalog"
)

// ErrEmptyCatalog is returned when a catalog holds no operations at all, which
// leaves the percentage split undefined.
var ErrEmptyCatalog = errors.New("catalog contains no operations")

// Summary aggregates operation counts across both catalog collections.
type Summary struct {
	Total          int `json:"total_operations"`
	With           int `json:"with_alternatives"`
	Without        int `json:"without_alternatives"`
	WithPercent    int `json:"with_alternatives_percent"`
	WithoutPercent int `json:"without_alternatives_percent"`
}

// Aggregate computes the summary for a loaded catalog.
func Aggregate(c catalog.Catalog) (Summary, error) {
	return Count(len(c.WithAlternatives), len(c.WithoutAlternatives))
}

// Count builds a Summary from raw collection sizes. Percentages use floor
// division, so 7 of 15 is 46 and the two shares may add up to less than 100.
func Count(with, without int) (Summary, error) {
	total := with + without
	if total <= 0 {
		return Summary{}, ErrEmptyCatalog
	}
	return Summary{
		Total:          total,
		With:           with,
		Without:        without,
		WithPercent:    100 * with / total,
		WithoutPercent: 100 * without / total,
	}, nil
}
