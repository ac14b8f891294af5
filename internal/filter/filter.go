package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bgricker/opreport/internal/catalog"
)

// Pattern represents a compiled filter condition supporting substring and regex matching.
type Pattern struct {
	raw   string
	regex *regexp.Regexp
	lower string
}

// Compile transforms raw pattern strings into Pattern values. A pattern
// wrapped in slashes is a regular expression; anything else is a
// case-insensitive substring.
func Compile(patterns []string) ([]Pattern, error) {
	result := make([]Pattern, 0, len(patterns))
	for _, raw := range patterns {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/") && len(raw) >= 2 {
			expr := raw[1 : len(raw)-1]
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("compile regexp %q: %w", raw, err)
			}
			result = append(result, Pattern{raw: raw, regex: re})
			continue
		}
		result = append(result, Pattern{raw: raw, lower: strings.ToLower(raw)})
	}
	return result, nil
}

// String returns the pattern as written.
func (p Pattern) String() string {
	return p.raw
}

// Match reports whether the pattern matches the supplied string.
func (p Pattern) Match(s string) bool {
	if s == "" {
		return false
	}
	if p.regex != nil {
		return p.regex.MatchString(s)
	}
	return strings.Contains(strings.ToLower(s), p.lower)
}

// Operations keeps operations whose category matches any category pattern and
// whose name matches any name pattern. An empty pattern list matches
// everything. Catalog order is preserved.
func Operations(ops []catalog.Operation, categoryPatterns, namePatterns []Pattern) []catalog.Operation {
	if len(ops) == 0 {
		return nil
	}

	result := make([]catalog.Operation, 0, len(ops))
	for _, op := range ops {
		if !matchesAny(op.Category, categoryPatterns) {
			continue
		}
		if !matchesAny(op.Name, namePatterns) {
			continue
		}
		result = append(result, op)
	}
	return result
}

func matchesAny(s string, patterns []Pattern) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if pattern.Match(s) {
			return true
		}
	}
	return false
}
