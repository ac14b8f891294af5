package output

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/bgricker/opreport/internal/report"
)

// ErrTemplateUnreadable is returned when the report template cannot be read.
var ErrTemplateUnreadable = errors.New("template unreadable")

// DateLayout formats the generation date placeholder.
const DateLayout = "2006-01-02"

// Placeholder names recognised in report templates.
const (
	PlaceholderVersion        = "VERSION"
	PlaceholderGeneratedDate  = "GENERATED_DATE"
	PlaceholderTotal          = "TOTAL_OPERATIONS"
	PlaceholderWithCount      = "WITH_ALTERNATIVES_COUNT"
	PlaceholderWithoutCount   = "WITHOUT_ALTERNATIVES_COUNT"
	PlaceholderWithPercent    = "WITH_ALTERNATIVES_PERCENT"
	PlaceholderWithoutPercent = "WITHOUT_ALTERNATIVES_PERCENT"
	PlaceholderTable          = "OPERATIONS_TABLE"
)

var knownPlaceholders = map[string]struct{}{
	PlaceholderVersion:        {},
	PlaceholderGeneratedDate:  {},
	PlaceholderTotal:          {},
	PlaceholderWithCount:      {},
	PlaceholderWithoutCount:   {},
	PlaceholderWithPercent:    {},
	PlaceholderWithoutPercent: {},
	PlaceholderTable:          {},
}

var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)

// Values maps placeholder names to their substitutions.
type Values map[string]string

// DocumentValues builds the full placeholder set for a report document.
func DocumentValues(version string, generated time.Time, summary report.Summary, rows []report.Row) Values {
	return Values{
		PlaceholderVersion:        version,
		PlaceholderGeneratedDate:  generated.Format(DateLayout),
		PlaceholderTotal:          strconv.Itoa(summary.Total),
		PlaceholderWithCount:      strconv.Itoa(summary.With),
		PlaceholderWithoutCount:   strconv.Itoa(summary.Without),
		PlaceholderWithPercent:    strconv.Itoa(summary.WithPercent),
		PlaceholderWithoutPercent: strconv.Itoa(summary.WithoutPercent),
		PlaceholderTable:          report.Table(rows),
	}
}

// Template is a report document with ${NAME} placeholders.
type Template struct {
	Path string
	text string
}

// LoadTemplate reads the template at path. displayPath is used in diagnostics.
func LoadTemplate(path, displayPath string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %w", ErrTemplateUnreadable, displayPath, err)
	}
	return NewTemplate(displayPath, string(data)), nil
}

// NewTemplate wraps in-memory template text.
func NewTemplate(path, text string) *Template {
	return &Template{Path: path, text: text}
}

// Render substitutes recognised placeholders in a single pass. Unknown
// placeholders stay as written, and substituted text is never rescanned.
func (t *Template) Render(values Values) string {
	return placeholderPattern.ReplaceAllStringFunc(t.text, func(token string) string {
		name := token[2 : len(token)-1]
		if _, ok := knownPlaceholders[name]; !ok {
			return token
		}
		if v, ok := values[name]; ok {
			return v
		}
		return token
	})
}

// Unknown lists placeholder names in the template that Render leaves untouched.
func (t *Template) Unknown() []string {
	seen := make(map[string]struct{})
	for _, m := range placeholderPattern.FindAllStringSubmatch(t.text, -1) {
		if _, ok := knownPlaceholders[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
