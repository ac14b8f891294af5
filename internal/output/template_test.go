package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgricker/opreport/internal/report"
)

func TestRenderKnownAndUnknownPlaceholders(t *testing.T) {
	tmpl := NewTemplate("t.md", "Total: ${TOTAL_OPERATIONS}\nKeep: ${UNKNOWN_TOKEN}\n")
	got := tmpl.Render(Values{PlaceholderTotal: "15"})
	assert.Equal(t, "Total: 15\nKeep: ${UNKNOWN_TOKEN}\n", got)
	assert.Equal(t, []string{"UNKNOWN_TOKEN"}, tmpl.Unknown())
}

func TestRenderWithoutPlaceholdersIsIdentity(t *testing.T) {
	texts := []string{
		"",
		"plain text only\n",
		"dollar $ signs and {braces} and ${ not closed",
		"${lower_case_unknown} and ${ALSO_UNKNOWN}",
	}
	values := DocumentValues("1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), report.Summary{Total: 1, With: 1, WithPercent: 100}, nil)
	for _, text := range texts {
		assert.Equal(t, text, NewTemplate("t.md", text).Render(values))
	}
}

func TestRenderDoesNotRescanValues(t *testing.T) {
	tmpl := NewTemplate("t.md", "${VERSION} / ${TOTAL_OPERATIONS}")
	got := tmpl.Render(Values{
		PlaceholderVersion: "${TOTAL_OPERATIONS}",
		PlaceholderTotal:   "3",
	})
	assert.Equal(t, "${TOTAL_OPERATIONS} / 3", got)
}

func TestRenderIgnoresValuesOutsideClosedSet(t *testing.T) {
	tmpl := NewTemplate("t.md", "${HOSTNAME}")
	assert.Equal(t, "${HOSTNAME}", tmpl.Render(Values{"HOSTNAME": "leak"}))
}

func TestRenderMissingValueLeavesToken(t *testing.T) {
	tmpl := NewTemplate("t.md", "${VERSION}")
	assert.Equal(t, "${VERSION}", tmpl.Render(Values{}))
}

func TestDocumentValues(t *testing.T) {
	rows := []report.Row{{Name: "add_index", Category: "indexes", JoinedSteps: "Create concurrently", Status: report.AllUnsafe}}
	summary := report.Summary{Total: 15, With: 3, Without: 12, WithPercent: 20, WithoutPercent: 80}
	values := DocumentValues("1.2", time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC), summary, rows)

	assert.Equal(t, Values{
		PlaceholderVersion:        "1.2",
		PlaceholderGeneratedDate:  "2024-03-01",
		PlaceholderTotal:          "15",
		PlaceholderWithCount:      "3",
		PlaceholderWithoutCount:   "12",
		PlaceholderWithPercent:    "20",
		PlaceholderWithoutPercent: "80",
		PlaceholderTable:          "| add_index | indexes | Create concurrently | ❌ No |",
	}, values)
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.md.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("v${VERSION}"), 0o644))

	tmpl, err := LoadTemplate(path, "report.md.tmpl")
	require.NoError(t, err)
	assert.Equal(t, "report.md.tmpl", tmpl.Path)
	assert.Equal(t, "v9", tmpl.Render(Values{PlaceholderVersion: "9"}))
}

func TestLoadTemplateUnreadable(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTemplate(filepath.Join(dir, "missing.tmpl"), "missing.tmpl")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTemplateUnreadable))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), `"missing.tmpl"`)

	_, err = LoadTemplate(dir, "dir")
	assert.True(t, errors.Is(err, ErrTemplateUnreadable))
}
