package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesFile(t *testing.T) {
	root := t.TempDir()
	data := []byte(`catalog: db/operations.yml
output: doc/OPERATIONS.md
workers: 8
expect_version: "1.2"
unknown_key: ignored
`)
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), data, 0o644))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "db/operations.yml", cfg.Catalog)
	assert.Equal(t, "doc/OPERATIONS.md", cfg.Output)
	assert.Equal(t, "", cfg.Template)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "1.2", cfg.ExpectVersion)
	assert.Equal(t, FormatPretty, cfg.Format)
}

func TestLoadInvalidYAML(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("workers: [\n"), 0o644))

	_, err := Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestApplyFlagsOverridesFile(t *testing.T) {
	cfg := Default()
	cfg.Catalog = "from-file.yml"

	ApplyFlags(&cfg, FlagValues{
		Catalog: StringFlag{Value: "from-flag.yml", Set: true},
		Format:  StringFlag{Value: FormatJSON, Set: true},
		Workers: IntFlag{Value: 2, Set: true},
		Verbose: BoolFlag{Value: true, Set: true},
	})

	assert.Equal(t, "from-flag.yml", cfg.Catalog)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "auto", cfg.PreviewStyle)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	cfg := Default()
	cfg.Format = "xml"
	assert.ErrorContains(t, cfg.Validate(), `unsupported format "xml"`)

	cfg = Default()
	cfg.PreviewStyle = "sepia"
	assert.ErrorContains(t, cfg.Validate(), `unsupported preview style "sepia"`)

	cfg = Default()
	cfg.PreviewStyle = "NoTTY"
	assert.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.Workers = 0
	assert.ErrorContains(t, cfg.Validate(), "workers must be at least 1")
}
