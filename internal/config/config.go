package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the optional per-repository configuration file.
const FileName = ".opreport.yml"

// Config captures CLI options sourced from config files or flags.
type Config struct {
	Catalog  string `yaml:"catalog"`
	Template string `yaml:"template"`
	Output   string `yaml:"output"`

	Format       string `yaml:"format"`
	PreviewStyle string `yaml:"preview_style"`
	Workers      int    `yaml:"workers"`
	MetricsFile  string `yaml:"metrics_file"`

	// ExpectVersion pins the catalog's major.minor version; a mismatch is a warning.
	ExpectVersion string `yaml:"expect_version"`

	Verbose bool `yaml:"verbose"`
}

const (
	// FormatPretty renders human readable output.
	FormatPretty = "pretty"
	// FormatJSON renders machine readable output.
	FormatJSON = "json"

	// DefaultWorkers bounds concurrent row formatting.
	DefaultWorkers = 4
)

// PreviewStyles lists the glamour styles accepted for preview_style.
var PreviewStyles = []string{"auto", "dark", "light", "notty"}

// Default returns the baseline configuration used when no flags or config file specify values.
func Default() Config {
	return Config{
		Format:       FormatPretty,
		PreviewStyle: "auto",
		Workers:      DefaultWorkers,
	}
}

// Load reads .opreport.yml from the repository root when present. Missing files are ignored.
func Load(root string) (Config, error) {
	cfg := Default()
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	cfg = merge(cfg, fileCfg)
	return cfg, nil
}

// Validate rejects option values the commands cannot honour.
func (c Config) Validate() error {
	switch strings.ToLower(c.Format) {
	case FormatPretty, FormatJSON:
	default:
		return fmt.Errorf("unsupported format %q", c.Format)
	}
	if !slices.Contains(PreviewStyles, strings.ToLower(c.PreviewStyle)) {
		return fmt.Errorf("unsupported preview style %q (want one of %s)", c.PreviewStyle, strings.Join(PreviewStyles, ", "))
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

func merge(base, override Config) Config {
	out := base

	if override.Catalog != "" {
		out.Catalog = override.Catalog
	}
	if override.Template != "" {
		out.Template = override.Template
	}
	if override.Output != "" {
		out.Output = override.Output
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.PreviewStyle != "" {
		out.PreviewStyle = override.PreviewStyle
	}
	if override.Workers != 0 {
		out.Workers = override.Workers
	}
	if override.MetricsFile != "" {
		out.MetricsFile = override.MetricsFile
	}
	if override.ExpectVersion != "" {
		out.ExpectVersion = override.ExpectVersion
	}
	if override.Verbose {
		out.Verbose = true
	}

	return out
}

// ApplyFlags mutates cfg by applying values from CLI flags when they are present.
func ApplyFlags(cfg *Config, flags FlagValues) {
	if flags.Catalog.Set {
		cfg.Catalog = flags.Catalog.Value
	}
	if flags.Template.Set {
		cfg.Template = flags.Template.Value
	}
	if flags.Output.Set {
		cfg.Output = flags.Output.Value
	}
	if flags.Format.Set {
		cfg.Format = flags.Format.Value
	}
	if flags.PreviewStyle.Set {
		cfg.PreviewStyle = flags.PreviewStyle.Value
	}
	if flags.Workers.Set {
		cfg.Workers = flags.Workers.Value
	}
	if flags.MetricsFile.Set {
		cfg.MetricsFile = flags.MetricsFile.Value
	}
	if flags.ExpectVersion.Set {
		cfg.ExpectVersion = flags.ExpectVersion.Value
	}
	if flags.Verbose.Set {
		cfg.Verbose = flags.Verbose.Value
	}
}

// FlagValues captures CLI flag state with knowledge of whether each flag was set explicitly.
type FlagValues struct {
	Catalog       StringFlag
	Template      StringFlag
	Output        StringFlag
	Format        StringFlag
	PreviewStyle  StringFlag
	Workers       IntFlag
	MetricsFile   StringFlag
	ExpectVersion StringFlag
	Verbose       BoolFlag
}

// StringFlag represents a string flag and whether it was set.
type StringFlag struct {
	Value string
	Set   bool
}

// IntFlag represents an int flag and whether it was set.
type IntFlag struct {
	Value int
	Set   bool
}

// BoolFlag represents a bool flag and whether it was set.
type BoolFlag struct {
	Value bool
	Set   bool
}
