package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bgricker/opreport/internal/config"
)

func gatherFlags(cmd *cobra.Command) (config.FlagValues, error) {
	flags := cmd.Flags()
	var values config.FlagValues

	stringFlags := []struct {
		name string
		dst  *config.StringFlag
	}{
		{"catalog", &values.Catalog},
		{"template", &values.Template},
		{"output", &values.Output},
		{"format", &values.Format},
		{"preview-style", &values.PreviewStyle},
		{"metrics-file", &values.MetricsFile},
		{"expect-version", &values.ExpectVersion},
	}
	for _, f := range stringFlags {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetString(f.name)
		if err != nil {
			return values, fmt.Errorf("parse --%s: %w", f.name, err)
		}
		*f.dst = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("workers") {
		v, err := flags.GetInt("workers")
		if err != nil {
			return values, fmt.Errorf("parse --workers: %w", err)
		}
		values.Workers = config.IntFlag{Value: v, Set: true}
	}

	if flags.Changed("verbose") {
		v, err := flags.GetBool("verbose")
		if err != nil {
			return values, fmt.Errorf("parse --verbose: %w", err)
		}
		values.Verbose = config.BoolFlag{Value: v, Set: true}
	}

	return values, nil
}
