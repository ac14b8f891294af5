package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bgricker/opreport/internal/catalog"
	"github.com/bgricker/opreport/internal/config"
	"github.com/bgricker/opreport/internal/discovery"
	"github.com/bgricker/opreport/internal/filter"
	"github.com/bgricker/opreport/internal/output"
	"github.com/bgricker/opreport/internal/report"
	"github.com/bgricker/opreport/internal/runner"
	"github.com/bgricker/opreport/internal/version"
)

func newListCmd(state *cliState) *cobra.Command {
	var (
		categories []string
		operations []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List operations with alternatives and their transaction safety",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categoryPatterns, err := filter.Compile(categories)
			if err != nil {
				return usage(fmt.Errorf("--category: %w", err))
			}
			namePatterns, err := filter.Compile(operations)
			if err != nil {
				return usage(fmt.Errorf("--operation: %w", err))
			}

			path, err := discovery.Catalog(state.root, state.cfg.Catalog)
			if err != nil {
				return failure(err)
			}
			cat, err := catalog.Load(discovery.Inputs{Root: state.root}.Abs(path), path)
			if err != nil {
				return failure(fmt.Errorf("%s: %w", runner.StageCatalog, err))
			}
			summary, err := report.Aggregate(cat)
			if err != nil {
				return failure(fmt.Errorf("%s: catalog %q: %w", runner.StageAggregate, path, err))
			}

			selected := filter.Operations(cat.WithAlternatives, categoryPatterns, namePatterns)
			rows, err := report.BuildRows(cmd.Context(), selected, state.cfg.Workers)
			if err != nil {
				return failure(fmt.Errorf("%s: %w", runner.StageRows, err))
			}

			var warnings []string
			if msg := version.CheckCatalog(state.cfg.ExpectVersion, cat.Version); msg != "" {
				warnings = append(warnings, msg)
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(state.cfg.Format) {
			case config.FormatJSON:
				return output.NewJSON(out).Render(output.Report{
					Version:    cat.Version,
					Summary:    summary,
					Operations: rows,
					Warnings:   warnings,
				})
			default:
				printWarnings(cmd.ErrOrStderr(), warnings)
				if len(rows) == 0 {
					_, err := fmt.Fprintln(out, "No matching operations")
					return err
				}
				return output.NewPretty(out).RenderList(cat.Version, summary, rows)
			}
		},
	}

	cmd.Flags().StringArrayVar(&categories, "category", nil, "only list categories matching this substring or /regexp/ (repeatable)")
	cmd.Flags().StringArrayVar(&operations, "operation", nil, "only list operation names matching this substring or /regexp/ (repeatable)")
	return cmd
}
