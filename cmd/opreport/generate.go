package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bgricker/opreport/internal/discovery"
	"github.com/bgricker/opreport/internal/output"
	"github.com/bgricker/opreport/internal/runner"
)

func newGenerateCmd(state *cliState) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the catalog into the report document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, in, err := state.run(cmd, dryRun)
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), res.Warnings)

			if dryRun {
				_, err := fmt.Fprint(cmd.OutOrStdout(), res.Document)
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Generated %s: %s\n", in.Output, output.SummaryLine(res.Summary))
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the document to stdout instead of writing it")
	return cmd
}

// run executes the pipeline with the resolved configuration. Metrics are
// only written alongside a real report.
func (s *cliState) run(cmd *cobra.Command, dryRun bool) (runner.Result, discovery.Inputs, error) {
	in, err := discovery.Resolve(s.root, s.cfg.Catalog, s.cfg.Template, s.cfg.Output)
	if err != nil {
		return runner.Result{}, in, failure(err)
	}

	opts := runner.Options{
		Inputs:        in,
		Now:           s.now,
		Workers:       s.cfg.Workers,
		DryRun:        dryRun,
		ExpectVersion: s.cfg.ExpectVersion,
		Logger:        s.logger,
	}
	if !dryRun {
		opts.MetricsFile = s.cfg.MetricsFile
	}

	res, err := runner.New(opts).Run(cmd.Context())
	if err != nil {
		return res, in, failure(err)
	}
	return res, in, nil
}
