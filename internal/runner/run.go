package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bgricker/opreport/internal/catalog"
	"github.com/bgricker/opreport/internal/discovery"
	"github.com/bgricker/opreport/internal/metrics"
	"github.com/bgricker/opreport/internal/output"
	"github.com/bgricker/opreport/internal/report"
	"github.com/bgricker/opreport/internal/version"
)

// Component names prefixed to pipeline errors.
const (
	StageCatalog   = "catalog loader"
	StageAggregate = "aggregate"
	StageRows      = "row formatter"
	StageTemplate  = "template renderer"
	StageOutput    = "output"
	StageMetrics   = "metrics"
)

// OutputPerm is the file mode of a written report.
const OutputPerm = 0o644

// Options configure one pipeline run. All file locations are explicit.
type Options struct {
	Inputs        discovery.Inputs
	Now           func() time.Time
	Workers       int
	DryRun        bool
	ExpectVersion string
	MetricsFile   string
	Logger        *zap.Logger
}

// Result describes a completed run.
type Result struct {
	Version  string
	Summary  report.Summary
	Rows     []report.Row
	Document string
	Written  bool // false on dry runs
	Warnings []string
}

// Runner renders the operations report.
type Runner struct {
	opts Options
}

// New creates a runner with the supplied options.
func New(opts Options) *Runner {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Runner{opts: opts}
}

// Run loads the catalog, computes the report and, unless DryRun is set,
// replaces the output file. Nothing is written when any earlier stage fails.
// A returned error always means the output file was left untouched.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	in := r.opts.Inputs
	log := r.opts.Logger.With(zap.String("catalog", in.Catalog), zap.String("template", in.Template))
	start := time.Now()

	cat, err := catalog.Load(in.Abs(in.Catalog), in.Catalog)
	if err != nil {
		return Result{}, stageError(StageCatalog, err)
	}
	log.Debug("catalog loaded",
		zap.String("version", cat.Version),
		zap.Int("with_alternatives", len(cat.WithAlternatives)),
		zap.Int("without_alternatives", len(cat.WithoutAlternatives)))

	var warnings []string
	if msg := version.CheckCatalog(r.opts.ExpectVersion, cat.Version); msg != "" {
		warnings = append(warnings, msg)
	}

	summary, err := report.Aggregate(cat)
	if err != nil {
		return Result{}, stageError(StageAggregate, fmt.Errorf("catalog %q: %w", in.Catalog, err))
	}

	rows, err := report.BuildRows(ctx, cat.WithAlternatives, r.opts.Workers)
	if err != nil {
		return Result{}, stageError(StageRows, err)
	}

	tmpl, err := output.LoadTemplate(in.Abs(in.Template), in.Template)
	if err != nil {
		return Result{}, stageError(StageTemplate, err)
	}
	for _, name := range tmpl.Unknown() {
		warnings = append(warnings, fmt.Sprintf("template %q: unknown placeholder ${%s} left as is", in.Template, name))
	}
	doc := tmpl.Render(output.DocumentValues(cat.Version, r.opts.Now(), summary, rows))

	res := Result{
		Version:  cat.Version,
		Summary:  summary,
		Rows:     rows,
		Document: doc,
		Warnings: warnings,
	}
	for _, w := range warnings {
		log.Debug("warning", zap.String("message", w))
	}

	if r.opts.DryRun {
		log.Debug("dry run, output not written", zap.String("output", in.Output))
		return res, nil
	}

	if err := output.WriteFileAtomic(in.Abs(in.Output), []byte(doc), OutputPerm); err != nil {
		return Result{}, stageError(StageOutput, err)
	}
	res.Written = true

	// The report is already in place; a metrics failure only warns.
	if r.opts.MetricsFile != "" {
		if err := metrics.WriteTextfile(in.Abs(r.opts.MetricsFile), cat.Version, summary, rows); err != nil {
			msg := stageError(StageMetrics, err).Error()
			res.Warnings = append(res.Warnings, msg)
			log.Debug("warning", zap.String("message", msg))
		}
	}

	log.Info("report generated",
		zap.String("output", in.Output),
		zap.Int("total_operations", summary.Total),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

func stageError(stage string, err error) error {
	return fmt.Errorf("%s: %w", stage, err)
}
