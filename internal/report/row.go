package report

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bgricker/opreport/internal/catalog"
)

// StepSeparator joins step descriptions into one table cell.
const StepSeparator = "; "

// Row is the rendered form of one operation with alternatives.
type Row struct {
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	JoinedSteps string            `json:"steps"`
	Status      TransactionStatus `json:"transaction_status"`
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

// JoinSteps concatenates step descriptions in their original order.
func JoinSteps(steps []catalog.Step) string {
	parts := make([]string, 0, len(steps))
	for _, step := range steps {
		parts = append(parts, step.Description)
	}
	return strings.Join(parts, StepSeparator)
}

// FormatRow renders op with an already reduced status.
func FormatRow(op catalog.Operation, status TransactionStatus) Row {
	return Row{
		Name:        op.Name,
		Category:    op.Category,
		JoinedSteps: JoinSteps(op.Steps),
		Status:      status,
	}
}

// Markdown renders the row as one pipe-delimited table line.
func (r Row) Markdown() string {
	return fmt.Sprintf("| %s | %s | %s | %s |",
		cellEscaper.Replace(r.Name),
		cellEscaper.Replace(r.Category),
		cellEscaper.Replace(r.JoinedSteps),
		r.Status.Label(),
	)
}

// Table concatenates rows into a table body without a trailing newline.
func Table(rows []Row) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, row.Markdown())
	}
	return strings.Join(lines, "\n")
}

// BuildRows reduces and formats every operation. Up to workers operations are
// processed at once; rows keep the input order regardless.
func BuildRows(ctx context.Context, ops []catalog.Operation, workers int) ([]Row, error) {
	if workers < 1 {
		workers = 1
	}
	rows := make([]Row, len(ops))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for idx, op := range ops {
		idx, op := idx, op
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			status, err := Reduce(op.Steps)
			if err != nil {
				return fmt.Errorf("operation %q (#%d): %w", op.Name, idx, err)
			}
			rows[idx] = FormatRow(op, status)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}
