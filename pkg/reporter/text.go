package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/oakwood/internal/ui/pretty"
	"github.com/yaklabco/oakwood/pkg/runner"
)

// TextReporter formats results as styled terminal output grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	total := 0

	for _, outcome := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report: %w", err)
		}

		path := r.opts.displayPath(outcome.Path)

		if outcome.Error != nil {
			fmt.Fprintf(r.bw, "%s\n  %s  %s\n\n", r.styles.FormatFileHeader(path, "", 0),
				r.styles.Failure.Render("failed"), outcome.Error)
			continue
		}

		diags := outcome.Diagnostics()
		if len(diags) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, outcome.Language, len(diags)))
		lines := outcome.Buffer.Lines()
		for _, d := range diags {
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(path, d, lines, r.opts.ShowContext))
		}
		fmt.Fprintln(r.bw)

		total += len(diags)
	}

	if r.opts.DetailedSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	} else {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}
