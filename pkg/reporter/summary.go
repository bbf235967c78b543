package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomdparse/internal/ui/pretty"
	"github.com/yaklabco/gomdparse/pkg/runner"
)

// SummaryReporter writes only aggregate statistics and failures.
type SummaryReporter struct {
	styles *pretty.Styles
	opts   Options
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		opts:   opts,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatFileError(displayPath(file.Path, r.opts.WorkingDir), file.Error, file.ErrorLine))
		}
	}
	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	return failures(result), nil
}
