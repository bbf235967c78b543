package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomdparse/internal/ui/pretty"
	"github.com/yaklabco/gomdparse/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. Failed files get the error with a source
// excerpt; rendered files one line each.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to render."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error, file.ErrorLine))
			continue
		}
		fmt.Fprintln(r.bw, "  "+r.styles.FormatFileHeader(path, r.detail(file)))
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return failures(result), nil
}

func (r *TextReporter) detail(file runner.FileOutcome) string {
	var detail string
	switch {
	case file.Output != "" && file.Written:
		detail = "-> " + displayPath(file.Output, r.opts.WorkingDir)
	case file.Output != "":
		detail = pretty.StatusUnchanged
	default:
		detail = pretty.StatusRendered
	}
	if file.CacheHit {
		detail += ", " + pretty.StatusCached
	}
	return detail
}
