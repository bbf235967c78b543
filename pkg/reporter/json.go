package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/yaklabco/gomdparse/pkg/message"
	"github.com/yaklabco/gomdparse/pkg/runner"
)

// jsonVersion is the version of the JSON output layout.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path       string       `json:"path"`
	Output     string       `json:"output,omitempty"`
	Bytes      int          `json:"bytes"`
	HTMLBytes  int          `json:"htmlBytes"`
	Events     int          `json:"events"`
	CacheHit   bool         `json:"cacheHit"`
	Written    bool         `json:"written"`
	DurationMS float64      `json:"durationMs"`
	HTML       *string      `json:"html,omitempty"`
	Error      string       `json:"error,omitempty"`
	Message    *JSONMessage `json:"message,omitempty"`
}

// JSONMessage is a parse message of a failed file.
type JSONMessage struct {
	Reason string `json:"reason"`
	RuleID string `json:"ruleId"`
	Source string `json:"source"`
	Place  string `json:"place,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int     `json:"filesDiscovered"`
	FilesRendered   int     `json:"filesRendered"`
	FilesFailed     int     `json:"filesFailed"`
	FilesWritten    int     `json:"filesWritten"`
	FilesUnchanged  int     `json:"filesUnchanged"`
	CacheHits       int     `json:"cacheHits"`
	BytesIn         int     `json:"bytesIn"`
	BytesOut        int     `json:"bytesOut"`
	DurationMS      float64 `json:"durationMs"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesFailed, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:       displayPath(file.Path, r.opts.WorkingDir),
			Bytes:      file.Bytes,
			HTMLBytes:  len(file.HTML),
			Events:     file.Events,
			CacheHit:   file.CacheHit,
			Written:    file.Written,
			DurationMS: milliseconds(file.Duration),
		}
		if file.Output != "" {
			fileResult.Output = displayPath(file.Output, r.opts.WorkingDir)
		}
		if r.opts.IncludeHTML && file.Error == nil {
			html := string(file.HTML)
			fileResult.HTML = &html
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			fileResult.Message = jsonMessage(file.Error)
		}
		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesRendered:   stats.FilesRendered,
		FilesFailed:     stats.FilesFailed,
		FilesWritten:    stats.FilesWritten,
		FilesUnchanged:  stats.FilesUnchanged,
		CacheHits:       stats.CacheHits,
		BytesIn:         stats.BytesIn,
		BytesOut:        stats.BytesOut,
		DurationMS:      milliseconds(stats.Duration),
	}

	return output
}

func jsonMessage(err error) *JSONMessage {
	var msg *message.Message
	if !errors.As(err, &msg) {
		return nil
	}
	out := &JSONMessage{Reason: msg.Reason, RuleID: msg.RuleID, Source: msg.Source}
	if msg.Place != nil {
		out.Place = msg.Place.String()
		out.Line = msg.Place.Start.Line
		out.Column = msg.Place.Start.Column
	}
	return out
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
