package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/pkg/config"
	"github.com/yaklabco/gomdparse/pkg/event"
	"github.com/yaklabco/gomdparse/pkg/message"
	"github.com/yaklabco/gomdparse/pkg/reporter"
	"github.com/yaklabco/gomdparse/pkg/runner"
)

const workDir = "/work"

func createTestResult() *runner.Result {
	msg := message.New(message.PointPlace(event.Point{Line: 2, Column: 3, Offset: 5}),
		"Unexpected end of file in expression", message.RuleUnexpectedEOF)

	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:     filepath.Join(workDir, "a.md"),
				HTML:     []byte("<h1>a</h1>\n"),
				Bytes:    4,
				Events:   6,
				Duration: 2 * time.Millisecond,
			},
			{
				Path:     filepath.Join(workDir, "docs", "b.md"),
				Output:   filepath.Join(workDir, "docs", "b.html"),
				HTML:     []byte("<p>b</p>\n"),
				Bytes:    2,
				CacheHit: true,
				Written:  true,
			},
			{
				Path:      filepath.Join(workDir, "c.mdx"),
				Error:     fmt.Errorf("%s: %w", filepath.Join(workDir, "c.mdx"), msg),
				ErrorLine: "x {y",
			},
		},
		Stats: runner.Stats{
			FilesDiscovered: 3,
			FilesRendered:   2,
			FilesFailed:     1,
			FilesWritten:    1,
			CacheHits:       1,
			BytesIn:         6,
			BytesOut:        20,
		},
	}
}

func newReporter(t *testing.T, buf *bytes.Buffer, format config.OutputFormat, mutate ...func(*reporter.Options)) reporter.Reporter {
	t.Helper()
	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.Format = format
	opts.Color = "never"
	opts.WorkingDir = workDir
	for _, m := range mutate {
		m(&opts)
	}
	rep, err := reporter.New(opts)
	require.NoError(t, err)
	return rep
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  config.OutputFormat
		wantErr bool
	}{
		{config.FormatText, false},
		{config.FormatTable, false},
		{config.FormatJSON, false},
		{config.FormatSummary, false},
		{"", false},
		{"sarif", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()
			rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: tt.format})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	assert.NotNil(t, opts.Writer)
	assert.Equal(t, config.FormatText, opts.Format)
	assert.Equal(t, "auto", opts.Color)
	assert.True(t, opts.ShowSummary)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	failed, err := newReporter(t, &buf, config.FormatText).Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	want := "  a.md (rendered)\n" +
		"  " + filepath.Join("docs", "b.md") + " (-> " + filepath.Join("docs", "b.html") + ", cached)\n" +
		"  c.mdx:2:3  error  Unexpected end of file in expression  (gomdparse:unexpected-eof)\n" +
		"        x {y\n" +
		"          ^\n" +
		"\n" +
		"Rendered 2 files (1 cached, 1 written), 1 failed\n"
	assert.Equal(t, want, buf.String())
}

func TestTextReporter_Empty(t *testing.T) {
	t.Parallel()

	for _, result := range []*runner.Result{nil, {}} {
		var buf bytes.Buffer
		failed, err := newReporter(t, &buf, config.FormatText).Report(context.Background(), result)
		require.NoError(t, err)
		assert.Zero(t, failed)
		assert.Equal(t, "No files to render.\n", buf.String())
	}
}

func TestTextReporter_PlainError(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{{Path: "/elsewhere/x.md", Error: errors.New("file too large")}},
		Stats: runner.Stats{FilesDiscovered: 1, FilesFailed: 1},
	}

	var buf bytes.Buffer
	_, err := newReporter(t, &buf, config.FormatText, func(o *reporter.Options) {
		o.ShowSummary = false
	}).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, "  /elsewhere/x.md  error  file too large\n", buf.String())
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	failed, err := newReporter(t, &buf, config.FormatTable).Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	out := buf.String()
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "a.md")
	assert.Contains(t, out, "written")
	assert.Contains(t, out, "Unexpected end")
	assert.True(t, strings.HasSuffix(out, "Rendered 2 files (1 cached, 1 written), 1 failed\n"))
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	failed, err := newReporter(t, &buf, config.FormatSummary).Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "  c.mdx:2:3  error"), out)
	assert.Contains(t, out, "Files failed:      1")
	assert.Contains(t, out, "Render failed")
	assert.NotContains(t, out, "a.md")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	failed, err := newReporter(t, &buf, config.FormatJSON, func(o *reporter.Options) {
		o.IncludeHTML = true
	}).Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0.0", output.Version)
	require.Len(t, output.Files, 3)

	first := output.Files[0]
	assert.Equal(t, "a.md", first.Path)
	assert.Equal(t, 6, first.Events)
	assert.Equal(t, 11, first.HTMLBytes)
	assert.InDelta(t, 2.0, first.DurationMS, 0.001)
	require.NotNil(t, first.HTML)
	assert.Equal(t, "<h1>a</h1>\n", *first.HTML)

	second := output.Files[1]
	assert.Equal(t, filepath.Join("docs", "b.html"), second.Output)
	assert.True(t, second.CacheHit)
	assert.True(t, second.Written)

	third := output.Files[2]
	assert.Nil(t, third.HTML)
	assert.Contains(t, third.Error, "Unexpected end of file")
	require.NotNil(t, third.Message)
	assert.Equal(t, message.RuleUnexpectedEOF, third.Message.RuleID)
	assert.Equal(t, "2:3", third.Message.Place)
	assert.Equal(t, 2, third.Message.Line)
	assert.Equal(t, 3, third.Message.Column)

	assert.Equal(t, 3, output.Summary.FilesDiscovered)
	assert.Equal(t, 1, output.Summary.FilesFailed)
	assert.Equal(t, 20, output.Summary.BytesOut)
}

func TestJSONReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	failed, err := newReporter(t, &buf, config.FormatJSON).Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, failed)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.NotNil(t, output.Files)
	assert.Empty(t, output.Files)
	assert.Contains(t, buf.String(), `"files": []`)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := newReporter(t, &buf, config.FormatJSON, func(o *reporter.Options) {
		o.Compact = true
	}).Report(context.Background(), createTestResult())
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "compact output is one line")
	assert.NotContains(t, buf.String(), `"html"`)
}
