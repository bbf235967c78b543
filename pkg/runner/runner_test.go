package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/pkg/cache"
	"github.com/yaklabco/gomdparse/pkg/config"
	"github.com/yaklabco/gomdparse/pkg/fsutil"
	"github.com/yaklabco/gomdparse/pkg/html"
	"github.com/yaklabco/gomdparse/pkg/message"
	"github.com/yaklabco/gomdparse/pkg/parser"
	"github.com/yaklabco/gomdparse/pkg/runner"
)

func baseOptions(dir string) runner.Options {
	return runner.Options{
		WorkingDir: dir,
		Jobs:       2,
		Parse:      parser.DefaultOptions(),
		HTML:       html.DefaultOptions(),
	}
}

func TestRun_InMemory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "b.md", "a.md", "c/d.md")

	result, err := runner.Run(context.Background(), baseOptions(dir))
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, []string{"a.md", "b.md", "c/d.md"},
		relative(t, dir, []string{result.Files[0].Path, result.Files[1].Path, result.Files[2].Path}))

	assert.Equal(t, "<h1>a.md</h1>\n", string(result.Files[0].HTML))
	assert.Positive(t, result.Files[0].Events)
	assert.Empty(t, result.Files[0].Output)

	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesRendered)
	assert.Zero(t, result.Stats.FilesWritten)
	assert.False(t, result.HasFailures())
}

func TestRun_WritesOutputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "docs/guide.md")

	opts := baseOptions(dir)
	opts.Write = true

	result, err := runner.Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	output := filepath.Join(dir, "docs", "guide.html")
	assert.Equal(t, output, result.Files[0].Output)
	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "<h1>docs/guide.md</h1>\n", string(got))
	assert.Equal(t, 1, result.Stats.FilesWritten)

	// The second run finds identical output.
	result, err = runner.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesUnchanged)
	assert.Zero(t, result.Stats.FilesWritten)
}

func TestRun_OutDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := t.TempDir()
	makeTree(t, dir, "docs/guide.md")

	opts := baseOptions(dir)
	opts.Write = true
	opts.OutDir = out

	_, err := runner.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "docs", "guide.html"))
	assert.NoFileExists(t, filepath.Join(dir, "docs", "guide.html"))
}

func TestRun_Cache(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "a.md", "b.md")

	c, err := cache.Open(filepath.Join(t.TempDir(), cache.DefaultFileName))
	require.NoError(t, err)
	defer c.Close()

	opts := baseOptions(dir)
	opts.Cache = c

	first, err := runner.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Zero(t, first.Stats.CacheHits)

	second, err := runner.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Stats.CacheHits)
	assert.Equal(t, first.Files[0].HTML, second.Files[0].HTML)
	assert.Zero(t, second.Files[0].Events)

	// Other options miss the cache.
	opts.HTML.AllowDangerousHTML = true
	third, err := runner.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Zero(t, third.Stats.CacheHits)
}

func TestRun_FileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "small.md")
	big := filepath.Join(dir, "big.md")
	require.NoError(t, os.WriteFile(big, make([]byte, 64), 0o644))

	opts := baseOptions(dir)
	opts.MaxFileSize = 32

	result, err := runner.Run(context.Background(), opts)
	require.NoError(t, err, "file errors do not fail the run")
	require.Len(t, result.Files, 2)

	assert.ErrorIs(t, result.Files[0].Error, fsutil.ErrFileTooLarge)
	assert.NoError(t, result.Files[1].Error)
	assert.Equal(t, 1, result.Stats.FilesFailed)
	assert.True(t, result.HasFailures())
}

func TestRun_ParseMessage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.mdx"), []byte("# Title\n\n{open"), 0o644))

	opts := baseOptions(dir)
	opts.Parse = parser.MDXOptions()

	result, err := runner.Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	var msg *message.Message
	require.ErrorAs(t, result.Files[0].Error, &msg)
	assert.Equal(t, message.RuleUnexpectedEOF, msg.RuleID)
	assert.Equal(t, "{open", result.Files[0].ErrorLine)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "a.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, baseOptions(dir))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRun_Empty(t *testing.T) {
	t.Parallel()

	result, err := runner.Run(context.Background(), baseOptions(t.TempDir()))
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Flavor = config.FlavorGFM
	cfg.Ignore = []string{"vendor/**"}
	cfg.Jobs = 3
	cfg.OutDir = "site"

	opts, err := runner.OptionsFromConfig(cfg)
	require.NoError(t, err)
	assert.True(t, opts.Parse.Constructs.GFMTaskListItem)
	assert.True(t, opts.HTML.GFMTagfilter)
	assert.Equal(t, []string{"vendor/**"}, opts.ExcludeGlobs)
	assert.Equal(t, 3, opts.Jobs)
	assert.Equal(t, "site", opts.OutDir)
	assert.Equal(t, int64(config.DefaultMaxFileSize), opts.MaxFileSize)

	cfg.Constructs["nope"] = true
	_, err = runner.OptionsFromConfig(cfg)
	require.Error(t, err)
}

func TestRenderBytes(t *testing.T) {
	t.Parallel()

	out, events, err := runner.RenderBytes([]byte("*a*"), parser.DefaultOptions(), html.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "<p><em>a</em></p>", string(out))
	assert.Positive(t, events)
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	work := filepath.FromSlash("/w")
	tests := []struct {
		name, input, outDir, want string
	}{
		{"next to input", "/w/docs/a.md", "", "/w/docs/a.html"},
		{"mirrored under out", "/w/docs/a.markdown", "/site", "/site/docs/a.html"},
		{"outside work dir", "/elsewhere/b.md", "/site", "/site/b.html"},
		{"no extension", "/w/README", "", "/w/README.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := runner.OutputPath(filepath.FromSlash(tt.input), work, filepath.FromSlash(tt.outDir))
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}
