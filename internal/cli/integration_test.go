package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/internal/cli"
	"github.com/yaklabco/gomdparse/pkg/reporter"
)

// execute runs the root command with a minimal config file so that project
// and user configs of the machine running the tests do not leak in.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), ".gomdparse.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("flavor: commonmark\n"), 0o644))

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIntegration_RenderStdin(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "*a*", "render")
	require.NoError(t, err)
	assert.Equal(t, "<p><em>a</em></p>", stdout)
}

func TestIntegration_RenderSingleFile(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "doc.md", "# Hello\n")

	stdout, _, err := execute(t, "", "render", file)
	require.NoError(t, err)
	assert.Contains(t, stdout, "<h1>Hello</h1>")

	// Nothing is written next to the input.
	assert.NoFileExists(t, filepath.Join(filepath.Dir(file), "doc.html"))
}

func TestIntegration_RenderFlavor(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "doc.md", "~~gone~~")

	stdout, _, err := execute(t, "", "render", file)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "<del>")

	stdout, _, err = execute(t, "", "render", "--flavor", "gfm", file)
	require.NoError(t, err)
	assert.Contains(t, stdout, "<del>gone</del>")
}

func TestIntegration_RenderDangerousHTML(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "<b>x</b>", "render")
	require.NoError(t, err)
	assert.Contains(t, stdout, "&lt;b&gt;")

	stdout, _, err = execute(t, "<b>x</b>", "render", "--allow-dangerous-html")
	require.NoError(t, err)
	assert.Contains(t, stdout, "<b>x</b>")
}

func TestIntegration_RenderDirectory(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	out := t.TempDir()
	writeFile(t, in, "a.md", "# A\n")
	writeFile(t, in, "b.markdown", "b\n")
	writeFile(t, in, "notes.txt", "skip me\n")

	stdout, _, err := execute(t, "", "render", "--out", out, in)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Rendered 2 files")

	html, err := os.ReadFile(filepath.Join(out, "a.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>A</h1>")
	assert.FileExists(t, filepath.Join(out, "b.html"))
	assert.NoFileExists(t, filepath.Join(out, "notes.html"))
}

func TestIntegration_RenderWriteNextToInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "doc.md", "text\n")

	_, _, err := execute(t, "", "render", "--write", file)
	require.NoError(t, err)

	html, err := os.ReadFile(filepath.Join(dir, "doc.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<p>text</p>")
}

func TestIntegration_RenderCacheJSON(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	out := t.TempDir()
	dbPath := filepath.Join(t.TempDir(), "render.db")
	writeFile(t, in, "a.md", "# A\n")

	args := []string{"render", "--format", "json", "--cache", "--cache-path", dbPath, "--out", out, in}

	decode := func(stdout string) reporter.JSONOutput {
		t.Helper()
		var output reporter.JSONOutput
		require.NoError(t, json.Unmarshal([]byte(stdout), &output))
		require.Len(t, output.Files, 1)
		return output
	}

	stdout, _, err := execute(t, "", args...)
	require.NoError(t, err)
	first := decode(stdout)
	assert.False(t, first.Files[0].CacheHit)
	assert.True(t, first.Files[0].Written)

	stdout, _, err = execute(t, "", args...)
	require.NoError(t, err)
	second := decode(stdout)
	assert.True(t, second.Files[0].CacheHit)
	assert.False(t, second.Files[0].Written)
	assert.Equal(t, 1, second.Summary.CacheHits)
}

func TestIntegration_RenderParseError(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "page.mdx", "# Title\n\n{open")

	stdout, stderr, err := execute(t, "", "render", "--flavor", "mdx", file)
	require.ErrorIs(t, err, cli.ErrRenderFailed)
	assert.Equal(t, cli.ExitRenderFailed, cli.ExitCodeFromError(err))
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "gomdparse:unexpected-eof")
	assert.Contains(t, stderr, "{open")
}

func TestIntegration_RenderMissingFile(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	_, _, err := execute(t, "", "render", "--write", filepath.Join(in, "missing.md"))
	require.Error(t, err)
}

func TestIntegration_UnknownFlag(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "render", "--no-such-flag")
	require.ErrorIs(t, err, cli.ErrUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
}

func TestIntegration_BadConfig(t *testing.T) {
	t.Parallel()

	cfgFile := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("flavor: nonsense\n"), 0o644))

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("a"))
	cmd.SetArgs([]string{"render", "--config", cfgFile})

	err := cmd.Execute()
	require.ErrorIs(t, err, cli.ErrConfig)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestIntegration_Events(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "*a*", "events")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "enter"), "first line %q", lines[0])
	assert.Contains(t, stdout, "Emphasis")
	assert.Contains(t, stdout, `"a"`)
}

func TestIntegration_EventsJSON(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "a", "events", "--format", "json")
	require.NoError(t, err)

	var events []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &events))
	require.NotEmpty(t, events)

	assert.Equal(t, "enter", events[0]["kind"])
	assert.Equal(t, "exit", events[len(events)-1]["kind"])
	assert.Equal(t, events[0]["token"], events[len(events)-1]["token"])

	var texts []any
	for _, ev := range events {
		if text, ok := ev["text"]; ok {
			texts = append(texts, text)
		}
	}
	assert.Contains(t, texts, "a")
}

func TestIntegration_EventsCheck(t *testing.T) {
	t.Parallel()

	_, stderr, err := execute(t, "- a\n\n  > b\n", "events", "--check")
	require.NoError(t, err)
	assert.Contains(t, stderr, "balanced and repeatable")
}

func TestIntegration_EventsBadFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "a", "events", "--format", "xml")
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestIntegration_AST(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "# a", "ast")
	require.NoError(t, err)

	want := "root (1:1-1:4)\n" +
		"  heading depth=1 (1:1-1:4)\n" +
		"    text \"a\" (1:3-1:4)\n"
	assert.Equal(t, want, stdout)
}

func TestIntegration_Crosscheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.md", "# Hello\n\nSome *text* and a [link](/x).\n\n- one\n- two\n")

	stdout, _, err := execute(t, "", "crosscheck", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "same")
	assert.Contains(t, stdout, "Checked 1 file, 0 differ")
}

func TestIntegration_CrosscheckMDX(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "crosscheck", "--flavor", "mdx", t.TempDir())
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "config.yml")

	_, _, err := execute(t, "", "init", "--flavor", "gfm", "--output", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "flavor: gfm")

	_, _, err = execute(t, "", "init", "--output", output)
	require.ErrorIs(t, err, cli.ErrUsage)

	_, _, err = execute(t, "", "init", "--force", "--output", output)
	require.NoError(t, err)
	content, err = os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "flavor: commonmark")
}

func TestIntegration_InitBadFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "init", "--format", "toml", "--output", filepath.Join(t.TempDir(), "x"))
	require.ErrorIs(t, err, cli.ErrUsage)
}
