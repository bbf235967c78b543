package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/internal/cli"
)

func helpOutput(t *testing.T, args ...string) string {
	t.Helper()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestHelp_Root(t *testing.T) {
	t.Parallel()

	out := helpOutput(t, "--help")
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "render")
	assert.Contains(t, out, "crosscheck")
	assert.Contains(t, out, "Exit Codes:")
	assert.Contains(t, out, "65   invalid configuration")
	assert.NotContains(t, out, "Flavors:")
}

func TestHelp_RenderListsFlavors(t *testing.T) {
	t.Parallel()

	out := helpOutput(t, "render", "--help")
	assert.Contains(t, out, "Flavors:")
	assert.Contains(t, out, "gfm")
	assert.Contains(t, out, "--allow-dangerous-html")
	assert.Contains(t, out, "Global Flags:")
	assert.NotContains(t, out, "Exit Codes:")
}

func TestHelp_VersionHasNoFlavors(t *testing.T) {
	t.Parallel()

	out := helpOutput(t, "version", "--help")
	assert.NotContains(t, out, "Flavors:")
}

func TestHelpStyles_NoColor(t *testing.T) {
	t.Parallel()

	styles := cli.NewHelpStyles(false)
	assert.Equal(t, "--flag", styles.Flag.Render("--flag"))
	assert.Equal(t, "Usage:", styles.Heading.Render("Usage:"))
}
