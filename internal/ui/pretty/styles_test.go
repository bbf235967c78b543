package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	// With color disabled, styles should return unmodified text
	text := "test"
	assert.Equal(t, text, styles.Bold.Render(text), "No-color Bold should not add formatting")
	assert.Equal(t, text, styles.Error.Render(text), "No-color Error should not add formatting")
	assert.Equal(t, text, styles.EventEnter.Render(text))
}

func TestStyles_AllFieldsInitialized(t *testing.T) {
	styles := pretty.NewStyles(true)

	for name, rendered := range map[string]string{
		"Error":      styles.Error.Render("x"),
		"FilePath":   styles.FilePath.Render("x"),
		"Caret":      styles.Caret.Render("x"),
		"EventEnter": styles.EventEnter.Render("x"),
		"EventExit":  styles.EventExit.Render("x"),
		"EventText":  styles.EventText.Render("x"),
		"DiffAdd":    styles.DiffAdd.Render("x"),
		"Success":    styles.Success.Render("x"),
		"TableRow":   styles.TableCachedRow.Render("x"),
		"Dim":        styles.Dim.Render("x"),
	} {
		assert.Contains(t, rendered, "x", name)
	}
}

func TestIsColorEnabled_Modes(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf), "always mode should return true")
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout), "never mode should return false")
}

func TestIsColorEnabled_AutoMode_NonTTY(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("auto", &buf))
	assert.False(t, pretty.IsColorEnabled("", &buf), "empty mode behaves like auto")
	assert.False(t, pretty.IsColorEnabled("unknown", &buf), "unknown mode behaves like auto")
}

func TestIsColorEnabled_AutoMode_TTY(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = tty.Close()
		_ = ptmx.Close()
	})

	t.Setenv("NO_COLOR", "")
	assert.True(t, pretty.IsColorEnabled("auto", tty))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled("auto", tty), "NO_COLOR wins over a TTY")
}

func TestTerminalWidth(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, pretty.DefaultTermWidth, pretty.TerminalWidth(&buf))

	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = tty.Close()
		_ = ptmx.Close()
	})

	require.NoError(t, pty.Setsize(ptmx, &pty.Winsize{Rows: 40, Cols: 132}))
	assert.Equal(t, 132, pretty.TerminalWidth(tty))
}
