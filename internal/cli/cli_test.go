package cli_test

import (
	"bytes"
	"testing"

	"github.com/yaklabco/gomdparse/internal/cli"
)

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}

	cmd := cli.NewRootCommand(info)

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "gomdparse" {
		t.Errorf("expected Use to be 'gomdparse', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	expectedSubcommands := []string{"render", "events", "ast", "crosscheck", "init", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestRenderCommandFlags(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)
	renderCmd, _, err := cmd.Find([]string{"render"})
	if err != nil {
		t.Fatalf("render command not found: %v", err)
	}

	expectedFlags := []string{
		"out",
		"jobs",
		"cache",
		"cache-path",
		"detect-lang",
		"flavor",
		"allow-dangerous-html",
		"allow-dangerous-protocol",
		"format",
		"ignore",
		"write",
		"compact",
	}

	for _, flagName := range expectedFlags {
		flag := renderCmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected flag %q to exist on render command", flagName)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	expectedFlags := []string{"debug", "config", "color"}

	for _, flagName := range expectedFlags {
		flag := cmd.PersistentFlags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	}

	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	for _, want := range []string{"gomdparse", "1.2.3", "abc123", "2024-01-01"} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Errorf("expected version output to contain %q, got %q", want, out.String())
		}
	}
}

func TestRenderCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)
	renderCmd, _, err := cmd.Find([]string{"render"})
	if err != nil {
		t.Fatalf("render command not found: %v", err)
	}

	err = renderCmd.Args(renderCmd, []string{"file1.md", "file2.md", "docs/"})
	if err != nil {
		t.Errorf("render command should accept arbitrary args, got error: %v", err)
	}
}

func TestEventsCommandTakesOneInput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	eventsCmd, _, err := cmd.Find([]string{"events"})
	if err != nil {
		t.Fatalf("events command not found: %v", err)
	}

	if err := eventsCmd.Args(eventsCmd, []string{"a.md"}); err != nil {
		t.Errorf("events should accept one input, got error: %v", err)
	}
	if err := eventsCmd.Args(eventsCmd, []string{"a.md", "b.md"}); err == nil {
		t.Error("events should reject two inputs")
	}
}
