package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdparse/internal/logging"
	"github.com/yaklabco/gomdparse/internal/ui/pretty"
	"github.com/yaklabco/gomdparse/pkg/config"
	"github.com/yaklabco/gomdparse/pkg/crosscheck"
	"github.com/yaklabco/gomdparse/pkg/fsutil"
	"github.com/yaklabco/gomdparse/pkg/runner"
)

type crosscheckFlags struct {
	flavor string
	ignore []string
	tree   bool
}

func newCrosscheckCommand() *cobra.Command {
	var cfg config.Config
	flags := &crosscheckFlags{}

	cmd := &cobra.Command{
		Use:   "crosscheck [paths...]",
		Short: "Compare rendered HTML with goldmark",
		Long: `Render each Markdown file with both gomdparse and goldmark and report where
they disagree. HTML is compared after normalizing whitespace and attribute
order, together with per-element counts. With --tree the syntax trees are
compared too.

Only the commonmark and gfm flavors are supported.

Examples:
  gomdparse crosscheck README.md
  gomdparse crosscheck --flavor gfm docs/
  gomdparse crosscheck --tree testdata/`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrosscheck(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.tree, "tree", false, "also compare syntax trees")

	return cmd
}

func runCrosscheck(cmd *cobra.Command, args []string, cli *config.Config, flags *crosscheckFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	flavorFlag(cmd, cli, flags.flavor)
	cli.Ignore = flags.ignore

	cfg, workDir, err := loadConfig(ctx, cmd, cli)
	if err != nil {
		return err
	}

	opts, err := crosscheck.OptionsForFlavor(cfg.Flavor)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	// Construct overrides from config apply to our side only.
	if opts.Parse, err = cfg.ParseOptions(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	files, err := runner.Discover(ctx, runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: cfg.Ignore,
	})
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))

	differing := 0
	for _, path := range files {
		source, _, err := fsutil.ReadFile(ctx, path, cfg.MaxFileSize)
		if err != nil {
			return err
		}

		report, err := crosscheck.Check(source, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		display := relativePath(path, workDir)
		if sameOutput(report, flags.tree) {
			fmt.Fprintf(out, "%s  %s\n", styles.Success.Render("same"), styles.FilePath.Render(display))
			continue
		}

		differing++
		logger.Debug("outputs differ", logging.FieldPath, path, logging.FieldDiffCount, len(report.Mismatches()))
		fmt.Fprintf(out, "%s  %s\n", styles.Failure.Render("diff"), styles.FilePath.Render(display))
		writeCrosscheckReport(out, styles, report, flags.tree)
	}

	fmt.Fprintf(out, "\nChecked %d file%s, %d differ%s\n",
		len(files), plural(len(files)), differing, verbSuffix(differing))
	if differing > 0 {
		return ErrCheckFailed
	}
	return nil
}

// sameOutput reports whether report shows agreement. Trees only count with tree set.
func sameOutput(report *crosscheck.Report, tree bool) bool {
	if tree {
		return report.Equal()
	}
	return report.HTMLDiff == "" && len(report.Mismatches()) == 0
}

func writeCrosscheckReport(w io.Writer, styles *pretty.Styles, report *crosscheck.Report, tree bool) {
	for _, c := range report.Mismatches() {
		fmt.Fprintf(w, "    %s: gomdparse %d, goldmark %d\n", styles.Bold.Render(c.Selector), c.Ours, c.Theirs)
	}
	if report.HTMLDiff != "" {
		fmt.Fprintln(w, styles.Dim.Render("    html (-gomdparse +goldmark):"))
		_, _ = io.WriteString(w, styleDiff(styles, report.HTMLDiff))
	}
	if tree && report.TreeDiff != "" {
		fmt.Fprintln(w, styles.Dim.Render("    tree (-gomdparse +goldmark):"))
		_, _ = io.WriteString(w, styleDiff(styles, report.TreeDiff))
	}
}

// styleDiff colors the added and removed lines of a cmp diff.
func styleDiff(styles *pretty.Styles, diff string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case strings.HasPrefix(trimmed, "-"):
			line = styles.DiffRemove.Render(line)
		case strings.HasPrefix(trimmed, "+"):
			line = styles.DiffAdd.Render(line)
		}
		b.WriteString("    ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func relativePath(path, workDir string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func verbSuffix(n int) string {
	if n == 1 {
		return "s"
	}
	return ""
}
