package cli

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdparse/internal/configloader"
	"github.com/yaklabco/gomdparse/internal/logging"
	"github.com/yaklabco/gomdparse/internal/ui/pretty"
	"github.com/yaklabco/gomdparse/pkg/cache"
	"github.com/yaklabco/gomdparse/pkg/config"
	"github.com/yaklabco/gomdparse/pkg/message"
	"github.com/yaklabco/gomdparse/pkg/reporter"
	"github.com/yaklabco/gomdparse/pkg/runner"
)

type renderFlags struct {
	format      string
	flavor      string
	ignore      []string
	write       bool
	compact     bool
	includeHTML bool
}

func newRenderCommand() *cobra.Command {
	var cfg config.Config
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [paths...|-]",
		Short: "Render Markdown to HTML",
		Long:  renderLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, &cfg, flags)
		},
	}

	addRenderFlags(cmd, &cfg, flags)

	return cmd
}

const renderLongDescription = `Render Markdown files to HTML.

With no arguments or "-", standard input is rendered to standard output.
A single file is also rendered to standard output unless --write or --out
is given. Otherwise the paths (default: the current directory) are searched
for .md, .markdown and .mdx files, each is rendered to <name>.html next to
its input or under --out, and a report is printed.

Examples:
  gomdparse render README.md              # HTML on stdout
  cat doc.md | gomdparse render -         # Render stdin
  gomdparse render docs/ --out site/      # Render a tree into site/
  gomdparse render --flavor gfm docs/     # Enable GFM constructs
  gomdparse render --cache docs/          # Reuse unchanged results
  gomdparse render --format json docs/    # Report as JSON for CI`

func addRenderFlags(cmd *cobra.Command, cfg *config.Config, flags *renderFlags) {
	cmd.Flags().StringVarP(&cfg.OutDir, "out", "o", "", "directory for rendered files")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&cfg.Cache.Enabled, "cache", false, "reuse rendered HTML for unchanged inputs")
	cmd.Flags().StringVar(&cfg.Cache.Path, "cache-path", "", "cache database path (default: user cache dir)")
	cmd.Flags().BoolVar(&cfg.HTML.DetectLanguage, "detect-lang", false,
		"guess a language class for fenced code without an info string")
	cmd.Flags().BoolVar(&cfg.HTML.AllowDangerousHTML, "allow-dangerous-html", false, "pass raw HTML through")
	cmd.Flags().BoolVar(&cfg.HTML.AllowDangerousProtocol, "allow-dangerous-protocol", false,
		"keep URLs with unsafe protocols")
	cmd.Flags().BoolVar(&cfg.HTML.TaskListCheckable, "checkable", false, "render task list checkboxes enabled")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm, mdx")
	cmd.Flags().StringVar(&flags.format, "format", "text", "report format: text, table, json, summary")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write <name>.html even for a single file")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.includeHTML, "include-html", false, "include rendered HTML in JSON output")
}

func runRender(cmd *cobra.Command, args []string, cli *config.Config, flags *renderFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cli.Format = config.OutputFormat(flags.format)
	flavorFlag(cmd, cli, flags.flavor)
	cli.Ignore = flags.ignore

	cfg, workDir, err := loadConfig(ctx, cmd, cli)
	if err != nil {
		return err
	}

	runOpts, err := runner.OptionsFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	renderCache, err := openCache(cfg)
	if err != nil {
		return err
	}
	if renderCache != nil {
		defer func() {
			if closeErr := renderCache.Close(); closeErr != nil {
				logger.Warn("close cache", logging.FieldError, closeErr)
			}
		}()
		logger.Debug("using render cache", logging.FieldCache, renderCache.Path())
	}
	runOpts.Cache = renderCache

	if toStdout(args, cfg.OutDir, flags.write) {
		return renderToStdout(ctx, cmd, singleInput(args), cfg, runOpts)
	}

	runOpts.Paths = args
	runOpts.WorkingDir = workDir
	runOpts.Extensions = runner.DefaultExtensions()
	runOpts.Write = true

	logger.Debug("starting render run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("render run: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      cfg.Format,
		Color:       colorMode(cmd),
		ShowSummary: true,
		Compact:     flags.compact,
		IncludeHTML: flags.includeHTML,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if result.HasFailures() {
		return ErrRenderFailed
	}
	return nil
}

// toStdout reports whether args name one document whose HTML goes to stdout.
func toStdout(args []string, outDir string, write bool) bool {
	if outDir != "" || write {
		return false
	}
	switch len(args) {
	case 0:
		return true
	case 1:
		if args[0] == stdinArg {
			return true
		}
		info, err := os.Stat(args[0])
		return err == nil && info.Mode().IsRegular()
	default:
		return false
	}
}

// renderToStdout renders one input and writes the HTML to stdout. Parse
// messages go to stderr.
func renderToStdout(ctx context.Context, cmd *cobra.Command, name string, cfg *config.Config, opts runner.Options) error {
	source, path, err := readInput(ctx, cmd, name, cfg.MaxFileSize)
	if err != nil {
		return err
	}

	output, err := renderCached(source, opts)
	if err != nil {
		return reportParseError(cmd, path, source, err)
	}

	if _, err := cmd.OutOrStdout().Write(output); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// renderCached renders source, consulting opts.Cache when set.
func renderCached(source []byte, opts runner.Options) ([]byte, error) {
	if opts.Cache == nil {
		output, _, err := runner.RenderBytes(source, opts.Parse, opts.HTML)
		return output, err
	}

	key := cache.Key(sha256.Sum256(source), cache.Fingerprint(opts.Parse, opts.HTML))
	if output, ok, err := opts.Cache.Get(key); err == nil && ok {
		return output, nil
	}

	output, _, err := runner.RenderBytes(source, opts.Parse, opts.HTML)
	if err != nil {
		return nil, err
	}
	if err := opts.Cache.Put(key, output); err != nil {
		return nil, fmt.Errorf("store in cache: %w", err)
	}
	return output, nil
}

// openCache opens the render cache when enabled, and returns nil otherwise.
func openCache(cfg *config.Config) (*cache.Cache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil //nolint:nilnil // A disabled cache is not an error.
	}

	path := cfg.Cache.Path
	if path == "" {
		dir, err := configloader.UserCacheDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, cache.DefaultFileName)
	}

	renderCache, err := cache.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return renderCache, nil
}

// reportParseError writes err with the offending source line to stderr and
// returns ErrRenderFailed.
func reportParseError(cmd *cobra.Command, path string, source []byte, err error) error {
	var msg *message.Message
	line := ""
	if errors.As(err, &msg) && msg.Place != nil {
		line = message.Line(source, msg.Place.Start.Line)
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.ErrOrStderr()))
	_, _ = io.WriteString(cmd.ErrOrStderr(), styles.FormatFileError(path, err, line))
	return ErrRenderFailed
}
