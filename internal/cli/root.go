// Package cli provides the Cobra command structure for gomdparse.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdparse/internal/configloader"
	"github.com/yaklabco/gomdparse/internal/logging"
	"github.com/yaklabco/gomdparse/pkg/config"
	"github.com/yaklabco/gomdparse/pkg/fsutil"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// stdinArg names standard input on the command line.
const stdinArg = "-"

// NewRootCommand creates the root gomdparse command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gomdparse",
		Short: "A CommonMark, GFM and MDX parser that renders HTML",
		Long: `gomdparse tokenizes Markdown into a flat stream of enter and exit events
and compiles that stream to HTML.

It follows CommonMark, with GitHub Flavored Markdown constructs (autolink
literals, footnotes, strikethrough, tables, task lists) and MDX constructs
(ESM, expressions, JSX) available as opt-in extensions. The event stream and
the syntax tree built from it can be inspected directly, and output can be
cross-checked against goldmark.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newEventsCommand())
	rootCmd.AddCommand(newASTCommand())
	rootCmd.AddCommand(newCrosscheckCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// commandContext returns the command context with the default logger attached.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// colorMode reads the persistent --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}

// loadConfig merges config files, the environment and flags set on cli.
func loadConfig(ctx context.Context, cmd *cobra.Command, cli *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldPaths, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldCache, cfg.Cache.Enabled,
	)
	return cfg, workDir, nil
}

// readInput reads a file, or standard input for "-" or an empty name.
func readInput(ctx context.Context, cmd *cobra.Command, name string, maxSize int64) ([]byte, string, error) {
	if name == "" || name == stdinArg {
		content, info, err := fsutil.ReadAll(ctx, cmd.InOrStdin(), maxSize)
		if err != nil {
			return nil, "", err
		}
		return content, info.Path, nil
	}

	content, info, err := fsutil.ReadFile(ctx, name, maxSize)
	if err != nil {
		return nil, "", err
	}
	return content, info.Path, nil
}

// singleInput returns the one optional input argument.
func singleInput(args []string) string {
	if len(args) == 0 {
		return stdinArg
	}
	return args[0]
}

// flavorFlag sets cli.Flavor when --flavor was given.
func flavorFlag(cmd *cobra.Command, cli *config.Config, flavor string) {
	if cmd.Flags().Changed("flavor") {
		cli.Flavor = config.Flavor(flavor)
	}
}
