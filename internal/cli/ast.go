package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdparse/internal/logging"
	"github.com/yaklabco/gomdparse/pkg/config"
	"github.com/yaklabco/gomdparse/pkg/mdast"
)

func newASTCommand() *cobra.Command {
	var cfg config.Config
	var flavor string

	cmd := &cobra.Command{
		Use:   "ast [file|-]",
		Short: "Print the syntax tree of a document",
		Long: `Build a syntax tree from the event stream of a document and print it,
one node per line, with attributes, literal values and positions.

Examples:
  gomdparse ast README.md
  echo '# a' | gomdparse ast
  gomdparse ast --detect-lang doc.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flavorFlag(cmd, &cfg, flavor)
			return runAST(cmd, args, &cfg)
		},
	}

	cmd.Flags().StringVar(&flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm, mdx")
	cmd.Flags().BoolVar(&cfg.HTML.DetectLanguage, "detect-lang", false,
		"guess the language of fenced code without an info string")

	return cmd
}

func runAST(cmd *cobra.Command, args []string, cli *config.Config) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cfg, _, err := loadConfig(ctx, cmd, cli)
	if err != nil {
		return err
	}
	parseOpts, err := cfg.ParseOptions()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	source, path, err := readInput(ctx, cmd, singleInput(args), cfg.MaxFileSize)
	if err != nil {
		return err
	}

	root, err := mdast.Parse(source, parseOpts)
	if err != nil {
		return reportParseError(cmd, path, source, err)
	}

	if cfg.HTML.DetectLanguage {
		detected := mdast.DetectLanguages(root)
		logger.Debug("detected code languages", logging.FieldPath, path, "count", detected)
	}

	if err := mdast.Fprint(cmd.OutOrStdout(), root); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	return nil
}
