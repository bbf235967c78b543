package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdparse/internal/logging"
	"github.com/yaklabco/gomdparse/internal/ui/pretty"
	"github.com/yaklabco/gomdparse/pkg/config"
	"github.com/yaklabco/gomdparse/pkg/event"
	"github.com/yaklabco/gomdparse/pkg/parser"
)

type eventsFlags struct {
	format  string
	flavor  string
	check   bool
	compact bool
}

func newEventsCommand() *cobra.Command {
	var cfg config.Config
	flags := &eventsFlags{}

	cmd := &cobra.Command{
		Use:   "events [file|-]",
		Short: "Print the event stream of a document",
		Long: `Print the enter and exit events the parser produces for a document,
indented by nesting depth. Leaf tokens show the source text they cover.

With --check the stream is also validated: every enter must be matched by an
exit of the same token, links must chain within one content type, and a
second parse of the same input must produce the same events.

Examples:
  gomdparse events README.md
  echo '*a*' | gomdparse events
  gomdparse events --format json doc.md
  gomdparse events --check --flavor gfm doc.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvents(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text or json")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm, mdx")
	cmd.Flags().BoolVar(&flags.check, "check", false, "validate the stream and check that parsing is repeatable")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")

	return cmd
}

func runEvents(cmd *cobra.Command, args []string, cli *config.Config, flags *eventsFlags) error {
	if flags.format != "text" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be text or json", ErrUsage, flags.format)
	}

	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)
	flavorFlag(cmd, cli, flags.flavor)

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

	doc, err := parser.Parse(source, parseOpts)
	if err != nil {
		return reportParseError(cmd, path, source, err)
	}
	logger.Debug("parsed", logging.FieldPath, path, logging.FieldEvents, len(doc.Events))

	out := cmd.OutOrStdout()
	if flags.format == "json" {
		if err := writeEventsJSON(out, doc.Events, source, flags.compact); err != nil {
			return err
		}
	} else {
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
		if _, err := io.WriteString(out, styles.FormatEvents(doc.Events, source)); err != nil {
			return fmt.Errorf("write events: %w", err)
		}
	}

	if !flags.check {
		return nil
	}
	return checkEvents(cmd, source, parseOpts, doc.Events)
}

// checkEvents validates events and compares them against a second parse.
// Results go to stderr so they never mix with a JSON dump.
func checkEvents(cmd *cobra.Command, source []byte, opts parser.Options, events []event.Event) error {
	errOut := cmd.ErrOrStderr()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), errOut))

	if err := event.Validate(events); err != nil {
		fmt.Fprintf(errOut, "%s %v\n", styles.Failure.Render("invalid:"), err)
		return ErrCheckFailed
	}

	again, err := parser.Parse(source, opts)
	if err != nil {
		fmt.Fprintf(errOut, "%s second parse: %v\n", styles.Failure.Render("unstable:"), err)
		return ErrCheckFailed
	}

	if diff := cmp.Diff(snapshotEvents(events), snapshotEvents(again.Events)); diff != "" {
		fmt.Fprintf(errOut, "%s second parse differs (-first +second):\n", styles.Failure.Render("unstable:"))
		_, _ = io.WriteString(errOut, styleDiff(styles, diff))
		return ErrCheckFailed
	}

	fmt.Fprintf(errOut, "%s %d events, balanced and repeatable\n", styles.Success.Render("ok:"), len(events))
	return nil
}

// jsonEvent is the JSON form of one event.
type jsonEvent struct {
	Kind    string `json:"kind"`
	Token   string `json:"token"`
	Point   string `json:"point"`
	Offset  int    `json:"offset"`
	Virtual int    `json:"virtual,omitempty"`
	Depth   int    `json:"depth"`
	Content string `json:"content,omitempty"`
	Prev    *int   `json:"previous,omitempty"`
	Next    *int   `json:"next,omitempty"`
	Text    string `json:"text,omitempty"`
}

// snapshotEvents flattens events into comparable values.
func snapshotEvents(events []event.Event) []jsonEvent {
	depths := event.Depth(events)
	out := make([]jsonEvent, 0, len(events))
	for index, ev := range events {
		item := jsonEvent{
			Kind:    ev.Kind.String(),
			Token:   ev.Token.String(),
			Point:   ev.Point.String(),
			Offset:  ev.Point.Offset,
			Virtual: ev.Point.Virtual,
			Depth:   depths[index],
		}
		if ev.Link != nil {
			item.Content = ev.Link.Content.String()
			if ev.Link.Previous >= 0 {
				item.Prev = &ev.Link.Previous
			}
			if ev.Link.Next >= 0 {
				item.Next = &ev.Link.Next
			}
		}
		out = append(out, item)
	}
	return out
}

func writeEventsJSON(w io.Writer, events []event.Event, source []byte, compact bool) error {
	items := snapshotEvents(events)
	for index, ev := range events {
		if ev.Kind == event.Exit && index > 0 && events[index-1].Kind == event.Enter &&
			events[index-1].Token == ev.Token {
			items[index].Text = event.Slice(events, source, index)
		}
	}

	encoder := json.NewEncoder(w)
	if !compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(items); err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	return nil
}
