// Package crosscheck renders markdown with both this module and goldmark
// and reports where the results disagree.
package crosscheck

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/yaklabco/gomdparse/pkg/config"
	mdhtml "github.com/yaklabco/gomdparse/pkg/html"
	"github.com/yaklabco/gomdparse/pkg/mdast"
	"github.com/yaklabco/gomdparse/pkg/parser"
)

// ErrUnsupportedFlavor is returned for flavors goldmark cannot render.
var ErrUnsupportedFlavor = errors.New("flavor not supported by goldmark")

// Options configures a cross-check.
type Options struct {
	// Flavor selects the goldmark extensions.
	Flavor config.Flavor

	// Parse configures our parser. It usually matches Flavor.
	Parse parser.Options
}

// OptionsForFlavor returns the parse options that match flavor.
func OptionsForFlavor(flavor config.Flavor) (Options, error) {
	switch flavor {
	case config.FlavorCommonMark, "":
		return Options{Flavor: config.FlavorCommonMark, Parse: parser.DefaultOptions()}, nil
	case config.FlavorGFM:
		return Options{Flavor: config.FlavorGFM, Parse: parser.GFMOptions()}, nil
	default:
		return Options{}, fmt.Errorf("%w: %s", ErrUnsupportedFlavor, flavor)
	}
}

// Count is the number of matches of one selector in both outputs.
type Count struct {
	Selector string
	Ours     int
	Theirs   int
}

// Report is the outcome of one cross-check.
type Report struct {
	// Ours and Theirs are the raw HTML of both renderers.
	Ours   string
	Theirs string

	// HTMLDiff compares normalized HTML, empty when equal.
	HTMLDiff string

	// TreeDiff compares syntax tree outlines, empty when equal.
	TreeDiff string

	// Counts holds one entry per selector in Selectors order.
	Counts []Count
}

// Mismatches returns the counts that differ.
func (r *Report) Mismatches() []Count {
	var out []Count
	for _, c := range r.Counts {
		if c.Ours != c.Theirs {
			out = append(out, c)
		}
	}
	return out
}

// Equal reports whether both renderers agree.
func (r *Report) Equal() bool {
	return r.HTMLDiff == "" && r.TreeDiff == "" && len(r.Mismatches()) == 0
}

// Check renders source both ways and compares the results.
func Check(source []byte, opts Options) (*Report, error) {
	switch opts.Flavor {
	case config.FlavorCommonMark, config.FlavorGFM:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFlavor, opts.Flavor)
	}

	htmlOpts := mdhtml.DefaultOptions()
	htmlOpts.AllowDangerousHTML = true
	htmlOpts.AllowDangerousProtocol = true

	ours, err := mdhtml.Render(source, opts.Parse, htmlOpts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	md := newGoldmark(opts.Flavor)
	theirs, err := renderGoldmark(md, source)
	if err != nil {
		return nil, err
	}

	report := &Report{Ours: ours, Theirs: theirs}

	ourBody, err := parseBody(ours)
	if err != nil {
		return nil, err
	}
	theirBody, err := parseBody(theirs)
	if err != nil {
		return nil, err
	}
	report.HTMLDiff = cmp.Diff(normalize(ourBody), normalize(theirBody))

	ourCounts, err := count(ourBody)
	if err != nil {
		return nil, err
	}
	theirCounts, err := count(theirBody)
	if err != nil {
		return nil, err
	}
	for _, selector := range Selectors {
		report.Counts = append(report.Counts, Count{
			Selector: selector,
			Ours:     ourCounts[selector],
			Theirs:   theirCounts[selector],
		})
	}

	ourTree, err := mdast.Parse(source, opts.Parse)
	if err != nil {
		return nil, fmt.Errorf("build tree: %w", err)
	}
	report.TreeDiff = cmp.Diff(Outline(ourTree), Outline(treeGoldmark(md, source)))

	return report, nil
}

// Outline lists the nodes under root, one per line and indented by depth.
// Text and definitions are left out: goldmark splits text at line endings,
// keeps definitions out of its tree and moves footnote definitions to the
// end of the document.
func Outline(root *mdast.Node) []string {
	var lines []string
	depth := 0
	_ = mdast.WalkEnterLeave(root, func(n *mdast.Node) error {
		if n.Kind == mdast.NodeRoot {
			return nil
		}
		if n.Kind == mdast.NodeText || n.Kind == mdast.NodeDefinition || n.Kind == mdast.NodeFootnoteDefinition {
			return mdast.ErrSkipChildren
		}
		lines = append(lines, strings.Repeat("  ", depth)+outlineLabel(n))
		depth++
		return nil
	}, func(n *mdast.Node) error {
		if n.Kind != mdast.NodeRoot {
			depth--
		}
		return nil
	})
	return lines
}

func outlineLabel(n *mdast.Node) string {
	label := n.Kind.String()
	if n.Block == nil {
		return label
	}
	if n.Block.Depth > 0 {
		label += " depth=" + strconv.Itoa(n.Block.Depth)
	}
	if n.Block.Checked != nil {
		label += " checked=" + strconv.FormatBool(*n.Block.Checked)
	}
	if list := n.Block.List; list != nil {
		label += " ordered=" + strconv.FormatBool(list.Ordered)
		if list.Ordered {
			label += " start=" + strconv.Itoa(list.Start)
		}
	}
	return label
}
