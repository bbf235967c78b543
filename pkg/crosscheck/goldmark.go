package crosscheck

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gomdparse/pkg/config"
	"github.com/yaklabco/gomdparse/pkg/mdast"
)

// newGoldmark creates a goldmark instance for flavor. The gfm flavor gets
// the extensions our gfm constructs cover, which leaves out tables. Raw
// HTML and every URL protocol are passed through.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmark(flavor config.Flavor) goldmark.Markdown {
	opts := []goldmark.Option{
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	}

	switch flavor {
	case config.FlavorGFM:
		opts = append(opts, goldmark.WithExtensions(
			extension.Linkify,
			extension.Footnote,
			extension.Strikethrough,
			extension.TaskList,
		))
	case config.FlavorCommonMark, config.FlavorMDX:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}

// renderGoldmark converts source to HTML with goldmark.
func renderGoldmark(md goldmark.Markdown, source []byte) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("goldmark convert: %w", err)
	}
	return buf.String(), nil
}

// treeGoldmark parses source with goldmark and maps the result to a tree of
// our node kinds.
func treeGoldmark(md goldmark.Markdown, source []byte) *mdast.Node {
	doc := md.Parser().Parse(text.NewReader(source))
	return newMapper(source).mapDocument(doc)
}
