package mdast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes the tree under root to w, one node per line, indented by
// depth. Each line holds the kind, the attributes that are set, the value
// of literals and the position.
func Fprint(w io.Writer, root *Node) error {
	depth := 0
	return WalkEnterLeave(root, func(n *Node) error {
		line := strings.Repeat("  ", depth) + Describe(n)
		depth++
		_, err := fmt.Fprintln(w, line)
		return err
	}, func(*Node) error {
		depth--
		return nil
	})
}

// Describe formats a single node without its children.
func Describe(n *Node) string {
	parts := []string{n.Kind.String()}
	parts = append(parts, attributes(n)...)
	if n.IsLiteral() {
		parts = append(parts, strconv.Quote(n.Value))
	}
	parts = append(parts, "("+n.Position.String()+")")
	return strings.Join(parts, " ")
}

func attributes(n *Node) []string {
	var attrs []string
	add := func(name, value string) {
		attrs = append(attrs, name+"="+value)
	}

	if block := n.Block; block != nil {
		if block.Depth > 0 {
			add("depth", strconv.Itoa(block.Depth))
		}
		if n.Kind == NodeListItem {
			add("spread", strconv.FormatBool(block.Spread))
		}
		if block.Checked != nil {
			add("checked", strconv.FormatBool(*block.Checked))
		}
		if list := block.List; list != nil {
			add("ordered", strconv.FormatBool(list.Ordered))
			if list.Ordered {
				add("start", strconv.Itoa(list.Start))
			}
			add("spread", strconv.FormatBool(list.Spread))
		}
		if code := block.Code; code != nil {
			if code.Lang != "" {
				add("lang", strconv.Quote(code.Lang))
			}
			if code.Meta != "" {
				add("meta", strconv.Quote(code.Meta))
			}
		}
		if def := block.Definition; def != nil {
			attrs = append(attrs, linkAttributes(n.Kind, def)...)
		}
	}

	if inline := n.Inline; inline != nil {
		if inline.Link != nil {
			attrs = append(attrs, linkAttributes(n.Kind, inline.Link)...)
		}
		if n.Kind == NodeImage {
			add("alt", strconv.Quote(inline.Alt))
		}
	}

	return attrs
}

func linkAttributes(kind NodeKind, link *LinkAttrs) []string {
	// Footnotes have no destination.
	if kind == NodeFootnoteDefinition || kind == NodeFootnoteReference {
		return []string{"identifier=" + strconv.Quote(link.Identifier)}
	}

	attrs := []string{"url=" + strconv.Quote(link.URL)}
	if link.Title != "" {
		attrs = append(attrs, "title="+strconv.Quote(link.Title))
	}
	if link.Identifier != "" {
		attrs = append(attrs, "identifier="+strconv.Quote(link.Identifier))
	}
	return attrs
}
