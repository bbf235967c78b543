package crosscheck

import (
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/gomdparse/pkg/event"
	"github.com/yaklabco/gomdparse/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree. Only kinds and
// the attributes the outline shows are filled in; positions stay zero.
type mapper struct {
	content []byte
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	root := node(mdast.NodeRoot)
	m.mapChildren(gmDoc, root)
	return root
}

func node(kind mdast.NodeKind) *mdast.Node {
	n := mdast.NewNode(kind, event.Position{})
	if n.IsBlock() {
		n.Block = &mdast.BlockAttrs{}
	}
	return n
}

// mapChildren maps all children of a goldmark node onto parent.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		m.mapNode(child, parent)
	}
}

// mapNode appends the mdast counterpart of gmNode to parent. Some goldmark
// nodes map to nothing, one maps to two siblings.
func (m *mapper) mapNode(gmNode ast.Node, parent *mdast.Node) {
	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		heading := node(mdast.NodeHeading)
		heading.Block.Depth = gmn.Level
		m.appendWithChildren(parent, heading, gmn)

	case *ast.Paragraph, *ast.TextBlock:
		m.appendWithChildren(parent, node(mdast.NodeParagraph), gmn)

	case *ast.List:
		list := node(mdast.NodeList)
		list.Block.List = &mdast.ListAttrs{Ordered: gmn.IsOrdered(), Start: gmn.Start, Marker: gmn.Marker}
		m.appendWithChildren(parent, list, gmn)

	case *ast.ListItem:
		m.appendWithChildren(parent, node(mdast.NodeListItem), gmn)

	case *ast.Blockquote:
		m.appendWithChildren(parent, node(mdast.NodeBlockquote), gmn)

	case *ast.FencedCodeBlock:
		code := node(mdast.NodeCode)
		code.Block.Code = &mdast.CodeAttrs{Fenced: true, Lang: string(gmn.Language(m.content))}
		mdast.AppendChild(parent, code)

	case *ast.CodeBlock:
		code := node(mdast.NodeCode)
		code.Block.Code = &mdast.CodeAttrs{}
		mdast.AppendChild(parent, code)

	case *ast.ThematicBreak:
		mdast.AppendChild(parent, node(mdast.NodeThematicBreak))

	case *ast.HTMLBlock:
		mdast.AppendChild(parent, node(mdast.NodeHTMLBlock))

	// Inline-level nodes.
	case *ast.Text:
		text := node(mdast.NodeText)
		text.Value = string(gmn.Segment.Value(m.content))
		mdast.AppendChild(parent, text)
		if gmn.HardLineBreak() {
			mdast.AppendChild(parent, node(mdast.NodeBreak))
		}

	case *ast.String:
		text := node(mdast.NodeText)
		text.Value = string(gmn.Value)
		mdast.AppendChild(parent, text)

	case *ast.Emphasis:
		kind := mdast.NodeEmphasis
		if gmn.Level == 2 {
			kind = mdast.NodeStrong
		}
		m.appendWithChildren(parent, node(kind), gmn)

	case *ast.CodeSpan:
		mdast.AppendChild(parent, node(mdast.NodeInlineCode))

	case *ast.Link:
		m.appendWithChildren(parent, node(mdast.NodeLink), gmn)

	case *ast.AutoLink:
		link := node(mdast.NodeLink)
		text := node(mdast.NodeText)
		text.Value = string(gmn.Label(m.content))
		mdast.AppendChild(link, text)
		mdast.AppendChild(parent, link)

	case *ast.Image:
		// Image labels become alt text, not children.
		mdast.AppendChild(parent, node(mdast.NodeImage))

	case *ast.RawHTML:
		mdast.AppendChild(parent, node(mdast.NodeHTMLInline))

	// GFM extension nodes.
	case *east.Strikethrough:
		m.appendWithChildren(parent, node(mdast.NodeDelete), gmn)

	case *east.FootnoteLink:
		mdast.AppendChild(parent, node(mdast.NodeFootnoteReference))

	case *east.FootnoteList, *east.FootnoteBacklink:
		// Definitions are left out of the outline.

	case *east.TaskCheckBox:
		// A checkbox is an attribute of the list item.
		if item := nearestListItem(parent); item != nil {
			checked := gmn.IsChecked
			item.Block.Checked = &checked
		}

	default:
		// Unknown kinds are transparent.
		m.mapChildren(gmNode, parent)
	}
}

func (m *mapper) appendWithChildren(parent, child *mdast.Node, gmNode ast.Node) {
	mdast.AppendChild(parent, child)
	m.mapChildren(gmNode, child)
}

func nearestListItem(n *mdast.Node) *mdast.Node {
	for ; n != nil; n = n.Parent {
		if n.Kind == mdast.NodeListItem {
			return n
		}
	}
	return nil
}
