// Package mdast builds a markdown syntax tree from parser events.
//
// The tree follows the shape of mdast: block nodes such as headings and
// lists contain other blocks or phrasing content, and literal nodes such as
// code and text carry their content in Value. Every node records the
// position of the events it was built from.
package mdast

import "github.com/yaklabco/gomdparse/pkg/event"

// NodeKind classifies a node.
type NodeKind uint16

// Node kinds.
const (
	NodeRoot NodeKind = iota

	// Flow.
	NodeParagraph
	NodeHeading
	NodeThematicBreak
	NodeBlockquote
	NodeList
	NodeListItem
	NodeCode
	NodeMath
	NodeHTMLBlock
	NodeDefinition
	NodeFrontmatter
	NodeMDXFlowExpression
	NodeFootnoteDefinition

	// Phrasing.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeDelete
	NodeInlineCode
	NodeInlineMath
	NodeBreak
	NodeLink
	NodeImage
	NodeHTMLInline
	NodeMDXTextExpression
	NodeFootnoteReference

	nodeKindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var nodeKindNames = [nodeKindCount]string{
	NodeRoot:               "root",
	NodeParagraph:          "paragraph",
	NodeHeading:            "heading",
	NodeThematicBreak:      "thematicBreak",
	NodeBlockquote:         "blockquote",
	NodeList:               "list",
	NodeListItem:           "listItem",
	NodeCode:               "code",
	NodeMath:               "math",
	NodeHTMLBlock:          "html",
	NodeDefinition:         "definition",
	NodeFrontmatter:        "yaml",
	NodeMDXFlowExpression:  "mdxFlowExpression",
	NodeFootnoteDefinition: "footnoteDefinition",
	NodeText:               "text",
	NodeEmphasis:           "emphasis",
	NodeStrong:             "strong",
	NodeDelete:             "delete",
	NodeInlineCode:         "inlineCode",
	NodeInlineMath:         "inlineMath",
	NodeBreak:              "break",
	NodeLink:               "link",
	NodeImage:              "image",
	NodeHTMLInline:         "html",
	NodeMDXTextExpression:  "mdxTextExpression",
	NodeFootnoteReference:  "footnoteReference",
}

// String returns the mdast type name, such as "thematicBreak".
func (k NodeKind) String() string {
	if k < nodeKindCount {
		return nodeKindNames[k]
	}
	return "unknown"
}

// Node is one node of the tree.
type Node struct {
	Kind NodeKind

	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Position spans the events the node was built from.
	Position event.Position

	// Value is the content of literal nodes: text, code, math, html,
	// frontmatter and expressions.
	Value string

	// Block holds attributes of flow nodes.
	Block *BlockAttrs

	// Inline holds attributes of phrasing nodes.
	Inline *InlineAttrs
}

// IsBlock reports whether n is flow content.
func (n *Node) IsBlock() bool {
	return n.Kind < NodeText
}

// IsInline reports whether n is phrasing content.
func (n *Node) IsInline() bool {
	return n.Kind >= NodeText
}

// IsLiteral reports whether n keeps its content in Value.
func (n *Node) IsLiteral() bool {
	switch n.Kind {
	case NodeText, NodeInlineCode, NodeInlineMath, NodeCode, NodeMath,
		NodeHTMLBlock, NodeHTMLInline, NodeFrontmatter,
		NodeMDXFlowExpression, NodeMDXTextExpression:
		return true
	default:
		return false
	}
}

// HasChildren reports whether n has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// Children returns the direct children of n.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Text returns the source n was built from.
func (n *Node) Text(source []byte) []byte {
	start, end := n.Position.Start.Offset, n.Position.End.Offset
	if start < 0 || end > len(source) || start > end {
		return nil
	}
	return source[start:end]
}
