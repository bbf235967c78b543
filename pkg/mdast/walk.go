package mdast

import (
	"errors"
	"strings"
)

// ErrSkipChildren is returned by a WalkFunc to skip the children of the node
// it was called with.
var ErrSkipChildren = errors.New("skip children")

// errStop ends a walk early without reporting an error.
var errStop = errors.New("stop walk")

// WalkFunc is called for each node. Return ErrSkipChildren to leave out the
// children of n, or another error to stop.
type WalkFunc func(n *Node) error

// Walk visits root and its descendants in document order.
func Walk(root *Node, fn WalkFunc) error {
	return WalkEnterLeave(root, fn, nil)
}

// WalkEnterLeave calls enter before the children of a node and leave after
// them. Either may be nil. Leave is not called for nodes whose enter
// returned ErrSkipChildren.
func WalkEnterLeave(root *Node, enter, leave WalkFunc) error {
	if root == nil {
		return nil
	}

	if enter != nil {
		err := enter(root)
		if errors.Is(err, ErrSkipChildren) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if err := WalkEnterLeave(child, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		return leave(root)
	}
	return nil
}

// FindAll returns the nodes under root, root included, that match.
func FindAll(root *Node, match func(n *Node) bool) []*Node {
	var found []*Node
	//nolint:errcheck // The callback never fails.
	Walk(root, func(n *Node) error {
		if match(n) {
			found = append(found, n)
		}
		return nil
	})
	return found
}

// FindFirst returns the first node in document order that matches, or nil.
func FindFirst(root *Node, match func(n *Node) bool) *Node {
	var found *Node
	//nolint:errcheck // errStop is how the walk ends early.
	Walk(root, func(n *Node) error {
		if match(n) {
			found = n
			return errStop
		}
		return nil
	})
	return found
}

// FindByKind returns all nodes of kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}

// TextContent concatenates the values of the literal descendants of n,
// and the alt text of images.
func TextContent(n *Node) string {
	var b strings.Builder
	//nolint:errcheck // The callback never fails.
	Walk(n, func(child *Node) error {
		switch {
		case child.Kind == NodeImage && child.Inline != nil:
			b.WriteString(child.Inline.Alt)
		case child.Kind == NodeBreak:
			b.WriteByte('\n')
		case child.IsLiteral() && child.Kind != NodeHTMLInline && child.Kind != NodeMDXTextExpression:
			b.WriteString(child.Value)
		}
		return nil
	})
	return b.String()
}
