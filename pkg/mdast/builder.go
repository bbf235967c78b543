package mdast

import "github.com/yaklabco/gomdparse/pkg/event"

// NewNode returns a detached node of kind spanning pos.
func NewNode(kind NodeKind, pos event.Position) *Node {
	return &Node{Kind: kind, Position: pos}
}

// AppendChild makes child the last child of parent, detaching it from its
// previous parent first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// RemoveChild detaches child from parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}
	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent, child.Prev, child.Next = nil, nil, nil
}

// RemoveChildren detaches every child of parent.
func RemoveChildren(parent *Node) {
	for parent.FirstChild != nil {
		RemoveChild(parent, parent.FirstChild)
	}
}
