// Package event defines the flat event stream produced by the parser.
//
// A document is described by a list of Enter and Exit events. Each pair
// bounds one token. Consumers rebuild nesting purely from the order of the
// events: the most recently entered token is the next one to exit.
package event

import "fmt"

// Kind tells whether an event opens or closes a token.
type Kind uint8

const (
	// Enter opens a token.
	Enter Kind = iota
	// Exit closes the most recently opened token.
	Exit
)

// String returns "enter" or "exit".
func (k Kind) String() string {
	if k == Enter {
		return "enter"
	}
	return "exit"
}

// Content is the grammar a chain of linked events is parsed with later on.
type Content uint8

const (
	// ContentFlow is block content inside containers.
	ContentFlow Content = iota + 1
	// ContentContent is definitions and paragraphs.
	ContentContent
	// ContentString is character escapes and references only.
	ContentString
	// ContentText is all inline constructs.
	ContentText
)

// String returns the lowercase name of the content type.
func (c Content) String() string {
	switch c {
	case ContentFlow:
		return "flow"
	case ContentContent:
		return "content"
	case ContentString:
		return "string"
	case ContentText:
		return "text"
	default:
		return "none"
	}
}

// Point is a place in the source.
type Point struct {
	// Line is 1-indexed.
	Line int
	// Column is 1-indexed, counting tabs as their expanded width.
	Column int
	// Offset is the byte index into the source.
	Offset int
	// Virtual is the number of virtual spaces of a tab at Offset already
	// consumed.
	Virtual int
}

// Before reports whether p lies strictly before other.
func (p Point) Before(other Point) bool {
	return p.Offset < other.Offset || (p.Offset == other.Offset && p.Virtual < other.Virtual)
}

// String formats the point as "line:column".
func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Position is a span between two points.
type Position struct {
	Start Point
	End   Point
}

// String formats the position as "line:column-line:column".
func (p Position) String() string {
	return p.Start.String() + "-" + p.End.String()
}

// Link connects the enter events of chunks that belong to one piece of
// content which is interrupted by container prefixes or line endings.
//
// Previous and Next are indices into the event list, or -1. They are valid
// on event lists returned from the parser. While parsing, chains are kept as
// pointers because the list is spliced constantly.
type Link struct {
	Previous int
	Next     int
	Content  Content

	prev *Link
	next *Link
}

// NewLink returns an unconnected link for content.
func NewLink(content Content) *Link {
	return &Link{Previous: -1, Next: -1, Content: content}
}

// PreviousLink returns the link before l in its chain, or nil.
func (l *Link) PreviousLink() *Link { return l.prev }

// NextLink returns the link after l in its chain, or nil.
func (l *Link) NextLink() *Link { return l.next }

// Connect chains next after previous.
func Connect(previous, next *Link) {
	previous.next = next
	next.prev = previous
}

// Event is one entry in the event stream.
type Event struct {
	Kind  Kind
	Token TokenKind
	Point Point
	// Link is set on the enter events of linked chunks only.
	Link *Link
}

// String formats the event for debugging, for example "enter:Paragraph 1:1".
func (e Event) String() string {
	return fmt.Sprintf("%s:%s %s", e.Kind, e.Token, e.Point)
}

// Relink fills in the Previous and Next indices of every link in events
// from the pointer chains.
func Relink(events []Event) {
	index := make(map[*Link]int)
	for i := range events {
		if events[i].Link != nil {
			index[events[i].Link] = i
		}
	}

	for i := range events {
		link := events[i].Link
		if link == nil {
			continue
		}
		link.Previous, link.Next = -1, -1
		if at, ok := index[link.prev]; ok && link.prev != nil {
			link.Previous = at
		}
		if at, ok := index[link.next]; ok && link.next != nil {
			link.Next = at
		}
	}
}
