package mdast

// BlockAttrs holds attributes of flow nodes.
type BlockAttrs struct {
	// Depth is the rank of a heading, 1 to 6.
	Depth int

	// Spread is set on loose list items: their children are separated by
	// blank lines.
	Spread bool

	// Checked is the state of a task list item, or nil for other items.
	Checked *bool

	List       *ListAttrs
	Code       *CodeAttrs
	Definition *LinkAttrs
}

// ListAttrs holds attributes of list nodes.
type ListAttrs struct {
	Ordered bool
	// Start is the number of the first item of an ordered list.
	Start int
	// Spread is set on loose lists.
	Spread bool
	// Marker is the bullet or the delimiter after the number.
	Marker byte
}

// CodeAttrs holds attributes of code and math nodes.
type CodeAttrs struct {
	// Lang is the first word of the info string.
	Lang string
	// Meta is the rest of the info string.
	Meta string
	// Fenced is false for indented code.
	Fenced bool
	// Detected is set when Lang was guessed from the code.
	Detected bool
}

// InlineAttrs holds attributes of phrasing nodes.
type InlineAttrs struct {
	Link *LinkAttrs

	// Alt is the plain text of an image label.
	Alt string
}

// ReferenceStyle tells how a link or image names its destination.
type ReferenceStyle uint8

const (
	// RefStyleInline is a resource: [text](url) or ![alt](url).
	RefStyleInline ReferenceStyle = iota
	// RefStyleFull is [text][label].
	RefStyleFull
	// RefStyleCollapsed is [label][].
	RefStyleCollapsed
	// RefStyleShortcut is [label].
	RefStyleShortcut
	// RefStyleAutolink is <https://example.com>.
	RefStyleAutolink
)

// String returns a human-readable name for the reference style.
func (s ReferenceStyle) String() string {
	switch s {
	case RefStyleInline:
		return "inline"
	case RefStyleFull:
		return "full"
	case RefStyleCollapsed:
		return "collapsed"
	case RefStyleShortcut:
		return "shortcut"
	case RefStyleAutolink:
		return "autolink"
	default:
		return "unknown"
	}
}

// LinkAttrs holds attributes of links, images and definitions.
type LinkAttrs struct {
	URL   string
	Title string

	// Label is the reference label as written, and Identifier its
	// normalized form. Both are empty for resources and autolinks.
	Label      string
	Identifier string

	Style ReferenceStyle
}
