// Package html compiles parser events to HTML.
package html

// LineEnding is the line ending written where the output needs one and the
// input has none to copy.
type LineEnding string

// Line endings.
const (
	LineFeed               LineEnding = "\n"
	CarriageReturn         LineEnding = "\r"
	CarriageReturnLineFeed LineEnding = "\r\n"
)

// Options configures compilation.
type Options struct {
	// AllowDangerousHTML passes HTML in markdown through instead of
	// encoding it.
	AllowDangerousHTML bool

	// AllowDangerousProtocol keeps URLs with any protocol. By default only
	// http, https, irc, ircs, mailto and xmpp are kept in links and only
	// http and https in images.
	AllowDangerousProtocol bool

	// DefaultLineEnding is used when the document has no line endings.
	DefaultLineEnding LineEnding

	// GFMTagfilter encodes the `<` of a few dangerous tags, such as
	// script and textarea, in HTML that is passed through.
	GFMTagfilter bool

	// GFMTaskListItemCheckable leaves task list checkboxes enabled.
	GFMTaskListItemCheckable bool

	// GFMFootnoteLabel is the heading of the footnote section. Empty means
	// "Footnotes".
	GFMFootnoteLabel string
	// GFMFootnoteBackLabel labels the links from a footnote back to its
	// calls. Empty means "Back to content".
	GFMFootnoteBackLabel string
	// GFMFootnoteClobberPrefix goes before the ids footnotes generate, so
	// they cannot clash with ids already on the page. Empty means
	// "user-content-".
	GFMFootnoteClobberPrefix string

	// DetectLanguage adds a language class to fenced code without an info
	// string when the language can be inferred from the code.
	DetectLanguage bool
}

// DefaultOptions returns safe CommonMark output options.
func DefaultOptions() Options {
	return Options{DefaultLineEnding: LineFeed}
}

// GFMOptions returns DefaultOptions with the GFM tagfilter on.
func GFMOptions() Options {
	opts := DefaultOptions()
	opts.GFMTagfilter = true
	return opts
}
