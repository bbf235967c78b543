package parser

import "math"

const (
	unbounded = math.MaxInt

	tabSize = 4

	autolinkDomainSizeMax                = 63
	autolinkSchemeSizeMax                = 32
	characterReferenceDecimalSizeMax     = 7
	characterReferenceHexadecimalSizeMax = 6
	characterReferenceNamedSizeMax       = 31
	codeFencedSequenceSizeMin            = 3
	frontmatterSequenceSize              = 3
	hardBreakPrefixSizeMin               = 2
	headingATXOpeningFenceSizeMax        = 6
	htmlRawSizeMax                       = 8
	linkReferenceSizeMax                 = 999
	linkResourceDestinationBalanceMax    = 32
	listItemValueSizeMax                 = 10
	mathFlowSequenceSizeMin              = 2
	thematicBreakMarkerCountMin          = 3
)

// htmlRawNames open HTML flow kind 1.
//
//nolint:gochecknoglobals // Read-only lookup table.
var htmlRawNames = []string{"pre", "script", "style", "textarea"}

// htmlBlockNames open HTML flow kind 6.
//
//nolint:gochecknoglobals // Read-only lookup table.
var htmlBlockNames = []string{
	"address", "article", "aside", "base", "basefont", "blockquote", "body",
	"caption", "center", "col", "colgroup", "dd", "details", "dialog", "dir",
	"div", "dl", "dt", "fieldset", "figcaption", "figure", "footer", "form",
	"frame", "frameset", "h1", "h2", "h3", "h4", "h5", "h6", "head", "header",
	"hr", "html", "iframe", "legend", "li", "link", "main", "menu", "menuitem",
	"nav", "noframes", "ol", "optgroup", "option", "p", "param", "search",
	"section", "summary", "table", "tbody", "td", "tfoot", "th", "thead",
	"title", "tr", "track", "ul",
}

// htmlCDATAPrefix follows `<![` in HTML flow kind 5.
const htmlCDATAPrefix = "CDATA["
