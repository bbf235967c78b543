package parser

// resolver names a pass over the events of a tokenizer that runs after
// tokenization, when decisions need more than local context.
type resolver uint8

const (
	resolverLabel resolver = iota
	resolverAttention
	resolverHeadingATX
	resolverHeadingSetext
	resolverListItem
	resolverContent
	resolverData
	resolverString
	resolverText
)

//nolint:gochecknoglobals // Read-only lookup table.
var resolverNames = [...]string{
	resolverLabel:         "label",
	resolverAttention:     "attention",
	resolverHeadingATX:    "heading_atx",
	resolverHeadingSetext: "heading_setext",
	resolverListItem:      "list_item",
	resolverContent:       "content",
	resolverData:          "data",
	resolverString:        "string",
	resolverText:          "text",
}

func (r resolver) String() string {
	if int(r) < len(resolverNames) {
		return resolverNames[r]
	}
	return "unknown"
}

func (t *tokenizer) resolve(r resolver) (*subresult, error) {
	switch r {
	case resolverLabel:
		resolveLabel(t)
	case resolverAttention:
		resolveAttention(t)
	case resolverHeadingATX:
		resolveHeadingATX(t)
	case resolverHeadingSetext:
		resolveHeadingSetext(t)
	case resolverListItem:
		resolveListItem(t)
	case resolverContent:
		return resolveContent(t)
	case resolverData:
		resolveData(t)
	case resolverString:
		resolveWhitespace(t, false, false)
	case resolverText:
		resolveWhitespace(t, t.parse.options.Constructs.HardBreakTrailing, true)
		if t.parse.options.Constructs.GFMAutolinkLiteral {
			resolveGFMAutolinkLiteral(t)
		}
	}
	return nil, nil //nolint:nilnil // Most passes have no subresult.
}

// inlineResolvers are the passes Resolve runs again over a finished list.
// The structural passes and whitespace trimming wrap or split tokens
// exactly once and are left out.
//
//nolint:gochecknoglobals // Read-only lookup table.
var inlineResolvers = []resolver{resolverLabel, resolverAttention, resolverData}
