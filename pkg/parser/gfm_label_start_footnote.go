package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// gfmLabelStartFootnoteStart matches `[^`, the start of a footnote call.
// Whether it is one is decided at the label end.
func gfmLabelStartFootnoteStart(t *tokenizer) state {
	if !t.parse.options.Constructs.GFMLabelStartFootnote || t.current != '[' {
		return stateNok
	}
	t.enter(event.TokGFMFootnoteCallLabel)
	t.enter(event.TokLabelMarker)
	t.consume()
	t.exit(event.TokLabelMarker)
	return next(gfmLabelStartFootnoteOpen)
}

func gfmLabelStartFootnoteOpen(t *tokenizer) state {
	if t.current != '^' {
		return stateNok
	}
	t.enter(event.TokGFMFootnoteCallMarker)
	t.consume()
	t.exit(event.TokGFMFootnoteCallMarker)
	t.exit(event.TokGFMFootnoteCallLabel)
	t.ts.labelStarts = append(t.ts.labelStarts, labelStart{
		kind:  labelGFMFootnote,
		start: [2]int{len(t.events) - 6, len(t.events) - 1},
	})
	t.registerResolverBefore(resolverLabel)
	return stateOk
}
