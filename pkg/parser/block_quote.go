package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// indentMax is how far a container or flow construct may be indented
// before it would be indented code instead.
func indentMax(t *tokenizer) int {
	if t.parse.options.Constructs.CodeIndented {
		return tabSize - 1
	}
	return unbounded
}

func blockQuoteStart(t *tokenizer) state {
	if !t.parse.options.Constructs.BlockQuote {
		return stateNok
	}
	t.attempt(next(blockQuoteBefore), stateNok)
	return retry(spaceOrTabMinMax(t, 0, indentMax(t)))
}

func blockQuoteBefore(t *tokenizer) state {
	if t.current != '>' {
		return stateNok
	}
	t.enter(event.TokBlockQuote)
	return retry(blockQuoteContBefore)
}

// blockQuoteContStart continues an open block quote on a later line.
func blockQuoteContStart(t *tokenizer) state {
	t.attempt(next(blockQuoteContBefore), stateNok)
	return retry(spaceOrTabMinMax(t, 0, indentMax(t)))
}

func blockQuoteContBefore(t *tokenizer) state {
	if t.current != '>' {
		return stateNok
	}
	t.enter(event.TokBlockQuotePrefix)
	t.enter(event.TokBlockQuoteMarker)
	t.consume()
	t.exit(event.TokBlockQuoteMarker)
	return next(blockQuoteContAfter)
}

// blockQuoteContAfter takes one optional space after the marker. A tab
// only gives up one of its virtual spaces.
func blockQuoteContAfter(t *tokenizer) state {
	if t.current == '\t' || t.current == ' ' {
		t.enter(event.TokSpaceOrTab)
		t.consume()
		t.exit(event.TokSpaceOrTab)
	}
	t.exit(event.TokBlockQuotePrefix)
	return stateOk
}
