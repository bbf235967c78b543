package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// Content is what is left in flow when no other block construct matches:
// a run of lines holding definitions and then at most one paragraph. Flow
// only marks each line as a content chunk; the chunks are joined and parsed
// by resolveContent once all of flow is known.

func contentChunkStart(t *tokenizer) state {
	if t.current == eof || t.current == '\n' {
		return stateNok
	}
	t.enterLink(event.TokContent, event.ContentContent)
	return retry(contentChunkInside)
}

func contentChunkInside(t *tokenizer) state {
	if t.current == eof || t.current == '\n' {
		t.exit(event.TokContent)
		t.registerResolverBefore(resolverContent)
		t.interrupt = true
		return stateOk
	}
	t.consume()
	return next(contentChunkInside)
}

func contentDefinitionBefore(t *tokenizer) state {
	t.attempt(next(contentDefinitionAfter), next(paragraphStart))
	return retry(definitionStart)
}

func contentDefinitionAfter(t *tokenizer) state {
	if t.current == eof {
		return stateOk
	}
	lineEnding(t)
	return next(contentDefinitionBefore)
}

// resolveContent links content chunks separated by line endings and
// container prefixes, then parses each joined run.
func resolveContent(t *tokenizer) (*subresult, error) {
	events := t.events

	for index := 0; index < len(events); index++ {
		if events[index].Kind != event.Enter || events[index].Token != event.TokContent {
			continue
		}

		exit := index + 1
		for {
			enter := exit + 1
			if enter >= len(events) || events[enter].Token != event.TokLineEnding {
				break
			}
			enter += 2
			for enter < len(events) {
				token := events[enter].Token
				if token != event.TokSpaceOrTab && token != event.TokBlockQuotePrefix && token != event.TokBlockQuoteMarker {
					break
				}
				enter++
			}
			if enter >= len(events) || events[enter].Token != event.TokContent {
				break
			}

			// The line ending becomes part of the chunk before it.
			events[exit].Point = events[exit+2].Point
			t.edits.add(exit+1, 2, nil)
			event.Connect(events[exit-1].Link, events[enter].Link)

			exit = enter + 1
		}

		index = exit
	}

	t.edits.consume(&t.events)
	return subtokenize(&t.events, t.parse, event.ContentContent)
}

func paragraphStart(t *tokenizer) state {
	if t.current == eof || t.current == '\n' {
		return stateNok
	}
	t.enter(event.TokParagraph)
	return retry(paragraphLineStart)
}

func paragraphLineStart(t *tokenizer) state {
	t.enterLink(event.TokData, event.ContentText)
	if t.ts.connect {
		t.linkPrevious(len(t.events) - 1)
	} else {
		t.ts.connect = true
	}
	return retry(paragraphInside)
}

func paragraphInside(t *tokenizer) state {
	switch t.current {
	case eof:
		t.ts.connect = false
		t.exit(event.TokData)
		t.exit(event.TokParagraph)
		return stateOk
	case '\n':
		t.consume()
		t.exit(event.TokData)
		return next(paragraphLineStart)
	default:
		t.consume()
		return next(paragraphInside)
	}
}
