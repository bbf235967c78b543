package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// textMarkers are the bytes that may start a text construct. Data stops
// before each of them.
//
//nolint:gochecknoglobals // Read-only lookup table.
var textMarkers = []byte{'!', '$', '&', '*', '<', '[', '\\', ']', '_', '`', '{', '~'}

// textMarkersLiteral adds the first letters of `http` and `www` for
// autolink literals.
//
//nolint:gochecknoglobals // Read-only lookup table.
var textMarkersLiteral = []byte{'!', '$', '&', '*', '<', 'H', 'W', '[', '\\', ']', '_', '`', 'h', 'w', '{', '~'}

//nolint:gochecknoglobals // Read-only lookup table.
var stringMarkers = []byte{'&', '\\'}

func textStart(t *tokenizer) state {
	t.ts.markers = textMarkers
	if t.parse.options.Constructs.GFMAutolinkLiteral {
		t.ts.markers = textMarkersLiteral
	}
	t.attempt(next(textBefore), next(textBefore))
	return retry(gfmTaskListItemCheckStart)
}

func textBefore(t *tokenizer) state {
	switch t.current {
	case eof:
		t.registerResolver(resolverData)
		t.registerResolver(resolverText)
		return stateOk
	case '!':
		t.attempt(next(textBefore), next(textBeforeData))
		return retry(labelStartImageStart)
	case '$', '`':
		t.attempt(next(textBefore), next(textBeforeData))
		return retry(rawTextStart)
	case '&':
		t.attempt(next(textBefore), next(textBeforeData))
		return retry(characterReferenceStart)
	case '*', '_', '~':
		t.attempt(next(textBefore), next(textBeforeData))
		return retry(attentionStart)
	case '<':
		t.attempt(next(textBefore), next(textBeforeHTML))
		return retry(autolinkStart)
	case 'H', 'h':
		t.attempt(next(textBefore), next(textBeforeData))
		return retry(gfmAutolinkLiteralProtocolStart)
	case 'W', 'w':
		t.attempt(next(textBefore), next(textBeforeData))
		return retry(gfmAutolinkLiteralWwwStart)
	case '[':
		t.attempt(next(textBefore), next(textBeforeLabelStartLink))
		return retry(gfmLabelStartFootnoteStart)
	case '\\':
		t.attempt(next(textBefore), next(textBeforeHardBreakEscape))
		return retry(characterEscapeStart)
	case ']':
		t.attempt(next(textBefore), next(textBeforeData))
		return retry(labelEndStart)
	case '{':
		t.attempt(next(textBefore), next(textBeforeData))
		return retry(mdxExpressionTextStart)
	default:
		return retry(textBeforeData)
	}
}

func textBeforeHTML(t *tokenizer) state {
	t.attempt(next(textBefore), next(textBeforeData))
	return retry(htmlTextStart)
}

func textBeforeLabelStartLink(t *tokenizer) state {
	t.attempt(next(textBefore), next(textBeforeData))
	return retry(labelStartLinkStart)
}

func textBeforeHardBreakEscape(t *tokenizer) state {
	t.attempt(next(textBefore), next(textBeforeData))
	return retry(hardBreakEscapeStart)
}

func textBeforeData(t *tokenizer) state {
	t.attempt(next(textBefore), stateNok)
	return retry(dataStart)
}

func stringStart(t *tokenizer) state {
	t.ts.markers = stringMarkers
	return retry(stringBefore)
}

func stringBefore(t *tokenizer) state {
	switch t.current {
	case eof:
		t.registerResolver(resolverData)
		t.registerResolver(resolverString)
		return stateOk
	case '&':
		t.attempt(next(stringBefore), next(stringBeforeData))
		return retry(characterReferenceStart)
	case '\\':
		t.attempt(next(stringBefore), next(stringBeforeData))
		return retry(characterEscapeStart)
	default:
		return retry(stringBeforeData)
	}
}

func stringBeforeData(t *tokenizer) state {
	t.attempt(next(stringBefore), stateNok)
	return retry(dataStart)
}

// dataStart eats everything up to the next marker or line ending. A marker
// in the first position is eaten too: the construct it starts already
// failed.
func dataStart(t *tokenizer) state {
	if t.current != eof && isMarker(t.ts.markers, t.current) {
		t.enter(event.TokData)
		t.consume()
		return next(dataInside)
	}
	return retry(dataAtBreak)
}

func dataAtBreak(t *tokenizer) state {
	if t.current == eof || isMarker(t.ts.markers, t.current) {
		return stateOk
	}
	if t.current == '\n' {
		lineEnding(t)
		return next(dataAtBreak)
	}
	t.enter(event.TokData)
	return retry(dataInside)
}

func dataInside(t *tokenizer) state {
	if t.current != eof && t.current != '\n' && !isMarker(t.ts.markers, t.current) {
		t.consume()
		return next(dataInside)
	}
	t.exit(event.TokData)
	return retry(dataAtBreak)
}

func isMarker(markers []byte, c int) bool {
	for _, m := range markers {
		if int(m) == c {
			return true
		}
	}
	return false
}

// resolveData merges adjacent data tokens.
func resolveData(t *tokenizer) {
	events := t.events
	for index := 0; index < len(events); index++ {
		if events[index].Kind != event.Enter || events[index].Token != event.TokData {
			continue
		}
		exit := index + 1
		far := exit
		for far+1 < len(events) && events[far+1].Token == event.TokData {
			far += 2
		}
		if far > exit {
			t.edits.add(exit, far-exit, nil)
		}
		index = far
	}
	t.edits.consume(&t.events)
}
