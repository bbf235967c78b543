package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// The label, destination and title partials are shared by definitions and
// by links. Callers set token1..token5 to the token kinds they want before
// starting one, and reset them to TokData after.

// labelStartState expects `[`.
func labelStartState(t *tokenizer) state {
	t.enter(t.ts.token1)
	t.enter(t.ts.token2)
	t.consume()
	t.exit(t.ts.token2)
	t.enter(t.ts.token3)
	return next(labelAtBreak)
}

func labelAtBreak(t *tokenizer) state {
	if t.ts.size > linkReferenceSizeMax || t.current == eof || t.current == '[' ||
		(t.current == ']' && !t.ts.seen) {
		return retry(labelNok)
	}

	switch t.current {
	case '\n':
		t.attempt(next(labelEOLAfter), next(labelNok))
		return retry(spaceOrTabEOLWithOptions(t, event.ContentString, t.ts.connect))
	case ']':
		t.exit(t.ts.token3)
		t.enter(t.ts.token2)
		t.consume()
		t.exit(t.ts.token2)
		t.exit(t.ts.token1)
		t.ts.connect = false
		t.ts.seen = false
		t.ts.size = 0
		return stateOk
	default:
		t.enterLink(event.TokData, event.ContentString)
		if t.ts.connect {
			t.linkPrevious(len(t.events) - 1)
		} else {
			t.ts.connect = true
		}
		return retry(labelInside)
	}
}

func labelEOLAfter(t *tokenizer) state {
	t.ts.connect = true
	return retry(labelAtBreak)
}

func labelNok(t *tokenizer) state {
	t.ts.connect = false
	t.ts.seen = false
	t.ts.size = 0
	return stateNok
}

func labelInside(t *tokenizer) state {
	switch t.current {
	case eof, '\n', '[', ']':
		t.exit(event.TokData)
		return retry(labelAtBreak)
	}
	if t.ts.size > linkReferenceSizeMax {
		t.exit(event.TokData)
		return retry(labelAtBreak)
	}

	c := t.current
	t.consume()
	t.ts.size++
	if !t.ts.seen && c != '\t' && c != ' ' {
		t.ts.seen = true
	}
	if c == '\\' {
		return next(labelEscape)
	}
	return next(labelInside)
}

func labelEscape(t *tokenizer) state {
	switch t.current {
	case '[', '\\', ']':
		t.consume()
		t.ts.size++
		return next(labelInside)
	default:
		return retry(labelInside)
	}
}

// destinationStart matches `<a b>` or a raw destination with balanced
// parens, up to sizeB levels deep.
func destinationStart(t *tokenizer) state {
	switch {
	case t.current == '<':
		t.enter(t.ts.token1)
		t.enter(t.ts.token2)
		t.enter(t.ts.token3)
		t.consume()
		t.exit(t.ts.token3)
		return next(destinationEnclosedBefore)
	case t.current == eof || t.current == ' ' || t.current == ')' || isASCIIControlNotNUL(t.current):
		return stateNok
	default:
		t.enter(t.ts.token1)
		t.enter(t.ts.token4)
		t.enter(t.ts.token5)
		t.enterLink(event.TokData, event.ContentString)
		return retry(destinationRaw)
	}
}

func destinationEnclosedBefore(t *tokenizer) state {
	if t.current == '>' {
		t.enter(t.ts.token3)
		t.consume()
		t.exit(t.ts.token3)
		t.exit(t.ts.token2)
		t.exit(t.ts.token1)
		return stateOk
	}
	t.enter(t.ts.token5)
	t.enterLink(event.TokData, event.ContentString)
	return retry(destinationEnclosed)
}

func destinationEnclosed(t *tokenizer) state {
	switch t.current {
	case eof, '\n', '<':
		return stateNok
	case '>':
		t.exit(event.TokData)
		t.exit(t.ts.token5)
		return retry(destinationEnclosedBefore)
	case '\\':
		t.consume()
		return next(destinationEnclosedEscape)
	default:
		t.consume()
		return next(destinationEnclosed)
	}
}

func destinationEnclosedEscape(t *tokenizer) state {
	switch t.current {
	case '<', '>', '\\':
		t.consume()
		return next(destinationEnclosed)
	default:
		return retry(destinationEnclosed)
	}
}

func destinationRaw(t *tokenizer) state {
	switch {
	case t.ts.size == 0 && (t.current == eof || t.current == '\t' || t.current == '\n' || t.current == ' ' || t.current == ')'):
		t.exit(event.TokData)
		t.exit(t.ts.token5)
		t.exit(t.ts.token4)
		t.exit(t.ts.token1)
		t.ts.size = 0
		return stateOk
	case t.ts.size < t.ts.sizeB && t.current == '(':
		t.consume()
		t.ts.size++
		return next(destinationRaw)
	case t.current == ')':
		t.consume()
		t.ts.size--
		return next(destinationRaw)
	case t.current == eof || t.current == ' ' || t.current == '(' || isASCIIControlNotNUL(t.current):
		t.ts.size = 0
		return stateNok
	case t.current == '\\':
		t.consume()
		return next(destinationRawEscape)
	default:
		t.consume()
		return next(destinationRaw)
	}
}

func destinationRawEscape(t *tokenizer) state {
	switch t.current {
	case '(', ')', '\\':
		t.consume()
		return next(destinationRaw)
	default:
		return retry(destinationRaw)
	}
}

// titleStart matches `"a"`, `'a'` or `(a)`, possibly across lines.
func titleStart(t *tokenizer) state {
	switch t.current {
	case '"', '\'', '(':
		t.ts.marker = byte(t.current)
		if t.current == '(' {
			t.ts.marker = ')'
		}
		t.enter(t.ts.token1)
		t.enter(t.ts.token2)
		t.consume()
		t.exit(t.ts.token2)
		return next(titleBegin)
	default:
		return stateNok
	}
}

func titleBegin(t *tokenizer) state {
	if t.current == int(t.ts.marker) {
		t.enter(t.ts.token2)
		t.consume()
		t.exit(t.ts.token2)
		t.exit(t.ts.token1)
		t.ts.marker = 0
		t.ts.connect = false
		return stateOk
	}
	t.enter(t.ts.token3)
	return retry(titleAtBreak)
}

func titleAtBreak(t *tokenizer) state {
	switch t.current {
	case eof:
		return retry(titleNok)
	case int(t.ts.marker):
		t.exit(t.ts.token3)
		return retry(titleBegin)
	case '\n':
		t.attempt(next(titleAfterEOL), next(titleNok))
		return retry(spaceOrTabEOLWithOptions(t, event.ContentString, t.ts.connect))
	default:
		t.enterLink(event.TokData, event.ContentString)
		if t.ts.connect {
			t.linkPrevious(len(t.events) - 1)
		} else {
			t.ts.connect = true
		}
		return retry(titleInside)
	}
}

func titleAfterEOL(t *tokenizer) state {
	t.ts.connect = true
	return retry(titleAtBreak)
}

func titleNok(t *tokenizer) state {
	t.ts.marker = 0
	t.ts.connect = false
	return stateNok
}

func titleInside(t *tokenizer) state {
	if t.current == int(t.ts.marker) || t.current == eof || t.current == '\n' {
		t.exit(event.TokData)
		return retry(titleAtBreak)
	}
	escape := t.current == '\\'
	t.consume()
	if escape {
		return next(titleEscape)
	}
	return next(titleInside)
}

func titleEscape(t *tokenizer) state {
	switch t.current {
	case '"', '\'', ')':
		t.consume()
		return next(titleInside)
	default:
		return retry(titleInside)
	}
}

// isASCIIControlNotNUL matches U+0001..U+001F and U+007F.
func isASCIIControlNotNUL(c int) bool {
	return (c >= 0x01 && c <= 0x1F) || c == 0x7F
}

// resetTokens sets the partial token kinds back to TokData.
func resetTokens(t *tokenizer) {
	t.ts.token1 = event.TokData
	t.ts.token2 = event.TokData
	t.ts.token3 = event.TokData
	t.ts.token4 = event.TokData
	t.ts.token5 = event.TokData
}
