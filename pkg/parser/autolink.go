package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// autolinkStart matches `<https://example.com>` and `<user@example.com>`.
func autolinkStart(t *tokenizer) state {
	if !t.parse.options.Constructs.Autolink || t.current != '<' {
		return stateNok
	}
	t.enter(event.TokAutolink)
	t.enter(event.TokAutolinkMarker)
	t.consume()
	t.exit(event.TokAutolinkMarker)
	t.enter(event.TokAutolinkProtocol)
	return next(autolinkOpen)
}

func autolinkOpen(t *tokenizer) state {
	switch {
	case isASCIIAlpha(t.current):
		t.consume()
		return next(autolinkSchemeOrEmailAtext)
	case t.current == '@':
		return stateNok
	default:
		return retry(autolinkEmailAtext)
	}
}

func autolinkSchemeOrEmailAtext(t *tokenizer) state {
	if isSchemeByte(t.current) {
		t.ts.size = 1
		return retry(autolinkSchemeInsideOrEmailAtext)
	}
	return retry(autolinkEmailAtext)
}

func autolinkSchemeInsideOrEmailAtext(t *tokenizer) state {
	switch {
	case t.current == ':':
		t.consume()
		t.ts.size = 0
		return next(autolinkURLInside)
	case isSchemeByte(t.current) && t.ts.size < autolinkSchemeSizeMax:
		t.consume()
		t.ts.size++
		return next(autolinkSchemeInsideOrEmailAtext)
	default:
		t.ts.size = 0
		return retry(autolinkEmailAtext)
	}
}

func autolinkURLInside(t *tokenizer) state {
	switch {
	case t.current == '>':
		t.exit(event.TokAutolinkProtocol)
		t.enter(event.TokAutolinkMarker)
		t.consume()
		t.exit(event.TokAutolinkMarker)
		t.exit(event.TokAutolink)
		return stateOk
	case t.current == eof || t.current == 0 || t.current == ' ' || t.current == '<' || isASCIIControlNotNUL(t.current):
		return stateNok
	default:
		t.consume()
		return next(autolinkURLInside)
	}
}

func autolinkEmailAtext(t *tokenizer) state {
	switch {
	case t.current == '@':
		t.consume()
		return next(autolinkEmailAtSignOrDot)
	case isAtext(t.current):
		t.consume()
		return next(autolinkEmailAtext)
	default:
		return stateNok
	}
}

func autolinkEmailAtSignOrDot(t *tokenizer) state {
	if isASCIIAlphanumeric(t.current) {
		return retry(autolinkEmailValue)
	}
	return stateNok
}

func autolinkEmailLabel(t *tokenizer) state {
	switch t.current {
	case '.':
		t.consume()
		t.ts.size = 0
		return next(autolinkEmailAtSignOrDot)
	case '>':
		index := len(t.events)
		t.exit(event.TokAutolinkProtocol)
		t.events[index-1].Token = event.TokAutolinkEmail
		t.events[index].Token = event.TokAutolinkEmail
		t.enter(event.TokAutolinkMarker)
		t.consume()
		t.exit(event.TokAutolinkMarker)
		t.exit(event.TokAutolink)
		t.ts.size = 0
		return stateOk
	default:
		return retry(autolinkEmailValue)
	}
}

func autolinkEmailValue(t *tokenizer) state {
	if (t.current == '-' || isASCIIAlphanumeric(t.current)) && t.ts.size < autolinkDomainSizeMax {
		dash := t.current == '-'
		t.ts.size++
		t.consume()
		if dash {
			return next(autolinkEmailValue)
		}
		return next(autolinkEmailLabel)
	}
	t.ts.size = 0
	return stateNok
}

func isSchemeByte(c int) bool {
	return c == '+' || c == '-' || c == '.' || isASCIIAlphanumeric(c)
}

// isAtext matches the characters allowed before `@` in an email autolink.
func isAtext(c int) bool {
	switch {
	case c >= '#' && c <= '\'', c == '*', c == '+', c >= '-' && c <= '9', c == '=', c == '?',
		c >= 'A' && c <= 'Z', c >= '^' && c <= '~':
		return true
	}
	return false
}
