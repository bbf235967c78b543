package parser

import (
	"strings"

	"github.com/yaklabco/gomdparse/pkg/event"
)

// GFM autolink literals are bare URLs. `http://` and `https://` links and
// `www.` links are found while tokenizing text; email addresses (with an
// optional `mailto:` or `xmpp:` prefix) are found afterwards in data,
// since the local part before `@` has already been eaten by then.

func gfmAutolinkLiteralProtocolStart(t *tokenizer) state {
	if !t.parse.options.Constructs.GFMAutolinkLiteral || (t.current != 'H' && t.current != 'h') ||
		isASCIIAlpha(t.previous) {
		return stateNok
	}
	t.enter(event.TokGFMAutolinkLiteralProtocol)
	t.attempt(next(gfmAutolinkLiteralProtocolAfter), stateNok)
	t.attempt(next(gfmAutolinkLiteralDomainInside), stateNok)
	t.ts.start = t.point.Offset
	return retry(gfmAutolinkLiteralProtocolPrefixInside)
}

func gfmAutolinkLiteralProtocolAfter(t *tokenizer) state {
	t.exit(event.TokGFMAutolinkLiteralProtocol)
	return stateOk
}

func gfmAutolinkLiteralProtocolPrefixInside(t *tokenizer) state {
	switch {
	case isASCIIAlpha(t.current) && t.point.Offset-t.ts.start < 5:
		t.consume()
		return next(gfmAutolinkLiteralProtocolPrefixInside)
	case t.current == ':':
		name := strings.ToLower(string(t.parse.source[t.ts.start:t.point.Offset]))
		t.ts.start = 0
		if name != "http" && name != "https" {
			return stateNok
		}
		t.consume()
		return next(gfmAutolinkLiteralProtocolSlashesInside)
	default:
		t.ts.start = 0
		return stateNok
	}
}

func gfmAutolinkLiteralProtocolSlashesInside(t *tokenizer) state {
	if t.current != '/' {
		t.ts.size = 0
		return stateNok
	}
	t.consume()
	if t.ts.size == 0 {
		t.ts.size++
		return next(gfmAutolinkLiteralProtocolSlashesInside)
	}
	t.ts.size = 0
	return stateOk
}

func gfmAutolinkLiteralWwwStart(t *tokenizer) state {
	if !t.parse.options.Constructs.GFMAutolinkLiteral || (t.current != 'W' && t.current != 'w') {
		return stateNok
	}
	switch t.previous {
	case eof, '\t', '\n', ' ', '(', '*', '_', '[', ']', '~':
	default:
		return stateNok
	}
	t.enter(event.TokGFMAutolinkLiteralWww)
	t.attempt(next(gfmAutolinkLiteralWwwAfter), stateNok)
	// The prefix is only checked: the domain starts at the first `w`.
	t.check(next(gfmAutolinkLiteralDomainInside), stateNok)
	return retry(gfmAutolinkLiteralWwwPrefixInside)
}

func gfmAutolinkLiteralWwwAfter(t *tokenizer) state {
	t.exit(event.TokGFMAutolinkLiteralWww)
	return stateOk
}

func gfmAutolinkLiteralWwwPrefixInside(t *tokenizer) state {
	switch {
	case t.current == '.' && t.ts.size == 3:
		t.ts.size = 0
		t.consume()
		return next(gfmAutolinkLiteralWwwPrefixAfter)
	case (t.current == 'W' || t.current == 'w') && t.ts.size < 3:
		t.ts.size++
		t.consume()
		return next(gfmAutolinkLiteralWwwPrefixInside)
	default:
		t.ts.size = 0
		return stateNok
	}
}

func gfmAutolinkLiteralWwwPrefixAfter(t *tokenizer) state {
	if t.current == eof {
		return stateNok
	}
	return stateOk
}

// gfmAutolinkLiteralDomainInside eats the domain. marker holds `_` when
// the last label had one and markerB the same for the label before it:
// underscores are not allowed in the last two labels.
func gfmAutolinkLiteralDomainInside(t *tokenizer) state {
	switch {
	case t.current == '.' || t.current == '_':
		t.check(next(gfmAutolinkLiteralDomainAfter), next(gfmAutolinkLiteralDomainAtPunctuation))
		return retry(gfmAutolinkLiteralTrail)
	case t.current == '-' || isUTF8Continuation(t.current):
		t.consume()
		return next(gfmAutolinkLiteralDomainInside)
	case t.current != eof && classifyAfter(t.parse.source, t.point.Offset) == charOther:
		t.ts.seen = true
		t.consume()
		return next(gfmAutolinkLiteralDomainInside)
	default:
		return retry(gfmAutolinkLiteralDomainAfter)
	}
}

func gfmAutolinkLiteralDomainAtPunctuation(t *tokenizer) state {
	if t.current == '_' {
		t.ts.marker = '_'
	} else {
		t.ts.markerB = t.ts.marker
		t.ts.marker = 0
	}
	t.consume()
	return next(gfmAutolinkLiteralDomainInside)
}

func gfmAutolinkLiteralDomainAfter(t *tokenizer) state {
	ok := t.ts.markerB != '_' && t.ts.marker != '_' && t.ts.seen
	t.ts.seen = false
	t.ts.marker = 0
	t.ts.markerB = 0
	if !ok {
		return stateNok
	}
	return retry(gfmAutolinkLiteralPathInside)
}

// gfmAutolinkLiteralPathInside eats the path. size counts opening
// parentheses and sizeB the closing ones seen so far, so a trailing `)`
// stays in the link only when it closes one.
func gfmAutolinkLiteralPathInside(t *tokenizer) state {
	switch t.current {
	case '(':
		t.ts.size++
		t.consume()
		return next(gfmAutolinkLiteralPathInside)
	case '!', '"', '&', '\'', ')', '*', ',', '.', ':', ';', '<', '?', ']', '_', '~':
		ok := gfmAutolinkLiteralPathAfter
		if t.current == ')' && t.ts.sizeB < t.ts.size {
			ok = gfmAutolinkLiteralPathAtPunctuation
		}
		t.check(next(ok), next(gfmAutolinkLiteralPathAtPunctuation))
		return retry(gfmAutolinkLiteralTrail)
	case eof:
		return retry(gfmAutolinkLiteralPathAfter)
	}
	if !isUTF8Continuation(t.current) && classifyAfter(t.parse.source, t.point.Offset) == charWhitespace {
		return retry(gfmAutolinkLiteralPathAfter)
	}
	t.consume()
	return next(gfmAutolinkLiteralPathInside)
}

func gfmAutolinkLiteralPathAtPunctuation(t *tokenizer) state {
	if t.current == ')' {
		t.ts.sizeB++
	}
	t.consume()
	return next(gfmAutolinkLiteralPathInside)
}

func gfmAutolinkLiteralPathAfter(t *tokenizer) state {
	t.ts.size = 0
	t.ts.sizeB = 0
	return stateOk
}

// gfmAutolinkLiteralTrail checks whether what follows is trailing
// punctuation: it is ok when only punctuation comes before whitespace or
// the end.
func gfmAutolinkLiteralTrail(t *tokenizer) state {
	switch t.current {
	case '!', '"', '\'', ')', '*', ',', '.', ':', ';', '?', '_', '~':
		t.consume()
		return next(gfmAutolinkLiteralTrail)
	case '&':
		t.consume()
		return next(gfmAutolinkLiteralTrailCharRefStart)
	case '<', eof:
		return stateOk
	case ']':
		t.consume()
		return next(gfmAutolinkLiteralTrailBracketAfter)
	}
	if !isUTF8Continuation(t.current) && classifyAfter(t.parse.source, t.point.Offset) == charWhitespace {
		return stateOk
	}
	return stateNok
}

func gfmAutolinkLiteralTrailBracketAfter(t *tokenizer) state {
	switch t.current {
	case eof, '\t', '\n', ' ', '(', '[':
		return stateOk
	default:
		return retry(gfmAutolinkLiteralTrail)
	}
}

func gfmAutolinkLiteralTrailCharRefStart(t *tokenizer) state {
	if isASCIIAlpha(t.current) {
		return retry(gfmAutolinkLiteralTrailCharRefInside)
	}
	return stateNok
}

func gfmAutolinkLiteralTrailCharRefInside(t *tokenizer) state {
	switch {
	case isASCIIAlpha(t.current):
		t.consume()
		return next(gfmAutolinkLiteralTrailCharRefInside)
	case t.current == ';':
		t.consume()
		return next(gfmAutolinkLiteralTrail)
	default:
		return stateNok
	}
}

// resolveGFMAutolinkLiteral splits email addresses out of data that is
// not already inside a link.
func resolveGFMAutolinkLiteral(t *tokenizer) {
	source := t.parse.source
	links := 0

	for index, ev := range t.events {
		if ev.Token == event.TokLink {
			if ev.Kind == event.Enter {
				links++
			} else {
				links--
			}
			continue
		}
		if ev.Kind != event.Exit || ev.Token != event.TokData || links > 0 {
			continue
		}

		point := t.events[index-1].Point
		base := point.Offset
		bytes := source[base:ev.Point.Offset]
		var replace []event.Event
		minimum := 0

		for at := 0; at < len(bytes); at++ {
			if bytes[at] != '@' {
				continue
			}
			start, ok := peekEmailAtext(bytes, minimum, at)
			if !ok {
				continue
			}
			start, token := peekEmailProtocol(bytes, minimum, start)
			end, ok := peekEmailDomain(bytes, at+1, token == event.TokGFMAutolinkLiteralXmpp)
			if !ok {
				continue
			}

			if start != minimum {
				replace = append(replace, event.Event{Kind: event.Enter, Token: event.TokData, Point: point})
				point = pointAt(source, point, base+start)
				replace = append(replace, event.Event{Kind: event.Exit, Token: event.TokData, Point: point})
			}
			replace = append(replace, event.Event{Kind: event.Enter, Token: token, Point: point})
			point = pointAt(source, point, base+end)
			replace = append(replace, event.Event{Kind: event.Exit, Token: token, Point: point})
			minimum = end
			at = end - 1
		}

		if minimum != 0 && minimum < len(bytes) {
			replace = append(replace,
				event.Event{Kind: event.Enter, Token: event.TokData, Point: point},
				event.Event{Kind: event.Exit, Token: event.TokData, Point: ev.Point},
			)
		}
		if len(replace) > 0 {
			t.edits.add(index-1, 2, replace)
		}
	}

	t.edits.consume(&t.events)
}

// peekEmailAtext walks back from the `@` at end over the local part.
func peekEmailAtext(bytes []byte, minimum, end int) (int, bool) {
	index := end
	for index > minimum && isEmailAtext(bytes[index-1]) {
		index--
	}
	if index == end || (index > minimum && bytes[index-1] == '/') {
		return 0, false
	}
	return index, true
}

// peekEmailProtocol extends start back over a `mailto:` or `xmpp:`
// prefix.
func peekEmailProtocol(bytes []byte, minimum, start int) (int, event.TokenKind) {
	if start > minimum && bytes[start-1] == ':' {
		index := start - 1
		for index > minimum && isASCIIAlphanumeric(int(bytes[index-1])) {
			index--
		}
		switch strings.ToLower(string(bytes[index : start-1])) {
		case "mailto":
			return index, event.TokGFMAutolinkLiteralMailto
		case "xmpp":
			return index, event.TokGFMAutolinkLiteralXmpp
		}
	}
	return start, event.TokGFMAutolinkLiteralEmail
}

// peekEmailDomain walks forward over the domain after `@`. The domain
// needs a dot and must end in a letter or a dot; xmpp also takes a
// resource after `/`.
func peekEmailDomain(bytes []byte, start int, xmpp bool) (int, bool) {
	index := start
	dot := false

loop:
	for index < len(bytes) {
		c := bytes[index]
		switch {
		case c == '-' || c == '_' || isASCIIAlphanumeric(int(c)):
		case c == '/' && xmpp:
		case c == '.' && index+1 < len(bytes) && isASCIIAlphanumeric(int(bytes[index+1])):
			dot = true
		default:
			break loop
		}
		index++
	}

	if index > start && dot && (bytes[index-1] == '.' || isASCIIAlpha(int(bytes[index-1]))) {
		return index, true
	}
	return 0, false
}

func isEmailAtext(c byte) bool {
	return c == '+' || c == '-' || c == '.' || c == '_' || isASCIIAlphanumeric(int(c))
}

func isUTF8Continuation(c int) bool {
	return c >= 0x80 && c <= 0xBF
}
