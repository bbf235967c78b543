package parser

import (
	"slices"
	"strings"

	"github.com/yaklabco/gomdparse/pkg/event"
)

// HTML flow kinds, stored in ts.marker while a block is open. Each kind
// has its own end condition.
const (
	htmlFlowRaw         byte = 1 + iota // <pre>, <script>, <style>, <textarea>
	htmlFlowComment                     // <!--
	htmlFlowInstruction                 // <?
	htmlFlowDeclaration                 // <!A
	htmlFlowCDATA                       // <![CDATA[
	htmlFlowBasic                       // a known block name
	htmlFlowComplete                    // any complete tag alone on its line
)

func htmlFlowStart(t *tokenizer) state {
	if !t.parse.options.Constructs.HTMLFlow {
		return stateNok
	}
	t.enter(event.TokHTMLFlow)
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(htmlFlowBefore), stateNok)
		return retry(spaceOrTabWithOptions(t, spaceOrTabOptions{
			token: event.TokHTMLFlowData,
			max:   indentMax(t),
		}))
	}
	return retry(htmlFlowBefore)
}

func htmlFlowBefore(t *tokenizer) state {
	if t.current != '<' {
		return stateNok
	}
	t.enter(event.TokHTMLFlowData)
	t.consume()
	return next(htmlFlowOpen)
}

func htmlFlowOpen(t *tokenizer) state {
	switch {
	case t.current == '!':
		t.consume()
		return next(htmlFlowDeclarationOpen)
	case t.current == '/':
		t.consume()
		t.ts.seen = true
		t.ts.start = t.point.Offset
		return next(htmlFlowTagCloseStart)
	case t.current == '?':
		t.ts.marker = htmlFlowInstruction
		t.consume()
		t.concrete = true
		return next(htmlFlowContinuationDeclarationInside)
	case isASCIIAlpha(t.current):
		t.ts.start = t.point.Offset
		return retry(htmlFlowTagName)
	default:
		return stateNok
	}
}

func htmlFlowDeclarationOpen(t *tokenizer) state {
	switch {
	case t.current == '-':
		t.consume()
		t.ts.marker = htmlFlowComment
		return next(htmlFlowCommentOpenInside)
	case isASCIIAlpha(t.current):
		t.consume()
		t.ts.marker = htmlFlowDeclaration
		t.concrete = true
		return next(htmlFlowContinuationDeclarationInside)
	case t.current == '[':
		t.consume()
		t.ts.marker = htmlFlowCDATA
		return next(htmlFlowCDATAOpenInside)
	default:
		return stateNok
	}
}

func htmlFlowCommentOpenInside(t *tokenizer) state {
	if t.current != '-' {
		t.ts.marker = 0
		return stateNok
	}
	t.consume()
	t.concrete = true
	return next(htmlFlowContinuationDeclarationInside)
}

func htmlFlowCDATAOpenInside(t *tokenizer) state {
	if t.current != int(htmlCDATAPrefix[t.ts.size]) {
		t.ts.marker = 0
		t.ts.size = 0
		return stateNok
	}
	t.ts.size++
	t.consume()
	if t.ts.size < len(htmlCDATAPrefix) {
		return next(htmlFlowCDATAOpenInside)
	}
	t.ts.size = 0
	t.concrete = true
	return next(htmlFlowContinuation)
}

func htmlFlowTagCloseStart(t *tokenizer) state {
	if !isASCIIAlpha(t.current) {
		t.ts.seen = false
		t.ts.start = 0
		return stateNok
	}
	t.consume()
	return next(htmlFlowTagName)
}

func htmlFlowTagName(t *tokenizer) state {
	switch {
	case t.current == eof || t.current == '\t' || t.current == '\n' || t.current == ' ' ||
		t.current == '/' || t.current == '>':
		closing := t.ts.seen
		slash := t.current == '/'
		name := strings.ToLower(strings.TrimSpace(string(t.parse.source[t.ts.start:t.point.Offset])))
		t.ts.seen = false
		t.ts.start = 0

		switch {
		case !slash && !closing && slices.Contains(htmlRawNames, name):
			t.ts.marker = htmlFlowRaw
			t.concrete = true
			return retry(htmlFlowContinuation)
		case slices.Contains(htmlBlockNames, name):
			t.ts.marker = htmlFlowBasic
			if slash {
				t.consume()
				return next(htmlFlowBasicSelfClosing)
			}
			t.concrete = true
			return retry(htmlFlowContinuation)
		}

		// Kind 7 cannot interrupt a paragraph.
		if t.interrupt && !t.lazy {
			return stateNok
		}
		t.ts.marker = htmlFlowComplete
		if closing {
			return retry(htmlFlowCompleteClosingTagAfter)
		}
		return retry(htmlFlowCompleteAttributeNameBefore)
	case t.current == '-' || isASCIIAlphanumeric(t.current):
		t.consume()
		return next(htmlFlowTagName)
	default:
		t.ts.seen = false
		return stateNok
	}
}

func htmlFlowBasicSelfClosing(t *tokenizer) state {
	if t.current != '>' {
		t.ts.marker = 0
		return stateNok
	}
	t.consume()
	t.concrete = true
	return next(htmlFlowContinuation)
}

func htmlFlowCompleteClosingTagAfter(t *tokenizer) state {
	if t.current == '\t' || t.current == ' ' {
		t.consume()
		return next(htmlFlowCompleteClosingTagAfter)
	}
	return retry(htmlFlowCompleteEnd)
}

func htmlFlowCompleteAttributeNameBefore(t *tokenizer) state {
	switch {
	case t.current == '\t' || t.current == ' ':
		t.consume()
		return next(htmlFlowCompleteAttributeNameBefore)
	case t.current == '/':
		t.consume()
		return next(htmlFlowCompleteEnd)
	case t.current == ':' || t.current == '_' || isASCIIAlphanumeric(t.current):
		t.consume()
		return next(htmlFlowCompleteAttributeName)
	default:
		return retry(htmlFlowCompleteEnd)
	}
}

func htmlFlowCompleteAttributeName(t *tokenizer) state {
	if isAttributeNameByte(t.current) {
		t.consume()
		return next(htmlFlowCompleteAttributeName)
	}
	return retry(htmlFlowCompleteAttributeNameAfter)
}

func htmlFlowCompleteAttributeNameAfter(t *tokenizer) state {
	switch t.current {
	case '\t', ' ':
		t.consume()
		return next(htmlFlowCompleteAttributeNameAfter)
	case '=':
		t.consume()
		return next(htmlFlowCompleteAttributeValueBefore)
	default:
		return retry(htmlFlowCompleteAttributeNameBefore)
	}
}

func htmlFlowCompleteAttributeValueBefore(t *tokenizer) state {
	switch t.current {
	case eof, '<', '=', '>', '`':
		t.ts.marker = 0
		return stateNok
	case '\t', ' ':
		t.consume()
		return next(htmlFlowCompleteAttributeValueBefore)
	case '"', '\'':
		t.ts.markerB = byte(t.current)
		t.consume()
		return next(htmlFlowCompleteAttributeValueQuoted)
	default:
		return retry(htmlFlowCompleteAttributeValueUnquoted)
	}
}

func htmlFlowCompleteAttributeValueQuoted(t *tokenizer) state {
	switch {
	case t.current == eof || t.current == '\n':
		t.ts.marker = 0
		t.ts.markerB = 0
		return stateNok
	case t.current == int(t.ts.markerB):
		t.ts.markerB = 0
		t.consume()
		return next(htmlFlowCompleteAttributeValueQuotedAfter)
	default:
		t.consume()
		return next(htmlFlowCompleteAttributeValueQuoted)
	}
}

func htmlFlowCompleteAttributeValueUnquoted(t *tokenizer) state {
	switch t.current {
	case eof, '\t', '\n', ' ', '"', '\'', '/', '<', '=', '>', '`':
		return retry(htmlFlowCompleteAttributeNameAfter)
	default:
		t.consume()
		return next(htmlFlowCompleteAttributeValueUnquoted)
	}
}

func htmlFlowCompleteAttributeValueQuotedAfter(t *tokenizer) state {
	switch t.current {
	case '\t', ' ', '/', '>':
		return retry(htmlFlowCompleteAttributeNameBefore)
	default:
		t.ts.marker = 0
		return stateNok
	}
}

func htmlFlowCompleteEnd(t *tokenizer) state {
	if t.current != '>' {
		t.ts.marker = 0
		return stateNok
	}
	t.consume()
	return next(htmlFlowCompleteAfter)
}

func htmlFlowCompleteAfter(t *tokenizer) state {
	switch t.current {
	case eof, '\n':
		t.concrete = true
		return retry(htmlFlowContinuation)
	case '\t', ' ':
		t.consume()
		return next(htmlFlowCompleteAfter)
	default:
		t.ts.marker = 0
		return stateNok
	}
}

func htmlFlowContinuation(t *tokenizer) state {
	kind := t.ts.marker
	switch {
	case t.current == '\n' && (kind == htmlFlowBasic || kind == htmlFlowComplete):
		// Kinds 6 and 7 end at a blank line.
		t.exit(event.TokHTMLFlowData)
		t.check(next(htmlFlowContinuationAfter), next(htmlFlowContinuationStart))
		return retry(htmlFlowBlankLineBefore)
	case t.current == eof || t.current == '\n':
		t.exit(event.TokHTMLFlowData)
		return retry(htmlFlowContinuationStart)
	case t.current == '-' && kind == htmlFlowComment:
		t.consume()
		return next(htmlFlowContinuationCommentInside)
	case t.current == '<' && kind == htmlFlowRaw:
		t.consume()
		return next(htmlFlowContinuationRawTagOpen)
	case t.current == '>' && kind == htmlFlowDeclaration:
		t.consume()
		return next(htmlFlowContinuationClose)
	case t.current == '?' && kind == htmlFlowInstruction:
		t.consume()
		return next(htmlFlowContinuationDeclarationInside)
	case t.current == ']' && kind == htmlFlowCDATA:
		t.consume()
		return next(htmlFlowContinuationCDATAInside)
	default:
		t.consume()
		return next(htmlFlowContinuation)
	}
}

func htmlFlowContinuationStart(t *tokenizer) state {
	t.check(next(htmlFlowContinuationStartNonLazy), next(htmlFlowContinuationAfter))
	return retry(nonLazyContinuationStart)
}

func htmlFlowContinuationStartNonLazy(t *tokenizer) state {
	lineEnding(t)
	return next(htmlFlowContinuationBefore)
}

func htmlFlowContinuationBefore(t *tokenizer) state {
	if t.current == eof || t.current == '\n' {
		return retry(htmlFlowContinuationStart)
	}
	t.enter(event.TokHTMLFlowData)
	return retry(htmlFlowContinuation)
}

func htmlFlowContinuationCommentInside(t *tokenizer) state {
	if t.current == '-' {
		t.consume()
		return next(htmlFlowContinuationDeclarationInside)
	}
	return retry(htmlFlowContinuation)
}

func htmlFlowContinuationRawTagOpen(t *tokenizer) state {
	if t.current == '/' {
		t.consume()
		t.ts.start = t.point.Offset
		return next(htmlFlowContinuationRawEndTag)
	}
	return retry(htmlFlowContinuation)
}

func htmlFlowContinuationRawEndTag(t *tokenizer) state {
	switch {
	case t.current == '>':
		name := strings.ToLower(string(t.parse.source[t.ts.start:t.point.Offset]))
		t.ts.start = 0
		if slices.Contains(htmlRawNames, name) {
			t.consume()
			return next(htmlFlowContinuationClose)
		}
		return retry(htmlFlowContinuation)
	case isASCIIAlpha(t.current) && t.point.Offset-t.ts.start < htmlRawSizeMax:
		t.consume()
		return next(htmlFlowContinuationRawEndTag)
	default:
		t.ts.start = 0
		return retry(htmlFlowContinuation)
	}
}

func htmlFlowContinuationCDATAInside(t *tokenizer) state {
	if t.current == ']' {
		t.consume()
		return next(htmlFlowContinuationDeclarationInside)
	}
	return retry(htmlFlowContinuation)
}

func htmlFlowContinuationDeclarationInside(t *tokenizer) state {
	switch {
	case t.current == '>':
		t.consume()
		return next(htmlFlowContinuationClose)
	case t.current == '-' && t.ts.marker == htmlFlowComment:
		t.consume()
		return next(htmlFlowContinuationDeclarationInside)
	default:
		return retry(htmlFlowContinuation)
	}
}

func htmlFlowContinuationClose(t *tokenizer) state {
	if t.current == eof || t.current == '\n' {
		t.exit(event.TokHTMLFlowData)
		return retry(htmlFlowContinuationAfter)
	}
	t.consume()
	return next(htmlFlowContinuationClose)
}

func htmlFlowContinuationAfter(t *tokenizer) state {
	t.exit(event.TokHTMLFlow)
	t.ts.marker = 0
	t.interrupt = false
	t.concrete = false
	return stateOk
}

func htmlFlowBlankLineBefore(t *tokenizer) state {
	lineEnding(t)
	return next(blankLineStart)
}

func isASCIIAlpha(c int) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isASCIIAlphanumeric(c int) bool {
	return isASCIIAlpha(c) || isDigit(c)
}

func isAttributeNameByte(c int) bool {
	return c == '-' || c == '.' || c == ':' || c == '_' || isASCIIAlphanumeric(c)
}
