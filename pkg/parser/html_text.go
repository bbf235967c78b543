package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// HTML text is a tag, comment, instruction, declaration or CDATA section
// inside a paragraph. It may span lines.

func htmlTextStart(t *tokenizer) state {
	if !t.parse.options.Constructs.HTMLText || t.current != '<' {
		return stateNok
	}
	t.enter(event.TokHTMLText)
	t.enter(event.TokHTMLTextData)
	t.consume()
	return next(htmlTextOpen)
}

func htmlTextOpen(t *tokenizer) state {
	switch {
	case t.current == '!':
		t.consume()
		return next(htmlTextDeclarationOpen)
	case t.current == '/':
		t.consume()
		return next(htmlTextTagCloseStart)
	case t.current == '?':
		t.consume()
		return next(htmlTextInstruction)
	case isASCIIAlpha(t.current):
		t.consume()
		return next(htmlTextTagOpen)
	default:
		return stateNok
	}
}

func htmlTextDeclarationOpen(t *tokenizer) state {
	switch {
	case t.current == '-':
		t.consume()
		return next(htmlTextCommentOpenInside)
	case t.current == '[':
		t.consume()
		return next(htmlTextCDATAOpenInside)
	case isASCIIAlpha(t.current):
		t.consume()
		return next(htmlTextDeclaration)
	default:
		return stateNok
	}
}

func htmlTextCommentOpenInside(t *tokenizer) state {
	if t.current != '-' {
		return stateNok
	}
	t.consume()
	return next(htmlTextCommentEnd)
}

func htmlTextComment(t *tokenizer) state {
	switch t.current {
	case eof:
		return stateNok
	case '\n':
		t.ts.returnState = htmlTextComment
		return retry(htmlTextLineEndingBefore)
	case '-':
		t.consume()
		return next(htmlTextCommentClose)
	default:
		t.consume()
		return next(htmlTextComment)
	}
}

func htmlTextCommentClose(t *tokenizer) state {
	if t.current == '-' {
		t.consume()
		return next(htmlTextCommentEnd)
	}
	return retry(htmlTextComment)
}

func htmlTextCommentEnd(t *tokenizer) state {
	switch t.current {
	case '>':
		return retry(htmlTextEnd)
	case '-':
		return retry(htmlTextCommentClose)
	default:
		return retry(htmlTextComment)
	}
}

func htmlTextCDATAOpenInside(t *tokenizer) state {
	if t.current != int(htmlCDATAPrefix[t.ts.size]) {
		t.ts.size = 0
		return stateNok
	}
	t.ts.size++
	t.consume()
	if t.ts.size < len(htmlCDATAPrefix) {
		return next(htmlTextCDATAOpenInside)
	}
	t.ts.size = 0
	return next(htmlTextCDATA)
}

func htmlTextCDATA(t *tokenizer) state {
	switch t.current {
	case eof:
		return stateNok
	case '\n':
		t.ts.returnState = htmlTextCDATA
		return retry(htmlTextLineEndingBefore)
	case ']':
		t.consume()
		return next(htmlTextCDATAClose)
	default:
		t.consume()
		return next(htmlTextCDATA)
	}
}

func htmlTextCDATAClose(t *tokenizer) state {
	if t.current == ']' {
		t.consume()
		return next(htmlTextCDATAEnd)
	}
	return retry(htmlTextCDATA)
}

func htmlTextCDATAEnd(t *tokenizer) state {
	switch t.current {
	case '>':
		return retry(htmlTextEnd)
	case ']':
		return retry(htmlTextCDATAClose)
	default:
		return retry(htmlTextCDATA)
	}
}

func htmlTextDeclaration(t *tokenizer) state {
	switch t.current {
	case eof, '>':
		return retry(htmlTextEnd)
	case '\n':
		t.ts.returnState = htmlTextDeclaration
		return retry(htmlTextLineEndingBefore)
	default:
		t.consume()
		return next(htmlTextDeclaration)
	}
}

func htmlTextInstruction(t *tokenizer) state {
	switch t.current {
	case eof:
		return stateNok
	case '\n':
		t.ts.returnState = htmlTextInstruction
		return retry(htmlTextLineEndingBefore)
	case '?':
		t.consume()
		return next(htmlTextInstructionClose)
	default:
		t.consume()
		return next(htmlTextInstruction)
	}
}

func htmlTextInstructionClose(t *tokenizer) state {
	if t.current == '>' {
		return retry(htmlTextEnd)
	}
	return retry(htmlTextInstruction)
}

func htmlTextTagCloseStart(t *tokenizer) state {
	if !isASCIIAlpha(t.current) {
		return stateNok
	}
	t.consume()
	return next(htmlTextTagClose)
}

func htmlTextTagClose(t *tokenizer) state {
	if t.current == '-' || isASCIIAlphanumeric(t.current) {
		t.consume()
		return next(htmlTextTagClose)
	}
	return retry(htmlTextTagCloseBetween)
}

func htmlTextTagCloseBetween(t *tokenizer) state {
	switch t.current {
	case '\n':
		t.ts.returnState = htmlTextTagCloseBetween
		return retry(htmlTextLineEndingBefore)
	case '\t', ' ':
		t.consume()
		return next(htmlTextTagCloseBetween)
	default:
		return retry(htmlTextEnd)
	}
}

func htmlTextTagOpen(t *tokenizer) state {
	switch {
	case t.current == '-' || isASCIIAlphanumeric(t.current):
		t.consume()
		return next(htmlTextTagOpen)
	case t.current == '\t' || t.current == '\n' || t.current == ' ' || t.current == '/' || t.current == '>':
		return retry(htmlTextTagOpenBetween)
	default:
		return stateNok
	}
}

func htmlTextTagOpenBetween(t *tokenizer) state {
	switch {
	case t.current == '\n':
		t.ts.returnState = htmlTextTagOpenBetween
		return retry(htmlTextLineEndingBefore)
	case t.current == '\t' || t.current == ' ':
		t.consume()
		return next(htmlTextTagOpenBetween)
	case t.current == '/':
		t.consume()
		return next(htmlTextEnd)
	case t.current == ':' || t.current == '_' || isASCIIAlpha(t.current):
		t.consume()
		return next(htmlTextTagOpenAttributeName)
	default:
		return retry(htmlTextEnd)
	}
}

func htmlTextTagOpenAttributeName(t *tokenizer) state {
	if isAttributeNameByte(t.current) {
		t.consume()
		return next(htmlTextTagOpenAttributeName)
	}
	return retry(htmlTextTagOpenAttributeNameAfter)
}

func htmlTextTagOpenAttributeNameAfter(t *tokenizer) state {
	switch t.current {
	case '\n':
		t.ts.returnState = htmlTextTagOpenAttributeNameAfter
		return retry(htmlTextLineEndingBefore)
	case '\t', ' ':
		t.consume()
		return next(htmlTextTagOpenAttributeNameAfter)
	case '=':
		t.consume()
		return next(htmlTextTagOpenAttributeValueBefore)
	default:
		return retry(htmlTextTagOpenBetween)
	}
}

func htmlTextTagOpenAttributeValueBefore(t *tokenizer) state {
	switch t.current {
	case eof, '<', '=', '>', '`':
		return stateNok
	case '\n':
		t.ts.returnState = htmlTextTagOpenAttributeValueBefore
		return retry(htmlTextLineEndingBefore)
	case '\t', ' ':
		t.consume()
		return next(htmlTextTagOpenAttributeValueBefore)
	case '"', '\'':
		t.ts.marker = byte(t.current)
		t.consume()
		return next(htmlTextTagOpenAttributeValueQuoted)
	default:
		t.consume()
		return next(htmlTextTagOpenAttributeValueUnquoted)
	}
}

func htmlTextTagOpenAttributeValueQuoted(t *tokenizer) state {
	switch t.current {
	case eof:
		t.ts.marker = 0
		return stateNok
	case '\n':
		t.ts.returnState = htmlTextTagOpenAttributeValueQuoted
		return retry(htmlTextLineEndingBefore)
	case int(t.ts.marker):
		t.ts.marker = 0
		t.consume()
		return next(htmlTextTagOpenAttributeValueQuotedAfter)
	default:
		t.consume()
		return next(htmlTextTagOpenAttributeValueQuoted)
	}
}

func htmlTextTagOpenAttributeValueUnquoted(t *tokenizer) state {
	switch t.current {
	case eof, '"', '\'', '<', '=', '`':
		return stateNok
	case '\t', '\n', ' ', '/', '>':
		return retry(htmlTextTagOpenBetween)
	default:
		t.consume()
		return next(htmlTextTagOpenAttributeValueUnquoted)
	}
}

func htmlTextTagOpenAttributeValueQuotedAfter(t *tokenizer) state {
	switch t.current {
	case '\t', '\n', ' ', '>', '/':
		return retry(htmlTextTagOpenBetween)
	default:
		return stateNok
	}
}

func htmlTextEnd(t *tokenizer) state {
	if t.current != '>' {
		return stateNok
	}
	t.consume()
	t.exit(event.TokHTMLTextData)
	t.exit(event.TokHTMLText)
	return stateOk
}

// htmlTextLineEndingBefore ends the data before a line ending. Leading
// whitespace on the next line is not part of the data either.
func htmlTextLineEndingBefore(t *tokenizer) state {
	t.exit(event.TokHTMLTextData)
	lineEnding(t)
	return next(htmlTextLineEndingAfter)
}

func htmlTextLineEndingAfter(t *tokenizer) state {
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(htmlTextLineEndingAfterPrefix), stateNok)
		return retry(spaceOrTab(t))
	}
	return retry(htmlTextLineEndingAfterPrefix)
}

func htmlTextLineEndingAfterPrefix(t *tokenizer) state {
	t.enter(event.TokHTMLTextData)
	fn := t.ts.returnState
	t.ts.returnState = nil
	return retry(fn)
}
