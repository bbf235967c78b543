package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// Raw text is code (`` `a` ``) and math (`$a$`) in text. The closing
// sequence must be exactly as long as the opening one.

func rawTextStart(t *tokenizer) state {
	c := t.parse.options.Constructs
	if !(c.CodeText && t.current == '`') && !(c.MathText && t.current == '$') {
		return stateNok
	}
	// The sequence must not continue one before it, unless that one was
	// escaped.
	escaped := len(t.events) > 0 && t.events[len(t.events)-1].Token == event.TokCharacterEscape
	if t.previous == t.current && !escaped {
		return stateNok
	}

	if t.current == '`' {
		t.ts.token1 = event.TokCodeText
		t.ts.token2 = event.TokCodeTextSequence
		t.ts.token3 = event.TokCodeTextData
	} else {
		t.ts.token1 = event.TokMathText
		t.ts.token2 = event.TokMathTextSequence
		t.ts.token3 = event.TokMathTextData
	}
	t.ts.marker = byte(t.current)
	t.enter(t.ts.token1)
	t.enter(t.ts.token2)
	return retry(rawTextSequenceOpen)
}

func rawTextSequenceOpen(t *tokenizer) state {
	if t.current == int(t.ts.marker) {
		t.ts.size++
		t.consume()
		return next(rawTextSequenceOpen)
	}
	if t.ts.marker == '$' && t.ts.size == 1 && !t.parse.options.MathTextSingleDollar {
		rawTextReset(t)
		return stateNok
	}
	t.exit(t.ts.token2)
	return retry(rawTextBetween)
}

func rawTextBetween(t *tokenizer) state {
	switch t.current {
	case eof:
		rawTextReset(t)
		return stateNok
	case '\n':
		lineEnding(t)
		return next(rawTextBetween)
	case int(t.ts.marker):
		t.enter(t.ts.token2)
		return retry(rawTextSequenceClose)
	default:
		t.enter(t.ts.token3)
		return retry(rawTextData)
	}
}

func rawTextData(t *tokenizer) state {
	if t.current == eof || t.current == '\n' || t.current == int(t.ts.marker) {
		t.exit(t.ts.token3)
		return retry(rawTextBetween)
	}
	t.consume()
	return next(rawTextData)
}

func rawTextSequenceClose(t *tokenizer) state {
	if t.current == int(t.ts.marker) {
		t.ts.sizeB++
		t.consume()
		return next(rawTextSequenceClose)
	}

	t.exit(t.ts.token2)
	if t.ts.size == t.ts.sizeB {
		t.exit(t.ts.token1)
		rawTextReset(t)
		return stateOk
	}

	// A sequence of another size is part of the content.
	n := len(t.events)
	t.events[n-2].Token = t.ts.token3
	t.events[n-1].Token = t.ts.token3
	t.ts.sizeB = 0
	return retry(rawTextBetween)
}

func rawTextReset(t *tokenizer) {
	t.ts.marker = 0
	t.ts.size = 0
	t.ts.sizeB = 0
	t.ts.token1 = event.TokData
	t.ts.token2 = event.TokData
	t.ts.token3 = event.TokData
}
