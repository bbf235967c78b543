package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

func codeIndentedStart(t *tokenizer) state {
	// Indented code cannot interrupt a paragraph.
	if t.interrupt || !t.parse.options.Constructs.CodeIndented || (t.current != '\t' && t.current != ' ') {
		return stateNok
	}
	t.enter(event.TokCodeIndented)
	t.attempt(next(codeIndentedAtBreak), stateNok)
	return retry(spaceOrTabMinMax(t, tabSize, tabSize))
}

func codeIndentedAtBreak(t *tokenizer) state {
	switch t.current {
	case eof:
		return retry(codeIndentedAfter)
	case '\n':
		t.attempt(next(codeIndentedAtBreak), next(codeIndentedAfter))
		return retry(codeIndentedFurtherStart)
	default:
		t.enter(event.TokCodeFlowChunk)
		return retry(codeIndentedInside)
	}
}

func codeIndentedInside(t *tokenizer) state {
	if t.current == eof || t.current == '\n' {
		t.exit(event.TokCodeFlowChunk)
		return retry(codeIndentedAtBreak)
	}
	t.consume()
	return next(codeIndentedInside)
}

func codeIndentedAfter(t *tokenizer) state {
	t.exit(event.TokCodeIndented)
	t.interrupt = false
	return stateOk
}

// codeIndentedFurtherStart checks whether the code continues after a line
// ending: blank lines may sit in between, then a line indented by at least
// a tab size.
func codeIndentedFurtherStart(t *tokenizer) state {
	if t.lazy || t.pierce {
		return stateNok
	}
	if t.current == '\n' {
		lineEnding(t)
		return next(codeIndentedFurtherStart)
	}
	t.attempt(stateOk, next(codeIndentedFurtherBegin))
	return retry(spaceOrTabMinMax(t, tabSize, tabSize))
}

func codeIndentedFurtherBegin(t *tokenizer) state {
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(codeIndentedFurtherAfter), stateNok)
		return retry(spaceOrTab(t))
	}
	return stateNok
}

func codeIndentedFurtherAfter(t *tokenizer) state {
	if t.current == '\n' {
		return retry(codeIndentedFurtherStart)
	}
	return stateNok
}
