package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

func thematicBreakStart(t *tokenizer) state {
	if !t.parse.options.Constructs.ThematicBreak {
		return stateNok
	}
	t.enter(event.TokThematicBreak)
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(thematicBreakBefore), stateNok)
		return retry(spaceOrTabMinMax(t, 0, indentMax(t)))
	}
	return retry(thematicBreakBefore)
}

func thematicBreakBefore(t *tokenizer) state {
	switch t.current {
	case '*', '-', '_':
		t.ts.marker = byte(t.current)
		return retry(thematicBreakAtBreak)
	default:
		return stateNok
	}
}

func thematicBreakAtBreak(t *tokenizer) state {
	if t.current == int(t.ts.marker) {
		t.enter(event.TokThematicBreakSequence)
		return retry(thematicBreakSequence)
	}

	ok := t.ts.size >= thematicBreakMarkerCountMin && (t.current == eof || t.current == '\n')
	t.ts.marker = 0
	t.ts.size = 0
	if !ok {
		return stateNok
	}
	t.exit(event.TokThematicBreak)
	t.interrupt = false
	return stateOk
}

func thematicBreakSequence(t *tokenizer) state {
	if t.current == int(t.ts.marker) {
		t.consume()
		t.ts.size++
		return next(thematicBreakSequence)
	}
	t.exit(event.TokThematicBreakSequence)
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(thematicBreakAtBreak), stateNok)
		return retry(spaceOrTab(t))
	}
	return retry(thematicBreakAtBreak)
}
