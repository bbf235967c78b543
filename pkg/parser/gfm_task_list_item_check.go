package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// gfmTaskListItemCheckStart matches `[ ]` or `[x]` at the very start of
// the first paragraph in a list item. Whitespace and more text must follow.
func gfmTaskListItemCheckStart(t *tokenizer) state {
	if !t.parse.options.Constructs.GFMTaskListItem || !t.ts.documentAtFirstParagraphOfListItem ||
		t.current != '[' || t.previous != eof {
		return stateNok
	}
	t.enter(event.TokGFMTaskListItemCheck)
	t.enter(event.TokGFMTaskListItemMarker)
	t.consume()
	t.exit(event.TokGFMTaskListItemMarker)
	return next(gfmTaskListItemCheckInside)
}

func gfmTaskListItemCheckInside(t *tokenizer) state {
	switch t.current {
	case '\t', '\n', ' ':
		t.enter(event.TokGFMTaskListItemValueUnchecked)
		t.consume()
		t.exit(event.TokGFMTaskListItemValueUnchecked)
		return next(gfmTaskListItemCheckClose)
	case 'X', 'x':
		t.enter(event.TokGFMTaskListItemValueChecked)
		t.consume()
		t.exit(event.TokGFMTaskListItemValueChecked)
		return next(gfmTaskListItemCheckClose)
	default:
		return stateNok
	}
}

func gfmTaskListItemCheckClose(t *tokenizer) state {
	if t.current != ']' {
		return stateNok
	}
	t.enter(event.TokGFMTaskListItemMarker)
	t.consume()
	t.exit(event.TokGFMTaskListItemMarker)
	t.exit(event.TokGFMTaskListItemCheck)
	return next(gfmTaskListItemCheckAfter)
}

func gfmTaskListItemCheckAfter(t *tokenizer) state {
	switch t.current {
	case '\n':
		return stateOk
	case '\t', ' ':
		t.check(stateOk, stateNok)
		t.attempt(next(gfmTaskListItemCheckAfterSpaceOrTab), stateNok)
		return retry(spaceOrTab(t))
	default:
		return stateNok
	}
}

func gfmTaskListItemCheckAfterSpaceOrTab(t *tokenizer) state {
	if t.current == eof {
		return stateNok
	}
	return stateOk
}
