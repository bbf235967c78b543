package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

type spaceOrTabOptions struct {
	token   event.TokenKind
	min     int
	max     int
	content event.Content
	connect bool
}

// spaceOrTab matches one or more spaces or tabs.
func spaceOrTab(t *tokenizer) stateFn {
	return spaceOrTabMinMax(t, 1, unbounded)
}

// spaceOrTabMinMax matches between minSize and maxSize spaces or tabs.
func spaceOrTabMinMax(t *tokenizer, minSize, maxSize int) stateFn {
	return spaceOrTabWithOptions(t, spaceOrTabOptions{token: event.TokSpaceOrTab, min: minSize, max: maxSize})
}

func spaceOrTabWithOptions(t *tokenizer, opts spaceOrTabOptions) stateFn {
	t.ts.spaceOrTabConnect = opts.connect
	t.ts.spaceOrTabContent = opts.content
	t.ts.spaceOrTabMin = opts.min
	t.ts.spaceOrTabMax = opts.max
	t.ts.spaceOrTabToken = opts.token
	return spaceOrTabStart
}

func spaceOrTabStart(t *tokenizer) state {
	if t.ts.spaceOrTabMax > 0 && (t.current == '\t' || t.current == ' ') {
		if t.ts.spaceOrTabContent != 0 {
			t.enterLink(t.ts.spaceOrTabToken, t.ts.spaceOrTabContent)
		} else {
			t.enter(t.ts.spaceOrTabToken)
		}

		if t.ts.spaceOrTabConnect {
			t.linkPrevious(len(t.events) - 1)
		} else if t.ts.spaceOrTabContent != 0 {
			t.ts.spaceOrTabConnect = true
		}

		return retry(spaceOrTabInside)
	}
	return retry(spaceOrTabAfter)
}

func spaceOrTabInside(t *tokenizer) state {
	if (t.current == '\t' || t.current == ' ') && t.ts.spaceOrTabSize < t.ts.spaceOrTabMax {
		t.consume()
		t.ts.spaceOrTabSize++
		return next(spaceOrTabInside)
	}
	t.exit(t.ts.spaceOrTabToken)
	return retry(spaceOrTabAfter)
}

func spaceOrTabAfter(t *tokenizer) state {
	s := stateNok
	if t.ts.spaceOrTabSize >= t.ts.spaceOrTabMin {
		s = stateOk
	}
	t.ts.spaceOrTabConnect = false
	t.ts.spaceOrTabContent = 0
	t.ts.spaceOrTabSize = 0
	t.ts.spaceOrTabMax = 0
	t.ts.spaceOrTabMin = 0
	t.ts.spaceOrTabToken = event.TokSpaceOrTab
	return s
}

// spaceOrTabEOL matches spaces or tabs with at most one line ending among
// them. The line after the ending must not be blank.
func spaceOrTabEOL(t *tokenizer) stateFn {
	return spaceOrTabEOLWithOptions(t, 0, false)
}

func spaceOrTabEOLWithOptions(t *tokenizer, content event.Content, connect bool) stateFn {
	t.ts.spaceOrTabEOLContent = content
	t.ts.spaceOrTabEOLConnect = connect
	return spaceOrTabEOLStart
}

func spaceOrTabEOLStart(t *tokenizer) state {
	switch t.current {
	case '\t', '\n', ' ':
		t.attempt(next(spaceOrTabEOLAfterFirst), next(spaceOrTabEOLAtEOL))
		return retry(spaceOrTabWithOptions(t, spaceOrTabOptions{
			token:   event.TokSpaceOrTab,
			min:     1,
			max:     unbounded,
			content: t.ts.spaceOrTabEOLContent,
			connect: t.ts.spaceOrTabEOLConnect,
		}))
	default:
		return stateNok
	}
}

func spaceOrTabEOLAfterFirst(t *tokenizer) state {
	t.ts.spaceOrTabEOLOk = true
	if t.ts.spaceOrTabEOLContent != 0 {
		t.ts.spaceOrTabEOLConnect = true
	}
	return retry(spaceOrTabEOLAtEOL)
}

func spaceOrTabEOLAtEOL(t *tokenizer) state {
	if t.current != '\n' {
		ok := t.ts.spaceOrTabEOLOk
		spaceOrTabEOLReset(t)
		if ok {
			return stateOk
		}
		return stateNok
	}

	if t.ts.spaceOrTabEOLContent != 0 {
		t.enterLink(event.TokLineEnding, t.ts.spaceOrTabEOLContent)
	} else {
		t.enter(event.TokLineEnding)
	}

	if t.ts.spaceOrTabEOLConnect {
		t.linkPrevious(len(t.events) - 1)
	} else if t.ts.spaceOrTabEOLContent != 0 {
		t.ts.spaceOrTabEOLConnect = true
	}

	t.consume()
	t.exit(event.TokLineEnding)
	return next(spaceOrTabEOLAfterEOL)
}

func spaceOrTabEOLAfterEOL(t *tokenizer) state {
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(spaceOrTabEOLAfterMore), stateNok)
		return retry(spaceOrTabWithOptions(t, spaceOrTabOptions{
			token:   event.TokSpaceOrTab,
			min:     1,
			max:     unbounded,
			content: t.ts.spaceOrTabEOLContent,
			connect: t.ts.spaceOrTabEOLConnect,
		}))
	}
	return retry(spaceOrTabEOLAfterMore)
}

func spaceOrTabEOLAfterMore(t *tokenizer) state {
	spaceOrTabEOLReset(t)
	if t.current == eof || t.current == '\n' {
		return stateNok
	}
	return stateOk
}

func spaceOrTabEOLReset(t *tokenizer) {
	t.ts.spaceOrTabEOLContent = 0
	t.ts.spaceOrTabEOLConnect = false
	t.ts.spaceOrTabEOLOk = false
}
