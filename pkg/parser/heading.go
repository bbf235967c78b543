package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

func headingATXStart(t *tokenizer) state {
	if !t.parse.options.Constructs.HeadingATX {
		return stateNok
	}
	t.enter(event.TokHeadingATX)
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(headingATXBefore), stateNok)
		return retry(spaceOrTabMinMax(t, 0, indentMax(t)))
	}
	return retry(headingATXBefore)
}

func headingATXBefore(t *tokenizer) state {
	if t.current != '#' {
		return stateNok
	}
	t.enter(event.TokHeadingATXSequence)
	return retry(headingATXSequenceOpen)
}

func headingATXSequenceOpen(t *tokenizer) state {
	if t.current == '#' && t.ts.size < headingATXOpeningFenceSizeMax {
		t.ts.size++
		t.consume()
		return next(headingATXSequenceOpen)
	}
	t.ts.size = 0
	switch t.current {
	case eof, '\t', '\n', ' ':
		t.exit(event.TokHeadingATXSequence)
		return retry(headingATXAtBreak)
	default:
		return stateNok
	}
}

func headingATXAtBreak(t *tokenizer) state {
	switch t.current {
	case eof, '\n':
		t.exit(event.TokHeadingATX)
		t.registerResolver(resolverHeadingATX)
		t.interrupt = false
		return stateOk
	case '\t', ' ':
		t.attempt(next(headingATXAtBreak), stateNok)
		return retry(spaceOrTab(t))
	case '#':
		t.enter(event.TokHeadingATXSequence)
		return retry(headingATXSequenceFurther)
	default:
		t.enterLink(event.TokData, event.ContentText)
		return retry(headingATXData)
	}
}

func headingATXSequenceFurther(t *tokenizer) state {
	if t.current == '#' {
		t.consume()
		return next(headingATXSequenceFurther)
	}
	t.exit(event.TokHeadingATXSequence)
	return retry(headingATXAtBreak)
}

func headingATXData(t *tokenizer) state {
	switch t.current {
	// A closing sequence must follow whitespace, so `#` here is text.
	case eof, '\t', '\n', ' ':
		t.exit(event.TokData)
		return retry(headingATXAtBreak)
	default:
		t.consume()
		return next(headingATXData)
	}
}

// resolveHeadingATX joins the words of each heading, and the whitespace and
// sequences between them, into one text token.
func resolveHeadingATX(t *tokenizer) {
	inside := false
	start, end := -1, -1

	for index, ev := range t.events {
		switch {
		case ev.Token == event.TokHeadingATX && ev.Kind == event.Enter:
			inside = true
		case ev.Token == event.TokHeadingATX:
			if start != -1 {
				t.edits.add(start, 0, []event.Event{{Kind: event.Enter, Token: event.TokHeadingATXText, Point: t.events[start].Point}})
				t.edits.add(start+1, end-start-1, nil)
				t.edits.add(end+1, 0, []event.Event{{Kind: event.Exit, Token: event.TokHeadingATXText, Point: t.events[end].Point}})
			}
			inside = false
			start, end = -1, -1
		case inside && ev.Token == event.TokData:
			if ev.Kind == event.Enter {
				if start == -1 {
					start = index
				}
			} else {
				end = index
			}
		}
	}

	t.edits.consume(&t.events)
}

func headingSetextStart(t *tokenizer) state {
	if !t.parse.options.Constructs.HeadingSetext || t.lazy || t.pierce || len(t.events) == 0 {
		return stateNok
	}
	// The underline needs content right before it.
	before := skipOptBack(t.events, len(t.events)-1, event.TokLineEnding, event.TokSpaceOrTab)
	if before < 0 || t.events[before].Token != event.TokContent {
		return stateNok
	}

	t.enter(event.TokHeadingSetextUnderline)
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(headingSetextBefore), stateNok)
		return retry(spaceOrTabMinMax(t, 0, indentMax(t)))
	}
	return retry(headingSetextBefore)
}

func headingSetextBefore(t *tokenizer) state {
	if t.current != '-' && t.current != '=' {
		return stateNok
	}
	t.ts.marker = byte(t.current)
	t.enter(event.TokHeadingSetextUnderlineSequence)
	return retry(headingSetextInside)
}

func headingSetextInside(t *tokenizer) state {
	if t.current == int(t.ts.marker) {
		t.consume()
		return next(headingSetextInside)
	}
	t.ts.marker = 0
	t.exit(event.TokHeadingSetextUnderlineSequence)
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(headingSetextAfter), stateNok)
		return retry(spaceOrTab(t))
	}
	return retry(headingSetextAfter)
}

func headingSetextAfter(t *tokenizer) state {
	if t.current != eof && t.current != '\n' {
		return stateNok
	}
	t.interrupt = false
	t.registerResolver(resolverHeadingSetext)
	t.exit(event.TokHeadingSetextUnderline)
	return stateOk
}

// resolveHeadingSetext turns a paragraph and the underline after it into a
// heading. Content that turned out to hold only definitions leaves the
// underline without a paragraph: it then becomes a paragraph itself, or
// the first line of the paragraph after it.
func resolveHeadingSetext(t *tokenizer) {
	t.edits.consume(&t.events)
	events := t.events

	enter := skipToward(events, 0, event.TokHeadingSetextUnderline)
	for enter < len(events) {
		exit := skipToward(events, enter+1, event.TokHeadingSetextUnderline)
		before := skipOptBack(events, enter-1, event.TokSpaceOrTab, event.TokLineEnding, event.TokBlockQuotePrefix)

		switch {
		case before >= 0 && events[before].Token == event.TokParagraph:
			paragraphEnter := skipToBack(events, before-1, event.TokParagraph)
			events[paragraphEnter].Token = event.TokHeadingSetextText
			events[before].Token = event.TokHeadingSetextText

			headingEnter := events[paragraphEnter]
			headingEnter.Token = event.TokHeadingSetext
			headingEnter.Link = nil
			t.edits.add(paragraphEnter, 0, []event.Event{headingEnter})

			headingExit := events[exit]
			headingExit.Token = event.TokHeadingSetext
			t.edits.add(exit+1, 0, []event.Event{headingExit})

		case exit+4 < len(events) && events[exit+1].Token == event.TokLineEnding &&
			events[exit+3].Token == event.TokParagraph && events[exit+4].Link != nil:
			events[enter].Token = event.TokParagraph
			events[exit+1].Token = event.TokData
			events[exit+2].Token = event.TokData
			events[exit+1].Point = events[enter].Point
			events[exit+1].Link = event.NewLink(event.ContentText)
			event.Connect(events[exit+1].Link, events[exit+4].Link)
			t.edits.add(enter+1, exit-enter, nil)
			t.edits.add(exit+3, 1, nil)

		default:
			events[enter].Token = event.TokParagraph
			events[exit].Token = event.TokParagraph
			t.edits.add(enter+1, exit-enter-1, []event.Event{
				{Kind: event.Enter, Token: event.TokData, Point: events[enter].Point, Link: event.NewLink(event.ContentText)},
				{Kind: event.Exit, Token: event.TokData, Point: events[exit].Point},
			})
		}

		enter = skipToward(events, exit+1, event.TokHeadingSetextUnderline)
	}

	t.edits.consume(&t.events)
}
