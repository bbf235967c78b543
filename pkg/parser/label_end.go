package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// Links and images are found from their end: `]` looks back to the nearest
// open `[`, `![` or `[^`, then forward for a resource `(...)`, a full
// reference `[...]`, a collapsed reference `[]`, or nothing when the label
// itself is defined. A `[^` label that names a footnote definition is a
// footnote call and takes nothing after it.

func labelStartImageStart(t *tokenizer) state {
	if !t.parse.options.Constructs.LabelStartImage || t.current != '!' {
		return stateNok
	}
	t.enter(event.TokLabelImage)
	t.enter(event.TokLabelImageMarker)
	t.consume()
	t.exit(event.TokLabelImageMarker)
	return next(labelStartImageOpen)
}

func labelStartImageOpen(t *tokenizer) state {
	if t.current != '[' {
		return stateNok
	}
	t.enter(event.TokLabelMarker)
	t.consume()
	t.exit(event.TokLabelMarker)
	t.exit(event.TokLabelImage)
	t.ts.labelStarts = append(t.ts.labelStarts, labelStart{
		kind:  labelImage,
		start: [2]int{len(t.events) - 6, len(t.events) - 1},
	})
	t.registerResolverBefore(resolverLabel)
	return stateOk
}

func labelStartLinkStart(t *tokenizer) state {
	if !t.parse.options.Constructs.LabelStartLink || t.current != '[' {
		return stateNok
	}
	start := len(t.events)
	t.enter(event.TokLabelLink)
	t.enter(event.TokLabelMarker)
	t.consume()
	t.exit(event.TokLabelMarker)
	t.exit(event.TokLabelLink)
	t.ts.labelStarts = append(t.ts.labelStarts, labelStart{
		kind:  labelLink,
		start: [2]int{start, len(t.events) - 1},
	})
	t.registerResolverBefore(resolverLabel)
	return stateOk
}

func labelEndStart(t *tokenizer) state {
	if !t.parse.options.Constructs.LabelEnd || t.current != ']' || len(t.ts.labelStarts) == 0 {
		return stateNok
	}
	t.ts.end = len(t.events)
	if t.ts.labelStarts[len(t.ts.labelStarts)-1].inactive {
		return retry(labelEndNok)
	}
	t.enter(event.TokLabelEnd)
	t.enter(event.TokLabelMarker)
	t.consume()
	t.exit(event.TokLabelMarker)
	t.exit(event.TokLabelEnd)
	return next(labelEndAfter)
}

func labelEndAfter(t *tokenizer) state {
	at := len(t.ts.labelStarts) - 1
	start := t.ts.labelStarts[at]
	from := t.events[start.start[1]].Point.Offset
	to := t.events[t.ts.end].Point.Offset
	value := string(t.parse.source[from:to])

	if start.kind == labelGFMFootnote {
		id := NormalizeIdentifier(value)
		if t.parse.footnoteDefined(id) {
			return retry(labelEndOk)
		}
		t.ts.labelStarts[at].kind = labelGFMUndefinedFootnote
		value = "^" + id
	}
	defined := t.parse.defined(value)

	orDefined := func(fn stateFn) state {
		if defined {
			return next(fn)
		}
		return next(labelEndNok)
	}

	switch t.current {
	case '(':
		t.attempt(next(labelEndOk), orDefined(labelEndOk))
		return retry(labelEndResourceStart)
	case '[':
		t.attempt(next(labelEndOk), orDefined(labelEndReferenceNotFull))
		return retry(labelEndReferenceFull)
	default:
		if defined {
			return retry(labelEndOk)
		}
		return retry(labelEndNok)
	}
}

func labelEndReferenceNotFull(t *tokenizer) state {
	t.attempt(next(labelEndOk), next(labelEndNok))
	return retry(labelEndReferenceCollapsed)
}

func labelEndOk(t *tokenizer) state {
	start := t.ts.labelStarts[len(t.ts.labelStarts)-1]
	t.ts.labelStarts = t.ts.labelStarts[:len(t.ts.labelStarts)-1]

	// Links and footnote calls cannot contain links or calls: earlier
	// starts other than images can no longer close.
	if start.kind != labelImage {
		for i := range t.ts.labelStarts {
			if t.ts.labelStarts[i].kind != labelImage {
				t.ts.labelStarts[i].inactive = true
			}
		}
	}

	t.ts.labels = append(t.ts.labels, label{
		kind:  start.kind,
		start: start.start,
		end:   [2]int{t.ts.end, len(t.events) - 1},
	})
	t.ts.end = 0
	t.registerResolverBefore(resolverLabel)
	return stateOk
}

func labelEndNok(t *tokenizer) state {
	start := t.ts.labelStarts[len(t.ts.labelStarts)-1]
	t.ts.labelStarts = t.ts.labelStarts[:len(t.ts.labelStarts)-1]
	t.ts.labelStartsLoose = append(t.ts.labelStartsLoose, start)
	t.ts.end = 0
	return stateNok
}

func labelEndResourceStart(t *tokenizer) state {
	t.enter(event.TokResource)
	t.enter(event.TokResourceMarker)
	t.consume()
	t.exit(event.TokResourceMarker)
	return next(labelEndResourceBefore)
}

func labelEndResourceBefore(t *tokenizer) state {
	if t.current == '\t' || t.current == '\n' || t.current == ' ' {
		t.attempt(next(labelEndResourceOpen), next(labelEndResourceOpen))
		return retry(spaceOrTabEOL(t))
	}
	return retry(labelEndResourceOpen)
}

func labelEndResourceOpen(t *tokenizer) state {
	if t.current == ')' {
		return retry(labelEndResourceEnd)
	}
	t.ts.token1 = event.TokResourceDestination
	t.ts.token2 = event.TokResourceDestinationLiteral
	t.ts.token3 = event.TokResourceDestinationLiteralMarker
	t.ts.token4 = event.TokResourceDestinationRaw
	t.ts.token5 = event.TokResourceDestinationString
	t.ts.sizeB = linkResourceDestinationBalanceMax
	t.attempt(next(labelEndResourceDestinationAfter), next(labelEndResourceDestinationMissing))
	return retry(destinationStart)
}

func labelEndResourceDestinationAfter(t *tokenizer) state {
	resetTokens(t)
	t.ts.sizeB = 0
	if t.current == '\t' || t.current == '\n' || t.current == ' ' {
		t.attempt(next(labelEndResourceBetween), next(labelEndResourceEnd))
		return retry(spaceOrTabEOL(t))
	}
	return retry(labelEndResourceEnd)
}

func labelEndResourceDestinationMissing(t *tokenizer) state {
	resetTokens(t)
	t.ts.sizeB = 0
	return stateNok
}

func labelEndResourceBetween(t *tokenizer) state {
	switch t.current {
	case '"', '\'', '(':
		t.ts.token1 = event.TokResourceTitle
		t.ts.token2 = event.TokResourceTitleMarker
		t.ts.token3 = event.TokResourceTitleString
		t.attempt(next(labelEndResourceTitleAfter), next(labelEndResourceTitleNok))
		return retry(titleStart)
	default:
		return retry(labelEndResourceEnd)
	}
}

func labelEndResourceTitleNok(t *tokenizer) state {
	resetTokens(t)
	return stateNok
}

func labelEndResourceTitleAfter(t *tokenizer) state {
	resetTokens(t)
	if t.current == '\t' || t.current == '\n' || t.current == ' ' {
		t.attempt(next(labelEndResourceEnd), next(labelEndResourceEnd))
		return retry(spaceOrTabEOL(t))
	}
	return retry(labelEndResourceEnd)
}

func labelEndResourceEnd(t *tokenizer) state {
	if t.current != ')' {
		return stateNok
	}
	t.enter(event.TokResourceMarker)
	t.consume()
	t.exit(event.TokResourceMarker)
	t.exit(event.TokResource)
	return stateOk
}

func labelEndReferenceFull(t *tokenizer) state {
	t.ts.token1 = event.TokReference
	t.ts.token2 = event.TokReferenceMarker
	t.ts.token3 = event.TokReferenceString
	t.attempt(next(labelEndReferenceFullAfter), next(labelEndReferenceFullNok))
	return retry(labelStartState)
}

func labelEndReferenceFullNok(t *tokenizer) state {
	resetTokens(t)
	return stateNok
}

func labelEndReferenceFullAfter(t *tokenizer) state {
	resetTokens(t)
	exit := skipToBack(t.events, len(t.events)-1, event.TokReferenceString)
	if exit >= 0 && t.parse.defined(string(tokenSource(t.parse.source, t.events, exit))) {
		return stateOk
	}
	return stateNok
}

func labelEndReferenceCollapsed(t *tokenizer) state {
	if t.current != '[' {
		return stateNok
	}
	t.enter(event.TokReference)
	t.enter(event.TokReferenceMarker)
	t.consume()
	t.exit(event.TokReferenceMarker)
	return next(labelEndReferenceCollapsedOpen)
}

func labelEndReferenceCollapsedOpen(t *tokenizer) state {
	if t.current != ']' {
		return stateNok
	}
	t.enter(event.TokReferenceMarker)
	t.consume()
	t.exit(event.TokReferenceMarker)
	t.exit(event.TokReference)
	return stateOk
}

// resolveLabel wraps matched labels in link, image or footnote call
// groups and turns unmatched brackets into data. A `[^` that turned out to
// be a link start gets its caret back as data.
func resolveLabel(t *tokenizer) {
	labelStartsAsData(t, t.ts.labelStarts)
	labelStartsAsData(t, t.ts.labelStartsLoose)
	t.ts.labelStarts = nil
	t.ts.labelStartsLoose = nil

	labels := t.ts.labels
	t.ts.labels = nil

	for _, l := range labels {
		group := event.TokLink
		switch l.kind {
		case labelImage:
			group = event.TokImage
		case labelGFMFootnote:
			group = event.TokGFMFootnoteCall
		}

		var caret []event.Event
		if l.kind == labelGFMUndefinedFootnote {
			caret = []event.Event{
				{Kind: event.Enter, Token: event.TokData, Point: t.events[l.start[1]-2].Point},
				{Kind: event.Exit, Token: event.TokData, Point: t.events[l.start[1]-1].Point},
			}
			t.events[l.start[0]].Token = event.TokLabelLink
			t.events[l.start[1]].Token = event.TokLabelLink
			t.events[l.start[1]].Point = caret[0].Point
			t.edits.add(l.start[1]-2, 2, nil)
		}

		groupEnter := t.events[l.start[0]]
		textEnter := l.start[1] + 1
		textExit := l.end[0]
		labelExit := l.end[0] + 3
		groupEnd := l.end[1]

		t.edits.add(l.start[0], 0, []event.Event{
			{Kind: event.Enter, Token: group, Point: groupEnter.Point},
			{Kind: event.Enter, Token: event.TokLabel, Point: groupEnter.Point},
		})
		if textEnter != textExit || caret != nil {
			enter := []event.Event{{Kind: event.Enter, Token: event.TokLabelText, Point: t.events[l.start[1]].Point}}
			t.edits.addBefore(textEnter, 0, append(enter, caret...))
			t.edits.add(textExit, 0, []event.Event{
				{Kind: event.Exit, Token: event.TokLabelText, Point: t.events[textExit].Point},
			})
		}
		t.edits.add(labelExit+1, 0, []event.Event{
			{Kind: event.Exit, Token: event.TokLabel, Point: t.events[labelExit].Point},
		})
		t.edits.add(groupEnd+1, 0, []event.Event{
			{Kind: event.Exit, Token: group, Point: t.events[groupEnd].Point},
		})
	}

	t.edits.consume(&t.events)
}

func labelStartsAsData(t *tokenizer, starts []labelStart) {
	for _, s := range starts {
		t.edits.add(s.start[0], s.start[1]-s.start[0]+1, []event.Event{
			{Kind: event.Enter, Token: event.TokData, Point: t.events[s.start[0]].Point},
			{Kind: event.Exit, Token: event.TokData, Point: t.events[s.start[1]].Point},
		})
	}
}
