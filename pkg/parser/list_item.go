package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

func listItemStart(t *tokenizer) state {
	if !t.parse.options.Constructs.ListItem {
		return stateNok
	}
	t.enter(event.TokListItem)
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(listItemBefore), stateNok)
		return retry(spaceOrTabMinMax(t, 0, indentMax(t)))
	}
	return retry(listItemBefore)
}

func listItemBefore(t *tokenizer) state {
	switch {
	case t.current == '*' || t.current == '-':
		// A thematic break wins over a list item.
		t.check(stateNok, next(listItemBeforeUnordered))
		return retry(thematicBreakStart)
	case t.current == '+':
		return retry(listItemBeforeUnordered)
	case t.current == '1' || (isDigit(t.current) && !t.interrupt):
		// Only lists starting at 1 may interrupt a paragraph.
		return retry(listItemBeforeOrdered)
	default:
		return stateNok
	}
}

func listItemBeforeUnordered(t *tokenizer) state {
	t.enter(event.TokListItemPrefix)
	return retry(listItemMarker)
}

func listItemBeforeOrdered(t *tokenizer) state {
	t.enter(event.TokListItemPrefix)
	t.enter(event.TokListItemValue)
	return retry(listItemValue)
}

func listItemValue(t *tokenizer) state {
	if (t.current == '.' || t.current == ')') && (!t.interrupt || t.ts.size < 2) {
		t.exit(event.TokListItemValue)
		return retry(listItemMarker)
	}
	if isDigit(t.current) && t.ts.size+1 < listItemValueSizeMax {
		t.ts.size++
		t.consume()
		return next(listItemValue)
	}
	t.ts.size = 0
	return stateNok
}

func listItemMarker(t *tokenizer) state {
	t.enter(event.TokListItemMarker)
	t.consume()
	t.exit(event.TokListItemMarker)
	return next(listItemMarkerAfter)
}

func listItemMarkerAfter(t *tokenizer) state {
	// size doubles as the blank flag from here on.
	t.ts.size = 1
	t.check(next(listItemAfter), next(listItemMarkerAfterFilled))
	return retry(blankLineStart)
}

func listItemMarkerAfterFilled(t *tokenizer) state {
	t.ts.size = 0
	t.attempt(next(listItemAfter), next(listItemPrefixOther))
	return retry(listItemWhitespace)
}

func listItemWhitespace(t *tokenizer) state {
	t.attempt(next(listItemWhitespaceAfter), stateNok)
	return retry(spaceOrTabMinMax(t, 1, tabSize))
}

func listItemWhitespaceAfter(t *tokenizer) state {
	if t.current == '\t' || t.current == ' ' {
		return stateNok
	}
	return stateOk
}

// listItemPrefixOther handles content indented five or more: it is
// indented code inside the item, so the prefix takes a single space.
func listItemPrefixOther(t *tokenizer) state {
	if t.current != '\t' && t.current != ' ' {
		return stateNok
	}
	t.enter(event.TokSpaceOrTab)
	t.consume()
	t.exit(event.TokSpaceOrTab)
	return next(listItemAfter)
}

func listItemAfter(t *tokenizer) state {
	blank := t.ts.size == 1
	t.ts.size = 0

	// An empty item cannot interrupt a paragraph.
	if blank && t.interrupt {
		return stateNok
	}

	start := skipToBack(t.events, len(t.events)-1, event.TokListItem)
	prefix := t.point.Column - t.events[start].Point.Column
	if blank {
		prefix++
	}

	container := &t.ts.documentContainerStack[t.ts.documentContinued]
	container.blankInitial = blank
	container.size = prefix

	t.exit(event.TokListItemPrefix)
	t.registerResolverBefore(resolverListItem)
	return stateOk
}

// listItemContStart continues an open list item on a later line.
func listItemContStart(t *tokenizer) state {
	t.check(next(listItemContBlank), next(listItemContFilled))
	return retry(blankLineStart)
}

func listItemContBlank(t *tokenizer) state {
	container := t.ts.documentContainerStack[t.ts.documentContinued]
	// An item that started blank ends at its first blank line.
	if container.blankInitial {
		return stateNok
	}
	if t.current == '\t' || t.current == ' ' {
		return retry(spaceOrTabMinMax(t, 0, container.size))
	}
	return stateOk
}

func listItemContFilled(t *tokenizer) state {
	container := &t.ts.documentContainerStack[t.ts.documentContinued]
	container.blankInitial = false
	if t.current != '\t' && t.current != ' ' {
		return stateNok
	}
	return retry(spaceOrTabMinMax(t, container.size, container.size))
}

type listGroup struct {
	marker  byte
	balance int
	start   int
	end     int
}

// resolveListItem wraps runs of adjacent items with the same marker at the
// same depth in a list.
func resolveListItem(t *tokenizer) {
	var wip, lists []listGroup
	balance := 0

	for index, ev := range t.events {
		if ev.Token != event.TokListItem {
			continue
		}
		if ev.Kind == event.Exit {
			balance--
			continue
		}

		end := skipOpt(t.events, index, event.TokListItem) - 1
		markerIndex := skipToward(t.events, index, event.TokListItemMarker)
		current := listGroup{
			marker:  t.parse.source[t.events[markerIndex].Point.Offset],
			balance: balance,
			start:   index,
			end:     end,
		}

		matched := false
		for i := len(wip) - 1; i >= 0; i-- {
			previous := wip[i]
			before := skipOpt(t.events, previous.end+1,
				event.TokSpaceOrTab, event.TokLineEnding, event.TokBlankLineEnding, event.TokBlockQuotePrefix)
			if previous.marker == current.marker && previous.balance == current.balance && before == current.start {
				wip[i].end = current.end
				lists = append(lists, wip[i+1:]...)
				wip = wip[:i+1]
				matched = true
				break
			}
		}

		if !matched {
			exit := -1
			for i := len(wip) - 1; i >= 0; i-- {
				if current.start <= wip[i].end {
					break
				}
				exit = i
			}
			if exit != -1 {
				lists = append(lists, wip[exit:]...)
				wip = wip[:exit]
			}
			wip = append(wip, current)
		}

		balance++
	}

	lists = append(lists, wip...)

	for _, list := range lists {
		token := event.TokListUnordered
		if list.marker == '.' || list.marker == ')' {
			token = event.TokListOrdered
		}
		start := t.events[list.start]
		start.Token = token
		start.Link = nil
		end := t.events[list.end]
		end.Token = token
		t.edits.add(list.start, 0, []event.Event{start})
		t.edits.add(list.end+1, 0, []event.Event{end})
	}

	t.edits.consume(&t.events)
}

func isDigit(c int) bool {
	return c >= '0' && c <= '9'
}
