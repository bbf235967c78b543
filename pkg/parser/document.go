package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// The document tokenizer handles containers (block quotes, list items,
// footnote definitions) and feeds what is left of each line to a child tokenizer running flow.

type exitPhase uint8

const (
	// phaseAfter closes containers that were not continued, after the line
	// was fed to flow.
	phaseAfter exitPhase = iota
	// phasePrefix closes containers before a new container opens.
	phasePrefix
	// phaseEOF closes everything at the end.
	phaseEOF
)

func documentStart(t *tokenizer) state {
	t.ts.documentChild = newTokenizer(t.point, t.parse)
	t.attempt(next(documentBeforeFrontmatter), next(documentBeforeFrontmatter))
	return retry(bomStart)
}

func documentBeforeFrontmatter(t *tokenizer) state {
	t.attempt(next(documentContainerNewBefore), next(documentContainerNewBefore))
	return retry(frontmatterStart)
}

func documentContainerExistingBefore(t *tokenizer) state {
	if t.ts.documentContinued < len(t.ts.documentContainerStack) {
		container := t.ts.documentContainerStack[t.ts.documentContinued]
		t.attempt(next(documentContainerExistingAfter), next(documentContainerNewBefore))
		switch container.kind {
		case containerBlockQuote:
			return retry(blockQuoteContStart)
		case containerGFMFootnoteDefinition:
			return retry(gfmFootnoteDefinitionContStart)
		default:
			return retry(listItemContStart)
		}
	}
	return retry(documentContainerNewBefore)
}

func documentContainerExistingAfter(t *tokenizer) state {
	t.ts.documentContinued++
	return retry(documentContainerExistingBefore)
}

func documentContainerNewBefore(t *tokenizer) state {
	// Everything continued: a concrete construct in flow cannot be
	// interrupted by new containers.
	if t.ts.documentContinued == len(t.ts.documentContainerStack) {
		child := t.ts.documentChild
		t.interrupt = child.interrupt
		if child.concrete {
			return retry(documentContainersAfter)
		}
	}

	stack := append(t.ts.documentContainerStack, containerState{kind: containerBlockQuote})
	tail := len(stack) - 1
	stack[t.ts.documentContinued], stack[tail] = stack[tail], stack[t.ts.documentContinued]
	t.ts.documentContainerStack = stack

	t.attempt(next(documentContainerNewAfter), next(documentContainerNewBeforeNotBlockQuote))
	return retry(blockQuoteStart)
}

func documentContainerNewBeforeNotBlockQuote(t *tokenizer) state {
	t.ts.documentContainerStack[t.ts.documentContinued] = containerState{kind: containerListItem}
	t.attempt(next(documentContainerNewAfter), next(documentContainerNewBeforeNotList))
	return retry(listItemStart)
}

func documentContainerNewBeforeNotList(t *tokenizer) state {
	t.ts.documentContainerStack[t.ts.documentContinued] = containerState{kind: containerGFMFootnoteDefinition}
	t.attempt(next(documentContainerNewAfter), next(documentContainerNewBeforeNotGFMFootnoteDefinition))
	return retry(gfmFootnoteDefinitionStart)
}

func documentContainerNewBeforeNotGFMFootnoteDefinition(t *tokenizer) state {
	t.ts.documentContainerStack = swapRemove(t.ts.documentContainerStack, t.ts.documentContinued)
	return retry(documentContainersAfter)
}

func documentContainerNewAfter(t *tokenizer) state {
	container := t.ts.documentContainerStack[t.ts.documentContinued]
	t.ts.documentContainerStack = swapRemove(t.ts.documentContainerStack, t.ts.documentContinued)

	// A new container closes the ones that were not continued.
	if t.ts.documentContinued != len(t.ts.documentContainerStack) {
		if err := documentExitContainers(t, phasePrefix); err != nil {
			return fail(err)
		}
	}

	t.ts.documentChild.pierce = true
	t.ts.documentContainerStack = append(t.ts.documentContainerStack, container)
	t.ts.documentContinued++
	t.interrupt = false
	return retry(documentContainerNewBefore)
}

func documentContainersAfter(t *tokenizer) state {
	child := t.ts.documentChild
	child.lazy = t.ts.documentContinued != len(t.ts.documentContainerStack)
	child.defineSkip(t.point)

	if t.current == eof {
		return retry(documentFlowEnd)
	}

	t.enterLink(event.TokData, event.ContentFlow)
	link := t.events[len(t.events)-1].Link
	if t.ts.documentDataLink != nil {
		event.Connect(t.ts.documentDataLink, link)
	}
	t.ts.documentDataLink = link
	return retry(documentFlowInside)
}

func documentFlowInside(t *tokenizer) state {
	switch t.current {
	case eof:
		t.exit(event.TokData)
		return retry(documentFlowEnd)
	case '\n':
		t.consume()
		t.exit(event.TokData)
		return next(documentFlowEnd)
	default:
		t.consume()
		return next(documentFlowInside)
	}
}

func documentFlowEnd(t *tokenizer) state {
	child := t.ts.documentChild
	s := next(flowStart)
	if t.ts.documentChildState != nil {
		s = *t.ts.documentChildState
		t.ts.documentChildState = nil
	}

	t.ts.documentExits = append(t.ts.documentExits, nil)

	s = child.push(
		skipTo{offset: child.point.Offset, virtual: child.point.Virtual},
		skipTo{offset: t.point.Offset, virtual: t.point.Virtual},
		s,
	)
	t.ts.documentChildState = &s

	lazyCurrent := false
	for i := len(child.stack) - 1; i >= 0 && !lazyCurrent; i-- {
		if child.stack[i] == event.TokContent {
			lazyCurrent = true
		}
	}
	if !lazyCurrent && len(child.events) > 0 {
		before := skipOptBack(child.events, len(child.events)-1, event.TokLineEnding)
		if before >= 0 {
			token := child.events[before].Token
			if token == event.TokContent || token == event.TokHeadingSetextUnderline {
				lazyCurrent = true
			}
		}
	}

	child.pierce = false

	// A lazy line continues a paragraph: keep all containers open.
	if child.lazy && t.ts.documentLazyAcceptingBefore && lazyCurrent {
		t.ts.documentContinued = len(t.ts.documentContainerStack)
	}

	if t.ts.documentContinued != len(t.ts.documentContainerStack) {
		// Flow is not flushed in this phase, so this cannot fail.
		_ = documentExitContainers(t, phaseAfter)
	}

	if t.current == eof {
		t.ts.documentContinued = 0
		if err := documentExitContainers(t, phaseEOF); err != nil {
			return fail(err)
		}
		documentResolve(t)
		return stateOk
	}

	t.ts.documentContinued = 0
	t.ts.documentLazyAcceptingBefore = lazyCurrent
	t.interrupt = false
	return retry(documentContainerExistingBefore)
}

func documentExitContainers(t *tokenizer, phase exitPhase) error {
	closing := append([]containerState(nil), t.ts.documentContainerStack[t.ts.documentContinued:]...)
	t.ts.documentContainerStack = t.ts.documentContainerStack[:t.ts.documentContinued]

	child := t.ts.documentChild

	if phase != phaseAfter {
		s := next(flowStart)
		if t.ts.documentChildState != nil {
			s = *t.ts.documentChildState
			t.ts.documentChildState = nil
		}
		if _, err := child.flush(s, false); err != nil {
			return err
		}
	}

	if len(closing) > 0 {
		index := len(t.ts.documentExits) - 1
		if phase == phaseAfter {
			index--
		}

		exits := make([]event.Event, 0, len(closing))
		for i := len(closing) - 1; i >= 0; i-- {
			token := event.TokListItem
			switch closing[i].kind {
			case containerBlockQuote:
				token = event.TokBlockQuote
			case containerGFMFootnoteDefinition:
				token = event.TokGFMFootnoteDefinition
			}
			exits = append(exits, event.Event{Kind: event.Exit, Token: token, Point: t.point})

			for j := len(t.stack) - 1; j >= 0; j-- {
				if t.stack[j] == token {
					t.stack = append(t.stack[:j], t.stack[j+1:]...)
					break
				}
			}
		}

		t.ts.documentExits[index] = exits
	}

	child.interrupt = false
	return nil
}

// documentResolve injects container exits into the flow events at the
// line endings where they belong and splices the flow events into the
// document.
func documentResolve(t *tokenizer) {
	child := t.ts.documentChild
	line := 0

	for i := 0; i < len(child.events); i++ {
		ev := child.events[i]
		if ev.Kind != event.Exit || (ev.Token != event.TokLineEnding && ev.Token != event.TokBlankLineEnding) {
			continue
		}

		inject := i - 1
		point := child.events[inject].Point
		for i+1 < len(child.events) && child.events[i+1].Kind == event.Exit {
			i++
			point = child.events[i].Point
			inject = i + 1
		}

		if line < len(t.ts.documentExits) && t.ts.documentExits[line] != nil {
			exits := t.ts.documentExits[line]
			t.ts.documentExits[line] = nil
			for j := range exits {
				exits[j].Point = point
			}
			child.edits.add(inject, 0, exits)
		}

		line++
	}

	child.edits.consume(&child.events)

	first := -1
	indices := make(map[*event.Link]int)
	for i := range t.events {
		if t.events[i].Link != nil && t.events[i].Link.Content == event.ContentFlow {
			indices[t.events[i].Link] = i
			if first == -1 {
				first = i
			}
		}
	}
	if first != -1 {
		divideEvents(&t.edits, t.events, chainIndices(t.events, indices, first), child.events)
	}
	t.edits.consume(&t.events)

	if line < len(t.ts.documentExits) && t.ts.documentExits[line] != nil {
		exits := t.ts.documentExits[line]
		t.ts.documentExits[line] = nil
		for j := range exits {
			exits[j].Point = t.point
		}
		t.events = append(t.events, exits...)
	}

	t.resolvers = append(t.resolvers, child.resolvers...)
	child.resolvers = nil
	t.ts.definitions = append(t.ts.definitions, child.ts.definitions...)
	child.ts.definitions = nil
	t.ts.gfmFootnoteDefinitions = append(t.ts.gfmFootnoteDefinitions, child.ts.gfmFootnoteDefinitions...)
	child.ts.gfmFootnoteDefinitions = nil
}

func swapRemove(stack []containerState, index int) []containerState {
	last := len(stack) - 1
	stack[index] = stack[last]
	return stack[:last]
}
