package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// subresult is what a finished tokenizer hands back to its parent.
type subresult struct {
	done                   bool
	definitions            []string
	gfmFootnoteDefinitions []string
}

// subtokenize parses every unparsed chain of linked events with the
// grammar of its content type and splices the results in place of the
// chunks. With a non-zero filter only chains of that content type are
// parsed. done is set when nothing was left to parse.
func subtokenize(events *[]event.Event, parse *parseState, filter event.Content) (*subresult, error) {
	list := *events
	value := &subresult{done: true}
	var edits editMap

	indices := make(map[*event.Link]int)
	for i := range list {
		if list[i].Link != nil {
			indices[list[i].Link] = i
		}
	}

	for index := range list {
		ev := list[index]
		if ev.Link == nil {
			continue
		}
		if previous := ev.Link.PreviousLink(); previous != nil {
			if _, ok := indices[previous]; ok {
				continue
			}
		}
		if filter != 0 && ev.Link.Content != filter {
			continue
		}

		child := newTokenizer(ev.Point, parse)
		var s state
		switch ev.Link.Content {
		case event.ContentContent:
			s = next(contentDefinitionBefore)
		case event.ContentString:
			s = next(stringStart)
		default:
			s = next(textStart)
		}

		if parse.options.Constructs.GFMTaskListItem && index > 2 &&
			list[index-1].Kind == event.Enter && list[index-1].Token == event.TokParagraph {
			before := skipOptBack(list, index-2,
				event.TokBlankLineEnding, event.TokDefinition, event.TokLineEnding, event.TokSpaceOrTab)
			if before >= 0 && list[before].Kind == event.Exit && list[before].Token == event.TokListItemPrefix {
				child.ts.documentAtFirstParagraphOfListItem = true
			}
		}

		chain := chainIndices(list, indices, index)
		for i, at := range chain {
			enter := list[at]
			if i > 0 {
				child.defineSkip(enter.Point)
			}
			end := list[at+1].Point
			s = child.push(
				skipTo{offset: enter.Point.Offset, virtual: enter.Point.Virtual},
				skipTo{offset: end.Offset, virtual: end.Virtual},
				s,
			)
		}

		result, err := child.flush(s, true)
		if err != nil {
			return nil, err
		}
		value.definitions = append(value.definitions, result.definitions...)
		value.gfmFootnoteDefinitions = append(value.gfmFootnoteDefinitions, result.gfmFootnoteDefinitions...)
		value.done = false

		divideEvents(&edits, list, chain, child.events)
	}

	edits.consume(events)
	return value, nil
}

// chainIndices returns the event indices of the chain starting at start.
func chainIndices(events []event.Event, indices map[*event.Link]int, start int) []int {
	chain := []int{start}
	link := events[start].Link.NextLink()
	for link != nil {
		at, ok := indices[link]
		if !ok {
			break
		}
		chain = append(chain, at)
		link = link.NextLink()
	}
	return chain
}

// divideEvents splits the child events by the chunks of chain they fall in
// and queues each slice to replace the enter and exit of its chunk.
func divideEvents(edits *editMap, events []event.Event, chain []int, child []event.Event) {
	type slice struct{ at, start int }
	var slices []slice

	link := 0
	start := 0
	for i := range child {
		current := child[i].Point
		end := events[chain[link]+1].Point
		if end.Before(current) && link+1 < len(chain) {
			slices = append(slices, slice{at: chain[link], start: start})
			start = i
			link++
		}
	}
	if len(child) > 0 {
		slices = append(slices, slice{at: chain[link], start: start})
	}

	stop := len(child)
	for i := len(slices) - 1; i >= 0; i-- {
		edits.add(slices[i].at, 2, child[slices[i].start:stop])
		stop = slices[i].start
	}
}
