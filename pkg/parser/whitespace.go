package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// resolveWhitespace splits leading and trailing whitespace off data next
// to line endings. With trimWhole the start and end of the whole content
// count as line endings too. With hardBreak, two or more trailing spaces
// before a line ending become a hard break.
func resolveWhitespace(t *tokenizer, hardBreak, trimWhole bool) {
	for index := range t.events {
		ev := t.events[index]
		if ev.Kind != event.Exit || ev.Token != event.TokData {
			continue
		}
		trimStart := (trimWhole && index == 1) ||
			(index > 1 && t.events[index-2].Token == event.TokLineEnding)
		trimEnd := (trimWhole && index == len(t.events)-1) ||
			(index+1 < len(t.events) && t.events[index+1].Token == event.TokLineEnding)
		trimData(t, index, trimStart, trimEnd, hardBreak)
	}
	t.edits.consume(&t.events)
}

func trimData(t *tokenizer, exitIndex int, trimStart, trimEnd, hardBreak bool) {
	source := t.parse.source
	enterPoint := t.events[exitIndex-1].Point
	exitPoint := t.events[exitIndex].Point
	bytes := source[enterPoint.Offset:exitPoint.Offset]

	if trimEnd {
		index := len(bytes)
		spacesOnly := exitPoint.Virtual == 0
		for index > 0 {
			b := bytes[index-1]
			if b == '\t' {
				spacesOnly = false
			} else if b != ' ' {
				break
			}
			index--
		}
		diff := len(bytes) - index

		token := event.TokSpaceOrTab
		if hardBreak && spacesOnly && diff >= hardBreakPrefixSizeMin && exitIndex+1 < len(t.events) {
			token = event.TokHardBreakTrailing
		}

		if index == 0 {
			t.events[exitIndex-1].Token = token
			t.events[exitIndex].Token = token
			return
		}

		if diff > 0 || exitPoint.Virtual > 0 {
			split := pointAt(source, enterPoint, enterPoint.Offset+index)
			t.edits.add(exitIndex+1, 0, []event.Event{
				{Kind: event.Enter, Token: token, Point: split},
				{Kind: event.Exit, Token: token, Point: exitPoint},
			})
			t.events[exitIndex].Point = split
			bytes = bytes[:index]
		}
	}

	if trimStart {
		index := 0
		for index < len(bytes) && (bytes[index] == ' ' || bytes[index] == '\t') {
			index++
		}

		if index == len(bytes) {
			t.events[exitIndex-1].Token = event.TokSpaceOrTab
			t.events[exitIndex].Token = event.TokSpaceOrTab
			return
		}

		if index > 0 || enterPoint.Virtual > 0 {
			split := pointAt(source, enterPoint, enterPoint.Offset+index)
			t.edits.add(exitIndex-1, 0, []event.Event{
				{Kind: event.Enter, Token: event.TokSpaceOrTab, Point: enterPoint},
				{Kind: event.Exit, Token: event.TokSpaceOrTab, Point: split},
			})
			t.events[exitIndex-1].Point = split
		}
	}
}

// pointAt walks from, which must be on the same line, to offset.
func pointAt(source []byte, from event.Point, offset int) event.Point {
	p := from
	p.Virtual = 0
	for p.Offset < offset {
		if source[p.Offset] == '\t' {
			p.Column += tabSize - (p.Column-1)%tabSize
		} else {
			p.Column++
		}
		p.Offset++
	}
	return p
}
