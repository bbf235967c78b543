package parser

import (
	"slices"

	"github.com/yaklabco/gomdparse/pkg/event"
)

// Attention is runs of `*` and `_` (emphasis and strong) and, with GFM,
// `~` (strikethrough). Runs are tokenized as sequences first and paired
// up afterwards.

type attentionSequence struct {
	marker     byte
	stack      []int
	index      int
	startPoint event.Point
	endPoint   event.Point
	size       int
	open       bool
	close      bool
}

func attentionStart(t *tokenizer) state {
	c := t.parse.options.Constructs
	if !(c.Attention && (t.current == '*' || t.current == '_')) &&
		!(c.GFMStrikethrough && t.current == '~') {
		return stateNok
	}
	t.ts.marker = byte(t.current)
	t.enter(event.TokAttentionSequence)
	return retry(attentionInside)
}

func attentionInside(t *tokenizer) state {
	if t.current == int(t.ts.marker) {
		t.consume()
		return next(attentionInside)
	}
	t.exit(event.TokAttentionSequence)
	t.registerResolver(resolverAttention)
	t.ts.marker = 0
	return stateOk
}

// resolveAttention pairs sequences, closest opener first. Whatever is not
// paired becomes data.
func resolveAttention(t *tokenizer) {
	sequences := attentionSequences(t)
	singleTilde := t.parse.options.GFMStrikethroughSingleTilde

	for closeAt := 0; closeAt < len(sequences); {
		closer := sequences[closeAt]
		nextAt := closeAt + 1

		if closer.close {
			for openAt := closeAt - 1; openAt >= 0; openAt-- {
				opener := sequences[openAt]
				if !opener.open || opener.marker != closer.marker || !slices.Equal(opener.stack, closer.stack) {
					continue
				}
				// Rule of three: a run that can both open and close does
				// not pair when the sizes add up to a multiple of three.
				if (opener.close || closer.open) && closer.size%3 != 0 && (opener.size+closer.size)%3 == 0 {
					continue
				}
				if closer.marker == '~' &&
					(closer.size != opener.size || closer.size > 2 || (closer.size == 1 && !singleTilde)) {
					continue
				}
				sequences, nextAt = matchAttention(t, sequences, openAt, closeAt)
				break
			}
		}

		closeAt = nextAt
	}

	for _, s := range sequences {
		t.events[s.index].Token = event.TokData
		t.events[s.index+1].Token = event.TokData
	}

	t.edits.consume(&t.events)
}

func attentionSequences(t *tokenizer) []*attentionSequence {
	source := t.parse.source
	strikethrough := t.parse.options.Constructs.GFMStrikethrough

	var stack []int
	var sequences []*attentionSequence

	for index, enter := range t.events {
		if enter.Token != event.TokAttentionSequence {
			if enter.Kind == event.Enter {
				stack = append(stack, index)
			} else if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			continue
		}
		if enter.Kind != event.Enter {
			continue
		}

		exit := t.events[index+1]
		marker := source[enter.Point.Offset]
		beforeRune, beforeOK := runeBefore(source, enter.Point.Offset)
		afterRune, afterOK := runeAfter(source, exit.Point.Offset)
		before := classifyRune(beforeRune, beforeOK)
		after := classifyRune(afterRune, afterOK)

		// Other attention markers next to a run count as punctuation that
		// still lets it open or close.
		otherMarker := func(r rune, ok bool) bool {
			if !ok || marker == '~' {
				return false
			}
			return r == '*' || r == '_' || (strikethrough && r == '~')
		}

		open := after == charOther ||
			(after == charPunctuation && before != charOther) ||
			otherMarker(afterRune, afterOK)
		closing := before == charOther ||
			(before == charPunctuation && after != charOther) ||
			otherMarker(beforeRune, beforeOK)

		// Intraword `_` does not open or close.
		if marker == '_' {
			open, closing = open && (before != charOther || !closing), closing && (after != charOther || !open)
		}

		sequences = append(sequences, &attentionSequence{
			marker:     marker,
			stack:      slices.Clone(stack),
			index:      index,
			startPoint: enter.Point,
			endPoint:   exit.Point,
			size:       exit.Point.Offset - enter.Point.Offset,
			open:       open,
			close:      closing,
		})
	}

	return sequences
}

// matchAttention wraps the text between two sequences and takes one or
// two markers from each. It returns the updated sequences and where to
// continue looking for closers.
func matchAttention(t *tokenizer, sequences []*attentionSequence, openAt, closeAt int) ([]*attentionSequence, int) {
	nextAt := closeAt
	opener := sequences[openAt]
	closer := sequences[closeAt]

	take := 1
	if opener.size > 1 && closer.size > 1 {
		take = 2
	}

	// Sequences in between can no longer open.
	for _, s := range sequences[openAt+1 : closeAt] {
		s.open = false
	}

	group, seq, text := event.TokEmphasis, event.TokEmphasisSequence, event.TokEmphasisText
	switch {
	case opener.marker == '~':
		group, seq, text = event.TokGFMStrikethrough, event.TokGFMStrikethroughSequence, event.TokGFMStrikethroughText
	case take == 2:
		group, seq, text = event.TokStrong, event.TokStrongSequence, event.TokStrongText
	}

	openExit := opener.endPoint
	closeEnter := closer.startPoint

	opener.size -= take
	closer.size -= take
	opener.endPoint.Column -= take
	opener.endPoint.Offset -= take
	closer.startPoint.Column += take
	closer.startPoint.Offset += take

	t.edits.addBefore(opener.index+2, 0, []event.Event{
		{Kind: event.Enter, Token: group, Point: opener.endPoint},
		{Kind: event.Enter, Token: seq, Point: opener.endPoint},
		{Kind: event.Exit, Token: seq, Point: openExit},
		{Kind: event.Enter, Token: text, Point: openExit},
	})
	t.edits.add(closer.index, 0, []event.Event{
		{Kind: event.Exit, Token: text, Point: closeEnter},
		{Kind: event.Enter, Token: seq, Point: closeEnter},
		{Kind: event.Exit, Token: seq, Point: closer.startPoint},
		{Kind: event.Exit, Token: group, Point: closer.startPoint},
	})

	if closer.size == 0 {
		sequences = slices.Delete(sequences, closeAt, closeAt+1)
		t.edits.add(closer.index, 2, nil)
	} else {
		t.events[closer.index].Point = closer.startPoint
	}

	if opener.size == 0 {
		sequences = slices.Delete(sequences, openAt, openAt+1)
		t.edits.add(opener.index, 2, nil)
		nextAt--
	} else {
		t.events[opener.index+1].Point = opener.endPoint
	}

	return sequences, nextAt
}
