package event

import (
	"slices"
	"strings"
)

// ListLoose reports whether the list entered at index is loose: an item
// is loose, or a blank line sits directly between two items.
func ListLoose(events []Event, index int) bool {
	token := events[index].Token
	balance := 0

	for ; index < len(events); index++ {
		ev := events[index]
		if ev.Kind == Enter {
			balance++
			if balance == 2 && ev.Token == TokListItem && ListItemLoose(events, index) {
				return true
			}
			continue
		}

		balance--
		if balance == 1 && ev.Token == TokBlankLineEnding && !blankAfterEmptyStart(events, index) {
			return true
		}
		if balance == 0 && ev.Token == token {
			break
		}
	}

	return false
}

// blankAfterEmptyStart reports whether the blank line ending at index
// follows an item or block quote that has nothing on its first line.
func blankAfterEmptyStart(events []Event, index int) bool {
	before := index - 2
	if events[before].Token != TokListItem {
		return false
	}
	before--
	if events[before].Token == TokSpaceOrTab {
		before -= 2
	}
	if events[before].Token == TokBlockQuote && events[before-1].Token == TokBlockQuotePrefix {
		return true
	}
	return events[before].Token == TokListItemPrefix
}

// ListItemLoose reports whether the item entered at index holds a blank
// line other than one right after its prefix.
func ListItemLoose(events []Event, index int) bool {
	balance := 0

	for ; index < len(events); index++ {
		ev := events[index]
		if ev.Kind == Enter {
			balance++
			continue
		}

		balance--
		if balance == 1 && ev.Token == TokBlankLineEnding {
			before := index - 2
			if events[before].Token == TokSpaceOrTab {
				before -= 2
			}
			if events[before].Token != TokListItemPrefix {
				return true
			}
		}
		if balance == 0 && ev.Token == TokListItem {
			break
		}
	}

	return false
}

// SkipBack walks back from the exit at index over whole tokens of the
// given kinds and returns the index before the first one skipped.
func SkipBack(events []Event, index int, tokens ...TokenKind) int {
	for index >= 0 && events[index].Kind == Exit && slices.Contains(tokens, events[index].Token) {
		index = EnterIndex(events, index) - 1
	}
	return index
}

// EnterIndex finds the enter event matching the exit at index.
func EnterIndex(events []Event, index int) int {
	depth := 0
	for i := index - 1; i >= 0; i-- {
		if events[i].Kind == Exit {
			depth++
			continue
		}
		if depth == 0 {
			return i
		}
		depth--
	}
	return index
}

// ExitIndex finds the exit event matching the enter at index.
func ExitIndex(events []Event, index int) int {
	depth := 0
	for i := index + 1; i < len(events); i++ {
		if events[i].Kind == Enter {
			depth++
			continue
		}
		if depth == 0 {
			return i
		}
		depth--
	}
	return index
}

// tabSize is the column width of a tab stop.
const tabSize = 4

// Serialize returns the source between start and end. Virtual spaces of a
// tab that is split by either point become real spaces.
func Serialize(source []byte, start, end Point) string {
	if start.Offset == end.Offset {
		return strings.Repeat(" ", end.Virtual-start.Virtual)
	}

	var b strings.Builder
	from := start.Offset
	if start.Virtual > 0 {
		b.WriteString(strings.Repeat(" ", tabSize-(start.Column-1)%tabSize))
		from++
	}
	b.Write(source[from:end.Offset])
	b.WriteString(strings.Repeat(" ", end.Virtual))
	return b.String()
}

// Slice serializes the token that exits at index.
func Slice(events []Event, source []byte, index int) string {
	return Serialize(source, events[EnterIndex(events, index)].Point, events[index].Point)
}
