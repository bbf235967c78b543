package parser

import (
	"slices"

	"github.com/yaklabco/gomdparse/pkg/event"
)

// skipOpt skips forward past whole tokens of the given kinds, starting at
// index, and returns the first index of another token.
func skipOpt(events []event.Event, index int, tokens ...event.TokenKind) int {
	return skipOptImpl(events, index, tokens, true)
}

// skipOptBack is skipOpt going backwards. It may return -1.
func skipOptBack(events []event.Event, index int, tokens ...event.TokenKind) int {
	return skipOptImpl(events, index, tokens, false)
}

// skipToward moves forward from index to the first event of one of tokens, or
// to len(events).
func skipToward(events []event.Event, index int, tokens ...event.TokenKind) int {
	for index < len(events) {
		if slices.Contains(tokens, events[index].Token) {
			return index
		}
		index++
	}
	return index
}

// skipToBack moves backward from index to the first event of one of
// tokens, or to -1.
func skipToBack(events []event.Event, index int, tokens ...event.TokenKind) int {
	for index >= 0 {
		if slices.Contains(tokens, events[index].Token) {
			return index
		}
		index--
	}
	return index
}

func skipOptImpl(events []event.Event, index int, tokens []event.TokenKind, forward bool) int {
	balance := 0
	open := event.Enter
	if !forward {
		open = event.Exit
	}

	for index >= 0 && index < len(events) {
		current := events[index].Token
		if !slices.Contains(tokens, current) || events[index].Kind != open {
			break
		}
		index = step(index, forward)
		balance++
		for index >= 0 && index < len(events) {
			ev := events[index]
			if ev.Kind == open {
				balance++
			} else {
				balance--
			}
			if ev.Token == current && ev.Kind != open && balance == 0 {
				index = step(index, forward)
				break
			}
			index = step(index, forward)
		}
		balance = 0
	}

	return index
}

func step(index int, forward bool) int {
	if forward {
		return index + 1
	}
	return index - 1
}
