package event

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Validate.
var (
	ErrUnbalanced = errors.New("unbalanced events")
	ErrOutOfOrder = errors.New("events out of order")
	ErrBadLink    = errors.New("invalid link")
)

// Validate checks that events are stack-balanced, that every exit closes
// the most recently entered token, that offsets never decrease, and that
// link indices point at enter events of the same content type.
func Validate(events []Event) error {
	stack := make([]TokenKind, 0, 16)
	previous := 0

	for i, ev := range events {
		if ev.Point.Offset < previous {
			return fmt.Errorf("%w: event %d (%s) at offset %d after offset %d",
				ErrOutOfOrder, i, ev, ev.Point.Offset, previous)
		}
		previous = ev.Point.Offset

		if ev.Kind == Enter {
			stack = append(stack, ev.Token)
			if err := validateLink(events, i); err != nil {
				return err
			}
			continue
		}

		if len(stack) == 0 {
			return fmt.Errorf("%w: event %d (%s) exits with nothing open", ErrUnbalanced, i, ev)
		}
		top := stack[len(stack)-1]
		if top != ev.Token {
			return fmt.Errorf("%w: event %d (%s) exits while %s is open", ErrUnbalanced, i, ev, top)
		}
		stack = stack[:len(stack)-1]
	}

	if len(stack) > 0 {
		return fmt.Errorf("%w: %d tokens left open, innermost %s", ErrUnbalanced, len(stack), stack[len(stack)-1])
	}

	return nil
}

func validateLink(events []Event, index int) error {
	link := events[index].Link
	if link == nil {
		return nil
	}
	for _, other := range []int{link.Previous, link.Next} {
		if other == -1 {
			continue
		}
		if other < 0 || other >= len(events) || events[other].Kind != Enter || events[other].Link == nil {
			return fmt.Errorf("%w: event %d links to %d", ErrBadLink, index, other)
		}
		if events[other].Link.Content != link.Content {
			return fmt.Errorf("%w: event %d links %s to %s", ErrBadLink, index, link.Content, events[other].Link.Content)
		}
	}
	return nil
}

// Depth returns the nesting depth of every event: enter events get the
// depth of the token they open, exits the same depth as their enter.
func Depth(events []Event) []int {
	depths := make([]int, len(events))
	depth := 0
	for i, ev := range events {
		if ev.Kind == Enter {
			depths[i] = depth
			depth++
		} else {
			depth--
			depths[i] = depth
		}
	}
	return depths
}
