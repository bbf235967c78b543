package pretty

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gomdparse/pkg/event"
)

// FormatEvents formats an event stream one event per line, indented by
// nesting depth. Exits of tokens with no nested events also show the
// source text they span.
func (s *Styles) FormatEvents(events []event.Event, source []byte) string {
	var builder strings.Builder
	depths := event.Depth(events)

	for i, ev := range events {
		builder.WriteString(strings.Repeat("  ", depths[i]))

		if ev.Kind == event.Enter {
			builder.WriteString(s.EventEnter.Render("enter"))
		} else {
			builder.WriteString(s.EventExit.Render("exit "))
		}
		builder.WriteString(" ")
		builder.WriteString(s.EventToken.Render(ev.Token.String()))
		builder.WriteString(" ")
		builder.WriteString(s.Location.Render(ev.Point.String()))

		if ev.Kind == event.Exit && i > 0 && events[i-1].Kind == event.Enter && events[i-1].Token == ev.Token {
			builder.WriteString(" ")
			builder.WriteString(s.EventText.Render(strconv.Quote(event.Slice(events, source, i))))
		}
		builder.WriteString("\n")
	}

	return builder.String()
}
