// Package message defines the structured failure returned when an
// extension construct meets a real syntax error.
package message

import (
	"bytes"
	"strings"

	"github.com/yaklabco/gomdparse/pkg/event"
)

// Source is the default value of Message.Source.
const Source = "gomdparse"

// Rule identifiers used by the parser.
const (
	RuleUnexpectedEOF  = "unexpected-eof"
	RuleUnexpectedLazy = "unexpected-lazy"
)

// Place is where a message applies: a single point, or a span when End
// is set.
type Place struct {
	Start event.Point
	End   *event.Point
}

// PointPlace returns a place at one point.
func PointPlace(p event.Point) *Place {
	return &Place{Start: p}
}

// PositionPlace returns a place spanning start to end.
func PositionPlace(start, end event.Point) *Place {
	return &Place{Start: start, End: &end}
}

// String formats the place as "l:c" or "l:c-l:c".
func (p *Place) String() string {
	if p.End == nil {
		return p.Start.String()
	}
	return p.Start.String() + "-" + p.End.String()
}

// Message is a parse failure. It implements error.
type Message struct {
	// Place is where the problem is, if known.
	Place *Place
	// Reason says what happened and what was expected instead.
	Reason string
	// RuleID is a stable identifier of the problem, e.g. "unexpected-eof".
	RuleID string
	// Source names the component that raised the message.
	Source string
}

// New builds a message from this module's parser.
func New(place *Place, reason, ruleID string) *Message {
	return &Message{Place: place, Reason: reason, RuleID: ruleID, Source: Source}
}

// Error formats the message as "1:2: reason (source:rule)".
func (m *Message) Error() string {
	var b strings.Builder
	if m.Place != nil {
		b.WriteString(m.Place.String())
		b.WriteString(": ")
	}
	b.WriteString(m.Reason)
	b.WriteString(" (")
	b.WriteString(m.Source)
	b.WriteString(":")
	b.WriteString(m.RuleID)
	b.WriteString(")")
	return b.String()
}

// Line returns the 1-based line of source without its line ending, or ""
// when source has fewer lines.
func Line(source []byte, line int) string {
	if line < 1 {
		return ""
	}
	for current := 1; ; current++ {
		end := bytes.IndexAny(source, "\r\n")
		if current == line {
			if end < 0 {
				return string(source)
			}
			return string(source[:end])
		}
		if end < 0 {
			return ""
		}
		if source[end] == '\r' && end+1 < len(source) && source[end+1] == '\n' {
			end++
		}
		source = source[end+1:]
	}
}
