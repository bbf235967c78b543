package parser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/gomdparse/pkg/event"
)

// Definition is what a link reference definition points at.
type Definition struct {
	Destination string
	Title       string
}

// Document is the result of a parse.
type Document struct {
	// Events is the flat, balanced event list.
	Events []event.Event
	// Definitions maps normalized labels to the first definition with that
	// label.
	Definitions map[string]Definition
}

// parseState is shared by every tokenizer of one parse.
type parseState struct {
	source      []byte
	options     *Options
	definitions map[string]struct{}
	// footnotes holds the normalized labels of footnote definitions.
	footnotes map[string]struct{}
}

func (p *parseState) defined(label string) bool {
	_, ok := p.definitions[NormalizeIdentifier(label)]
	return ok
}

func (p *parseState) footnoteDefined(id string) bool {
	_, ok := p.footnotes[id]
	return ok
}

func (p *parseState) define(result *subresult) {
	for _, id := range result.definitions {
		p.definitions[id] = struct{}{}
	}
	for _, id := range result.gfmFootnoteDefinitions {
		p.footnotes[id] = struct{}{}
	}
}

// Parse turns source into events.
//
// Flow and content are parsed first, which finds every definition in the
// document. Text is parsed after that, so references may come before the
// definition they use. The only errors are from extensions, as
// *message.Message.
func Parse(source []byte, opts Options) (*Document, error) {
	parse := &parseState{
		source:      source,
		options:     &opts,
		definitions: make(map[string]struct{}),
		footnotes:   make(map[string]struct{}),
	}

	t := newTokenizer(event.Point{Line: 1, Column: 1}, parse)
	s := t.push(skipTo{}, skipTo{offset: len(source)}, next(documentStart))
	result, err := t.flush(s, true)
	if err != nil {
		return nil, err
	}
	parse.define(result)

	events := t.events
	for {
		result, err := subtokenize(&events, parse, 0)
		if err != nil {
			return nil, err
		}
		parse.define(result)
		if result.done {
			break
		}
	}

	event.Relink(events)

	return &Document{
		Events:      events,
		Definitions: collectDefinitions(source, events),
	}, nil
}

// Resolve runs the inline passes (labels, attention and data merging)
// over a finished event list. On the output of Parse it returns an equal
// list.
func Resolve(events []event.Event, source []byte, opts Options) ([]event.Event, error) {
	parse := &parseState{
		source:      source,
		options:     &opts,
		definitions: make(map[string]struct{}),
		footnotes:   make(map[string]struct{}),
	}

	t := newTokenizer(event.Point{Line: 1, Column: 1}, parse)
	t.events = slices.Clone(events)

	for _, r := range inlineResolvers {
		if _, err := t.resolve(r); err != nil {
			return nil, fmt.Errorf("resolve %s: %w", r, err)
		}
	}
	t.edits.consume(&t.events)

	event.Relink(t.events)
	return t.events, nil
}

func collectDefinitions(source []byte, events []event.Event) map[string]Definition {
	definitions := make(map[string]Definition)

	var id string
	var current Definition
	enter := 0

	for index, ev := range events {
		if ev.Kind == event.Enter {
			switch ev.Token {
			case event.TokDefinition:
				id = ""
				current = Definition{}
			case event.TokDefinitionLabelString, event.TokDefinitionDestinationString, event.TokDefinitionTitleString:
				enter = index
			}
			continue
		}

		switch ev.Token {
		case event.TokDefinitionLabelString:
			id = NormalizeIdentifier(string(source[events[enter].Point.Offset:ev.Point.Offset]))
		case event.TokDefinitionDestinationString:
			current.Destination = StringValue(source, events[enter:index+1])
		case event.TokDefinitionTitleString:
			current.Title = StringValue(source, events[enter:index+1])
		case event.TokDefinition:
			if _, ok := definitions[id]; !ok {
				definitions[id] = current
			}
		}
	}

	return definitions
}

// StringValue decodes the string content in events: data and line endings
// are taken as they are, escapes lose their backslash and character
// references are decoded.
func StringValue(source []byte, events []event.Event) string {
	var b strings.Builder
	base := 0

	for index, ev := range events {
		if ev.Kind == event.Enter {
			continue
		}
		raw := func() string {
			return event.Serialize(source, events[index-1].Point, ev.Point)
		}
		switch ev.Token {
		case event.TokData, event.TokLineEnding, event.TokCharacterEscapeValue:
			b.WriteString(raw())
		case event.TokCharacterReferenceMarkerNumeric:
			base = 10
		case event.TokCharacterReferenceMarkerHexadecimal:
			base = 16
		case event.TokCharacterReferenceValue:
			b.WriteString(DecodeCharacterReference(raw(), base))
		case event.TokCharacterReference:
			base = 0
		}
	}

	return b.String()
}

// DecodeCharacterReference decodes the value of a reference. A base of
// zero means a named reference.
func DecodeCharacterReference(value string, base int) string {
	if base == 0 {
		decoded, ok := DecodeNamedCharacterReference(value)
		if !ok {
			return "&" + value + ";"
		}
		return decoded
	}
	return DecodeNumericCharacterReference(value, base)
}
