package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// A footnote definition is a container: `[^label]:` followed by flow, with
// later lines indented four spaces.

func gfmFootnoteDefinitionStart(t *tokenizer) state {
	if !t.parse.options.Constructs.GFMFootnoteDefinition {
		return stateNok
	}
	t.enter(event.TokGFMFootnoteDefinition)
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(gfmFootnoteDefinitionLabelBefore), stateNok)
		return retry(spaceOrTabMinMax(t, 1, indentMax(t)))
	}
	return retry(gfmFootnoteDefinitionLabelBefore)
}

func gfmFootnoteDefinitionLabelBefore(t *tokenizer) state {
	if t.current != '[' {
		return stateNok
	}
	t.enter(event.TokGFMFootnoteDefinitionPrefix)
	t.enter(event.TokGFMFootnoteDefinitionLabel)
	t.enter(event.TokGFMFootnoteDefinitionLabelMarker)
	t.consume()
	t.exit(event.TokGFMFootnoteDefinitionLabelMarker)
	return next(gfmFootnoteDefinitionLabelAtMarker)
}

func gfmFootnoteDefinitionLabelAtMarker(t *tokenizer) state {
	if t.current != '^' {
		return stateNok
	}
	t.enter(event.TokGFMFootnoteDefinitionMarker)
	t.consume()
	t.exit(event.TokGFMFootnoteDefinitionMarker)
	t.enter(event.TokGFMFootnoteDefinitionLabelString)
	t.enterLink(event.TokData, event.ContentString)
	return next(gfmFootnoteDefinitionLabelInside)
}

// gfmFootnoteDefinitionLabelInside eats the label, which cannot be empty
// or contain whitespace.
func gfmFootnoteDefinitionLabelInside(t *tokenizer) state {
	switch {
	case t.ts.size > linkReferenceSizeMax || t.current == eof || t.current == '\t' ||
		t.current == '\n' || t.current == ' ' || t.current == '[' ||
		(t.current == ']' && t.ts.size == 0):
		t.ts.size = 0
		return stateNok
	case t.current == ']':
		t.ts.size = 0
		t.exit(event.TokData)
		t.exit(event.TokGFMFootnoteDefinitionLabelString)
		t.enter(event.TokGFMFootnoteDefinitionLabelMarker)
		t.consume()
		t.exit(event.TokGFMFootnoteDefinitionLabelMarker)
		t.exit(event.TokGFMFootnoteDefinitionLabel)
		return next(gfmFootnoteDefinitionLabelAfter)
	}

	escape := t.current == '\\'
	t.consume()
	t.ts.size++
	if escape {
		return next(gfmFootnoteDefinitionLabelEscape)
	}
	return next(gfmFootnoteDefinitionLabelInside)
}

func gfmFootnoteDefinitionLabelEscape(t *tokenizer) state {
	switch t.current {
	case '[', '\\', ']':
		t.ts.size++
		t.consume()
		return next(gfmFootnoteDefinitionLabelInside)
	default:
		return retry(gfmFootnoteDefinitionLabelInside)
	}
}

func gfmFootnoteDefinitionLabelAfter(t *tokenizer) state {
	if t.current != ':' {
		return stateNok
	}

	exit := skipToBack(t.events, len(t.events)-1, event.TokGFMFootnoteDefinitionLabelString)
	id := NormalizeIdentifier(string(tokenSource(t.parse.source, t.events, exit)))
	t.ts.gfmFootnoteDefinitions = append(t.ts.gfmFootnoteDefinitions, id)

	t.enter(event.TokDefinitionMarker)
	t.consume()
	t.exit(event.TokDefinitionMarker)
	t.attempt(next(gfmFootnoteDefinitionWhitespaceAfter), stateNok)
	return next(spaceOrTabMinMax(t, 0, unbounded))
}

func gfmFootnoteDefinitionWhitespaceAfter(t *tokenizer) state {
	t.exit(event.TokGFMFootnoteDefinitionPrefix)
	return stateOk
}

// gfmFootnoteDefinitionContStart continues an open footnote definition on
// a later line: blank, or indented by at least four.
func gfmFootnoteDefinitionContStart(t *tokenizer) state {
	t.check(next(gfmFootnoteDefinitionContBlank), next(gfmFootnoteDefinitionContFilled))
	return retry(blankLineStart)
}

func gfmFootnoteDefinitionContBlank(t *tokenizer) state {
	if t.current == '\t' || t.current == ' ' {
		return retry(spaceOrTabMinMax(t, 0, tabSize))
	}
	return stateOk
}

func gfmFootnoteDefinitionContFilled(t *tokenizer) state {
	if t.current == '\t' || t.current == ' ' {
		return retry(spaceOrTabMinMax(t, tabSize, tabSize))
	}
	return stateNok
}
