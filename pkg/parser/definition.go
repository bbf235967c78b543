package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// definitionStart parses `[label]: destination "title"`. It only runs in
// content, before any paragraph.
func definitionStart(t *tokenizer) state {
	if !t.parse.options.Constructs.Definition {
		return stateNok
	}
	// A definition cannot interrupt a paragraph, but may follow another
	// definition.
	if t.interrupt {
		before := skipOptBack(t.events, len(t.events)-1, event.TokLineEnding, event.TokSpaceOrTab)
		if before < 0 || t.events[before].Token != event.TokDefinition {
			return stateNok
		}
	}

	t.enter(event.TokDefinition)
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(definitionBefore), stateNok)
		return retry(spaceOrTab(t))
	}
	return retry(definitionBefore)
}

func definitionBefore(t *tokenizer) state {
	if t.current != '[' {
		return stateNok
	}
	t.ts.token1 = event.TokDefinitionLabel
	t.ts.token2 = event.TokDefinitionLabelMarker
	t.ts.token3 = event.TokDefinitionLabelString
	t.attempt(next(definitionLabelAfter), next(definitionLabelNok))
	return retry(labelStartState)
}

func definitionLabelNok(t *tokenizer) state {
	resetTokens(t)
	return stateNok
}

func definitionLabelAfter(t *tokenizer) state {
	resetTokens(t)
	t.ts.end = skipToBack(t.events, len(t.events)-1, event.TokDefinitionLabelString)

	if t.current != ':' {
		t.ts.end = 0
		return stateNok
	}
	t.enter(event.TokDefinitionMarker)
	t.consume()
	t.exit(event.TokDefinitionMarker)
	return next(definitionMarkerAfter)
}

func definitionMarkerAfter(t *tokenizer) state {
	t.attempt(next(definitionDestinationBefore), next(definitionDestinationBefore))
	return retry(spaceOrTabEOL(t))
}

func definitionDestinationBefore(t *tokenizer) state {
	t.ts.token1 = event.TokDefinitionDestination
	t.ts.token2 = event.TokDefinitionDestinationLiteral
	t.ts.token3 = event.TokDefinitionDestinationLiteralMarker
	t.ts.token4 = event.TokDefinitionDestinationRaw
	t.ts.token5 = event.TokDefinitionDestinationString
	t.ts.sizeB = unbounded
	t.attempt(next(definitionDestinationAfter), next(definitionDestinationMissing))
	return retry(destinationStart)
}

func definitionDestinationAfter(t *tokenizer) state {
	resetTokens(t)
	t.ts.sizeB = 0
	t.attempt(next(definitionAfter), next(definitionAfter))
	return retry(definitionTitleBefore)
}

func definitionDestinationMissing(t *tokenizer) state {
	resetTokens(t)
	t.ts.sizeB = 0
	t.ts.end = 0
	return stateNok
}

func definitionAfter(t *tokenizer) state {
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(definitionAfterWhitespace), stateNok)
		return retry(spaceOrTab(t))
	}
	return retry(definitionAfterWhitespace)
}

func definitionAfterWhitespace(t *tokenizer) state {
	if t.current != eof && t.current != '\n' {
		t.ts.end = 0
		return stateNok
	}
	t.exit(event.TokDefinition)

	label := tokenSource(t.parse.source, t.events, t.ts.end)
	t.ts.definitions = append(t.ts.definitions, NormalizeIdentifier(string(label)))
	t.ts.end = 0

	// Another definition may follow right away.
	t.interrupt = true
	return stateOk
}

// definitionTitleBefore needs whitespace, possibly one line ending, between
// destination and title.
func definitionTitleBefore(t *tokenizer) state {
	if t.current != '\t' && t.current != '\n' && t.current != ' ' {
		return stateNok
	}
	t.attempt(next(definitionTitleBeforeMarker), stateNok)
	return retry(spaceOrTabEOL(t))
}

func definitionTitleBeforeMarker(t *tokenizer) state {
	t.ts.token1 = event.TokDefinitionTitle
	t.ts.token2 = event.TokDefinitionTitleMarker
	t.ts.token3 = event.TokDefinitionTitleString
	t.attempt(next(definitionTitleAfter), next(definitionLabelNok))
	return retry(titleStart)
}

func definitionTitleAfter(t *tokenizer) state {
	resetTokens(t)
	if t.current == '\t' || t.current == ' ' {
		t.attempt(next(definitionTitleAfterWhitespace), stateNok)
		return retry(spaceOrTab(t))
	}
	return retry(definitionTitleAfterWhitespace)
}

func definitionTitleAfterWhitespace(t *tokenizer) state {
	if t.current == eof || t.current == '\n' {
		return stateOk
	}
	return stateNok
}

// tokenSource returns the source bytes of the token whose exit event is at
// exitIndex.
func tokenSource(source []byte, events []event.Event, exitIndex int) []byte {
	enterIndex := exitIndex - 1
	depth := 0
	for ; enterIndex >= 0; enterIndex-- {
		ev := events[enterIndex]
		if ev.Token != events[exitIndex].Token {
			continue
		}
		if ev.Kind == event.Exit {
			depth++
			continue
		}
		if depth == 0 {
			break
		}
		depth--
	}
	if enterIndex < 0 {
		return nil
	}
	return source[events[enterIndex].Point.Offset:events[exitIndex].Point.Offset]
}
