package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

func characterEscapeStart(t *tokenizer) state {
	if !t.parse.options.Constructs.CharacterEscape || t.current != '\\' {
		return stateNok
	}
	t.enter(event.TokCharacterEscape)
	t.enter(event.TokCharacterEscapeMarker)
	t.consume()
	t.exit(event.TokCharacterEscapeMarker)
	return next(characterEscapeInside)
}

func characterEscapeInside(t *tokenizer) state {
	if !isASCIIPunctuation(t.current) {
		return stateNok
	}
	t.enter(event.TokCharacterEscapeValue)
	t.consume()
	t.exit(event.TokCharacterEscapeValue)
	t.exit(event.TokCharacterEscape)
	return stateOk
}

func isASCIIPunctuation(c int) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') || (c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}

func hardBreakEscapeStart(t *tokenizer) state {
	if !t.parse.options.Constructs.HardBreakEscape || t.current != '\\' {
		return stateNok
	}
	t.enter(event.TokHardBreakEscape)
	t.consume()
	return next(hardBreakEscapeAfter)
}

func hardBreakEscapeAfter(t *tokenizer) state {
	if t.current != '\n' {
		return stateNok
	}
	t.exit(event.TokHardBreakEscape)
	return stateOk
}
