package parser

import (
	"github.com/yaklabco/gomdparse/pkg/event"
)

// characterReferenceStart matches `&amp;`, `&#123;` and `&#x1F;`. Named
// references must be known HTML entities.
func characterReferenceStart(t *tokenizer) state {
	if !t.parse.options.Constructs.CharacterReference || t.current != '&' {
		return stateNok
	}
	t.enter(event.TokCharacterReference)
	t.enter(event.TokCharacterReferenceMarker)
	t.consume()
	t.exit(event.TokCharacterReferenceMarker)
	return next(characterReferenceOpen)
}

func characterReferenceOpen(t *tokenizer) state {
	if t.current == '#' {
		t.enter(event.TokCharacterReferenceMarkerNumeric)
		t.consume()
		t.exit(event.TokCharacterReferenceMarkerNumeric)
		return next(characterReferenceNumeric)
	}
	t.ts.marker = '&'
	t.enter(event.TokCharacterReferenceValue)
	return retry(characterReferenceValue)
}

func characterReferenceNumeric(t *tokenizer) state {
	if t.current == 'x' || t.current == 'X' {
		t.enter(event.TokCharacterReferenceMarkerHexadecimal)
		t.consume()
		t.exit(event.TokCharacterReferenceMarkerHexadecimal)
		t.enter(event.TokCharacterReferenceValue)
		t.ts.marker = 'x'
		return next(characterReferenceValue)
	}
	t.enter(event.TokCharacterReferenceValue)
	t.ts.marker = '#'
	return retry(characterReferenceValue)
}

func characterReferenceValue(t *tokenizer) state {
	if t.current == ';' && t.ts.size > 0 {
		if t.ts.marker == '&' {
			name := string(t.parse.source[t.point.Offset-t.ts.size : t.point.Offset])
			if !IsNamedCharacterReference(name) {
				t.ts.marker = 0
				t.ts.size = 0
				return stateNok
			}
		}
		t.exit(event.TokCharacterReferenceValue)
		t.enter(event.TokCharacterReferenceMarkerSemi)
		t.consume()
		t.exit(event.TokCharacterReferenceMarkerSemi)
		t.exit(event.TokCharacterReference)
		t.ts.marker = 0
		t.ts.size = 0
		return stateOk
	}

	var sizeMax int
	var test func(int) bool
	switch t.ts.marker {
	case 'x':
		sizeMax, test = characterReferenceHexadecimalSizeMax, isHexDigit
	case '#':
		sizeMax, test = characterReferenceDecimalSizeMax, isDigit
	default:
		sizeMax, test = characterReferenceNamedSizeMax, isASCIIAlphanumeric
	}

	if t.ts.size < sizeMax && test(t.current) {
		t.ts.size++
		t.consume()
		return next(characterReferenceValue)
	}
	t.ts.marker = 0
	t.ts.size = 0
	return stateNok
}

func isHexDigit(c int) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
