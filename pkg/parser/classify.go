package parser

import (
	"unicode"
	"unicode/utf8"
)

// charKind is how a character around an attention sequence counts for
// flanking.
type charKind uint8

const (
	charWhitespace charKind = iota
	charPunctuation
	charOther
)

// classifyRune puts r in its flanking class. The start and end of the
// input count as whitespace.
func classifyRune(r rune, ok bool) charKind {
	switch {
	case !ok || unicode.IsSpace(r):
		return charWhitespace
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return charPunctuation
	default:
		return charOther
	}
}

// runeBefore decodes the character that ends right before offset.
func runeBefore(source []byte, offset int) (rune, bool) {
	if offset <= 0 {
		return 0, false
	}
	r, _ := utf8.DecodeLastRune(source[:offset])
	return r, true
}

// runeAfter decodes the character that starts at offset.
func runeAfter(source []byte, offset int) (rune, bool) {
	if offset >= len(source) {
		return 0, false
	}
	r, _ := utf8.DecodeRune(source[offset:])
	return r, true
}

// classifyAfter classifies the character starting at offset.
func classifyAfter(source []byte, offset int) charKind {
	r, ok := runeAfter(source, offset)
	return classifyRune(r, ok)
}
