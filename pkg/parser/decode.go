package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// IsNamedCharacterReference reports whether name, without `&` and `;`, is a
// known HTML entity.
func IsNamedCharacterReference(name string) bool {
	_, ok := DecodeNamedCharacterReference(name)
	return ok
}

// DecodeNamedCharacterReference returns the text of the entity name.
func DecodeNamedCharacterReference(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	raw := "&" + name + ";"
	decoded := html.UnescapeString(raw)
	// The unescaper also accepts a legacy entity that is only a prefix of
	// name, leaving the rest and the semicolon behind.
	if decoded == raw || (decoded != ";" && strings.HasSuffix(decoded, ";")) {
		return "", false
	}
	return decoded, true
}

// DecodeNumericCharacterReference returns the character for value in base
// 10 or 16. Controls, surrogates and values out of range become U+FFFD.
func DecodeNumericCharacterReference(value string, base int) string {
	code, err := strconv.ParseUint(value, base, 32)
	if err != nil || !isAllowedCodePoint(rune(code)) {
		return string(utf8.RuneError)
	}
	return string(rune(code))
}

func isAllowedCodePoint(r rune) bool {
	switch {
	case r == 0,
		r >= 0x01 && r <= 0x08,
		r == 0x0B,
		r >= 0x0E && r <= 0x1F,
		r >= 0x7F && r <= 0x9F,
		r >= 0xD800 && r <= 0xDFFF,
		r > utf8.MaxRune:
		return false
	}
	return true
}
