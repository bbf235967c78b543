package html

import (
	"fmt"
	"strings"
)

//nolint:gochecknoglobals // Read-only lookup table.
var (
	safeProtocolHref = []string{"http", "https", "irc", "ircs", "mailto", "xmpp"}
	safeProtocolSrc  = []string{"http", "https"}

	// tagfilterNames are the tags GFM disallows in raw HTML.
	tagfilterNames = []string{
		"iframe", "noembed", "noframes", "plaintext", "script",
		"style", "textarea", "title", "xmp",
	}
)

const tagfilterSizeMax = 9

// encode replaces NUL with U+FFFD and, when html is set, escapes the four
// characters that matter in HTML text and attribute values.
func encode(value string, html bool) string {
	var b strings.Builder
	start := 0

	for i := range len(value) {
		var replacement string
		switch c := value[i]; {
		case c == 0:
			replacement = "\uFFFD"
		case html && c == '&':
			replacement = "&amp;"
		case html && c == '"':
			replacement = "&quot;"
		case html && c == '<':
			replacement = "&lt;"
		case html && c == '>':
			replacement = "&gt;"
		default:
			continue
		}
		b.WriteString(value[start:i])
		b.WriteString(replacement)
		start = i + 1
	}

	if start == 0 {
		return value
	}
	b.WriteString(value[start:])
	return b.String()
}

// sanitize percent-encodes what may not appear in a URL and encodes the
// result for an attribute.
func sanitize(value string) string {
	return encode(normalizeURL(value), true)
}

// sanitizeWithProtocols is sanitize that also drops URLs whose protocol is
// not in protocols. Relative URLs are kept.
func sanitizeWithProtocols(value string, protocols []string) string {
	value = sanitize(value)

	colon := strings.IndexByte(value, ':')
	if end := strings.IndexAny(value, "?#/"); end != -1 && colon > end {
		colon = -1
	}
	if colon == -1 {
		return value
	}

	protocol := strings.ToLower(value[:colon])
	for _, p := range protocols {
		if p == protocol {
			return value
		}
	}
	return ""
}

// normalizeURL percent-encodes characters outside the URL-safe ASCII set,
// keeping valid percent escapes.
func normalizeURL(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	runes := []rune(value)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '%' && i+2 < len(runes) && isASCIIAlphanumeric(runes[i+1]) && isASCIIAlphanumeric(runes[i+2]) {
			b.WriteRune(r)
			b.WriteRune(runes[i+1])
			b.WriteRune(runes[i+2])
			i += 2
			continue
		}
		if r < 0x80 && isURLSafe(byte(r)) {
			b.WriteRune(r)
			continue
		}
		for _, c := range []byte(string(r)) {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}

	return b.String()
}

func isURLSafe(c byte) bool {
	switch {
	case c == '!', c == '#', c == '$', c == '=', c == '_', c == '~':
		return true
	case c >= '&' && c <= ';':
		return true
	case c >= '?' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	}
	return false
}

func isASCIIAlphanumeric(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// tagfilter encodes the opening `<` of tags named in tagfilterNames.
func tagfilter(value string) string {
	var b strings.Builder
	start := 0

	for i := 0; i < len(value); {
		if value[i] != '<' {
			i++
			continue
		}

		nameStart := i + 1
		if nameStart < len(value) && value[nameStart] == '/' {
			nameStart++
		}
		nameEnd := nameStart
		for nameEnd < len(value) && nameEnd-nameStart < tagfilterSizeMax && isASCIIAlpha(value[nameEnd]) {
			nameEnd++
		}

		terminated := nameEnd == len(value) ||
			(nameEnd != nameStart && strings.IndexByte("\t\n\f\r />", value[nameEnd]) != -1)
		if terminated && isFilteredTag(value[nameStart:nameEnd]) {
			b.WriteString(value[start:i])
			b.WriteString("&lt;")
			start = i + 1
		}

		i = nameEnd
	}

	if start == 0 {
		return value
	}
	b.WriteString(value[start:])
	return b.String()
}

func isFilteredTag(name string) bool {
	name = strings.ToLower(name)
	for _, n := range tagfilterNames {
		if n == name {
			return true
		}
	}
	return false
}

func isASCIIAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
