package parser

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeIdentifier turns a link label into the key used to match
// references with definitions: runs of whitespace become one space, the
// ends are trimmed, and case is folded.
func NormalizeIdentifier(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	space := false
	for _, r := range value {
		switch r {
		case '\t', '\n', '\r', ' ':
			space = b.Len() > 0
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			b.WriteRune(r)
		}
	}

	return cases.Fold().String(b.String())
}
