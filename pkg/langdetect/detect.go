// Package langdetect guesses the language of the code in a fenced code block
// that has no info string.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// sample is code prepared once for all heuristics.
type sample struct {
	raw     []byte
	text    string
	trimmed []byte
	upper   string
}

func newSample(code []byte) sample {
	text := string(code)
	return sample{
		raw:     code,
		text:    text,
		trimmed: bytes.TrimSpace(code),
		upper:   strings.ToUpper(strings.TrimSpace(text)),
	}
}

// heuristic claims code for lang when match is true. Heuristics are tried
// in order.
type heuristic struct {
	lang  string
	match func(s sample) bool
}

//nolint:gochecknoglobals // Read-only lookup table.
var heuristics = []heuristic{
	{"go", func(s sample) bool {
		return bytes.HasPrefix(s.trimmed, []byte("package "))
	}},
	{"python", func(s sample) bool {
		if strings.Contains(s.text, "def ") && strings.Contains(s.text, "):") {
			return true
		}
		if strings.Contains(s.text, "__main__") {
			return true
		}
		return strings.HasPrefix(strings.TrimSpace(s.text), "from ") && strings.Contains(s.text, " import ")
	}},
	{"html", func(s sample) bool {
		lower := bytes.ToLower(s.trimmed)
		for _, tag := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
			if bytes.Contains(lower, []byte(tag)) {
				return true
			}
		}
		return false
	}},
	{"json", func(s sample) bool {
		open := bytes.HasPrefix(s.trimmed, []byte("{")) || bytes.HasPrefix(s.trimmed, []byte("["))
		return open && bytes.Contains(s.trimmed, []byte(`"`))
	}},
	{"dockerfile", func(s sample) bool {
		return bytes.HasPrefix(s.trimmed, []byte("FROM ")) &&
			(bytes.Contains(s.raw, []byte("\nRUN ")) || bytes.Contains(s.raw, []byte("\nCOPY ")))
	}},
	{"sql", func(s sample) bool {
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE TABLE "} {
			if strings.HasPrefix(s.upper, verb) {
				return true
			}
		}
		return false
	}},
	{"rust", func(s sample) bool {
		return strings.Contains(s.text, "fn main()") || strings.Contains(s.text, "println!")
	}},
	{"javascript", func(s sample) bool {
		return strings.Contains(s.text, "console.log") ||
			(strings.Contains(s.text, "=>") && strings.Contains(s.text, "const "))
	}},
	{"yaml", isYAML},
}

// classifierCandidates limits the enry classifier to languages common in
// documentation.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// Detect returns the fence name of the language of code, or false when it
// cannot be told with confidence.
func Detect(code []byte) (string, bool) {
	if len(bytes.TrimSpace(code)) == 0 {
		return "", false
	}

	if lang, safe := enry.GetLanguageByShebang(code); safe {
		return fenceName(lang), true
	}

	s := newSample(code)
	for _, h := range heuristics {
		if h.match(s) {
			return h.lang, true
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(code, classifierCandidates); safe && lang != "" {
		return fenceName(lang), true
	}

	return "", false
}

// isYAML counts lines that look like mapping keys or sequence items.
func isYAML(s sample) bool {
	count := 0
	for _, line := range bytes.Split(s.raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		switch {
		case len(line) == 0, line[0] == '#':
			continue
		case bytes.HasPrefix(line, []byte("- ")):
			count++
		case bytes.HasSuffix(line, []byte(":")) || bytes.Contains(line, []byte(": ")):
			if bytes.ContainsAny(line, "({") || line[0] == '"' {
				return false
			}
			count++
		}
	}
	return count >= 2
}

// fenceName converts an enry language name to the word used after a fence.
func fenceName(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
