package parser_test

import (
	"testing"

	"github.com/yaklabco/gomdparse/pkg/event"
	"github.com/yaklabco/gomdparse/pkg/parser"
)

// FuzzParse checks that any input parses to a balanced, ordered event list
// whose top-level events cover the input byte for byte.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"Hello, world!",
		"# Heading\n\nParagraph with *emphasis* and **strong**.\n",
		"- item 1\n- item 2\n\n1. one\n2) two\n",
		"> quote\nlazy\n> > nested",
		"```go\nfunc main() {}\n```",
		"    indented\n\tcode",
		"[link](url \"title\") ![image](src) [ref][] [ref]\n\n[ref]: /x",
		"<div>\n*html*\n</div>\n\n<!-- c --> <a href=\"x\">",
		"Title\n=====\n\nSub\n---",
		"a  \nb\\\nc",
		"line1\r\nline2\rline3",
		"~~strike~~ - [x] task $math$ $$\nblock\n$$",
		"&amp; &#35; &#x22; &nope; \\*",
		"***a*** _b_ __c__ *d _e* f_ [a [b](c) d](e)",
		"\uFEFF---\ntitle: x\n---\n",
		"see https://a.b/c?d, www.e.f and g@h.ij (mailto:k@l.mn)",
		"a[^1] [^nope]\n\n[^1]: note\n    more\n",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	opts := parser.GFMOptions()
	opts.Constructs.Frontmatter = true
	opts.Constructs.MathFlow = true
	opts.Constructs.MathText = true

	f.Fuzz(func(t *testing.T, data []byte) {
		doc, err := parser.Parse(data, opts)
		// CommonMark and GFM never fail.
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		if err := event.Validate(doc.Events); err != nil {
			t.Fatalf("invalid events: %v", err)
		}

		for i, ev := range doc.Events {
			if ev.Point.Offset > len(data) {
				t.Fatalf("event %d (%s) past end of input %d", i, ev, len(data))
			}
		}

		depth, covered := 0, 0
		for i, ev := range doc.Events {
			if ev.Kind == event.Exit {
				depth--
				if depth == 0 {
					covered = ev.Point.Offset
				}
				continue
			}
			if depth == 0 && ev.Point.Offset != covered {
				t.Fatalf("event %d (%s) starts at %d, previous top-level event ends at %d", i, ev, ev.Point.Offset, covered)
			}
			depth++
		}
		if covered != len(data) {
			t.Fatalf("top-level events end at %d, input is %d bytes", covered, len(data))
		}
	})
}
