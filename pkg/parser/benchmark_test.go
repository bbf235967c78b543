package parser_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/gomdparse/pkg/parser"
)

const benchDocument = `# Title

Paragraph with *emphasis*, **strong**, ` + "`code`" + ` and a [link](/url "title").
A second line with an <https://example.com> autolink &amp; a reference.

> A quote
> > nested, with a lazy
continuation.

1. one
2. two
   - nested *item*
   - [ref][]

` + "```go\nfunc main() {}\n```" + `

    indented code

[ref]: /destination "Title"
`

func benchmarkParse(b *testing.B, source []byte, opts parser.Options) {
	b.Helper()
	b.SetBytes(int64(len(source)))
	b.ResetTimer()
	for range b.N {
		if _, err := parser.Parse(source, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseCommonMark(b *testing.B) {
	benchmarkParse(b, []byte(benchDocument), parser.DefaultOptions())
}

func BenchmarkParseGFM(b *testing.B) {
	benchmarkParse(b, []byte(benchDocument+"\n~~gone~~ www.example.com\n\n- [x] done\n"), parser.GFMOptions())
}

func BenchmarkParseLarge(b *testing.B) {
	benchmarkParse(b, []byte(strings.Repeat(benchDocument, 100)), parser.DefaultOptions())
}
