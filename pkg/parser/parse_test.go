package parser_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/pkg/event"
	"github.com/yaklabco/gomdparse/pkg/message"
	"github.com/yaklabco/gomdparse/pkg/parser"
)

func parse(t *testing.T, source string, opts parser.Options) *parser.Document {
	t.Helper()
	doc, err := parser.Parse([]byte(source), opts)
	require.NoError(t, err)
	require.NoError(t, event.Validate(doc.Events), "events of %q", source)
	return doc
}

func entered(doc *parser.Document) []event.TokenKind {
	var kinds []event.TokenKind
	for _, ev := range doc.Events {
		if ev.Kind == event.Enter {
			kinds = append(kinds, ev.Token)
		}
	}
	return kinds
}

func allOptions() parser.Options {
	opts := parser.GFMOptions()
	opts.Constructs.Frontmatter = true
	opts.Constructs.MathFlow = true
	opts.Constructs.MathText = true
	return opts
}

func TestParse_Paragraph(t *testing.T) {
	t.Parallel()

	doc := parse(t, "a", parser.DefaultOptions())

	type simple struct {
		Kind   event.Kind
		Token  event.TokenKind
		Offset int
		Column int
	}
	var got []simple
	for _, ev := range doc.Events {
		got = append(got, simple{ev.Kind, ev.Token, ev.Point.Offset, ev.Point.Column})
	}

	want := []simple{
		{event.Enter, event.TokParagraph, 0, 1},
		{event.Enter, event.TokData, 0, 1},
		{event.Exit, event.TokData, 1, 2},
		{event.Exit, event.TokParagraph, 1, 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	doc := parse(t, "", parser.DefaultOptions())
	assert.Empty(t, doc.Events)
	assert.Empty(t, doc.Definitions)
}

func TestParse_Constructs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   event.TokenKind
	}{
		{"heading atx", "# a", event.TokHeadingATX},
		{"heading setext", "a\n=", event.TokHeadingSetext},
		{"thematic break", "***", event.TokThematicBreak},
		{"block quote", "> a", event.TokBlockQuote},
		{"unordered list", "- a", event.TokListUnordered},
		{"ordered list", "1. a", event.TokListOrdered},
		{"code fenced", "```js\na\n```", event.TokCodeFenced},
		{"code indented", "    a", event.TokCodeIndented},
		{"html flow", "<div>\na", event.TokHTMLFlow},
		{"html text", "a <b> c", event.TokHTMLText},
		{"html comment", "a <!-- b --> c", event.TokHTMLText},
		{"emphasis", "*a*", event.TokEmphasis},
		{"strong", "**a**", event.TokStrong},
		{"code text", "`a`", event.TokCodeText},
		{"autolink", "<https://example.com>", event.TokAutolink},
		{"email autolink", "<a@b.c>", event.TokAutolink},
		{"character escape", `\*`, event.TokCharacterEscape},
		{"character reference", "&amp;", event.TokCharacterReference},
		{"numeric reference", "&#35;", event.TokCharacterReference},
		{"hard break escape", "a\\\nb", event.TokHardBreakEscape},
		{"hard break trailing", "a  \nb", event.TokHardBreakTrailing},
		{"link", "[a](b)", event.TokLink},
		{"image", "![a](b)", event.TokImage},
		{"definition", "[a]: b", event.TokDefinition},
		{"strikethrough", "~~a~~", event.TokGFMStrikethrough},
		{"task list item", "- [x] a", event.TokGFMTaskListItemCheck},
		{"math text", "$a$", event.TokMathText},
		{"math flow", "$$\na\n$$", event.TokMathFlow},
		{"frontmatter", "---\na: b\n---\n", event.TokFrontmatter},
		{"autolink literal protocol", "see https://a.b/c.", event.TokGFMAutolinkLiteralProtocol},
		{"autolink literal www", "see www.a.b", event.TokGFMAutolinkLiteralWww},
		{"autolink literal email", "mail a.b+c@d.ef now", event.TokGFMAutolinkLiteralEmail},
		{"autolink literal mailto", "mailto:a@b.cd", event.TokGFMAutolinkLiteralMailto},
		{"autolink literal xmpp", "xmpp:a@b.cd/e", event.TokGFMAutolinkLiteralXmpp},
		{"footnote call", "a[^1]\n\n[^1]: b", event.TokGFMFootnoteCall},
		{"footnote definition", "[^1]: b", event.TokGFMFootnoteDefinition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := parse(t, tt.source, allOptions())
			assert.Contains(t, entered(doc), tt.want)
		})
	}
}

func TestParse_ConstructsOff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		opts   parser.Options
		absent event.TokenKind
	}{
		{"no strikethrough in commonmark", "~~a~~", parser.DefaultOptions(), event.TokGFMStrikethrough},
		{"no task list in commonmark", "- [x] a", parser.DefaultOptions(), event.TokGFMTaskListItemCheck},
		{"no math by default", "$a$", parser.DefaultOptions(), event.TokMathText},
		{"no frontmatter by default", "---\na: b\n---\n", parser.DefaultOptions(), event.TokFrontmatter},
		{"no html in mdx", "a <b> c", parser.MDXOptions(), event.TokHTMLText},
		{"no indented code in mdx", "    a", parser.MDXOptions(), event.TokCodeIndented},
		{"intraword underscore", "a_b_", parser.DefaultOptions(), event.TokEmphasis},
		{"unknown entity", "&nope;", parser.DefaultOptions(), event.TokCharacterReference},
		{"task list needs text", "- [x]", parser.GFMOptions(), event.TokGFMTaskListItemCheck},
		{"space before closer", "*a *", parser.DefaultOptions(), event.TokEmphasis},
		{"spaced asterisks", "a * b * c", parser.DefaultOptions(), event.TokEmphasis},
		{"no autolink literal in commonmark", "https://a.b", parser.DefaultOptions(), event.TokGFMAutolinkLiteralProtocol},
		{"www needs a dot", "www", parser.GFMOptions(), event.TokGFMAutolinkLiteralWww},
		{"protocol needs a domain", "https://", parser.GFMOptions(), event.TokGFMAutolinkLiteralProtocol},
		{"email needs a dot", "a@b", parser.GFMOptions(), event.TokGFMAutolinkLiteralEmail},
		{"no email literal in link", "[a@b.cd](e)", parser.GFMOptions(), event.TokGFMAutolinkLiteralEmail},
		{"no footnotes in commonmark", "a[^1]\n\n[^1]: b", parser.DefaultOptions(), event.TokGFMFootnoteCall},
		{"undefined footnote", "a[^1]", parser.GFMOptions(), event.TokGFMFootnoteCall},
		{"footnote label needs text", "[^]: b", parser.GFMOptions(), event.TokGFMFootnoteDefinition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := parse(t, tt.source, tt.opts)
			assert.NotContains(t, entered(doc), tt.absent)
		})
	}
}

func TestParse_EmphasisFlanking(t *testing.T) {
	t.Parallel()

	emphasis := 0
	for _, kind := range entered(parse(t, "a*b*c", parser.DefaultOptions())) {
		if kind == event.TokEmphasis {
			emphasis++
		}
	}
	assert.Equal(t, 1, emphasis)
}

func TestParse_AutolinkLiteralSpans(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"trailing punctuation", "see https://a.b/c.", "https://a.b/c"},
		{"unbalanced paren", "(www.a.b/c)", "www.a.b/c"},
		{"balanced paren", "www.a.b/c(d)", "www.a.b/c(d)"},
		{"character reference", "www.a.b/c&amp;", "www.a.b/c"},
		{"email", "x a.b+c@d.ef.", "a.b+c@d.ef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := parse(t, tt.source, parser.GFMOptions())
			var got []string
			for i, ev := range doc.Events {
				switch ev.Token {
				case event.TokGFMAutolinkLiteralProtocol, event.TokGFMAutolinkLiteralWww,
					event.TokGFMAutolinkLiteralEmail:
					if ev.Kind == event.Exit {
						got = append(got, event.Slice(doc.Events, []byte(tt.source), i))
					}
				}
			}
			assert.Equal(t, []string{tt.want}, got)
		})
	}
}

func TestParse_FootnoteLabelAsLink(t *testing.T) {
	t.Parallel()

	// Without footnote definitions, `[^a]` can still be a link to the
	// definition labeled `^a`.
	opts := parser.GFMOptions()
	opts.Constructs.GFMFootnoteDefinition = false

	doc := parse(t, "[^a]\n\n[^a]: /b", opts)
	kinds := entered(doc)
	assert.Contains(t, kinds, event.TokLink)
	assert.NotContains(t, kinds, event.TokGFMFootnoteCall)
	assert.Equal(t, "/b", doc.Definitions["^a"].Destination)
}

func TestParse_DefinitionForwardReference(t *testing.T) {
	t.Parallel()

	doc := parse(t, "[Foo] and [bar][]\n\n[foo]: /url \"title\"\n[BAR]: <b&amp;c>\n", parser.DefaultOptions())

	links := 0
	for _, kind := range entered(doc) {
		if kind == event.TokLink {
			links++
		}
	}
	assert.Equal(t, 2, links)

	want := map[string]parser.Definition{
		"foo": {Destination: "/url", Title: "title"},
		"bar": {Destination: "b&c"},
	}
	if diff := cmp.Diff(want, doc.Definitions); diff != "" {
		t.Errorf("definitions mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_FirstDefinitionWins(t *testing.T) {
	t.Parallel()

	doc := parse(t, "[a]: /one\n[A]: /two\n", parser.DefaultOptions())
	require.Len(t, doc.Definitions, 1)
	assert.Equal(t, "/one", doc.Definitions["a"].Destination)
}

func TestParse_UndefinedReferenceIsText(t *testing.T) {
	t.Parallel()

	doc := parse(t, "[a] [b][c] [d][]", parser.DefaultOptions())
	kinds := entered(doc)
	assert.NotContains(t, kinds, event.TokLink)
	assert.NotContains(t, kinds, event.TokLabelLink)
}

func TestParse_BracketBalancing(t *testing.T) {
	t.Parallel()

	// The nearest `[` pairs with `]`; the outer bracket stays text.
	doc := parse(t, "[a [b](c)", parser.DefaultOptions())

	var linkEnter event.Event
	links := 0
	for _, ev := range doc.Events {
		if ev.Kind == event.Enter && ev.Token == event.TokLink {
			linkEnter = ev
			links++
		}
	}
	require.Equal(t, 1, links)
	assert.Equal(t, 3, linkEnter.Point.Offset)
}

func TestParse_NoLinksInLinks(t *testing.T) {
	t.Parallel()

	doc := parse(t, "[a [b](c) d](e)", parser.DefaultOptions())

	links := 0
	for _, kind := range entered(doc) {
		if kind == event.TokLink {
			links++
		}
	}
	assert.Equal(t, 1, links)
}

func TestParse_Positions(t *testing.T) {
	t.Parallel()

	source := "# a\n\n> b\n>\tc *d*\n\n- e\n\n  f\r\ng\rh"
	doc := parse(t, source, allOptions())

	// The line of a point follows from the line endings before its offset.
	lines := make([]int, len(source)+1)
	line := 1
	for offset := range lines {
		lines[offset] = line
		if offset == len(source) {
			break
		}
		crlf := source[offset] == '\r' && offset+1 < len(source) && source[offset+1] == '\n'
		if !crlf && (source[offset] == '\n' || source[offset] == '\r') {
			line++
		}
	}

	for i, ev := range doc.Events {
		p := ev.Point
		require.LessOrEqual(t, p.Offset, len(source), "event %d", i)
		assert.GreaterOrEqual(t, p.Column, 1, "event %d", i)
		assert.GreaterOrEqual(t, p.Virtual, 0, "event %d", i)
		assert.Equal(t, lines[p.Offset], p.Line, "line of event %d (%s)", i, ev)
	}
}

func TestParse_ConcreteNotInterrupted(t *testing.T) {
	t.Parallel()

	// A lazy line cannot continue fenced code inside a block quote.
	doc := parse(t, "> ```\na\n", parser.DefaultOptions())

	var codeExit, paragraph event.Event
	for _, ev := range doc.Events {
		if ev.Kind == event.Exit && ev.Token == event.TokCodeFenced {
			codeExit = ev
		}
		if ev.Kind == event.Enter && ev.Token == event.TokParagraph {
			paragraph = ev
		}
	}
	assert.Equal(t, event.TokCodeFenced, codeExit.Token)
	assert.Equal(t, event.TokParagraph, paragraph.Token)
	assert.LessOrEqual(t, codeExit.Point.Offset, paragraph.Point.Offset)

	// A heading cannot start inside fenced code.
	doc = parse(t, "```\n# a\n```", parser.DefaultOptions())
	kinds := entered(doc)
	assert.Contains(t, kinds, event.TokCodeFenced)
	assert.NotContains(t, kinds, event.TokHeadingATX)
}

func TestParse_MDXErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		rule   string
	}{
		{"eof in flow", "{a", message.RuleUnexpectedEOF},
		{"eof in text", "a {b", message.RuleUnexpectedEOF},
		{"lazy in container", "> {a\nb}", message.RuleUnexpectedLazy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parser.Parse([]byte(tt.source), parser.MDXOptions())
			require.Error(t, err)

			var msg *message.Message
			require.True(t, errors.As(err, &msg))
			assert.Equal(t, tt.rule, msg.RuleID)
			assert.Equal(t, message.Source, msg.Source)
			require.NotNil(t, msg.Place)
		})
	}
}

func TestParse_MDXExpressions(t *testing.T) {
	t.Parallel()

	doc := parse(t, "{a {b} c}\n\nd {e} f", parser.MDXOptions())
	kinds := entered(doc)
	assert.Contains(t, kinds, event.TokMDXFlowExpression)
	assert.Contains(t, kinds, event.TokMDXTextExpression)
}

func TestResolve_Idempotent(t *testing.T) {
	t.Parallel()

	sources := []string{
		"*a **b** c*",
		"[a](b) ![c][d]\n\n[d]: e",
		"a ~~b~~ `c` \\* &amp; <https://x.y>",
		"***a*** _b_ __c__ *d _e* f_",
		"- [ ] a\n- [x] b\n\n> c\n> d",
		"a  \nb\\\nc",
	}

	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			t.Parallel()
			doc := parse(t, source, allOptions())
			again, err := parser.Resolve(doc.Events, []byte(source), allOptions())
			require.NoError(t, err)
			if diff := cmp.Diff(doc.Events, again, cmpopts.IgnoreUnexported(event.Link{})); diff != "" {
				t.Errorf("resolve changed events (-first +second):\n%s", diff)
			}
		})
	}
}

func TestStringValue(t *testing.T) {
	t.Parallel()

	doc := parse(t, "[a]: <x\\>y&#35;&copy;>\n", parser.DefaultOptions())
	assert.Equal(t, "x>y#©", doc.Definitions["a"].Destination)
}
