package html_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/pkg/html"
	"github.com/yaklabco/gomdparse/pkg/message"
	"github.com/yaklabco/gomdparse/pkg/parser"
)

func render(t *testing.T, source string, parseOpts parser.Options, opts html.Options) string {
	t.Helper()
	out, err := html.Render([]byte(source), parseOpts, opts)
	require.NoError(t, err)
	return out
}

func TestRender_CommonMark(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"paragraph", "a", "<p>a</p>"},
		{"soft break", "a\nb", "<p>a\nb</p>"},
		{"hard break trailing", "a  \nb", "<p>a<br />\nb</p>"},
		{"hard break escape", "a\\\nb", "<p>a<br />\nb</p>"},
		{"heading atx", "## a", "<h2>a</h2>"},
		{"heading atx closed", "# a #", "<h1>a</h1>"},
		{"heading setext 1", "a\n=", "<h1>a</h1>"},
		{"heading setext 2", "a\n---", "<h2>a</h2>"},
		{"thematic break", "***", "<hr />"},
		{"block quote", "> a", "<blockquote>\n<p>a</p>\n</blockquote>"},
		{"tight list", "- a\n- b", "<ul>\n<li>a</li>\n<li>b</li>\n</ul>"},
		{"loose list", "- a\n\n- b", "<ul>\n<li>\n<p>a</p>\n</li>\n<li>\n<p>b</p>\n</li>\n</ul>"},
		{"ordered start", "3. a", "<ol start=\"3\">\n<li>a</li>\n</ol>"},
		{"ordered from one", "1. a", "<ol>\n<li>a</li>\n</ol>"},
		{"fenced code", "```js\na\n```", "<pre><code class=\"language-js\">a\n</code></pre>"},
		{"fenced code meta", "~~~ js b c\na\n~~~", "<pre><code class=\"language-js\">a\n</code></pre>"},
		{"indented code", "    a", "<pre><code>a\n</code></pre>"},
		{"indented code tabs", "\tfoo\tbaz\t\tbim", "<pre><code>foo\tbaz\t\tbim\n</code></pre>"},
		{"indented code spaces and tab", "  \tfoo\tbaz\t\tbim", "<pre><code>foo\tbaz\t\tbim\n</code></pre>"},
		{"code text", "`a`", "<p><code>a</code></p>"},
		{"code text padding", "` `` `", "<p><code>``</code></p>"},
		{"code text only spaces", "`  `", "<p><code>  </code></p>"},
		{"emphasis", "*a*", "<p><em>a</em></p>"},
		{"strong", "__a__", "<p><strong>a</strong></p>"},
		{"strong emphasis", "***a***", "<p><em><strong>a</strong></em></p>"},
		{"escape", "\\*a\\*", "<p>*a*</p>"},
		{"references", "&amp; &copy; &#35; &#x22;", "<p>&amp; © # &quot;</p>"},
		{"html encoded", "a <b> c", "<p>a &lt;b&gt; c</p>"},
		{"link", "[a](b \"c\")", "<p><a href=\"b\" title=\"c\">a</a></p>"},
		{"link empty destination", "[a]()", "<p><a href=\"\">a</a></p>"},
		{"link resource whitespace", "[link](   /uri\n  \"title\"  )", "<p><a href=\"/uri\" title=\"title\">link</a></p>"},
		{"link resource line ending first", "[link](\t\n/uri \"title\")", "<p><a href=\"/uri\" title=\"title\">link</a></p>"},
		{"link resource line ending last", "[link](/uri  \"title\"\t\n)", "<p><a href=\"/uri\" title=\"title\">link</a></p>"},
		{"bracket balancing", "[a[b]c](d)", "<p><a href=\"d\">a[b]c</a></p>"},
		{"links do not nest", "[a [b](c)](d)", "<p>[a <a href=\"c\">b</a>](d)</p>"},
		{"image", "![a *b*](c)", "<p><img src=\"c\" alt=\"a b\" /></p>"},
		{"autolink", "<https://a.b>", "<p><a href=\"https://a.b\">https://a.b</a></p>"},
		{"email autolink", "<a@b.c>", "<p><a href=\"mailto:a@b.c\">a@b.c</a></p>"},
		{"unsafe link", "[a](javascript:alert(1))", "<p><a href=\"\">a</a></p>"},
		{"percent encoded", "[a](/ä b)", "<p>[a](/ä b)</p>"},
		{"percent encoded literal", "[a](</ä b>)", "<p><a href=\"/%C3%A4%20b\">a</a></p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := render(t, tt.source, parser.DefaultOptions(), html.DefaultOptions())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_References(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"shortcut", "[a]\n\n[a]: /u", "<p><a href=\"/u\">a</a></p>\n"},
		{"collapsed", "[A][]\n\n[a]: /u \"t\"", "<p><a href=\"/u\" title=\"t\">A</a></p>\n"},
		{"full", "[x][A]\n\n[a]: /u", "<p><a href=\"/u\">x</a></p>\n"},
		{"definition only", "[a]: /u", ""},
		{"image reference", "![x][a]\n\n[a]: /i.png", "<p><img src=\"/i.png\" alt=\"x\" /></p>\n"},
		{"title encoded", "[a]\n\n[a]: /u \"<&>\"", "<p><a href=\"/u\" title=\"&lt;&amp;&gt;\">a</a></p>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := render(t, tt.source, parser.DefaultOptions(), html.DefaultOptions())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_GFM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		opts   html.Options
		want   string
	}{
		{
			"strikethrough", "~~a~~", html.GFMOptions(),
			"<p><del>a</del></p>",
		},
		{
			"task list", "- [x] a\n- [ ] b", html.GFMOptions(),
			"<ul>\n<li><input type=\"checkbox\" disabled=\"\" checked=\"\" /> a</li>\n" +
				"<li><input type=\"checkbox\" disabled=\"\" /> b</li>\n</ul>",
		},
		{
			"task list checkable", "- [x] a", html.Options{GFMTaskListItemCheckable: true},
			"<ul>\n<li><input type=\"checkbox\" checked=\"\" /> a</li>\n</ul>",
		},
		{
			"tagfilter", "<script>\nalert(1)\n</script>",
			html.Options{AllowDangerousHTML: true, GFMTagfilter: true},
			"&lt;script>\nalert(1)\n&lt;/script>",
		},
		{
			"tagfilter needs dangerous html", "a <b> c", html.GFMOptions(),
			"<p>a &lt;b&gt; c</p>",
		},
		{
			"dangerous html", "a <b> c", html.Options{AllowDangerousHTML: true},
			"<p>a <b> c</p>",
		},
		{
			"dangerous protocol", "[a](javascript:x)", html.Options{AllowDangerousProtocol: true},
			"<p><a href=\"javascript:x\">a</a></p>",
		},		{
			"autolink literal protocol", "see https://a.b/c.", html.GFMOptions(),
			"<p>see <a href=\"https://a.b/c\">https://a.b/c</a>.</p>",
		},
		{
			"autolink literal www", "www.a.b", html.GFMOptions(),
			"<p><a href=\"http://www.a.b\">www.a.b</a></p>",
		},
		{
			"autolink literal email", "a@b.co", html.GFMOptions(),
			"<p><a href=\"mailto:a@b.co\">a@b.co</a></p>",
		},
		{
			"autolink literal mailto", "mailto:a@b.co", html.GFMOptions(),
			"<p><a href=\"mailto:a@b.co\">mailto:a@b.co</a></p>",
		},
		{
			"autolink literal in link", "[https://a.b](c)", html.GFMOptions(),
			"<p><a href=\"c\">https://a.b</a></p>",
		},
		{
			"footnote", "a[^1]\n\n[^1]: b", html.GFMOptions(),
			"<p>a<sup><a href=\"#user-content-fn-1\" id=\"user-content-fnref-1\" data-footnote-ref=\"\" " +
				"aria-describedby=\"footnote-label\">1</a></sup></p>\n" +
				"<section data-footnotes=\"\" class=\"footnotes\"><h2 id=\"footnote-label\" class=\"sr-only\">Footnotes</h2>\n" +
				"<ol>\n<li id=\"user-content-fn-1\">\n" +
				"<p>b <a href=\"#user-content-fnref-1\" data-footnote-backref=\"\" aria-label=\"Back to content\" " +
				"class=\"data-footnote-backref\">↩</a></p>\n" +
				"</li>\n</ol>\n</section>\n",
		},
		{
			"footnote called twice", "a[^x] b[^X]\n\n[^x]: c", html.GFMOptions(),
			"<p>a<sup><a href=\"#user-content-fn-x\" id=\"user-content-fnref-x\" data-footnote-ref=\"\" " +
				"aria-describedby=\"footnote-label\">1</a></sup> " +
				"b<sup><a href=\"#user-content-fn-x\" id=\"user-content-fnref-x-2\" data-footnote-ref=\"\" " +
				"aria-describedby=\"footnote-label\">1</a></sup></p>\n" +
				"<section data-footnotes=\"\" class=\"footnotes\"><h2 id=\"footnote-label\" class=\"sr-only\">Footnotes</h2>\n" +
				"<ol>\n<li id=\"user-content-fn-x\">\n" +
				"<p>c <a href=\"#user-content-fnref-x\" data-footnote-backref=\"\" aria-label=\"Back to content\" " +
				"class=\"data-footnote-backref\">↩</a> " +
				"<a href=\"#user-content-fnref-x-2\" data-footnote-backref=\"\" aria-label=\"Back to content\" " +
				"class=\"data-footnote-backref\">↩<sup>2</sup></a></p>\n" +
				"</li>\n</ol>\n</section>\n",
		},
		{
			"undefined footnote", "a[^1]", html.GFMOptions(),
			"<p>a[^1]</p>",
		},
		{
			"footnote labels", "a[^1]\n\n[^1]: b",
			html.Options{GFMFootnoteLabel: "Notes", GFMFootnoteBackLabel: "Up", GFMFootnoteClobberPrefix: "p-"},
			"<p>a<sup><a href=\"#p-fn-1\" id=\"p-fnref-1\" data-footnote-ref=\"\" " +
				"aria-describedby=\"footnote-label\">1</a></sup></p>\n" +
				"<section data-footnotes=\"\" class=\"footnotes\"><h2 id=\"footnote-label\" class=\"sr-only\">Notes</h2>\n" +
				"<ol>\n<li id=\"p-fn-1\">\n" +
				"<p>b <a href=\"#p-fnref-1\" data-footnote-backref=\"\" aria-label=\"Up\" " +
				"class=\"data-footnote-backref\">↩</a></p>\n" +
				"</li>\n</ol>\n</section>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := render(t, tt.source, parser.GFMOptions(), tt.opts)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_Extensions(t *testing.T) {
	t.Parallel()

	opts := parser.DefaultOptions()
	opts.Constructs.Frontmatter = true
	opts.Constructs.MathFlow = true
	opts.Constructs.MathText = true

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"math text", "$a$", "<p><code class=\"language-math math-inline\">a</code></p>"},
		{"math flow", "$$\na\n$$", "<pre><code class=\"language-math math-display\">a\n</code></pre>"},
		{"frontmatter", "---\na: b\n---\nc", "<p>c</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, render(t, tt.source, opts, html.DefaultOptions()))
		})
	}
}

func TestRender_LineEndings(t *testing.T) {
	t.Parallel()

	t.Run("inferred", func(t *testing.T) {
		t.Parallel()
		got := render(t, "# a\r\n\r\nb", parser.DefaultOptions(), html.DefaultOptions())
		assert.Equal(t, "<h1>a</h1>\r\n<p>b</p>", got)
	})

	t.Run("default", func(t *testing.T) {
		t.Parallel()
		opts := html.DefaultOptions()
		opts.DefaultLineEnding = html.CarriageReturnLineFeed
		got := render(t, "> a", parser.DefaultOptions(), opts)
		assert.Equal(t, "<blockquote>\r\n<p>a</p>\r\n</blockquote>", got)
	})

	t.Run("empty default", func(t *testing.T) {
		t.Parallel()
		got := render(t, "> a", parser.DefaultOptions(), html.Options{})
		assert.Equal(t, "<blockquote>\n<p>a</p>\n</blockquote>", got)
	})
}

func TestRender_VirtualSpaces(t *testing.T) {
	t.Parallel()

	got := render(t, ">\t\tfoo", parser.DefaultOptions(), html.DefaultOptions())
	assert.Equal(t, "<blockquote>\n<pre><code>  foo\n</code></pre>\n</blockquote>", got)
}

func TestRender_MDX(t *testing.T) {
	t.Parallel()

	got := render(t, "a {b} c", parser.MDXOptions(), html.DefaultOptions())
	assert.Equal(t, "<p>a  c</p>", got)

	_, err := html.Render([]byte("{a"), parser.MDXOptions(), html.DefaultOptions())
	var msg *message.Message
	require.True(t, errors.As(err, &msg))
	assert.Equal(t, message.RuleUnexpectedEOF, msg.RuleID)
}

func TestRender_DetectLanguage(t *testing.T) {
	t.Parallel()

	opts := html.DefaultOptions()
	opts.DetectLanguage = true

	got := render(t, "```\npackage main\n\nfunc main() {}\n```", parser.DefaultOptions(), opts)
	assert.Contains(t, got, `<pre><code class="language-go">`)

	got = render(t, "```sh\npackage main\n```", parser.DefaultOptions(), opts)
	assert.Contains(t, got, `<pre><code class="language-sh">`)
}
