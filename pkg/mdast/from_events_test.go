package mdast_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/pkg/mdast"
	"github.com/yaklabco/gomdparse/pkg/parser"
)

func tree(t *testing.T, source string, opts parser.Options) *mdast.Node {
	t.Helper()
	root, err := mdast.Parse([]byte(source), opts)
	require.NoError(t, err)
	require.Equal(t, mdast.NodeRoot, root.Kind)
	return root
}

func only(t *testing.T, root *mdast.Node, kind mdast.NodeKind) *mdast.Node {
	t.Helper()
	nodes := mdast.FindByKind(root, kind)
	require.Len(t, nodes, 1, "nodes of kind %s", kind)
	return nodes[0]
}

func TestFromEvents_Heading(t *testing.T) {
	t.Parallel()

	root := tree(t, "# a *b*\n\nc", parser.DefaultOptions())
	require.Equal(t, []mdast.NodeKind{mdast.NodeHeading, mdast.NodeParagraph}, kinds(root.Children()))

	heading := root.FirstChild
	assert.Equal(t, 1, heading.Block.Depth)
	assert.Equal(t, []mdast.NodeKind{mdast.NodeText, mdast.NodeEmphasis}, kinds(heading.Children()))
	assert.Equal(t, "a ", heading.FirstChild.Value)
	assert.Equal(t, "b", mdast.TextContent(heading.LastChild))
	assert.Equal(t, "c", mdast.TextContent(root.LastChild))
}

func TestFromEvents_Setext(t *testing.T) {
	t.Parallel()

	root := tree(t, "a\nb\n---", parser.DefaultOptions())
	heading := only(t, root, mdast.NodeHeading)
	assert.Equal(t, 2, heading.Block.Depth)
	assert.Equal(t, "a\nb", mdast.TextContent(heading))
}

func TestFromEvents_Lists(t *testing.T) {
	t.Parallel()

	t.Run("ordered tight", func(t *testing.T) {
		t.Parallel()
		list := only(t, tree(t, "3. a\n4. b", parser.DefaultOptions()), mdast.NodeList)
		attrs := list.Block.List
		assert.True(t, attrs.Ordered)
		assert.Equal(t, 3, attrs.Start)
		assert.Equal(t, byte('.'), attrs.Marker)
		assert.False(t, attrs.Spread)
		assert.Len(t, list.Children(), 2)
	})

	t.Run("unordered loose", func(t *testing.T) {
		t.Parallel()
		list := only(t, tree(t, "* a\n\n* b", parser.DefaultOptions()), mdast.NodeList)
		assert.False(t, list.Block.List.Ordered)
		assert.Equal(t, byte('*'), list.Block.List.Marker)
		assert.True(t, list.Block.List.Spread)
	})

	t.Run("tasks", func(t *testing.T) {
		t.Parallel()
		items := mdast.FindByKind(tree(t, "- [x] a\n- [ ] b\n- c", parser.GFMOptions()), mdast.NodeListItem)
		require.Len(t, items, 3)

		require.NotNil(t, items[0].Block.Checked)
		assert.True(t, *items[0].Block.Checked)
		assert.Equal(t, "a", mdast.TextContent(items[0]))

		require.NotNil(t, items[1].Block.Checked)
		assert.False(t, *items[1].Block.Checked)

		assert.Nil(t, items[2].Block.Checked)
	})
}

func TestFromEvents_Code(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		lang   string
		meta   string
		fenced bool
		value  string
	}{
		{"fenced", "```go x y\na\n\nb\n```", "go", "x y", true, "a\n\nb"},
		{"fenced empty", "```\n```", "", "", true, ""},
		{"fenced unclosed", "~~~\na", "", "", true, "a"},
		{"indented", "    a\n    b", "", "", false, "a\nb"},
		{"info escapes", "``` a\\_b\nc\n```", "a_b", "", true, "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code := only(t, tree(t, tt.source, parser.DefaultOptions()), mdast.NodeCode)
			assert.Equal(t, tt.lang, code.Block.Code.Lang)
			assert.Equal(t, tt.meta, code.Block.Code.Meta)
			assert.Equal(t, tt.fenced, code.Block.Code.Fenced)
			assert.Equal(t, tt.value, code.Value)
		})
	}
}

func TestFromEvents_Phrasing(t *testing.T) {
	t.Parallel()

	t.Run("inline code", func(t *testing.T) {
		t.Parallel()
		code := only(t, tree(t, "` a `` b `", parser.DefaultOptions()), mdast.NodeInlineCode)
		assert.Equal(t, "a `` b", code.Value)
	})

	t.Run("soft break", func(t *testing.T) {
		t.Parallel()
		para := only(t, tree(t, "a\nb", parser.DefaultOptions()), mdast.NodeParagraph)
		require.Len(t, para.Children(), 1)
		assert.Equal(t, "a\nb", para.FirstChild.Value)
	})

	t.Run("hard break", func(t *testing.T) {
		t.Parallel()
		para := only(t, tree(t, "a  \nb", parser.DefaultOptions()), mdast.NodeParagraph)
		assert.Equal(t, []mdast.NodeKind{mdast.NodeText, mdast.NodeBreak, mdast.NodeText}, kinds(para.Children()))
		assert.Equal(t, "a", para.FirstChild.Value)
		assert.Equal(t, "b", para.LastChild.Value)
	})

	t.Run("references and escapes", func(t *testing.T) {
		t.Parallel()
		para := only(t, tree(t, "&amp;b\\*&#35;", parser.DefaultOptions()), mdast.NodeParagraph)
		require.Len(t, para.Children(), 1)
		assert.Equal(t, "&b*#", para.FirstChild.Value)
	})

	t.Run("strong and delete", func(t *testing.T) {
		t.Parallel()
		root := tree(t, "**a** ~~b~~", parser.GFMOptions())
		assert.Equal(t, "a", mdast.TextContent(only(t, root, mdast.NodeStrong)))
		assert.Equal(t, "b", mdast.TextContent(only(t, root, mdast.NodeDelete)))
	})

	t.Run("html", func(t *testing.T) {
		t.Parallel()
		root := tree(t, "<div>\nx\n</div>\n\na <b> c", parser.DefaultOptions())
		assert.Equal(t, "<div>\nx\n</div>", only(t, root, mdast.NodeHTMLBlock).Value)
		assert.Equal(t, "<b>", only(t, root, mdast.NodeHTMLInline).Value)
	})
}

func TestFromEvents_Links(t *testing.T) {
	t.Parallel()

	source := "[a](/u \"t\") [b][X] [x][] [x] <https://e.com>\n\n[x]: /d \"T\"\n[x]: /ignored"
	root := tree(t, source, parser.DefaultOptions())

	links := mdast.FindByKind(root, mdast.NodeLink)
	require.Len(t, links, 5)

	type want struct {
		url, title, text string
		style            mdast.ReferenceStyle
	}
	wants := []want{
		{"/u", "t", "a", mdast.RefStyleInline},
		{"/d", "T", "b", mdast.RefStyleFull},
		{"/d", "T", "x", mdast.RefStyleCollapsed},
		{"/d", "T", "x", mdast.RefStyleShortcut},
		{"https://e.com", "", "https://e.com", mdast.RefStyleAutolink},
	}
	for i, w := range wants {
		link := links[i].Inline.Link
		assert.Equal(t, w.url, link.URL, "link %d", i)
		assert.Equal(t, w.title, link.Title, "link %d", i)
		assert.Equal(t, w.style, link.Style, "link %d", i)
		assert.Equal(t, w.text, mdast.TextContent(links[i]), "link %d", i)
	}
	assert.Empty(t, links[0].Inline.Link.Label)
	assert.Empty(t, links[0].Inline.Link.Identifier)
	assert.Equal(t, "X", links[1].Inline.Link.Label)
	assert.Equal(t, "x", links[1].Inline.Link.Identifier)

	definitions := mdast.FindByKind(root, mdast.NodeDefinition)
	require.Len(t, definitions, 2)
	assert.Equal(t, "/d", definitions[0].Block.Definition.URL)
	assert.Equal(t, "x", definitions[0].Block.Definition.Label)
}

func TestFromEvents_ResourceWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
	}{
		{"around", "[link](   /uri\n  \"title\"  )"},
		{"line ending first", "[link](\t\n/uri \"title\")"},
		{"line ending last", "[link](/uri  \"title\"\t\n)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			link := only(t, tree(t, tt.source, parser.DefaultOptions()), mdast.NodeLink)
			require.Len(t, link.Children(), 1)
			assert.Equal(t, "link", link.FirstChild.Value)
			assert.Equal(t, "1:2-1:6", link.FirstChild.Position.String())
			assert.Equal(t, "/uri", link.Inline.Link.URL)
			assert.Equal(t, "title", link.Inline.Link.Title)
		})
	}
}

func TestFromEvents_Image(t *testing.T) {
	t.Parallel()

	image := only(t, tree(t, "![a *b* `c`](/i.png)", parser.DefaultOptions()), mdast.NodeImage)
	assert.Equal(t, "a b c", image.Inline.Alt)
	assert.Equal(t, "/i.png", image.Inline.Link.URL)
	assert.False(t, image.HasChildren())
}

func TestFromEvents_EmailAutolink(t *testing.T) {
	t.Parallel()

	link := only(t, tree(t, "<a@b.c>", parser.DefaultOptions()), mdast.NodeLink)
	assert.Equal(t, "mailto:a@b.c", link.Inline.Link.URL)
	assert.Equal(t, "a@b.c", mdast.TextContent(link))
}

func TestFromEvents_AutolinkLiterals(t *testing.T) {
	t.Parallel()

	root := tree(t, "see www.a.b and a@b.co, [https://c.d](e)", parser.GFMOptions())
	links := mdast.FindByKind(root, mdast.NodeLink)
	require.Len(t, links, 3)

	assert.Equal(t, "http://www.a.b", links[0].Inline.Link.URL)
	assert.Equal(t, mdast.RefStyleAutolink, links[0].Inline.Link.Style)
	assert.Equal(t, "www.a.b", mdast.TextContent(links[0]))
	assert.Equal(t, "1:5-1:12", links[0].Position.String())

	assert.Equal(t, "mailto:a@b.co", links[1].Inline.Link.URL)
	assert.Equal(t, "a@b.co", mdast.TextContent(links[1]))

	// A literal in a link is text.
	assert.Equal(t, "e", links[2].Inline.Link.URL)
	require.Len(t, links[2].Children(), 1)
	assert.Equal(t, "https://c.d", links[2].FirstChild.Value)
}

func TestFromEvents_Footnotes(t *testing.T) {
	t.Parallel()

	root := tree(t, "a[^x]\n\n[^X]: b *c*\n", parser.GFMOptions())
	require.Len(t, root.Children(), 2)

	ref := only(t, root, mdast.NodeFootnoteReference)
	assert.Equal(t, "x", ref.Inline.Link.Label)
	assert.Equal(t, "x", ref.Inline.Link.Identifier)
	assert.False(t, ref.HasChildren())
	assert.Equal(t, "1:2-1:6", ref.Position.String())

	def := only(t, root, mdast.NodeFootnoteDefinition)
	assert.Equal(t, "X", def.Block.Definition.Label)
	assert.Equal(t, "x", def.Block.Definition.Identifier)
	require.Len(t, def.Children(), 1)
	assert.Equal(t, mdast.NodeParagraph, def.FirstChild.Kind)
	assert.Equal(t, "b c", mdast.TextContent(def))

	var b strings.Builder
	require.NoError(t, mdast.Fprint(&b, root))
	assert.Contains(t, b.String(), `footnoteReference identifier="x" (1:2-1:6)`)
	assert.Contains(t, b.String(), `footnoteDefinition identifier="x" (3:1-`)
}

func TestFromEvents_Extensions(t *testing.T) {
	t.Parallel()

	opts := parser.DefaultOptions()
	opts.Constructs.Frontmatter = true
	opts.Constructs.MathFlow = true
	opts.Constructs.MathText = true

	root := tree(t, "---\na: b\n---\n\n$$\nx\n$$\n\n$y$", opts)
	assert.Equal(t, "a: b", only(t, root, mdast.NodeFrontmatter).Value)
	assert.Equal(t, "x", only(t, root, mdast.NodeMath).Value)
	assert.Equal(t, "y", only(t, root, mdast.NodeInlineMath).Value)
}

func TestFromEvents_MDX(t *testing.T) {
	t.Parallel()

	root := tree(t, "{a}\n\nb {c} d", parser.MDXOptions())
	assert.Equal(t, "a", only(t, root, mdast.NodeMDXFlowExpression).Value)
	assert.Equal(t, "c", only(t, root, mdast.NodeMDXTextExpression).Value)
}

func TestFromEvents_Positions(t *testing.T) {
	t.Parallel()

	source := "# a\n\nbc"
	root := tree(t, source, parser.DefaultOptions())

	para := only(t, root, mdast.NodeParagraph)
	assert.Equal(t, "3:1-3:3", para.Position.String())
	assert.Equal(t, "bc", string(para.Text([]byte(source))))

	heading := only(t, root, mdast.NodeHeading)
	assert.Equal(t, "1:1-1:4", heading.Position.String())
}

func TestFromEvents_Empty(t *testing.T) {
	t.Parallel()

	root := tree(t, "", parser.DefaultOptions())
	assert.False(t, root.HasChildren())
}

func TestDetectLanguages(t *testing.T) {
	t.Parallel()

	root := tree(t, "```\npackage main\n```\n\n```sh\npackage main\n```\n\n    package main", parser.DefaultOptions())
	assert.Equal(t, 1, mdast.DetectLanguages(root))

	codes := mdast.FindByKind(root, mdast.NodeCode)
	require.Len(t, codes, 3)
	assert.Equal(t, "go", codes[0].Block.Code.Lang)
	assert.True(t, codes[0].Block.Code.Detected)
	assert.Equal(t, "sh", codes[1].Block.Code.Lang)
	assert.False(t, codes[1].Block.Code.Detected)
	assert.Empty(t, codes[2].Block.Code.Lang)
}

func TestFprint_Link(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	require.NoError(t, mdast.Fprint(&b, tree(t, "[a](b)", parser.DefaultOptions())))
	assert.NotContains(t, b.String(), "identifier=")
}

func TestFprint(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	require.NoError(t, mdast.Fprint(&b, tree(t, "# a", parser.DefaultOptions())))

	want := "root (1:1-1:4)\n" +
		"  heading depth=1 (1:1-1:4)\n" +
		"    text \"a\" (1:3-1:4)\n"
	assert.Equal(t, want, b.String())
}
