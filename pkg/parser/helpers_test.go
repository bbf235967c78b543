package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/pkg/event"
)

func TestNormalizeIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "foo", "foo"},
		{"case", "FoO", "foo"},
		{"inner whitespace", "a \t\n b", "a b"},
		{"outer whitespace", "  a  ", "a"},
		{"full fold", "Straße", "strasse"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeIdentifier(tt.input))
		})
	}

	assert.Equal(t, NormalizeIdentifier("STRASSE"), NormalizeIdentifier("straße"))
}

func TestDecodeNamedCharacterReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"amp", "&", true},
		{"copy", "©", true},
		{"nbsp", "\u00a0", true},
		{"semi", ";", true},
		{"notit", "", false},
		{"nope", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := DecodeNamedCharacterReference(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, IsNamedCharacterReference(tt.name))
		})
	}
}

func TestDecodeNumericCharacterReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		base  int
		want  string
	}{
		{"35", 10, "#"},
		{"1234", 10, "Ӓ"},
		{"22", 16, "\""},
		{"D06", 16, "ആ"},
		{"0", 10, "\uFFFD"},
		{"D800", 16, "\uFFFD"},
		{"110000", 16, "\uFFFD"},
		{"9", 10, "\t"},
		{"1", 10, "\uFFFD"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DecodeNumericCharacterReference(tt.value, tt.base))
		})
	}
}

func TestClassifyRune(t *testing.T) {
	t.Parallel()

	assert.Equal(t, charWhitespace, classifyRune(0, false))
	assert.Equal(t, charWhitespace, classifyRune(' ', true))
	assert.Equal(t, charWhitespace, classifyRune('\u00a0', true))
	assert.Equal(t, charPunctuation, classifyRune('.', true))
	assert.Equal(t, charPunctuation, classifyRune('$', true))
	assert.Equal(t, charPunctuation, classifyRune('“', true))
	assert.Equal(t, charOther, classifyRune('a', true))
	assert.Equal(t, charOther, classifyRune('é', true))

	r, ok := runeBefore([]byte("aé*"), 3)
	require.True(t, ok)
	assert.Equal(t, 'é', r)

	_, ok = runeBefore([]byte("*"), 0)
	assert.False(t, ok)

	r, ok = runeAfter([]byte("*é"), 1)
	require.True(t, ok)
	assert.Equal(t, 'é', r)

	_, ok = runeAfter([]byte("*"), 1)
	assert.False(t, ok)
}

func TestPointAt(t *testing.T) {
	t.Parallel()

	source := []byte("a\tb")
	got := pointAt(source, event.Point{Line: 1, Column: 1}, 2)
	assert.Equal(t, 2, got.Offset)
	assert.Equal(t, 5, got.Column)
	assert.Equal(t, 0, got.Virtual)
}

func TestConstructsSet(t *testing.T) {
	t.Parallel()

	c := CommonMarkConstructs()
	require.NoError(t, c.Set("Math_Flow", true))
	assert.True(t, c.MathFlow)
	require.NoError(t, c.Set("attention", false))
	assert.False(t, c.Attention)

	err := c.Set("tables", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tables")

	names := c.Names()
	assert.Contains(t, names, "gfm_strikethrough")
	assert.Contains(t, names, "gfm_autolink_literal")
	assert.Contains(t, names, "gfm_footnote_definition")
	assert.IsNonDecreasing(t, names)
}

func TestFlavorConstructs(t *testing.T) {
	t.Parallel()

	gfm := GFMConstructs()
	assert.True(t, gfm.GFMStrikethrough)
	assert.True(t, gfm.GFMTaskListItem)
	assert.True(t, gfm.GFMAutolinkLiteral)
	assert.True(t, gfm.GFMFootnoteDefinition)
	assert.True(t, gfm.GFMLabelStartFootnote)
	assert.True(t, gfm.HTMLFlow)

	mdx := MDXConstructs()
	assert.False(t, mdx.HTMLFlow)
	assert.False(t, mdx.HTMLText)
	assert.False(t, mdx.CodeIndented)
	assert.False(t, mdx.Autolink)
	assert.True(t, mdx.MDXExpressionFlow)
	assert.True(t, mdx.MDXExpressionText)
}

func TestResolverString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "label", resolverLabel.String())
	assert.Equal(t, "text", resolverText.String())
	assert.Equal(t, "unknown", resolver(200).String())
}
