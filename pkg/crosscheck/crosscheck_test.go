package crosscheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/pkg/config"
	"github.com/yaklabco/gomdparse/pkg/crosscheck"
	"github.com/yaklabco/gomdparse/pkg/mdast"
	"github.com/yaklabco/gomdparse/pkg/parser"
)

func check(t *testing.T, source string, flavor config.Flavor) *crosscheck.Report {
	t.Helper()
	opts, err := crosscheck.OptionsForFlavor(flavor)
	require.NoError(t, err)
	report, err := crosscheck.Check([]byte(source), opts)
	require.NoError(t, err)
	return report
}

func countOf(t *testing.T, report *crosscheck.Report, selector string) crosscheck.Count {
	t.Helper()
	for _, c := range report.Counts {
		if c.Selector == selector {
			return c
		}
	}
	t.Fatalf("no count for %q", selector)
	return crosscheck.Count{}
}

func TestCheck_Agrees(t *testing.T) {
	t.Parallel()

	source := "# Title\n\n" +
		"Some *em* and **strong** text with [a link](/url) and ![img](/i.png) and `code`.\n\n" +
		"> quote\n\n" +
		"- one\n- two\n\n" +
		"1. first\n2. second\n\n" +
		"---\n\n" +
		"```go\nx := 1\n```\n"

	report := check(t, source, config.FlavorCommonMark)
	assert.Empty(t, report.HTMLDiff)
	assert.Empty(t, report.TreeDiff)
	assert.Empty(t, report.Mismatches())
	assert.True(t, report.Equal())

	assert.Equal(t, crosscheck.Count{Selector: "li", Ours: 4, Theirs: 4}, countOf(t, report, "li"))
	assert.Equal(t, 1, countOf(t, report, "img").Ours)
	assert.Len(t, report.Counts, len(crosscheck.Selectors))
}

func TestCheck_GFM(t *testing.T) {
	t.Parallel()

	report := check(t, "~~gone~~\n\n- [x] done\n- [ ] todo\n", config.FlavorGFM)
	assert.Equal(t, crosscheck.Count{Selector: "del", Ours: 1, Theirs: 1}, countOf(t, report, "del"))
	assert.Equal(t, 2, countOf(t, report, "input[type=checkbox]").Ours)
	assert.Equal(t, 2, countOf(t, report, "input[type=checkbox]").Theirs)
	assert.Empty(t, report.TreeDiff)
}

func TestCheck_GFMLiteralsAndFootnotes(t *testing.T) {
	t.Parallel()

	report := check(t, "see https://example.com and www.example.com\n", config.FlavorGFM)
	assert.Equal(t, crosscheck.Count{Selector: "a", Ours: 2, Theirs: 2}, countOf(t, report, "a"))
	assert.Empty(t, report.TreeDiff)

	report = check(t, "a[^1]\n\n[^1]: b\n", config.FlavorGFM)
	assert.Equal(t, crosscheck.Count{Selector: "a", Ours: 2, Theirs: 2}, countOf(t, report, "a"))
	assert.Equal(t, crosscheck.Count{Selector: "li", Ours: 1, Theirs: 1}, countOf(t, report, "li"))
	assert.Empty(t, report.TreeDiff)
}

func TestCheck_Disagrees(t *testing.T) {
	t.Parallel()

	opts := crosscheck.Options{Flavor: config.FlavorCommonMark, Parse: parser.DefaultOptions()}
	opts.Parse.Constructs.Attention = false

	report, err := crosscheck.Check([]byte("*a*"), opts)
	require.NoError(t, err)

	assert.False(t, report.Equal())
	assert.NotEmpty(t, report.HTMLDiff)
	assert.NotEmpty(t, report.TreeDiff)
	assert.Equal(t, []crosscheck.Count{{Selector: "em", Ours: 0, Theirs: 1}}, report.Mismatches())
	assert.Equal(t, "<p>*a*</p>", report.Ours)
	assert.Equal(t, "<p><em>a</em></p>\n", report.Theirs)
}

func TestCheck_UnsupportedFlavor(t *testing.T) {
	t.Parallel()

	_, err := crosscheck.OptionsForFlavor(config.FlavorMDX)
	require.ErrorIs(t, err, crosscheck.ErrUnsupportedFlavor)

	_, err = crosscheck.Check([]byte("a"), crosscheck.Options{Flavor: config.FlavorMDX, Parse: parser.MDXOptions()})
	require.ErrorIs(t, err, crosscheck.ErrUnsupportedFlavor)
}

func TestOutline(t *testing.T) {
	t.Parallel()

	root, err := mdast.Parse([]byte("# a\n\n3. b *c*\n\n[d]: /e\n\n[^f]: g"), parser.GFMOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"heading depth=1",
		"list ordered=true start=3",
		"  listItem",
		"    paragraph",
		"      emphasis",
	}, crosscheck.Outline(root))
}
