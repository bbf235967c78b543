package parser

import (
	"fmt"
	"sort"
	"strings"
)

// Constructs toggles which constructs are tried.
//
//nolint:govet // Alphabetical order reads better than packed order here.
type Constructs struct {
	Attention             bool `yaml:"attention"`
	Autolink              bool `yaml:"autolink"`
	BlockQuote            bool `yaml:"block_quote"`
	CharacterEscape       bool `yaml:"character_escape"`
	CharacterReference    bool `yaml:"character_reference"`
	CodeIndented          bool `yaml:"code_indented"`
	CodeFenced            bool `yaml:"code_fenced"`
	CodeText              bool `yaml:"code_text"`
	Definition            bool `yaml:"definition"`
	Frontmatter           bool `yaml:"frontmatter"`
	GFMAutolinkLiteral    bool `yaml:"gfm_autolink_literal"`
	GFMFootnoteDefinition bool `yaml:"gfm_footnote_definition"`
	GFMLabelStartFootnote bool `yaml:"gfm_label_start_footnote"`
	GFMStrikethrough      bool `yaml:"gfm_strikethrough"`
	GFMTaskListItem       bool `yaml:"gfm_task_list_item"`
	HardBreakEscape       bool `yaml:"hard_break_escape"`
	HardBreakTrailing     bool `yaml:"hard_break_trailing"`
	HeadingATX            bool `yaml:"heading_atx"`
	HeadingSetext         bool `yaml:"heading_setext"`
	HTMLFlow              bool `yaml:"html_flow"`
	HTMLText              bool `yaml:"html_text"`
	LabelStartImage       bool `yaml:"label_start_image"`
	LabelStartLink        bool `yaml:"label_start_link"`
	LabelEnd              bool `yaml:"label_end"`
	ListItem              bool `yaml:"list_item"`
	MathFlow              bool `yaml:"math_flow"`
	MathText              bool `yaml:"math_text"`
	MDXExpressionFlow     bool `yaml:"mdx_expression_flow"`
	MDXExpressionText     bool `yaml:"mdx_expression_text"`
	ThematicBreak         bool `yaml:"thematic_break"`
}

// CommonMarkConstructs turns on everything in CommonMark.
func CommonMarkConstructs() Constructs {
	return Constructs{
		Attention:          true,
		Autolink:           true,
		BlockQuote:         true,
		CharacterEscape:    true,
		CharacterReference: true,
		CodeIndented:       true,
		CodeFenced:         true,
		CodeText:           true,
		Definition:         true,
		HardBreakEscape:    true,
		HardBreakTrailing:  true,
		HeadingATX:         true,
		HeadingSetext:      true,
		HTMLFlow:           true,
		HTMLText:           true,
		LabelStartImage:    true,
		LabelStartLink:     true,
		LabelEnd:           true,
		ListItem:           true,
		ThematicBreak:      true,
	}
}

// GFMConstructs is CommonMark plus autolink literals, footnotes,
// strikethrough and task list items.
func GFMConstructs() Constructs {
	c := CommonMarkConstructs()
	c.GFMAutolinkLiteral = true
	c.GFMFootnoteDefinition = true
	c.GFMLabelStartFootnote = true
	c.GFMStrikethrough = true
	c.GFMTaskListItem = true
	return c
}

// MDXConstructs is CommonMark without indented code, HTML and autolinks,
// and with expressions.
func MDXConstructs() Constructs {
	c := CommonMarkConstructs()
	c.Autolink = false
	c.CodeIndented = false
	c.HTMLFlow = false
	c.HTMLText = false
	c.MDXExpressionFlow = true
	c.MDXExpressionText = true
	return c
}

// constructFields maps construct names, as used in configuration, to their
// toggles.
func (c *Constructs) constructFields() map[string]*bool {
	return map[string]*bool{
		"attention":                &c.Attention,
		"autolink":                 &c.Autolink,
		"block_quote":              &c.BlockQuote,
		"character_escape":         &c.CharacterEscape,
		"character_reference":      &c.CharacterReference,
		"code_indented":            &c.CodeIndented,
		"code_fenced":              &c.CodeFenced,
		"code_text":                &c.CodeText,
		"definition":               &c.Definition,
		"frontmatter":              &c.Frontmatter,
		"gfm_autolink_literal":     &c.GFMAutolinkLiteral,
		"gfm_footnote_definition":  &c.GFMFootnoteDefinition,
		"gfm_label_start_footnote": &c.GFMLabelStartFootnote,
		"gfm_strikethrough":        &c.GFMStrikethrough,
		"gfm_task_list_item":       &c.GFMTaskListItem,
		"hard_break_escape":        &c.HardBreakEscape,
		"hard_break_trailing":      &c.HardBreakTrailing,
		"heading_atx":              &c.HeadingATX,
		"heading_setext":           &c.HeadingSetext,
		"html_flow":                &c.HTMLFlow,
		"html_text":                &c.HTMLText,
		"label_start_image":        &c.LabelStartImage,
		"label_start_link":         &c.LabelStartLink,
		"label_end":                &c.LabelEnd,
		"list_item":                &c.ListItem,
		"math_flow":                &c.MathFlow,
		"math_text":                &c.MathText,
		"mdx_expression_flow":      &c.MDXExpressionFlow,
		"mdx_expression_text":      &c.MDXExpressionText,
		"thematic_break":           &c.ThematicBreak,
	}
}

// Set turns the named construct on or off.
func (c *Constructs) Set(name string, on bool) error {
	field, ok := c.constructFields()[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown construct %q", name)
	}
	*field = on
	return nil
}

// Names lists the construct names accepted by Set.
func (c *Constructs) Names() []string {
	fields := c.constructFields()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options configures a parse.
type Options struct {
	Constructs Constructs

	// GFMStrikethroughSingleTilde allows `~a~` next to `~~a~~`.
	GFMStrikethroughSingleTilde bool
	// MathTextSingleDollar allows `$a$` next to `$$a$$`.
	MathTextSingleDollar bool
}

// DefaultOptions parses CommonMark.
func DefaultOptions() Options {
	return Options{
		Constructs:                  CommonMarkConstructs(),
		GFMStrikethroughSingleTilde: true,
		MathTextSingleDollar:        true,
	}
}

// GFMOptions parses GitHub flavored markdown.
func GFMOptions() Options {
	opts := DefaultOptions()
	opts.Constructs = GFMConstructs()
	return opts
}

// MDXOptions parses MDX without JSX and ESM.
func MDXOptions() Options {
	opts := DefaultOptions()
	opts.Constructs = MDXConstructs()
	return opts
}
