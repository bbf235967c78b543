package mdast

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gomdparse/pkg/event"
	"github.com/yaklabco/gomdparse/pkg/parser"
)

// Parse parses source and builds its tree.
func Parse(source []byte, opts parser.Options) (*Node, error) {
	doc, err := parser.Parse(source, opts)
	if err != nil {
		return nil, err
	}
	return FromEvents(doc.Events, source), nil
}

// treeBuilder turns one event list into nodes.
type treeBuilder struct {
	events []event.Event
	source []byte
	index  int
	stack  []*Node

	// setextTextAfter is set between the text and underline of a setext
	// heading, where the line ending is not content.
	setextTextAfter bool
	// hardBreakAfter is set when the next line ending belongs to a break.
	hardBreakAfter bool
	// taskCheckAfter is set when the next text follows a task list check.
	taskCheckAfter bool
}

// FromEvents builds the tree of the events of a parsed document. Links and
// images that use a reference get the destination of the matching
// definition.
func FromEvents(events []event.Event, source []byte) *Node {
	start := event.Point{Line: 1, Column: 1}
	end := start
	if len(events) > 0 {
		end = events[len(events)-1].Point
	}

	root := NewNode(NodeRoot, event.Position{Start: start, End: end})
	b := &treeBuilder{events: events, source: source, stack: []*Node{root}}

	for b.index = 0; b.index < len(events); b.index++ {
		if events[b.index].Kind == event.Enter {
			b.enter(events[b.index])
		} else {
			b.exit(events[b.index])
		}
	}

	resolveReferences(root)
	return root
}

func (b *treeBuilder) top() *Node {
	return b.stack[len(b.stack)-1]
}

// nearest returns the innermost open node of kind, or nil.
func (b *treeBuilder) nearest(kind NodeKind) *Node {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i].Kind == kind {
			return b.stack[i]
		}
	}
	return nil
}

func (b *treeBuilder) open(kind NodeKind, at event.Point) *Node {
	n := NewNode(kind, event.Position{Start: at, End: at})
	AppendChild(b.top(), n)
	b.stack = append(b.stack, n)
	return n
}

func (b *treeBuilder) close(at event.Point) *Node {
	n := b.top()
	n.Position.End = at
	b.stack = b.stack[:len(b.stack)-1]
	return n
}

// leaf adds a node for the whole token entered at the current index and
// moves past its exit.
func (b *treeBuilder) leaf(kind NodeKind) *Node {
	exit := event.ExitIndex(b.events, b.index)
	n := NewNode(kind, event.Position{Start: b.events[b.index].Point, End: b.events[exit].Point})
	AppendChild(b.top(), n)
	b.index = exit
	return n
}

// stringValue decodes the string content of the token entered at the
// current index and moves past its exit.
func (b *treeBuilder) stringValue() string {
	exit := event.ExitIndex(b.events, b.index)
	value := parser.StringValue(b.source, b.events[b.index:exit+1])
	b.index = exit
	return value
}

func (b *treeBuilder) link() *LinkAttrs {
	return b.top().Inline.Link
}

func (b *treeBuilder) enter(ev event.Event) {
	switch ev.Token {
	case event.TokParagraph:
		b.open(NodeParagraph, ev.Point)
	case event.TokHeadingATX, event.TokHeadingSetext:
		b.open(NodeHeading, ev.Point).Block = &BlockAttrs{}
	case event.TokThematicBreak:
		b.open(NodeThematicBreak, ev.Point)
	case event.TokBlockQuote:
		b.open(NodeBlockquote, ev.Point)
	case event.TokListOrdered, event.TokListUnordered:
		b.open(NodeList, ev.Point).Block = &BlockAttrs{List: &ListAttrs{
			Ordered: ev.Token == event.TokListOrdered,
			Spread:  event.ListLoose(b.events, b.index),
		}}
	case event.TokListItem:
		b.open(NodeListItem, ev.Point).Block = &BlockAttrs{Spread: event.ListItemLoose(b.events, b.index)}
	case event.TokEmphasis:
		b.open(NodeEmphasis, ev.Point)
	case event.TokStrong:
		b.open(NodeStrong, ev.Point)
	case event.TokGFMStrikethrough:
		b.open(NodeDelete, ev.Point)
	case event.TokLink:
		b.open(NodeLink, ev.Point).Inline = &InlineAttrs{Link: &LinkAttrs{Style: RefStyleShortcut}}
	case event.TokImage:
		b.open(NodeImage, ev.Point).Inline = &InlineAttrs{Link: &LinkAttrs{Style: RefStyleShortcut}}
	case event.TokAutolink:
		b.open(NodeLink, ev.Point).Inline = &InlineAttrs{Link: &LinkAttrs{Style: RefStyleAutolink}}
	case event.TokGFMAutolinkLiteralProtocol, event.TokGFMAutolinkLiteralWww,
		event.TokGFMAutolinkLiteralEmail, event.TokGFMAutolinkLiteralMailto, event.TokGFMAutolinkLiteralXmpp:
		b.autolinkLiteral(ev)
	case event.TokGFMFootnoteCall:
		b.footnoteReference()
	case event.TokGFMFootnoteDefinition:
		b.open(NodeFootnoteDefinition, ev.Point).Block = &BlockAttrs{Definition: &LinkAttrs{}}
	case event.TokGFMFootnoteDefinitionPrefix:
		b.footnoteLabel()

	case event.TokResource:
		b.resource()
	case event.TokReference:
		b.link().Style = RefStyleCollapsed
	case event.TokReferenceString:
		label := b.label()
		link := b.link()
		link.Style = RefStyleFull
		link.Label, link.Identifier = label, parser.NormalizeIdentifier(label)

	case event.TokCharacterReference:
		b.text(b.stringValue(), ev.Point, b.events[b.index].Point)
	case event.TokHardBreakEscape, event.TokHardBreakTrailing:
		b.leaf(NodeBreak)
		b.hardBreakAfter = true

	case event.TokCodeFenced, event.TokCodeIndented:
		b.rawFlow(NodeCode)
	case event.TokMathFlow:
		b.rawFlow(NodeMath)
	case event.TokCodeText:
		b.rawText(NodeInlineCode)
	case event.TokMathText:
		b.rawText(NodeInlineMath)
	case event.TokHTMLFlow:
		b.literal(NodeHTMLBlock, event.TokHTMLFlowData)
	case event.TokHTMLText:
		b.literal(NodeHTMLInline, event.TokHTMLTextData)
	case event.TokMDXFlowExpression:
		b.literal(NodeMDXFlowExpression, event.TokMDXExpressionData)
	case event.TokMDXTextExpression:
		b.literal(NodeMDXTextExpression, event.TokMDXExpressionData)
	case event.TokFrontmatter:
		b.frontmatter()
	case event.TokDefinition:
		b.definition()
	}
}

func (b *treeBuilder) exit(ev event.Event) {
	switch ev.Token {
	case event.TokParagraph, event.TokThematicBreak, event.TokBlockQuote,
		event.TokListOrdered, event.TokListUnordered, event.TokListItem,
		event.TokHeadingATX, event.TokHeadingSetext,
		event.TokEmphasis, event.TokStrong, event.TokGFMStrikethrough,
		event.TokLink, event.TokAutolink, event.TokGFMFootnoteDefinition:
		b.close(ev.Point)
	case event.TokImage:
		n := b.close(ev.Point)
		n.Inline.Alt = TextContent(n)
		RemoveChildren(n)

	case event.TokData, event.TokCharacterEscapeValue:
		b.text(event.Slice(b.events, b.source, b.index), b.events[b.index-1].Point, ev.Point)
	case event.TokLineEnding:
		b.lineEnding(ev)

	case event.TokHeadingATXSequence:
		if heading := b.top(); heading.Block.Depth == 0 {
			heading.Block.Depth = len(event.Slice(b.events, b.source, b.index))
		}
	case event.TokHeadingSetextText:
		b.setextTextAfter = true
	case event.TokHeadingSetextUnderlineSequence:
		b.top().Block.Depth = 1
		if b.source[b.events[b.index-1].Point.Offset] == '-' {
			b.top().Block.Depth = 2
		}
		b.setextTextAfter = false

	case event.TokListItemValue:
		if list := b.nearest(NodeList); list.FirstChild == b.top() {
			list.Block.List.Start, _ = strconv.Atoi(event.Slice(b.events, b.source, b.index))
		}
	case event.TokListItemMarker:
		if list := b.nearest(NodeList); list.FirstChild == b.top() {
			marker := event.Slice(b.events, b.source, b.index)
			list.Block.List.Marker = marker[len(marker)-1]
		}
	case event.TokGFMTaskListItemValueChecked, event.TokGFMTaskListItemValueUnchecked:
		if item := b.nearest(NodeListItem); item != nil {
			checked := ev.Token == event.TokGFMTaskListItemValueChecked
			item.Block.Checked = &checked
		}
	case event.TokGFMTaskListItemCheck:
		b.taskCheckAfter = true

	case event.TokAutolinkProtocol, event.TokAutolinkEmail:
		value := event.Slice(b.events, b.source, b.index)
		b.link().URL = value
		if ev.Token == event.TokAutolinkEmail {
			b.link().URL = "mailto:" + value
		}
		b.text(value, b.events[b.index-1].Point, ev.Point)
	case event.TokLabelText:
		if link := b.link(); link.Style != RefStyleFull {
			enter := event.EnterIndex(b.events, b.index)
			label := string(b.source[b.events[enter].Point.Offset:ev.Point.Offset])
			link.Label, link.Identifier = label, parser.NormalizeIdentifier(label)
		}
	}
}

// resource reads the destination and title of the resource entered at the
// current index and moves past its exit. Whitespace and line endings in
// the resource are not content.
func (b *treeBuilder) resource() {
	link := b.link()
	link.Style = RefStyleInline
	link.Label, link.Identifier = "", ""

	exit := event.ExitIndex(b.events, b.index)
	for i := b.index + 1; i < exit; i++ {
		ev := b.events[i]
		if ev.Kind != event.Enter {
			continue
		}
		switch ev.Token {
		case event.TokResourceDestinationString:
			end := event.ExitIndex(b.events, i)
			link.URL = parser.StringValue(b.source, b.events[i:end+1])
			i = end
		case event.TokResourceTitleString:
			end := event.ExitIndex(b.events, i)
			link.Title = parser.StringValue(b.source, b.events[i:end+1])
			i = end
		}
	}
	b.index = exit
}

// label returns the raw source of the token entered at the current index
// and moves past its exit.
func (b *treeBuilder) label() string {
	exit := event.ExitIndex(b.events, b.index)
	label := string(b.source[b.events[b.index].Point.Offset:b.events[exit].Point.Offset])
	b.index = exit
	return label
}

// text appends value to the text node at the end of the open node, or
// starts a new one.
func (b *treeBuilder) text(value string, start, end event.Point) {
	if b.taskCheckAfter {
		b.taskCheckAfter = false
		trimmed := strings.TrimLeft(value, " \t")
		start.Offset += len(value) - len(trimmed)
		start.Column += len(value) - len(trimmed)
		value = trimmed
		if value == "" {
			return
		}
	}

	parent := b.top()
	if last := parent.LastChild; last != nil && last.Kind == NodeText {
		last.Value += value
		last.Position.End = end
		return
	}

	n := NewNode(NodeText, event.Position{Start: start, End: end})
	n.Value = value
	AppendChild(parent, n)
}

func (b *treeBuilder) lineEnding(ev event.Event) {
	switch {
	case b.setextTextAfter:
	case b.hardBreakAfter:
		b.hardBreakAfter = false
		if last := b.top().LastChild; last != nil && last.Kind == NodeBreak {
			last.Position.End = ev.Point
		}
	default:
		switch b.top().Kind {
		case NodeParagraph, NodeHeading, NodeEmphasis, NodeStrong, NodeDelete, NodeLink, NodeImage:
			b.text(event.Slice(b.events, b.source, b.index), b.events[b.index-1].Point, ev.Point)
		}
	}
}

// rawFlow adds a code or math block. The content is the chunks and line
// endings between the fences, without the line endings next to them.
func (b *treeBuilder) rawFlow(kind NodeKind) {
	enter := b.index
	n := b.leaf(kind)
	attrs := &CodeAttrs{Fenced: b.events[enter].Token != event.TokCodeIndented}
	n.Block = &BlockAttrs{Code: attrs}

	var value strings.Builder
	fences := 0
	for i := enter + 1; i < b.index; i++ {
		ev := b.events[i]
		if ev.Kind == event.Enter {
			continue
		}
		switch ev.Token {
		case event.TokCodeFencedFence, event.TokMathFlowFence:
			fences++
		case event.TokCodeFencedFenceInfo:
			attrs.Lang = parser.StringValue(b.source, b.events[event.EnterIndex(b.events, i):i+1])
		case event.TokCodeFencedFenceMeta, event.TokMathFlowFenceMeta:
			attrs.Meta = parser.StringValue(b.source, b.events[event.EnterIndex(b.events, i):i+1])
		case event.TokCodeFlowChunk, event.TokMathFlowChunk:
			value.WriteString(event.Slice(b.events, b.source, i))
		case event.TokLineEnding:
			if !attrs.Fenced || fences == 1 {
				value.WriteString(event.Slice(b.events, b.source, i))
			}
		}
	}

	v := value.String()
	if attrs.Fenced {
		v = trimLeadingLineEnding(v)
	}
	n.Value = trimTrailingLineEnding(v)
}

// rawText adds inline code or math. Line endings become spaces, and one
// space is stripped from both ends when both ends have one and the content
// is not only spaces.
func (b *treeBuilder) rawText(kind NodeKind) {
	enter := b.index
	n := b.leaf(kind)

	var value strings.Builder
	for i := enter + 1; i < b.index; i++ {
		ev := b.events[i]
		if ev.Kind == event.Enter {
			continue
		}
		switch ev.Token {
		case event.TokCodeTextData, event.TokMathTextData:
			value.WriteString(event.Slice(b.events, b.source, i))
		case event.TokLineEnding:
			value.WriteByte(' ')
		}
	}

	v := value.String()
	if end := len(v); end > 2 && v[0] == ' ' && v[end-1] == ' ' && strings.Trim(v, " ") != "" {
		v = v[1 : end-1]
	}
	n.Value = v
}

// literal adds a node whose value is the data of the token, line endings
// included, as written.
func (b *treeBuilder) literal(kind NodeKind, data event.TokenKind) {
	enter := b.index
	n := b.leaf(kind)

	var value strings.Builder
	for i := enter + 1; i < b.index; i++ {
		ev := b.events[i]
		if ev.Kind == event.Exit && (ev.Token == data || ev.Token == event.TokLineEnding) {
			value.WriteString(event.Slice(b.events, b.source, i))
		}
	}
	n.Value = value.String()
}

func (b *treeBuilder) frontmatter() {
	enter := b.index
	n := b.leaf(NodeFrontmatter)

	var value strings.Builder
	fences := 0
	for i := enter + 1; i < b.index; i++ {
		ev := b.events[i]
		if ev.Kind == event.Enter {
			continue
		}
		switch ev.Token {
		case event.TokFrontmatterFence:
			fences++
		case event.TokFrontmatterChunk, event.TokLineEnding:
			if fences == 1 {
				value.WriteString(event.Slice(b.events, b.source, i))
			}
		}
	}
	n.Value = trimTrailingLineEnding(trimLeadingLineEnding(value.String()))
}

// autolinkLiteral adds a link for a bare URL or email address. Inside
// another link, where a link cannot nest, it is text.
func (b *treeBuilder) autolinkLiteral(ev event.Event) {
	exit := event.ExitIndex(b.events, b.index)
	value := event.Slice(b.events, b.source, exit)
	if b.nearest(NodeLink) != nil {
		b.text(value, ev.Point, b.events[exit].Point)
		b.index = exit
		return
	}

	url := value
	switch ev.Token {
	case event.TokGFMAutolinkLiteralWww:
		url = "http://" + value
	case event.TokGFMAutolinkLiteralEmail:
		url = "mailto:" + value
	}

	n := b.leaf(NodeLink)
	n.Inline = &InlineAttrs{Link: &LinkAttrs{URL: url, Style: RefStyleAutolink}}
	text := NewNode(NodeText, n.Position)
	text.Value = value
	AppendChild(n, text)
}

// footnoteReference adds a call to a defined footnote. The label is the
// text between `[^` and `]`.
func (b *treeBuilder) footnoteReference() {
	enter := b.index
	n := b.leaf(NodeFootnoteReference)
	attrs := &LinkAttrs{}
	n.Inline = &InlineAttrs{Link: attrs}

	for i := enter + 1; i < b.index; i++ {
		ev := b.events[i]
		if ev.Kind == event.Exit && ev.Token == event.TokLabelText {
			start := event.EnterIndex(b.events, i)
			attrs.Label = string(b.source[b.events[start].Point.Offset:ev.Point.Offset])
			attrs.Identifier = parser.NormalizeIdentifier(attrs.Label)
		}
	}
}

// footnoteLabel reads the label of the open footnote definition from the
// prefix entered at the current index and moves past its exit.
func (b *treeBuilder) footnoteLabel() {
	attrs := b.top().Block.Definition
	exit := event.ExitIndex(b.events, b.index)
	for i := b.index + 1; i < exit; i++ {
		ev := b.events[i]
		if ev.Kind == event.Exit && ev.Token == event.TokGFMFootnoteDefinitionLabelString {
			start := event.EnterIndex(b.events, i)
			attrs.Label = string(b.source[b.events[start].Point.Offset:ev.Point.Offset])
			attrs.Identifier = parser.NormalizeIdentifier(attrs.Label)
		}
	}
	b.index = exit
}

func (b *treeBuilder) definition() {
	enter := b.index
	n := b.leaf(NodeDefinition)
	attrs := &LinkAttrs{}
	n.Block = &BlockAttrs{Definition: attrs}

	for i := enter + 1; i < b.index; i++ {
		ev := b.events[i]
		if ev.Kind == event.Enter {
			continue
		}
		start := event.EnterIndex(b.events, i)
		switch ev.Token {
		case event.TokDefinitionLabelString:
			attrs.Label = string(b.source[b.events[start].Point.Offset:ev.Point.Offset])
			attrs.Identifier = parser.NormalizeIdentifier(attrs.Label)
		case event.TokDefinitionDestinationString:
			attrs.URL = parser.StringValue(b.source, b.events[start:i+1])
		case event.TokDefinitionTitleString:
			attrs.Title = parser.StringValue(b.source, b.events[start:i+1])
		}
	}
}

// resolveReferences gives references the destination and title of the
// first definition with their identifier.
func resolveReferences(root *Node) {
	definitions := make(map[string]*LinkAttrs)
	for _, def := range FindByKind(root, NodeDefinition) {
		if _, ok := definitions[def.Block.Definition.Identifier]; !ok {
			definitions[def.Block.Definition.Identifier] = def.Block.Definition
		}
	}

	//nolint:errcheck // The callback never fails.
	Walk(root, func(n *Node) error {
		if n.Kind != NodeLink && n.Kind != NodeImage {
			return nil
		}
		link := n.Inline.Link
		if link.Style == RefStyleInline || link.Style == RefStyleAutolink {
			return nil
		}
		if def, ok := definitions[link.Identifier]; ok {
			link.URL, link.Title = def.URL, def.Title
		}
		return nil
	})
}

func trimLeadingLineEnding(value string) string {
	switch {
	case strings.HasPrefix(value, "\r\n"):
		return value[2:]
	case strings.HasPrefix(value, "\n"), strings.HasPrefix(value, "\r"):
		return value[1:]
	}
	return value
}

func trimTrailingLineEnding(value string) string {
	switch {
	case strings.HasSuffix(value, "\r\n"):
		return value[:len(value)-2]
	case strings.HasSuffix(value, "\n"), strings.HasSuffix(value, "\r"):
		return value[:len(value)-1]
	}
	return value
}
