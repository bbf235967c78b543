package html

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gomdparse/pkg/event"
	"github.com/yaklabco/gomdparse/pkg/langdetect"
	"github.com/yaklabco/gomdparse/pkg/parser"
)

// Render parses source and compiles it to HTML.
func Render(source []byte, parseOpts parser.Options, opts Options) (string, error) {
	doc, err := parser.Parse(source, parseOpts)
	if err != nil {
		return "", err
	}
	return Compile(doc, source, opts), nil
}

// media is a link or image being compiled.
type media struct {
	image bool
	// labelEnter and referenceEnter index the enter events of the label
	// text and reference string, or are -1.
	labelEnter     int
	referenceEnter int
	label          string
	resource       bool
	destination    string
	title          string
	hasTitle       bool
}

type compiler struct {
	events      []event.Event
	source      []byte
	opts        Options
	definitions map[string]parser.Definition

	index   int
	buffers []*strings.Builder

	lineEnding string

	encodeHTML         bool
	slurpOneLineEnding bool
	imageAltInside     bool
	rawTextInside      bool

	// rawFlowFences counts the fences of fenced code or math seen so far,
	// and is -1 in indented code.
	rawFlowFences   int
	rawFlowSeenData bool

	referenceBase     int
	headingATXRank    int
	headingSetextText string
	listFirstMarker   bool

	tightStack []bool
	mediaStack []*media

	// footnoteLabels stacks the labels of open footnote definitions.
	footnoteLabels      []string
	footnoteDefinitions []footnoteDefinition
	footnoteCalls       []footnoteCall
}

type footnoteDefinition struct {
	id    string
	value string
}

// footnoteCall counts the calls of one footnote, in order of first call.
type footnoteCall struct {
	id    string
	count int
}

// Compile turns the events of doc into HTML.
func Compile(doc *parser.Document, source []byte, opts Options) string {
	c := &compiler{
		events:      doc.Events,
		source:      source,
		opts:        opts,
		definitions: doc.Definitions,
		buffers:     []*strings.Builder{{}},
		encodeHTML:  true,
		lineEnding:  inferLineEnding(doc.Events, source, opts.DefaultLineEnding),
	}

	for c.index = 0; c.index < len(c.events); c.index++ {
		ev := c.events[c.index]
		// Definitions were collected by the parser and produce no output.
		if ev.Kind == event.Enter && ev.Token == event.TokDefinition {
			c.index = event.ExitIndex(c.events, c.index)
			continue
		}
		if ev.Kind == event.Enter {
			c.enter(ev.Token)
		} else {
			c.exit(ev.Token)
		}
	}

	if len(c.footnoteCalls) > 0 {
		c.footnoteSection()
	}

	return c.buffers[0].String()
}

func inferLineEnding(events []event.Event, source []byte, fallback LineEnding) string {
	for i, ev := range events {
		if ev.Kind == event.Exit && (ev.Token == event.TokLineEnding || ev.Token == event.TokBlankLineEnding) {
			return string(source[events[i-1].Point.Offset:ev.Point.Offset])
		}
	}
	if fallback == "" {
		return string(LineFeed)
	}
	return string(fallback)
}

func (c *compiler) buffer() {
	c.buffers = append(c.buffers, &strings.Builder{})
}

func (c *compiler) resume() string {
	last := c.buffers[len(c.buffers)-1]
	c.buffers = c.buffers[:len(c.buffers)-1]
	return last.String()
}

func (c *compiler) push(value string) {
	c.buffers[len(c.buffers)-1].WriteString(value)
}

func (c *compiler) pushLineEnding() {
	c.push(c.lineEnding)
}

func (c *compiler) lineEndingIfNeeded() {
	current := c.buffers[len(c.buffers)-1].String()
	if current == "" {
		return
	}
	if tail := current[len(current)-1]; tail != '\n' && tail != '\r' {
		c.pushLineEnding()
	}
}

func (c *compiler) slice(index int) string {
	return event.Slice(c.events, c.source, index)
}

// span is the source between the enter event at enter and the exit event
// at exit.
func (c *compiler) span(enter, exit int) string {
	return string(c.source[c.events[enter].Point.Offset:c.events[exit].Point.Offset])
}

func (c *compiler) tight() bool {
	if len(c.tightStack) == 0 {
		return false
	}
	return c.tightStack[len(c.tightStack)-1]
}

func (c *compiler) enter(token event.TokenKind) {
	switch token {
	case event.TokCodeFencedFenceInfo, event.TokCodeFencedFenceMeta, event.TokMathFlowFenceMeta,
		event.TokHeadingATXText, event.TokHeadingSetextText, event.TokLabel, event.TokReferenceString,
		event.TokResourceTitleString, event.TokFrontmatter, event.TokGFMFootnoteDefinitionPrefix,
		event.TokMDXFlowExpression, event.TokMDXTextExpression:
		c.buffer()
	case event.TokBlockQuote:
		c.tightStack = append(c.tightStack, false)
		c.lineEndingIfNeeded()
		c.push("<blockquote>")
	case event.TokCodeIndented:
		c.rawFlowFences = -1
		c.rawFlowSeenData = false
		c.lineEndingIfNeeded()
		c.push("<pre><code>")
	case event.TokCodeFenced, event.TokMathFlow:
		c.rawFlowFences = 0
		c.rawFlowSeenData = false
		c.lineEndingIfNeeded()
		c.push("<pre><code")
		if token == event.TokMathFlow {
			c.push(` class="language-math math-display"`)
		}
	case event.TokCodeText, event.TokMathText:
		c.rawTextInside = true
		if !c.imageAltInside {
			c.push("<code")
			if token == event.TokMathText {
				c.push(` class="language-math math-inline"`)
			}
			c.push(">")
		}
		c.buffer()
	case event.TokEmphasis:
		c.tag("<em>")
	case event.TokStrong:
		c.tag("<strong>")
	case event.TokGFMFootnoteCall:
		c.mediaStack = append(c.mediaStack, &media{labelEnter: -1, referenceEnter: -1})
	case event.TokGFMFootnoteDefinition:
		c.tightStack = append(c.tightStack, false)
	case event.TokGFMStrikethrough:
		c.tag("<del>")
	case event.TokGFMTaskListItemCheck:
		c.tag(`<input type="checkbox" `)
		if !c.opts.GFMTaskListItemCheckable {
			c.tag(`disabled="" `)
		}
	case event.TokHTMLFlow:
		c.lineEndingIfNeeded()
		c.enterHTML()
	case event.TokHTMLText:
		c.enterHTML()
	case event.TokImage:
		c.mediaStack = append(c.mediaStack, &media{image: true, labelEnter: -1, referenceEnter: -1})
		c.imageAltInside = true
	case event.TokLink:
		c.mediaStack = append(c.mediaStack, &media{labelEnter: -1, referenceEnter: -1})
	case event.TokResource:
		// Line endings in the resource produce no output.
		c.buffer()
		c.mediaStack[len(c.mediaStack)-1].resource = true
	case event.TokResourceDestinationString:
		c.buffer()
		c.encodeHTML = false
	case event.TokListOrdered, event.TokListUnordered:
		c.tightStack = append(c.tightStack, !event.ListLoose(c.events, c.index))
		c.lineEndingIfNeeded()
		if token == event.TokListOrdered {
			c.push("<ol")
		} else {
			c.push("<ul")
		}
		c.listFirstMarker = true
	case event.TokListItemMarker:
		if c.listFirstMarker {
			c.push(">")
		}
		c.lineEndingIfNeeded()
		c.push("<li>")
		c.listFirstMarker = false
	case event.TokParagraph:
		if !c.tight() {
			c.lineEndingIfNeeded()
			c.push("<p>")
		}
	}
}

func (c *compiler) exit(token event.TokenKind) {
	switch token {
	case event.TokData, event.TokCodeTextData, event.TokMathTextData, event.TokCharacterEscapeValue:
		c.push(encode(c.slice(c.index), c.encodeHTML))
	case event.TokCodeFlowChunk, event.TokMathFlowChunk:
		c.rawFlowSeenData = true
		c.push(encode(c.slice(c.index), c.encodeHTML))
	case event.TokAutolinkEmail:
		c.autolink("mailto:", c.slice(c.index), false)
	case event.TokAutolinkProtocol:
		c.autolink("", c.slice(c.index), false)
	case event.TokGFMAutolinkLiteralEmail:
		c.autolink("mailto:", c.slice(c.index), true)
	case event.TokGFMAutolinkLiteralWww:
		c.autolink("http://", c.slice(c.index), true)
	case event.TokGFMAutolinkLiteralMailto, event.TokGFMAutolinkLiteralProtocol, event.TokGFMAutolinkLiteralXmpp:
		c.autolink("", c.slice(c.index), true)
	case event.TokBlankLineEnding:
		c.slurpOneLineEnding = false
		if c.index == len(c.events)-1 {
			c.lineEndingIfNeeded()
		}
	case event.TokBlockQuote:
		c.tightStack = c.tightStack[:len(c.tightStack)-1]
		c.lineEndingIfNeeded()
		c.slurpOneLineEnding = false
		c.push("</blockquote>")
	case event.TokCharacterReferenceMarkerNumeric:
		c.referenceBase = 10
	case event.TokCharacterReferenceMarkerHexadecimal:
		c.referenceBase = 16
	case event.TokCharacterReferenceValue:
		c.push(encode(parser.DecodeCharacterReference(c.slice(c.index), c.referenceBase), c.encodeHTML))
		c.referenceBase = 0
	case event.TokCodeFenced, event.TokCodeIndented, event.TokMathFlow:
		c.exitRawFlow()
	case event.TokCodeFencedFence, event.TokMathFlowFence:
		if c.rawFlowFences == 0 {
			if token == event.TokCodeFencedFence {
				c.detectLanguage()
			}
			c.push(">")
			c.slurpOneLineEnding = true
		}
		c.rawFlowFences++
	case event.TokCodeFencedFenceInfo:
		info := c.resume()
		c.push(` class="language-` + info + `"`)
	case event.TokCodeFencedFenceMeta, event.TokMathFlowFenceMeta, event.TokMDXTextExpression:
		c.resume()
	case event.TokFrontmatter, event.TokMDXFlowExpression:
		c.resume()
		c.slurpOneLineEnding = true
	case event.TokCodeText, event.TokMathText:
		c.exitRawText()
	case event.TokEmphasis:
		c.tag("</em>")
	case event.TokStrong:
		c.tag("</strong>")
	case event.TokGFMFootnoteCall:
		c.exitFootnoteCall()
	case event.TokGFMFootnoteDefinitionLabelString:
		enter := event.EnterIndex(c.events, c.index)
		c.footnoteLabels = append(c.footnoteLabels, c.span(enter, c.index))
	case event.TokGFMFootnoteDefinitionPrefix:
		// The prefix produces nothing: collect what follows instead.
		c.resume()
		c.buffer()
	case event.TokGFMFootnoteDefinition:
		value := c.resume()
		c.tightStack = c.tightStack[:len(c.tightStack)-1]
		label := c.footnoteLabels[len(c.footnoteLabels)-1]
		c.footnoteLabels = c.footnoteLabels[:len(c.footnoteLabels)-1]
		c.footnoteDefinitions = append(c.footnoteDefinitions, footnoteDefinition{
			id:    parser.NormalizeIdentifier(label),
			value: value,
		})
	case event.TokGFMStrikethrough:
		c.tag("</del>")
	case event.TokGFMTaskListItemCheck:
		c.tag("/>")
	case event.TokGFMTaskListItemValueChecked:
		c.tag(`checked="" `)
	case event.TokHardBreakEscape, event.TokHardBreakTrailing:
		c.tag("<br />")
	case event.TokHeadingATX:
		c.push("</h" + strconv.Itoa(c.headingATXRank) + ">")
		c.headingATXRank = 0
	case event.TokHeadingATXSequence:
		if c.headingATXRank == 0 {
			c.headingATXRank = len(c.slice(c.index))
			c.lineEndingIfNeeded()
			c.push("<h" + strconv.Itoa(c.headingATXRank) + ">")
		}
	case event.TokHeadingATXText:
		c.push(c.resume())
	case event.TokHeadingSetextText:
		c.headingSetextText = c.resume()
		c.slurpOneLineEnding = true
	case event.TokHeadingSetextUnderlineSequence:
		rank := "1"
		if c.source[c.events[c.index-1].Point.Offset] == '-' {
			rank = "2"
		}
		c.lineEndingIfNeeded()
		c.push("<h" + rank + ">" + c.headingSetextText + "</h" + rank + ">")
		c.headingSetextText = ""
	case event.TokHTMLFlow, event.TokHTMLText:
		c.encodeHTML = true
	case event.TokHTMLFlowData, event.TokHTMLTextData:
		value := c.slice(c.index)
		if c.opts.GFMTagfilter && c.opts.AllowDangerousHTML {
			value = tagfilter(value)
		}
		c.push(encode(value, c.encodeHTML))
	case event.TokImage, event.TokLink:
		c.exitMedia()
	case event.TokLabel:
		c.mediaStack[len(c.mediaStack)-1].label = c.resume()
	case event.TokLabelText:
		c.mediaStack[len(c.mediaStack)-1].labelEnter = event.EnterIndex(c.events, c.index)
	case event.TokReferenceString:
		c.resume()
		c.mediaStack[len(c.mediaStack)-1].referenceEnter = event.EnterIndex(c.events, c.index)
	case event.TokResource:
		c.resume()
	case event.TokResourceDestinationString:
		c.mediaStack[len(c.mediaStack)-1].destination = c.resume()
		c.encodeHTML = true
	case event.TokResourceTitleString:
		m := c.mediaStack[len(c.mediaStack)-1]
		m.title = c.resume()
		m.hasTitle = true
	case event.TokLineEnding:
		c.exitLineEnding()
	case event.TokListOrdered, event.TokListUnordered:
		c.tightStack = c.tightStack[:len(c.tightStack)-1]
		c.pushLineEnding()
		if token == event.TokListOrdered {
			c.push("</ol>")
		} else {
			c.push("</ul>")
		}
	case event.TokListItem:
		c.exitListItem()
	case event.TokListItemValue:
		if c.listFirstMarker {
			if value, err := strconv.Atoi(c.slice(c.index)); err == nil && value != 1 {
				c.push(` start="` + strconv.Itoa(value) + `"`)
			}
		}
	case event.TokParagraph:
		if c.tight() {
			c.slurpOneLineEnding = true
		} else {
			c.push("</p>")
		}
	case event.TokThematicBreak:
		c.lineEndingIfNeeded()
		c.push("<hr />")
	}
}

// tag pushes markup unless inside image alt text, which is plain text.
func (c *compiler) tag(value string) {
	if !c.imageAltInside {
		c.push(value)
	}
}

func (c *compiler) enterHTML() {
	if c.opts.AllowDangerousHTML {
		c.encodeHTML = false
	}
}

func (c *compiler) exitLineEnding() {
	switch {
	case c.rawTextInside:
		c.push(" ")
	case c.slurpOneLineEnding,
		c.index > 1 && c.events[c.index-2].Token == event.TokDefinition,
		c.index > 1 && c.events[c.index-2].Token == event.TokGFMFootnoteDefinition:
		c.slurpOneLineEnding = false
	default:
		c.push(encode(c.slice(c.index), c.encodeHTML))
	}
}

func (c *compiler) exitRawFlow() {
	// An unclosed fence in a container ends at the container, but the line
	// ending after it still belongs to the code.
	if c.rawFlowFences == 1 && len(c.tightStack) > 0 {
		previous := c.events[c.index-1].Token
		if previous != event.TokCodeFencedFence && previous != event.TokMathFlowFence {
			c.pushLineEnding()
		}
	}

	if c.rawFlowSeenData {
		c.lineEndingIfNeeded()
	}

	c.push("</code></pre>")

	if c.rawFlowFences >= 0 && c.rawFlowFences < 2 {
		c.lineEndingIfNeeded()
	}

	c.rawFlowFences = 0
	c.rawFlowSeenData = false
	c.slurpOneLineEnding = false
}

// detectLanguage adds a class to the opening fence at index when it has no
// info and the language of the code can be guessed.
func (c *compiler) detectLanguage() {
	if !c.opts.DetectLanguage {
		return
	}

	for i := c.index - 1; i >= 0; i-- {
		token := c.events[i].Token
		if token == event.TokCodeFencedFenceInfo {
			return
		}
		if token == event.TokCodeFenced {
			break
		}
	}

	var lines []string
	for i := c.index + 1; i < len(c.events); i++ {
		ev := c.events[i]
		if ev.Kind == event.Exit && ev.Token == event.TokCodeFenced {
			break
		}
		if ev.Kind == event.Exit && ev.Token == event.TokCodeFlowChunk {
			lines = append(lines, c.slice(i))
		}
	}

	if lang, ok := langdetect.Detect([]byte(strings.Join(lines, "\n"))); ok {
		c.push(` class="language-` + encode(lang, true) + `"`)
	}
}

func (c *compiler) exitRawText() {
	value := c.resume()

	if end := len(value); end > 2 && value[0] == ' ' && value[end-1] == ' ' &&
		strings.Trim(value, " ") != "" {
		value = value[1 : end-1]
	}

	c.rawTextInside = false
	c.push(value)
	c.tag("</code>")
}

func (c *compiler) exitListItem() {
	before := event.SkipBack(c.events, c.index-1,
		event.TokBlankLineEnding, event.TokBlockQuotePrefix, event.TokLineEnding,
		event.TokSpaceOrTab, event.TokDefinition, event.TokGFMFootnoteDefinition)

	tightParagraph, emptyItem := false, false
	if before >= 0 {
		previous := c.events[before].Token
		tightParagraph = c.tight() && previous == event.TokParagraph
		emptyItem = previous == event.TokListItemPrefix
	}

	c.slurpOneLineEnding = false
	if !tightParagraph && !emptyItem {
		c.lineEndingIfNeeded()
	}
	c.push("</li>")
}

// autolink pushes a link to protocol+value. A literal inside a link is
// plain text.
func (c *compiler) autolink(protocol, value string, literal bool) {
	inLink := false
	for _, m := range c.mediaStack {
		if !m.image {
			inLink = true
			break
		}
	}
	anchor := !c.imageAltInside && (!inLink || !literal)

	if anchor {
		url := protocol + value
		if c.opts.AllowDangerousProtocol {
			url = sanitize(url)
		} else {
			url = sanitizeWithProtocols(url, safeProtocolHref)
		}
		c.push(`<a href="` + url + `">`)
	}
	c.push(encode(value, c.encodeHTML))
	if anchor {
		c.push("</a>")
	}
}

func (c *compiler) exitMedia() {
	inImage := false
	for _, m := range c.mediaStack[:len(c.mediaStack)-1] {
		if m.image {
			inImage = true
			break
		}
	}
	c.imageAltInside = inImage

	m := c.mediaStack[len(c.mediaStack)-1]
	c.mediaStack = c.mediaStack[:len(c.mediaStack)-1]

	destination, title, hasTitle := m.destination, m.title, m.hasTitle
	if !m.resource {
		if def, ok := c.definitions[c.mediaIdentifier(m)]; ok {
			destination = def.Destination
			title = encode(def.Title, true)
			hasTitle = def.Title != ""
		}
	}

	if !inImage {
		protocols := safeProtocolHref
		if m.image {
			c.push(`<img src="`)
			protocols = safeProtocolSrc
		} else {
			c.push(`<a href="`)
		}
		if c.opts.AllowDangerousProtocol {
			c.push(sanitize(destination))
		} else {
			c.push(sanitizeWithProtocols(destination, protocols))
		}
		if m.image {
			c.push(`" alt="`)
		}
	}

	if m.image {
		c.push(m.label)
	}

	if !inImage {
		c.push(`"`)
		if hasTitle {
			c.push(` title="` + title + `"`)
		}
		if m.image {
			c.push(" /")
		}
		c.push(">")
	}

	if !m.image {
		c.push(m.label)
		c.tag("</a>")
	}
}

// mediaIdentifier is the normalized reference of m, falling back to its
// label for collapsed and shortcut references.
func (c *compiler) mediaIdentifier(m *media) string {
	enter := m.referenceEnter
	if enter == -1 {
		enter = m.labelEnter
	}
	if enter == -1 {
		return ""
	}
	return parser.NormalizeIdentifier(c.span(enter, event.ExitIndex(c.events, enter)))
}
