package html

import (
	"strconv"
	"strings"
)

const (
	defaultFootnoteLabel         = "Footnotes"
	defaultFootnoteBackLabel     = "Back to content"
	defaultFootnoteClobberPrefix = "user-content-"
)

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func (c *compiler) footnotePrefix() string {
	return encode(orDefault(c.opts.GFMFootnoteClobberPrefix, defaultFootnoteClobberPrefix), true)
}

// exitFootnoteCall writes a numbered reference to a footnote. Numbers
// follow the order of first call, and repeated calls get their own id so
// each can be linked back to.
func (c *compiler) exitFootnoteCall() {
	m := c.mediaStack[len(c.mediaStack)-1]
	c.mediaStack = c.mediaStack[:len(c.mediaStack)-1]

	id := ""
	if m.labelEnter != -1 {
		id = c.mediaIdentifier(m)
	}

	at := len(c.footnoteCalls)
	for i, call := range c.footnoteCalls {
		if call.id == id {
			at = i
			break
		}
	}
	if at == len(c.footnoteCalls) {
		c.footnoteCalls = append(c.footnoteCalls, footnoteCall{id: id})
	}
	c.footnoteCalls[at].count++

	// Calls in image alt text count, but write nothing.
	if c.imageAltInside {
		return
	}

	safeID := sanitize(strings.ToLower(id))
	prefix := c.footnotePrefix()
	c.push(`<sup><a href="#` + prefix + "fn-" + safeID + `" id="` + prefix + "fnref-" + safeID)
	if count := c.footnoteCalls[at].count; count > 1 {
		c.push("-" + strconv.Itoa(count))
	}
	c.push(`" data-footnote-ref="" aria-describedby="footnote-label">` + strconv.Itoa(at+1) + "</a></sup>")
}

// footnoteSection writes the called footnotes, in order of first call.
func (c *compiler) footnoteSection() {
	c.lineEndingIfNeeded()
	c.push(`<section data-footnotes="" class="footnotes"><h2 id="footnote-label" class="sr-only">`)
	c.push(encode(orDefault(c.opts.GFMFootnoteLabel, defaultFootnoteLabel), true))
	c.push("</h2>")
	c.pushLineEnding()
	c.push("<ol>")

	for i := range c.footnoteCalls {
		c.footnoteItem(c.footnoteCalls[i])
	}

	c.pushLineEnding()
	c.push("</ol>")
	c.pushLineEnding()
	c.push("</section>")
	c.pushLineEnding()
}

func (c *compiler) footnoteItem(call footnoteCall) {
	safeID := sanitize(strings.ToLower(call.id))
	prefix := c.footnotePrefix()
	backLabel := encode(orDefault(c.opts.GFMFootnoteBackLabel, defaultFootnoteBackLabel), true)

	var value string
	for _, def := range c.footnoteDefinitions {
		if def.id == call.id {
			value = def.value
			break
		}
	}

	var backrefs strings.Builder
	for i := range call.count {
		if i > 0 {
			backrefs.WriteByte(' ')
		}
		backrefs.WriteString(`<a href="#` + prefix + "fnref-" + safeID)
		if i > 0 {
			backrefs.WriteString("-" + strconv.Itoa(i+1))
		}
		backrefs.WriteString(`" data-footnote-backref="" aria-label="` + backLabel + `" class="data-footnote-backref">↩`)
		if i > 0 {
			backrefs.WriteString("<sup>" + strconv.Itoa(i+1) + "</sup>")
		}
		backrefs.WriteString("</a>")
	}

	c.pushLineEnding()
	c.push(`<li id="` + prefix + "fn-" + safeID + `">`)
	c.pushLineEnding()

	// Back references go inside a closing paragraph, or after the content.
	trimmed := strings.TrimRight(value, "\r\n")
	if strings.HasSuffix(trimmed, "</p>") {
		end := len(trimmed) - len("</p>")
		c.push(value[:end] + " " + backrefs.String() + value[end:])
	} else {
		c.push(value)
		c.lineEndingIfNeeded()
		c.push(backrefs.String())
	}
	c.lineEndingIfNeeded()
	c.push("</li>")
}
