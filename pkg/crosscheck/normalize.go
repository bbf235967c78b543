package crosscheck

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Selectors are the structural features counted in both outputs.
//
//nolint:gochecknoglobals // Read-only lookup table.
var Selectors = []string{
	"h1, h2, h3, h4, h5, h6",
	"p",
	"blockquote",
	"ul",
	"ol",
	"li",
	"pre",
	"code",
	"em",
	"strong",
	"del",
	"a",
	"img",
	"br",
	"hr",
	"input[type=checkbox]",
}

// parseBody parses an HTML fragment as a document and returns its body.
func parseBody(fragment string) (*html.Node, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	if body := cascadia.MustCompile("body").MatchFirst(doc); body != nil {
		return body, nil
	}
	return doc, nil
}

// normalize flattens the tree under root into one line per tag, text run
// or comment. Attributes are sorted, whitespace runs in text collapse to
// one space and whitespace-only text is dropped, so serialization details
// such as `<br>` against `<br />` or entity spelling do not show up.
func normalize(root *html.Node) []string {
	var lines []string
	var walk func(n *html.Node, depth int)
	walk = func(n *html.Node, depth int) {
		indent := strings.Repeat("  ", depth)
		switch n.Type {
		case html.ElementNode:
			lines = append(lines, indent+openTag(n))
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				walk(child, depth+1)
			}
			lines = append(lines, indent+"</"+n.Data+">")
		case html.TextNode:
			if text := strings.Join(strings.Fields(n.Data), " "); text != "" {
				lines = append(lines, indent+text)
			}
		case html.CommentNode:
			lines = append(lines, indent+"<!--"+n.Data+"-->")
		default:
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				walk(child, depth)
			}
		}
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		walk(child, 0)
	}
	return lines
}

func openTag(n *html.Node) string {
	attrs := make([]string, 0, len(n.Attr))
	for _, attr := range n.Attr {
		attrs = append(attrs, fmt.Sprintf("%s=%q", attr.Key, attr.Val))
	}
	sort.Strings(attrs)

	if len(attrs) == 0 {
		return "<" + n.Data + ">"
	}
	return "<" + n.Data + " " + strings.Join(attrs, " ") + ">"
}

// count returns how many nodes under root match each of Selectors.
func count(root *html.Node) (map[string]int, error) {
	counts := make(map[string]int, len(Selectors))
	for _, selector := range Selectors {
		compiled, err := cascadia.Compile(selector)
		if err != nil {
			return nil, fmt.Errorf("compile selector %q: %w", selector, err)
		}
		counts[selector] = len(compiled.MatchAll(root))
	}
	return counts, nil
}
