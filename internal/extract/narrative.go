package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// NormalizeNarrative prepares a raw narrative for extraction. FNOL text
// arrives from web forms and forwarded emails, so it may carry HTML
// markup; parsing it and keeping only visible text makes the keyword and
// cost heuristics see the same thing a human reads. Plain text passes
// through with whitespace collapsed.
func NormalizeNarrative(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return strings.Join(strings.Fields(raw), " ")
	}
	return extractVisibleText(doc)
}

// extractVisibleText collects text nodes from HTML, skipping scripts and
// styles
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(strings.Join(strings.Fields(text), " "))
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}
