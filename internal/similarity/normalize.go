package similarity

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML reduces submitted content to its visible text. Claims pasted
// from web pages arrive with markup that would pollute token sets and
// defeat duplicate detection against plain-text submissions of the same
// assertion. Plain text passes through trimmed.
func StripHTML(content string) string {
	if !strings.Contains(content, "<") {
		return strings.TrimSpace(content)
	}

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return strings.TrimSpace(content)
	}

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
				buf.WriteString(text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return buf.String()
}
