package pipeline

import (
	"strings"

	"golang.org/x/net/html"
)

// normalizeDescription flattens any HTML markup in an upstream description
// to plain text and collapses whitespace. Descriptions without markup pass
// through with only whitespace normalization.
func normalizeDescription(raw string) string {
	if !strings.Contains(raw, "<") {
		return strings.Join(strings.Fields(raw), " ")
	}

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return strings.Join(strings.Fields(raw), " ")
	}

	text := extractText(doc)
	return strings.Join(strings.Fields(text), " ")
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(extractText(c))
	}
	return sb.String()
}
