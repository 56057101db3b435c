package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// tableContext gathers narrative context from the markup around a
// table: the nearest preceding heading or substantial paragraph, the
// table's caption, and a trailing note that mentions the table.
// Fragments are joined with " | "; no fragments yields the sentinel.
func (e *Extractor) tableContext(s *goquery.Selection) string {
	var parts []string

	if len(s.Nodes) > 0 {
		if leading := e.precedingContext(s.Nodes[0]); leading != "" {
			parts = append(parts, leading)
		}
	}

	if caption := normalizeText(s.Find("caption").First().Text()); caption != "" {
		parts = append(parts, "Caption: "+caption)
	}

	if len(s.Nodes) > 0 {
		if note := e.followingNote(s.Nodes[0]); note != "" {
			parts = append(parts, note)
		}
	}

	if len(parts) == 0 {
		return "No context found"
	}
	return strings.Join(parts, " | ")
}

// precedingContext walks backward from the table in document order,
// examining up to ContextDepth elements. The first heading wins; a
// paragraph wins only when its text clears MinContextChars.
func (e *Extractor) precedingContext(table *html.Node) string {
	examined := 0
	for cur := prevNode(table); cur != nil && examined < e.tuning.ContextDepth; cur = prevNode(cur) {
		if cur.Type != html.ElementNode {
			continue
		}
		examined++

		switch cur.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			return "Section: " + normalizeText(nodeText(cur))
		case "p":
			if text := normalizeText(nodeText(cur)); len(text) > e.tuning.MinContextChars {
				return "Context: " + text
			}
		}
	}
	return ""
}

// followingNote inspects the first paragraph after the table start in
// document order. It is kept only when long enough and when it talks
// about the table.
func (e *Extractor) followingNote(table *html.Node) string {
	for cur := nextNode(table); cur != nil; cur = nextNode(cur) {
		if cur.Type != html.ElementNode || cur.Data != "p" {
			continue
		}
		text := normalizeText(nodeText(cur))
		if len(text) > e.tuning.MinContextChars && strings.Contains(strings.ToLower(text), "table") {
			return "Note: " + text
		}
		return ""
	}
	return ""
}

// prevNode returns the node immediately before n in document order:
// the deepest last descendant of the previous sibling, else the parent.
func prevNode(n *html.Node) *html.Node {
	if n.PrevSibling == nil {
		return n.Parent
	}
	cur := n.PrevSibling
	for cur.LastChild != nil {
		cur = cur.LastChild
	}
	return cur
}

// nextNode returns the node immediately after n in document order.
func nextNode(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.NextSibling != nil {
			return cur.NextSibling
		}
	}
	return nil
}

// nodeText concatenates the text content of a node's subtree.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			sb.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
