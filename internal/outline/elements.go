package outline

import (
	"github.com/dgallion1/docdeck/internal/markup"
	"golang.org/x/net/html"
)

// Elements collects the source elements of a parsed document in reading
// order. Each section container (class "section", or a <section> tag)
// contributes its element children up to its first nested section; nested
// sections contribute their own children when the walk reaches them. A
// document without sections contributes the children of <body>.
func Elements(doc *html.Node) []*html.Node {
	var sections []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if isSection(n) {
			sections = append(sections, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var out []*html.Node
	if len(sections) == 0 {
		root := markup.FindTag(doc, "body")
		if root == nil {
			root = doc
		}
		for _, c := range markup.ElementChildren(root) {
			if !skip(c) {
				out = append(out, c)
			}
		}
		return out
	}

	for _, s := range sections {
		for _, c := range markup.ElementChildren(s) {
			if isSection(c) {
				break
			}
			if !skip(c) {
				out = append(out, c)
			}
		}
	}
	return out
}

func isSection(n *html.Node) bool {
	return markup.IsElement(n, "section") || markup.HasClass(n, "section")
}

func skip(n *html.Node) bool {
	switch n.Data {
	case "script", "style", "noscript", "template":
		return true
	}
	return false
}
