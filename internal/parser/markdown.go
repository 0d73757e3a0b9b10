package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docdeck/internal/markup"
	"github.com/dgallion1/docdeck/internal/outline"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
)

// MarkdownParser renders Markdown with goldmark and reads the result as
// HTML. A paragraph holding nothing but an image is marked as a figure.
type MarkdownParser struct {
	FigureClass string
}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Source, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// Raw HTML in the source is omitted by goldmark's default renderer.
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	doc, err := html.Parse(&buf)
	if err != nil {
		return nil, fmt.Errorf("parse rendered markdown: %w", err)
	}

	elements := outline.Elements(doc)
	if p.FigureClass != "" {
		for _, el := range elements {
			if isImageParagraph(el) {
				el.Attr = append(el.Attr, html.Attribute{Key: "class", Val: p.FigureClass})
			}
		}
	}

	return &Source{
		Title:    trimExt(filename, ".md", ".markdown"),
		Elements: elements,
	}, nil
}

// isImageParagraph matches <p><img></p> and <p><a><img></a></p> with no
// surrounding text.
func isImageParagraph(n *html.Node) bool {
	if !markup.IsElement(n, "p") || markup.Attr(n, "class") != "" {
		return false
	}
	var elems []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			elems = append(elems, c)
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return false
			}
		}
	}
	if len(elems) != 1 {
		return false
	}
	el := elems[0]
	if markup.IsElement(el, "img") {
		return true
	}
	if markup.IsElement(el, "a") {
		inner := markup.ElementChildren(el)
		return len(inner) == 1 && markup.IsElement(inner[0], "img") && markup.TextContent(el) == ""
	}
	return false
}
