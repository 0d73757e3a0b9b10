package parser

import (
	"fmt"
	"io"

	"github.com/dgallion1/docdeck/internal/markup"
	"github.com/dgallion1/docdeck/internal/outline"
	"golang.org/x/net/html"
)

// HTMLParser handles already-rendered HTML, typically Sphinx output.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*Source, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	src := &Source{
		Title:    trimExt(filename, ".html", ".htm"),
		Elements: outline.Elements(doc),
	}

	// Extract title from <title> tag if present.
	if t := markup.FindTag(doc, "title"); t != nil {
		if title := markup.TextContent(t); title != "" {
			src.Title = title
		}
	}

	return src, nil
}
