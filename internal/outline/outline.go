// Package outline groups a flat sequence of rendered document elements into
// typed slides.
package outline

import (
	"github.com/dgallion1/docdeck/internal/deck"
	"github.com/dgallion1/docdeck/internal/markup"
	"github.com/dgallion1/docdeck/internal/segment"
	"golang.org/x/net/html"
)

// Options controls which classes mark figures and decorative heading links.
type Options struct {
	FigureClasses     []string
	HeaderLinkClasses []string

	// HeadingItem puts the heading text on its title slide as the single
	// item, so the slide renders an h1. Off, title slides are empty
	// section breaks.
	HeadingItem bool
}

// DefaultOptions matches Sphinx-rendered documentation.
func DefaultOptions() Options {
	return Options{
		FigureClasses:     []string{"image-reference"},
		HeaderLinkClasses: []string{"headerlink"},
	}
}

// Classify makes a single left-to-right pass over elements. A heading opens
// a title slide and becomes the running title; a figure-class element opens
// a figure-and-content slide; anything else lands on the current
// figure-and-content slide or, failing that, on a content slide opened
// lazily. Paragraphs are segmented into one Text item per sentence; other
// elements become HTML items and are detached from their parent.
func Classify(elements []*html.Node, opts Options) []deck.Slide {
	var slides []deck.Slide
	title := ""

	for _, el := range elements {
		if markup.HeadingLevel(el) > 0 {
			title = headingText(el, opts.HeaderLinkClasses)
			items := []deck.Item{}
			if opts.HeadingItem && title != "" {
				items = append(items, deck.Text{Content: title})
			}
			slides = append(slides, deck.Slide{Kind: deck.KindTitle, Title: title, Items: items})
			continue
		}

		if markup.HasAnyClass(el, opts.FigureClasses) {
			markup.Detach(el)
			slides = append(slides, deck.Slide{
				Kind:  deck.KindFigureAndContent,
				Title: title,
				Items: []deck.Item{deck.Figure{Node: el}},
			})
			continue
		}

		if len(slides) == 0 || !acceptsBody(slides[len(slides)-1].Kind) {
			slides = append(slides, deck.Slide{Kind: deck.KindContent, Title: title, Items: []deck.Item{}})
		}
		cur := &slides[len(slides)-1]

		if markup.IsElement(el, "p") {
			for _, chunk := range segment.Segment(markup.TextContent(el)) {
				cur.Items = append(cur.Items, deck.Text{Content: chunk})
			}
			continue
		}

		markup.Detach(el)
		cur.Items = append(cur.Items, deck.HTML{Node: el})
	}

	return slides
}

// acceptsBody reports whether body elements append to a slide of kind k
// rather than opening a new content slide. A content slide stays open for
// the whole run of body elements; one slide per element was the older rule.
func acceptsBody(k deck.Kind) bool {
	switch k {
	case deck.KindFigureAndContent, deck.KindContent:
		return true
	case deck.KindTitle, deck.KindTitleAndContent:
		return false
	default:
		panic(deck.Unreachable(k))
	}
}

// headingText removes decorative anchor links from a heading and returns
// its normalized text.
func headingText(h *html.Node, linkClasses []string) string {
	var links []*html.Node
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if markup.HasAnyClass(c, linkClasses) {
			links = append(links, c)
		}
	}
	for _, l := range links {
		h.RemoveChild(l)
	}
	return segment.Normalize(markup.TextContent(h))
}
