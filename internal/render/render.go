// Package render maps slides and items to markup. Output shapes are fixed:
//
//	title               <section><h1>T</h1></section>
//	title-and-content   <section><h1>T</h1>ITEMS</section>
//	figure-and-content  <section><table><tr><td style="width: 50%">FIG</td><td>ITEMS</td></tr></table></section>
//	content             <section>ITEMS</section>
//
// Opaque HTML and Figure nodes are moved into the result, not copied.
package render

import (
	"github.com/dgallion1/docdeck/internal/deck"
	"github.com/dgallion1/docdeck/internal/markup"
	"golang.org/x/net/html"
)

// FigureColumnStyle is the inline style of the left (figure) column.
const FigureColumnStyle = "width: 50%"

// Node renders a deck.Item or a deck.Slide.
func Node(v any) *html.Node {
	switch v := v.(type) {
	case deck.Item:
		return Item(v)
	case deck.Slide:
		return Slide(v)
	default:
		panic(deck.Unreachable(v))
	}
}

// Item renders a single item. Text becomes a paragraph; HTML and Figure
// return their node, detached from any previous parent.
func Item(item deck.Item) *html.Node {
	switch it := item.(type) {
	case deck.Text:
		return markup.Append(markup.Element("p"), markup.Text(it.Content))
	case deck.HTML:
		markup.Detach(it.Node)
		return it.Node
	case deck.Figure:
		markup.Detach(it.Node)
		return it.Node
	default:
		panic(deck.Unreachable(item))
	}
}

// Slide renders s into a single section node.
func Slide(s deck.Slide) *html.Node {
	section := markup.Element("section")

	switch s.Kind {
	case deck.KindTitle:
		// Title slides carry at most one item; anything past it is dropped.
		if len(s.Items) > 0 {
			markup.Append(section, heading(s.Items[0]))
		}
	case deck.KindTitleAndContent:
		if len(s.Items) > 0 {
			markup.Append(section, heading(s.Items[0]))
			appendItems(section, s.Items[1:])
		}
	case deck.KindFigureAndContent:
		left := markup.Element("td", "style", FigureColumnStyle)
		right := markup.Element("td")
		if len(s.Items) > 0 {
			markup.Append(left, Item(s.Items[0]))
			appendItems(right, s.Items[1:])
		}
		markup.Append(section,
			markup.Append(markup.Element("table"),
				markup.Append(markup.Element("tr"), left, right)))
	case deck.KindContent:
		appendItems(section, s.Items)
	default:
		panic(deck.Unreachable(s.Kind))
	}

	return section
}

// heading renders an anchor item as an h1. Text is placed directly; any
// other item is nested inside.
func heading(item deck.Item) *html.Node {
	h1 := markup.Element("h1")
	switch it := item.(type) {
	case deck.Text:
		return markup.Append(h1, markup.Text(it.Content))
	case deck.HTML, deck.Figure:
		return markup.Append(h1, Item(it))
	default:
		panic(deck.Unreachable(item))
	}
}

func appendItems(parent *html.Node, items []deck.Item) {
	for _, it := range items {
		markup.Append(parent, Item(it))
	}
}

// Clone returns a copy of s whose opaque nodes are deep copies, so that
// rendering the copy leaves s's own handles untouched.
func Clone(s deck.Slide) deck.Slide {
	out := deck.Slide{Kind: s.Kind, Title: s.Title}
	if s.Items == nil {
		return out
	}
	out.Items = make([]deck.Item, len(s.Items))
	for i, item := range s.Items {
		switch it := item.(type) {
		case deck.Text:
			out.Items[i] = it
		case deck.HTML:
			out.Items[i] = deck.HTML{Node: markup.Clone(it.Node)}
		case deck.Figure:
			out.Items[i] = deck.Figure{Node: markup.Clone(it.Node)}
		default:
			panic(deck.Unreachable(item))
		}
	}
	return out
}

// String renders s and serializes it.
func String(s deck.Slide) string {
	return markup.String(Slide(Clone(s)))
}
