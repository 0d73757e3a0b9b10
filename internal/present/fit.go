package present

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docdeck/internal/deck"
	"github.com/dgallion1/docdeck/internal/markup"
	"golang.org/x/net/html"
)

// Measurer estimates the rendered height of a slide. It stands in for the
// browser when the feedback loop runs without a display surface.
type Measurer interface {
	Measure(s deck.Slide) float64
}

// LineMeasurer estimates height by wrapping text into fixed-width lines.
type LineMeasurer struct {
	LineHeight   float64 // pixels per line
	CharsPerLine int     // full-width column
	HeadingLines int     // lines taken by an h1
	FigureLines  int     // lines taken by a figure
	Padding      float64 // fixed vertical padding per slide
}

// DefaultLineMeasurer approximates the stylesheet the page ships with
// (22px paragraphs, 42px headings) on a 1280x720 viewport.
func DefaultLineMeasurer() LineMeasurer {
	return LineMeasurer{
		LineHeight:   33,
		CharsPerLine: 95,
		HeadingLines: 2,
		FigureLines:  10,
		Padding:      40,
	}
}

// Measure implements Measurer.
func (m LineMeasurer) Measure(s deck.Slide) float64 {
	lines := 0
	switch s.Kind {
	case deck.KindTitle:
		if len(s.Items) > 0 {
			lines = m.HeadingLines
		}
	case deck.KindTitleAndContent:
		if len(s.Items) > 0 {
			lines = m.HeadingLines + m.itemsLines(s.Items[1:], m.CharsPerLine)
		}
	case deck.KindFigureAndContent:
		right := 0
		if len(s.Items) > 1 {
			right = m.itemsLines(s.Items[1:], m.CharsPerLine/2)
		}
		lines = max(m.FigureLines, right)
	case deck.KindContent:
		lines = m.itemsLines(s.Items, m.CharsPerLine)
	default:
		panic(deck.Unreachable(s.Kind))
	}
	return m.Padding + float64(lines)*m.LineHeight
}

func (m LineMeasurer) itemsLines(items []deck.Item, width int) int {
	total := 0
	for _, it := range items {
		total += m.itemLines(it, width)
	}
	return total
}

func (m LineMeasurer) itemLines(item deck.Item, width int) int {
	switch it := item.(type) {
	case deck.Text:
		return wrapLines(utf8.RuneCountInString(it.Content), width)
	case deck.HTML:
		return max(blockLines(it.Node), wrapLines(utf8.RuneCountInString(markup.TextContent(it.Node)), width))
	case deck.Figure:
		return m.FigureLines
	default:
		panic(deck.Unreachable(item))
	}
}

func wrapLines(chars, width int) int {
	if width <= 0 {
		width = 1
	}
	return max(1, int(math.Ceil(float64(chars)/float64(width))))
}

// blockLines counts line-producing descendants (list items, table rows,
// preformatted lines).
func blockLines(n *html.Node) int {
	count := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "li", "tr", "br", "p", "dt", "dd":
				count++
			case "pre":
				count += len(strings.Split(markup.TextContent(n), "\n"))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return count
}

// Fit runs the feedback loop without a browser: every slide is measured
// with m and split while it overflows viewport, revisiting the same index
// after each split. It stops after maxSplits splits (0 means no limit) and
// returns the number of splits performed.
func (s *State) Fit(m Measurer, viewport float64, maxSplits int) (int, error) {
	splits := 0
	for i := 0; i < s.Deck.Len(); i++ {
		for {
			if maxSplits > 0 && splits >= maxSplits {
				return splits, nil
			}
			ev := TransitionEvent{
				IndexH:         i,
				RenderedHeight: m.Measure(s.Deck.Slides[i]),
				ViewportHeight: viewport,
			}
			out, err := s.Handle(ev, nil)
			if err != nil {
				return splits, err
			}
			if !out.Split {
				break
			}
			splits++
		}
	}
	return splits, nil
}
