package present

import (
	"github.com/dgallion1/docdeck/internal/deck"
	"github.com/dgallion1/docdeck/internal/markup"
)

// SlideInfo is a serializable view of a slide.
type SlideInfo struct {
	Kind  string     `json:"kind" yaml:"kind"`
	Title string     `json:"title" yaml:"title,omitempty"`
	Items []ItemInfo `json:"items" yaml:"items,omitempty"`
}

// ItemInfo is a serializable view of an item. Text carries the prose for
// text items; HTML carries the serialized markup for html and figure items.
type ItemInfo struct {
	Type string `json:"type" yaml:"type"`
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
	HTML string `json:"html,omitempty" yaml:"html,omitempty"`
}

// Describe returns the serializable outline of slides.
func Describe(slides []deck.Slide) []SlideInfo {
	out := make([]SlideInfo, 0, len(slides))
	for _, s := range slides {
		info := SlideInfo{Kind: s.Kind.String(), Title: s.Title, Items: make([]ItemInfo, 0, len(s.Items))}
		for _, item := range s.Items {
			info.Items = append(info.Items, describeItem(item))
		}
		out = append(out, info)
	}
	return out
}

func describeItem(item deck.Item) ItemInfo {
	switch it := item.(type) {
	case deck.Text:
		return ItemInfo{Type: "text", Text: it.Content}
	case deck.HTML:
		return ItemInfo{Type: "html", HTML: markup.String(it.Node)}
	case deck.Figure:
		return ItemInfo{Type: "figure", HTML: markup.String(it.Node)}
	default:
		panic(deck.Unreachable(item))
	}
}
