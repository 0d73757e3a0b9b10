// Package overflow splits a slide that the host judged too tall for the
// viewport. The decision uses item counts only; geometry is the caller's
// concern.
package overflow

import (
	"github.com/dgallion1/docdeck/internal/deck"
)

// Resolve returns either []deck.Slide{s} or two slides of the same kind and
// title that together hold s's content. For anchored kinds the anchor is
// repeated at the head of both halves and the tail is split with Halve.
// Content slides are halved directly. Title slides never split.
//
// Resolve does not recurse: a half that is still too tall is resolved again
// when the host next measures it.
func Resolve(s deck.Slide) []deck.Slide {
	switch s.Kind {
	case deck.KindTitle:
		return []deck.Slide{s}
	case deck.KindTitleAndContent, deck.KindFigureAndContent:
		if len(s.Items) < 3 {
			return []deck.Slide{s}
		}
		anchor := s.Items[0]
		a, b := Halve(s.Items[1:])
		return []deck.Slide{
			{Kind: s.Kind, Title: s.Title, Items: prepend(anchor, a)},
			{Kind: s.Kind, Title: s.Title, Items: prepend(anchor, b)},
		}
	case deck.KindContent:
		if len(s.Items) < 2 {
			return []deck.Slide{s}
		}
		a, b := Halve(s.Items)
		return []deck.Slide{
			{Kind: s.Kind, Title: s.Title, Items: copyItems(a)},
			{Kind: s.Kind, Title: s.Title, Items: copyItems(b)},
		}
	default:
		panic(deck.Unreachable(s.Kind))
	}
}

// Halve splits items at ceil(len/2). The first part is never shorter than
// the second.
func Halve(items []deck.Item) (first, second []deck.Item) {
	k := (len(items) + 1) / 2
	return items[:k], items[k:]
}

func prepend(anchor deck.Item, tail []deck.Item) []deck.Item {
	out := make([]deck.Item, 0, len(tail)+1)
	out = append(out, anchor)
	return append(out, tail...)
}

func copyItems(items []deck.Item) []deck.Item {
	out := make([]deck.Item, len(items))
	copy(out, items)
	return out
}
