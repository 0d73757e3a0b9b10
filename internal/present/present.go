// Package present owns the presentation state: the slide sequence and the
// container its rendering lives in. It assembles the container and runs
// the overflow feedback loop for each transition event the host reports.
package present

import (
	"fmt"

	"github.com/dgallion1/docdeck/internal/deck"
	"github.com/dgallion1/docdeck/internal/markup"
	"github.com/dgallion1/docdeck/internal/overflow"
	"github.com/dgallion1/docdeck/internal/render"
	"golang.org/x/net/html"
)

// Assemble replaces every child of container with the rendering of slides,
// in order. Slides are rendered from deep copies, so calling Assemble again
// with the same slides yields an identical subtree. Handles to the old
// children are stale afterwards.
func Assemble(slides []deck.Slide, container *html.Node) {
	markup.RemoveChildren(container)
	for _, s := range slides {
		container.AppendChild(render.Slide(render.Clone(s)))
	}
}

// Navigator is the host's navigation engine.
type Navigator interface {
	// Slide re-displays the given logical position.
	Slide(indexH, indexV, indexF int)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(indexH, indexV, indexF int)

func (f NavigatorFunc) Slide(h, v, fr int) { f(h, v, fr) }

// TransitionEvent is what the host reports once a slide transition ends.
type TransitionEvent struct {
	IndexH         int     `json:"indexh"`
	IndexV         int     `json:"indexv"`
	IndexF         int     `json:"indexf"`
	RenderedHeight float64 `json:"rendered_height"`
	ViewportHeight float64 `json:"viewport_height"`
}

// Overflows reports whether the current slide is taller than the viewport.
func (e TransitionEvent) Overflows() bool {
	return e.RenderedHeight > e.ViewportHeight
}

// Outcome describes what Handle did.
type Outcome struct {
	Split  bool
	Kind   deck.Kind // kind of the slide that was resolved
	Slides int       // slide count after handling
}

// State is the explicit presentation value threaded through the feedback
// loop. It is not safe for concurrent use; the host must finish one event
// before handing over the next.
type State struct {
	Deck      *deck.Presentation
	Container *html.Node
}

// New builds a State around slides with a fresh `<div class="slides">`
// container and assembles it.
func New(slides []deck.Slide) *State {
	s := &State{
		Deck:      &deck.Presentation{Slides: slides},
		Container: markup.Element("div", "class", "slides"),
	}
	Assemble(s.Deck.Slides, s.Container)
	return s
}

// Handle processes one transition event. When the slide at IndexH
// overflows and the resolver splits it, the two halves are spliced in at
// IndexH, the container is reassembled, and nav is asked to re-display the
// same logical position. nav may be nil.
func (s *State) Handle(ev TransitionEvent, nav Navigator) (Outcome, error) {
	out := Outcome{Slides: s.Deck.Len()}
	if !ev.Overflows() {
		return out, nil
	}

	slide, err := s.Deck.At(ev.IndexH)
	if err != nil {
		return out, fmt.Errorf("handle transition: %w", err)
	}
	out.Kind = slide.Kind

	parts := overflow.Resolve(slide)
	if len(parts) == 1 {
		return out, nil
	}
	if err := s.Deck.Splice(ev.IndexH, parts); err != nil {
		return out, fmt.Errorf("handle transition: %w", err)
	}
	Assemble(s.Deck.Slides, s.Container)

	if nav != nil {
		nav.Slide(ev.IndexH, ev.IndexV, ev.IndexF)
	}
	out.Split = true
	out.Slides = s.Deck.Len()
	return out, nil
}

// HTML serializes the container's children.
func (s *State) HTML() string {
	return markup.ChildrenString(s.Container)
}
