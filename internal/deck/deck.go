package deck

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"
)

// Item is one entry on a slide. The set of variants is closed: Text, HTML
// and Figure are the only implementations.
type Item interface {
	isItem()
}

// Text is a single line or bullet of prose.
type Text struct {
	Content string
}

// HTML is a non-text block (table, list, code) carried verbatim.
type HTML struct {
	Node *html.Node
}

// Figure is a media block. It anchors the two-column figure layout.
type Figure struct {
	Node *html.Node
}

func (Text) isItem()   {}
func (HTML) isItem()   {}
func (Figure) isItem() {}

// Kind tags the layout variant of a slide.
type Kind int

const (
	KindTitle Kind = iota
	KindTitleAndContent
	KindFigureAndContent
	KindContent
)

var kindNames = [...]string{
	KindTitle:            "title",
	KindTitleAndContent:  "title-and-content",
	KindFigureAndContent: "figure-and-content",
	KindContent:          "content",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown slide kind %q", s)
}

// Anchored reports whether items[0] of a slide of this kind is pinned
// across overflow splits.
func (k Kind) Anchored() bool {
	switch k {
	case KindTitleAndContent, KindFigureAndContent:
		return true
	case KindTitle, KindContent:
		return false
	default:
		panic(Unreachable(k))
	}
}

// Slide is one page of the deck. Items are in presentation order.
type Slide struct {
	Kind  Kind
	Title string // nearest preceding heading text, may be empty
	Items []Item
}

// Anchor returns items[0] for anchored kinds.
func (s Slide) Anchor() (Item, bool) {
	if !s.Kind.Anchored() || len(s.Items) == 0 {
		return nil, false
	}
	return s.Items[0], true
}

// Tail returns the items subject to partitioning: everything after the
// anchor for anchored kinds, all items otherwise.
func (s Slide) Tail() []Item {
	if s.Kind.Anchored() && len(s.Items) > 0 {
		return s.Items[1:]
	}
	return s.Items
}

// Unreachable formats the panic value for a variant outside the closed set.
func Unreachable(v any) string {
	return fmt.Sprintf("deck: unreachable variant %T(%v)", v, v)
}

// ErrIndexOutOfRange is returned when a slide index does not address a
// slide in the presentation.
var ErrIndexOutOfRange = errors.New("slide index out of range")

// Presentation is the ordered slide sequence. It is the only mutable state
// shared across the feedback loop.
type Presentation struct {
	Slides []Slide
}

// Len returns the number of slides.
func (p *Presentation) Len() int {
	return len(p.Slides)
}

// At returns slide i.
func (p *Presentation) At(i int) (Slide, error) {
	if i < 0 || i >= len(p.Slides) {
		return Slide{}, fmt.Errorf("slide %d of %d: %w", i, len(p.Slides), ErrIndexOutOfRange)
	}
	return p.Slides[i], nil
}

// Splice replaces slide i with parts, keeping every other slide in place.
func (p *Presentation) Splice(i int, parts []Slide) error {
	if i < 0 || i >= len(p.Slides) {
		return fmt.Errorf("splice slide %d of %d: %w", i, len(p.Slides), ErrIndexOutOfRange)
	}
	out := make([]Slide, 0, len(p.Slides)-1+len(parts))
	out = append(out, p.Slides[:i]...)
	out = append(out, parts...)
	out = append(out, p.Slides[i+1:]...)
	p.Slides = out
	return nil
}
