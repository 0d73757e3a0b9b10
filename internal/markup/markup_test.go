package markup

import (
	"testing"
)

func TestElementAndString(t *testing.T) {
	td := Element("td", "style", "width: 50%")
	Append(td, Text("a < b"))
	if got, want := String(td), `<td style="width: 50%">a &lt; b</td>`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestAppendMovesNode(t *testing.T) {
	a := Element("div")
	b := Element("div")
	q := Element("q")
	Append(a, q)
	Append(b, q)

	if a.FirstChild != nil {
		t.Error("expected q to be removed from its first parent")
	}
	if b.FirstChild != q {
		t.Error("expected q under second parent")
	}
}

func TestCloneIsDeepAndDetached(t *testing.T) {
	parent := Element("div")
	img := Element("img", "src", "robot.png")
	Append(parent, img)

	c := Clone(img)
	if c.Parent != nil {
		t.Fatal("clone should be detached")
	}
	c.Attr[0].Val = "other.png"
	if Attr(img, "src") != "robot.png" {
		t.Error("mutating the clone changed the original")
	}
	if parent.FirstChild != img {
		t.Error("original should stay attached")
	}
}

func TestHasClass(t *testing.T) {
	n := Element("a", "class", "reference  image-reference")
	if !HasClass(n, "image-reference") {
		t.Error("expected image-reference class")
	}
	if HasClass(n, "image") {
		t.Error("partial class names must not match")
	}
	if !HasAnyClass(n, []string{"figure", "reference"}) {
		t.Error("expected HasAnyClass match")
	}
	if HasClass(Text("image-reference"), "image-reference") {
		t.Error("text nodes carry no classes")
	}
}

func TestHeadingLevel(t *testing.T) {
	tests := map[string]int{"h1": 1, "h3": 3, "h6": 6, "h7": 0, "hr": 0, "p": 0, "header": 0}
	for tag, want := range tests {
		if got := HeadingLevel(Element(tag)); got != want {
			t.Errorf("HeadingLevel(%s) = %d, want %d", tag, got, want)
		}
	}
}

func TestParseFragmentAndTextContent(t *testing.T) {
	nodes, err := ParseFragment(`<h2>Drive <a class="headerlink">¶</a></h2><p> one
two </p>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if nodes[0].Parent != nil {
		t.Error("fragment nodes should be detached")
	}
	if got := TextContent(nodes[1]); got != "one\ntwo" {
		t.Errorf("TextContent = %q", got)
	}
	if FindTag(nodes[0], "a") == nil {
		t.Error("expected to find anchor link")
	}
}
