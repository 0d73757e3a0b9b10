package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/docdeck/internal/markup"
)

func tags(src *Source) []string {
	out := make([]string, len(src.Elements))
	for i, el := range src.Elements {
		out[i] = el.Data
	}
	return out
}

func TestMarkdownParser_Blocks(t *testing.T) {
	input := `# Title

Intro text. Second sentence.

## Section A

- one
- two

| a | b |
|---|---|
| 1 | 2 |
`
	p := &MarkdownParser{FigureClass: "image-reference"}
	src, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if src.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", src.Title)
	}

	got := strings.Join(tags(src), ",")
	if want := "h1,p,h2,ul,table"; got != want {
		t.Fatalf("expected elements %q, got %q", want, got)
	}
	if txt := markup.TextContent(src.Elements[1]); txt != "Intro text. Second sentence." {
		t.Errorf("unexpected paragraph text %q", txt)
	}
}

func TestMarkdownParser_StandaloneImageIsFigure(t *testing.T) {
	input := "# Wiring\n\n![diagram](wiring.png)\n\nSee the ![inline](x.png) image.\n"
	p := &MarkdownParser{FigureClass: "image-reference"}
	src, err := p.Parse(strings.NewReader(input), "wiring.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(src.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(src.Elements))
	}
	if !markup.HasClass(src.Elements[1], "image-reference") {
		t.Errorf("standalone image paragraph should carry the figure class: %s", markup.String(src.Elements[1]))
	}
	if markup.HasClass(src.Elements[2], "image-reference") {
		t.Error("inline image paragraph must stay a paragraph")
	}
}

func TestMarkdownParser_NoFigureClass(t *testing.T) {
	p := &MarkdownParser{}
	src, err := p.Parse(strings.NewReader("![a](a.png)\n"), "a.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(src.Elements) != 1 || markup.Attr(src.Elements[0], "class") != "" {
		t.Errorf("expected plain paragraph, got %v", tags(src))
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	src, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(src.Elements) != 0 {
		t.Errorf("expected 0 elements for empty input, got %d", len(src.Elements))
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"plain.md", "plain"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		src, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if src.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, src.Title)
		}
	}
}

func TestMarkdownParser_RawHTMLOmitted(t *testing.T) {
	input := "Intro.\n\n<script>alert(1)</script>\n\nText <span onclick=\"x()\">inline</span> here.\n"
	p := &MarkdownParser{}
	src, err := p.Parse(strings.NewReader(input), "x.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, el := range src.Elements {
		if markup.FindTag(el, "script") != nil || markup.FindTag(el, "span") != nil {
			t.Errorf("raw HTML survived rendering: %s", markup.String(el))
		}
	}
}
