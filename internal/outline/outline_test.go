package outline

import (
	"strings"
	"testing"

	"github.com/dgallion1/docdeck/internal/deck"
	"github.com/dgallion1/docdeck/internal/markup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func fragment(t *testing.T, s string) []*html.Node {
	t.Helper()
	nodes, err := markup.ParseFragment(s)
	require.NoError(t, err)
	var out []*html.Node
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			out = append(out, n)
		}
	}
	return out
}

func kinds(slides []deck.Slide) []deck.Kind {
	out := make([]deck.Kind, len(slides))
	for i, s := range slides {
		out[i] = s.Kind
	}
	return out
}

func TestClassify_HeadingParagraphs(t *testing.T) {
	els := fragment(t, `<h1>Robots<a class="headerlink" href="#robots">¶</a></h1>
<p>Robots move. They also
sense.</p>
<p>Third sentence.</p>`)

	slides := Classify(els, DefaultOptions())
	require.Len(t, slides, 2)

	assert.Equal(t, deck.Slide{Kind: deck.KindTitle, Title: "Robots", Items: []deck.Item{}}, slides[0])
	assert.Equal(t, deck.KindContent, slides[1].Kind)
	assert.Equal(t, "Robots", slides[1].Title)
	assert.Equal(t, []deck.Item{
		deck.Text{Content: "Robots move."},
		deck.Text{Content: "They also sense."},
		deck.Text{Content: "Third sentence."},
	}, slides[1].Items)
}

func TestClassify_FigureCollectsFollowingElements(t *testing.T) {
	els := fragment(t, `<h2>Wiring</h2>
<a class="reference image-reference" href="wiring.png"><img src="wiring.png"></a>
<p>Connect power. Connect CAN.</p>
<ul><li>red</li></ul>
<h2>Next</h2>
<p>After.</p>`)

	slides := Classify(els, DefaultOptions())
	assert.Equal(t, []deck.Kind{deck.KindTitle, deck.KindFigureAndContent, deck.KindTitle, deck.KindContent}, kinds(slides))

	fig := slides[1]
	assert.Equal(t, "Wiring", fig.Title)
	require.Len(t, fig.Items, 4)
	f, ok := fig.Items[0].(deck.Figure)
	require.True(t, ok)
	assert.Equal(t, "a", f.Node.Data)
	assert.Nil(t, f.Node.Parent, "figure node should be detached from the source tree")
	assert.Equal(t, deck.Text{Content: "Connect power."}, fig.Items[1])
	assert.Equal(t, deck.Text{Content: "Connect CAN."}, fig.Items[2])
	h, ok := fig.Items[3].(deck.HTML)
	require.True(t, ok)
	assert.Equal(t, "ul", h.Node.Data)

	assert.Equal(t, "Next", slides[3].Title)
}

func TestClassify_ContentBeforeAnyHeading(t *testing.T) {
	els := fragment(t, `<p>Intro.</p><table><tr><td>x</td></tr></table>`)
	slides := Classify(els, DefaultOptions())
	require.Len(t, slides, 1)
	assert.Equal(t, deck.KindContent, slides[0].Kind)
	assert.Equal(t, "", slides[0].Title)
	assert.Len(t, slides[0].Items, 2)
}

func TestClassify_ConsecutiveHeadingsKeepDegenerateSlides(t *testing.T) {
	els := fragment(t, `<h1>A</h1><h2>B</h2><p>b.</p>`)
	slides := Classify(els, DefaultOptions())
	assert.Equal(t, []deck.Kind{deck.KindTitle, deck.KindTitle, deck.KindContent}, kinds(slides))
	assert.Equal(t, "B", slides[2].Title)
}

func TestClassify_ConsecutiveFiguresOpenSeparateSlides(t *testing.T) {
	els := fragment(t, `<div class="image-reference">1</div><div class="image-reference">2</div><p>two.</p>`)
	slides := Classify(els, DefaultOptions())
	assert.Equal(t, []deck.Kind{deck.KindFigureAndContent, deck.KindFigureAndContent}, kinds(slides))
	assert.Len(t, slides[0].Items, 1)
	assert.Len(t, slides[1].Items, 2)
}

func TestClassify_EmptyParagraphAddsNothing(t *testing.T) {
	els := fragment(t, `<h1>T</h1><p>   </p>`)
	slides := Classify(els, DefaultOptions())
	require.Len(t, slides, 2)
	assert.Empty(t, slides[1].Items)
}

func TestClassify_BodyRunSharesOneContentSlide(t *testing.T) {
	els := fragment(t, `<h1>Intro</h1>
<p>One. Two.</p>
<ul><li>x</li></ul>
<p>Three.</p>
<a class="image-reference" href="f.png"><img src="f.png"></a>
<p>Four. Five. Six.</p>`)

	slides := Classify(els, DefaultOptions())
	assert.Equal(t, []deck.Kind{deck.KindTitle, deck.KindContent, deck.KindFigureAndContent}, kinds(slides))
	assert.Len(t, slides[0].Items, 0)
	assert.Len(t, slides[1].Items, 4)
	assert.Len(t, slides[2].Items, 4)
}

func TestClassify_HeadingItemOption(t *testing.T) {
	opts := DefaultOptions()
	opts.HeadingItem = true
	els := fragment(t, `<h1>Intro <a class="headerlink">#</a></h1>`)
	slides := Classify(els, opts)
	require.Len(t, slides, 1)
	assert.Equal(t, []deck.Item{deck.Text{Content: "Intro"}}, slides[0].Items)
}

func TestClassify_CustomFigureClass(t *testing.T) {
	opts := DefaultOptions()
	opts.FigureClasses = []string{"figure"}
	els := fragment(t, `<div class="figure"><img src="x.png"></div><div class="image-reference"></div>`)
	slides := Classify(els, opts)
	require.Len(t, slides, 1)
	assert.Equal(t, deck.KindFigureAndContent, slides[0].Kind)
	assert.Len(t, slides[0].Items, 2)
}

func TestElements_SphinxSections(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><body>
<div class="document">
 <div class="section" id="a">
  <h1>A</h1>
  <p>a1.</p>
  <div class="section" id="b">
   <h2>B</h2>
   <p>b1.</p>
  </div>
  <p>never collected</p>
 </div>
</div>
<script>var x;</script>
</body></html>`))
	require.NoError(t, err)

	var tags []string
	for _, el := range Elements(doc) {
		tags = append(tags, el.Data+":"+markup.TextContent(el))
	}
	assert.Equal(t, []string{"h1:A", "p:a1.", "h2:B", "p:b1."}, tags)
}

func TestElements_HTML5SectionTags(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<body><section><h1>A</h1><p>x</p></section></body>`))
	require.NoError(t, err)
	assert.Len(t, Elements(doc), 2)
}

func TestElements_NoSectionsUsesBody(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<body><h1>A</h1><p>x</p><style>p{}</style></body>`))
	require.NoError(t, err)
	els := Elements(doc)
	require.Len(t, els, 2)
	assert.Equal(t, "h1", els[0].Data)
}
