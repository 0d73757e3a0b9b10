package page

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/docdeck/internal/deck"
	"github.com/dgallion1/docdeck/internal/markup"
	"github.com/dgallion1/docdeck/internal/present"
	"golang.org/x/net/html"
)

func testState() *present.State {
	return present.New([]deck.Slide{
		{Kind: deck.KindTitle, Title: "Hi", Items: []deck.Item{deck.Text{Content: "Hi"}}},
	})
}

func TestWriteStandalone(t *testing.T) {
	st := testState()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, st.Container, Options{Title: "Deck"}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"), out)
	assert.Contains(t, out, "<title>Deck</title>")
	assert.Contains(t, out, `https://cdn.jsdelivr.net/npm/reveal.js@4.1.2/dist/reveal.css`)
	assert.Contains(t, out, `https://cdn.jsdelivr.net/npm/reveal.js@4.1.2/dist/reveal.min.js`)
	assert.Contains(t, out, `<div class="reveal"><div class="slides"><section><h1>Hi</h1></section></div></div>`)
	assert.NotContains(t, out, `data-transition-url="`)
	// Script bodies are raw text, not escaped.
	assert.Contains(t, out, `document.querySelector(".reveal")`)
}

func TestBuildTransitionURL(t *testing.T) {
	st := testState()
	doc := Build(st.Container, Options{Title: "Deck", RevealVersion: "5.0.0", TransitionURL: "/api/decks/X/transition"})

	reveal := markup.Find(doc, func(n *html.Node) bool { return markup.HasClass(n, "reveal") })
	require.NotNil(t, reveal)
	assert.Equal(t, "/api/decks/X/transition", markup.Attr(reveal, "data-transition-url"))
	assert.Contains(t, markup.String(doc), "reveal.js@5.0.0")
}

func TestBuildLeavesContainerInPlace(t *testing.T) {
	st := testState()
	before := st.HTML()
	Build(st.Container, Options{})

	assert.Nil(t, st.Container.Parent)
	assert.Equal(t, before, st.HTML())
}
