// Package page wraps an assembled slide container in a reveal.js document.
package page

import (
	"fmt"
	"io"

	"github.com/dgallion1/docdeck/internal/markup"
	"golang.org/x/net/html"
)

const cdn = "https://cdn.jsdelivr.net/npm/reveal.js@%s/dist/%s"

const style = `
h1, h2, h3, h4, h5, h6 {
	text-align: left;
	font-size: 42px;
}
p {
	font-size: 22px;
	text-align: left;
}
.break {
	display: block;
	margin: 0 0 1em;
}
`

// The overflow loop: after each transition the current slide's rendered
// height is posted back; a split answer replaces the slide markup and
// re-displays the same position.
const bootstrap = `
(function () {
	var root = document.querySelector(".reveal");
	var url = root.getAttribute("data-transition-url");
	Reveal.initialize({
		controls: true,
		progress: true,
		slideNumber: true,
		history: false,
		center: false,
		disableLayout: true,
		transition: "slide",
		backgroundTransition: "fade",
		display: "block"
	});
	if (!url) {
		return;
	}
	Reveal.on("slidetransitionend", function (event) {
		var body = {
			indexh: event.indexh,
			indexv: event.indexv || 0,
			indexf: event.indexf || 0,
			rendered_height: event.currentSlide.getBoundingClientRect().height,
			viewport_height: window.innerHeight
		};
		if (body.rendered_height <= body.viewport_height) {
			return;
		}
		fetch(url, {
			method: "POST",
			headers: {"Content-Type": "application/json"},
			body: JSON.stringify(body)
		}).then(function (resp) {
			return resp.ok ? resp.json() : null;
		}).then(function (out) {
			if (!out || !out.split) {
				return;
			}
			root.querySelector(".slides").innerHTML = out.html;
			Reveal.sync();
			Reveal.slide(body.indexh, body.indexv, body.indexf);
		});
	});
})();
`

// Options configures the generated document.
type Options struct {
	Title         string
	RevealVersion string

	// TransitionURL receives transition events. Empty produces a static
	// page with no overflow handling.
	TransitionURL string
}

// Build returns a complete document around a deep copy of container, which
// must be the `<div class="slides">` element.
func Build(container *html.Node, opts Options) *html.Node {
	version := opts.RevealVersion
	if version == "" {
		version = "4.1.2"
	}

	head := markup.Append(markup.Element("head"),
		markup.Element("meta", "charset", "utf-8"),
		markup.Element("meta", "name", "viewport", "content", "width=device-width, initial-scale=1"),
		markup.Append(markup.Element("title"), markup.Text(opts.Title)),
		markup.Element("link", "rel", "stylesheet", "href", fmt.Sprintf(cdn, version, "reveal.css")),
		markup.Append(markup.Element("style"), markup.Text(style)),
	)

	reveal := markup.Element("div", "class", "reveal")
	if opts.TransitionURL != "" {
		reveal.Attr = append(reveal.Attr, html.Attribute{Key: "data-transition-url", Val: opts.TransitionURL})
	}
	markup.Append(reveal, markup.Clone(container))

	body := markup.Append(markup.Element("body"),
		reveal,
		markup.Element("script", "src", fmt.Sprintf(cdn, version, "reveal.min.js")),
		markup.Append(markup.Element("script"), markup.Text(bootstrap)),
	)

	doc := &html.Node{Type: html.DocumentNode}
	markup.Append(doc,
		&html.Node{Type: html.DoctypeNode, Data: "html"},
		markup.Append(markup.Element("html", "lang", "en"), head, body),
	)
	return doc
}

// Write renders the document for container to w.
func Write(w io.Writer, container *html.Node, opts Options) error {
	if err := html.Render(w, Build(container, opts)); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
