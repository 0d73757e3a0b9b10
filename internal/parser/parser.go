package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docdeck/internal/markup"
	"golang.org/x/net/html"
)

// Source is a document reduced to the flat element sequence the outline
// classifier consumes.
type Source struct {
	Title    string       // Document title (from metadata or filename)
	Elements []*html.Node // Block elements in reading order
}

// Parser converts raw document bytes into a Source.
type Parser interface {
	Parse(r io.Reader, filename string) (*Source, error)
}

// Options are shared by the format parsers.
type Options struct {
	// FigureClass is added to elements the parser recognizes as standalone
	// images, so the classifier treats them as figures.
	FigureClass string

	// FallbackPdftotext shells out to pdftotext when the Go PDF reader fails.
	FallbackPdftotext bool
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		FigureClass:       "image-reference",
		FallbackPdftotext: true,
	}
}

// ErrUnsupported is returned for file extensions no parser handles.
var ErrUnsupported = errors.New("unsupported file extension")

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{FigureClass: opts.FigureClass}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.FallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// trimExt strips any of exts from the end of filename.
func trimExt(filename string, exts ...string) string {
	for _, ext := range exts {
		if strings.HasSuffix(strings.ToLower(filename), ext) {
			return filename[:len(filename)-len(ext)]
		}
	}
	return filename
}

func heading(level int, text string) *html.Node {
	return markup.Append(markup.Element(fmt.Sprintf("h%d", level)), markup.Text(text))
}

func paragraph(text string) *html.Node {
	return markup.Append(markup.Element("p"), markup.Text(text))
}

// table builds a <table> whose first row is a header row.
func table(header []string, rows [][]string) *html.Node {
	t := markup.Element("table")
	if len(header) > 0 {
		tr := markup.Element("tr")
		for _, h := range header {
			markup.Append(tr, markup.Append(markup.Element("th"), markup.Text(h)))
		}
		markup.Append(t, markup.Append(markup.Element("thead"), tr))
	}
	body := markup.Element("tbody")
	for _, row := range rows {
		tr := markup.Element("tr")
		for _, cell := range row {
			markup.Append(tr, markup.Append(markup.Element("td"), markup.Text(cell)))
		}
		markup.Append(body, tr)
	}
	return markup.Append(t, body)
}

// splitParagraphs splits text on blank lines, trimming each paragraph.
func splitParagraphs(text string) []string {
	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, strings.TrimRight(line, " \t\r"))
	}
	flush()
	return paragraphs
}
