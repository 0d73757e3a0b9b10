// Package pipeline turns uploaded documents into classified slide decks.
package pipeline

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/docdeck/internal/deck"
	"github.com/dgallion1/docdeck/internal/outline"
	"github.com/dgallion1/docdeck/internal/parser"
)

// Result is one built deck.
type Result struct {
	Title       string
	Filename    string
	Format      string // lowercase extension without the dot
	ContentHash string
	Slides      []deck.Slide
	Duration    time.Duration
}

// Builder runs the parse and classify phases for a single document.
type Builder struct {
	log     *slog.Logger
	parse   parser.Options
	outline outline.Options
}

func NewBuilder(log *slog.Logger, parseOpts parser.Options, outlineOpts outline.Options) *Builder {
	return &Builder{log: log, parse: parseOpts, outline: outlineOpts}
}

// Build parses data according to filename's extension and classifies the
// resulting elements into slides. A non-empty title overrides the one the
// parser finds.
func (b *Builder) Build(ctx context.Context, data []byte, filename, title string) (*Result, error) {
	start := time.Now()
	log := b.log.With("filename", filename)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Phase 1: Parse
	p, err := parser.ForFile(filename, b.parse)
	if err != nil {
		return nil, err
	}
	src, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if title != "" {
		src.Title = title
	}
	log.Debug("parsed document", "elements", len(src.Elements))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Phase 2: Classify
	slides := outline.Classify(src.Elements, b.outline)

	res := &Result{
		Title:       src.Title,
		Filename:    filename,
		Format:      strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."),
		ContentHash: ContentHashHex(data),
		Slides:      slides,
		Duration:    time.Since(start),
	}
	log.Info("deck built", "slides", len(slides), "duration_ms", res.Duration.Milliseconds())
	return res, nil
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
