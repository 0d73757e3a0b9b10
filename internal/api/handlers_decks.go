package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/docdeck/internal/parser"
	"github.com/dgallion1/docdeck/internal/pipeline"
	"github.com/dgallion1/docdeck/internal/present"
	"github.com/dgallion1/docdeck/internal/session"
	"github.com/dgallion1/docdeck/internal/stats"
	"github.com/go-chi/chi/v5"
)

// fitOptions carries the optional headless pre-split request.
type fitOptions struct {
	enabled  bool
	viewport float64
}

func (s *Server) fitFromForm(r *http.Request) fitOptions {
	opts := fitOptions{enabled: r.FormValue("fit") == "true", viewport: s.cfg.FitViewport}
	if v := r.FormValue("viewport"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			opts.viewport = f
		}
	}
	return opts
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	res, err := s.builder.Build(r.Context(), data, filename, r.FormValue("title"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	sess, err := s.register(res, s.fitFromForm(r))
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(deckCreated(sess, res))
}

func (s *Server) handleBatchCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	results := make([]map[string]any, len(files))
	var inputs []pipeline.Input
	var slots []int
	for i, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !parser.IsSupportedExtension(filename) {
			results[i] = map[string]any{
				"filename": filename,
				"error":    fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)),
			}
			continue
		}

		f, err := fh.Open()
		if err != nil {
			results[i] = map[string]any{"filename": filename, "error": "failed to open file"}
			continue
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil || int64(len(data)) > s.cfg.MaxUploadBytes {
			results[i] = map[string]any{"filename": filename, "error": "file too large or read error"}
			continue
		}
		inputs = append(inputs, pipeline.Input{Filename: filename, Data: data})
		slots = append(slots, i)
	}

	fit := s.fitFromForm(r)
	for j, out := range s.builder.BuildAll(r.Context(), inputs, s.cfg.BuildConcurrency) {
		i := slots[j]
		if out.Err != nil {
			results[i] = map[string]any{"filename": out.Filename, "error": out.Err.Error()}
			continue
		}
		sess, err := s.register(out.Result, fit)
		if err != nil {
			results[i] = map[string]any{"filename": out.Filename, "error": err.Error()}
			continue
		}
		results[i] = deckCreated(sess, out.Result)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"decks": results})
}

// register wraps a build result in a session, optionally pre-fits it, and
// stores it.
func (s *Server) register(res *pipeline.Result, fit fitOptions) (*session.Session, error) {
	sess := session.New(res.Title, res.Filename, res.Slides)

	splits := 0
	if fit.enabled {
		n, err := sess.Fit(present.DefaultLineMeasurer(), fit.viewport, s.cfg.FitMaxSplits)
		if err != nil {
			return nil, fmt.Errorf("fit deck: %w", err)
		}
		splits = n
		s.metrics.FitSplits(n)
	}

	if err := s.sessions.Put(sess); err != nil {
		return nil, err
	}

	s.metrics.DeckBuilt(res.Format, res.Duration, res.Slides)
	if s.stats != nil {
		s.stats.Record(stats.Build{Duration: res.Duration, Slides: sess.Len(), Splits: splits})
	}
	s.log.Info("deck registered", "deck_id", sess.ID, "filename", res.Filename, "slides", sess.Len(), "fit_splits", splits)
	return sess, nil
}

func deckCreated(sess *session.Session, res *pipeline.Result) map[string]any {
	return map[string]any{
		"deck_id":      sess.ID,
		"filename":     res.Filename,
		"title":        sess.Title,
		"slides":       sess.Len(),
		"content_hash": res.ContentHash,
		"url":          "/decks/" + sess.ID,
	}
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sess.Snapshot())
}

func (s *Server) handleDeckSlides(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, sess.HTML())
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")
	if !s.sessions.Delete(deckID) {
		jsonError(w, "deck not found", http.StatusNotFound)
		return
	}
	s.log.Info("deck deleted", "deck_id", deckID)
	w.WriteHeader(http.StatusNoContent)
}

// lookup resolves the deckID URL parameter, writing a 404 when missing.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "deckID"))
	if err != nil {
		jsonError(w, "deck not found", http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrFull):
		return http.StatusServiceUnavailable
	case errors.Is(err, parser.ErrUnsupported):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
