package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/docdeck/internal/deck"
	"github.com/dgallion1/docdeck/internal/page"
	"github.com/dgallion1/docdeck/internal/present"
	"golang.org/x/net/html"
)

func (s *Server) handleDeckPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	doc := sess.Page(page.Options{
		RevealVersion: s.cfg.RevealVersion,
		TransitionURL: "/api/decks/" + sess.ID + "/transition",
	})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := html.Render(w, doc); err != nil {
		s.log.Error("render page failed", "deck_id", sess.ID, "error", err)
	}
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var ev present.TransitionEvent
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64*1024)).Decode(&ev); err != nil {
		jsonError(w, "invalid transition event: "+err.Error(), http.StatusBadRequest)
		return
	}
	if ev.RenderedHeight < 0 || ev.ViewportHeight < 0 {
		jsonError(w, "heights must not be negative", http.StatusBadRequest)
		return
	}

	out, markup, err := sess.Handle(ev)
	s.metrics.Transition(out, err)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, deck.ErrIndexOutOfRange) {
			code = http.StatusBadRequest
		}
		jsonError(w, err.Error(), code)
		return
	}
	if out.Split && s.stats != nil {
		s.stats.AddSplits(1)
	}
	s.log.Info("transition", "session", sess.ID, "index", ev.IndexH, "split", out.Split, "slides", out.Slides)

	resp := map[string]any{"split": out.Split, "slides": out.Slides}
	if out.Split {
		resp["kind"] = out.Kind.String()
		resp["html"] = markup
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
