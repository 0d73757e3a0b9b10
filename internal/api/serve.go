package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dgallion1/docdeck/internal/config"
	"github.com/dgallion1/docdeck/internal/metrics"
	"github.com/dgallion1/docdeck/internal/outline"
	"github.com/dgallion1/docdeck/internal/parser"
	"github.com/dgallion1/docdeck/internal/pipeline"
	"github.com/dgallion1/docdeck/internal/session"
	"github.com/dgallion1/docdeck/internal/stats"
)

const janitorInterval = 5 * time.Minute

// Options derives the parser and classifier settings from cfg.
func Options(cfg config.Config) (parser.Options, outline.Options) {
	po := parser.DefaultOptions()
	po.FallbackPdftotext = cfg.PDFFallbackPdftotext
	if len(cfg.FigureClasses) > 0 {
		po.FigureClass = cfg.FigureClasses[0]
	}

	oo := outline.DefaultOptions()
	oo.FigureClasses = cfg.FigureClasses
	oo.HeadingItem = cfg.HeadingItem
	return po, oo
}

// Serve wires the service from cfg and blocks until ctx is cancelled or
// the listener fails.
func Serve(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	po, oo := Options(cfg)
	builder := pipeline.NewBuilder(log, po, oo)

	sessions := session.NewStore(cfg.SessionTTL, cfg.MaxSessions)
	m := metrics.New()
	m.ObserveSessions(sessions.Len)

	srv := NewServer(builder, sessions, m, stats.NewWindow(time.Hour), log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go sessions.Run(janitorCtx, janitorInterval)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting docdeck", "port", cfg.Port)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
