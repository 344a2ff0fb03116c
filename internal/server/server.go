// Package server exposes document loading, semantic queries, accessible
// names and snapshots over HTTP and a streaming websocket.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/pinchtab/ariaquery/dom/htmltree"
	"github.com/pinchtab/ariaquery/internal/browser"
	"github.com/pinchtab/ariaquery/internal/config"
)

// CaptureFunc loads a live page.
type CaptureFunc func(ctx context.Context, cfg *config.RuntimeConfig, url string) (*htmltree.Document, error)

type Server struct {
	cfg     *config.RuntimeConfig
	store   *Store
	capture CaptureFunc
	version string
	started time.Time
	stats   counters
}

type Option func(*Server)

// WithCapture replaces the Chrome capture used for url documents.
func WithCapture(f CaptureFunc) Option {
	return func(s *Server) { s.capture = f }
}

func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

func New(cfg *config.RuntimeConfig, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		store:   NewStore(cfg.MaxDocs),
		capture: browser.Capture,
		version: "dev",
		started: time.Now(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Store returns the document cache.
func (s *Server) Store() *Store { return s.store }

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /documents", s.handleLoadDocument)
	mux.HandleFunc("DELETE /documents/{id}", s.handleDeleteDocument)
	mux.HandleFunc("GET /documents/{id}/snapshot", s.handleSnapshot)
	mux.HandleFunc("POST /compile", s.handleCompile)
	mux.HandleFunc("POST /query", s.handleQuery)
	mux.HandleFunc("POST /name", s.handleName)
	mux.HandleFunc("GET /ws/query", s.handleQueryStream)
}

// Handler returns the routes wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return RequestIDMiddleware(CorsMiddleware(s.stats.LoggingMiddleware(AuthMiddleware(s.cfg, mux))))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("ariaquery listening", "addr", srv.Addr, "auth", s.cfg.Token != "")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
