// Package server wires the editor API over a single HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/inkwell/inkwell/internal/config"
	ierrors "github.com/inkwell/inkwell/internal/errors"
	"github.com/inkwell/inkwell/internal/history"
	"github.com/inkwell/inkwell/internal/metrics"
	"github.com/inkwell/inkwell/internal/server/handlers"
	"github.com/inkwell/inkwell/internal/server/middleware"
)

// Options carries optional collaborators for the editor server.
type Options struct {
	History  *history.Store
	Recorder *metrics.PrometheusRecorder
}

// ContentAPI is the full content surface the editor exposes. Satisfied by
// content.Store directly and by gitstore.ContentStore when auto-commit is on.
type ContentAPI interface {
	handlers.PostStore
	handlers.ImageStore
}

// Server serves the editor API.
type Server struct {
	cfg  *config.Config
	opts Options
	srv  *http.Server

	postHandlers       *handlers.PostHandlers
	imageHandlers      *handlers.ImageHandlers
	buildHandlers      *handlers.BuildHandlers
	monitoringHandlers *handlers.MonitoringHandlers

	mchain func(http.Handler) http.Handler
}

// New constructs the editor server.
func New(cfg *config.Config, store ContentAPI, runner handlers.BuildRunner, opts Options) *Server {
	s := &Server{cfg: cfg, opts: opts}

	var hist handlers.HistoryReader
	if opts.History != nil {
		hist = opts.History
	}

	s.postHandlers = handlers.NewPostHandlers(store)
	s.imageHandlers = handlers.NewImageHandlers(store, cfg.Server.MaxImageWidth)
	s.buildHandlers = handlers.NewBuildHandlers(runner, hist)
	s.monitoringHandlers = handlers.NewMonitoringHandlers()
	var counter middleware.RequestCounter
	if opts.Recorder != nil {
		counter = opts.Recorder
	}
	s.mchain = middleware.Chain(slog.Default(), ierrors.NewHTTPErrorAdapter(slog.Default()), counter)

	return s
}

// Handler builds the routed, middleware-wrapped handler. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/posts", s.postHandlers.HandleList)
	mux.HandleFunc("/api/post/{filename}", s.postHandlers.HandlePost)
	mux.HandleFunc("/api/new", s.postHandlers.HandleNew)
	mux.HandleFunc("/api/images/{slug}", s.imageHandlers.HandleImages)
	mux.HandleFunc("/api/images/{slug}/{filename}", s.imageHandlers.HandleImage)
	mux.HandleFunc("/images/{slug}/{filename}", s.imageHandlers.HandleImage)
	mux.HandleFunc("/api/build", s.buildHandlers.HandleBuild)
	mux.HandleFunc("/api/builds", s.buildHandlers.HandleBuilds)
	mux.HandleFunc("/api/health", s.monitoringHandlers.HandleHealth)
	if s.opts.Recorder != nil {
		mux.Handle("/metrics", s.opts.Recorder.Handler())
	}
	return s.mchain(mux)
}

// Start binds the configured address and serves until the context is
// cancelled or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.cfg.Server.Addr, err)
	}

	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Editor server started", slog.String("addr", ln.Addr().String()))
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("editor server error", "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("editor server shutdown: %w", err)
	}
	slog.Info("Editor server stopped")
	return nil
}
