// Package server exposes family documents and their layouts over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /api/tree/{name}              family document
//	PUT  /api/tree/{name}              store a document (validated by indexing)
//	GET  /api/tree/{name}/layout       render-ready layout JSON
//	GET  /api/tree/{name}/svg          rendered SVG
//	POST /api/tree/{name}/visibility   {"public": bool}
//	GET  /api/public/{slug}            public family document
//	GET  /api/samples                  built-in sample ids
//	GET  /api/sample/{id}/tree
//	GET  /api/sample/{id}/layout
//	GET  /api/sample/{id}/svg
//
// Layout and SVG routes accept the query parameters style, viz, unions,
// panzoom, curved and refresh. Errors are JSON objects with "error" and
// "code" fields.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/lineagemap/pkg/config"
	"github.com/matzehuels/lineagemap/pkg/pipeline"
	"github.com/matzehuels/lineagemap/pkg/render/tree/layout"
	"github.com/matzehuels/lineagemap/pkg/store"
)

// Options configures a Server. Store and Runner are required.
type Options struct {
	Store        store.Store
	Samples      *store.Samples
	Runner       *pipeline.Runner
	Logger       *log.Logger
	Layout       layout.Config // base geometry for every layout request
	MaxBodyBytes int64
}

// Server serves the HTTP API.
type Server struct {
	store   store.Store
	samples *store.Samples
	runner  *pipeline.Runner
	logger  *log.Logger
	layout  layout.Config
	maxBody int64
	router  chi.Router
}

// New creates a server and mounts its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Samples == nil {
		opts.Samples = store.NewSamples()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = config.Default().Server.MaxBodyBytes
	}
	s := &Server{
		store:   opts.Store,
		samples: opts.Samples,
		runner:  opts.Runner,
		logger:  opts.Logger,
		layout:  opts.Layout.WithDefaults(),
		maxBody: opts.MaxBodyBytes,
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/tree/{name}", func(r chi.Router) {
			r.Get("/", s.handleGetTree)
			r.Put("/", s.handlePutTree)
			r.Get("/layout", s.handleTreeLayout)
			r.Get("/svg", s.handleTreeSVG)
			r.Post("/visibility", s.handleVisibility)
		})
		r.Get("/public/{slug}", s.handlePublic)
		r.Get("/samples", s.handleSamples)
		r.Route("/sample/{id}", func(r chi.Router) {
			r.Get("/tree", s.handleSampleTree)
			r.Get("/layout", s.handleSampleLayout)
			r.Get("/svg", s.handleSampleSVG)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "route not found", Code: "NOT_FOUND"})
	})
	return r
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts down
// gracefully within cfg.ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.Server) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", cfg.Addr, "store", s.store.Name())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
