// Package preview serves generated outputs over HTTP and reloads them when
// the schema sources change.
package preview

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/estree/estreegen/internal/build"
	"github.com/estree/estreegen/internal/watch"
	"github.com/estree/estreegen/pkg/spec"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for the preview server.
type Config struct {
	Sources    []string
	MaxVersion int
	Port       int
	Watch      bool
	Logger     *slog.Logger
}

// Server is the preview server. It guards the current model so requests and
// reloads may run concurrently.
type Server struct {
	sources    []string
	maxVersion int
	port       int
	watch      bool
	logger     *slog.Logger
	notifier   *Notifier

	mu         sync.RWMutex
	defs       []spec.Definition
	index      *spec.Index
	loadErr    error
	generation uint64
	loadedAt   time.Time
}

// NewServer creates a new preview server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	maxVersion := cfg.MaxVersion
	if maxVersion <= 0 {
		maxVersion = spec.Latest
	}
	return &Server{
		sources:    cfg.Sources,
		maxVersion: maxVersion,
		port:       cfg.Port,
		watch:      cfg.Watch,
		logger:     logger,
		notifier:   NewNotifier(),
	}
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *Notifier {
	return s.notifier
}

// Reload re-reads the sources. On failure the previous model stays in place
// and the error is shown on the index page until the next good load.
func (s *Server) Reload(ctx context.Context) error {
	defs, err := build.Load(ctx, s.sources)

	s.mu.Lock()
	s.loadErr = err
	if err == nil {
		s.defs = defs
		s.index = spec.NewIndex(defs)
		s.loadedAt = time.Now()
	}
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("reload failed", "error", err)
	} else {
		s.logger.Info("schema loaded", "definitions", len(defs), "generation", gen)
	}
	s.notifier.Broadcast(gen)
	return err
}

// snapshot returns the last good model. It fails only before the first
// successful load.
func (s *Server) snapshot() ([]spec.Definition, *spec.Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index != nil {
		return s.defs, s.index, nil
	}
	if s.loadErr != nil {
		return nil, nil, s.loadErr
	}
	return nil, nil, errors.New("schema not loaded yet")
}

// Handler returns the preview routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		s.requestLogger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/", s.handleIndex)
	r.Get("/events", s.handleEvents)
	r.Route("/api", func(r chi.Router) {
		r.Get("/definitions", s.handleDefinitions)
		r.Get("/definitions/{name}", s.handleDefinition)
	})
	r.Get("/{target}", s.handleTarget)
	return r
}

// Serve loads the schema, then serves until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Reload(ctx); err != nil {
		return errors.Wrap(err, "initial load failed")
	}

	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting preview server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start file watcher if enabled
	if s.watch {
		w := watch.New(s.sources, build.SourceExt, s.logger)
		eg.Go(func() error {
			return w.Run(egctx, func(ctx context.Context, changed []string) {
				s.logger.Debug("sources changed, reloading", "files", changed)
				_ = s.Reload(ctx)
			})
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server error")
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down preview server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// requestLogger logs each request through the server logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
