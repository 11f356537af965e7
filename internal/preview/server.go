// Package preview regenerates example pages when component sources change
// and serves them with live reload.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/mekor-lib/sampler/internal/engine"
)

// Generator runs one generation pass.
type Generator interface {
	Generate(ctx context.Context) (*engine.Result, error)
}

// Config holds configuration for the preview server.
type Config struct {
	Generator Generator
	SourceDir string
	OutputDir string
	Suffix    string
	Debounce  time.Duration
	// Port is the HTTP port; 0 picks a free one.
	Port int
	// Serve enables the HTTP server. Without it only the watcher runs.
	Serve bool
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
	// OnGenerate is called after every regeneration attempt (optional).
	OnGenerate func(*engine.Result, error)
}

// Server watches the source tree and serves the output directory.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	notifier *Notifier
	addr     chan string
}

// NewServer creates a preview server.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		cfg:      cfg,
		logger:   logger,
		notifier: NewNotifier(),
		addr:     make(chan string, 1),
	}
}

// Notifier returns the server's reload notifier.
func (s *Server) Notifier() *Notifier {
	return s.notifier
}

// Addr returns a channel that yields the listen address once the HTTP
// server is accepting connections.
func (s *Server) Addr() <-chan string {
	return s.addr
}

// Regenerate runs the generator and notifies browsers on success. Errors
// are logged and returned but do not stop the watcher.
func (s *Server) Regenerate(ctx context.Context) (*engine.Result, error) {
	result, err := s.cfg.Generator.Generate(ctx)
	if s.cfg.OnGenerate != nil {
		s.cfg.OnGenerate(result, err)
	}
	if err != nil {
		s.logger.Error("regeneration failed", "error", err)
		return nil, err
	}
	s.notifier.Broadcast()
	return result, nil
}

// Run starts the watcher, and the HTTP server when enabled, and blocks
// until ctx is cancelled or one of them fails.
func (s *Server) Run(ctx context.Context) error {
	var lis net.Listener
	if s.cfg.Serve {
		var err error
		lis, err = net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
		if err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}
	}

	eg, egctx := errgroup.WithContext(ctx)

	watcher := NewWatcher(s.cfg.SourceDir, s.cfg.Suffix, s.cfg.Debounce, s.logger, func(ctx context.Context, _ string) {
		_, _ = s.Regenerate(ctx)
	})
	eg.Go(func() error {
		return watcher.Run(egctx)
	})

	if lis != nil {
		srv := &http.Server{
			Handler: s.Handler(),
			BaseContext: func(_ net.Listener) context.Context {
				return egctx
			},
			ReadHeaderTimeout: 10 * time.Second,
		}

		s.addr <- lis.Addr().String()
		s.logger.Info("preview server running", "url", fmt.Sprintf("http://localhost:%d", lis.Addr().(*net.TCPAddr).Port))

		eg.Go(func() error {
			if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		})

		eg.Go(func() error {
			<-egctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			s.logger.Debug("shutting down preview server")
			return srv.Shutdown(shutdownCtx)
		})
	}

	return eg.Wait()
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Recoverer,
		s.requestLogger,
	)

	r.Get("/", s.handleIndex)
	r.Get("/__reload", s.handleSSE)
	r.Get("/{file}", s.handleFile)

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
