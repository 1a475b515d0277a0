// Package httpserver serves content pages with resolved SEO heads and exposes
// the resolver over JSON.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"finitefield.org/hanko-seo/internal/config"
	"finitefield.org/hanko-seo/internal/content"
	"finitefield.org/hanko-seo/internal/observability"
	"finitefield.org/hanko-seo/internal/seo"
)

const (
	maxResolveBody  = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// PageSource loads content pages by slug and language.
type PageSource interface {
	Load(slug, lang string) (content.Page, error)
}

// Server wires the resolver and page source into a chi router.
type Server struct {
	resolver *seo.Resolver
	pages    PageSource
	logger   *zap.Logger
	baseURL  string
	locales  *negotiator
	tracer   trace.TracerProvider
	router   chi.Router
}

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the base logger used by the request logger and for
// resolver warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBaseURL fixes the origin used for derived canonical URLs. Without it
// the origin is taken from each request.
func WithBaseURL(base string) Option {
	return func(s *Server) {
		s.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
	}
}

// WithTracerProvider sets the provider for request spans. The global provider
// is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) {
		s.tracer = tp
	}
}

// WithLanguages enables Accept-Language negotiation over langs when a request
// has no lang query parameter. The first entry is the fallback.
func WithLanguages(langs ...string) Option {
	return func(s *Server) {
		s.locales = newNegotiator(langs)
	}
}

// New builds the router.
func New(resolver *seo.Resolver, pages PageSource, opts ...Option) *Server {
	s := &Server{
		resolver: resolver,
		pages:    pages,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.TraceMiddleware(s.tracer))
	r.Use(observability.RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.With(varyLocale).Get("/pages/{slug}", s.handlePage)
	r.Route("/api", func(r chi.Router) {
		r.With(varyLocale).Get("/pages/{slug}/tags", s.handlePageTags)
		r.Post("/resolve", s.handleResolve)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// HTTPServer returns an http.Server for the handler using cfg's address and timeouts.
func (s *Server) HTTPServer(cfg config.ServerConfig) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("preview server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("preview server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
