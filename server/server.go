package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v3"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/sig-0/tcbrates/provider"
	"github.com/sig-0/tcbrates/server/config"
	"github.com/sig-0/tcbrates/watch"
)

var (
	errInvalidProvider   = errors.New("invalid provider")
	errDuplicateProvider = errors.New("duplicate provider")
)

// StatusSource exposes the last known state of the watched providers
type StatusSource interface {
	Statuses() []watch.Status
}

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type Server struct {
	logger *slog.Logger
	config *config.Config
	status StatusSource

	providers map[string]provider.Provider // lower-case name -> provider
	names     []string                     // sorted lower-case names

	mux *chi.Mux
}

// New creates a new server instance, serving the given providers
func New(providers []provider.Provider, opts ...Option) (*Server, error) {
	s := &Server{
		logger:    noopLogger,
		config:    config.DefaultConfig(),
		providers: make(map[string]provider.Provider, len(providers)),
		mux:       chi.NewMux(),
	}

	// Apply the options
	for _, opt := range opts {
		opt(s)
	}

	// Validate the configuration
	if err := config.ValidateConfig(s.config); err != nil {
		return nil, fmt.Errorf("invalid configuration, %w", err)
	}

	// Index the providers
	for _, p := range providers {
		if p == nil || p.Name() == "" {
			return nil, errInvalidProvider
		}

		key := strings.ToLower(p.Name())
		if _, exists := s.providers[key]; exists {
			return nil, fmt.Errorf("%w: %s", errDuplicateProvider, p.Name())
		}

		s.providers[key] = p
		s.names = append(s.names, key)
	}

	sort.Strings(s.names)

	// Set up the CORS middleware
	if s.config.CORSConfig != nil {
		corsMiddleware := cors.New(cors.Options{
			AllowedOrigins: s.config.CORSConfig.AllowedOrigins,
			AllowedMethods: s.config.CORSConfig.AllowedMethods,
			AllowedHeaders: s.config.CORSConfig.AllowedHeaders,
		})

		s.mux.Use(corsMiddleware.Handler)
	}

	s.mux.Use(httplog.RequestLogger(s.logger, &httplog.Options{
		Level:         slog.LevelInfo,
		Schema:        httplog.SchemaOTEL,
		RecoverPanics: true,
		Skip: func(req *http.Request, respStatus int) bool {
			return respStatus == 404 || respStatus == 405 || req.URL.Path == "/health"
		},
	}))

	// Register the health check handler
	s.mux.Get("/health", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	// Register the docs
	s.mux.Get("/openapi.yaml", s.OpenAPI)
	s.mux.Get("/docs", s.Redoc)

	// Register the API
	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/providers", s.Providers)
		r.Get("/rates/{provider}/{reference}", s.LiveRates)
		r.Get("/status", s.Status)
	})

	return s, nil
}

// ServeHTTP serves a single request using the server mux
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Serve serves the tcbrates service
func (s *Server) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.config.ListenAddress,
		Handler:           s.mux,
		ReadHeaderTimeout: 60 * time.Second,
	}

	group, gCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer s.logger.Info("server shut down")

		ln, err := net.Listen("tcp", server.Addr)
		if err != nil {
			return err
		}

		s.logger.Info(
			fmt.Sprintf(
				"server started at %s",
				ln.Addr().String(),
			),
		)

		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		<-gCtx.Done()

		s.logger.Info("server to be shutdown")

		wsCtx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()

		return server.Shutdown(wsCtx)
	})

	return group.Wait()
}
