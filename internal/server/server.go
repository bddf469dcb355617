package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/TheMisteMince/MVP-API/internal/config"
	"github.com/TheMisteMince/MVP-API/internal/product"
)

// Serves the product catalog over HTTP.
type Server struct {
	store           *product.Store
	http            *http.Server
	shutdownTimeout time.Duration
}

// Builds a server from the loaded configuration and an open store.
func New(cfg *config.Config, store *product.Store) *Server {
	s := &Server{store: store, shutdownTimeout: cfg.Server.ShutdownTimeout}
	s.http = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      s.routes(cfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

// Assembles the router with middleware and the product routes.
func (s *Server) routes(cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			fmt.Sprintf("http://localhost:%d", cfg.Server.Port),
			fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port),
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.listProducts)
		r.Post("/", s.createProduct)
		r.Get("/{id}", s.getProduct)
		r.Put("/{id}", s.updateProduct)
		r.Delete("/{id}", s.deleteProduct)
	})

	return r
}

// Listens on the configured address and serves until ctx is cancelled.
//
// A bind failure is returned immediately rather than retried; a stale
// listener on the fixed port is an operator problem, not a transient one.
func (s *Server) Run(ctx context.Context) error {
	errC := make(chan error, 1)
	go func() {
		slog.Info("listening", "address", s.http.Addr)
		errC <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errC:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%w: %w", ErrServer, err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%w: shutdown: %w", ErrServer, err)
	}
	return nil
}

// Logs each request at debug level with its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
		)
	})
}
