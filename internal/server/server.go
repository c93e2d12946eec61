// Package server exposes the service over HTTP for local tooling and
// editor integrations. JSON in, JSON out; the CLI remains the primary
// surface.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/mempocket/mempocket/internal/service"
)

// Server routes HTTP requests to the service.
type Server struct {
	router *chi.Mux
	svc    *service.Service
}

// New builds the router. CORS is wide open: the server binds loopback-style
// deployments where the caller is a local browser tool.
func New(svc *service.Service) *Server {
	s := &Server{
		router: chi.NewRouter(),
		svc:    svc,
	}

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Get("/search", s.handleSearch)
	r.Post("/add", s.handleQuickAdd)
	r.Post("/reindex", s.handleReindex)

	r.Route("/entries", func(r chi.Router) {
		r.Get("/", s.handleListEntries)
		r.Post("/", s.handleCreateEntry)
		r.Get("/{id}", s.handleGetEntry)
		r.Put("/{id}", s.handleUpdateEntry)
		r.Delete("/{id}", s.handleDeleteEntry)
		r.Get("/{id}/links", s.handleLinks)
		r.Get("/{id}/backlinks", s.handleBacklinks)
	})

	r.Route("/proposals", func(r chi.Router) {
		r.Get("/", s.handlePendingProposals)
		r.Get("/{id}", s.handleGetProposal)
		r.Post("/{id}/approve", s.handleApprove)
		r.Post("/{id}/reject", s.handleReject)
	})

	r.Get("/runs/{id}", s.handleGetRun)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			zap.L().Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
