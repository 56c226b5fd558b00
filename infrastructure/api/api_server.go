package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/easelhq/easel"
	apimiddleware "github.com/easelhq/easel/infrastructure/api/middleware"
	v1 "github.com/easelhq/easel/infrastructure/api/v1"
)

// APIServer provides an HTTP API backed by an easel Client.
type APIServer struct {
	client *easel.Client
	server *Server
	router chi.Router
	logger *slog.Logger
}

// NewAPIServer creates a new APIServer wired to the given easel Client.
// When the client carries API keys, mutating endpoints (POST, DELETE)
// require a valid X-API-KEY header; reads remain open.
func NewAPIServer(client *easel.Client) *APIServer {
	return &APIServer{
		client: client,
		logger: client.Logger(),
	}
}

// mountRoutes wires up all routes on the given router.
func (a *APIServer) mountRoutes(router chi.Router) {
	router.Use(apimiddleware.CorrelationID)
	router.Use(apimiddleware.Logging(a.logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-KEY", "X-Correlation-ID"},
		MaxAge:         300,
	}))

	router.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{
			"name":    "easel",
			"message": "Joy of Painting episode catalog API",
		})
	})

	healthHandler := func(w http.ResponseWriter, _ *http.Request) {
		apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
	router.Get("/health", healthHandler)
	router.Get("/healthz", healthHandler)

	episodesRouter := v1.NewEpisodesRouter(a.client)
	colorsRouter := v1.NewColorsRouter(a.client)
	subjectsRouter := v1.NewSubjectMattersRouter(a.client)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))
		r.Use(apimiddleware.WriteProtectAuth(a.client.APIKeys()))

		r.Mount("/episodes", episodesRouter.Routes())
		r.Mount("/colors", colorsRouter.Routes())
		r.Mount("/subject-matters", subjectsRouter.Routes())
	})
}

// ListenAndServe starts the HTTP server on the given address.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.logger)
	a.server = &server

	a.mountRoutes(server.Router())

	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the router as an http.Handler for use with custom servers.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		a.router = chi.NewRouter()
		a.router.Use(chimiddleware.RequestID)
		a.mountRoutes(a.router)
	}
	return a.router
}
