package server

import (
	"net/http"

	"clan-dashboard/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func NewRouter(s *DashboardServer, logger zerolog.Logger) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID(logger))
	r.Use(c.Handler)

	r.Get("/healthz", handleHealth)
	r.Get("/api/dashboard", s.handlePage)
	r.Get("/api/dashboard/refresh", s.handleRefresh)

	path, handler := NewDashboardHandler(s)
	r.Handle(path+"*", handler)

	return r
}
