package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(mux chi.Router, h *Handlers) {
	mux.Get("/healthz", h.Health)
	mux.Get("/version", h.Version)
	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/api", func(r chi.Router) {
		r.Get("/tips", h.Tips)
		r.Post("/chat", h.Chat)
		r.Get("/history/{sessionID}", h.GetHistory)

		r.Post("/sessions", h.NewSession)
		r.Get("/sessions", h.ListSessions)
		r.Delete("/sessions/{sessionID}", h.EndSession)
	})
}
