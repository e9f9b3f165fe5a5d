package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"creator-crm/internal/core/port"
	"creator-crm/internal/metrics"
)

// Handler is the inbound HTTP adapter. It holds the slot usecase and a
// logger, and registers routes on a chi.Router. The wire format keeps the
// legacy field names the dashboard already speaks.
type Handler struct {
	svc    port.SlotUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. Metrics may be
// nil, in which case the middleware and the /metrics endpoint are skipped.
func NewHandler(svc port.SlotUseCase, logger *slog.Logger, m *metrics.Metrics) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	if m != nil {
		r.Use(m.Middleware)
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/slots/add", h.handleAddSlot)
		r.Post("/slots/remove", h.handleRemoveSlots)
		r.Post("/slots/swap", h.handleSwapSlots)
		r.Get("/campaigns/lookup", h.handleCampaignLookup)
		r.Get("/campaigns/{campaignID}/slots", h.handleListSlots)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
