// Package api exposes the HTTP surface of the server: the chat endpoints
// consumed by the mobile client, the auth/profile endpoints, and the
// operational stats endpoint.
package api

import (
	"baro-server/observability"
	"baro-server/services"
	"encoding/json"
	"log/slog"
	"net/http"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	bot   services.IBotService
	auth  services.IAuthService
	stats *observability.ExchangeStats
	log   *slog.Logger
}

func NewHandler(bot services.IBotService, authService services.IAuthService,
	stats *observability.ExchangeStats, log *slog.Logger) *Handler {
	return &Handler{bot: bot, auth: authService, stats: stats, log: log}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Warn("Writing response failed", "error", err)
	}
}

// Error sends a JSON error response carrying a human-readable detail,
// the shape the mobile client expects on every failure.
func (h *Handler) Error(w http.ResponseWriter, status int, detail string) {
	h.JSON(w, status, map[string]string{"detail": detail})
}

// Stats serves the operational snapshot.
func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	h.JSON(w, http.StatusOK, h.stats.Snapshot())
}
