package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aibeeinyass/rideboss-system/internal/repository"
	"github.com/go-chi/chi/v5"
)

// NotificationHandler serves the scrolling event feed on the monitor
// screen. The feed is read-only over the API; entries come from commands.
type NotificationHandler struct {
	Repo repository.NotificationRepository
}

func (h NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/notifications", h.list)
}

func (h NotificationHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	items, err := h.Repo.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, n := range items {
		resp = append(resp, map[string]any{
			"id":        n.ID,
			"message":   n.Message,
			"timestamp": n.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
