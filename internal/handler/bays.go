package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aibeeinyass/rideboss-system/internal/service"
	"github.com/go-chi/chi/v5"
)

type BayHandler struct {
	Service *service.BayService
}

func (h BayHandler) RegisterRoutes(r chi.Router) {
	r.Get("/bays", h.board)
	r.Get("/bays/availability", h.availability)
	r.Post("/bays/{plate}/advance", h.advance)
	r.Post("/bays/{plate}/release", h.release)
}

func (h BayHandler) board(w http.ResponseWriter, r *http.Request) {
	views, err := h.Service.Board(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(views))
	for _, v := range views {
		resp = append(resp, map[string]any{
			"plate":          v.Plate,
			"status":         string(v.Status),
			"entryTime":      v.EntryTime.Format(time.RFC3339),
			"staff":          v.Staff,
			"vehicleType":    v.VehicleType,
			"serviceDetail":  v.ServiceDetail,
			"elapsedMinutes": int(v.Elapsed.Minutes()),
			"overdue":        v.Overdue,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h BayHandler) availability(w http.ResponseWriter, r *http.Request) {
	dept := r.URL.Query().Get("dept")
	users, err := h.Service.Availability(r.Context(), dept)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(users))
	for _, u := range users {
		resp = append(resp, map[string]any{
			"username": u.Username,
			"name":     u.Name,
			"dept":     string(u.Dept),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h BayHandler) advance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Staff string `json:"staff"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	session, err := h.Service.Advance(r.Context(), chi.URLParam(r, "plate"), req.Staff)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"plate":     session.Plate,
		"status":    string(session.Status),
		"staff":     session.Staff,
		"entryTime": session.EntryTime.Format(time.RFC3339),
	})
}

func (h BayHandler) release(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.Release(r.Context(), chi.URLParam(r, "plate"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"plate":      res.Plate,
		"notifyLink": res.NotifyLink,
	})
}
