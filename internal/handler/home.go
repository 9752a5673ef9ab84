package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type HomeHandler struct {
	BusinessName string
}

func (h HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.welcome)
}

func (h HomeHandler) welcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": h.BusinessName,
		"message": "point-of-sale backend",
	})
}
