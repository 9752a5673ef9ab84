package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/aibeeinyass/rideboss-system/internal/ports"
	"github.com/aibeeinyass/rideboss-system/internal/server/authctx"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

// StaffHandler is the manager's onboarding screen: create or update
// operator accounts and flip their active status.
type StaffHandler struct {
	Repo   ports.StaffStore
	Events ports.EventStore
}

func (h StaffHandler) RegisterRoutes(r chi.Router) {
	r.Get("/staff", h.list)
	r.Post("/staff", h.upsert)
	r.Put("/staff/{username}/status", h.setStatus)
}

func (h StaffHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, u := range items {
		resp = append(resp, map[string]any{
			"username":  u.Username,
			"name":      u.Name,
			"role":      string(u.Role),
			"dept":      string(u.Dept),
			"active":    u.Active,
			"createdAt": u.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h StaffHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Name     string `json:"name"`
		Password string `json:"password"`
		Role     string `json:"role"`
		Dept     string `json:"dept"`
		Active   *bool  `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}
	role := domain.RoleStaff
	if req.Role == string(domain.RoleManager) {
		role = domain.RoleManager
	}
	dept, ok := domain.ParseDepartment(req.Dept)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown department")
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	u := domain.User{
		Username: username,
		Name:     req.Name,
		Role:     role,
		Dept:     dept,
		Active:   active,
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to hash password")
			return
		}
		u.PasswordHash = ptr(string(hash))
	}

	saved, err := h.Repo.Save(r.Context(), u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	actor := "system"
	if cur := authctx.FromContext(r.Context()); cur != nil {
		actor = cur.Username
	}
	_ = h.Events.Append(r.Context(), fmt.Sprintf("%s onboarded %s into %s", actor, saved.Username, saved.Dept))

	writeJSON(w, http.StatusOK, map[string]any{
		"username": saved.Username,
		"name":     saved.Name,
		"role":     string(saved.Role),
		"dept":     string(saved.Dept),
		"active":   saved.Active,
	})
}

func (h StaffHandler) setStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	username := chi.URLParam(r, "username")
	if err := h.Repo.SetActive(r.Context(), username, req.Active); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func ptr[T any](v T) *T { return &v }
