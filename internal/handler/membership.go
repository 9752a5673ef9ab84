package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/aibeeinyass/rideboss-system/internal/service"
	"github.com/go-chi/chi/v5"
)

type MembershipHandler struct {
	Service *service.MembershipService
}

func (h MembershipHandler) RegisterRoutes(r chi.Router) {
	r.Get("/memberships", h.list)
	r.Get("/memberships/{plate}", h.get)
	r.Post("/memberships", h.issue)
	r.Post("/memberships/{plate}/consume", h.consume)
	r.Put("/memberships/{plate}/balance", h.topUp)
	r.Delete("/memberships/{plate}", h.delete)
}

func (h MembershipHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, m := range items {
		resp = append(resp, membershipResponse(&m))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h MembershipHandler) get(w http.ResponseWriter, r *http.Request) {
	m, err := h.Service.Get(r.Context(), chi.URLParam(r, "plate"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, membershipResponse(m))
}

func (h MembershipHandler) issue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Plate     string `json:"plate"`
		CardType  string `json:"cardType"`
		Credits   int    `json:"credits"`
		SalePrice int64  `json:"salePrice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	m, err := h.Service.Issue(r.Context(), req.Plate, req.CardType, req.Credits, req.SalePrice)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, membershipResponse(m))
}

func (h MembershipHandler) consume(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.ConsumeOne(r.Context(), chi.URLParam(r, "plate"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"plate":     res.Plate,
		"balance":   res.Balance,
		"lowCredit": res.LowCredit,
		"topUpLink": res.TopUpLink,
	})
}

func (h MembershipHandler) topUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Balance int `json:"balance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	m, err := h.Service.TopUp(r.Context(), chi.URLParam(r, "plate"), req.Balance)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, membershipResponse(m))
}

func (h MembershipHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "plate")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func membershipResponse(m *domain.Membership) map[string]any {
	return map[string]any{
		"plate":     m.Plate,
		"balance":   m.Balance,
		"cardType":  m.CardType,
		"salePrice": m.SalePrice.Amount,
		"updatedAt": m.UpdatedAt.Format(time.RFC3339),
	}
}
