package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/aibeeinyass/rideboss-system/internal/repository"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	Repo repository.CatalogRepository
}

// RegisterRoutes exposes the read side for reception staff.
func (h CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/catalog/services", h.listServices)
	r.Get("/catalog/inventory", h.listInventory)
}

// RegisterAdminRoutes exposes price and stock edits to managers.
func (h CatalogHandler) RegisterAdminRoutes(r chi.Router) {
	r.Put("/catalog/services", h.upsertService)
	r.Put("/catalog/inventory", h.upsertItem)
	r.Get("/catalog/inventory/{item}/history", h.stockHistory)
}

func (h CatalogHandler) listServices(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.ServicePrices(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, s := range items {
		resp = append(resp, map[string]any{
			"name":  s.Name,
			"price": s.Price.Amount,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h CatalogHandler) listInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.ListInventory(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, it := range items {
		resp = append(resp, map[string]any{
			"item":  it.Name,
			"stock": it.Stock,
			"unit":  it.Unit,
			"price": it.Price.Amount,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h CatalogHandler) upsertService(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Price int64  `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Price < 0 {
		writeError(w, http.StatusBadRequest, "price cannot be negative")
		return
	}
	s, err := h.Repo.UpsertService(r.Context(), req.Name, req.Price)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":  s.Name,
		"price": s.Price.Amount,
	})
}

func (h CatalogHandler) upsertItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Item  string `json:"item"`
		Stock int    `json:"stock"`
		Unit  string `json:"unit"`
		Price int64  `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Item == "" {
		writeError(w, http.StatusBadRequest, "item is required")
		return
	}
	if req.Stock < 0 {
		writeError(w, http.StatusBadRequest, "stock cannot be negative")
		return
	}
	if req.Unit == "" {
		req.Unit = "pcs"
	}
	it, err := h.Repo.UpsertItem(r.Context(), domain.InventoryItem{
		Name:  req.Item,
		Stock: req.Stock,
		Unit:  req.Unit,
		Price: domain.Money{Amount: req.Price},
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"item":  it.Name,
		"stock": it.Stock,
		"unit":  it.Unit,
		"price": it.Price.Amount,
	})
}

func (h CatalogHandler) stockHistory(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	items, err := h.Repo.StockHistory(r.Context(), chi.URLParam(r, "item"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}
