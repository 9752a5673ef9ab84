package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/aibeeinyass/rideboss-system/internal/ports"
	"github.com/aibeeinyass/rideboss-system/internal/service"
	"github.com/go-chi/chi/v5"
)

type CheckoutHandler struct {
	Service *service.CheckoutService
	Sales   ports.SaleStore
}

func (h CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/checkout/wash", h.wash)
	r.Post("/checkout/lounge", h.lounge)
	r.Get("/sales", h.listSales)
}

type washPayload struct {
	Plate       string   `json:"plate"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	VehicleType string   `json:"vehicleType"`
	Services    []string `json:"services"`
	Method      string   `json:"method"`
	Staff       string   `json:"staff"`
}

func (h CheckoutHandler) wash(w http.ResponseWriter, r *http.Request) {
	var req washPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	receipt, err := h.Service.AuthorizeWash(r.Context(), service.AuthorizeWashInput{
		Plate:         req.Plate,
		CustomerName:  req.Name,
		CustomerPhone: req.Phone,
		VehicleType:   req.VehicleType,
		Services:      req.Services,
		Method:        req.Method,
		Staff:         req.Staff,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receiptResponse(receipt))
}

func (h CheckoutHandler) lounge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []struct {
			Name string `json:"name"`
			Qty  int    `json:"qty"`
		} `json:"items"`
		Method string `json:"method"`
		Staff  string `json:"staff"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	items := make([]service.LoungeItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.LoungeItem{Name: it.Name, Qty: it.Qty})
	}
	receipt, err := h.Service.AuthorizeLounge(r.Context(), service.AuthorizeLoungeInput{
		Items:  items,
		Method: req.Method,
		Staff:  req.Staff,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receiptResponse(receipt))
}

func (h CheckoutHandler) listSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.Sales.List(r.Context(), 200)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(sales))
	for _, s := range sales {
		resp = append(resp, map[string]any{
			"id":        s.ID,
			"plate":     s.Plate,
			"services":  s.Services,
			"total":     s.Total.Amount,
			"method":    string(s.Method),
			"staff":     s.Staff,
			"type":      string(s.Type),
			"timestamp": s.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func receiptResponse(rc *domain.Receipt) map[string]any {
	lines := make([]map[string]any, 0, len(rc.Lines))
	for _, l := range rc.Lines {
		lines = append(lines, map[string]any{
			"name":  l.Name,
			"price": l.Price,
			"qty":   l.Qty,
		})
	}
	return map[string]any{
		"code":            rc.Code,
		"plate":           rc.Plate,
		"type":            string(rc.Type),
		"lines":           lines,
		"total":           rc.Total.Amount,
		"currency":        rc.Total.Currency,
		"method":          string(rc.Method),
		"staff":           rc.Staff,
		"issuedAt":        rc.IssuedAt.Format(time.RFC3339),
		"remainingCredit": rc.RemainingCredit,
		"lowCredit":       rc.LowCredit,
	}
}
