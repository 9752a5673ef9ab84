package handler

import (
	"net/http"
	"strings"

	"github.com/aibeeinyass/rideboss-system/internal/service"
	"github.com/go-chi/chi/v5"
)

type ReportHandler struct {
	Service *service.ReportService
}

func (h ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/summary", h.summary)
	r.Get("/reports/staff", h.staff)
	r.Get("/reports/sales-series", h.salesSeries)
}

func (h ReportHandler) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Service.Summary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"washRevenue":   sum.WashRevenue,
		"loungeRevenue": sum.LoungeRevenue,
		"cardRevenue":   sum.CardRevenue,
		"expenses":      sum.Expenses,
		"netProfit":     sum.NetProfit,
	})
}

func (h ReportHandler) staff(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.StaffPerformance(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, p := range items {
		resp = append(resp, map[string]any{
			"staff":   p.Staff,
			"washes":  p.Washes,
			"revenue": p.Revenue,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ReportHandler) salesSeries(w http.ResponseWriter, r *http.Request) {
	rangeParam := strings.ToLower(r.URL.Query().Get("range"))
	days := 30
	switch rangeParam {
	case "1d", "today":
		days = 1
	case "7d", "week":
		days = 7
	case "30d", "month":
		days = 30
	}
	points, err := h.Service.SalesSeries(r.Context(), days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(points))
	for _, p := range points {
		resp = append(resp, map[string]any{
			"label": p.Label,
			"value": p.Amount,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
