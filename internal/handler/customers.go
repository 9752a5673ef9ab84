package handler

import (
	"net/http"
	"time"

	"github.com/aibeeinyass/rideboss-system/internal/notify"
	"github.com/aibeeinyass/rideboss-system/internal/repository"
	"github.com/go-chi/chi/v5"
)

// Customers quieter than this show up as MIA on the retention list.
const miaAfterDays = 7

type CustomerHandler struct {
	Repo     repository.CustomerRepository
	WhatsApp notify.WhatsApp
}

func (h CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/customers", h.list)
	r.Get("/customers/{plate}", h.get)
	r.Get("/customers/retention", h.retention)
}

func (h CustomerHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context(), 500)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, c := range items {
		resp = append(resp, map[string]any{
			"plate":     c.Plate,
			"name":      c.Name,
			"phone":     c.Phone,
			"visits":    c.Visits,
			"lastVisit": c.LastVisit.Format(dateLayout),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h CustomerHandler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.Repo.Get(r.Context(), chi.URLParam(r, "plate"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"plate":     c.Plate,
		"name":      c.Name,
		"phone":     c.Phone,
		"visits":    c.Visits,
		"lastVisit": c.LastVisit.Format(dateLayout),
	})
}

// retention lists everyone with days since their last visit; quiet
// customers get a prefilled reminder link.
func (h CustomerHandler) retention(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context(), 500)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	now := time.Now()
	resp := make([]map[string]any, 0, len(items))
	for _, c := range items {
		daysAway := int(now.Sub(c.LastVisit).Hours() / 24)
		entry := map[string]any{
			"plate":    c.Plate,
			"name":     c.Name,
			"visits":   c.Visits,
			"daysAway": daysAway,
			"mia":      daysAway >= miaAfterDays,
		}
		if daysAway >= miaAfterDays && c.Phone != "" {
			entry["reminderLink"] = h.WhatsApp.VisitReminder(c.Phone, c.Name)
		}
		resp = append(resp, entry)
	}
	writeJSON(w, http.StatusOK, resp)
}
