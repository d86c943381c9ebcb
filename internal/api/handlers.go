package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ajay-gandhi/alfred4.0/internal/db"
)

type orderLine struct {
	UserID     string   `json:"user_id"`
	Restaurant string   `json:"restaurant"`
	Item       string   `json:"item,omitempty"`
	Options    []string `json:"options,omitempty"`
	IsDonor    bool     `json:"is_donor,omitempty"`
}

func (a *API) handleListOrders(w http.ResponseWriter, r *http.Request) {
	lines, err := a.db.ListPendingOrders(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}
	out := make([]orderLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, orderLine{
			UserID:     l.UserID,
			Restaurant: l.Restaurant,
			Item:       l.Item,
			Options:    l.Options,
			IsDonor:    l.IsDonor,
		})
	}
	writeJSON(w, out)
}

func (a *API) handleGetMenu(w http.ResponseWriter, r *http.Request) {
	restaurant := mux.Vars(r)["restaurant"]
	m, err := a.db.GetMenu(r.Context(), restaurant)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no menu for "+restaurant)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load menu")
		return
	}
	writeJSON(w, m)
}

func (a *API) handleGetStats(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	stats, err := a.db.GetUserStats(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	writeJSON(w, map[string]interface{}{
		"user_id":      stats.UserID,
		"order_count":  stats.OrderCount,
		"total_cents":  stats.TotalCents,
		"callee_count": stats.CalleeCount,
		"top_items":    stats.TopItems,
	})
}

// handleRun asks the bot to start an automation run; results land in the
// order channel like a scheduled run's.
func (a *API) handleRun(w http.ResponseWriter, r *http.Request) {
	if a.triggerRun == nil {
		writeError(w, http.StatusServiceUnavailable, "runs are not wired up")
		return
	}
	go a.triggerRun()
	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, map[string]string{"status": "started"})
}
