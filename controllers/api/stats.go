package api

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/julienschmidt/httprouter"

	"github.com/pharmatrace/dashboard-api/auth"
	"github.com/pharmatrace/dashboard-api/models/stats"
)

// DashboardStats returns aggregate counts for the dashboard, served from
// the Redis cache when warm.
func DashboardStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	acc := auth.AccountFromContext(r.Context())
	if acc == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
		return
	}

	if d, ok := stats.FromCache(); ok {
		writeJSON(w, http.StatusOK, d)
		return
	}

	d, err := stats.Refresh()
	if err != nil {
		log.WithError(err).Error("Dashboard stats computation failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch dashboard stats"})
		return
	}

	writeJSON(w, http.StatusOK, d)
}
