package jobs

import (
	log "github.com/sirupsen/logrus"

	"github.com/pharmatrace/dashboard-api/models/stats"
)

// StatsCacheRefresher keeps the dashboard stats cache warm so the
// dashboard never pays the aggregation cost on a request.
type StatsCacheRefresher struct{}

// NewStatsCacheRefresher creates a StatsCacheRefresher
func NewStatsCacheRefresher() *StatsCacheRefresher {
	return &StatsCacheRefresher{}
}

// Run recomputes the dashboard stats and rewrites the cache. Implements
// cron.Job.
func (s *StatsCacheRefresher) Run() {
	d, err := stats.Refresh()
	if err != nil {
		log.WithError(err).Error("Dashboard stats cache refresh failed")
		return
	}

	log.WithFields(log.Fields{
		"users":        d.Users.Total,
		"transactions": d.Transactions.Total,
	}).Info("Dashboard stats cache refreshed")
}
