package stats

import (
	"encoding/json"

	"github.com/gomodule/redigo/redis"

	"github.com/pharmatrace/dashboard-api/connections"
)

// The Redis key for cached dashboard stats
const cacheKey = "cache:dashboard_stats"

// How long a cached snapshot stays valid between refreshes
const cacheTTLSeconds = 600

// FromCache returns the cached dashboard snapshot, if one is warm.
func FromCache() (*Dashboard, bool) {
	conn := connections.Redis()
	defer conn.Close()

	data, err := redis.Bytes(conn.Do("GET", cacheKey))
	if err != nil {
		return nil, false
	}

	var d Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, false
	}
	return &d, true
}

// SaveCache stores a dashboard snapshot with a TTL.
func SaveCache(d *Dashboard) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}

	conn := connections.Redis()
	defer conn.Close()

	_, err = conn.Do("SETEX", cacheKey, cacheTTLSeconds, data)
	return err
}

// Refresh recomputes the dashboard stats and rewrites the cache.
func Refresh() (*Dashboard, error) {
	d, err := new(Postgres).Compute()
	if err != nil {
		return nil, err
	}
	if err := SaveCache(d); err != nil {
		return nil, err
	}
	return d, nil
}
