package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

var (
	requests     *prometheus.CounterVec //nolint:gochecknoglobals
	requestsOnce sync.Once              //nolint:gochecknoglobals
)

func registerMetrics() {
	requestsOnce.Do(func() {
		requests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settings_cache_requests_total",
				Help: "Number of settings cache lookups, differentiated by backend and result.",
			},
			[]string{"backend", "result"},
		)
	})
}

func observe(backend, result string) {
	requests.WithLabelValues(backend, result).Inc()
}
