// file: internal/metrics/metrics.go
// version: 1.0.1
// guid: 4c5d6e7f-8a9b-4c0d-9e1f-2a3b4c5d6e7f

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	searchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "movie_platform",
		Name:      "searches_total",
		Help:      "Total number of ranked search requests served",
	})
	searchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "movie_platform",
		Name:      "search_duration_seconds",
		Help:      "Histogram of ranked search durations in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // ~1ms up to a few seconds
	})
	searchResults = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "movie_platform",
		Name:      "search_results",
		Help:      "Histogram of result counts returned per ranked search",
		Buckets:   prometheus.LinearBuckets(0, 5, 11),
	})
	watchEvents = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "movie_platform",
		Name:      "watch_events_total",
		Help:      "Total number of watch events recorded",
	})
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "movie_platform",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method and status class",
	}, []string{"method", "status"})

	moviesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "movie_platform",
		Name:      "movies_total",
		Help:      "Current total number of movies in the catalog",
	})
	usersGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "movie_platform",
		Name:      "users_total",
		Help:      "Current total number of registered users",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(searchesTotal, searchDuration, searchResults,
			watchEvents, requestsTotal, moviesGauge, usersGauge)
	})
}

// Search instrumentation
func IncSearches()                             { searchesTotal.Inc() }
func ObserveSearchDuration(d time.Duration)    { searchDuration.Observe(d.Seconds()) }
func ObserveSearchResults(n int)               { searchResults.Observe(float64(n)) }
func IncWatchEvents()                          { watchEvents.Inc() }
func IncRequest(method, statusClass string)    { requestsTotal.WithLabelValues(method, statusClass).Inc() }

// Gauges
func SetMovies(n int) { moviesGauge.Set(float64(n)) }
func SetUsers(n int)  { usersGauge.Set(float64(n)) }
