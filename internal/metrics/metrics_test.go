// file: internal/metrics/metrics_test.go
// version: 1.0.0
// guid: 5d6e7f8a-9b0c-4d1e-8f2a-3b4c5d6e7f8b

package metrics

import (
	"testing"
	"time"
)

func TestRegisterIdempotent(t *testing.T) {
	// Must not panic on repeat registration
	Register()
	Register()
}

func TestHelpersDoNotPanic(t *testing.T) {
	Register()
	IncSearches()
	ObserveSearchDuration(12 * time.Millisecond)
	ObserveSearchResults(7)
	IncWatchEvents()
	IncRequest("GET", "2xx")
	SetMovies(100)
	SetUsers(5)
}
