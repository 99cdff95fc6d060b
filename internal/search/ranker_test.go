// file: internal/search/ranker_test.go
// version: 1.1.0
// guid: 2c3d4e5f-6a7b-4c8d-9e0f-1a2b3c4d5e6f

package search

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	if sum := w.SimilarityWeight + w.RatingWeight + w.PopularityWeight; !approxEqual(sum, 1.0, 1e-9) {
		t.Errorf("weights sum to %v, want 1", sum)
	}
	if w.PopularityAnchor != 10000 {
		t.Errorf("anchor = %v, want 10000", w.PopularityAnchor)
	}
	if w.SimilarityThreshold != 0.4 {
		t.Errorf("threshold = %v, want 0.4", w.SimilarityThreshold)
	}
}

func TestNormalizeRating(t *testing.T) {
	r := NewDefaultRanker()
	tests := []struct {
		rating float64
		want   float64
	}{
		{0, 0},
		{5, 0.5},
		{9.2, 0.92},
		{10, 1},
		{15, 1},  // above-domain clamps
		{-3, 0},  // negative normalizes to zero
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		got := r.NormalizeRating(tt.rating)
		if !approxEqual(got, tt.want, 1e-9) {
			t.Errorf("NormalizeRating(%v) = %v, want %v", tt.rating, got, tt.want)
		}
	}
}

func TestNormalizePopularity(t *testing.T) {
	r := NewDefaultRanker()
	if got := r.NormalizePopularity(0); got != 0 {
		t.Errorf("NormalizePopularity(0) = %v, want 0", got)
	}
	if got := r.NormalizePopularity(-5); got != 0 {
		t.Errorf("NormalizePopularity(-5) = %v, want 0", got)
	}
	if got := r.NormalizePopularity(9998); got >= 1 {
		t.Errorf("NormalizePopularity(9998) = %v, want < 1", got)
	}
	// ln(9999+1)/ln(10000) is exactly 1: the anchor saturates here
	if got := r.NormalizePopularity(9999); got != 1 {
		t.Errorf("NormalizePopularity(9999) = %v, want 1", got)
	}
	if got := r.NormalizePopularity(10_000_000); got != 1 {
		t.Errorf("NormalizePopularity(10M) = %v, want clamp to 1", got)
	}
}

func TestNormalizePopularity_Monotonic(t *testing.T) {
	r := NewDefaultRanker()
	counts := []int{0, 1, 2, 10, 100, 1523, 9999, 10000, 100000}
	prev := -1.0
	for _, w := range counts {
		got := r.NormalizePopularity(w)
		if got < prev {
			t.Errorf("NormalizePopularity(%d) = %v < previous %v", w, got, prev)
		}
		prev = got
	}
}

func TestCastDirectorScore(t *testing.T) {
	r := NewDefaultRanker()
	c := Candidate{
		Title:     "Cloud Atlas",
		Cast:      []string{"Tom Hanks", "Halle Berry"},
		Directors: []string{"Lana Wachowski"},
	}
	if got := r.CastDirectorScore(c, "Tom Hanks"); got != 1.0 {
		t.Errorf("CastDirectorScore = %v, want 1.0", got)
	}
	if got := r.CastDirectorScore(Candidate{Title: "No People"}, "Tom Hanks"); got != 0 {
		t.Errorf("CastDirectorScore with no names = %v, want 0", got)
	}
}

func TestHybridScore_EndToEnd(t *testing.T) {
	r := NewDefaultRanker()
	c := Candidate{Title: "The Godfather", Rating: 9.2, WatchCount: 1523}

	if sim := r.TitleSimilarity(c, "Godfather"); sim != 1.0 {
		t.Fatalf("similarity = %v, want 1.0", sim)
	}
	wantPop := math.Log(1524) / math.Log(10000)
	if got := r.NormalizePopularity(1523); !approxEqual(got, wantPop, 1e-9) {
		t.Errorf("popularity = %v, want %v", got, wantPop)
	}

	want := 0.5*1.0 + 0.3*0.92 + 0.2*wantPop
	got := r.HybridScore(c, "Godfather")
	if !approxEqual(got, want, 1e-9) {
		t.Errorf("HybridScore = %v, want %v", got, want)
	}
	// Regression anchor from the production calibration
	if !approxEqual(got, 0.935, 0.002) {
		t.Errorf("HybridScore = %v, want ~0.935", got)
	}
}

func TestRank_EmptyQuery(t *testing.T) {
	r := NewDefaultRanker()
	if _, err := r.Rank([]Candidate{{Title: "Anything"}}, "   ", 10); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestRank_FilterGate(t *testing.T) {
	r := NewDefaultRanker()
	// Disjoint title, no cast: similarity 0 no matter how strong the
	// rating and popularity signals are.
	candidates := []Candidate{
		{ID: "noise", Title: "zzzzzzzz", Rating: 10, WatchCount: 1000000},
		{ID: "hit", Title: "The Godfather", Rating: 9.2, WatchCount: 1523},
	}
	results, err := r.Rank(candidates, "Godfather", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ID != "hit" {
		t.Errorf("expected hit, got %s", results[0].ID)
	}
}

func TestRank_GateIsHard(t *testing.T) {
	// A candidate sitting just below the threshold must never appear.
	r := NewDefaultRanker()
	// "abcdefghij" vs "abcdzzzzzz": distance 6, len 10 -> similarity 0.4,
	// which does not clear the strict > 0.4 gate.
	c := Candidate{ID: "border", Title: "abcdzzzzzz", Rating: 10, WatchCount: 1000000}
	if sim := r.TitleSimilarity(c, "abcdefghij"); !approxEqual(sim, 0.4, 1e-9) {
		t.Fatalf("setup: similarity = %v, want 0.4", sim)
	}
	results, err := r.Rank([]Candidate{c}, "abcdefghij", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("threshold candidate leaked into results: %+v", results)
	}
}

func TestRank_Ordering(t *testing.T) {
	r := NewDefaultRanker()
	candidates := []Candidate{
		{ID: "low", Title: "Godfather", Rating: 2.0, WatchCount: 3},
		{ID: "high", Title: "Godfather", Rating: 9.5, WatchCount: 50000},
		{ID: "mid", Title: "Godfather", Rating: 6.0, WatchCount: 100},
	}
	results, err := r.Rank(candidates, "Godfather", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].HybridScore > results[i-1].HybridScore {
			t.Errorf("not sorted: score[%d]=%v > score[%d]=%v",
				i, results[i].HybridScore, i-1, results[i-1].HybridScore)
		}
	}
	if results[0].ID != "high" || results[2].ID != "low" {
		t.Errorf("unexpected order: %s, %s, %s", results[0].ID, results[1].ID, results[2].ID)
	}
}

func TestRank_StableTies(t *testing.T) {
	r := NewDefaultRanker()
	// Identical scoring inputs: input order must be preserved.
	candidates := []Candidate{
		{ID: "first", Title: "Godfather", Rating: 7, WatchCount: 42},
		{ID: "second", Title: "Godfather", Rating: 7, WatchCount: 42},
		{ID: "third", Title: "Godfather", Rating: 7, WatchCount: 42},
	}
	results, err := r.Rank(candidates, "Godfather", 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"first", "second", "third"}
	for i, id := range want {
		if results[i].ID != id {
			t.Errorf("tie order broken at %d: got %s, want %s", i, results[i].ID, id)
		}
	}
}

func TestRank_Truncation(t *testing.T) {
	r := NewDefaultRanker()
	var candidates []Candidate
	for i := 0; i < 25; i++ {
		candidates = append(candidates, Candidate{
			ID:    fmt.Sprintf("m%d", i),
			Title: "Godfather",
		})
	}

	results, err := r.Rank(candidates, "Godfather", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 5 {
		t.Errorf("limit 5: got %d results", len(results))
	}

	// Non-positive limit falls back to the default of 10.
	results, err = r.Rank(candidates, "Godfather", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != DefaultLimit {
		t.Errorf("limit 0: got %d results, want %d", len(results), DefaultLimit)
	}
	results, err = r.Rank(candidates, "Godfather", -7)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != DefaultLimit {
		t.Errorf("limit -7: got %d results, want %d", len(results), DefaultLimit)
	}
}

func TestRank_CastFallback(t *testing.T) {
	r := NewDefaultRanker()
	c := Candidate{
		ID:    "castmatch",
		Title: "Completely Unrelated Name",
		Cast:  []string{"Tom Hanks"},
	}
	results, err := r.Rank([]Candidate{c}, "Tom Hanks", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("cast match filtered out")
	}
	if results[0].Similarity != 1.0 {
		t.Errorf("similarity = %v, want 1.0 from cast fallback", results[0].Similarity)
	}
}

func TestRank_MissingTitle(t *testing.T) {
	r := NewDefaultRanker()
	// Empty title contributes 0; the director match rescues the candidate.
	c := Candidate{ID: "notitle", Directors: []string{"Francis Ford Coppola"}}
	results, err := r.Rank([]Candidate{c}, "Coppola", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected director rescue, got %d results", len(results))
	}
}
