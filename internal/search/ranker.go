// file: internal/search/ranker.go
// version: 1.1.0
// guid: 7a1b4c2d-8e3f-4a5b-9c6d-0e1f2a3b4c5d

package search

import (
	"errors"
	"math"
	"sort"
	"strings"
)

// ErrEmptyQuery is returned when Rank is called with an empty or
// whitespace-only query. Callers are expected to validate the query
// before invoking the ranker.
var ErrEmptyQuery = errors.New("search: empty query")

// DefaultLimit is used when the caller does not supply a positive limit.
const DefaultLimit = 10

// Weights holds the ranking calibration constants. These are tuned product
// parameters: the three weights sum to 1, the anchor fixes the popularity
// scale independently of the candidate set, and the threshold is the hard
// similarity gate below which rating and popularity never rescue a match.
type Weights struct {
	SimilarityWeight    float64 `json:"similarity_weight" mapstructure:"similarity_weight"`
	RatingWeight        float64 `json:"rating_weight" mapstructure:"rating_weight"`
	PopularityWeight    float64 `json:"popularity_weight" mapstructure:"popularity_weight"`
	PopularityAnchor    float64 `json:"popularity_anchor" mapstructure:"popularity_anchor"`
	SimilarityThreshold float64 `json:"similarity_threshold" mapstructure:"similarity_threshold"`
}

// DefaultWeights returns the production calibration.
func DefaultWeights() Weights {
	return Weights{
		SimilarityWeight:    0.5,
		RatingWeight:        0.3,
		PopularityWeight:    0.2,
		PopularityAnchor:    10000,
		SimilarityThreshold: 0.4,
	}
}

// Candidate is the read-only movie view the ranker scores. The caller owns
// the record; the ranker never mutates it.
type Candidate struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Cast       []string `json:"cast,omitempty"`
	Directors  []string `json:"directors,omitempty"`
	Rating     float64  `json:"rating"`
	WatchCount int      `json:"watch_count"`
}

// ScoredResult is a candidate plus its computed similarity and hybrid score.
// Scores are full precision; rounding for presentation is the caller's job.
type ScoredResult struct {
	Candidate
	Similarity  float64 `json:"similarity"`
	HybridScore float64 `json:"hybrid_score"`
}

// Ranker combines text similarity with rating and popularity signals into a
// single relevance ordering. It is stateless and safe for concurrent use.
type Ranker struct {
	weights Weights
}

// NewRanker creates a ranker with the given weights.
func NewRanker(w Weights) *Ranker {
	return &Ranker{weights: w}
}

// NewDefaultRanker creates a ranker with the production calibration.
func NewDefaultRanker() *Ranker {
	return NewRanker(DefaultWeights())
}

// Weights returns the ranker's calibration.
func (r *Ranker) Weights() Weights {
	return r.weights
}

// TitleSimilarity scores the query against the candidate's title.
func (r *Ranker) TitleSimilarity(c Candidate, query string) float64 {
	return Similarity(query, c.Title)
}

// CastDirectorScore returns the best similarity between the query and any
// cast or director name. Best, not average: one strong contributor match
// should not be diluted by a long cast list.
func (r *Ranker) CastDirectorScore(c Candidate, query string) float64 {
	best := 0.0
	for _, name := range c.Cast {
		if s := Similarity(query, name); s > best {
			best = s
		}
	}
	for _, name := range c.Directors {
		if s := Similarity(query, name); s > best {
			best = s
		}
	}
	return best
}

// NormalizeRating maps a 0-10 rating onto [0, 1]. Negative or non-finite
// input normalizes to 0, out-of-range high values clamp to 1.
func (r *Ranker) NormalizeRating(rating float64) float64 {
	if rating < 0 || math.IsNaN(rating) || math.IsInf(rating, 0) {
		return 0
	}
	return math.Min(rating/10, 1)
}

// NormalizePopularity maps a watch count onto [0, 1] on a log scale. View
// counts are heavy-tailed; the log keeps a handful of very popular titles
// from dominating while still rewarding growth at the low end. The anchor
// is fixed rather than derived from the candidate set so scores are stable
// across result sets.
func (r *Ranker) NormalizePopularity(watchCount int) float64 {
	if watchCount <= 0 {
		return 0
	}
	return math.Min(math.Log(float64(watchCount)+1)/math.Log(r.weights.PopularityAnchor), 1)
}

// similarity is the textual match strength used for both the gate and the
// score: the better of the title match and the best cast/director match.
func (r *Ranker) similarity(c Candidate, query string) float64 {
	return math.Max(r.TitleSimilarity(c, query), r.CastDirectorScore(c, query))
}

// HybridScore computes the weighted combination of similarity, rating and
// popularity for a single candidate.
func (r *Ranker) HybridScore(c Candidate, query string) float64 {
	return r.scoreWithSimilarity(c, r.similarity(c, query))
}

func (r *Ranker) scoreWithSimilarity(c Candidate, sim float64) float64 {
	return r.weights.SimilarityWeight*sim +
		r.weights.RatingWeight*r.NormalizeRating(c.Rating) +
		r.weights.PopularityWeight*r.NormalizePopularity(c.WatchCount)
}

// Rank scores every candidate, drops those at or below the similarity gate,
// sorts by hybrid score descending and truncates to limit. The sort is
// stable: candidates with equal scores keep their input order, so the
// caller's fetch order decides ties. A non-positive limit falls back to
// DefaultLimit.
func (r *Ranker) Rank(candidates []Candidate, query string, limit int) ([]ScoredResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	results := make([]ScoredResult, 0, len(candidates))
	for _, c := range candidates {
		sim := r.similarity(c, query)
		if sim <= r.weights.SimilarityThreshold {
			continue
		}
		results = append(results, ScoredResult{
			Candidate:   c,
			Similarity:  sim,
			HybridScore: r.scoreWithSimilarity(c, sim),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].HybridScore > results[j].HybridScore
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
