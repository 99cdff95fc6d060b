// file: internal/server/search_service.go
// version: 1.3.0
// guid: 3e4f5a6b-7c8d-4e9f-0a1b-2c3d4e5f6a7b

package server

import (
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/config"
	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/database"
	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/metrics"
	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/models"
	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/search"
)

// defaultMaxCandidates bounds the candidate set when configuration does
// not provide one.
const defaultMaxCandidates = 5000

// defaultSuggestLimit is how many typeahead entries are returned.
const defaultSuggestLimit = 8

// SearchService runs ranked catalog searches and typeahead suggestions.
type SearchService struct {
	store  database.Store
	ranker *search.Ranker
}

// NewSearchService creates a search service using the given ranker.
func NewSearchService(store database.Store, ranker *search.Ranker) *SearchService {
	return &SearchService{store: store, ranker: ranker}
}

// Search scores the catalog against the query and returns up to limit
// results ordered by hybrid score. Scores in the response are rounded to
// two decimals; the ranker itself works at full precision.
func (ss *SearchService) Search(query string, limit int) (*models.SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, search.ErrEmptyQuery
	}
	if limit < 1 {
		limit = config.AppConfig.Search.DefaultLimit
	}
	if limit < 1 {
		limit = search.DefaultLimit
	}

	maxCandidates := config.AppConfig.Search.MaxCandidates
	if maxCandidates < 1 {
		maxCandidates = defaultMaxCandidates
	}

	movies, err := ss.store.GetAllMovies(maxCandidates, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	byID := make(map[string]models.Movie, len(movies))
	candidates := make([]search.Candidate, 0, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
		candidates = append(candidates, search.Candidate{
			ID:         m.ID,
			Title:      m.Title,
			Cast:       m.Cast,
			Directors:  m.Directors,
			Rating:     m.Rating,
			WatchCount: m.WatchCount,
		})
	}

	scored, err := ss.ranker.Rank(candidates, query, limit)
	if err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(scored))
	for _, sr := range scored {
		movie, ok := byID[sr.ID]
		if !ok {
			continue
		}
		results = append(results, models.SearchResult{
			Movie:       movie,
			Similarity:  round2(sr.Similarity),
			HybridScore: round2(sr.HybridScore),
		})
	}

	return &models.SearchResponse{
		Query:   query,
		Results: results,
		Count:   len(results),
		Limit:   limit,
	}, nil
}

// Suggest returns up to limit title suggestions for a typeahead prefix,
// best fuzzy matches first.
func (ss *SearchService) Suggest(prefix string, limit int) ([]models.Suggestion, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []models.Suggestion{}, nil
	}
	if limit < 1 {
		limit = defaultSuggestLimit
	}

	suggestions, err := ss.store.AllMovieTitles()
	if err != nil {
		return nil, fmt.Errorf("failed to load titles: %w", err)
	}

	titles := make([]string, len(suggestions))
	for i, s := range suggestions {
		titles[i] = s.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(prefix, titles)
	sort.Stable(ranks)

	matched := make([]models.Suggestion, 0, limit)
	for _, r := range ranks {
		matched = append(matched, suggestions[r.OriginalIndex])
		if len(matched) >= limit {
			break
		}
	}
	return matched, nil
}

// round2 rounds a score to two decimal places for presentation.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// searchMovies handles GET /api/v1/search
func (s *Server) searchMovies(c *gin.Context) {
	query := c.Query("q")
	limit := ParseQueryInt(c, "limit", 0)

	start := time.Now()
	response, err := s.search.Search(query, limit)
	if err != nil {
		if err == search.ErrEmptyQuery {
			RespondWithValidationError(c, "q", "query cannot be blank")
			return
		}
		RespondWithInternalError(c, "search failed")
		return
	}

	metrics.IncSearches()
	metrics.ObserveSearchDuration(time.Since(start))
	metrics.ObserveSearchResults(response.Count)

	c.JSON(http.StatusOK, response)
}

// suggestTitles handles GET /api/v1/search/suggest
func (s *Server) suggestTitles(c *gin.Context) {
	prefix := c.Query("q")
	limit := ParseQueryInt(c, "limit", defaultSuggestLimit)

	matches, err := s.search.Suggest(prefix, limit)
	if err != nil {
		RespondWithInternalError(c, "suggest failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":       prefix,
		"suggestions": matches,
		"count":       len(matches),
	})
}
