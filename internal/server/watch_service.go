// file: internal/server/watch_service.go
// version: 1.1.0
// guid: 1c2d3e4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f

package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/database"
	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/metrics"
	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/models"
	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/server/middleware"
)

// WatchService records playback events and maintains per-movie watch
// counts used by the popularity term of the ranker.
type WatchService struct {
	store database.Store
}

// NewWatchService creates a new watch service
func NewWatchService(store database.Store) *WatchService {
	return &WatchService{store: store}
}

// Record stores a watch event and bumps the movie's watch count.
func (ws *WatchService) Record(userID, movieID string, progress *int) (*models.WatchEvent, error) {
	movie, err := ws.store.GetMovieByID(movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, fmt.Errorf("movie not found: %s", movieID)
	}

	event := &models.WatchEvent{
		MovieID:  movieID,
		UserID:   userID,
		Progress: progress,
	}
	created, err := ws.store.AddWatchEvent(event)
	if err != nil {
		return nil, err
	}

	if err := ws.store.IncrementWatchCount(movieID); err != nil {
		return nil, fmt.Errorf("failed to increment watch count: %w", err)
	}

	metrics.IncWatchEvents()
	return created, nil
}

// History returns a user's watch events, newest first.
func (ws *WatchService) History(userID string, limit, offset int) ([]models.WatchEvent, error) {
	if limit < 1 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return ws.store.GetWatchHistory(userID, limit, offset)
}

// recordWatchRequest is the payload for POST /watch
type recordWatchRequest struct {
	MovieID  string `json:"movie_id" binding:"required"`
	Progress *int   `json:"progress"`
}

// recordWatch handles POST /api/v1/watch
func (s *Server) recordWatch(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		RespondWithUnauthorized(c, "authentication required")
		return
	}

	var req recordWatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleBindError(c, err)
		return
	}

	event, err := s.watch.Record(user.ID, req.MovieID, req.Progress)
	if err != nil {
		if strings.Contains(err.Error(), "movie not found") {
			RespondWithNotFound(c, "movie", req.MovieID)
			return
		}
		RespondWithInternalError(c, "failed to record watch event")
		return
	}

	c.JSON(http.StatusCreated, event)
}

// watchHistory handles GET /api/v1/users/:id/history
func (s *Server) watchHistory(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		RespondWithUnauthorized(c, "authentication required")
		return
	}

	userID := c.Param("id")
	if userID != user.ID {
		RespondWithForbidden(c, "cannot view another user's history")
		return
	}

	params := ParsePaginationParams(c)
	events, err := s.watch.History(userID, params.Limit, params.Offset)
	if err != nil {
		RespondWithInternalError(c, "failed to fetch watch history")
		return
	}

	RespondWithList(c, events, len(events), params.Limit, params.Offset)
}
