// file: internal/server/review_service.go
// version: 1.1.0
// guid: 0b1c2d3e-4f5a-4b6c-9d7e-8f9a0b1c2d3e

package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/database"
	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/models"
	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/server/middleware"
)

// ReviewService manages movie reviews and keeps the denormalized
// average rating on each movie in sync.
type ReviewService struct {
	store database.Store
}

// NewReviewService creates a new review service
func NewReviewService(store database.Store) *ReviewService {
	return &ReviewService{store: store}
}

// ListForMovie returns reviews for a movie, newest first.
func (rs *ReviewService) ListForMovie(movieID string, limit, offset int) ([]models.Review, error) {
	if limit < 1 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return rs.store.GetReviewsByMovieID(movieID, limit, offset)
}

// Create stores a review and recomputes the movie's average rating.
func (rs *ReviewService) Create(review *models.Review) (*models.Review, error) {
	if review.Rating < 0 || review.Rating > 10 {
		return nil, fmt.Errorf("rating must be between 0 and 10")
	}
	review.Text = strings.TrimSpace(review.Text)

	created, err := rs.store.CreateReview(review)
	if err != nil {
		return nil, err
	}

	if err := rs.refreshMovieRating(review.MovieID); err != nil {
		log.Printf("[WARNING] failed to refresh rating for movie %s: %v", review.MovieID, err)
	}

	return created, nil
}

// Delete removes a review and recomputes the movie's average rating.
func (rs *ReviewService) Delete(id string) error {
	review, err := rs.store.GetReviewByID(id)
	if err != nil {
		return err
	}
	if review == nil {
		return fmt.Errorf("review not found")
	}

	if err := rs.store.DeleteReview(id); err != nil {
		return err
	}

	if err := rs.refreshMovieRating(review.MovieID); err != nil {
		log.Printf("[WARNING] failed to refresh rating for movie %s: %v", review.MovieID, err)
	}
	return nil
}

func (rs *ReviewService) refreshMovieRating(movieID string) error {
	avg, count, err := rs.store.AverageRatingForMovie(movieID)
	if err != nil {
		return err
	}
	return rs.store.SetMovieRating(movieID, avg, count)
}

// listReviews handles GET /api/v1/movies/:id/reviews
func (s *Server) listReviews(c *gin.Context) {
	movieID := c.Param("id")

	movie, err := s.store.GetMovieByID(movieID)
	if err != nil {
		RespondWithInternalError(c, "failed to fetch movie")
		return
	}
	if movie == nil {
		RespondWithNotFound(c, "movie", movieID)
		return
	}

	params := ParsePaginationParams(c)
	reviews, err := s.reviews.ListForMovie(movieID, params.Limit, params.Offset)
	if err != nil {
		RespondWithInternalError(c, "failed to list reviews")
		return
	}

	RespondWithList(c, reviews, len(reviews), params.Limit, params.Offset)
}

// createReviewRequest is the payload for POST /movies/:id/reviews
type createReviewRequest struct {
	Rating float64 `json:"rating" binding:"required"`
	Text   string  `json:"text"`
	UserID string  `json:"user_id"`
}

// createReview handles POST /api/v1/movies/:id/reviews
func (s *Server) createReview(c *gin.Context) {
	movieID := c.Param("id")

	movie, err := s.store.GetMovieByID(movieID)
	if err != nil {
		RespondWithInternalError(c, "failed to fetch movie")
		return
	}
	if movie == nil {
		RespondWithNotFound(c, "movie", movieID)
		return
	}

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleBindError(c, err)
		return
	}

	userID := req.UserID
	if user := middleware.CurrentUser(c); user != nil {
		userID = user.ID
	}

	review := &models.Review{
		MovieID: movieID,
		UserID:  userID,
		Rating:  req.Rating,
		Text:    req.Text,
	}

	created, err := s.reviews.Create(review)
	if err != nil {
		RespondWithBadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusCreated, created)
}

// deleteReview handles DELETE /api/v1/reviews/:id
func (s *Server) deleteReview(c *gin.Context) {
	id := c.Param("id")

	if err := s.reviews.Delete(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			RespondWithNotFound(c, "review", id)
			return
		}
		RespondWithInternalError(c, "failed to delete review")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "review deleted", "id": id})
}
