// file: internal/server/movie_service.go
// version: 1.2.0
// guid: 9a0b1c2d-3e4f-4a5b-8c6d-7e8f9a0b1c2d

package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/database"
	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/models"
)

// MovieService handles catalog operations on top of the store.
type MovieService struct {
	store database.Store
}

// NewMovieService creates a new movie service
func NewMovieService(store database.Store) *MovieService {
	return &MovieService{store: store}
}

// List returns movies matching the request filters. Search and genre
// filters are mutually exclusive; search wins when both are set.
func (ms *MovieService) List(req models.MovieListRequest) ([]models.Movie, error) {
	if req.Limit < 1 {
		req.Limit = 50
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	var (
		movies []models.Movie
		err    error
	)
	switch {
	case strings.TrimSpace(req.Search) != "":
		movies, err = ms.store.SearchMovies(req.Search, req.Limit, req.Offset)
	case strings.TrimSpace(req.Genre) != "":
		movies, err = ms.store.ListMoviesByGenre(req.Genre, req.Limit, req.Offset)
	default:
		movies, err = ms.store.GetAllMovies(req.Limit, req.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	if req.Year > 0 {
		filtered := movies[:0]
		for _, m := range movies {
			if m.Year != nil && *m.Year == req.Year {
				filtered = append(filtered, m)
			}
		}
		movies = filtered
	}

	return movies, nil
}

// Get returns a single movie by ID, or nil when absent.
func (ms *MovieService) Get(id string) (*models.Movie, error) {
	return ms.store.GetMovieByID(id)
}

// Create validates and stores a new movie.
func (ms *MovieService) Create(movie *models.Movie) (*models.Movie, error) {
	movie.Title = strings.TrimSpace(movie.Title)
	if movie.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if movie.Rating < 0 || movie.Rating > 10 {
		return nil, fmt.Errorf("rating must be between 0 and 10")
	}
	if movie.WatchCount < 0 {
		movie.WatchCount = 0
	}
	return ms.store.CreateMovie(movie)
}

// Update applies a partial update to an existing movie.
func (ms *MovieService) Update(id string, req models.MovieUpdateRequest) (*models.Movie, error) {
	existing, err := ms.store.GetMovieByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("title cannot be empty")
		}
		existing.Title = title
	}
	if req.Plot != nil {
		existing.Plot = req.Plot
	}
	if req.Genres != nil {
		existing.Genres = req.Genres
	}
	if req.Cast != nil {
		existing.Cast = req.Cast
	}
	if req.Directors != nil {
		existing.Directors = req.Directors
	}
	if req.Year != nil {
		existing.Year = req.Year
	}
	if req.Runtime != nil {
		existing.Runtime = req.Runtime
	}
	if req.PosterURL != nil {
		existing.PosterURL = req.PosterURL
	}

	return ms.store.UpdateMovie(id, existing)
}

// Delete removes a movie by ID.
func (ms *MovieService) Delete(id string) error {
	return ms.store.DeleteMovie(id)
}

// Count returns the total number of movies in the catalog.
func (ms *MovieService) Count() (int, error) {
	return ms.store.CountMovies()
}

// listMovies handles GET /api/v1/movies
func (s *Server) listMovies(c *gin.Context) {
	var req models.MovieListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		RespondWithBadRequest(c, "invalid query parameters: "+err.Error())
		return
	}
	if req.Limit < 1 {
		req.Limit = 50
	}
	if req.Limit > 1000 {
		req.Limit = 1000
	}

	movies, err := s.movies.List(req)
	if err != nil {
		RespondWithInternalError(c, "failed to list movies")
		return
	}

	RespondWithList(c, movies, len(movies), req.Limit, req.Offset)
}

// getMovie handles GET /api/v1/movies/:id
func (s *Server) getMovie(c *gin.Context) {
	id := c.Param("id")

	movie, err := s.movies.Get(id)
	if err != nil {
		RespondWithInternalError(c, "failed to fetch movie")
		return
	}
	if movie == nil {
		RespondWithNotFound(c, "movie", id)
		return
	}

	c.JSON(http.StatusOK, movie)
}

// createMovie handles POST /api/v1/movies
func (s *Server) createMovie(c *gin.Context) {
	var movie models.Movie
	if err := c.ShouldBindJSON(&movie); err != nil {
		HandleBindError(c, err)
		return
	}

	created, err := s.movies.Create(&movie)
	if err != nil {
		RespondWithBadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusCreated, created)
}

// updateMovie handles PUT /api/v1/movies/:id
func (s *Server) updateMovie(c *gin.Context) {
	id := c.Param("id")

	var req models.MovieUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleBindError(c, err)
		return
	}

	updated, err := s.movies.Update(id, req)
	if err != nil {
		RespondWithBadRequest(c, err.Error())
		return
	}
	if updated == nil {
		RespondWithNotFound(c, "movie", id)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// deleteMovie handles DELETE /api/v1/movies/:id
func (s *Server) deleteMovie(c *gin.Context) {
	id := c.Param("id")

	existing, err := s.movies.Get(id)
	if err != nil {
		RespondWithInternalError(c, "failed to fetch movie")
		return
	}
	if existing == nil {
		RespondWithNotFound(c, "movie", id)
		return
	}

	if err := s.movies.Delete(id); err != nil {
		RespondWithInternalError(c, "failed to delete movie")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "movie deleted", "id": id})
}

// countMovies handles GET /api/v1/movies/count
func (s *Server) countMovies(c *gin.Context) {
	count, err := s.movies.Count()
	if err != nil {
		RespondWithInternalError(c, "failed to count movies")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
