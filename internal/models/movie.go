// file: internal/models/movie.go
// version: 1.1.0
// guid: 5d6e7f8a-9b0c-4d1e-8f2a-3b4c5d6e7f8a

package models

import "time"

// Movie represents a movie in the catalog
type Movie struct {
	ID          string     `json:"id"` // ULID format
	Title       string     `json:"title"`
	Plot        *string    `json:"plot,omitempty"`
	Genres      []string   `json:"genres,omitempty"`
	Cast        []string   `json:"cast,omitempty"`
	Directors   []string   `json:"directors,omitempty"`
	Year        *int       `json:"year,omitempty"`
	Runtime     *int       `json:"runtime,omitempty"` // minutes
	Rating      float64    `json:"rating"`            // 0-10, average of review ratings
	ReviewCount int        `json:"review_count"`
	WatchCount  int        `json:"watch_count"`
	PosterURL   *string    `json:"poster_url,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// User represents a platform account
type User struct {
	ID           string    `json:"id"` // ULID format
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Status       string    `json:"status"` // active, disabled
	CreatedAt    time.Time `json:"created_at"`
}

// Session represents an authenticated session token
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
}

// Review represents a user's review of a movie
type Review struct {
	ID        string    `json:"id"` // ULID format
	MovieID   string    `json:"movie_id"`
	UserID    string    `json:"user_id"`
	Rating    float64   `json:"rating"` // 0-10
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// WatchEvent represents a single playback of a movie by a user
type WatchEvent struct {
	ID        string    `json:"id"` // ULID format
	MovieID   string    `json:"movie_id"`
	UserID    string    `json:"user_id"`
	WatchedAt time.Time `json:"watched_at"`
	Progress  *int      `json:"progress,omitempty"` // seconds into the movie
}

// MovieListRequest represents pagination and filtering for the movie list
type MovieListRequest struct {
	Limit  int    `json:"limit" form:"limit"`
	Offset int    `json:"offset" form:"offset"`
	Search string `json:"search" form:"search"`
	Genre  string `json:"genre" form:"genre"`
	Year   int    `json:"year" form:"year"`
}

// MovieUpdateRequest represents a partial movie update
type MovieUpdateRequest struct {
	Title     *string  `json:"title,omitempty"`
	Plot      *string  `json:"plot,omitempty"`
	Genres    []string `json:"genres,omitempty"`
	Cast      []string `json:"cast,omitempty"`
	Directors []string `json:"directors,omitempty"`
	Year      *int     `json:"year,omitempty"`
	Runtime   *int     `json:"runtime,omitempty"`
	PosterURL *string  `json:"poster_url,omitempty"`
}

// SearchResult is a movie plus its presentation-rounded ranking scores
type SearchResult struct {
	Movie       Movie   `json:"movie"`
	Similarity  float64 `json:"similarity"`
	HybridScore float64 `json:"hybrid_score"`
}

// SearchResponse is the payload of the ranked search endpoint
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Count   int            `json:"count"`
	Limit   int            `json:"limit"`
}

// Suggestion is a typeahead entry for the suggest endpoint
type Suggestion struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
