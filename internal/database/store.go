// file: internal/database/store.go
// version: 1.3.0
// guid: 8e9f0a1b-2c3d-4e5f-9a6b-7c8d9e0f1a2b

package database

import (
	"crypto/rand"
	"fmt"
	"time"

	ulid "github.com/oklog/ulid/v2"

	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/models"
)

// Store defines the interface for catalog persistence.
// This abstraction allows us to support both PebbleDB (default) and
// SQLite3 (opt-in), and to mock storage in tests.
type Store interface {
	// Lifecycle
	Close() error
	Reset() error

	// Movies
	GetAllMovies(limit, offset int) ([]models.Movie, error)
	GetMovieByID(id string) (*models.Movie, error)
	CreateMovie(movie *models.Movie) (*models.Movie, error) // Generates ULID if ID is empty
	UpdateMovie(id string, movie *models.Movie) (*models.Movie, error)
	DeleteMovie(id string) error
	SearchMovies(query string, limit, offset int) ([]models.Movie, error) // title substring prefilter
	ListMoviesByGenre(genre string, limit, offset int) ([]models.Movie, error)
	CountMovies() (int, error)
	IncrementWatchCount(id string) error
	SetMovieRating(id string, rating float64, reviewCount int) error
	AllMovieTitles() ([]models.Suggestion, error)

	// Users & auth
	CreateUser(username, email, passwordHash string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	CountUsers() (int, error)

	// Sessions
	CreateSession(userID, ip, userAgent string, ttl time.Duration) (*models.Session, error)
	GetSession(id string) (*models.Session, error)
	RevokeSession(id string) error

	// Reviews
	CreateReview(review *models.Review) (*models.Review, error)
	GetReviewByID(id string) (*models.Review, error)
	GetReviewsByMovieID(movieID string, limit, offset int) ([]models.Review, error)
	DeleteReview(id string) error
	AverageRatingForMovie(movieID string) (avg float64, count int, err error)

	// Watch history
	AddWatchEvent(event *models.WatchEvent) (*models.WatchEvent, error)
	GetWatchHistory(userID string, limit, offset int) ([]models.WatchEvent, error)
	CountWatchEvents(movieID string) (int, error)
}

// GlobalStore is the application-wide store instance
var GlobalStore Store

// InitializeStore initializes the database store based on configuration
func InitializeStore(dbType, path string) error {
	var err error

	switch dbType {
	case "sqlite", "sqlite3":
		GlobalStore, err = NewSQLiteStore(path)
		if err != nil {
			return fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
	case "pebble", "":
		// PebbleDB is the default
		GlobalStore, err = NewPebbleStore(path)
		if err != nil {
			return fmt.Errorf("failed to initialize PebbleDB store: %w", err)
		}
	default:
		return fmt.Errorf("unsupported database type: %s (supported: pebble, sqlite)", dbType)
	}

	return nil
}

// CloseStore closes the global store
func CloseStore() error {
	if GlobalStore != nil {
		err := GlobalStore.Close()
		GlobalStore = nil
		return err
	}
	return nil
}

// NewULID generates a monotonic, time-sortable identifier. Movie, user,
// review and watch-event IDs are all ULIDs so pebble key order doubles as
// insertion order.
func NewULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
