// file: internal/database/pebble_store.go
// version: 1.1.0
// guid: 0d1e2f3a-4b5c-4d6e-8f7a-8b9c0d1e2f3a

package database

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	pebble "github.com/cockroachdb/pebble/v2"

	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/models"
)

// PebbleStore implements the Store interface using PebbleDB (LSM key-value store)
//
// Key Schema:
// - movie:<id>                    -> Movie JSON
// - user:<id>                     -> User JSON
// - user:email:<email>            -> user_id (for lookups)
// - user:name:<username>          -> user_id (for lookups)
// - session:<id>                  -> Session JSON
// - review:<id>                   -> Review JSON
// - review:movie:<movie_id>:<id>  -> review_id (for movie queries)
// - watch:<id>                    -> WatchEvent JSON
// - watch:user:<user_id>:<id>     -> event_id (for history queries)
// - watch:movie:<movie_id>:<id>   -> event_id (for per-movie counts)
//
// All record IDs are ULIDs, so plain key order within a prefix is
// insertion-time order.

type PebbleStore struct {
	db *pebble.DB
}

// NewPebbleStore creates a new PebbleDB store
func NewPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open PebbleDB: %w", err)
	}
	return &PebbleStore{db: db}, nil
}

// Close closes the database
func (p *PebbleStore) Close() error {
	return p.db.Close()
}

// Reset removes every record. Used by tests and the seeder.
func (p *PebbleStore) Reset() error {
	iter, err := p.db.NewIter(nil)
	if err != nil {
		return err
	}
	batch := p.db.NewBatch()
	for iter.First(); iter.Valid(); iter.Next() {
		key := append([]byte(nil), iter.Key()...)
		if err := batch.Delete(key, nil); err != nil {
			iter.Close()
			batch.Close()
			return err
		}
	}
	if err := iter.Close(); err != nil {
		batch.Close()
		return err
	}
	return batch.Commit(pebble.Sync)
}

// Helper functions

// prefixBounds returns iterator bounds covering every key under prefix.
func prefixBounds(prefix string) *pebble.IterOptions {
	upper := []byte(prefix)
	upper[len(upper)-1]++
	return &pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: upper,
	}
}

func (p *PebbleStore) getJSON(key string, out interface{}) (bool, error) {
	value, closer, err := p.db.Get([]byte(key))
	if err == pebble.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer closer.Close()
	if err := json.Unmarshal(value, out); err != nil {
		return false, err
	}
	return true, nil
}

func (p *PebbleStore) setJSON(key string, record interface{}) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return p.db.Set([]byte(key), data, pebble.Sync)
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// Movie operations

func (p *PebbleStore) allMovies() ([]models.Movie, error) {
	var movies []models.Movie
	iter, err := p.db.NewIter(prefixBounds("movie:"))
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		var movie models.Movie
		if err := json.Unmarshal(iter.Value(), &movie); err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, nil
}

func (p *PebbleStore) GetAllMovies(limit, offset int) ([]models.Movie, error) {
	movies, err := p.allMovies()
	if err != nil {
		return nil, err
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].Title < movies[j].Title })
	return paginate(movies, limit, offset), nil
}

func (p *PebbleStore) GetMovieByID(id string) (*models.Movie, error) {
	var movie models.Movie
	found, err := p.getJSON("movie:"+id, &movie)
	if err != nil || !found {
		return nil, err
	}
	return &movie, nil
}

func (p *PebbleStore) CreateMovie(movie *models.Movie) (*models.Movie, error) {
	if movie.ID == "" {
		id, err := NewULID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate movie ID: %w", err)
		}
		movie.ID = id
	}
	now := time.Now().UTC()
	if movie.CreatedAt == nil {
		movie.CreatedAt = &now
	}
	movie.UpdatedAt = &now
	if err := p.setJSON("movie:"+movie.ID, movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}
	return movie, nil
}

func (p *PebbleStore) UpdateMovie(id string, movie *models.Movie) (*models.Movie, error) {
	existing, err := p.GetMovieByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("movie not found")
	}
	movie.ID = id
	movie.CreatedAt = existing.CreatedAt
	// Rating, review and watch counters are owned by their own write paths.
	movie.Rating = existing.Rating
	movie.ReviewCount = existing.ReviewCount
	movie.WatchCount = existing.WatchCount
	now := time.Now().UTC()
	movie.UpdatedAt = &now
	if err := p.setJSON("movie:"+id, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

// DeleteMovie removes a movie along with its reviews and watch events,
// including all of their index keys, in a single batch.
func (p *PebbleStore) DeleteMovie(id string) error {
	existing, err := p.GetMovieByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("movie not found")
	}

	batch := p.db.NewBatch()
	defer batch.Close()

	if err := batch.Delete([]byte("movie:"+id), nil); err != nil {
		return err
	}

	// Reviews for the movie
	reviewIter, err := p.db.NewIter(prefixBounds(fmt.Sprintf("review:movie:%s:", id)))
	if err != nil {
		return err
	}
	for reviewIter.First(); reviewIter.Valid(); reviewIter.Next() {
		reviewID := string(reviewIter.Value())
		if err := batch.Delete([]byte("review:"+reviewID), nil); err != nil {
			reviewIter.Close()
			return err
		}
		if err := batch.Delete(append([]byte(nil), reviewIter.Key()...), nil); err != nil {
			reviewIter.Close()
			return err
		}
	}
	if err := reviewIter.Close(); err != nil {
		return err
	}

	// Watch events for the movie
	watchIter, err := p.db.NewIter(prefixBounds(fmt.Sprintf("watch:movie:%s:", id)))
	if err != nil {
		return err
	}
	for watchIter.First(); watchIter.Valid(); watchIter.Next() {
		eventID := string(watchIter.Value())
		var event models.WatchEvent
		found, err := p.getJSON("watch:"+eventID, &event)
		if err != nil {
			watchIter.Close()
			return err
		}
		if found {
			userKey := fmt.Sprintf("watch:user:%s:%s", event.UserID, eventID)
			if err := batch.Delete([]byte(userKey), nil); err != nil {
				watchIter.Close()
				return err
			}
		}
		if err := batch.Delete([]byte("watch:"+eventID), nil); err != nil {
			watchIter.Close()
			return err
		}
		if err := batch.Delete(append([]byte(nil), watchIter.Key()...), nil); err != nil {
			watchIter.Close()
			return err
		}
	}
	if err := watchIter.Close(); err != nil {
		return err
	}

	return batch.Commit(pebble.Sync)
}

func (p *PebbleStore) SearchMovies(query string, limit, offset int) ([]models.Movie, error) {
	movies, err := p.allMovies()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var matched []models.Movie
	for _, movie := range movies {
		if strings.Contains(strings.ToLower(movie.Title), q) {
			matched = append(matched, movie)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })
	return paginate(matched, limit, offset), nil
}

func (p *PebbleStore) ListMoviesByGenre(genre string, limit, offset int) ([]models.Movie, error) {
	movies, err := p.allMovies()
	if err != nil {
		return nil, err
	}
	var matched []models.Movie
	for _, movie := range movies {
		for _, g := range movie.Genres {
			if strings.EqualFold(g, genre) {
				matched = append(matched, movie)
				break
			}
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })
	return paginate(matched, limit, offset), nil
}

func (p *PebbleStore) CountMovies() (int, error) {
	movies, err := p.allMovies()
	if err != nil {
		return 0, err
	}
	return len(movies), nil
}

func (p *PebbleStore) IncrementWatchCount(id string) error {
	movie, err := p.GetMovieByID(id)
	if err != nil {
		return err
	}
	if movie == nil {
		return fmt.Errorf("movie not found")
	}
	movie.WatchCount++
	return p.setJSON("movie:"+id, movie)
}

func (p *PebbleStore) SetMovieRating(id string, rating float64, reviewCount int) error {
	movie, err := p.GetMovieByID(id)
	if err != nil {
		return err
	}
	if movie == nil {
		return fmt.Errorf("movie not found")
	}
	movie.Rating = rating
	movie.ReviewCount = reviewCount
	return p.setJSON("movie:"+id, movie)
}

func (p *PebbleStore) AllMovieTitles() ([]models.Suggestion, error) {
	movies, err := p.allMovies()
	if err != nil {
		return nil, err
	}
	titles := make([]models.Suggestion, 0, len(movies))
	for _, movie := range movies {
		titles = append(titles, models.Suggestion{ID: movie.ID, Title: movie.Title})
	}
	sort.Slice(titles, func(i, j int) bool { return titles[i].Title < titles[j].Title })
	return titles, nil
}

// User operations

func (p *PebbleStore) CreateUser(username, email, passwordHash string) (*models.User, error) {
	if existing, err := p.GetUserByEmail(email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}
	if existing, err := p.GetUserByUsername(username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("username already taken")
	}

	id, err := NewULID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}
	user := &models.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Status:       "active",
		CreatedAt:    time.Now().UTC(),
	}
	data, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	batch := p.db.NewBatch()
	if err := batch.Set([]byte("user:"+id), data, nil); err != nil {
		batch.Close()
		return nil, err
	}
	if err := batch.Set([]byte("user:email:"+strings.ToLower(email)), []byte(id), nil); err != nil {
		batch.Close()
		return nil, err
	}
	if err := batch.Set([]byte("user:name:"+strings.ToLower(username)), []byte(id), nil); err != nil {
		batch.Close()
		return nil, err
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return nil, err
	}
	return user, nil
}

func (p *PebbleStore) GetUserByID(id string) (*models.User, error) {
	var user models.User
	found, err := p.getJSON("user:"+id, &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (p *PebbleStore) userByIndex(indexKey string) (*models.User, error) {
	value, closer, err := p.db.Get([]byte(indexKey))
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	id := string(value)
	closer.Close()
	return p.GetUserByID(id)
}

func (p *PebbleStore) GetUserByEmail(email string) (*models.User, error) {
	return p.userByIndex("user:email:" + strings.ToLower(email))
}

func (p *PebbleStore) GetUserByUsername(username string) (*models.User, error) {
	return p.userByIndex("user:name:" + strings.ToLower(username))
}

func (p *PebbleStore) CountUsers() (int, error) {
	count := 0
	iter, err := p.db.NewIter(prefixBounds("user:"))
	if err != nil {
		return 0, err
	}
	defer iter.Close()
	for iter.First(); iter.Valid(); iter.Next() {
		key := string(iter.Key())
		// Skip index keys
		if strings.HasPrefix(key, "user:email:") || strings.HasPrefix(key, "user:name:") {
			continue
		}
		count++
	}
	return count, nil
}

// Session operations

func (p *PebbleStore) CreateSession(userID, ip, userAgent string, ttl time.Duration) (*models.Session, error) {
	id, err := NewULID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}
	now := time.Now().UTC()
	session := &models.Session{
		ID:        id,
		UserID:    userID,
		IP:        ip,
		UserAgent: userAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := p.setJSON("session:"+id, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

func (p *PebbleStore) GetSession(id string) (*models.Session, error) {
	var session models.Session
	found, err := p.getJSON("session:"+id, &session)
	if err != nil || !found {
		return nil, err
	}
	return &session, nil
}

func (p *PebbleStore) RevokeSession(id string) error {
	session, err := p.GetSession(id)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	session.Revoked = true
	return p.setJSON("session:"+id, session)
}

// Review operations

func (p *PebbleStore) CreateReview(review *models.Review) (*models.Review, error) {
	if review.ID == "" {
		id, err := NewULID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate review ID: %w", err)
		}
		review.ID = id
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(review)
	if err != nil {
		return nil, err
	}

	batch := p.db.NewBatch()
	if err := batch.Set([]byte("review:"+review.ID), data, nil); err != nil {
		batch.Close()
		return nil, err
	}
	indexKey := fmt.Sprintf("review:movie:%s:%s", review.MovieID, review.ID)
	if err := batch.Set([]byte(indexKey), []byte(review.ID), nil); err != nil {
		batch.Close()
		return nil, err
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return nil, err
	}
	return review, nil
}

func (p *PebbleStore) GetReviewByID(id string) (*models.Review, error) {
	var review models.Review
	found, err := p.getJSON("review:"+id, &review)
	if err != nil || !found {
		return nil, err
	}
	return &review, nil
}

func (p *PebbleStore) reviewsForMovie(movieID string) ([]models.Review, error) {
	var reviews []models.Review
	iter, err := p.db.NewIter(prefixBounds(fmt.Sprintf("review:movie:%s:", movieID)))
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		review, err := p.GetReviewByID(string(iter.Value()))
		if err != nil {
			return nil, err
		}
		if review != nil {
			reviews = append(reviews, *review)
		}
	}
	return reviews, nil
}

func (p *PebbleStore) GetReviewsByMovieID(movieID string, limit, offset int) ([]models.Review, error) {
	reviews, err := p.reviewsForMovie(movieID)
	if err != nil {
		return nil, err
	}
	// Newest first, matching the SQLite backend
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return paginate(reviews, limit, offset), nil
}

func (p *PebbleStore) DeleteReview(id string) error {
	review, err := p.GetReviewByID(id)
	if err != nil {
		return err
	}
	if review == nil {
		return fmt.Errorf("review not found")
	}

	batch := p.db.NewBatch()
	if err := batch.Delete([]byte("review:"+id), nil); err != nil {
		batch.Close()
		return err
	}
	indexKey := fmt.Sprintf("review:movie:%s:%s", review.MovieID, id)
	if err := batch.Delete([]byte(indexKey), nil); err != nil {
		batch.Close()
		return err
	}
	return batch.Commit(pebble.Sync)
}

func (p *PebbleStore) AverageRatingForMovie(movieID string) (float64, int, error) {
	reviews, err := p.reviewsForMovie(movieID)
	if err != nil {
		return 0, 0, err
	}
	if len(reviews) == 0 {
		return 0, 0, nil
	}
	sum := 0.0
	for _, review := range reviews {
		sum += review.Rating
	}
	return sum / float64(len(reviews)), len(reviews), nil
}

// Watch history operations

func (p *PebbleStore) AddWatchEvent(event *models.WatchEvent) (*models.WatchEvent, error) {
	if event.ID == "" {
		id, err := NewULID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate event ID: %w", err)
		}
		event.ID = id
	}
	if event.WatchedAt.IsZero() {
		event.WatchedAt = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	batch := p.db.NewBatch()
	if err := batch.Set([]byte("watch:"+event.ID), data, nil); err != nil {
		batch.Close()
		return nil, err
	}
	userKey := fmt.Sprintf("watch:user:%s:%s", event.UserID, event.ID)
	if err := batch.Set([]byte(userKey), []byte(event.ID), nil); err != nil {
		batch.Close()
		return nil, err
	}
	movieKey := fmt.Sprintf("watch:movie:%s:%s", event.MovieID, event.ID)
	if err := batch.Set([]byte(movieKey), []byte(event.ID), nil); err != nil {
		batch.Close()
		return nil, err
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return nil, err
	}
	return event, nil
}

func (p *PebbleStore) GetWatchHistory(userID string, limit, offset int) ([]models.WatchEvent, error) {
	var events []models.WatchEvent
	iter, err := p.db.NewIter(prefixBounds(fmt.Sprintf("watch:user:%s:", userID)))
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	// ULID keys sort oldest-first; walk backwards for newest-first.
	for iter.Last(); iter.Valid(); iter.Prev() {
		var event models.WatchEvent
		found, err := p.getJSON("watch:"+string(iter.Value()), &event)
		if err != nil {
			return nil, err
		}
		if found {
			events = append(events, event)
		}
	}
	return paginate(events, limit, offset), nil
}

func (p *PebbleStore) CountWatchEvents(movieID string) (int, error) {
	count := 0
	iter, err := p.db.NewIter(prefixBounds(fmt.Sprintf("watch:movie:%s:", movieID)))
	if err != nil {
		return 0, err
	}
	defer iter.Close()
	for iter.First(); iter.Valid(); iter.Next() {
		count++
	}
	return count, nil
}
