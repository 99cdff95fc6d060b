// file: internal/database/mock_store.go
// version: 1.1.0
// guid: 6f7a8b9c-0d1e-4f2a-8b3c-4d5e6f7a8b9c

package database

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/models"
)

// MockStore is an in-memory Store for tests.
type MockStore struct {
	mu       sync.RWMutex
	movies   map[string]models.Movie
	order    []string // movie insertion order
	users    map[string]models.User
	sessions map[string]models.Session
	reviews  map[string]models.Review
	watches  []models.WatchEvent
	seq      int
}

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{
		movies:   make(map[string]models.Movie),
		users:    make(map[string]models.User),
		sessions: make(map[string]models.Session),
		reviews:  make(map[string]models.Review),
	}
}

func (m *MockStore) Close() error { return nil }

func (m *MockStore) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movies = make(map[string]models.Movie)
	m.order = nil
	m.users = make(map[string]models.User)
	m.sessions = make(map[string]models.Session)
	m.reviews = make(map[string]models.Review)
	m.watches = nil
	return nil
}

func (m *MockStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%04d", prefix, m.seq)
}

// Movie operations

func (m *MockStore) moviesInOrder() []models.Movie {
	out := make([]models.Movie, 0, len(m.order))
	for _, id := range m.order {
		if movie, ok := m.movies[id]; ok {
			out = append(out, movie)
		}
	}
	return out
}

func (m *MockStore) GetAllMovies(limit, offset int) ([]models.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	movies := m.moviesInOrder()
	sort.Slice(movies, func(i, j int) bool { return movies[i].Title < movies[j].Title })
	return paginate(movies, limit, offset), nil
}

func (m *MockStore) GetMovieByID(id string) (*models.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if movie, ok := m.movies[id]; ok {
		return &movie, nil
	}
	return nil, nil
}

func (m *MockStore) CreateMovie(movie *models.Movie) (*models.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if movie.ID == "" {
		movie.ID = m.nextID("movie")
	}
	now := time.Now().UTC()
	if movie.CreatedAt == nil {
		movie.CreatedAt = &now
	}
	movie.UpdatedAt = &now
	m.movies[movie.ID] = *movie
	m.order = append(m.order, movie.ID)
	return movie, nil
}

func (m *MockStore) UpdateMovie(id string, movie *models.Movie) (*models.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.movies[id]
	if !ok {
		return nil, fmt.Errorf("movie not found")
	}
	movie.ID = id
	movie.CreatedAt = existing.CreatedAt
	movie.Rating = existing.Rating
	movie.ReviewCount = existing.ReviewCount
	movie.WatchCount = existing.WatchCount
	now := time.Now().UTC()
	movie.UpdatedAt = &now
	m.movies[id] = *movie
	return movie, nil
}

func (m *MockStore) DeleteMovie(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.movies[id]; !ok {
		return fmt.Errorf("movie not found")
	}
	delete(m.movies, id)
	for reviewID, review := range m.reviews {
		if review.MovieID == id {
			delete(m.reviews, reviewID)
		}
	}
	kept := m.watches[:0]
	for _, event := range m.watches {
		if event.MovieID != id {
			kept = append(kept, event)
		}
	}
	m.watches = kept
	return nil
}

func (m *MockStore) SearchMovies(query string, limit, offset int) ([]models.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q := strings.ToLower(query)
	var matched []models.Movie
	for _, movie := range m.moviesInOrder() {
		if strings.Contains(strings.ToLower(movie.Title), q) {
			matched = append(matched, movie)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })
	return paginate(matched, limit, offset), nil
}

func (m *MockStore) ListMoviesByGenre(genre string, limit, offset int) ([]models.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []models.Movie
	for _, movie := range m.moviesInOrder() {
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

func (m *MockStore) CountMovies() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.movies), nil
}

func (m *MockStore) IncrementWatchCount(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	movie, ok := m.movies[id]
	if !ok {
		return fmt.Errorf("movie not found")
	}
	movie.WatchCount++
	m.movies[id] = movie
	return nil
}

func (m *MockStore) SetMovieRating(id string, rating float64, reviewCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	movie, ok := m.movies[id]
	if !ok {
		return fmt.Errorf("movie not found")
	}
	movie.Rating = rating
	movie.ReviewCount = reviewCount
	m.movies[id] = movie
	return nil
}

func (m *MockStore) AllMovieTitles() ([]models.Suggestion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var titles []models.Suggestion
	for _, movie := range m.moviesInOrder() {
		titles = append(titles, models.Suggestion{ID: movie.ID, Title: movie.Title})
	}
	sort.Slice(titles, func(i, j int) bool { return titles[i].Title < titles[j].Title })
	return titles, nil
}

// User operations

func (m *MockStore) CreateUser(username, email, passwordHash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			return nil, fmt.Errorf("email already registered")
		}
		if strings.EqualFold(user.Username, username) {
			return nil, fmt.Errorf("username already taken")
		}
	}
	user := models.User{
		ID:           m.nextID("user"),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Status:       "active",
		CreatedAt:    time.Now().UTC(),
	}
	m.users[user.ID] = user
	return &user, nil
}

func (m *MockStore) GetUserByID(id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if user, ok := m.users[id]; ok {
		return &user, nil
	}
	return nil, nil
}

func (m *MockStore) GetUserByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (m *MockStore) GetUserByUsername(username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if strings.EqualFold(user.Username, username) {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (m *MockStore) CountUsers() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users), nil
}

// Session operations

func (m *MockStore) CreateSession(userID, ip, userAgent string, ttl time.Duration) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	session := models.Session{
		ID:        m.nextID("session"),
		UserID:    userID,
		IP:        ip,
		UserAgent: userAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	m.sessions[session.ID] = session
	return &session, nil
}

func (m *MockStore) GetSession(id string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if session, ok := m.sessions[id]; ok {
		return &session, nil
	}
	return nil, nil
}

func (m *MockStore) RevokeSession(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session, ok := m.sessions[id]; ok {
		session.Revoked = true
		m.sessions[id] = session
	}
	return nil
}

// Review operations

func (m *MockStore) CreateReview(review *models.Review) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if review.ID == "" {
		review.ID = m.nextID("review")
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	m.reviews[review.ID] = *review
	return review, nil
}

func (m *MockStore) GetReviewByID(id string) (*models.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if review, ok := m.reviews[id]; ok {
		return &review, nil
	}
	return nil, nil
}

func (m *MockStore) GetReviewsByMovieID(movieID string, limit, offset int) ([]models.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var reviews []models.Review
	for _, review := range m.reviews {
		if review.MovieID == movieID {
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return paginate(reviews, limit, offset), nil
}

func (m *MockStore) DeleteReview(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id]; !ok {
		return fmt.Errorf("review not found")
	}
	delete(m.reviews, id)
	return nil
}

func (m *MockStore) AverageRatingForMovie(movieID string) (float64, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum, count := 0.0, 0
	for _, review := range m.reviews {
		if review.MovieID == movieID {
			sum += review.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return sum / float64(count), count, nil
}

// Watch history operations

func (m *MockStore) AddWatchEvent(event *models.WatchEvent) (*models.WatchEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if event.ID == "" {
		event.ID = m.nextID("watch")
	}
	if event.WatchedAt.IsZero() {
		event.WatchedAt = time.Now().UTC()
	}
	m.watches = append(m.watches, *event)
	return event, nil
}

func (m *MockStore) GetWatchHistory(userID string, limit, offset int) ([]models.WatchEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []models.WatchEvent
	for i := len(m.watches) - 1; i >= 0; i-- {
		if m.watches[i].UserID == userID {
			events = append(events, m.watches[i])
		}
	}
	return paginate(events, limit, offset), nil
}

func (m *MockStore) CountWatchEvents(movieID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, event := range m.watches {
		if event.MovieID == movieID {
			count++
		}
	}
	return count, nil
}
