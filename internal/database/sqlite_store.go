// file: internal/database/sqlite_store.go
// version: 1.2.0
// guid: 4b5c6d7e-8f9a-4b0c-8d1e-2f3a4b5c6d7e

package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/models"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

const movieSelectColumns = `
	id, title, plot, genres_json, cast_json, directors_json,
	year, runtime, rating, review_count, watch_count, poster_url,
	created_at, updated_at
`

func scanMovie(scanner rowScanner, movie *models.Movie) error {
	var genresJSON, castJSON, directorsJSON sql.NullString
	err := scanner.Scan(
		&movie.ID, &movie.Title, &movie.Plot, &genresJSON, &castJSON,
		&directorsJSON, &movie.Year, &movie.Runtime, &movie.Rating,
		&movie.ReviewCount, &movie.WatchCount, &movie.PosterURL,
		&movie.CreatedAt, &movie.UpdatedAt,
	)
	if err != nil {
		return err
	}
	movie.Genres = decodeNames(genresJSON)
	movie.Cast = decodeNames(castJSON)
	movie.Directors = decodeNames(directorsJSON)
	return nil
}

func encodeNames(names []string) *string {
	if len(names) == 0 {
		return nil
	}
	data, err := json.Marshal(names)
	if err != nil {
		return nil
	}
	s := string(data)
	return &s
}

func decodeNames(col sql.NullString) []string {
	if !col.Valid || col.String == "" {
		return nil
	}
	var names []string
	if err := json.Unmarshal([]byte(col.String), &names); err != nil {
		return nil
	}
	return names
}

// SQLiteStore implements the Store interface using SQLite3
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

// createTables creates all required tables
func (s *SQLiteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS movies (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		plot TEXT,
		genres_json TEXT,
		cast_json TEXT,
		directors_json TEXT,
		year INTEGER,
		runtime INTEGER,
		rating REAL NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		watch_count INTEGER NOT NULL DEFAULT 0,
		poster_url TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_movies_title ON movies(title);
	CREATE INDEX IF NOT EXISTS idx_movies_year ON movies(year);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		ip TEXT,
		user_agent TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		expires_at DATETIME NOT NULL,
		revoked BOOLEAN NOT NULL DEFAULT 0,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

	CREATE TABLE IF NOT EXISTS reviews (
		id TEXT PRIMARY KEY,
		movie_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		rating REAL NOT NULL,
		text TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (movie_id) REFERENCES movies(id),
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_reviews_movie ON reviews(movie_id);
	CREATE INDEX IF NOT EXISTS idx_reviews_user ON reviews(user_id);

	CREATE TABLE IF NOT EXISTS watch_events (
		id TEXT PRIMARY KEY,
		movie_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		watched_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		progress INTEGER,
		FOREIGN KEY (movie_id) REFERENCES movies(id),
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_watch_events_user ON watch_events(user_id);
	CREATE INDEX IF NOT EXISTS idx_watch_events_movie ON watch_events(movie_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Reset drops all rows from every table. Used by tests and the seeder.
func (s *SQLiteStore) Reset() error {
	for _, table := range []string{"watch_events", "reviews", "sessions", "users", "movies"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}

// Movie operations

func (s *SQLiteStore) GetAllMovies(limit, offset int) ([]models.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies ORDER BY title LIMIT ? OFFSET ?`, movieSelectColumns)
	rows, err := s.db.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		var movie models.Movie
		if err := scanMovie(rows, &movie); err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, rows.Err()
}

func (s *SQLiteStore) GetMovieByID(id string) (*models.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = ?`, movieSelectColumns)
	var movie models.Movie
	err := scanMovie(s.db.QueryRow(query, id), &movie)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (s *SQLiteStore) CreateMovie(movie *models.Movie) (*models.Movie, error) {
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

	_, err := s.db.Exec(`
		INSERT INTO movies (id, title, plot, genres_json, cast_json, directors_json,
			year, runtime, rating, review_count, watch_count, poster_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		movie.ID, movie.Title, movie.Plot, encodeNames(movie.Genres),
		encodeNames(movie.Cast), encodeNames(movie.Directors),
		movie.Year, movie.Runtime, movie.Rating, movie.ReviewCount,
		movie.WatchCount, movie.PosterURL, movie.CreatedAt, movie.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}
	return movie, nil
}

func (s *SQLiteStore) UpdateMovie(id string, movie *models.Movie) (*models.Movie, error) {
	now := time.Now().UTC()
	movie.UpdatedAt = &now
	result, err := s.db.Exec(`
		UPDATE movies SET title = ?, plot = ?, genres_json = ?, cast_json = ?,
			directors_json = ?, year = ?, runtime = ?, poster_url = ?, updated_at = ?
		WHERE id = ?`,
		movie.Title, movie.Plot, encodeNames(movie.Genres), encodeNames(movie.Cast),
		encodeNames(movie.Directors), movie.Year, movie.Runtime, movie.PosterURL,
		movie.UpdatedAt, id,
	)
	if err != nil {
		return nil, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("movie not found")
	}
	movie.ID = id
	return s.GetMovieByID(id)
}

// DeleteMovie removes a movie and its reviews and watch events in one
// transaction. Dependents are deleted explicitly so every backend enforces
// the same contract.
func (s *SQLiteStore) DeleteMovie(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec("DELETE FROM movies WHERE id = ?", id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("movie not found")
	}

	if _, err := tx.Exec("DELETE FROM reviews WHERE movie_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM watch_events WHERE movie_id = ?", id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) SearchMovies(query string, limit, offset int) ([]models.Movie, error) {
	searchQuery := fmt.Sprintf(`SELECT %s FROM movies WHERE title LIKE ? ORDER BY title LIMIT ? OFFSET ?`, movieSelectColumns)
	rows, err := s.db.Query(searchQuery, "%"+query+"%", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		var movie models.Movie
		if err := scanMovie(rows, &movie); err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, rows.Err()
}

func (s *SQLiteStore) ListMoviesByGenre(genre string, limit, offset int) ([]models.Movie, error) {
	// Genres are stored as a JSON array; match the quoted element.
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE genres_json LIKE ? ORDER BY title LIMIT ? OFFSET ?`, movieSelectColumns)
	rows, err := s.db.Query(query, `%"`+genre+`"%`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		var movie models.Movie
		if err := scanMovie(rows, &movie); err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, rows.Err()
}

func (s *SQLiteStore) CountMovies() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM movies").Scan(&count)
	return count, err
}

func (s *SQLiteStore) IncrementWatchCount(id string) error {
	result, err := s.db.Exec("UPDATE movies SET watch_count = watch_count + 1 WHERE id = ?", id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("movie not found")
	}
	return nil
}

func (s *SQLiteStore) SetMovieRating(id string, rating float64, reviewCount int) error {
	_, err := s.db.Exec("UPDATE movies SET rating = ?, review_count = ? WHERE id = ?", rating, reviewCount, id)
	return err
}

func (s *SQLiteStore) AllMovieTitles() ([]models.Suggestion, error) {
	rows, err := s.db.Query("SELECT id, title FROM movies ORDER BY title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []models.Suggestion
	for rows.Next() {
		var sug models.Suggestion
		if err := rows.Scan(&sug.ID, &sug.Title); err != nil {
			return nil, err
		}
		titles = append(titles, sug)
	}
	return titles, rows.Err()
}

// User operations

func (s *SQLiteStore) CreateUser(username, email, passwordHash string) (*models.User, error) {
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
	_, err = s.db.Exec(`
		INSERT INTO users (id, username, email, password_hash, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Status, user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *SQLiteStore) getUser(where string, arg interface{}) (*models.User, error) {
	query := `SELECT id, username, email, password_hash, status, created_at FROM users WHERE ` + where
	var user models.User
	err := s.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Status, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *SQLiteStore) GetUserByID(id string) (*models.User, error) {
	return s.getUser("id = ?", id)
}

func (s *SQLiteStore) GetUserByEmail(email string) (*models.User, error) {
	// Case-insensitive, like the pebble index keys
	return s.getUser("email = ? COLLATE NOCASE", email)
}

func (s *SQLiteStore) GetUserByUsername(username string) (*models.User, error) {
	return s.getUser("username = ? COLLATE NOCASE", username)
}

func (s *SQLiteStore) CountUsers() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// Session operations

func (s *SQLiteStore) CreateSession(userID, ip, userAgent string, ttl time.Duration) (*models.Session, error) {
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
	_, err = s.db.Exec(`
		INSERT INTO sessions (id, user_id, ip, user_agent, created_at, expires_at, revoked)
		VALUES (?, ?, ?, ?, ?, ?, 0)`,
		session.ID, session.UserID, session.IP, session.UserAgent,
		session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

func (s *SQLiteStore) GetSession(id string) (*models.Session, error) {
	var session models.Session
	err := s.db.QueryRow(`
		SELECT id, user_id, ip, user_agent, created_at, expires_at, revoked
		FROM sessions WHERE id = ?`, id).Scan(
		&session.ID, &session.UserID, &session.IP, &session.UserAgent,
		&session.CreatedAt, &session.ExpiresAt, &session.Revoked,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SQLiteStore) RevokeSession(id string) error {
	_, err := s.db.Exec("UPDATE sessions SET revoked = 1 WHERE id = ?", id)
	return err
}

// Review operations

func (s *SQLiteStore) CreateReview(review *models.Review) (*models.Review, error) {
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
	_, err := s.db.Exec(`
		INSERT INTO reviews (id, movie_id, user_id, rating, text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		review.ID, review.MovieID, review.UserID, review.Rating, review.Text, review.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

func (s *SQLiteStore) GetReviewByID(id string) (*models.Review, error) {
	var review models.Review
	err := s.db.QueryRow(`
		SELECT id, movie_id, user_id, rating, text, created_at
		FROM reviews WHERE id = ?`, id).Scan(
		&review.ID, &review.MovieID, &review.UserID, &review.Rating,
		&review.Text, &review.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *SQLiteStore) GetReviewsByMovieID(movieID string, limit, offset int) ([]models.Review, error) {
	rows, err := s.db.Query(`
		SELECT id, movie_id, user_id, rating, text, created_at
		FROM reviews WHERE movie_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		movieID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(&review.ID, &review.MovieID, &review.UserID,
			&review.Rating, &review.Text, &review.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (s *SQLiteStore) DeleteReview(id string) error {
	result, err := s.db.Exec("DELETE FROM reviews WHERE id = ?", id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("review not found")
	}
	return nil
}

func (s *SQLiteStore) AverageRatingForMovie(movieID string) (float64, int, error) {
	var avg sql.NullFloat64
	var count int
	err := s.db.QueryRow(
		"SELECT AVG(rating), COUNT(*) FROM reviews WHERE movie_id = ?", movieID,
	).Scan(&avg, &count)
	if err != nil {
		return 0, 0, err
	}
	if !avg.Valid {
		return 0, 0, nil
	}
	return avg.Float64, count, nil
}

// Watch history operations

func (s *SQLiteStore) AddWatchEvent(event *models.WatchEvent) (*models.WatchEvent, error) {
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
	_, err := s.db.Exec(`
		INSERT INTO watch_events (id, movie_id, user_id, watched_at, progress)
		VALUES (?, ?, ?, ?, ?)`,
		event.ID, event.MovieID, event.UserID, event.WatchedAt, event.Progress,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record watch event: %w", err)
	}
	return event, nil
}

func (s *SQLiteStore) GetWatchHistory(userID string, limit, offset int) ([]models.WatchEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, movie_id, user_id, watched_at, progress
		FROM watch_events WHERE user_id = ? ORDER BY watched_at DESC LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.WatchEvent
	for rows.Next() {
		var event models.WatchEvent
		if err := rows.Scan(&event.ID, &event.MovieID, &event.UserID,
			&event.WatchedAt, &event.Progress); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (s *SQLiteStore) CountWatchEvents(movieID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM watch_events WHERE movie_id = ?", movieID).Scan(&count)
	return count, err
}
