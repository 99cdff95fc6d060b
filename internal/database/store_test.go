// file: internal/database/store_test.go
// version: 1.1.0
// guid: 1e2f3a4b-5c6d-4e7f-8a9b-0c1d2e3f4a5b

package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/models"
)

// storeFactories builds each backend against a temp directory so the full
// suite runs against SQLite, Pebble and the mock.
func storeFactories(t *testing.T) map[string]func(t *testing.T) Store {
	t.Helper()
	return map[string]func(t *testing.T) Store{
		"sqlite": func(t *testing.T) Store {
			store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "movies.db"))
			require.NoError(t, err)
			t.Cleanup(func() { store.Close() })
			return store
		},
		"pebble": func(t *testing.T) Store {
			store, err := NewPebbleStore(filepath.Join(t.TempDir(), "movies.pebble"))
			require.NoError(t, err)
			t.Cleanup(func() { store.Close() })
			return store
		},
		"mock": func(t *testing.T) Store {
			return NewMockStore()
		},
	}
}

func intPtr(i int) *int { return &i }

func sampleMovie(title string) *models.Movie {
	plot := "A test plot"
	return &models.Movie{
		Title:     title,
		Plot:      &plot,
		Genres:    []string{"Drama", "Crime"},
		Cast:      []string{"Al Pacino", "Marlon Brando"},
		Directors: []string{"Francis Ford Coppola"},
		Year:      intPtr(1972),
		Runtime:   intPtr(175),
	}
}

func TestStore_MovieCRUD(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory(t)

			created, err := store.CreateMovie(sampleMovie("The Godfather"))
			require.NoError(t, err)
			require.NotEmpty(t, created.ID)

			got, err := store.GetMovieByID(created.ID)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "The Godfather", got.Title)
			assert.Equal(t, []string{"Al Pacino", "Marlon Brando"}, got.Cast)
			assert.Equal(t, []string{"Francis Ford Coppola"}, got.Directors)

			got.Title = "The Godfather Part II"
			updated, err := store.UpdateMovie(created.ID, got)
			require.NoError(t, err)
			assert.Equal(t, "The Godfather Part II", updated.Title)

			count, err := store.CountMovies()
			require.NoError(t, err)
			assert.Equal(t, 1, count)

			require.NoError(t, store.DeleteMovie(created.ID))
			gone, err := store.GetMovieByID(created.ID)
			require.NoError(t, err)
			assert.Nil(t, gone)
		})
	}
}

func TestStore_MissingMovie(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			got, err := store.GetMovieByID("01ARZ3NDEKTSV4RRFFQ69G5FAV")
			require.NoError(t, err)
			assert.Nil(t, got)
			assert.Error(t, store.DeleteMovie("01ARZ3NDEKTSV4RRFFQ69G5FAV"))
		})
	}
}

func TestStore_SearchMovies(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			for _, title := range []string{"The Godfather", "The Godfather Part II", "Goodfellas", "Alien"} {
				_, err := store.CreateMovie(sampleMovie(title))
				require.NoError(t, err)
			}

			movies, err := store.SearchMovies("godfather", 50, 0)
			require.NoError(t, err)
			assert.Len(t, movies, 2)

			movies, err = store.SearchMovies("godfather", 1, 0)
			require.NoError(t, err)
			assert.Len(t, movies, 1)
		})
	}
}

func TestStore_ListMoviesByGenre(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			drama := sampleMovie("The Godfather")
			scifi := sampleMovie("Alien")
			scifi.Genres = []string{"Sci-Fi", "Horror"}
			_, err := store.CreateMovie(drama)
			require.NoError(t, err)
			_, err = store.CreateMovie(scifi)
			require.NoError(t, err)

			movies, err := store.ListMoviesByGenre("drama", 50, 0)
			require.NoError(t, err)
			require.Len(t, movies, 1)
			assert.Equal(t, "The Godfather", movies[0].Title)
		})
	}
}

func TestStore_WatchCountAndRating(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			movie, err := store.CreateMovie(sampleMovie("The Godfather"))
			require.NoError(t, err)

			for i := 0; i < 3; i++ {
				require.NoError(t, store.IncrementWatchCount(movie.ID))
			}
			require.NoError(t, store.SetMovieRating(movie.ID, 9.2, 7))

			got, err := store.GetMovieByID(movie.ID)
			require.NoError(t, err)
			assert.Equal(t, 3, got.WatchCount)
			assert.InDelta(t, 9.2, got.Rating, 1e-9)
			assert.Equal(t, 7, got.ReviewCount)
		})
	}
}

func TestStore_UsersAndSessions(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory(t)

			user, err := store.CreateUser("alice", "alice@example.com", "hash")
			require.NoError(t, err)
			require.NotEmpty(t, user.ID)
			assert.Equal(t, "active", user.Status)

			byEmail, err := store.GetUserByEmail("ALICE@example.com")
			require.NoError(t, err)
			require.NotNil(t, byEmail)
			assert.Equal(t, user.ID, byEmail.ID)

			byName, err := store.GetUserByUsername("Alice")
			require.NoError(t, err)
			require.NotNil(t, byName)
			assert.Equal(t, user.ID, byName.ID)

			count, err := store.CountUsers()
			require.NoError(t, err)
			assert.Equal(t, 1, count)

			session, err := store.CreateSession(user.ID, "127.0.0.1", "test-agent", time.Hour)
			require.NoError(t, err)
			got, err := store.GetSession(session.ID)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, user.ID, got.UserID)
			assert.False(t, got.Revoked)

			require.NoError(t, store.RevokeSession(session.ID))
			got, err = store.GetSession(session.ID)
			require.NoError(t, err)
			assert.True(t, got.Revoked)
		})
	}
}

func TestStore_ReviewsAndAverage(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			movie, err := store.CreateMovie(sampleMovie("The Godfather"))
			require.NoError(t, err)

			for i, rating := range []float64{8, 9, 10} {
				_, err := store.CreateReview(&models.Review{
					MovieID:   movie.ID,
					UserID:    "user-1",
					Rating:    rating,
					Text:      "review",
					CreatedAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
				})
				require.NoError(t, err)
			}

			reviews, err := store.GetReviewsByMovieID(movie.ID, 50, 0)
			require.NoError(t, err)
			require.Len(t, reviews, 3)
			// Newest first
			assert.InDelta(t, 10, reviews[0].Rating, 1e-9)

			avg, count, err := store.AverageRatingForMovie(movie.ID)
			require.NoError(t, err)
			assert.Equal(t, 3, count)
			assert.InDelta(t, 9.0, avg, 1e-9)

			require.NoError(t, store.DeleteReview(reviews[0].ID))
			avg, count, err = store.AverageRatingForMovie(movie.ID)
			require.NoError(t, err)
			assert.Equal(t, 2, count)
			assert.InDelta(t, 8.5, avg, 1e-9)
		})
	}
}

func TestStore_WatchHistory(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			movie, err := store.CreateMovie(sampleMovie("The Godfather"))
			require.NoError(t, err)

			base := time.Now().UTC().Add(-time.Hour)
			for i := 0; i < 3; i++ {
				_, err := store.AddWatchEvent(&models.WatchEvent{
					MovieID:   movie.ID,
					UserID:    "user-1",
					WatchedAt: base.Add(time.Duration(i) * time.Minute),
				})
				require.NoError(t, err)
			}
			_, err = store.AddWatchEvent(&models.WatchEvent{
				MovieID: movie.ID,
				UserID:  "user-2",
			})
			require.NoError(t, err)

			history, err := store.GetWatchHistory("user-1", 50, 0)
			require.NoError(t, err)
			assert.Len(t, history, 3)

			count, err := store.CountWatchEvents(movie.ID)
			require.NoError(t, err)
			assert.Equal(t, 4, count)
		})
	}
}

func TestStore_DeleteMovieRemovesDependents(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			movie, err := store.CreateMovie(sampleMovie("The Godfather"))
			require.NoError(t, err)
			other, err := store.CreateMovie(sampleMovie("Heat"))
			require.NoError(t, err)

			review, err := store.CreateReview(&models.Review{
				MovieID: movie.ID,
				UserID:  "user-1",
				Rating:  9,
			})
			require.NoError(t, err)
			keptReview, err := store.CreateReview(&models.Review{
				MovieID: other.ID,
				UserID:  "user-1",
				Rating:  8,
			})
			require.NoError(t, err)

			for _, movieID := range []string{movie.ID, movie.ID, other.ID} {
				_, err := store.AddWatchEvent(&models.WatchEvent{
					MovieID: movieID,
					UserID:  "user-1",
				})
				require.NoError(t, err)
			}

			require.NoError(t, store.DeleteMovie(movie.ID))

			gone, err := store.GetReviewByID(review.ID)
			require.NoError(t, err)
			assert.Nil(t, gone)
			reviews, err := store.GetReviewsByMovieID(movie.ID, 50, 0)
			require.NoError(t, err)
			assert.Empty(t, reviews)

			watchCount, err := store.CountWatchEvents(movie.ID)
			require.NoError(t, err)
			assert.Zero(t, watchCount)
			history, err := store.GetWatchHistory("user-1", 50, 0)
			require.NoError(t, err)
			require.Len(t, history, 1)
			assert.Equal(t, other.ID, history[0].MovieID)

			// The other movie's records are untouched
			kept, err := store.GetReviewByID(keptReview.ID)
			require.NoError(t, err)
			require.NotNil(t, kept)
		})
	}
}

func TestStore_Reset(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			_, err := store.CreateMovie(sampleMovie("The Godfather"))
			require.NoError(t, err)
			_, err = store.CreateUser("alice", "alice@example.com", "hash")
			require.NoError(t, err)

			require.NoError(t, store.Reset())

			movies, err := store.CountMovies()
			require.NoError(t, err)
			assert.Zero(t, movies)
			users, err := store.CountUsers()
			require.NoError(t, err)
			assert.Zero(t, users)
		})
	}
}

func TestInitializeStore_UnsupportedType(t *testing.T) {
	err := InitializeStore("mongodb", filepath.Join(t.TempDir(), "x"))
	assert.Error(t, err)
}

func TestNewULID(t *testing.T) {
	a, err := NewULID()
	require.NoError(t, err)
	b, err := NewULID()
	require.NoError(t, err)
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}
