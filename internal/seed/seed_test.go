// file: internal/seed/seed_test.go
// version: 1.0.0
// guid: 7c8d9e0f-1a2b-4c3d-4e5f-6a7b8c9d0e1f

package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/database"
)

func TestSeedEmbeddedCatalog(t *testing.T) {
	store := database.NewMockStore()

	result, err := Seed(store, Options{Quiet: true})
	require.NoError(t, err)
	assert.Equal(t, 12, result.Inserted)
	assert.Equal(t, 0, result.Skipped)

	count, err := store.CountMovies()
	require.NoError(t, err)
	assert.Equal(t, 12, count)

	// Spot-check a record made it in with its metadata
	movies, err := store.SearchMovies("godfather", 10, 0)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.NotEmpty(t, movies[0].ID)
	assert.NotEmpty(t, movies[0].Cast)
}

func TestSeedSkipExisting(t *testing.T) {
	store := database.NewMockStore()

	_, err := Seed(store, Options{Quiet: true})
	require.NoError(t, err)

	result, err := Seed(store, Options{Quiet: true, SkipExisting: true})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 12, result.Skipped)

	count, err := store.CountMovies()
	require.NoError(t, err)
	assert.Equal(t, 12, count)
}

func TestSeedCustomFile(t *testing.T) {
	store := database.NewMockStore()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `movies:
  - title: Test Movie
    genres: [Drama]
    rating: 7.5
    watch_count: 10
  - title: ""
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	result, err := Seed(store, Options{Path: path, Quiet: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Skipped)
}

func TestSeedErrors(t *testing.T) {
	store := database.NewMockStore()

	// Missing file
	_, err := Seed(store, Options{Path: "/nonexistent/catalog.yaml", Quiet: true})
	assert.Error(t, err)

	// Invalid YAML
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("movies: {not a list"), 0o644))
	_, err = Seed(store, Options{Path: path, Quiet: true})
	assert.Error(t, err)

	// Empty catalog
	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("movies: []"), 0o644))
	_, err = Seed(store, Options{Path: empty, Quiet: true})
	assert.Error(t, err)
}
