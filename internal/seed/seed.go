// file: internal/seed/seed.go
// version: 1.1.0
// guid: 5a6b7c8d-9e0f-4a1b-2c3d-4e5f6a7b8c9d

// Package seed loads sample movie catalogs into a store. It is used by the
// `seed` CLI command to bootstrap a fresh database for demos and local
// development.
package seed

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"gopkg.in/yaml.v3"

	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/database"
	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/models"
)

//go:embed sample_catalog.yaml
var sampleCatalog []byte

// catalogEntry is one movie record in a seed file.
type catalogEntry struct {
	Title      string   `yaml:"title"`
	Plot       string   `yaml:"plot"`
	Genres     []string `yaml:"genres"`
	Cast       []string `yaml:"cast"`
	Directors  []string `yaml:"directors"`
	Year       int      `yaml:"year"`
	Runtime    int      `yaml:"runtime"`
	Rating     float64  `yaml:"rating"`
	WatchCount int      `yaml:"watch_count"`
	PosterURL  string   `yaml:"poster_url"`
}

// catalogFile is the top-level structure of a seed file.
type catalogFile struct {
	Movies []catalogEntry `yaml:"movies"`
}

// Options controls a seeding run.
type Options struct {
	// Path of the YAML catalog to load. Empty means the embedded sample.
	Path string
	// SkipExisting leaves movies alone when a movie with the same title
	// is already present.
	SkipExisting bool
	// Quiet disables the progress bar.
	Quiet bool
}

// Result reports what a seeding run did.
type Result struct {
	Inserted int
	Skipped  int
}

// Seed loads the catalog described by opts into the store.
func Seed(store database.Store, opts Options) (*Result, error) {
	entries, err := loadCatalog(opts.Path)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("seed catalog contains no movies")
	}

	existing := map[string]bool{}
	if opts.SkipExisting {
		titles, err := store.AllMovieTitles()
		if err != nil {
			return nil, fmt.Errorf("failed to list existing titles: %w", err)
		}
		for _, t := range titles {
			existing[strings.ToLower(t.Title)] = true
		}
	}

	var bar *progressbar.ProgressBar
	if !opts.Quiet {
		bar = progressbar.Default(int64(len(entries)), "seeding catalog")
	}

	result := &Result{}
	for _, entry := range entries {
		if bar != nil {
			_ = bar.Add(1)
		}

		if strings.TrimSpace(entry.Title) == "" {
			log.Printf("[WARNING] skipping seed entry with empty title")
			result.Skipped++
			continue
		}
		if opts.SkipExisting && existing[strings.ToLower(entry.Title)] {
			result.Skipped++
			continue
		}

		if _, err := store.CreateMovie(entry.toMovie()); err != nil {
			return result, fmt.Errorf("failed to insert %q: %w", entry.Title, err)
		}
		result.Inserted++
	}

	return result, nil
}

func (e catalogEntry) toMovie() *models.Movie {
	movie := &models.Movie{
		Title:      strings.TrimSpace(e.Title),
		Genres:     e.Genres,
		Cast:       e.Cast,
		Directors:  e.Directors,
		Rating:     e.Rating,
		WatchCount: e.WatchCount,
	}
	if e.Plot != "" {
		plot := e.Plot
		movie.Plot = &plot
	}
	if e.Year > 0 {
		year := e.Year
		movie.Year = &year
	}
	if e.Runtime > 0 {
		runtime := e.Runtime
		movie.Runtime = &runtime
	}
	if e.PosterURL != "" {
		poster := e.PosterURL
		movie.PosterURL = &poster
	}
	return movie
}

// loadCatalog reads the catalog at path, or the embedded sample when path
// is empty.
func loadCatalog(path string) ([]catalogEntry, error) {
	data := sampleCatalog
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		data = fileData
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return file.Movies, nil
}
