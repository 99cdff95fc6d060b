// file: internal/search/similarity_test.go
// version: 1.0.0
// guid: 9b0c1d2e-3f4a-4b5c-8d6e-7f8a9b0c1d2e

package search

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"abc", "abc", 0},
		{"ABC", "abc", 0}, // case insensitive
		{"godfather", "godfther", 1},
	}
	for _, tt := range tests {
		got := Distance(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDistance_Symmetry(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"", "abc"},
		{"The Godfather", "Godfther"},
		{"a", "z"},
	}
	for _, p := range pairs {
		if Distance(p[0], p[1]) != Distance(p[1], p[0]) {
			t.Errorf("Distance(%q, %q) != Distance(%q, %q)", p[0], p[1], p[1], p[0])
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		query, text string
		want        float64
	}{
		{"god", "The Godfather", 1.0}, // substring short-circuit
		{"The Godfather", "The Godfather", 1.0},
		{"the godfather", "The Godfather", 1.0}, // case insensitive
		{"anything", "", 0},
		{"anything", "   ", 0},
	}
	for _, tt := range tests {
		got := Similarity(tt.query, tt.text)
		if got != tt.want {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.query, tt.text, got, tt.want)
		}
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"abc", "xyz"},
		{"", "anything"},
		{"a very long query string indeed", "x"},
		{"Godfther", "Godfather"},
		{"zzzzzzzz", "aaaaaaaa"},
	}
	for _, p := range pairs {
		s := Similarity(p[0], p[1])
		if s < 0 || s > 1 {
			t.Errorf("Similarity(%q, %q) = %v, out of [0, 1]", p[0], p[1], s)
		}
	}
}

func TestSimilarity_TypoTolerance(t *testing.T) {
	// One deleted character: must come through the edit-distance path,
	// not the containment branch, and still clear the ranking gate.
	s := Similarity("Godfther", "Godfather")
	if s >= 1.0 {
		t.Errorf("expected edit-distance path, got %v", s)
	}
	if s <= 0.4 {
		t.Errorf("Similarity(Godfther, Godfather) = %v, want > 0.4", s)
	}
}

func TestSimilarity_DisjointStrings(t *testing.T) {
	if s := Similarity("zzzzzzzz", "aaaaaaaa"); s != 0 {
		t.Errorf("disjoint equal-length strings: got %v, want 0", s)
	}
}
