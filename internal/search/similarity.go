// file: internal/search/similarity.go
// version: 1.0.0
// guid: 3f8e2a1b-9c4d-4e6f-8a0b-1c2d3e4f5a6b

package search

import "strings"

// Distance computes the edit distance between two strings, case-insensitive.
func Distance(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	// Single-row DP
	prev := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr := make([]int, lb+1)
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, min(prev[j]+1, prev[j-1]+cost))
		}
		prev = curr
	}
	return prev[lb]
}

// Similarity scores how closely query matches text. Returns a value in [0, 1].
// A containment match short-circuits to 1.0; otherwise the score is derived
// from edit distance relative to the longer of the two strings, floored at 0.
func Similarity(query, text string) float64 {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return 0
	}
	q := strings.ToLower(strings.TrimSpace(query))

	// Exact and partial matches dominate the edit-distance path for
	// typical searches.
	if strings.Contains(t, q) {
		return 1.0
	}

	dist := Distance(q, t)
	maxLen := max(len(q), len(t))
	s := 1.0 - float64(dist)/float64(maxLen)
	if s < 0 {
		return 0
	}
	return s
}
