package funding

import (
	"cmp"
	"slices"
)

// Counts maps a funding handle to the number of resolution paths that
// produced it.
type Counts map[string]int

// Entry is one ranked handle.
type Entry struct {
	User   string `json:"user"`
	Weight int    `json:"weight"`
}

// Aggregate counts handles, ignoring empty ones.
func Aggregate(handles []string) Counts {
	counts := make(Counts)
	for _, h := range handles {
		if h != "" {
			counts[h]++
		}
	}
	return counts
}

// Rank orders counts by weight, highest first. Equal weights are ordered by
// handle so output is reproducible.
func Rank(counts Counts) []Entry {
	entries := make([]Entry, 0, len(counts))
	for user, weight := range counts {
		entries = append(entries, Entry{User: user, Weight: weight})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Weight, a.Weight); c != 0 {
			return c
		}
		return cmp.Compare(a.User, b.User)
	})
	return entries
}
