package core

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for catalog entries.
// It is generated by content-based hashing of the normalized title.
type ID uint64

// IDFromTitle generates a deterministic ID from a movie title using BLAKE2b
// hashing. The title is lowercased and trimmed first, so re-ingesting the
// same catalog produces the same IDs.
func IDFromTitle(title string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(strings.ToLower(strings.TrimSpace(title))))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Strategy identifies which retrieval path serves a request.
type Strategy int

const (
	// StrategyTitle anchors on a named movie and ranks by similarity to it.
	StrategyTitle Strategy = iota + 1
	// StrategyCategory filters and ranks by the request's genres and keywords.
	StrategyCategory
)

// String returns the routing label for logs and progress output.
func (s Strategy) String() string {
	switch s {
	case StrategyTitle:
		return "TITLE"
	case StrategyCategory:
		return "CATEGORY"
	default:
		return "UNKNOWN"
	}
}

// Intent is the structured interpretation of a user's free-text request.
// It is built once by the resilience layer and never mutated afterwards.
type Intent struct {
	Title    string   // specific movie the user named, empty if none
	Genres   []string // normalized genre names, possibly empty
	Keywords []string // normalized keywords/themes, possibly empty
}

// HasTitle reports whether the user named a specific movie.
func (in *Intent) HasTitle() bool {
	return strings.TrimSpace(in.Title) != ""
}

// HasCategories reports whether the intent carries any genres or keywords.
func (in *Intent) HasCategories() bool {
	return len(in.Genres) > 0 || len(in.Keywords) > 0
}

// IsEmpty reports whether the intent carries nothing to search on.
func (in *Intent) IsEmpty() bool {
	return !in.HasTitle() && !in.HasCategories()
}

// Movie is a read-only catalog entry. Entries are written once at ingest
// time and never modified by the recommendation pipeline.
type Movie struct {
	Id          ID
	Title       string
	Genres      []string
	Keywords    []string
	Overview    string
	Popularity  float64
	VoteAverage float64
	VoteCount   uint64
}

// Recommendation is one entry of the final ranked output: a title, its
// similarity score, and the attributes that drove the match.
type Recommendation struct {
	Title           string
	Score           float64
	VoteAverage     float64
	MatchedGenres   []string
	MatchedKeywords []string
	Justification   string
}

// RankedResult is the final artifact of one pipeline run. Zero
// recommendations is the explicit "no matches" outcome, not an error.
type RankedResult struct {
	Request         string
	Intent          Intent
	Strategy        Strategy
	Anchor          *Movie // resolved title anchor, nil for category searches
	Recommendations []Recommendation
}

// Empty reports whether the chosen strategy found no matching entries.
func (r *RankedResult) Empty() bool {
	return len(r.Recommendations) == 0
}
