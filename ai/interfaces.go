package ai

import "context"

// TextCompleter produces a free-form text completion for a prompt pair.
// The model behind it is an untrusted collaborator: replies are requested as
// JSON but callers must treat them as arbitrary text and recover from
// malformed output themselves.
// Implementations must be thread-safe for concurrent use.
type TextCompleter interface {
	// Complete sends a system prompt and a user message to the model and
	// returns the raw completion text verbatim, with no parsing or
	// validation. An empty string with a nil error means the model
	// returned no choices.
	Complete(ctx context.Context, system, user string) (string, error)
}

// Justifier rewrites deterministic match explanations into short
// natural-language pitches for the final ranked results.
// Implementations must be thread-safe for concurrent use.
type Justifier interface {
	// Justify analyzes the ranked candidates against the user's original
	// request and returns one pitch per candidate it chose to cover.
	// Candidates missing from the returned slice keep their existing
	// justification text. Returns an error if the model reply cannot be
	// parsed; callers are expected to degrade gracefully.
	Justify(ctx context.Context, request string, candidates []Candidate) ([]Justification, error)
}

// Candidate is the per-movie payload handed to the Justifier: the fields a
// model needs to pitch the movie, already clipped to prompt-friendly sizes.
type Candidate struct {
	// Title is the exact catalog title, used to match pitches back to
	// ranked results.
	Title string

	// Overview is the plot summary, clipped by the caller.
	Overview string

	// Genres are the movie's genre names.
	Genres []string

	// Keywords are the movie's theme keywords, clipped by the caller.
	Keywords []string

	// VoteAverage is the catalog rating, included so the model can cite it.
	VoteAverage float64
}

// Justification pairs a candidate title with the model's pitch for it.
type Justification struct {
	Title         string `json:"title"`
	Justification string `json:"justification"`
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages TextCompleter and
// Justifier instances, ensuring they share configuration appropriately.
type Provider interface {
	// Completer returns the text completion service.
	// The returned TextCompleter is safe for concurrent use.
	Completer() TextCompleter

	// Justifier returns the recommendation pitch-writing service.
	// The returned Justifier is safe for concurrent use.
	Justifier() Justifier

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
