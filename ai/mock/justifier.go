package mock

import (
	"context"
	"fmt"

	"github.com/poiesic/cinerec/ai"
)

// MockJustifier is a test double for ai.Justifier.
// It allows custom behavior injection via function fields.
type MockJustifier struct {
	// JustifyFunc is called by Justify if set.
	// If nil, uses the default templated-pitch behavior.
	JustifyFunc func(ctx context.Context, request string, candidates []ai.Candidate) ([]ai.Justification, error)

	callCount int
}

// NewMockJustifier creates a mock justifier with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockJustifier().
func NewMockJustifier() *MockJustifier {
	return &MockJustifier{}
}

// Justify writes a deterministic templated pitch for every candidate.
func (m *MockJustifier) Justify(ctx context.Context, request string, candidates []ai.Candidate) ([]ai.Justification, error) {
	m.callCount++

	if m.JustifyFunc != nil {
		return m.JustifyFunc(ctx, request, candidates)
	}

	pitches := make([]ai.Justification, 0, len(candidates))
	for _, c := range candidates {
		pitches = append(pitches, ai.Justification{
			Title:         c.Title,
			Justification: fmt.Sprintf("%s is a strong match for your request.", c.Title),
		})
	}
	return pitches, nil
}

// CallCount returns the number of times Justify was called.
func (m *MockJustifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockJustifier) Reset() {
	m.callCount = 0
	m.JustifyFunc = nil
}
