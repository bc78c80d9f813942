package mock

import (
	"context"
	"encoding/json"
	"strings"
)

// MockCompleter is a test double for ai.TextCompleter.
// It allows custom behavior injection via function fields.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, uses the default canned-intent behavior.
	CompleteFunc func(ctx context.Context, system, user string) (string, error)

	callCount int
}

// NewMockCompleter creates a mock completer with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockCompleter().
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Complete returns a canned, well-formed intent reply.
// Default behavior: treats the first few words of the user message as
// keywords and emits the extraction JSON shape, so pipeline tests get a
// parseable reply without scripting one.
func (m *MockCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	m.callCount++

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, system, user)
	}

	words := strings.Fields(strings.ToLower(user))
	keywords := make([]string, 0, 3)
	for _, word := range words {
		if len(keywords) >= 3 {
			break
		}

		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if word == "" {
			continue
		}
		keywords = append(keywords, word)
	}

	reply := map[string]any{
		"title":    nil,
		"genres":   []string{},
		"keywords": keywords,
	}
	data, err := json.Marshal(reply)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockCompleter) Reset() {
	m.callCount = 0
	m.CompleteFunc = nil
}
