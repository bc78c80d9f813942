// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/cinerec/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Justifier implements ai.Justifier using OpenAI-compatible chat APIs.
type Justifier struct {
	client llms.Model
	logger *slog.Logger
}

// pitchList is the wrapper structure for the analyst's JSON response.
type pitchList struct {
	Recommendations []ai.Justification `json:"recommendations"`
}

// newJustifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newJustifier(config *ai.Config) (*Justifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.AnalystModel),
	)
	if err != nil {
		return nil, err
	}

	return &Justifier{
		client: client,
		logger: slog.Default().With("component", "openai-justifier"),
	}, nil
}

// NewJustifier creates a new pitch writer using the provided configuration.
//
// Returns ai.Justifier interface to enforce abstraction.
func NewJustifier(config *ai.Config) (ai.Justifier, error) {
	return newJustifier(config)
}

// Justify asks the model for one pitch per ranked candidate. The reply is
// parsed tolerantly: markdown fences are stripped, and a bare JSON array is
// accepted in place of the wrapper object since smaller models often drop it.
func (j *Justifier) Justify(ctx context.Context, request string, candidates []ai.Candidate) ([]ai.Justification, error) {
	userPrompt, err := buildAnalystUserPrompt(request, candidates)
	if err != nil {
		return nil, err
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildAnalystSystemPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result pitchList
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := j.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			j.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			j.logger.Debug("no choices returned from model")
			return []ai.Justification{}, nil
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		pitches, err := parsePitches(responseText)
		if err != nil {
			lastErr = err
			j.logger.Warn("error parsing analyst response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		result.Recommendations = pitches
		lastErr = nil
		break
	}

	if lastErr != nil {
		j.logger.Error("failed to parse analyst response after retries", "err", lastErr)
		return nil, lastErr
	}

	// Drop entries the model emitted without a title; they cannot be
	// matched back to a ranked result.
	pitches := make([]ai.Justification, 0, len(result.Recommendations))
	for _, p := range result.Recommendations {
		if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Justification) == "" {
			continue
		}
		pitches = append(pitches, p)
	}

	j.logger.Debug("wrote pitches",
		"candidates", len(candidates),
		"pitches", len(pitches))

	return pitches, nil
}

// parsePitches decodes the analyst reply, accepting either the wrapper
// object or a bare array of pitch entries.
func parsePitches(text string) ([]ai.Justification, error) {
	var wrapped pitchList
	if err := json.Unmarshal([]byte(text), &wrapped); err == nil && wrapped.Recommendations != nil {
		return wrapped.Recommendations, nil
	}

	// Some models return the array without the wrapper object.
	var bare []ai.Justification
	if err := json.Unmarshal([]byte(text), &bare); err == nil {
		return bare, nil
	}

	return nil, errors.New("analyst reply is not a recommendations object or array")
}
