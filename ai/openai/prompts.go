package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/poiesic/cinerec/ai"
)

const analystResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "recommendations": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "title": {
            "type": "string"
          },
          "justification": {
            "type": "string"
          }
        },
        "required": ["title", "justification"],
        "additionalProperties": false
      }
    }
  },
  "required": ["recommendations"],
  "additionalProperties": false
}`

const analystPromptTemplate = `You are a charismatic and expert movie recommender. Your goal is to get the user excited about the movies already selected for them.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Write one entry per candidate movie you are given, keeping the "title" field exactly as provided.
- For "justification", write a short, exciting pitch of one or two sentences. Sell the movie!
- Connect each pitch to the user's original request where possible.
- Do not invent movies that are not in the candidate list, and do not reorder or drop candidates.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input request: "something scary set in space"
Candidates: [{"title":"Alien","genres":"horror, science fiction",...}]
Output:
{
  "recommendations": [
    {"title":"Alien","justification":"A claustrophobic masterpiece that turns a deep-space cargo run into pure dread. Exactly the scary-in-space experience you asked for."}
  ]
}`

// promptCandidate is the candidate shape embedded in the analyst prompt.
// Attribute lists are comma-joined so the model reads them as plain text.
type promptCandidate struct {
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	Genres      string  `json:"genres"`
	Keywords    string  `json:"keywords"`
	VoteAverage float64 `json:"vote_average"`
}

// buildAnalystSystemPrompt creates the analyst system prompt with the
// response schema embedded.
func buildAnalystSystemPrompt() string {
	return fmt.Sprintf(analystPromptTemplate, analystResponseSchema)
}

// buildAnalystUserPrompt renders the user's request and the candidate data
// into the analyst's user message.
func buildAnalystUserPrompt(request string, candidates []ai.Candidate) (string, error) {
	clean := make([]promptCandidate, 0, len(candidates))
	for _, c := range candidates {
		clean = append(clean, promptCandidate{
			Title:       c.Title,
			Overview:    c.Overview,
			Genres:      strings.Join(c.Genres, ", "),
			Keywords:    strings.Join(c.Keywords, ", "),
			VoteAverage: c.VoteAverage,
		})
	}

	data, err := json.MarshalIndent(clean, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("User's Original Request: %q\n\nCandidate Movie Data:\n%s", request, data), nil
}
