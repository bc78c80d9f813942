package intent

import (
	"fmt"
	"strings"

	"github.com/poiesic/cinerec/ai"
)

const extractionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "title": {
      "type": ["string", "null"]
    },
    "genres": {
      "type": "array",
      "items": {
        "type": "string"
      }
    },
    "keywords": {
      "type": "array",
      "items": {
        "type": "string"
      }
    }
  },
  "required": ["title", "genres", "keywords"],
  "additionalProperties": false
}`

const extractionPromptTemplate = `You are an expert at analyzing user requests for movie recommendations.
Parse the user's query to identify a potential movie title, relevant genres, and specific keywords.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Available GENRES:
%s

Rules:
- Identify a specific movie title only if the user actually names one. If none, use null. Never invent a title.
- The genres field may only contain values from the available genre list, lowercase.
- Keywords are specific themes or elements from the query (e.g., "time travel", "zombie", "heist"), lowercase.
- If the user asks for movies similar to a named one, that name is the title; do not guess its genres.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "I want an underrated zombie heist movie"
Output:
{
  "title": null,
  "genres": [],
  "keywords": ["zombie", "heist"]
}

Example:
Input: "movies like The Matrix"
Output:
{
  "title": "The Matrix",
  "genres": [],
  "keywords": []
}

Example:
Input: "a funny scary movie for halloween"
Output:
{
  "title": null,
  "genres": ["comedy", "horror"],
  "keywords": ["halloween"]
}`

const retryNoticeTemplate = `

PREVIOUS ATTEMPT FAILED: %s.
Your last reply could not be used. Respond again with ONLY the JSON object, exactly matching the schema above.`

// buildSystemPrompt creates the extraction system prompt with the catalog's
// genre vocabulary embedded. An empty list falls back to the canonical set.
func buildSystemPrompt(genres []string) string {
	if len(genres) == 0 {
		genres = ai.CanonicalGenres
	}
	return fmt.Sprintf(extractionPromptTemplate,
		extractionResponseSchema,
		strings.Join(genres, ", "))
}

// buildRetryPrompt augments the system prompt with the prior failure mode so
// the model can correct itself on the next attempt.
func buildRetryPrompt(genres []string, lastFailure string) string {
	return buildSystemPrompt(genres) + fmt.Sprintf(retryNoticeTemplate, lastFailure)
}
