package intent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/poiesic/cinerec/ai"
	"github.com/poiesic/cinerec/core"
)

// parseOutcome tags the result of one recovery heuristic.
type parseOutcome int

const (
	// outcomeSuccess means the heuristic produced an intent.
	outcomeSuccess parseOutcome = iota + 1
	// outcomeRecoverable means this heuristic failed but a more permissive
	// one may still succeed on the same text.
	outcomeRecoverable
	// outcomeUnrecoverable means no heuristic can act on this text and the
	// whole attempt should be abandoned.
	outcomeUnrecoverable
)

// parseResult is the tagged outcome of one heuristic: a parsed intent on
// success, otherwise the failure mode that gets fed back into the retry
// prompt.
type parseResult struct {
	outcome parseOutcome
	intent  *core.Intent
	reason  string
}

// heuristic is one rung of the recovery ladder: an explicit, testable
// function from reply text to a tagged outcome.
type heuristic func(text string) parseResult

// ladder holds the recovery heuristics in order of increasing permissiveness.
// Parsing walks it top to bottom and stops at the first success.
var ladder = []struct {
	name string
	fn   heuristic
}{
	{"strict", parseStrict},
	{"fence-stripped", parseFenced},
	{"balanced-fragment", parseFragment},
	{"key-repaired", parseRepaired},
	{"scavenged", scavengeIntent},
}

// rawIntent matches the JSON shape the extraction prompt demands.
type rawIntent struct {
	Title    string   `json:"title"`
	Genres   []string `json:"genres"`
	Keywords []string `json:"keywords"`
}

// ParseReply turns raw model output into a validated intent, applying the
// recovery ladder when the reply is not well-formed. The returned error
// carries the failure mode of the last applicable heuristic; the caller
// folds it into the retry prompt.
func ParseReply(text string) (*core.Intent, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("model returned an empty reply")
	}

	lastReason := ""
	for _, rung := range ladder {
		result := rung.fn(text)
		switch result.outcome {
		case outcomeSuccess:
			intent := normalizeIntent(result.intent)
			if err := core.ValidateIntent(intent); err != nil {
				// A well-formed but empty reply means the model found
				// nothing to extract; retrying the ladder on it would
				// only scavenge noise from the reply itself.
				return nil, err
			}
			return intent, nil
		case outcomeUnrecoverable:
			return nil, errors.New(result.reason)
		default:
			lastReason = result.reason
		}
	}

	return nil, fmt.Errorf("reply did not match the expected JSON shape (%s)", lastReason)
}

// parseStrict accepts only the exact schema: a single JSON object with no
// unknown fields.
func parseStrict(text string) parseResult {
	decoder := json.NewDecoder(bytes.NewReader([]byte(text)))
	decoder.DisallowUnknownFields()

	var raw rawIntent
	if err := decoder.Decode(&raw); err != nil {
		return parseResult{outcome: outcomeRecoverable, reason: "reply was not a bare JSON object"}
	}
	if decoder.More() {
		return parseResult{outcome: outcomeRecoverable, reason: "reply had trailing content after the JSON object"}
	}
	return parseResult{outcome: outcomeSuccess, intent: intentFromRaw(raw)}
}

// parseFenced strips surrounding markdown code fences and prose markers,
// then accepts any JSON object with the expected fields.
func parseFenced(text string) parseResult {
	stripped := stripFences(text)

	var raw rawIntent
	if err := json.Unmarshal([]byte(stripped), &raw); err != nil {
		return parseResult{outcome: outcomeRecoverable, reason: "reply was not valid JSON after removing fences"}
	}
	return parseResult{outcome: outcomeSuccess, intent: intentFromRaw(raw)}
}

// parseFragment extracts the first balanced brace-delimited span and parses
// it, recovering objects buried in surrounding prose.
func parseFragment(text string) parseResult {
	fragment, ok := firstObjectFragment(text)
	if !ok {
		return parseResult{outcome: outcomeRecoverable, reason: "reply contained no JSON object"}
	}

	var raw rawIntent
	if err := json.Unmarshal([]byte(fragment), &raw); err != nil {
		return parseResult{outcome: outcomeRecoverable, reason: "embedded JSON object did not parse"}
	}
	return parseResult{outcome: outcomeSuccess, intent: intentFromRaw(raw)}
}

// parseRepaired applies every structural fix at once: fence stripping,
// fragment extraction, and quote repair on mangled keys.
func parseRepaired(text string) parseResult {
	candidate := stripFences(text)
	if fragment, ok := firstObjectFragment(candidate); ok {
		candidate = fragment
	}
	candidate = repairKeyQuotes(candidate)

	var raw rawIntent
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return parseResult{outcome: outcomeRecoverable, reason: "reply JSON was too damaged to repair"}
	}
	return parseResult{outcome: outcomeSuccess, intent: intentFromRaw(raw)}
}

var (
	titleFieldRe    = regexp.MustCompile(`(?i)"?title"?\s*[:=]\s*"([^"]+)"`)
	keywordsFieldRe = regexp.MustCompile(`(?i)"?keywords?"?\s*[:=]\s*\[([^\]]*)\]`)
)

// scavengeIntent is the last resort: pull plausible field values out of free
// text with regular expressions and the genre vocabulary. The result is
// lower confidence but still a usable intent.
func scavengeIntent(text string) parseResult {
	intent := &core.Intent{}

	if m := titleFieldRe.FindStringSubmatch(text); m != nil {
		intent.Title = m[1]
	}

	lowered := strings.ToLower(text)
	for _, genre := range ai.CanonicalGenres {
		if containsWord(lowered, genre) {
			intent.Genres = append(intent.Genres, genre)
		}
	}

	if m := keywordsFieldRe.FindStringSubmatch(text); m != nil {
		for _, part := range strings.Split(m[1], ",") {
			keyword := strings.Trim(strings.TrimSpace(part), `"'`)
			if keyword != "" {
				intent.Keywords = append(intent.Keywords, keyword)
			}
		}
	}

	if intent.IsEmpty() {
		return parseResult{outcome: outcomeRecoverable, reason: "no intent fields found in free text"}
	}
	return parseResult{outcome: outcomeSuccess, intent: intent}
}

func intentFromRaw(raw rawIntent) *core.Intent {
	return &core.Intent{
		Title:    raw.Title,
		Genres:   raw.Genres,
		Keywords: raw.Keywords,
	}
}

// stripFences removes markdown code fences and their language tags from
// around a reply.
func stripFences(text string) string {
	stripped := strings.TrimSpace(text)
	stripped = strings.TrimPrefix(stripped, "```json")
	stripped = strings.TrimPrefix(stripped, "```")
	stripped = strings.TrimSuffix(stripped, "```")
	return strings.TrimSpace(stripped)
}

// firstObjectFragment returns the span from the first opening brace to the
// last closing brace, the widest candidate for an embedded object.
func firstObjectFragment(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// repairKeyQuotes fixes a common model mistake: object keys missing their
// opening quote, as in `, title": null`. It walks the text rune by rune and
// re-quotes any bare key that ends in `":`.
func repairKeyQuotes(s string) string {
	runes := []rune(s)
	fixed := make([]rune, 0, len(runes)+16)

	i := 0
	for i < len(runes) {
		ch := runes[i]

		// Keys can only start after { or ,
		if ch == '{' || ch == ',' {
			fixed = append(fixed, ch)
			i++

			for i < len(runes) && (runes[i] == ' ' || runes[i] == '\n' || runes[i] == '\t') {
				fixed = append(fixed, runes[i])
				i++
			}

			if i < len(runes) && runes[i] != '"' && isLetter(runes[i]) {
				keyStart := i
				for i < len(runes) && (isLetter(runes[i]) || runes[i] == '_' || runes[i] == ' ') {
					i++
				}

				if i+1 < len(runes) && runes[i] == '"' && runes[i+1] == ':' {
					// Bare key with a closing quote: add the missing
					// opening quote and keep the rest as-is.
					fixed = append(fixed, '"')
					fixed = append(fixed, runes[keyStart:i]...)
					continue
				}

				// Not a key, keep what was skipped.
				fixed = append(fixed, runes[keyStart:i]...)
			}
			continue
		}

		fixed = append(fixed, ch)
		i++
	}

	return string(fixed)
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// containsWord reports whether text contains term delimited by non-letters,
// so "drama" does not match inside "melodramatic".
func containsWord(text, term string) bool {
	idx := 0
	for {
		pos := strings.Index(text[idx:], term)
		if pos < 0 {
			return false
		}
		pos += idx

		beforeOK := pos == 0 || !isLetter(rune(text[pos-1]))
		afterPos := pos + len(term)
		afterOK := afterPos >= len(text) || !isLetter(rune(text[afterPos]))
		if beforeOK && afterOK {
			return true
		}
		idx = pos + 1
	}
}
