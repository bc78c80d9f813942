package intent

import (
	"strings"

	"github.com/poiesic/cinerec/core"
)

// genreAliases maps common variants the model emits to canonical genre
// names.
var genreAliases = map[string]string{
	"sci-fi":          "science fiction",
	"scifi":           "science fiction",
	"science-fiction": "science fiction",
	"kids":            "family",
	"children":        "family",
	"musical":         "music",
	"documentaries":   "documentary",
	"historical":      "history",
	"suspense":        "thriller",
}

// nullTitles are literal strings models emit instead of JSON null when no
// title is present.
var nullTitles = map[string]struct{}{
	"null": {},
	"none": {},
	"n/a":  {},
}

// normalizeIntent canonicalizes an intent in place: terms are lowercased
// with collapsed whitespace, genre aliases are folded to canonical names,
// duplicates are dropped, and null-like title strings become empty.
func normalizeIntent(intent *core.Intent) *core.Intent {
	if intent == nil {
		return nil
	}

	intent.Title = normalizeTitle(intent.Title)

	genres := make([]string, 0, len(intent.Genres))
	for _, genre := range intent.Genres {
		term := normalizeTerm(genre)
		if canonical, ok := genreAliases[term]; ok {
			term = canonical
		}
		if term != "" {
			genres = append(genres, term)
		}
	}
	intent.Genres = dedupe(genres)

	keywords := make([]string, 0, len(intent.Keywords))
	for _, keyword := range intent.Keywords {
		if term := normalizeTerm(keyword); term != "" {
			keywords = append(keywords, term)
		}
	}
	intent.Keywords = dedupe(keywords)

	return intent
}

// normalizeTitle trims the title and folds null-like placeholder strings to
// empty. Casing is preserved for display.
func normalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if _, ok := nullTitles[strings.ToLower(title)]; ok {
		return ""
	}
	return title
}

// normalizeTerm lowercases a term and collapses internal whitespace runs to
// single spaces.
func normalizeTerm(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), " ")
}

// dedupe removes duplicate terms while preserving first-seen order.
func dedupe(terms []string) []string {
	if len(terms) < 2 {
		return terms
	}

	seen := make(map[string]struct{}, len(terms))
	unique := terms[:0]
	for _, term := range terms {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		unique = append(unique, term)
	}
	return unique
}
