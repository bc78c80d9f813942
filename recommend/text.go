package recommend

import "strings"

// normalizeTitle prepares a title for comparison: lowercased, punctuation
// removed, whitespace collapsed.
func normalizeTitle(title string) string {
	title = strings.Map(func(r rune) rune {
		if strings.ContainsRune(".,!?;:\"'()[]{}—–-", r) {
			return -1
		}
		return r
	}, title)
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// normalizeTerm lowercases a genre or keyword term and collapses internal
// whitespace runs to single spaces.
func normalizeTerm(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), " ")
}
