package recommend

import "strings"

// overlapGenres returns the reference genres a candidate's genre set covers,
// and the covered fraction of the reference set. Genres match by exact
// equality after normalization. An empty reference set yields a zero ratio.
func overlapGenres(candidate, reference []string) ([]string, float64) {
	if len(reference) == 0 {
		return nil, 0
	}

	have := make(map[string]struct{}, len(candidate))
	for _, genre := range candidate {
		have[normalizeTerm(genre)] = struct{}{}
	}

	var matched []string
	for _, ref := range reference {
		if _, ok := have[normalizeTerm(ref)]; ok {
			matched = append(matched, ref)
		}
	}
	return matched, float64(len(matched)) / float64(len(reference))
}

// overlapKeywords returns the reference keywords a candidate's keyword set
// covers, and the covered fraction of the reference set. A reference keyword
// is covered when a candidate keyword equals it or contains it, so "war"
// still matches a candidate tagged "world war ii". An empty reference set
// yields a zero ratio.
func overlapKeywords(candidate, reference []string) ([]string, float64) {
	if len(reference) == 0 {
		return nil, 0
	}

	have := make([]string, 0, len(candidate))
	for _, keyword := range candidate {
		if term := normalizeTerm(keyword); term != "" {
			have = append(have, term)
		}
	}

	var matched []string
	for _, ref := range reference {
		term := normalizeTerm(ref)
		if term == "" {
			continue
		}
		for _, cand := range have {
			if cand == term || strings.Contains(cand, term) {
				matched = append(matched, ref)
				break
			}
		}
	}
	return matched, float64(len(matched)) / float64(len(reference))
}
