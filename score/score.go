package score

import (
	"regexp"
	"sort"
)

// ScoredCandidate pairs one answer choice with its occurrence count in the
// search corpus. The count is a correlation heuristic, not a truth claim.
type ScoredCandidate struct {
	Candidate string
	Count     int
}

// Score counts non-overlapping literal occurrences of each candidate in
// corpus and ranks candidates by descending count. Candidates are OCR'd
// natural-language text, so regexp metacharacters in them are escaped
// before matching. The sort is stable: equal counts keep input order.
// Zero-count candidates are kept. An empty candidate set yields an empty
// ranking.
func Score(candidates []string, corpus string) []ScoredCandidate {
	ranked := make([]ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		count := 0
		if c != "" {
			pattern := regexp.MustCompile(regexp.QuoteMeta(c))
			count = len(pattern.FindAllStringIndex(corpus, -1))
		}
		ranked = append(ranked, ScoredCandidate{Candidate: c, Count: count})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

// Best returns the most-mentioned candidate of a ranking.
func Best(ranked []ScoredCandidate) (ScoredCandidate, bool) {
	if len(ranked) == 0 {
		return ScoredCandidate{}, false
	}
	return ranked[0], true
}

// Worst returns the least-mentioned candidate, reported for contrast with
// Best rather than as a negative-answer claim.
func Worst(ranked []ScoredCandidate) (ScoredCandidate, bool) {
	if len(ranked) == 0 {
		return ScoredCandidate{}, false
	}
	return ranked[len(ranked)-1], true
}
