package engine

import (
	"sort"

	"github.com/debnit/MsmeBazaar-sub001/internal/domain"
)

const dueDiligenceAverage = 0.8

// rank deduplicates by listing identity, sorts descending by score and
// truncates to the requested limit. Merging across sources has already
// happened by the time this runs, so dropping a duplicate here only guards
// against a remote result repeating a listing.
func rank(matches []domain.MatchResult, limit int) (ranked []domain.MatchResult, total int) {
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })

	seen := make(map[string]bool, len(matches))
	deduped := matches[:0]
	for _, m := range matches {
		if seen[m.BusinessID] {
			continue
		}
		seen[m.BusinessID] = true
		deduped = append(deduped, m)
	}

	total = len(deduped)
	if len(deduped) > limit {
		deduped = deduped[:limit]
	}
	return deduped, total
}

// recommendations derives the buyer-facing advice for a ranked match list.
func recommendations(matches []domain.MatchResult) []string {
	if len(matches) == 0 {
		return []string{"No strong matches found. Consider broadening your acquisition criteria."}
	}

	var recs []string

	var sum float64
	for _, m := range matches {
		sum += m.Score
	}
	if sum/float64(len(matches)) > dueDiligenceAverage {
		recs = append(recs, "Average match quality is high. Proceed to due diligence on the top candidates.")
	}

	for _, m := range matches {
		if m.RecommendedAction == domain.ActionPursue {
			recs = append(recs, "High-priority opportunity: at least one match is recommended to pursue.")
			break
		}
	}

	return recs
}
