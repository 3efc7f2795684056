package engine

import (
	"sort"

	"github.com/debnit/MsmeBazaar-sub001/internal/domain"
)

// mergeHybrid blends two independently computed rankings by listing identity.
// A listing scored by both sources gets the weighted blend of both scores,
// the average of both confidences and the concatenation of both reason
// lists. A listing seen by only one source keeps its own score scaled by
// that source's fraction, so single-source matches are not inflated relative
// to dual-source ones.
func mergeHybrid(remoteMatches, heuristicMatches []domain.MatchResult, remoteWeight, heuristicWeight float64) []domain.MatchResult {
	heuristicByID := make(map[string]domain.MatchResult, len(heuristicMatches))
	for _, m := range heuristicMatches {
		heuristicByID[m.BusinessID] = m
	}

	merged := make([]domain.MatchResult, 0, len(remoteMatches)+len(heuristicMatches))
	seen := make(map[string]bool, len(remoteMatches))

	for _, rm := range remoteMatches {
		seen[rm.BusinessID] = true

		hm, both := heuristicByID[rm.BusinessID]
		if !both {
			rm.Score = clamp01(rm.Score * remoteWeight)
			merged = append(merged, rm)
			continue
		}

		rm.Score = clamp01(remoteWeight*rm.Score + heuristicWeight*hm.Score)
		rm.Confidence = clamp01((rm.Confidence + hm.Confidence) / 2)
		rm.Reasons = append(rm.Reasons, hm.Reasons...)
		if rm.RiskAssessment == "" {
			rm.RiskAssessment = hm.RiskAssessment
		}
		if rm.RecommendedAction == "" {
			rm.RecommendedAction = hm.RecommendedAction
		}
		merged = append(merged, rm)
	}

	for _, hm := range heuristicMatches {
		if seen[hm.BusinessID] {
			continue
		}
		hm.Score = clamp01(hm.Score * heuristicWeight)
		merged = append(merged, hm)
	}

	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Score > merged[j].Score })
	return merged
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
