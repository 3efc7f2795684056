// Package heuristic implements the local, always-available match scorer: a
// weighted combination of independently normalized sub-scores. It has no
// network dependency and is deterministic for identical input.
package heuristic

import (
	"fmt"

	"github.com/debnit/MsmeBazaar-sub001/internal/domain"
)

const (
	// defaultConfidence is reported for heuristic-only results. The local
	// scorer has no self-assessment, so the value reflects how much the
	// fixed rule set is trusted relative to the remote model.
	defaultConfidence = 0.7

	growthBonusThreshold  = 10.0
	growthReasonThreshold = 15.0
	lowRiskReasonCeiling  = 30.0
)

// Scorer computes match scores for buyer/listing pairs.
type Scorer struct {
	weights    Weights
	confidence float64
}

// NewScorer creates a scorer with the given weight table. A non-positive
// confidence falls back to the built-in default.
func NewScorer(weights Weights, confidence float64) *Scorer {
	if confidence <= 0 {
		confidence = defaultConfidence
	}
	return &Scorer{weights: weights, confidence: confidence}
}

// Confidence returns the fixed confidence attached to heuristic results.
func (s *Scorer) Confidence() float64 { return s.confidence }

// Evaluate scores one candidate listing for the buyer and derives the risk
// assessment and recommended action. It never fails for well-formed input:
// missing or out-of-range preferences degrade to partial credit.
func (s *Scorer) Evaluate(buyer *domain.BuyerProfile, listing *domain.BusinessListing) domain.MatchResult {
	score, reasons := s.Score(buyer, listing)

	return domain.MatchResult{
		BusinessID:        listing.ID,
		BusinessName:      listing.Name,
		Score:             score,
		Confidence:        s.confidence,
		Reasons:           reasons,
		RiskAssessment:    AssessRisk(listing.RiskScore),
		RecommendedAction: RecommendAction(score, listing.RiskScore),
	}
}

// Score returns the weighted match score in [0,1] together with one reason
// per satisfied criterion, ordered by criterion weight.
func (s *Scorer) Score(buyer *domain.BuyerProfile, listing *domain.BusinessListing) (float64, []string) {
	var total float64
	var reasons []string

	if buyer.PrefersIndustry(listing.Industry) {
		total += s.weights.Industry
		reasons = append(reasons, fmt.Sprintf("industry %s matches buyer preference", listing.Industry))
	}

	if fit := rangeFit(listing.Revenue, buyer.Preferences.RevenueRange); fit > 0 {
		total += s.weights.Revenue * fit
		if fit == 1 {
			reasons = append(reasons, fmt.Sprintf("revenue %s within target range", formatAmount(listing.Revenue)))
		}
	}

	if fit := rangeFit(listing.Valuation, buyer.Preferences.ValuationRange); fit > 0 {
		total += s.weights.Valuation * fit
		if fit == 1 {
			reasons = append(reasons, fmt.Sprintf("valuation %s within budget", formatAmount(listing.Valuation)))
		}
	}

	if buyer.PrefersLocation(listing.Location) {
		total += s.weights.Location
		reasons = append(reasons, fmt.Sprintf("located in preferred city %s", listing.Location))
	}

	if max := buyer.Preferences.MaxEmployees; max != nil && listing.Employees <= *max {
		total += s.weights.EmployeeUpper
	}
	if min := buyer.Preferences.MinEmployees; min != nil && listing.Employees >= *min {
		total += s.weights.EmployeeLower
	}

	total += s.weights.Risk * riskAlignment(buyer.Preferences.RiskTolerance, listing.RiskScore)

	if listing.GrowthRate > growthBonusThreshold {
		total += s.weights.Growth
	}
	if listing.GrowthRate > growthReasonThreshold {
		reasons = append(reasons, fmt.Sprintf("strong growth rate of %.1f%%", listing.GrowthRate))
	}
	if listing.RiskScore < lowRiskReasonCeiling {
		reasons = append(reasons, "low risk profile")
	}
	if len(listing.Certifications) > 0 {
		reasons = append(reasons, fmt.Sprintf("holds %d certifications", len(listing.Certifications)))
	}

	return clamp01(total), reasons
}

// AssessRisk buckets a 0-100 risk score into the coarse risk levels.
func AssessRisk(riskScore float64) domain.RiskLevel {
	switch {
	case riskScore < 30:
		return domain.RiskLow
	case riskScore < 60:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}

// RecommendAction derives the next step from the match score and the
// listing's risk score jointly.
func RecommendAction(score, riskScore float64) domain.Action {
	switch {
	case score > 0.8 && riskScore < 40:
		return domain.ActionPursue
	case score > 0.6 && riskScore < 60:
		return domain.ActionConsider
	default:
		return domain.ActionPass
	}
}

// rangeFit gives full credit inside the range and partial credit equal to the
// ratio against the nearer bound outside it. The ratio never fully zeroes out
// a distant mismatch; that behavior is kept for compatibility with the
// historical scoring.
func rangeFit(v float64, r domain.Range) float64 {
	if !r.IsSet() {
		return 0
	}
	if r.Contains(v) {
		return 1
	}
	if v < r.Min {
		if r.Min <= 0 {
			return 1
		}
		return clamp01(v / r.Min)
	}
	return clamp01(r.Max / v)
}

// riskAlignment compares the listing's normalized risk against the ceiling
// implied by the buyer's tolerance: full credit at or below the ceiling,
// proportional credit above it.
func riskAlignment(tolerance domain.RiskTolerance, riskScore float64) float64 {
	ceiling := riskCeiling(tolerance)
	normalized := riskScore / 100
	if normalized <= ceiling {
		return 1
	}
	return clamp01(ceiling / normalized)
}

func riskCeiling(tolerance domain.RiskTolerance) float64 {
	switch tolerance {
	case domain.RiskToleranceLow:
		return 0.3
	case domain.RiskToleranceHigh:
		return 0.9
	default:
		return 0.6
	}
}

func formatAmount(v float64) string {
	switch {
	case v >= 1e7:
		return fmt.Sprintf("₹%.1fCr", v/1e7)
	case v >= 1e5:
		return fmt.Sprintf("₹%.1fL", v/1e5)
	default:
		return fmt.Sprintf("₹%.0f", v)
	}
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
