package heuristic

import (
	"math"
	"strings"
	"testing"

	"github.com/debnit/MsmeBazaar-sub001/internal/domain"
)

func testBuyer() *domain.BuyerProfile {
	return &domain.BuyerProfile{
		ID: "buyer-1",
		Preferences: domain.Preferences{
			Industries:     []string{"technology"},
			RevenueRange:   domain.Range{Min: 1_000_000, Max: 10_000_000},
			ValuationRange: domain.Range{Min: 1_000_000, Max: 8_000_000},
			Locations:      []string{"Bangalore"},
		},
	}
}

func strongListing() *domain.BusinessListing {
	return &domain.BusinessListing{
		ID:         "biz-1",
		Name:       "Acme Tech",
		Industry:   "technology",
		Revenue:    5_000_000,
		Valuation:  6_000_000,
		Location:   "Bangalore",
		GrowthRate: 20,
		RiskScore:  20,
	}
}

func TestScoreStrongCandidate(t *testing.T) {
	scorer := NewScorer(DefaultWeights(), 0)

	score, reasons := scorer.Score(testBuyer(), strongListing())

	// 0.25 industry + 0.20 revenue + 0.15 valuation + 0.15 location +
	// 0.10 risk + 0.05 growth, no employee bounds expressed.
	if math.Abs(score-0.90) > 1e-9 {
		t.Fatalf("expected score 0.90, got %v", score)
	}

	if len(reasons) == 0 || !strings.Contains(reasons[0], "technology") {
		t.Fatalf("expected industry reason first, got %v", reasons)
	}

	if RecommendAction(score, 20) != domain.ActionPursue {
		t.Fatalf("expected pursue for strong low-risk candidate")
	}
}

func TestScoreWeakCandidateBelowRelevance(t *testing.T) {
	scorer := NewScorer(DefaultWeights(), 0)

	listing := &domain.BusinessListing{
		ID:         "biz-2",
		Industry:   "retail",
		Revenue:    50_000_000,
		Valuation:  6_000_000,
		Location:   "Mumbai",
		GrowthRate: 5,
		RiskScore:  50,
	}

	score, _ := scorer.Score(testBuyer(), listing)
	if score >= 0.3 {
		t.Fatalf("expected score below relevance threshold 0.3, got %v", score)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	scorer := NewScorer(DefaultWeights(), 0)

	first, _ := scorer.Score(testBuyer(), strongListing())
	second, _ := scorer.Score(testBuyer(), strongListing())

	if first != second {
		t.Fatalf("expected deterministic score, got %v then %v", first, second)
	}
}

func TestScoreGrowthBonusIsMonotonic(t *testing.T) {
	scorer := NewScorer(DefaultWeights(), 0)

	low := strongListing()
	low.GrowthRate = 10
	high := strongListing()
	high.GrowthRate = 11

	lowScore, _ := scorer.Score(testBuyer(), low)
	highScore, _ := scorer.Score(testBuyer(), high)

	if highScore < lowScore {
		t.Fatalf("expected growth above 10%% to never decrease score: %v -> %v", lowScore, highScore)
	}
	if math.Abs((highScore-lowScore)-0.05) > 1e-9 {
		t.Fatalf("expected growth bonus of 0.05, got %v", highScore-lowScore)
	}
}

func TestScoreIsClampedToOne(t *testing.T) {
	buyer := testBuyer()
	minEmp, maxEmp := 10, 100
	buyer.Preferences.MinEmployees = &minEmp
	buyer.Preferences.MaxEmployees = &maxEmp

	listing := strongListing()
	listing.Employees = 50

	scorer := NewScorer(DefaultWeights(), 0)

	// All criteria satisfied: raw weighted sum is 1.05.
	score, _ := scorer.Score(buyer, listing)
	if score != 1.0 {
		t.Fatalf("expected score clamped to 1.0, got %v", score)
	}
}

func TestRangeFitPartialCredit(t *testing.T) {
	t.Parallel()

	r := domain.Range{Min: 1_000_000, Max: 10_000_000}

	tests := []struct {
		name   string
		value  float64
		expect float64
	}{
		{name: "inside range", value: 5_000_000, expect: 1},
		{name: "at lower bound", value: 1_000_000, expect: 1},
		{name: "below min uses ratio to min", value: 500_000, expect: 0.5},
		{name: "above max uses ratio to max", value: 50_000_000, expect: 0.2},
		{name: "far above max decays but never zeroes", value: 1_000_000_000, expect: 0.01},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := rangeFit(tt.value, r); math.Abs(got-tt.expect) > 1e-9 {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}

	if got := rangeFit(5, domain.Range{}); got != 0 {
		t.Fatalf("expected zero fit for unset range, got %v", got)
	}
}

func TestRiskAlignment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		tolerance domain.RiskTolerance
		riskScore float64
		expect    float64
	}{
		{name: "low tolerance within ceiling", tolerance: domain.RiskToleranceLow, riskScore: 25, expect: 1},
		{name: "low tolerance above ceiling", tolerance: domain.RiskToleranceLow, riskScore: 60, expect: 0.5},
		{name: "medium default within", tolerance: "", riskScore: 55, expect: 1},
		{name: "high tolerance within", tolerance: domain.RiskToleranceHigh, riskScore: 85, expect: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := riskAlignment(tt.tolerance, tt.riskScore); math.Abs(got-tt.expect) > 1e-9 {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestAssessRisk(t *testing.T) {
	if AssessRisk(20) != domain.RiskLow {
		t.Fatalf("expected low risk below 30")
	}
	if AssessRisk(45) != domain.RiskMedium {
		t.Fatalf("expected medium risk below 60")
	}
	if AssessRisk(60) != domain.RiskHigh {
		t.Fatalf("expected high risk at 60")
	}
}

func TestRecommendAction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		score     float64
		riskScore float64
		expect    domain.Action
	}{
		{name: "high score low risk", score: 0.85, riskScore: 30, expect: domain.ActionPursue},
		{name: "high score but risky", score: 0.85, riskScore: 50, expect: domain.ActionConsider},
		{name: "moderate score", score: 0.65, riskScore: 50, expect: domain.ActionConsider},
		{name: "low score", score: 0.5, riskScore: 10, expect: domain.ActionPass},
		{name: "too risky", score: 0.9, riskScore: 70, expect: domain.ActionPass},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RecommendAction(tt.score, tt.riskScore); got != tt.expect {
				t.Fatalf("expected %s, got %s", tt.expect, got)
			}
		})
	}
}

func TestEvaluatePopulatesResult(t *testing.T) {
	scorer := NewScorer(DefaultWeights(), 0.75)

	result := scorer.Evaluate(testBuyer(), strongListing())

	if result.BusinessID != "biz-1" || result.BusinessName != "Acme Tech" {
		t.Fatalf("unexpected identity: %+v", result)
	}
	if result.Confidence != 0.75 {
		t.Fatalf("expected configured confidence 0.75, got %v", result.Confidence)
	}
	if result.RiskAssessment != domain.RiskLow {
		t.Fatalf("expected low risk assessment, got %s", result.RiskAssessment)
	}
	if result.RecommendedAction != domain.ActionPursue {
		t.Fatalf("expected pursue, got %s", result.RecommendedAction)
	}
	if len(result.Reasons) == 0 {
		t.Fatalf("expected reasons to be populated")
	}
}
