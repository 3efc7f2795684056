package features

import (
	"testing"
	"time"

	"github.com/debnit/MsmeBazaar-sub001/internal/domain"
)

func testBuyer() *domain.BuyerProfile {
	return &domain.BuyerProfile{
		ID:                 "buyer-1",
		InvestmentCapacity: 8_000_000,
		PastInvestments:    3,
		RiskProfileScore:   42,
		DecisionSpeed:      domain.DecisionFast,
		Preferences: domain.Preferences{
			Industries:             []string{"technology", "logistics"},
			RevenueRange:           domain.Range{Min: 1_000_000, Max: 10_000_000},
			ValuationRange:         domain.Range{Min: 1_000_000, Max: 8_000_000},
			Locations:              []string{"Bangalore"},
			RiskTolerance:          domain.RiskToleranceLow,
			InvestmentHorizon:      domain.HorizonLong,
			RequiredCertifications: []string{"ISO 9001"},
		},
	}
}

func TestBuyerFeatures(t *testing.T) {
	extractor := NewExtractor(DefaultCatalog())

	vec, err := extractor.BuyerFeatures(testBuyer())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := map[string]float64{
		"investment_capacity":         8_000_000,
		"revenue_min":                 1_000_000,
		"revenue_max":                 10_000_000,
		"risk_tolerance":              1,
		"investment_horizon":          3,
		"decision_speed":              3,
		"risk_profile_score":          42,
		"past_investments":            3,
		"required_cert_count":         1,
		"prefers_industry_technology": 1,
		"prefers_industry_logistics":  1,
		"prefers_industry_retail":     0,
		"prefers_tier1_location":      1,
	}

	for key, expect := range checks {
		got, ok := vec[key]
		if !ok {
			t.Fatalf("missing feature %q", key)
		}
		if got != expect {
			t.Fatalf("feature %q: expected %v, got %v", key, expect, got)
		}
	}
}

func TestBuyerFeaturesDefaultsOpenEmployeeBounds(t *testing.T) {
	extractor := NewExtractor(DefaultCatalog())

	vec, err := extractor.BuyerFeatures(&domain.BuyerProfile{ID: "buyer-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if vec["employees_min"] != 0 {
		t.Fatalf("expected open lower bound 0, got %v", vec["employees_min"])
	}
	if vec["employees_max"] != 1_000_000 {
		t.Fatalf("expected open upper bound 1000000, got %v", vec["employees_max"])
	}
}

func TestBusinessFeatures(t *testing.T) {
	extractor := NewExtractor(DefaultCatalog())
	extractor.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	listing := &domain.BusinessListing{
		ID:              "biz-1",
		Name:            "Acme Tech",
		Industry:        "technology",
		Revenue:         5_000_000,
		Profit:          1_000_000,
		Valuation:       10_000_000,
		Location:        "Bangalore",
		Employees:       50,
		YearEstablished: 2015,
		GrowthRate:      20,
		RiskScore:       20,
		Certifications:  []string{"ISO 9001", "Udyam"},
	}

	vec, err := extractor.BusinessFeatures(listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := map[string]float64{
		"revenue":                   5_000_000,
		"profit":                    1_000_000,
		"valuation":                 10_000_000,
		"employees":                 50,
		"business_age":              10,
		"growth_rate":               20,
		"risk_score":                20,
		"profit_margin":             0.2,
		"revenue_per_employee":      100_000,
		"valuation_to_revenue":      2,
		"industry_technology":       1,
		"industry_retail":           0,
		"tier1_location":            1,
		"tier2_location":            0,
		"certification_count":       2,
		"has_quality_certification": 1,
	}

	for key, expect := range checks {
		got, ok := vec[key]
		if !ok {
			t.Fatalf("missing feature %q", key)
		}
		if got != expect {
			t.Fatalf("feature %q: expected %v, got %v", key, expect, got)
		}
	}
}

func TestExtractorRejectsMissingIdentity(t *testing.T) {
	extractor := NewExtractor(DefaultCatalog())

	if _, err := extractor.BuyerFeatures(&domain.BuyerProfile{}); err == nil {
		t.Fatalf("expected validation error for buyer without identity")
	}
	if _, err := extractor.BusinessFeatures(&domain.BusinessListing{}); err == nil {
		t.Fatalf("expected validation error for listing without identity")
	}
}

func TestOrdinalMappings(t *testing.T) {
	t.Parallel()

	if RiskToleranceOrdinal(domain.RiskToleranceLow) != 1 || RiskToleranceOrdinal(domain.RiskToleranceHigh) != 3 {
		t.Fatalf("unexpected risk tolerance ordinals")
	}
	if RiskToleranceOrdinal("") != 2 {
		t.Fatalf("expected unset tolerance to default to medium")
	}
	if DecisionSpeedOrdinal(domain.DecisionFast) != 3 || DecisionSpeedOrdinal(domain.DecisionSlow) != 1 {
		t.Fatalf("unexpected decision speed ordinals")
	}
	if HorizonOrdinal(domain.HorizonShort) != 1 || HorizonOrdinal(domain.HorizonLong) != 3 {
		t.Fatalf("unexpected horizon ordinals")
	}
}
