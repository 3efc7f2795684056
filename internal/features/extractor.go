// Package features flattens buyer profiles and business listings into the
// numeric vectors consumed by both the heuristic scorer and the remote
// scoring service.
package features

import (
	"fmt"
	"time"

	"github.com/debnit/MsmeBazaar-sub001/internal/domain"
)

// Version tags the feature key set. The remote model is trained against a
// specific encoding, so the version travels with every scoring request.
const Version = "v1"

// Vector is a flat numeric feature map with a fixed, versioned key set.
type Vector map[string]float64

// Open bounds substituted when a buyer leaves employee preferences unset.
const (
	openMinEmployees = 0
	openMaxEmployees = 1_000_000
)

// Extractor converts domain entities into feature vectors. It is a pure
// transformation: no side effects, failures only on malformed input.
type Extractor struct {
	catalog Catalog
	now     func() time.Time
}

// NewExtractor creates an extractor bound to the given canonical catalog.
func NewExtractor(catalog Catalog) *Extractor {
	return &Extractor{catalog: catalog, now: time.Now}
}

// BuyerFeatures encodes the buyer's acquisition preferences.
func (e *Extractor) BuyerFeatures(b *domain.BuyerProfile) (Vector, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	v := Vector{
		"investment_capacity": b.InvestmentCapacity,
		"revenue_min":         b.Preferences.RevenueRange.Min,
		"revenue_max":         b.Preferences.RevenueRange.Max,
		"valuation_min":       b.Preferences.ValuationRange.Min,
		"valuation_max":       b.Preferences.ValuationRange.Max,
		"risk_tolerance":      RiskToleranceOrdinal(b.Preferences.RiskTolerance),
		"investment_horizon":  HorizonOrdinal(b.Preferences.InvestmentHorizon),
		"decision_speed":      DecisionSpeedOrdinal(b.DecisionSpeed),
		"risk_profile_score":  b.RiskProfileScore,
		"past_investments":    float64(b.PastInvestments),
		"required_cert_count": float64(len(b.Preferences.RequiredCertifications)),
	}

	minEmp, maxEmp := float64(openMinEmployees), float64(openMaxEmployees)
	if b.Preferences.MinEmployees != nil {
		minEmp = float64(*b.Preferences.MinEmployees)
	}
	if b.Preferences.MaxEmployees != nil {
		maxEmp = float64(*b.Preferences.MaxEmployees)
	}
	v["employees_min"] = minEmp
	v["employees_max"] = maxEmp

	for _, industry := range e.catalog.Industries {
		v[fmt.Sprintf("prefers_industry_%s", industry)] = oneHot(b.PrefersIndustry(industry))
	}

	prefersTier1 := false
	for _, loc := range b.Preferences.Locations {
		if e.catalog.IsTier1(loc) {
			prefersTier1 = true
			break
		}
	}
	v["prefers_tier1_location"] = oneHot(prefersTier1)

	return v, nil
}

// BusinessFeatures encodes a candidate listing, including the derived
// financial ratios.
func (e *Extractor) BusinessFeatures(l *domain.BusinessListing) (Vector, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	v := Vector{
		"revenue":              l.Revenue,
		"profit":               l.Profit,
		"valuation":            l.Valuation,
		"employees":            float64(l.Employees),
		"business_age":         float64(l.Age(e.now().Year())),
		"growth_rate":          l.GrowthRate,
		"risk_score":           l.RiskScore,
		"profit_margin":        l.ProfitMargin(),
		"revenue_per_employee": l.RevenuePerEmployee(),
		"valuation_to_revenue": l.ValuationToRevenue(),
		"certification_count":  float64(len(l.Certifications)),
	}

	for _, industry := range e.catalog.Industries {
		v[fmt.Sprintf("industry_%s", industry)] = oneHot(l.Industry == industry)
	}

	v["tier1_location"] = oneHot(e.catalog.IsTier1(l.Location))
	v["tier2_location"] = oneHot(e.catalog.IsTier2(l.Location))

	hasQuality := false
	for _, cert := range l.Certifications {
		if e.catalog.IsQualityCertification(cert) {
			hasQuality = true
			break
		}
	}
	v["has_quality_certification"] = oneHot(hasQuality)

	return v, nil
}

// RiskToleranceOrdinal maps the tolerance scale onto 1..3. Unset or unknown
// values default to medium.
func RiskToleranceOrdinal(t domain.RiskTolerance) float64 {
	switch t {
	case domain.RiskToleranceLow:
		return 1
	case domain.RiskToleranceHigh:
		return 3
	default:
		return 2
	}
}

// HorizonOrdinal maps the investment horizon onto 1..3.
func HorizonOrdinal(h domain.InvestmentHorizon) float64 {
	switch h {
	case domain.HorizonShort:
		return 1
	case domain.HorizonLong:
		return 3
	default:
		return 2
	}
}

// DecisionSpeedOrdinal maps decision speed onto 1..3 with fast = 3.
func DecisionSpeedOrdinal(s domain.DecisionSpeed) float64 {
	switch s {
	case domain.DecisionSlow:
		return 1
	case domain.DecisionFast:
		return 3
	default:
		return 2
	}
}

func oneHot(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
