package domain

import "fmt"

// Ordinal preference scales used by buyer profiles.
type (
	RiskTolerance     string
	InvestmentHorizon string
	DecisionSpeed     string
)

const (
	RiskToleranceLow    RiskTolerance = "low"
	RiskToleranceMedium RiskTolerance = "medium"
	RiskToleranceHigh   RiskTolerance = "high"

	HorizonShort  InvestmentHorizon = "short"
	HorizonMedium InvestmentHorizon = "medium"
	HorizonLong   InvestmentHorizon = "long"

	DecisionFast   DecisionSpeed = "fast"
	DecisionMedium DecisionSpeed = "medium"
	DecisionSlow   DecisionSpeed = "slow"
)

// Range is a closed numeric interval. A zero-valued Range means the buyer did
// not express the preference.
type Range struct {
	Min float64 `json:"min,omitempty" mapstructure:"min"`
	Max float64 `json:"max,omitempty" mapstructure:"max"`
}

// IsSet reports whether the range carries a usable upper bound.
func (r Range) IsSet() bool { return r.Max > 0 }

// Contains reports whether v falls inside the interval.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Preferences describes what kind of business a buyer wants to acquire.
type Preferences struct {
	Industries             []string          `json:"industries,omitempty"`
	RevenueRange           Range             `json:"revenue_range,omitempty"`
	ValuationRange         Range             `json:"valuation_range,omitempty"`
	Locations              []string          `json:"locations,omitempty"`
	MinEmployees           *int              `json:"min_employees,omitempty"`
	MaxEmployees           *int              `json:"max_employees,omitempty"`
	RiskTolerance          RiskTolerance     `json:"risk_tolerance,omitempty"`
	InvestmentHorizon      InvestmentHorizon `json:"investment_horizon,omitempty"`
	RequiredCertifications []string          `json:"required_certifications,omitempty"`
}

// BuyerProfile is the acquisition side of a match request.
type BuyerProfile struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name,omitempty"`
	Preferences        Preferences   `json:"preferences"`
	InvestmentCapacity float64       `json:"investment_capacity,omitempty"`
	PastInvestments    int           `json:"past_investments,omitempty"`
	RiskProfileScore   float64       `json:"risk_profile_score,omitempty"`
	DecisionSpeed      DecisionSpeed `json:"decision_speed,omitempty"`
}

// PrefersIndustry reports whether the industry is in the buyer's preferred set.
// Matching is exact on the canonical lowercase industry name.
func (b *BuyerProfile) PrefersIndustry(industry string) bool {
	for _, ind := range b.Preferences.Industries {
		if ind == industry {
			return true
		}
	}
	return false
}

// PrefersLocation reports whether the location is in the buyer's preferred set.
func (b *BuyerProfile) PrefersLocation(location string) bool {
	for _, loc := range b.Preferences.Locations {
		if loc == location {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of the profile: the identity is
// required and every expressed range must satisfy min <= max.
func (b *BuyerProfile) Validate() error {
	if b == nil {
		return &ValidationError{Field: "buyer", Reason: "profile is required"}
	}
	if b.ID == "" {
		return &ValidationError{Field: "buyer.id", Reason: "identity is required"}
	}
	if r := b.Preferences.RevenueRange; r.IsSet() && r.Min > r.Max {
		return &ValidationError{Field: "buyer.preferences.revenue_range", Reason: fmt.Sprintf("min %v exceeds max %v", r.Min, r.Max)}
	}
	if r := b.Preferences.ValuationRange; r.IsSet() && r.Min > r.Max {
		return &ValidationError{Field: "buyer.preferences.valuation_range", Reason: fmt.Sprintf("min %v exceeds max %v", r.Min, r.Max)}
	}
	if lo, hi := b.Preferences.MinEmployees, b.Preferences.MaxEmployees; lo != nil && hi != nil && *lo > *hi {
		return &ValidationError{Field: "buyer.preferences.employees", Reason: fmt.Sprintf("min %d exceeds max %d", *lo, *hi)}
	}
	return nil
}
