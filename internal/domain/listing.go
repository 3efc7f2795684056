package domain

// BusinessListing is a business offered for sale, as the engine needs to read
// it. Derived financial ratios are computed, never stored.
type BusinessListing struct {
	ID              string   `json:"id"`
	Name            string   `json:"name,omitempty"`
	Industry        string   `json:"industry,omitempty"`
	Revenue         float64  `json:"revenue,omitempty"`
	Profit          float64  `json:"profit,omitempty"`
	Valuation       float64  `json:"valuation,omitempty"`
	Location        string   `json:"location,omitempty"`
	Employees       int      `json:"employees,omitempty"`
	YearEstablished int      `json:"year_established,omitempty"`
	GrowthRate      float64  `json:"growth_rate,omitempty"`
	RiskScore       float64  `json:"risk_score,omitempty"`
	Certifications  []string `json:"certifications,omitempty"`
}

// ProfitMargin returns profit as a fraction of revenue, or 0 for zero revenue.
func (l *BusinessListing) ProfitMargin() float64 {
	if l.Revenue <= 0 {
		return 0
	}
	return l.Profit / l.Revenue
}

// RevenuePerEmployee returns revenue divided by headcount, or 0 when unstaffed.
func (l *BusinessListing) RevenuePerEmployee() float64 {
	if l.Employees <= 0 {
		return 0
	}
	return l.Revenue / float64(l.Employees)
}

// ValuationToRevenue returns the asking multiple, or 0 for zero revenue.
func (l *BusinessListing) ValuationToRevenue() float64 {
	if l.Revenue <= 0 {
		return 0
	}
	return l.Valuation / l.Revenue
}

// Age returns the business age in years relative to the given calendar year.
// Listings with an unset or future founding year report 0.
func (l *BusinessListing) Age(currentYear int) int {
	if l.YearEstablished <= 0 || l.YearEstablished > currentYear {
		return 0
	}
	return currentYear - l.YearEstablished
}

// HasCertification reports whether the listing holds the named certification.
func (l *BusinessListing) HasCertification(name string) bool {
	for _, c := range l.Certifications {
		if c == name {
			return true
		}
	}
	return false
}

// Validate checks that the listing carries an identity.
func (l *BusinessListing) Validate() error {
	if l == nil {
		return &ValidationError{Field: "listing", Reason: "listing is required"}
	}
	if l.ID == "" {
		return &ValidationError{Field: "listing.id", Reason: "identity is required"}
	}
	return nil
}
