package features

// Catalog holds the canonical sets the feature encoding is built against.
// One-hot industry flags and location-tier flags are derived from these lists,
// so the encoding and any downstream weight tables stay in sync through
// configuration rather than inline literals.
type Catalog struct {
	Industries            []string `mapstructure:"industries"`
	Tier1Cities           []string `mapstructure:"tier1-cities"`
	Tier2Cities           []string `mapstructure:"tier2-cities"`
	QualityCertifications []string `mapstructure:"quality-certifications"`
}

// DefaultCatalog returns the canonical industry and city sets used by the
// marketplace.
func DefaultCatalog() Catalog {
	return Catalog{
		Industries: []string{
			"technology",
			"manufacturing",
			"retail",
			"healthcare",
			"food_processing",
			"textiles",
			"logistics",
			"services",
		},
		Tier1Cities: []string{
			"Mumbai", "Delhi", "Bangalore", "Chennai",
			"Kolkata", "Hyderabad", "Pune", "Ahmedabad",
		},
		Tier2Cities: []string{
			"Jaipur", "Lucknow", "Indore", "Coimbatore",
			"Nagpur", "Surat", "Kochi", "Chandigarh",
		},
		QualityCertifications: []string{
			"ISO 9001", "ISO 14001", "ISO 27001", "FSSAI", "CE",
		},
	}
}

// IsTier1 reports whether the city is in the tier-1 set.
func (c Catalog) IsTier1(city string) bool { return contains(c.Tier1Cities, city) }

// IsTier2 reports whether the city is in the tier-2 set.
func (c Catalog) IsTier2(city string) bool { return contains(c.Tier2Cities, city) }

// IsQualityCertification reports whether the certification is a recognized
// quality standard.
func (c Catalog) IsQualityCertification(name string) bool {
	return contains(c.QualityCertifications, name)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
