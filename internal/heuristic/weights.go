package heuristic

// Weights defines the contribution of each matching criterion. The values are
// configuration, not policy: they can be overridden per deployment, and the
// final score is clamped to [0,1] regardless of the table.
type Weights struct {
	Industry      float64 `mapstructure:"industry"`
	Revenue       float64 `mapstructure:"revenue"`
	Valuation     float64 `mapstructure:"valuation"`
	Location      float64 `mapstructure:"location"`
	EmployeeUpper float64 `mapstructure:"employee-upper"`
	EmployeeLower float64 `mapstructure:"employee-lower"`
	Risk          float64 `mapstructure:"risk"`
	Growth        float64 `mapstructure:"growth"`
}

// DefaultWeights returns the production weight table.
func DefaultWeights() Weights {
	return Weights{
		Industry:      0.25,
		Revenue:       0.20,
		Valuation:     0.15,
		Location:      0.15,
		EmployeeUpper: 0.10,
		EmployeeLower: 0.05,
		Risk:          0.10,
		Growth:        0.05,
	}
}
