package actuarial

import "fmt"

// Policy carries the knobs that vary between contract regimes. The zero value
// is not useful; start from DefaultPolicy.
type Policy struct {
	// AllowNegativeTechnicalRate keeps indicated discounts. When false the
	// technical rate of non-pool tiers is floored at zero.
	AllowNegativeTechnicalRate bool `yaml:"allow_negative_technical_rate"`
	// FloorAtCostIndex floors the technical rate of non-pool tiers at the
	// resolved cost index. Takes precedence over the zero floor.
	FloorAtCostIndex bool          `yaml:"floor_at_cost_index"`
	Aging            AgingBrackets `yaml:"aging"`
	Thresholds       Thresholds    `yaml:"negotiation_thresholds"`
}

func DefaultPolicy() Policy {
	return Policy{
		AllowNegativeTechnicalRate: true,
		Aging:                      DefaultAgingBrackets(),
		Thresholds:                 DefaultThresholds(),
	}
}

func (p Policy) Validate() error {
	if err := p.Aging.Validate(); err != nil {
		return fmt.Errorf("aging brackets: %w", err)
	}
	if err := p.Thresholds.Validate(); err != nil {
		return fmt.Errorf("negotiation thresholds: %w", err)
	}
	return nil
}

// AgingBrackets is a step function of average age: three ordered breakpoints
// producing four loads, in percent.
type AgingBrackets struct {
	SeniorAbove  float64 `yaml:"senior_above"`
	SeniorLoad   float64 `yaml:"senior_load"`
	MatureAbove  float64 `yaml:"mature_above"`
	MatureLoad   float64 `yaml:"mature_load"`
	YoungBelow   float64 `yaml:"young_below"`
	YoungLoad    float64 `yaml:"young_load"`
	BaselineLoad float64 `yaml:"baseline_load"`
}

func DefaultAgingBrackets() AgingBrackets {
	return AgingBrackets{
		SeniorAbove:  59,
		SeniorLoad:   6,
		MatureAbove:  49,
		MatureLoad:   3.5,
		YoungBelow:   30,
		YoungLoad:    0.5,
		BaselineLoad: 2,
	}
}

func (b AgingBrackets) Validate() error {
	if b.SeniorAbove <= b.MatureAbove {
		return fmt.Errorf("senior_above (%g) must be greater than mature_above (%g)", b.SeniorAbove, b.MatureAbove)
	}
	if b.MatureAbove < b.YoungBelow {
		return fmt.Errorf("mature_above (%g) must not be below young_below (%g)", b.MatureAbove, b.YoungBelow)
	}
	return nil
}

// Load returns the aging load for an average age. A missing age gets the baseline.
func (b AgingBrackets) Load(age *float64) float64 {
	if age == nil {
		return b.BaselineLoad
	}
	switch a := *age; {
	case a > b.SeniorAbove:
		return b.SeniorLoad
	case a > b.MatureAbove:
		return b.MatureLoad
	case a < b.YoungBelow:
		return b.YoungLoad
	default:
		return b.BaselineLoad
	}
}
