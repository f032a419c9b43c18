package actuarial

import (
	"fmt"

	"readjustment-engine/internal/model"
)

// Thresholds are the gaps, in percentage points, between the proposed and
// the technical rate above which the stance hardens. Bounds are exclusive.
type Thresholds struct {
	Hard     float64 `yaml:"hard"`
	Critical float64 `yaml:"critical"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{Hard: 5, Critical: 10}
}

func (t Thresholds) Validate() error {
	if t.Hard < 0 || t.Critical <= t.Hard {
		return fmt.Errorf("need 0 <= hard (%g) < critical (%g)", t.Hard, t.Critical)
	}
	return nil
}

// ClassifyNegotiation compares the operator's proposal with the technical rate.
func ClassifyNegotiation(technicalRate, proposedRate float64, t Thresholds) model.Stance {
	if technicalRate <= 0 {
		return model.StanceFavorable
	}
	diff := proposedRate - technicalRate
	switch {
	case diff > t.Critical:
		return model.StanceCritical
	case diff > t.Hard:
		return model.StanceHard
	default:
		return model.StanceModerate
	}
}

// Band buckets a readjustment rate for display.
func Band(rate float64) model.RateBand {
	switch {
	case rate < 15:
		return model.BandLow
	case rate < 25:
		return model.BandElevated
	default:
		return model.BandHigh
	}
}
