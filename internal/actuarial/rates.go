package actuarial

import (
	"math"

	"readjustment-engine/internal/model"
)

type RateInput struct {
	Tier                   model.CompanySizeTier
	Mix                    model.WeightingMix
	ClaimsRatioPercent     float64
	CostIndexPercent       float64 // already resolved
	BreakEvenTargetPercent float64
	PoolReferenceRate      float64 // market-average pool rate
	AverageAge             *float64
}

type Rates struct {
	Technical        float64
	TechnicalRaw     float64 // before any floor
	Floored          bool
	Blended          float64
	Mix              model.WeightingMix
	CostIndex        float64
	PoolReference    float64
	AgingLoadPercent float64
}

// ComputeRates derives the technical and blended readjustment rates and the
// aging load. It is pure and safe for concurrent use.
func ComputeRates(in RateInput, p Policy) (Rates, error) {
	if err := validateRateInput(in); err != nil {
		return Rates{}, err
	}

	raw := TechnicalRate(in.Tier, in.ClaimsRatioPercent, in.CostIndexPercent, in.BreakEvenTargetPercent)
	technical, floored := applyFloor(in.Tier, raw, in.CostIndexPercent, p)

	r := Rates{
		Technical:        technical,
		TechnicalRaw:     raw,
		Floored:          floored,
		Mix:              in.Mix,
		CostIndex:        in.CostIndexPercent,
		PoolReference:    in.PoolReferenceRate,
		AgingLoadPercent: p.Aging.Load(in.AverageAge),
	}
	r.Blended = r.BlendFor(in.Mix)
	return r, nil
}

// TechnicalRate is the actuarial need in percent. Pool contracts follow the
// cost index. Other tiers need the premium to grow until next period's
// inflated claims ratio returns to the break-even target; a claims ratio
// well below target yields a negative rate. breakEven must be > 0.
func TechnicalRate(tier model.CompanySizeTier, claims, costIndex, breakEven float64) float64 {
	if tier == model.TierSmallPoolOnly {
		return costIndex
	}
	required := (claims / 100 * (1 + costIndex/100)) / (breakEven / 100)
	return (required - 1) * 100
}

// BlendFor returns the blended rate the given mix would produce.
func (r Rates) BlendFor(mix model.WeightingMix) float64 {
	switch mix {
	case model.MixPoolOnly:
		return r.CostIndex
	case model.MixTechnicalOnly:
		return r.Technical
	default:
		share := mix.PoolShare()
		return share*r.PoolReference + (1-share)*r.Technical
	}
}

func applyFloor(tier model.CompanySizeTier, raw, costIndex float64, p Policy) (float64, bool) {
	if tier == model.TierSmallPoolOnly {
		return raw, false
	}
	if p.FloorAtCostIndex && raw < costIndex {
		return costIndex, true
	}
	if !p.AllowNegativeTechnicalRate && raw < 0 {
		return 0, true
	}
	return raw, false
}

func validateRateInput(in RateInput) error {
	if !in.Tier.Valid() {
		return model.Invalid(model.FieldTier, "unknown tier %q", in.Tier)
	}
	if !in.Mix.Valid() {
		return model.Invalid(model.FieldMix, "unknown mix %q", in.Mix)
	}
	if !finite(in.ClaimsRatioPercent) || in.ClaimsRatioPercent < 0 {
		return model.Invalid(model.FieldClaimsRatio, "must be a finite number >= 0")
	}
	if !finite(in.CostIndexPercent) || in.CostIndexPercent < 0 {
		return model.Invalid(model.FieldCostIndex, "must be a finite number >= 0")
	}
	if !finite(in.BreakEvenTargetPercent) || in.BreakEvenTargetPercent <= 0 {
		return model.Invalid(model.FieldBreakEvenTarget, "must be a finite number > 0")
	}
	if !finite(in.PoolReferenceRate) || in.PoolReferenceRate < 0 {
		return model.Invalid(model.FieldPoolReference, "must be a finite number >= 0")
	}
	if in.AverageAge != nil && (!finite(*in.AverageAge) || *in.AverageAge < 0) {
		return model.Invalid(model.FieldAverageAge, "must be a finite number >= 0")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
