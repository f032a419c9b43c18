package actuarial

import (
	"math"

	"readjustment-engine/internal/model"
)

// CycleMonths are the horizons of the three annual projection cycles.
var CycleMonths = [3]int{12, 24, 36}

type Projection struct {
	Invoice float64
	Trend   float64
	Costs   [3]float64
}

// ProjectCosts applies effectiveRate once to the invoice and then compounds
// by 1 + costIndex/100 + agingLoad/100 per cycle. Values are not rounded.
func ProjectCosts(invoice, effectiveRate, costIndex, agingLoad float64) (Projection, error) {
	if !finite(invoice) || invoice < 0 {
		return Projection{}, model.Invalid(model.FieldInvoice, "must be a finite number >= 0")
	}
	if !finite(effectiveRate) || effectiveRate < -100 {
		return Projection{}, model.Invalid(model.FieldEffectiveRate, "must be a finite number >= -100")
	}
	if !finite(costIndex) || !finite(agingLoad) {
		return Projection{}, model.Invalid(model.FieldTrend, "cost index and aging load must be finite")
	}

	trend := 1 + costIndex/100 + agingLoad/100
	if trend < 0 {
		return Projection{}, model.Invalid(model.FieldTrend, "trend factor %g is negative", trend)
	}

	p := Projection{Invoice: invoice, Trend: trend}
	p.Costs[0] = invoice * (1 + effectiveRate/100)
	p.Costs[1] = p.Costs[0] * trend
	p.Costs[2] = p.Costs[1] * trend
	return p, nil
}

func (p Projection) Cycles() []model.ProjectionCycle {
	out := make([]model.ProjectionCycle, len(p.Costs))
	for i, c := range p.Costs {
		var cumulative float64
		if p.Invoice > 0 {
			cumulative = (c/p.Invoice - 1) * 100
		}
		out[i] = model.ProjectionCycle{
			Month:                     CycleMonths[i],
			MonthlyCost:               c,
			CumulativeIncreasePercent: cumulative,
		}
	}
	return out
}

// EffectiveRate picks the rate that feeds the first projection cycle.
func EffectiveRate(choice model.YearOneRate, r Rates, proposed float64) (float64, error) {
	switch choice {
	case model.YearOneBlended:
		return r.Blended, nil
	case model.YearOneTechnical:
		return r.Technical, nil
	case model.YearOneLowerOfTechnicalAndProposed:
		if !finite(proposed) {
			return 0, model.Invalid(model.FieldProposedRate, "must be a finite number")
		}
		if proposed < r.Technical && proposed < -100 {
			return 0, model.Invalid(model.FieldProposedRate, "must be >= -100 when applied in the first cycle, got %g", proposed)
		}
		return math.Min(r.Technical, proposed), nil
	default:
		return 0, model.Invalid(model.FieldYearOneRate, "unknown choice %q", choice)
	}
}
