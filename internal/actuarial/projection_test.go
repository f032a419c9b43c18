package actuarial

import (
	"errors"
	"math"
	"testing"

	"readjustment-engine/internal/model"
)

func TestProjectCostsCompoundsTrend(t *testing.T) {
	p, err := ProjectCosts(1000, 10, 15, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := [3]float64{1100, 1287, 1505.79}
	for i := range want {
		if math.Abs(p.Costs[i]-want[i]) > 1e-6 {
			t.Fatalf("cycle %d: expected %.2f, got %.6f", i, want[i], p.Costs[i])
		}
	}
	if !almostEqual(p.Trend, 1.17) {
		t.Fatalf("expected trend 1.17, got %v", p.Trend)
	}
}

func TestProjectCostsFlatWithoutTrend(t *testing.T) {
	p, err := ProjectCosts(2500, 7.5, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 2500 * (1 + 7.5/100)
	if p.Costs[0] != want || p.Costs[1] != want || p.Costs[2] != want {
		t.Fatalf("expected all cycles %v, got %v", want, p.Costs)
	}
}

func TestProjectCostsIncreasing(t *testing.T) {
	for _, tc := range []struct{ rate, idx, aging float64 }{
		{-8, 15, 2}, {0, 0.1, 0}, {30, 12, -0.5}, {-100, 10, 6},
	} {
		p, err := ProjectCosts(1000, tc.rate, tc.idx, tc.aging)
		if err != nil {
			t.Fatalf("%+v: unexpected error: %v", tc, err)
		}
		if !(p.Costs[0] <= p.Costs[1] && p.Costs[1] <= p.Costs[2]) {
			t.Fatalf("%+v: expected non-decreasing costs, got %v", tc, p.Costs)
		}
	}
}

func TestProjectCostsRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name                      string
		invoice, rate, idx, aging float64
		field                     string
	}{
		{"negative invoice", -1, 10, 15, 2, model.FieldInvoice},
		{"rate below -100", 1000, -101, 15, 2, model.FieldEffectiveRate},
		{"nan rate", 1000, math.NaN(), 15, 2, model.FieldEffectiveRate},
		{"negative trend", 1000, 10, -150, 0, model.FieldTrend},
	}
	for _, tc := range cases {
		_, err := ProjectCosts(tc.invoice, tc.rate, tc.idx, tc.aging)
		var invalid *model.InvalidInputError
		if !errors.As(err, &invalid) {
			t.Fatalf("%s: expected InvalidInputError, got %v", tc.name, err)
		}
		if invalid.Field != tc.field {
			t.Fatalf("%s: expected field %s, got %s", tc.name, tc.field, invalid.Field)
		}
	}
}

func TestProjectionCycles(t *testing.T) {
	p, _ := ProjectCosts(1000, 10, 15, 2)
	cycles := p.Cycles()
	if len(cycles) != 3 {
		t.Fatalf("expected 3 cycles, got %d", len(cycles))
	}
	if cycles[0].Month != 12 || cycles[1].Month != 24 || cycles[2].Month != 36 {
		t.Fatalf("unexpected months: %d %d %d", cycles[0].Month, cycles[1].Month, cycles[2].Month)
	}
	if math.Abs(cycles[0].CumulativeIncreasePercent-10) > 1e-9 {
		t.Fatalf("expected cumulative 10%%, got %v", cycles[0].CumulativeIncreasePercent)
	}
	if math.Abs(cycles[2].CumulativeIncreasePercent-50.579) > 1e-6 {
		t.Fatalf("expected cumulative 50.579%%, got %v", cycles[2].CumulativeIncreasePercent)
	}

	zero, _ := ProjectCosts(0, 10, 15, 2)
	for _, c := range zero.Cycles() {
		if c.MonthlyCost != 0 || c.CumulativeIncreasePercent != 0 {
			t.Fatalf("zero invoice should project zero, got %+v", c)
		}
	}
}

func TestEffectiveRate(t *testing.T) {
	r := Rates{Technical: 12, Blended: 14}

	cases := []struct {
		choice   model.YearOneRate
		proposed float64
		want     float64
	}{
		{model.YearOneBlended, 20, 14},
		{model.YearOneTechnical, 20, 12},
		{model.YearOneLowerOfTechnicalAndProposed, 20, 12},
		{model.YearOneLowerOfTechnicalAndProposed, 9, 9},
	}
	for _, tc := range cases {
		got, err := EffectiveRate(tc.choice, r, tc.proposed)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.choice, err)
		}
		if got != tc.want {
			t.Fatalf("%s(proposed=%g): expected %v, got %v", tc.choice, tc.proposed, tc.want, got)
		}
	}

	if _, err := EffectiveRate("AVERAGE", r, 10); err == nil {
		t.Fatal("expected error for unknown choice")
	}
}

func TestEffectiveRateRejectsProposalBelowTotalLoss(t *testing.T) {
	_, err := EffectiveRate(model.YearOneLowerOfTechnicalAndProposed, Rates{Technical: 12}, -150)
	var invalid *model.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
	if invalid.Code() != "INVALID_OPERATOR_PROPOSED_RATE_PERCENT" {
		t.Fatalf("expected INVALID_OPERATOR_PROPOSED_RATE_PERCENT, got %s", invalid.Code())
	}

	// The proposal only matters when it is the applied rate.
	if got, err := EffectiveRate(model.YearOneBlended, Rates{Blended: 14}, -150); err != nil || got != 14 {
		t.Fatalf("expected blended 14, got %v (%v)", got, err)
	}
}
