package actuarial

import (
	"testing"

	"readjustment-engine/internal/model"
)

func TestClassifyNegotiation(t *testing.T) {
	th := DefaultThresholds()

	cases := []struct {
		technical, proposed float64
		want                model.Stance
	}{
		{-8, 25, model.StanceFavorable},
		{0, 0, model.StanceFavorable},
		{0, 100, model.StanceFavorable},
		{10, 12, model.StanceModerate},
		{10, 15, model.StanceModerate},
		{10, 15.5, model.StanceHard},
		{10, 20, model.StanceHard},
		{10, 20.01, model.StanceCritical},
		{30, 10, model.StanceModerate},
	}
	for _, tc := range cases {
		if got := ClassifyNegotiation(tc.technical, tc.proposed, th); got != tc.want {
			t.Fatalf("technical=%g proposed=%g: expected %s, got %s", tc.technical, tc.proposed, tc.want, got)
		}
	}
}

func TestClassifyNegotiationCustomThresholds(t *testing.T) {
	th := Thresholds{Hard: 2, Critical: 4}
	if got := ClassifyNegotiation(10, 13, th); got != model.StanceHard {
		t.Fatalf("expected HARD, got %s", got)
	}
	if got := ClassifyNegotiation(10, 14.5, th); got != model.StanceCritical {
		t.Fatalf("expected CRITICAL, got %s", got)
	}
}

func TestBand(t *testing.T) {
	cases := map[float64]model.RateBand{
		-8:    model.BandLow,
		14.99: model.BandLow,
		15:    model.BandElevated,
		24.9:  model.BandElevated,
		25:    model.BandHigh,
	}
	for rate, want := range cases {
		if got := Band(rate); got != want {
			t.Fatalf("rate %g: expected %s, got %s", rate, want, got)
		}
	}
}
