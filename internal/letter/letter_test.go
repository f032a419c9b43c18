package letter

import (
	"strings"
	"testing"

	"readjustment-engine/internal/model"
	"readjustment-engine/internal/reference"
)

func sampleResult(technical float64) model.CalculationResult {
	return model.CalculationResult{
		CostIndex: model.CostIndex{
			Value:    15,
			Source:   string(reference.SourceTable),
			Operator: "Amil",
		},
		TechnicalRate: technical,
		BlendedRate:   technical,
		WeightingMix:  model.MixTechnicalOnly,
		Composition:   model.Composition{PoolPercent: 0, TechnicalPercent: 100},
		Projection: []model.ProjectionCycle{
			{Month: 12, MonthlyCost: 1100, CumulativeIncreasePercent: 10},
			{Month: 24, MonthlyCost: 1287, CumulativeIncreasePercent: 28.7},
			{Month: 36, MonthlyCost: 1505.79, CumulativeIncreasePercent: 50.579},
		},
	}
}

func sampleInput(proposed float64) model.PolicyInput {
	return model.PolicyInput{
		CompanySizeTier:             model.TierFreeNegotiation,
		OperatorName:                "Amil",
		ClaimsRatioPercent:          85,
		BreakEvenTargetPercent:      75,
		CurrentMonthlyInvoice:       1000,
		OperatorProposedRatePercent: proposed,
		CompanyName:                 "Acme Ltda",
		AnniversaryMonth:            "março",
	}
}

func TestChoose(t *testing.T) {
	tests := []struct {
		technical, proposed float64
		expected            Branch
	}{
		{-8, 10, BranchExemption},
		{0, 10, BranchExemption},
		{0, -5, BranchExemption},
		{30.33, 40, BranchContest},
		{30.33, 30.33, BranchAccept},
		{30.33, 20, BranchAccept},
	}
	for _, tc := range tests {
		if got := Choose(tc.technical, tc.proposed); got != tc.expected {
			t.Errorf("Choose(%v, %v): expected %s, got %s", tc.technical, tc.proposed, tc.expected, got)
		}
	}
}

func TestContestLetterRequestsTechnicalRate(t *testing.T) {
	text := FormatDefenseLetter(sampleResult(30.333333), sampleInput(40))

	for _, want := range []string{
		"**À operadora:** Amil",
		"**Contratante:** Acme Ltda",
		"**Aniversário do contrato:** março",
		"proposta de reajuste de **40,00%**",
		"sinistralidade apurada no período foi de **85,00%**",
		"redução para **30,33%**",
		"supera em **9,67** pontos percentuais",
		"Fatura atual: R$ 1.000,00",
		"| 12 meses | R$ 1.100,00 | 10,00% |",
		"| 36 meses | R$ 1.505,79 | 50,58% |",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected letter to contain %q\n%s", want, text)
		}
	}
	if strings.Contains(text, "isenção") {
		t.Error("contest letter must not plead exemption")
	}
}

func TestExemptionLetter(t *testing.T) {
	text := FormatDefenseLetter(sampleResult(-8), sampleInput(12))

	if !strings.Contains(text, "isenção do reajuste") {
		t.Fatalf("expected exemption plea, got:\n%s", text)
	}
	if !strings.Contains(text, "**-8,00%**") {
		t.Fatalf("expected negative technical rate in letter, got:\n%s", text)
	}
}

func TestAcceptLetter(t *testing.T) {
	text := FormatDefenseLetter(sampleResult(30.33), sampleInput(30.33))

	if !strings.Contains(text, "aceitamos nos termos apresentados") {
		t.Fatalf("expected acceptance, got:\n%s", text)
	}
}

func TestPoolTierNarrative(t *testing.T) {
	res := sampleResult(15)
	res.WeightingMix = model.MixPoolOnly
	in := sampleInput(20)
	in.CompanySizeTier = model.TierSmallPoolOnly

	text := FormatDefenseLetter(res, in)
	if !strings.Contains(text, "pool de risco da ANS") {
		t.Fatalf("expected pool narrative, got:\n%s", text)
	}
	if strings.Contains(text, "break-even") {
		t.Fatal("pool narrative must not mention the break-even target")
	}
}

func TestHybridNarrativeShowsComposition(t *testing.T) {
	res := sampleResult(30.33)
	res.WeightingMix = model.Mix70_30
	res.Composition = model.Composition{PoolPercent: 70, TechnicalPercent: 30}
	res.BlendedRate = 19.95

	text := FormatDefenseLetter(res, sampleInput(40))
	if !strings.Contains(text, "70% pool / 30% técnico") {
		t.Fatalf("expected composition line, got:\n%s", text)
	}
	if !strings.Contains(text, "combinado é de **19,95%**") {
		t.Fatalf("expected blended rate, got:\n%s", text)
	}
}

func TestFallbackKeepsRequestedOperatorName(t *testing.T) {
	res := sampleResult(30.33)
	res.CostIndex.Source = string(reference.SourceFallback)
	res.CostIndex.Operator = reference.MarketAverage
	in := sampleInput(40)
	in.OperatorName = "Operadora Regional"
	in.CompanyName = ""

	text := FormatDefenseLetter(res, in)
	if !strings.Contains(text, "**À operadora:** Operadora Regional") {
		t.Fatalf("expected requested operator name, got:\n%s", text)
	}
	if !strings.Contains(text, "**Contratante:** a Contratante") {
		t.Fatalf("expected default company label, got:\n%s", text)
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(FormatDefenseLetter(sampleResult(30.33), sampleInput(40)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"<h1>Defesa técnica de reajuste</h1>", "<table>", "<strong>"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected html to contain %q", want)
		}
	}
}
