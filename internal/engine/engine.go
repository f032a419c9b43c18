package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"readjustment-engine/internal/actuarial"
	"readjustment-engine/internal/letter"
	"readjustment-engine/internal/model"
	"readjustment-engine/internal/reference"
)

// maxExpectedClaimsRatio is the upper end of the usual claims ratio range.
const maxExpectedClaimsRatio = 150

// Engine holds only read-only state, so one instance serves concurrent requests.
type Engine struct {
	table  *reference.Table
	source reference.Source
	policy actuarial.Policy
}

// New builds an engine. A nil source looks indexes up in table.
func New(table *reference.Table, source reference.Source, policy actuarial.Policy) *Engine {
	if source == nil {
		source = table
	}
	return &Engine{table: table, source: source, policy: policy}
}

func (e *Engine) Table() *reference.Table {
	return e.table
}

func (e *Engine) Process(ctx context.Context, req *model.CalculationRequest) *model.CalculationResponse {
	start := time.Now()

	outcome := model.OutcomeSuccess
	result, msgs, err := e.Calculate(ctx, req.Policy)
	if err != nil {
		outcome = model.OutcomeFailure
		msgs = append(msgs, criticalFor(err))
		result = nil
	}
	for i := range msgs {
		msgs[i].ID = i
	}
	if msgs == nil {
		msgs = []model.CalculationMessage{}
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			RequestID:              req.RequestID,
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: model.CalculationEnvelope{
			Messages: msgs,
			Result:   result,
		},
	}
}

// Calculate runs resolution, rates, projection, classification and the
// letter for one policy. Warnings are returned even when err is nil.
func (e *Engine) Calculate(ctx context.Context, in model.PolicyInput) (*model.CalculationResult, []model.CalculationMessage, error) {
	var msgs []model.CalculationMessage

	if !in.CompanySizeTier.Valid() {
		return nil, msgs, model.Invalid(model.FieldTier, "unknown tier %q", in.CompanySizeTier)
	}
	mix := in.EffectiveMix()
	if !mix.Valid() {
		return nil, msgs, model.Invalid(model.FieldMix, "unknown mix %q", mix)
	}
	yearOne := in.EffectiveYearOneRate()
	if !yearOne.Valid() {
		return nil, msgs, model.Invalid(model.FieldYearOneRate, "unknown choice %q", yearOne)
	}
	if math.IsNaN(in.OperatorProposedRatePercent) || math.IsInf(in.OperatorProposedRatePercent, 0) {
		return nil, msgs, model.Invalid(model.FieldProposedRate, "must be a finite number")
	}

	res, err := reference.ResolveWith(ctx, e.source, e.table, in.OperatorName, in.CostInflationIndexPercent)
	if err != nil {
		return nil, msgs, err
	}
	if res.Source == reference.SourceFallback && in.OperatorName != "" {
		msgs = append(msgs, warning(model.CodeCostIndexFallback,
			fmt.Sprintf("Operator %q not found, using market average cost index %.2f%%", in.OperatorName, res.Value)))
	}

	rates, err := actuarial.ComputeRates(actuarial.RateInput{
		Tier:                   in.CompanySizeTier,
		Mix:                    mix,
		ClaimsRatioPercent:     in.ClaimsRatioPercent,
		CostIndexPercent:       res.Value,
		BreakEvenTargetPercent: in.BreakEvenTargetPercent,
		PoolReferenceRate:      e.table.MarketAverage().PoolRate,
		AverageAge:             in.AverageAge,
	}, e.policy)
	if err != nil {
		return nil, msgs, err
	}
	if in.ClaimsRatioPercent > maxExpectedClaimsRatio {
		msgs = append(msgs, warning(model.CodeClaimsRatioRange,
			fmt.Sprintf("Claims ratio %.2f%% is above the expected range", in.ClaimsRatioPercent)))
	}
	if rates.Floored {
		msgs = append(msgs, warning(model.CodeTechnicalRateFloored,
			fmt.Sprintf("Technical rate %.2f%% floored to %.2f%%", rates.TechnicalRaw, rates.Technical)))
	}

	effective, err := actuarial.EffectiveRate(yearOne, rates, in.OperatorProposedRatePercent)
	if err != nil {
		return nil, msgs, err
	}
	proj, err := actuarial.ProjectCosts(in.CurrentMonthlyInvoice, effective, res.Value, rates.AgingLoadPercent)
	if err != nil {
		return nil, msgs, err
	}

	result := &model.CalculationResult{
		CostIndex: model.CostIndex{
			Value:            res.Value,
			Source:           string(res.Source),
			Operator:         res.Operator,
			OperatorPoolRate: res.OperatorPoolRate,
		},
		TechnicalRate:      rates.Technical,
		TechnicalRateRaw:   rates.TechnicalRaw,
		BlendedRate:        rates.Blended,
		WeightingMix:       mix,
		Composition:        actuarial.Composition(mix),
		PoolReferenceRate:  rates.PoolReference,
		AgingLoadPercent:   rates.AgingLoadPercent,
		YearOneRate:        yearOne,
		YearOneRatePercent: effective,
		Scenarios:          actuarial.Scenarios(rates),
		Projection:         proj.Cycles(),
		NegotiationStance:  actuarial.ClassifyNegotiation(rates.Technical, in.OperatorProposedRatePercent, e.policy.Thresholds),
		RateBand:           actuarial.Band(rates.Blended),
	}
	result.Letter = letter.FormatDefenseLetter(*result, in)

	return result, msgs, nil
}

func warning(code, message string) model.CalculationMessage {
	return model.CalculationMessage{Level: model.LevelWarning, Code: code, Message: message}
}

func criticalFor(err error) model.CalculationMessage {
	var invalid *model.InvalidInputError
	if errors.As(err, &invalid) {
		return model.CalculationMessage{Level: model.LevelCritical, Code: invalid.Code(), Message: invalid.Error()}
	}
	return model.CalculationMessage{Level: model.LevelCritical, Code: model.CodeCostIndexUnavailable, Message: err.Error()}
}
