package model

type CalculationResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   CalculationEnvelope `json:"calculation_result"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	RequestID              string `json:"request_id,omitempty"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type CalculationEnvelope struct {
	Messages []CalculationMessage `json:"messages"`
	Result   *CalculationResult   `json:"result"`
}

// CalculationResult is derived once per submission and never mutated afterwards.
type CalculationResult struct {
	CostIndex          CostIndex         `json:"cost_index"`
	TechnicalRate      float64           `json:"technical_rate"`
	TechnicalRateRaw   float64           `json:"technical_rate_unfloored"`
	BlendedRate        float64           `json:"blended_rate"`
	WeightingMix       WeightingMix      `json:"weighting_mix"`
	Composition        Composition       `json:"composition"`
	PoolReferenceRate  float64           `json:"pool_reference_rate"`
	AgingLoadPercent   float64           `json:"aging_load_percent"`
	YearOneRate        YearOneRate       `json:"year_one_rate"`
	YearOneRatePercent float64           `json:"year_one_rate_percent"`
	Scenarios          []Scenario        `json:"scenarios"`
	Projection         []ProjectionCycle `json:"projection"`
	NegotiationStance  Stance            `json:"negotiation_stance"`
	RateBand           RateBand          `json:"rate_band"`
	Letter             string            `json:"letter"`
}

type CostIndex struct {
	Value            float64 `json:"value"`
	Source           string  `json:"source"`
	Operator         string  `json:"operator"`
	OperatorPoolRate float64 `json:"operator_pool_rate"`
}

type Composition struct {
	PoolPercent      float64 `json:"pool_percent"`
	TechnicalPercent float64 `json:"technical_percent"`
}

type Scenario struct {
	Mix         WeightingMix `json:"mix"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Composition Composition  `json:"composition"`
	Rate        float64      `json:"rate"`
}

type ProjectionCycle struct {
	Month                     int     `json:"month"`
	MonthlyCost               float64 `json:"monthly_cost"`
	CumulativeIncreasePercent float64 `json:"cumulative_increase_percent"`
}

type Stance string

const (
	StanceFavorable Stance = "FAVORABLE"
	StanceModerate  Stance = "MODERATE"
	StanceHard      Stance = "HARD"
	StanceCritical  Stance = "CRITICAL"
)

type RateBand string

const (
	BandLow      RateBand = "LOW"
	BandElevated RateBand = "ELEVATED"
	BandHigh     RateBand = "HIGH"
)

type OperatorEntry struct {
	Name     string  `json:"name"`
	PoolRate float64 `json:"pool_rate"`
	VCMHRate float64 `json:"vcmh_rate"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
