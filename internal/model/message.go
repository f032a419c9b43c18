package model

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

const (
	CodeCostIndexFallback    = "COST_INDEX_FALLBACK"
	CodeTechnicalRateFloored = "TECHNICAL_RATE_FLOORED"
	CodeClaimsRatioRange     = "CLAIMS_RATIO_OUT_OF_RANGE"
	CodeCostIndexUnavailable = "COST_INDEX_UNAVAILABLE"
)
