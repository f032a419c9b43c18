package model

import (
	"fmt"
	"strings"
)

// Field names reported by InvalidInputError. They double as the JSON field names.
const (
	FieldTier            = "company_size_tier"
	FieldMix             = "weighting_mix"
	FieldYearOneRate     = "year_one_rate"
	FieldClaimsRatio     = "claims_ratio_percent"
	FieldCostIndex       = "cost_inflation_index_percent"
	FieldBreakEvenTarget = "break_even_target_percent"
	FieldAverageAge      = "average_age"
	FieldInvoice         = "current_monthly_invoice"
	FieldProposedRate    = "operator_proposed_rate_percent"
	FieldEffectiveRate   = "effective_rate"
	FieldTrend           = "trend"
	FieldPoolReference   = "pool_reference_rate"
)

// InvalidInputError reports a non-numeric or out-of-range input. It is never
// coerced to a default inside the calculation core.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Code is the message code used in calculation responses, e.g. INVALID_BREAK_EVEN_TARGET_PERCENT.
func (e *InvalidInputError) Code() string {
	return "INVALID_" + strings.ToUpper(e.Field)
}

func Invalid(field, format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
