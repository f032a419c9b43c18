package reference

import (
	"context"
	"fmt"
	"math"

	"readjustment-engine/internal/model"
)

// SourceTag records which path produced a resolved cost index.
type SourceTag string

const (
	SourceManual   SourceTag = "MANUAL"
	SourceTable    SourceTag = "TABLE"
	SourceFallback SourceTag = "FALLBACK"
)

// Source answers operator index lookups. A miss is reported as ok=false,
// not as an error.
type Source interface {
	Lookup(ctx context.Context, operator string) (Entry, bool, error)
}

type Resolution struct {
	Value            float64
	Source           SourceTag
	Operator         string
	OperatorPoolRate float64
}

// ResolveCostIndex resolves the effective VCMH against a static table.
func ResolveCostIndex(operatorName string, manualOverride *float64, table *Table) (Resolution, error) {
	return ResolveWith(context.Background(), table, table, operatorName, manualOverride)
}

// ResolveWith applies the resolution order manual override, source lookup,
// market average. fallback supplies the market-average entry and must be non-nil.
func ResolveWith(ctx context.Context, src Source, fallback *Table, operatorName string, manualOverride *float64) (Resolution, error) {
	if manualOverride != nil {
		v := *manualOverride
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Resolution{}, model.Invalid(model.FieldCostIndex, "must be a finite number")
		}
		if v < 0 {
			return Resolution{}, model.Invalid(model.FieldCostIndex, "must be >= 0, got %g", v)
		}
	}

	res := Resolution{Operator: MarketAverage, OperatorPoolRate: fallback.MarketAverage().PoolRate}
	entry, found := Entry{}, false
	if operatorName != "" {
		var err error
		entry, found, err = src.Lookup(ctx, operatorName)
		switch {
		case err != nil && manualOverride == nil:
			return Resolution{}, fmt.Errorf("lookup cost index for %q: %w", operatorName, err)
		case err != nil:
			// A manual override does not depend on the source.
			found = false
		case found:
			if verr := entry.validate(operatorName); verr != nil {
				found = false
			}
		}
	}

	if found {
		res.Operator = operatorName
		if name, ok := fallback.DisplayName(operatorName); ok {
			res.Operator = name
		}
		res.OperatorPoolRate = entry.PoolRate
	}

	switch {
	case manualOverride != nil:
		res.Value = *manualOverride
		res.Source = SourceManual
	case found:
		res.Value = entry.VCMHRate
		res.Source = SourceTable
	default:
		res.Value = fallback.MarketAverage().VCMHRate
		res.Source = SourceFallback
	}
	return res, nil
}
