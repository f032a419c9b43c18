package model

type CompanySizeTier string

const (
	TierSmallPoolOnly   CompanySizeTier = "SMALL_POOL_ONLY"
	TierSmallHybrid     CompanySizeTier = "SMALL_HYBRID"
	TierFreeNegotiation CompanySizeTier = "FREE_NEGOTIATION"
)

func (t CompanySizeTier) Valid() bool {
	switch t {
	case TierSmallPoolOnly, TierSmallHybrid, TierFreeNegotiation:
		return true
	}
	return false
}

// DefaultMix is the weighting regime usually applied to contracts of this size.
func (t CompanySizeTier) DefaultMix() WeightingMix {
	switch t {
	case TierSmallPoolOnly:
		return MixPoolOnly
	case TierSmallHybrid:
		return Mix50_50
	default:
		return MixTechnicalOnly
	}
}

type WeightingMix string

const (
	MixPoolOnly      WeightingMix = "POOL_ONLY"
	Mix50_50         WeightingMix = "MIX_50_50"
	Mix70_30         WeightingMix = "MIX_70_30"
	MixTechnicalOnly WeightingMix = "TECHNICAL_ONLY"
)

// AllMixes is ordered from fully pooled to fully technical.
var AllMixes = []WeightingMix{MixPoolOnly, Mix50_50, Mix70_30, MixTechnicalOnly}

func (m WeightingMix) Valid() bool {
	switch m {
	case MixPoolOnly, Mix50_50, Mix70_30, MixTechnicalOnly:
		return true
	}
	return false
}

// PoolShare returns the fraction of the blended rate taken from the pool reference rate.
func (m WeightingMix) PoolShare() float64 {
	switch m {
	case MixPoolOnly:
		return 1
	case Mix50_50:
		return 0.5
	case Mix70_30:
		return 0.7
	default:
		return 0
	}
}

// YearOneRate selects which computed rate is applied to the invoice in the first cycle.
type YearOneRate string

const (
	YearOneBlended                     YearOneRate = "BLENDED"
	YearOneTechnical                   YearOneRate = "TECHNICAL"
	YearOneLowerOfTechnicalAndProposed YearOneRate = "LOWER_OF_TECHNICAL_AND_PROPOSED"
)

func (y YearOneRate) Valid() bool {
	switch y {
	case YearOneBlended, YearOneTechnical, YearOneLowerOfTechnicalAndProposed:
		return true
	}
	return false
}

type PolicyInput struct {
	CompanySizeTier             CompanySizeTier `json:"company_size_tier"`
	OperatorName                string          `json:"operator_name,omitempty"`
	ClaimsRatioPercent          float64         `json:"claims_ratio_percent"`
	CostInflationIndexPercent   *float64        `json:"cost_inflation_index_percent,omitempty"`
	BreakEvenTargetPercent      float64         `json:"break_even_target_percent"`
	WeightingMix                WeightingMix    `json:"weighting_mix,omitempty"`
	AverageAge                  *float64        `json:"average_age,omitempty"`
	CurrentMonthlyInvoice       float64         `json:"current_monthly_invoice"`
	OperatorProposedRatePercent float64         `json:"operator_proposed_rate_percent"`
	YearOneRate                 YearOneRate     `json:"year_one_rate,omitempty"`
	CompanyName                 string          `json:"company_name,omitempty"`
	AnniversaryMonth            string          `json:"anniversary_month,omitempty"`
}

// EffectiveMix returns the requested mix or the tier default when none was given.
func (p PolicyInput) EffectiveMix() WeightingMix {
	if p.WeightingMix == "" {
		return p.CompanySizeTier.DefaultMix()
	}
	return p.WeightingMix
}

func (p PolicyInput) EffectiveYearOneRate() YearOneRate {
	if p.YearOneRate == "" {
		return YearOneBlended
	}
	return p.YearOneRate
}
