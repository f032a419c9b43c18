package actuarial

import "readjustment-engine/internal/model"

var scenarioCopy = map[model.WeightingMix][2]string{
	model.MixPoolOnly: {
		"Cenário A: 100% Pool",
		"Típico para PME I (0-29 vidas). Reajuste definido pelo agrupamento de contratos da ANS.",
	},
	model.Mix50_50: {
		"Cenário B: 50% Pool / 50% Técnico",
		"Ponto de partida comum em negociações para PME II (30-99 vidas).",
	},
	model.Mix70_30: {
		"Cenário C: 70% Pool / 30% Técnico",
		"Negociação alternativa para PME II, com maior peso no pool.",
	},
	model.MixTechnicalOnly: {
		"Cenário D: 100% Técnico",
		"Aplicado a grandes empresas com análise de risco individual.",
	},
}

// Composition reports the pool and technical shares of a mix in percent.
func Composition(mix model.WeightingMix) model.Composition {
	pool := mix.PoolShare() * 100
	return model.Composition{PoolPercent: pool, TechnicalPercent: 100 - pool}
}

// Scenarios evaluates every weighting mix against the same rates.
func Scenarios(r Rates) []model.Scenario {
	out := make([]model.Scenario, 0, len(model.AllMixes))
	for _, mix := range model.AllMixes {
		text := scenarioCopy[mix]
		out = append(out, model.Scenario{
			Mix:         mix,
			Name:        text[0],
			Description: text[1],
			Composition: Composition(mix),
			Rate:        r.BlendFor(mix),
		})
	}
	return out
}
