// Package letter renders the negotiation defense letter sent to the operator.
// It only branches on values the calculation already produced.
package letter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"readjustment-engine/internal/model"
	"readjustment-engine/internal/reference"
)

// Branch is the argument line the letter takes.
type Branch string

const (
	BranchExemption Branch = "EXEMPTION"
	BranchAccept    Branch = "ACCEPT"
	BranchContest   Branch = "CONTEST"
)

// Choose mirrors the classifier: a non-positive technical rate always pleads exemption.
func Choose(technicalRate, proposedRate float64) Branch {
	switch {
	case technicalRate <= 0:
		return BranchExemption
	case technicalRate >= proposedRate:
		return BranchAccept
	default:
		return BranchContest
	}
}

// FormatDefenseLetter returns the letter as markdown.
func FormatDefenseLetter(result model.CalculationResult, input model.PolicyInput) string {
	var b strings.Builder

	company := input.CompanyName
	if company == "" {
		company = "a Contratante"
	}
	operator := result.CostIndex.Operator
	if input.OperatorName != "" && result.CostIndex.Source == string(reference.SourceFallback) {
		operator = input.OperatorName
	}

	fmt.Fprintf(&b, "# Defesa técnica de reajuste\n\n")
	fmt.Fprintf(&b, "**À operadora:** %s  \n**Contratante:** %s  \n", operator, company)
	if input.AnniversaryMonth != "" {
		fmt.Fprintf(&b, "**Aniversário do contrato:** %s  \n", input.AnniversaryMonth)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Recebemos a proposta de reajuste de **%s** e apresentamos a seguir a análise técnica da apólice.\n\n", pct(input.OperatorProposedRatePercent))

	b.WriteString("## Fundamentação\n\n")
	if input.CompanySizeTier == model.TierSmallPoolOnly {
		fmt.Fprintf(&b, "O contrato pertence ao agrupamento de pequenas empresas (pool de risco da ANS). "+
			"Por regra, a sinistralidade individual não é aplicada e o reajuste tecnicamente justificado acompanha a variação de custo médico-hospitalar (VCMH) de **%s**.\n\n",
			pct(result.CostIndex.Value))
	} else {
		fmt.Fprintf(&b, "A sinistralidade apurada no período foi de **%s**, frente a uma meta contratual de equilíbrio (break-even) de **%s**. "+
			"Aplicada a VCMH de **%s**, a necessidade atuarial de recomposição do prêmio é de **%s**.\n\n",
			pct(input.ClaimsRatioPercent), pct(input.BreakEvenTargetPercent), pct(result.CostIndex.Value), pct(result.TechnicalRate))
		if result.Composition.PoolPercent > 0 {
			fmt.Fprintf(&b, "Considerando a ponderação de %s pool / %s técnico, o reajuste combinado é de **%s**.\n\n",
				share(result.Composition.PoolPercent), share(result.Composition.TechnicalPercent), pct(result.BlendedRate))
		}
	}

	b.WriteString("## Pleito\n\n")
	switch Choose(result.TechnicalRate, input.OperatorProposedRatePercent) {
	case BranchExemption:
		fmt.Fprintf(&b, "O resultado técnico indica **%s**, ou seja, não há fundamento atuarial para qualquer aumento. "+
			"Solicitamos a isenção do reajuste neste aniversário e a avaliação de desconto técnico.\n\n", pct(result.TechnicalRate))
	case BranchAccept:
		fmt.Fprintf(&b, "O reajuste técnico calculado (**%s**) é igual ou superior ao proposto. "+
			"Entendemos a proposta de **%s** como adequada e a aceitamos nos termos apresentados.\n\n",
			pct(result.TechnicalRate), pct(input.OperatorProposedRatePercent))
	case BranchContest:
		fmt.Fprintf(&b, "A proposta de **%s** supera em **%s** pontos percentuais o reajuste tecnicamente justificado. "+
			"Contestamos o índice e solicitamos sua redução para **%s**.\n\n",
			pct(input.OperatorProposedRatePercent), points(input.OperatorProposedRatePercent-result.TechnicalRate), pct(result.TechnicalRate))
	}

	if len(result.Projection) > 0 {
		fmt.Fprintf(&b, "## Projeção de custo mensal\n\nFatura atual: R$ %s\n\n", money(input.CurrentMonthlyInvoice))
		b.WriteString("| Horizonte | Custo mensal | Aumento acumulado |\n|---|---|---|\n")
		for _, c := range result.Projection {
			fmt.Fprintf(&b, "| %d meses | R$ %s | %s |\n", c.Month, money(c.MonthlyCost), pct(c.CumulativeIncreasePercent))
		}
		b.WriteString("\n")
	}

	b.WriteString("Permanecemos à disposição para a apresentação dos dados que embasam esta análise.\n\nAtenciosamente,\n\n")
	b.WriteString(company)
	b.WriteString("\n")
	return b.String()
}

var renderer = goldmark.New(goldmark.WithExtensions(extension.Table))

// RenderHTML converts the markdown letter to HTML.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render letter: %w", err)
	}
	return buf.String(), nil
}

func round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// pct formats a percentage pt-BR style, e.g. 30,33%.
func pct(v float64) string {
	return strings.Replace(round2(v).StringFixed(2), ".", ",", 1) + "%"
}

func points(v float64) string {
	return strings.Replace(round2(v).StringFixed(2), ".", ",", 1)
}

func share(v float64) string {
	return round2(v).String() + "%"
}

// money formats a monetary value pt-BR style, e.g. 1.505,79.
func money(v float64) string {
	return humanize.FormatFloat("#.###,##", round2(v).InexactFloat64())
}
