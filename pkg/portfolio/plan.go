package portfolio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PlanLine is one asset-class slice of an allocation plan.
type PlanLine struct {
	Class   AssetClass      `json:"class"`
	Percent int             `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
	Display string          `json:"display"`
}

// Plan is a concrete allocation of an investment amount, with the
// strategy and risk notes shown alongside it.
type Plan struct {
	Profile   Profile         `json:"profile"`
	Total     decimal.Decimal `json:"total"`
	Display   string          `json:"display"`
	Lines     []PlanLine      `json:"lines"`
	Strategy  []string        `json:"strategy"`
	RiskNotes []string        `json:"risk_notes"`
}

// PlanFor splits an amount across asset classes for the given profile.
// Unknown profiles fall back to DefaultProfile. Amounts are rounded to
// cents; the rounding residue lands on the equity line so the lines
// always sum to the total.
func PlanFor(p Profile, total decimal.Decimal) (Plan, error) {
	if !total.IsPositive() {
		return Plan{}, fmt.Errorf("total amount must be positive (got %s)", total)
	}
	if !p.Valid() {
		p = DefaultProfile
	}

	alloc := allocations[p]
	parts := []struct {
		class   AssetClass
		percent int
	}{
		{ClassMoneyMarket, alloc.MoneyMarket},
		{ClassBond, alloc.Bond},
		{ClassEquity, alloc.Equity},
	}

	hundred := decimal.NewFromInt(100)
	remaining := total
	lines := make([]PlanLine, 0, len(parts))
	for i, part := range parts {
		var amount decimal.Decimal
		if i == len(parts)-1 {
			amount = remaining
		} else {
			amount = total.Mul(decimal.NewFromInt(int64(part.percent))).Div(hundred).Round(2)
		}
		remaining = remaining.Sub(amount)
		lines = append(lines, PlanLine{
			Class:   part.class,
			Percent: part.percent,
			Amount:  amount,
			Display: FormatCNY(amount),
		})
	}

	advice := adviceFor(p)
	return Plan{
		Profile:   p,
		Total:     total,
		Display:   FormatCNY(total),
		Lines:     lines,
		Strategy:  advice.strategy,
		RiskNotes: advice.risks,
	}, nil
}

type profileAdvice struct {
	strategy []string
	risks    []string
}

var advice = map[Profile]profileAdvice{
	ProfileConservative: {
		strategy: []string{
			"Hold mostly money market and bond funds",
			"Keep ample liquidity for short-term needs",
			"Rebalance on a fixed schedule",
			"Cap the equity sleeve",
		},
		risks: []string{
			"Returns stay low",
			"Rate moves hit the bond sleeve",
			"Inflation erodes real value over time",
		},
	},
	ProfileCautious: {
		strategy: []string{
			"Bonds as the core, equities as the enhancer",
			"Spread positions across fund houses",
			"Hold for the long term",
			"Invest on a fixed schedule",
		},
		risks: []string{
			"Market swings still move the portfolio",
			"Rebalancing timing matters",
			"Watch the drawdown ceiling",
		},
	},
	ProfileBalanced: {
		strategy: []string{
			"Split evenly between equities and bonds",
			"Diversify moderately",
			"Adjust weights with the market cycle",
		},
		risks: []string{
			"Exposed in both directions",
			"Requires active judgment",
			"Entry and exit timing matter",
		},
	},
	ProfileGrowth: {
		strategy: []string{
			"Equity funds as the core holding",
			"Select funds with durable track records",
			"Hold through volatility",
		},
		risks: []string{
			"Short-term swings run large",
			"Drawdowns can cut deep",
			"Takes staying power",
		},
	},
	ProfileAggressive: {
		strategy: []string{
			"Nearly full equity allocation",
			"Target long-run growth",
			"Accept high volatility as the price of return",
		},
		risks: []string{
			"High volatility, high risk",
			"Losses can be heavy in down markets",
			"Demands experience and discipline",
		},
	},
}

func adviceFor(p Profile) profileAdvice {
	if a, ok := advice[p]; ok {
		return a
	}
	return advice[DefaultProfile]
}
