package portfolio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatCNY renders a major-unit amount as a CNY display string.
func FormatCNY(amount decimal.Decimal) string {
	cur := money.New(0, money.CNY).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// Position is one portfolio line submitted for valuation.
type Position struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// PositionWeight is a valued position with its share of the total.
type PositionWeight struct {
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	Display string          `json:"display"`
	Weight  decimal.Decimal `json:"weight"`
}

// Valuation is the weighted view of a set of positions.
type Valuation struct {
	Total     decimal.Decimal  `json:"total"`
	Display   string           `json:"display"`
	Positions []PositionWeight `json:"positions"`
}

// Weigh values positions against their combined total. Weight is the
// position's percentage of the total rounded to two decimals; an empty
// or zero-valued position list yields a zero total and no positions.
func Weigh(positions []Position) Valuation {
	total := decimal.Zero
	for _, pos := range positions {
		total = total.Add(pos.Amount)
	}

	v := Valuation{Total: total, Display: FormatCNY(total)}
	if !total.IsPositive() {
		return v
	}

	hundred := decimal.NewFromInt(100)
	v.Positions = make([]PositionWeight, 0, len(positions))
	for _, pos := range positions {
		v.Positions = append(v.Positions, PositionWeight{
			Code:    pos.Code,
			Name:    pos.Name,
			Amount:  pos.Amount,
			Display: FormatCNY(pos.Amount),
			Weight:  pos.Amount.Mul(hundred).Div(total).Round(2),
		})
	}
	return v
}
