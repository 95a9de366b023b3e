package portfolio

import "github.com/shopspring/decimal"

// CatalogFund is one entry in the built-in fund shortlist shown while
// assembling a plan. NAV and year-to-date figures are indicative
// teaching data, not live quotes.
type CatalogFund struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Class     AssetClass      `json:"class"`
	NAV       decimal.Decimal `json:"nav"`
	YTDReturn float64         `json:"ytd_return"`
	RiskLabel string          `json:"risk_label"`
}

var catalog = []CatalogFund{
	{
		Code:      "110022",
		Name:      "E Fund Consumer Industry",
		Class:     ClassEquity,
		NAV:       decimal.RequireFromString("4.235"),
		YTDReturn: 15.67,
		RiskLabel: "medium-high",
	},
	{
		Code:      "161725",
		Name:      "China Merchants CSI Liquor Index",
		Class:     ClassEquity,
		NAV:       decimal.RequireFromString("1.218"),
		YTDReturn: 22.34,
		RiskLabel: "high",
	},
	{
		Code:      "163406",
		Name:      "Xingquan Business Model Select",
		Class:     ClassEquity,
		NAV:       decimal.RequireFromString("3.568"),
		YTDReturn: 18.92,
		RiskLabel: "medium-high",
	},
	{
		Code:      "110008",
		Name:      "E Fund Stable Income Bond",
		Class:     ClassBond,
		NAV:       decimal.RequireFromString("1.457"),
		YTDReturn: 4.23,
		RiskLabel: "low",
	},
	{
		Code:      "050011",
		Name:      "Bosera Credit Bond",
		Class:     ClassBond,
		NAV:       decimal.RequireFromString("2.345"),
		YTDReturn: 3.89,
		RiskLabel: "low",
	},
	{
		Code:      "485111",
		Name:      "ICBC Dual Interest Bond",
		Class:     ClassBond,
		NAV:       decimal.RequireFromString("1.876"),
		YTDReturn: 4.56,
		RiskLabel: "low",
	},
	{
		Code:      "000704",
		Name:      "E Fund Daily Wealth Money Market",
		Class:     ClassMoneyMarket,
		NAV:       decimal.RequireFromString("1.000"),
		YTDReturn: 2.34,
		RiskLabel: "minimal",
	},
	{
		Code:      "000009",
		Name:      "E Fund Daily Income Money Market",
		Class:     ClassMoneyMarket,
		NAV:       decimal.RequireFromString("1.000"),
		YTDReturn: 2.45,
		RiskLabel: "minimal",
	},
}

// Catalog returns the complete fund shortlist.
func Catalog() []CatalogFund {
	out := make([]CatalogFund, len(catalog))
	copy(out, catalog)
	return out
}

// RecommendedFunds returns the shortlist entries for one asset class.
func RecommendedFunds(class AssetClass) []CatalogFund {
	var out []CatalogFund
	for _, f := range catalog {
		if f.Class == class {
			out = append(out, f)
		}
	}
	return out
}
