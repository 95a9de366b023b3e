// Package portfolio provides the local portfolio construction toolkit:
// risk profiles with asset allocation splits, a fund shortlist per asset
// class, position weighting, and Monte Carlo projections. Money amounts
// are decimal; display strings use CNY formatting.
package portfolio

// Profile is a risk tolerance band.
type Profile string

// Profiles ordered from lowest to highest risk.
const (
	ProfileConservative Profile = "conservative"
	ProfileCautious     Profile = "cautious"
	ProfileBalanced     Profile = "balanced"
	ProfileGrowth       Profile = "growth"
	ProfileAggressive   Profile = "aggressive"
)

// DefaultProfile is assumed when a submitted profile is unknown.
const DefaultProfile = ProfileCautious

// AssetClass identifies a fund category inside an allocation.
type AssetClass string

const (
	ClassMoneyMarket AssetClass = "money_market"
	ClassBond        AssetClass = "bond"
	ClassEquity      AssetClass = "equity"
)

// Allocation is the percentage split across asset classes.
// The three percentages always sum to 100.
type Allocation struct {
	MoneyMarket int `json:"money_market"`
	Bond        int `json:"bond"`
	Equity      int `json:"equity"`
}

var allocations = map[Profile]Allocation{
	ProfileConservative: {MoneyMarket: 50, Bond: 40, Equity: 10},
	ProfileCautious:     {MoneyMarket: 20, Bond: 50, Equity: 30},
	ProfileBalanced:     {MoneyMarket: 10, Bond: 40, Equity: 50},
	ProfileGrowth:       {MoneyMarket: 5, Bond: 25, Equity: 70},
	ProfileAggressive:   {MoneyMarket: 0, Bond: 10, Equity: 90},
}

var profileOrder = []Profile{
	ProfileConservative,
	ProfileCautious,
	ProfileBalanced,
	ProfileGrowth,
	ProfileAggressive,
}

// Profiles returns all known profiles ordered from lowest to highest risk.
func Profiles() []Profile {
	out := make([]Profile, len(profileOrder))
	copy(out, profileOrder)
	return out
}

// Valid reports whether p names a known profile.
func (p Profile) Valid() bool {
	_, ok := allocations[p]
	return ok
}

// AllocationFor returns the asset split for a profile.
// Unknown profiles fall back to DefaultProfile.
func AllocationFor(p Profile) Allocation {
	if a, ok := allocations[p]; ok {
		return a
	}
	return allocations[DefaultProfile]
}
