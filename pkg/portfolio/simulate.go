package portfolio

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
)

// Simulation model defaults.
const (
	DefaultAnnualReturn     = 0.075
	DefaultAnnualVolatility = 0.15
	DefaultSimulations      = 10000
	DefaultYears            = 5
	DefaultSeed             = 42

	// TradingDaysPerYear is the simulation step grid; contributions
	// land every 21 steps, twelve times a year.
	TradingDaysPerYear  = 252
	tradingDaysPerMonth = 21

	maxYears       = 50
	maxSimulations = 100000
)

// SimParams configures a Monte Carlo projection. Zero values for the
// model fields select the defaults above.
type SimParams struct {
	Initial             float64 `json:"initial"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	Years               int     `json:"years"`
	Simulations         int     `json:"simulations"`
	AnnualReturn        float64 `json:"annual_return"`
	AnnualVolatility    float64 `json:"annual_volatility"`
	Seed                int64   `json:"seed"`
}

func (p *SimParams) normalize() {
	if p.Years == 0 {
		p.Years = DefaultYears
	}
	if p.Simulations == 0 {
		p.Simulations = DefaultSimulations
	}
	if p.AnnualReturn == 0 {
		p.AnnualReturn = DefaultAnnualReturn
	}
	if p.AnnualVolatility == 0 {
		p.AnnualVolatility = DefaultAnnualVolatility
	}
	if p.Seed == 0 {
		p.Seed = DefaultSeed
	}
}

func (p SimParams) validate() error {
	if p.Initial <= 0 {
		return fmt.Errorf("initial amount must be positive (got %g)", p.Initial)
	}
	if p.MonthlyContribution < 0 {
		return fmt.Errorf("monthly contribution must not be negative (got %g)", p.MonthlyContribution)
	}
	if p.Years < 1 || p.Years > maxYears {
		return fmt.Errorf("years must be between 1 and %d (got %d)", maxYears, p.Years)
	}
	if p.Simulations < 1 || p.Simulations > maxSimulations {
		return fmt.Errorf("simulations must be between 1 and %d (got %d)", maxSimulations, p.Simulations)
	}
	if p.AnnualVolatility < 0 {
		return fmt.Errorf("volatility must not be negative (got %g)", p.AnnualVolatility)
	}
	return nil
}

// YearBand holds the portfolio value percentiles across all simulated
// paths at one year mark.
type YearBand struct {
	Year int     `json:"year"`
	P5   float64 `json:"p5"`
	P25  float64 `json:"p25"`
	P50  float64 `json:"p50"`
	P75  float64 `json:"p75"`
	P95  float64 `json:"p95"`
}

// SimResult is the outcome of a Monte Carlo projection.
type SimResult struct {
	Initial       float64    `json:"initial"`
	TotalInvested float64    `json:"total_invested"`
	Years         []YearBand `json:"years"`
	MedianFinal   float64    `json:"median_final"`
	// ProbGain is the fraction of paths ending above the total
	// invested amount.
	ProbGain float64 `json:"prob_gain"`
}

// Simulate projects portfolio value with geometric Brownian motion.
// Daily log returns are drawn from N(mean/252, vol/sqrt(252)); the
// monthly contribution is added every 21 trading days. The same params
// and seed always produce the same result.
func Simulate(params SimParams) (SimResult, error) {
	params.normalize()
	if err := params.validate(); err != nil {
		return SimResult{}, err
	}

	rng := rand.New(rand.NewPCG(uint64(params.Seed), uint64(params.Seed)))
	dailyMean := params.AnnualReturn / TradingDaysPerYear
	dailyStd := params.AnnualVolatility / math.Sqrt(TradingDaysPerYear)
	days := params.Years * TradingDaysPerYear

	finals := make([]float64, params.Simulations)
	yearValues := make([][]float64, params.Years)
	for y := range yearValues {
		yearValues[y] = make([]float64, params.Simulations)
	}

	for s := 0; s < params.Simulations; s++ {
		value := params.Initial
		for d := 1; d <= days; d++ {
			value *= math.Exp(dailyMean + dailyStd*rng.NormFloat64())
			if params.MonthlyContribution > 0 && d%tradingDaysPerMonth == 0 {
				value += params.MonthlyContribution
			}
			if d%TradingDaysPerYear == 0 {
				yearValues[d/TradingDaysPerYear-1][s] = value
			}
		}
		finals[s] = value
	}

	contributionsPerYear := TradingDaysPerYear / tradingDaysPerMonth
	invested := params.Initial + params.MonthlyContribution*float64(contributionsPerYear*params.Years)

	result := SimResult{
		Initial:       params.Initial,
		TotalInvested: invested,
		Years:         make([]YearBand, params.Years),
	}

	for y, values := range yearValues {
		sort.Float64s(values)
		result.Years[y] = YearBand{
			Year: y + 1,
			P5:   percentile(values, 5),
			P25:  percentile(values, 25),
			P50:  percentile(values, 50),
			P75:  percentile(values, 75),
			P95:  percentile(values, 95),
		}
	}
	result.MedianFinal = result.Years[params.Years-1].P50

	gains := 0
	for _, final := range finals {
		if final > invested {
			gains++
		}
	}
	result.ProbGain = float64(gains) / float64(params.Simulations)

	return result, nil
}

// percentile interpolates linearly between the two nearest ranks of a
// sorted sample.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
