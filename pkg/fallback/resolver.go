// Package fallback produces substitute payloads for failed provider
// calls. Substitutes are deterministic and schema-compatible with the
// endpoint's real payload, so dashboard rendering degrades instead of
// breaking when the provider is unreachable.
package fallback

import (
	"encoding/json"
	"time"
)

// Category classifies endpoints by the payload shape consumers expect.
type Category string

const (
	// CategoryList covers endpoints whose data is a JSON array.
	CategoryList Category = "list"

	// CategoryMapping covers endpoints whose data is a JSON object.
	CategoryMapping Category = "mapping"

	// CategoryDiagnosis covers the fund diagnosis endpoint.
	CategoryDiagnosis Category = "diagnosis"

	// CategoryQuotation covers market quotation endpoints.
	CategoryQuotation Category = "quotation"

	// CategoryTime covers the provider clock endpoint.
	CategoryTime Category = "time"

	// CategoryChart covers chart rendering endpoints.
	CategoryChart Category = "chart"
)

// categories maps endpoint names to payload categories.
// Unknown endpoints resolve as CategoryMapping.
var categories = map[string]Category{
	"SearchFunds":             CategoryList,
	"BatchGetFundsDetail":     CategoryList,
	"GetBatchFundPerformance": CategoryList,
	"BatchGetFundsHolding":    CategoryList,
	"SearchHotTopic":          CategoryList,
	"StrategySearchByKeyword": CategoryList,
	"GetStrategyDetails":      CategoryList,

	"GuessFundCode":          CategoryMapping,
	"BatchGetFundNavHistory": CategoryMapping,
	"GetAssetAllocationPlan": CategoryMapping,
	"AnalyzePortfolioRisk":   CategoryMapping,
	"GetFundsBackTest":       CategoryMapping,
	"GetFundsCorrelation":    CategoryMapping,
	"DiagnoseFundPortfolio":  CategoryMapping,
	"MonteCarloSimulate":     CategoryMapping,

	"GetFundDiagnosis":    CategoryDiagnosis,
	"GetLatestQuotations": CategoryQuotation,
	"GetCurrentTime":      CategoryTime,
	"RenderEchart":        CategoryChart,
}

// CategoryFor returns the payload category for an endpoint.
func CategoryFor(endpoint string) Category {
	if c, ok := categories[endpoint]; ok {
		return c
	}
	return CategoryMapping
}

// diagnosis is the zero-valued diagnosis payload. Dimension names match
// the radar axes the dashboard renders.
type diagnosis struct {
	FundCode     string             `json:"fundCode"`
	FundName     string             `json:"fundName"`
	OverallScore float64            `json:"overallScore"`
	Dimensions   map[string]float64 `json:"dimensions"`
	Advantages   []string           `json:"advantages"`
	Risks        []string           `json:"risks"`
	Suggestion   string             `json:"suggestion"`
}

// Resolver produces degraded payloads. It holds no state; a single
// instance can serve all requests.
type Resolver struct{}

// NewResolver creates a resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns a schema-compatible substitute payload for the
// endpoint. It never fails: payloads are built from static shapes and
// request parameters only. The caller is responsible for flagging the
// surrounding result as degraded.
func (r *Resolver) Resolve(endpoint string, params map[string]any) json.RawMessage {
	switch CategoryFor(endpoint) {
	case CategoryList:
		return json.RawMessage(`[]`)

	case CategoryDiagnosis:
		d := diagnosis{
			Dimensions: map[string]float64{
				"return":    0,
				"risk":      0,
				"selection": 0,
				"timing":    0,
				"stability": 0,
			},
			Advantages: []string{},
			Risks:      []string{},
		}
		// Echo the requested code so consumers can still label the panel.
		if code, ok := params["fundNameOrCode"].(string); ok {
			d.FundCode = code
		}
		data, err := json.Marshal(d)
		if err != nil {
			return json.RawMessage(`{}`)
		}
		return data

	case CategoryTime:
		data, _ := json.Marshal(map[string]string{
			"currentTime": time.Time{}.Format(time.RFC3339),
		})
		return data

	case CategoryChart:
		return json.RawMessage(`{"url":""}`)

	case CategoryQuotation, CategoryMapping:
		return json.RawMessage(`{}`)

	default:
		return json.RawMessage(`{}`)
	}
}
