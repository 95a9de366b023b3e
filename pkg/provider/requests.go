package provider

import (
	"github.com/go-playground/validator/v10"
)

// validate is the shared request validator. Struct tags define what
// counts as a structurally valid request; anything they reject surfaces
// as a hard invalid_request error before any network call.
var validate = validator.New()

// Holding is one position of a fund portfolio payload.
type Holding struct {
	FundCode string  `json:"fundCode" validate:"required"`
	Weight   float64 `json:"weight" validate:"gte=0"`
}

// SearchFundsRequest searches funds by keyword with paging.
type SearchFundsRequest struct {
	Keyword  string `json:"keyword" validate:"required"`
	Category string `json:"category" validate:"omitempty"`
	Page     int    `json:"page" validate:"gte=0"`
	Size     int    `json:"size" validate:"gte=0,lte=100"`
}

func (r SearchFundsRequest) Validate() error { return validate.Struct(r) }

func (r SearchFundsRequest) params() map[string]any {
	size := r.Size
	if size == 0 {
		size = 20
	}
	p := map[string]any{
		"keyword": r.Keyword,
		"page":    r.Page,
		"size":    size,
	}
	if r.Category != "" {
		p["category"] = r.Category
	}
	return p
}

// GuessFundCodeRequest resolves a fund name or partial code to a code.
type GuessFundCodeRequest struct {
	FundNameOrCode string `json:"fundNameOrCode" validate:"required"`
}

func (r GuessFundCodeRequest) Validate() error { return validate.Struct(r) }

func (r GuessFundCodeRequest) params() map[string]any {
	return map[string]any{"fundNameOrCode": r.FundNameOrCode}
}

// FundsDetailRequest fetches master data for up to 20 funds.
type FundsDetailRequest struct {
	FundCodes []string `json:"fundCodes" validate:"required,min=1,dive,required"`
}

func (r FundsDetailRequest) Validate() error { return validate.Struct(r) }

func (r FundsDetailRequest) params() map[string]any {
	return map[string]any{"fundCodes": r.FundCodes}
}

// NavHistoryRequest fetches NAV history for a set of funds.
type NavHistoryRequest struct {
	FundCodes     []string `json:"fundCodes" validate:"required,min=1,dive,required"`
	DimensionType string   `json:"dimensionType" validate:"omitempty"`
	IsDesc        bool     `json:"isDesc"`
}

// NewNavHistoryRequest returns a request with the provider defaults
// applied: one-year window, newest first.
func NewNavHistoryRequest(fundCodes []string) NavHistoryRequest {
	return NavHistoryRequest{
		FundCodes:     fundCodes,
		DimensionType: "oneYear",
		IsDesc:        true,
	}
}

func (r NavHistoryRequest) Validate() error { return validate.Struct(r) }

func (r NavHistoryRequest) params() map[string]any {
	dimension := r.DimensionType
	if dimension == "" {
		dimension = "oneYear"
	}
	return map[string]any{
		"fundCodes":     r.FundCodes,
		"dimensionType": dimension,
		"isDesc":        r.IsDesc,
	}
}

// FundPerformanceRequest fetches performance figures for a set of funds.
type FundPerformanceRequest struct {
	FundCodes []string `json:"fundCodes" validate:"required,min=1,dive,required"`
}

func (r FundPerformanceRequest) Validate() error { return validate.Struct(r) }

func (r FundPerformanceRequest) params() map[string]any {
	return map[string]any{"fundCodes": r.FundCodes}
}

// FundsHoldingRequest fetches reported holdings for a set of funds.
type FundsHoldingRequest struct {
	FundCodes []string `json:"fundCodes" validate:"required,min=1,dive,required"`

	// FundReportDate selects a report period (yyyyMMdd); zero means latest.
	FundReportDate int `json:"fundReportDate" validate:"omitempty,gte=0"`
}

func (r FundsHoldingRequest) Validate() error { return validate.Struct(r) }

func (r FundsHoldingRequest) params() map[string]any {
	p := map[string]any{"fundCodes": r.FundCodes}
	if r.FundReportDate != 0 {
		p["fundReportDate"] = r.FundReportDate
	}
	return p
}

// FundDiagnosisRequest fetches the multi-dimension diagnosis of a fund.
type FundDiagnosisRequest struct {
	FundNameOrCode string `json:"fundNameOrCode" validate:"required"`
}

func (r FundDiagnosisRequest) Validate() error { return validate.Struct(r) }

func (r FundDiagnosisRequest) params() map[string]any {
	return map[string]any{"fundNameOrCode": r.FundNameOrCode}
}

// AllocationPlanRequest asks for an asset allocation plan matching the
// given expectations. All fields are optional; zero values are omitted.
type AllocationPlanRequest struct {
	ExpectedAnnualizedReturnRate float64 `json:"expectedAnnualizedReturnRate" validate:"omitempty,gt=0,lte=1"`
	ExpectedDrawdown             float64 `json:"expectedDrawdown" validate:"omitempty,gt=0,lte=1"`
	ExpectedInvestTime           string  `json:"expectedInvestTime" validate:"omitempty"`
}

func (r AllocationPlanRequest) Validate() error { return validate.Struct(r) }

func (r AllocationPlanRequest) params() map[string]any {
	p := map[string]any{}
	if r.ExpectedAnnualizedReturnRate != 0 {
		p["expectedAnnualizedReturnRate"] = r.ExpectedAnnualizedReturnRate
	}
	if r.ExpectedDrawdown != 0 {
		p["expectedDrawdown"] = r.ExpectedDrawdown
	}
	if r.ExpectedInvestTime != "" {
		p["expectedInvestTime"] = r.ExpectedInvestTime
	}
	return p
}

// PortfolioRiskRequest analyzes the risk of a set of holdings.
type PortfolioRiskRequest struct {
	Holdings []Holding `json:"holdings" validate:"required,min=1,dive"`
}

func (r PortfolioRiskRequest) Validate() error { return validate.Struct(r) }

func (r PortfolioRiskRequest) params() map[string]any {
	return map[string]any{"holdings": holdingsToParams(r.Holdings)}
}

// BackTestRequest runs a historical back test over a weighted fund list.
type BackTestRequest struct {
	FundList []Holding `json:"fundList" validate:"required,min=1,dive"`
}

func (r BackTestRequest) Validate() error { return validate.Struct(r) }

func (r BackTestRequest) params() map[string]any {
	return map[string]any{"fundList": holdingsToParams(r.FundList)}
}

// CorrelationRequest fetches pairwise return correlations for a fund list.
type CorrelationRequest struct {
	FundList []Holding `json:"fundList" validate:"required,min=1,dive"`
}

func (r CorrelationRequest) Validate() error { return validate.Struct(r) }

func (r CorrelationRequest) params() map[string]any {
	return map[string]any{"fundList": holdingsToParams(r.FundList)}
}

// PortfolioDiagnosisRequest diagnoses a weighted fund portfolio.
type PortfolioDiagnosisRequest struct {
	FundList []Holding `json:"fundList" validate:"required,min=1,dive"`
}

func (r PortfolioDiagnosisRequest) Validate() error { return validate.Struct(r) }

func (r PortfolioDiagnosisRequest) params() map[string]any {
	return map[string]any{"fundList": holdingsToParams(r.FundList)}
}

// MonteCarloRequest simulates portfolio outcomes for weighted funds.
type MonteCarloRequest struct {
	Weights         map[string]float64 `json:"weights" validate:"required,min=1"`
	Frequency       string             `json:"frequency" validate:"omitempty,oneof=YEAR MONTH WEEK DAY"`
	PeriodCount     int                `json:"periodCount" validate:"omitempty,gt=0"`
	SimulationCount int                `json:"simulationCount" validate:"omitempty,gt=0"`
}

func (r MonteCarloRequest) Validate() error { return validate.Struct(r) }

func (r MonteCarloRequest) params() map[string]any {
	frequency := r.Frequency
	if frequency == "" {
		frequency = "YEAR"
	}
	periods := r.PeriodCount
	if periods == 0 {
		periods = 5
	}
	simulations := r.SimulationCount
	if simulations == 0 {
		simulations = 10000
	}
	return map[string]any{
		"weights":         r.Weights,
		"frequency":       frequency,
		"periodCount":     periods,
		"simulationCount": simulations,
	}
}

// QuotationsRequest fetches index quotations, optionally for a specific
// trading day.
type QuotationsRequest struct {
	CalDate string `json:"calDate" validate:"omitempty,datetime=2006-01-02"`
}

func (r QuotationsRequest) Validate() error { return validate.Struct(r) }

func (r QuotationsRequest) params() map[string]any {
	p := map[string]any{}
	if r.CalDate != "" {
		p["calDate"] = r.CalDate
	}
	return p
}

// HotTopicRequest searches market hot topics.
type HotTopicRequest struct {
	Keyword       string `json:"keyword" validate:"omitempty"`
	PublishedDate string `json:"publishedDate" validate:"omitempty,datetime=2006-01-02"`
}

func (r HotTopicRequest) Validate() error { return validate.Struct(r) }

func (r HotTopicRequest) params() map[string]any {
	p := map[string]any{}
	if r.Keyword != "" {
		p["keyword"] = r.Keyword
	}
	if r.PublishedDate != "" {
		p["publishedDate"] = r.PublishedDate
	}
	return p
}

// StrategySearchRequest searches investment strategies by keyword.
type StrategySearchRequest struct {
	Keyword  string `json:"keyword" validate:"required"`
	PageNum  int    `json:"pageNum" validate:"gte=0"`
	PageSize int    `json:"pageSize" validate:"gte=0,lte=100"`
}

func (r StrategySearchRequest) Validate() error { return validate.Struct(r) }

func (r StrategySearchRequest) params() map[string]any {
	pageNum := r.PageNum
	if pageNum == 0 {
		pageNum = 1
	}
	pageSize := r.PageSize
	if pageSize == 0 {
		pageSize = 20
	}
	return map[string]any{
		"keyword":  r.Keyword,
		"pageNum":  pageNum,
		"pageSize": pageSize,
	}
}

// StrategyDetailsRequest fetches details for a set of strategies.
type StrategyDetailsRequest struct {
	StrategyCodes []string `json:"strategyCodes" validate:"required,min=1,dive,required"`
}

func (r StrategyDetailsRequest) Validate() error { return validate.Struct(r) }

func (r StrategyDetailsRequest) params() map[string]any {
	return map[string]any{"strategyCodes": r.StrategyCodes}
}

// ChartRenderRequest renders an ECharts option server-side into an
// image URL.
type ChartRenderRequest struct {
	Option string `json:"option" validate:"required"`
	Width  string `json:"width" validate:"omitempty,numeric"`
	Height string `json:"height" validate:"omitempty,numeric"`
}

func (r ChartRenderRequest) Validate() error { return validate.Struct(r) }

func (r ChartRenderRequest) params() map[string]any {
	width := r.Width
	if width == "" {
		width = "800"
	}
	height := r.Height
	if height == "" {
		height = "600"
	}
	return map[string]any{
		"option": r.Option,
		"width":  width,
		"height": height,
	}
}

// holdingsToParams converts typed holdings into the generic maps the
// request body and cache fingerprint share.
func holdingsToParams(holdings []Holding) []map[string]any {
	out := make([]map[string]any, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, map[string]any{
			"fundCode": h.FundCode,
			"weight":   h.Weight,
		})
	}
	return out
}
