package provider

import (
	"github.com/quantedu/fundboard/pkg/cache"
)

// Provider endpoint names. The provider routes by path segment, so the
// endpoint name is also the final URL component.
const (
	EndpointSearchFunds             = "SearchFunds"
	EndpointGuessFundCode           = "GuessFundCode"
	EndpointBatchGetFundsDetail     = "BatchGetFundsDetail"
	EndpointBatchGetFundNavHistory  = "BatchGetFundNavHistory"
	EndpointGetBatchFundPerformance = "GetBatchFundPerformance"
	EndpointBatchGetFundsHolding    = "BatchGetFundsHolding"
	EndpointGetFundDiagnosis        = "GetFundDiagnosis"
	EndpointGetAssetAllocationPlan  = "GetAssetAllocationPlan"
	EndpointAnalyzePortfolioRisk    = "AnalyzePortfolioRisk"
	EndpointGetFundsBackTest        = "GetFundsBackTest"
	EndpointGetFundsCorrelation     = "GetFundsCorrelation"
	EndpointDiagnoseFundPortfolio   = "DiagnoseFundPortfolio"
	EndpointMonteCarloSimulate      = "MonteCarloSimulate"
	EndpointGetLatestQuotations     = "GetLatestQuotations"
	EndpointSearchHotTopic          = "SearchHotTopic"
	EndpointStrategySearchByKeyword = "StrategySearchByKeyword"
	EndpointGetStrategyDetails      = "GetStrategyDetails"
	EndpointGetCurrentTime          = "GetCurrentTime"
	EndpointRenderEchart            = "RenderEchart"
)

// classes maps endpoints to cache TTL classes. Intraday market data
// expires quickly, fund master data slowly; unlisted endpoints use the
// default class.
var classes = map[string]cache.Class{
	EndpointGetLatestQuotations: cache.ClassQuote,
	EndpointSearchHotTopic:      cache.ClassTopic,
	EndpointBatchGetFundsDetail: cache.ClassStatic,
	EndpointGuessFundCode:       cache.ClassStatic,
}

// ClassFor returns the cache TTL class for an endpoint.
func ClassFor(endpoint string) cache.Class {
	if c, ok := classes[endpoint]; ok {
		return c
	}
	return cache.ClassDefault
}

var endpointSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Endpoints()))
	for _, e := range Endpoints() {
		set[e] = struct{}{}
	}
	return set
}()

// Known reports whether the endpoint name is registered.
func Known(endpoint string) bool {
	_, ok := endpointSet[endpoint]
	return ok
}

// Endpoints returns all known endpoint names.
func Endpoints() []string {
	return []string{
		EndpointSearchFunds,
		EndpointGuessFundCode,
		EndpointBatchGetFundsDetail,
		EndpointBatchGetFundNavHistory,
		EndpointGetBatchFundPerformance,
		EndpointBatchGetFundsHolding,
		EndpointGetFundDiagnosis,
		EndpointGetAssetAllocationPlan,
		EndpointAnalyzePortfolioRisk,
		EndpointGetFundsBackTest,
		EndpointGetFundsCorrelation,
		EndpointDiagnoseFundPortfolio,
		EndpointMonteCarloSimulate,
		EndpointGetLatestQuotations,
		EndpointSearchHotTopic,
		EndpointStrategySearchByKeyword,
		EndpointGetStrategyDetails,
		EndpointGetCurrentTime,
		EndpointRenderEchart,
	}
}
