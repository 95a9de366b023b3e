package provider

import (
	"context"
)

// request is the contract all typed endpoint requests satisfy.
type request interface {
	Validate() error
	params() map[string]any
}

// do guards a typed endpoint call behind its request validation.
func (c *Client) do(ctx context.Context, endpoint string, req request) (Result, error) {
	if err := req.Validate(); err != nil {
		ProviderErrors.WithLabelValues(string(ErrorClassInvalidRequest)).Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("Request rejected")
		return Result{}, invalidRequest(endpoint, err)
	}
	return c.Fetch(ctx, endpoint, req.params())
}

// SearchFunds searches funds by keyword with paging.
func (c *Client) SearchFunds(ctx context.Context, req SearchFundsRequest) (Result, error) {
	return c.do(ctx, EndpointSearchFunds, req)
}

// GuessFundCode resolves a fund name or partial code to a fund code.
func (c *Client) GuessFundCode(ctx context.Context, req GuessFundCodeRequest) (Result, error) {
	return c.do(ctx, EndpointGuessFundCode, req)
}

// FundsDetail fetches master data for up to 20 funds. Longer lists are
// truncated to the provider cap; AllFundsDetail handles arbitrary sizes.
func (c *Client) FundsDetail(ctx context.Context, req FundsDetailRequest) (Result, error) {
	if len(req.FundCodes) > BatchLimit {
		c.logger.Warn().
			Int("requested", len(req.FundCodes)).
			Int("limit", BatchLimit).
			Msg("Truncating fund code list to provider cap")
		req.FundCodes = req.FundCodes[:BatchLimit]
	}
	return c.do(ctx, EndpointBatchGetFundsDetail, req)
}

// NavHistory fetches NAV history for a set of funds.
func (c *Client) NavHistory(ctx context.Context, req NavHistoryRequest) (Result, error) {
	return c.do(ctx, EndpointBatchGetFundNavHistory, req)
}

// FundPerformance fetches performance figures for a set of funds.
func (c *Client) FundPerformance(ctx context.Context, req FundPerformanceRequest) (Result, error) {
	return c.do(ctx, EndpointGetBatchFundPerformance, req)
}

// FundsHolding fetches reported holdings for a set of funds.
func (c *Client) FundsHolding(ctx context.Context, req FundsHoldingRequest) (Result, error) {
	return c.do(ctx, EndpointBatchGetFundsHolding, req)
}

// FundDiagnosis fetches the multi-dimension diagnosis of one fund.
func (c *Client) FundDiagnosis(ctx context.Context, req FundDiagnosisRequest) (Result, error) {
	return c.do(ctx, EndpointGetFundDiagnosis, req)
}

// AllocationPlan fetches an asset allocation plan matching the given
// return, drawdown, and horizon expectations.
func (c *Client) AllocationPlan(ctx context.Context, req AllocationPlanRequest) (Result, error) {
	return c.do(ctx, EndpointGetAssetAllocationPlan, req)
}

// PortfolioRisk analyzes the risk of a set of holdings.
func (c *Client) PortfolioRisk(ctx context.Context, req PortfolioRiskRequest) (Result, error) {
	return c.do(ctx, EndpointAnalyzePortfolioRisk, req)
}

// BackTest runs a historical back test over a weighted fund list.
func (c *Client) BackTest(ctx context.Context, req BackTestRequest) (Result, error) {
	return c.do(ctx, EndpointGetFundsBackTest, req)
}

// Correlation fetches pairwise return correlations for a fund list.
func (c *Client) Correlation(ctx context.Context, req CorrelationRequest) (Result, error) {
	return c.do(ctx, EndpointGetFundsCorrelation, req)
}

// PortfolioDiagnosis diagnoses a weighted fund portfolio.
func (c *Client) PortfolioDiagnosis(ctx context.Context, req PortfolioDiagnosisRequest) (Result, error) {
	return c.do(ctx, EndpointDiagnoseFundPortfolio, req)
}

// MonteCarlo simulates portfolio outcomes for weighted funds.
func (c *Client) MonteCarlo(ctx context.Context, req MonteCarloRequest) (Result, error) {
	return c.do(ctx, EndpointMonteCarloSimulate, req)
}

// LatestQuotations fetches index quotations, optionally for a specific
// trading day.
func (c *Client) LatestQuotations(ctx context.Context, req QuotationsRequest) (Result, error) {
	return c.do(ctx, EndpointGetLatestQuotations, req)
}

// HotTopics searches market hot topics.
func (c *Client) HotTopics(ctx context.Context, req HotTopicRequest) (Result, error) {
	return c.do(ctx, EndpointSearchHotTopic, req)
}

// StrategySearch searches investment strategies by keyword.
func (c *Client) StrategySearch(ctx context.Context, req StrategySearchRequest) (Result, error) {
	return c.do(ctx, EndpointStrategySearchByKeyword, req)
}

// StrategyDetails fetches details for a set of strategies.
func (c *Client) StrategyDetails(ctx context.Context, req StrategyDetailsRequest) (Result, error) {
	return c.do(ctx, EndpointGetStrategyDetails, req)
}

// CurrentTime fetches the provider clock.
func (c *Client) CurrentTime(ctx context.Context) (Result, error) {
	return c.Fetch(ctx, EndpointGetCurrentTime, map[string]any{})
}

// RenderChart renders an ECharts option server-side into an image URL.
func (c *Client) RenderChart(ctx context.Context, req ChartRenderRequest) (Result, error) {
	return c.do(ctx, EndpointRenderEchart, req)
}
