package main

import (
	"net/http"
	"strconv"

	"github.com/quantedu/fundboard/pkg/provider"
)

func (s *server) handleMarketSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.dashboard.Snapshot(r.Context())
	if err != nil {
		s.writeProviderError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{
		Success:   true,
		Message:   summary.Message,
		Data:      summary,
		Degraded:  summary.Degraded,
		FetchedAt: summary.FetchedAt,
	})
}

func (s *server) handleQuotations(w http.ResponseWriter, r *http.Request) {
	res, err := s.gateway.LatestQuotations(r.Context(), provider.QuotationsRequest{
		CalDate: r.URL.Query().Get("date"),
	})
	if err != nil {
		s.writeProviderError(w, err)
		return
	}
	s.writeResult(w, res)
}

func (s *server) handleTopics(w http.ResponseWriter, r *http.Request) {
	res, err := s.gateway.HotTopics(r.Context(), provider.HotTopicRequest{
		Keyword:       r.URL.Query().Get("keyword"),
		PublishedDate: r.URL.Query().Get("date"),
	})
	if err != nil {
		s.writeProviderError(w, err)
		return
	}
	s.writeResult(w, res)
}

func (s *server) handleFundSearch(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		s.writeError(w, http.StatusBadRequest, "keyword is required")
		return
	}
	page, err := queryInt(r, "page", 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid page")
		return
	}
	size, err := queryInt(r, "size", 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid size")
		return
	}

	res, err := s.gateway.SearchFunds(r.Context(), provider.SearchFundsRequest{
		Keyword:  keyword,
		Category: r.URL.Query().Get("category"),
		Page:     page,
		Size:     size,
	})
	if err != nil {
		s.writeProviderError(w, err)
		return
	}
	s.writeResult(w, res)
}

func (s *server) handleGuessFundCode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		s.writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	res, err := s.gateway.GuessFundCode(r.Context(), provider.GuessFundCodeRequest{FundNameOrCode: q})
	if err != nil {
		s.writeProviderError(w, err)
		return
	}
	s.writeResult(w, res)
}

func (s *server) handleFundDetail(w http.ResponseWriter, r *http.Request) {
	res, err := s.gateway.FundsDetail(r.Context(), provider.FundsDetailRequest{
		FundCodes: []string{r.PathValue("code")},
	})
	if err != nil {
		s.writeProviderError(w, err)
		return
	}
	s.writeResult(w, res)
}

func (s *server) handleFundNav(w http.ResponseWriter, r *http.Request) {
	req := provider.NewNavHistoryRequest([]string{r.PathValue("code")})
	if dimension := r.URL.Query().Get("range"); dimension != "" {
		req.DimensionType = dimension
	}

	res, err := s.gateway.NavHistory(r.Context(), req)
	if err != nil {
		s.writeProviderError(w, err)
		return
	}
	s.writeResult(w, res)
}

func (s *server) handleFundPerformance(w http.ResponseWriter, r *http.Request) {
	res, err := s.gateway.FundPerformance(r.Context(), provider.FundPerformanceRequest{
		FundCodes: []string{r.PathValue("code")},
	})
	if err != nil {
		s.writeProviderError(w, err)
		return
	}
	s.writeResult(w, res)
}

func (s *server) handleFundHoldings(w http.ResponseWriter, r *http.Request) {
	report, err := queryInt(r, "report", 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid report date")
		return
	}

	res, err := s.gateway.FundsHolding(r.Context(), provider.FundsHoldingRequest{
		FundCodes:      []string{r.PathValue("code")},
		FundReportDate: report,
	})
	if err != nil {
		s.writeProviderError(w, err)
		return
	}
	s.writeResult(w, res)
}

func (s *server) handleFundDiagnosis(w http.ResponseWriter, r *http.Request) {
	res, err := s.gateway.FundDiagnosis(r.Context(), provider.FundDiagnosisRequest{
		FundNameOrCode: r.PathValue("code"),
	})
	if err != nil {
		s.writeProviderError(w, err)
		return
	}
	s.writeResult(w, res)
}

func (s *server) handleStrategySearch(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		s.writeError(w, http.StatusBadRequest, "keyword is required")
		return
	}
	page, err := queryInt(r, "page", 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid page")
		return
	}
	size, err := queryInt(r, "size", 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid size")
		return
	}

	res, err := s.gateway.StrategySearch(r.Context(), provider.StrategySearchRequest{
		Keyword:  keyword,
		PageNum:  page,
		PageSize: size,
	})
	if err != nil {
		s.writeProviderError(w, err)
		return
	}
	s.writeResult(w, res)
}

func (s *server) handleStrategyDetail(w http.ResponseWriter, r *http.Request) {
	res, err := s.gateway.StrategyDetails(r.Context(), provider.StrategyDetailsRequest{
		StrategyCodes: []string{r.PathValue("code")},
	})
	if err != nil {
		s.writeProviderError(w, err)
		return
	}
	s.writeResult(w, res)
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
