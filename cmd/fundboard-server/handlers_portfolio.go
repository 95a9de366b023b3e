package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/quantedu/fundboard/pkg/portfolio"
	"github.com/quantedu/fundboard/pkg/provider"
	"github.com/quantedu/fundboard/pkg/store"
)

func (s *server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	type profileView struct {
		Profile    portfolio.Profile    `json:"profile"`
		Allocation portfolio.Allocation `json:"allocation"`
	}

	profiles := portfolio.Profiles()
	views := make([]profileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, profileView{Profile: p, Allocation: portfolio.AllocationFor(p)})
	}
	s.writeData(w, http.StatusOK, views)
}

func (s *server) handleQuestionnaire(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, http.StatusOK, portfolio.Questionnaire())
}

func (s *server) handleScoreQuestionnaire(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answers map[string]int `json:"answers"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	score, profile, err := portfolio.ScoreAnswers(req.Answers)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeData(w, http.StatusOK, map[string]any{
		"score":      score,
		"profile":    profile,
		"allocation": portfolio.AllocationFor(profile),
	})
}

func (s *server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Profile string  `json:"profile"`
		Amount  float64 `json:"amount"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	plan, err := portfolio.PlanFor(portfolio.Profile(req.Profile), decimal.NewFromFloat(req.Amount))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeData(w, http.StatusOK, plan)
}

func (s *server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var params portfolio.SimParams
	if err := decodeJSON(r, &params); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := portfolio.Simulate(params)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeData(w, http.StatusOK, result)
}

func (s *server) handleFundCatalog(w http.ResponseWriter, r *http.Request) {
	if class := r.URL.Query().Get("class"); class != "" {
		s.writeData(w, http.StatusOK, portfolio.RecommendedFunds(portfolio.AssetClass(class)))
		return
	}
	s.writeData(w, http.StatusOK, portfolio.Catalog())
}

func (s *server) handleRiskAnalysis(w http.ResponseWriter, r *http.Request) {
	var req provider.PortfolioRiskRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.gateway.PortfolioRisk(r.Context(), req)
	if err != nil {
		s.writeProviderError(w, err)
		return
	}
	s.writeResult(w, res)
}

func (s *server) handleBackTest(w http.ResponseWriter, r *http.Request) {
	var req provider.BackTestRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.gateway.BackTest(r.Context(), req)
	if err != nil {
		s.writeProviderError(w, err)
		return
	}
	s.writeResult(w, res)
}

func (s *server) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	var req provider.CorrelationRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.gateway.Correlation(r.Context(), req)
	if err != nil {
		s.writeProviderError(w, err)
		return
	}
	s.writeResult(w, res)
}

func (s *server) handlePortfolioDiagnosis(w http.ResponseWriter, r *http.Request) {
	var req provider.PortfolioDiagnosisRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.gateway.PortfolioDiagnosis(r.Context(), req)
	if err != nil {
		s.writeProviderError(w, err)
		return
	}
	s.writeResult(w, res)
}

func (s *server) handleMonteCarlo(w http.ResponseWriter, r *http.Request) {
	var req provider.MonteCarloRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.gateway.MonteCarlo(r.Context(), req)
	if err != nil {
		s.writeProviderError(w, err)
		return
	}
	s.writeResult(w, res)
}

func (s *server) handleAllocationPlan(w http.ResponseWriter, r *http.Request) {
	var req provider.AllocationPlanRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.gateway.AllocationPlan(r.Context(), req)
	if err != nil {
		s.writeProviderError(w, err)
		return
	}
	s.writeResult(w, res)
}

func (s *server) handleListPortfolios(w http.ResponseWriter, r *http.Request) {
	portfolios, err := s.store.Portfolios(r.Context(), currentUser(r).ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list portfolios")
		s.writeError(w, http.StatusInternalServerError, "failed to list portfolios")
		return
	}
	s.writeData(w, http.StatusOK, portfolios)
}

func (s *server) handleCreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" {
		s.writeError(w, http.StatusBadRequest, "portfolio name is required")
		return
	}

	user := currentUser(r)
	id, err := s.store.CreatePortfolio(r.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create portfolio")
		s.writeError(w, http.StatusInternalServerError, "failed to create portfolio")
		return
	}

	created, err := s.store.Portfolio(r.Context(), id)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load portfolio")
		s.writeError(w, http.StatusInternalServerError, "failed to load portfolio")
		return
	}

	s.logActivity(r, user.ID, "portfolio_created", map[string]any{"portfolio_id": id})
	s.writeData(w, http.StatusCreated, created)
}

// ownPortfolio loads a portfolio and enforces ownership. Portfolios of
// other users read as not found so ids stay unguessable.
func (s *server) ownPortfolio(w http.ResponseWriter, r *http.Request) (store.Portfolio, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid portfolio id")
		return store.Portfolio{}, false
	}

	p, err := s.store.Portfolio(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && p.UserID != currentUser(r).ID) {
		s.writeError(w, http.StatusNotFound, "portfolio not found")
		return store.Portfolio{}, false
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load portfolio")
		s.writeError(w, http.StatusInternalServerError, "failed to load portfolio")
		return store.Portfolio{}, false
	}
	return p, true
}

func (s *server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	p, ok := s.ownPortfolio(w, r)
	if !ok {
		return
	}

	holdings, err := s.store.Holdings(r.Context(), p.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load holdings")
		s.writeError(w, http.StatusInternalServerError, "failed to load holdings")
		return
	}

	s.writeData(w, http.StatusOK, map[string]any{
		"portfolio": p,
		"holdings":  holdings,
	})
}

func (s *server) handleDeletePortfolio(w http.ResponseWriter, r *http.Request) {
	p, ok := s.ownPortfolio(w, r)
	if !ok {
		return
	}

	if err := s.store.DeletePortfolio(r.Context(), p.ID); err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete portfolio")
		s.writeError(w, http.StatusInternalServerError, "failed to delete portfolio")
		return
	}
	s.writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *server) handleReplaceHoldings(w http.ResponseWriter, r *http.Request) {
	p, ok := s.ownPortfolio(w, r)
	if !ok {
		return
	}

	var req struct {
		Holdings []store.Holding `json:"holdings"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	for _, h := range req.Holdings {
		if h.FundCode == "" {
			s.writeError(w, http.StatusBadRequest, "every holding needs a fund code")
			return
		}
	}

	if err := s.store.ReplaceHoldings(r.Context(), p.ID, req.Holdings); err != nil {
		s.logger.Error().Err(err).Msg("Failed to replace holdings")
		s.writeError(w, http.StatusInternalServerError, "failed to save holdings")
		return
	}

	holdings, err := s.store.Holdings(r.Context(), p.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load holdings")
		s.writeError(w, http.StatusInternalServerError, "failed to load holdings")
		return
	}
	s.writeData(w, http.StatusOK, holdings)
}

func (s *server) handleValuation(w http.ResponseWriter, r *http.Request) {
	p, ok := s.ownPortfolio(w, r)
	if !ok {
		return
	}

	holdings, err := s.store.Holdings(r.Context(), p.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load holdings")
		s.writeError(w, http.StatusInternalServerError, "failed to load holdings")
		return
	}

	positions := make([]portfolio.Position, 0, len(holdings))
	for _, h := range holdings {
		positions = append(positions, portfolio.Position{
			Code:   h.FundCode,
			Name:   h.FundName,
			Amount: decimal.NewFromFloat(h.Amount),
		})
	}
	s.writeData(w, http.StatusOK, portfolio.Weigh(positions))
}
