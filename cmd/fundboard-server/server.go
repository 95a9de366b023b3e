package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/quantedu/fundboard/internal/config"
	"github.com/quantedu/fundboard/internal/dashboard"
	"github.com/quantedu/fundboard/pkg/auth"
	"github.com/quantedu/fundboard/pkg/provider"
	"github.com/quantedu/fundboard/pkg/store"
)

// server bundles the request handlers with their dependencies. All
// collaborators are injected so tests can assemble a server against a
// mock provider and a throwaway database.
type server struct {
	cfg       *config.Config
	logger    zerolog.Logger
	store     *store.Store
	auth      *auth.Manager
	gateway   *provider.Client
	dashboard *dashboard.Service
}

func newServer(cfg *config.Config, logger zerolog.Logger, st *store.Store, am *auth.Manager, gateway *provider.Client, dash *dashboard.Service) (*server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if st == nil {
		return nil, fmt.Errorf("store is required")
	}
	if am == nil {
		return nil, fmt.Errorf("auth manager is required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("gateway client is required")
	}
	if dash == nil {
		return nil, fmt.Errorf("dashboard service is required")
	}

	return &server{
		cfg:       cfg,
		logger:    logger.With().Str("component", "server").Logger(),
		store:     st,
		auth:      am,
		gateway:   gateway,
		dashboard: dash,
	}, nil
}

// logActivity records a usage event. Failures only warn; activity
// tracking never blocks the serving path.
func (s *server) logActivity(r *http.Request, userID int64, kind string, data map[string]any) {
	if err := s.store.LogActivity(r.Context(), userID, kind, data); err != nil {
		s.logger.Warn().Err(err).Str("kind", kind).Msg("Failed to record activity")
	}
}

// routes wires every endpoint. User-owned state sits behind bearer
// auth; reference and market data is public.
func (s *server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.requireAuth(s.handleLogout))
	mux.HandleFunc("GET /api/auth/me", s.requireAuth(s.handleMe))
	mux.HandleFunc("PUT /api/auth/profile", s.requireAuth(s.handleUpdateProfile))
	mux.HandleFunc("PUT /api/auth/password", s.requireAuth(s.handleChangePassword))

	mux.HandleFunc("GET /api/market/summary", s.handleMarketSummary)
	mux.HandleFunc("GET /api/market/quotations", s.handleQuotations)
	mux.HandleFunc("GET /api/market/topics", s.handleTopics)

	mux.HandleFunc("GET /api/funds/search", s.handleFundSearch)
	mux.HandleFunc("GET /api/funds/guess", s.handleGuessFundCode)
	mux.HandleFunc("GET /api/funds/{code}", s.handleFundDetail)
	mux.HandleFunc("GET /api/funds/{code}/nav", s.handleFundNav)
	mux.HandleFunc("GET /api/funds/{code}/performance", s.handleFundPerformance)
	mux.HandleFunc("GET /api/funds/{code}/holdings", s.handleFundHoldings)
	mux.HandleFunc("GET /api/funds/{code}/diagnosis", s.handleFundDiagnosis)

	mux.HandleFunc("GET /api/strategies/search", s.handleStrategySearch)
	mux.HandleFunc("GET /api/strategies/{code}", s.handleStrategyDetail)

	mux.HandleFunc("POST /api/analysis/risk", s.handleRiskAnalysis)
	mux.HandleFunc("POST /api/analysis/backtest", s.handleBackTest)
	mux.HandleFunc("POST /api/analysis/correlation", s.handleCorrelation)
	mux.HandleFunc("POST /api/analysis/diagnosis", s.handlePortfolioDiagnosis)
	mux.HandleFunc("POST /api/analysis/montecarlo", s.handleMonteCarlo)
	mux.HandleFunc("POST /api/analysis/allocation", s.handleAllocationPlan)

	mux.HandleFunc("GET /api/planner/profiles", s.handleProfiles)
	mux.HandleFunc("GET /api/planner/questionnaire", s.handleQuestionnaire)
	mux.HandleFunc("POST /api/planner/questionnaire", s.handleScoreQuestionnaire)
	mux.HandleFunc("POST /api/planner/plan", s.handlePlan)
	mux.HandleFunc("POST /api/planner/simulate", s.handleSimulate)
	mux.HandleFunc("GET /api/planner/catalog", s.handleFundCatalog)

	mux.HandleFunc("GET /api/portfolios", s.requireAuth(s.handleListPortfolios))
	mux.HandleFunc("POST /api/portfolios", s.requireAuth(s.handleCreatePortfolio))
	mux.HandleFunc("GET /api/portfolios/{id}", s.requireAuth(s.handleGetPortfolio))
	mux.HandleFunc("DELETE /api/portfolios/{id}", s.requireAuth(s.handleDeletePortfolio))
	mux.HandleFunc("PUT /api/portfolios/{id}/holdings", s.requireAuth(s.handleReplaceHoldings))
	mux.HandleFunc("GET /api/portfolios/{id}/valuation", s.requireAuth(s.handleValuation))

	mux.HandleFunc("GET /api/cases", s.handleListCases)
	mux.HandleFunc("GET /api/cases/{id}", s.handleGetCase)
	mux.HandleFunc("POST /api/cases/{id}/submit", s.requireAuth(s.handleSubmitExercise))
	mux.HandleFunc("GET /api/exercises", s.requireAuth(s.handleListSubmissions))

	mux.HandleFunc("GET /api/progress", s.requireAuth(s.handleProgress))
	mux.HandleFunc("POST /api/progress", s.requireAuth(s.handleUpdateProgress))
	mux.HandleFunc("GET /api/progress/{module}/stats", s.requireAuth(s.handleModuleStats))

	mux.HandleFunc("GET /api/notes", s.requireAuth(s.handleListNotes))
	mux.HandleFunc("POST /api/notes", s.requireAuth(s.handleSaveNote))

	mux.HandleFunc("GET /api/activity", s.requireAuth(s.handleActivity))

	mux.HandleFunc("POST /api/admin/cache/flush", s.requireAdmin(s.handleCacheFlush))
	mux.HandleFunc("POST /api/admin/refresh", s.requireAdmin(s.handleRefresh))
	mux.HandleFunc("GET /api/admin/provider/health", s.requireAdmin(s.handleProviderHealth))

	return s.logRequests(withCORS(s.recoverPanic(limitBody(mux))))
}
