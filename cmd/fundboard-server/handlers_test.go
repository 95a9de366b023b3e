package main

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/quantedu/fundboard/internal/testutil"
	"github.com/quantedu/fundboard/pkg/provider"
)

const searchFundsPayload = `{
	"funds": [
		{"fundCode": "110022", "fundName": "E Fund Consumer Industry"},
		{"fundCode": "161725", "fundName": "China Merchants CSI Liquor Index"}
	],
	"total": 2
}`

func TestFundSearch(t *testing.T) {
	e := newTestEnv(t)
	e.mock.SetResponse(provider.EndpointSearchFunds, testutil.NewSuccessResponse(searchFundsPayload))

	rec := e.do(t, http.MethodGet, "/api/funds/search?keyword=consumer&page=1&size=10", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Error("success = false, want true")
	}
	if env.Degraded {
		t.Error("degraded = true, want false")
	}
	if env.Source != string(provider.SourceLive) {
		t.Errorf("source = %q, want %q", env.Source, provider.SourceLive)
	}
	if len(dataMap(t, env)["funds"].([]any)) != 2 {
		t.Error("expected 2 funds in payload")
	}
}

func TestFundSearch_MissingKeyword(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/api/funds/search", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

// A failing provider still answers 200: the payload degrades, the
// request does not fail.
func TestFundSearch_ProviderDown(t *testing.T) {
	e := newTestEnv(t)
	e.mock.SetResponse(provider.EndpointSearchFunds, testutil.NewFailureResponse("provider maintenance"))

	rec := e.do(t, http.MethodGet, "/api/funds/search?keyword=consumer", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Error("success = false, want true")
	}
	if !env.Degraded {
		t.Error("degraded = false, want true")
	}
	if env.Source != string(provider.SourceFallback) {
		t.Errorf("source = %q, want %q", env.Source, provider.SourceFallback)
	}
	if env.Message == "" {
		t.Error("degraded response carries no message")
	}
}

func TestFundDetail_SecondCallHitsCache(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/api/funds/110022", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = e.do(t, http.MethodGet, "/api/funds/110022", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Source != string(provider.SourceCache) {
		t.Errorf("second call source = %q, want %q", env.Source, provider.SourceCache)
	}
	if got := e.mock.RequestCount(provider.EndpointBatchGetFundsDetail); got != 1 {
		t.Errorf("provider requests = %d, want 1", got)
	}
}

func TestMarketSummary(t *testing.T) {
	e := newTestEnv(t)
	e.mock.SetResponse(provider.EndpointGetLatestQuotations, testutil.NewSuccessResponse(`{
		"quotations": [
			{"indexName": "SSE Composite", "currentPoint": 3245.6, "changePercent": 0.8},
			{"indexName": "CSI 300", "currentPoint": 4102.3, "changePercent": -0.2}
		]
	}`))
	e.mock.SetResponse(provider.EndpointSearchHotTopic, testutil.NewSuccessResponse(`{
		"topics": [
			{"title": "New fund issuance rebounds", "summary": "Issuance volume grew again."}
		]
	}`))

	rec := e.do(t, http.MethodGet, "/api/market/summary", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	if env.Degraded {
		t.Error("degraded = true, want false")
	}
	summary := dataMap(t, env)
	if got := len(summary["indices"].([]any)); got != 2 {
		t.Errorf("indices = %d, want 2", got)
	}
	if got := len(summary["topics"].([]any)); got != 1 {
		t.Errorf("topics = %d, want 1", got)
	}
}

func TestAnalysis_EmptyHoldingsRejected(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/analysis/risk", "", map[string]any{
		"holdings": []any{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d (body %s)", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
	if env := decodeEnvelope(t, rec); env.Success {
		t.Error("success = true, want false")
	}
}

func TestAnalysis_MonteCarlo(t *testing.T) {
	e := newTestEnv(t)
	e.mock.SetResponse(provider.EndpointMonteCarloSimulate, testutil.NewSuccessResponse(`{"median": 182000}`))

	rec := e.do(t, http.MethodPost, "/api/analysis/montecarlo", "", map[string]any{
		"weights": map[string]float64{"110022": 0.6, "110008": 0.4},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if env := decodeEnvelope(t, rec); env.Degraded {
		t.Error("degraded = true, want false")
	}
}

func TestPlannerPlan(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/planner/plan", "", map[string]any{
		"profile": "cautious",
		"amount":  500000,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	plan := dataMap(t, decodeEnvelope(t, rec))
	if got := len(plan["lines"].([]any)); got != 3 {
		t.Errorf("lines = %d, want 3", got)
	}

	rec = e.do(t, http.MethodPost, "/api/planner/plan", "", map[string]any{
		"profile": "cautious",
		"amount":  -5,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative amount status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestPlannerSimulate(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/planner/simulate", "", map[string]any{
		"initial":     100000,
		"years":       3,
		"simulations": 200,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	result := dataMap(t, decodeEnvelope(t, rec))
	if got := len(result["years"].([]any)); got != 3 {
		t.Errorf("year bands = %d, want 3", got)
	}

	rec = e.do(t, http.MethodPost, "/api/planner/simulate", "", map[string]any{
		"initial": -1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad params status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestPlannerQuestionnaire(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/api/planner/questionnaire", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	questions, ok := decodeEnvelope(t, rec).Data.([]any)
	if !ok || len(questions) != 5 {
		t.Fatalf("questions = %d, want 5", len(questions))
	}

	answers := map[string]int{}
	for _, q := range questions {
		id := q.(map[string]any)["id"].(string)
		answers[id] = 0
	}
	rec = e.do(t, http.MethodPost, "/api/planner/questionnaire", "", map[string]any{
		"answers": answers,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("score status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := dataMap(t, decodeEnvelope(t, rec))["profile"]; got != "conservative" {
		t.Errorf("profile = %v, want conservative", got)
	}

	rec = e.do(t, http.MethodPost, "/api/planner/questionnaire", "", map[string]any{
		"answers": map[string]int{"horizon": 1},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("partial answers status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestPlannerCatalog(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/api/planner/catalog", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	all, _ := decodeEnvelope(t, rec).Data.([]any)
	if len(all) == 0 {
		t.Fatal("catalog is empty")
	}

	rec = e.do(t, http.MethodGet, "/api/planner/catalog?class=bond", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	bonds, _ := decodeEnvelope(t, rec).Data.([]any)
	if len(bonds) == 0 || len(bonds) >= len(all) {
		t.Errorf("bond funds = %d of %d, want a strict subset", len(bonds), len(all))
	}
}

func TestPortfolioLifecycle(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "grace")

	rec := e.do(t, http.MethodPost, "/api/portfolios", token, map[string]string{
		"name":        "Steady Growth",
		"description": "Core bond plus equity satellites",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	id := int64(dataMap(t, decodeEnvelope(t, rec))["id"].(float64))
	path := "/api/portfolios/" + strconv.FormatInt(id, 10)

	rec = e.do(t, http.MethodGet, "/api/portfolios", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if got := len(decodeEnvelope(t, rec).Data.([]any)); got != 1 {
		t.Errorf("portfolios = %d, want 1", got)
	}

	rec = e.do(t, http.MethodPut, path+"/holdings", token, map[string]any{
		"holdings": []map[string]any{
			{"fund_code": "110008", "fund_name": "E Fund Stable Income Bond", "weight": 50, "amount": 5000},
			{"fund_code": "110022", "fund_name": "E Fund Consumer Industry", "weight": 30, "amount": 3000},
			{"fund_code": "000704", "fund_name": "E Fund Daily Wealth Money Market", "weight": 20, "amount": 2000},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("holdings status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = e.do(t, http.MethodGet, path, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	if got := len(dataMap(t, decodeEnvelope(t, rec))["holdings"].([]any)); got != 3 {
		t.Errorf("holdings = %d, want 3", got)
	}

	rec = e.do(t, http.MethodGet, path+"/valuation", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("valuation status = %d", rec.Code)
	}
	valuation := dataMap(t, decodeEnvelope(t, rec))
	if display, _ := valuation["display"].(string); !strings.Contains(display, "10,000.00") {
		t.Errorf("valuation display = %q, want a 10,000.00 total", display)
	}
	if got := len(valuation["positions"].([]any)); got != 3 {
		t.Errorf("positions = %d, want 3", got)
	}

	rec = e.do(t, http.MethodDelete, path, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = e.do(t, http.MethodGet, path, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestPortfolio_OtherUsersHidden(t *testing.T) {
	e := newTestEnv(t)
	owner := e.register(t, "holly")
	other := e.register(t, "ivan")

	rec := e.do(t, http.MethodPost, "/api/portfolios", owner, map[string]string{"name": "Private"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	id := int64(dataMap(t, decodeEnvelope(t, rec))["id"].(float64))
	path := "/api/portfolios/" + strconv.FormatInt(id, 10)

	if rec := e.do(t, http.MethodGet, path, other, nil); rec.Code != http.StatusNotFound {
		t.Errorf("get status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if rec := e.do(t, http.MethodDelete, path, other, nil); rec.Code != http.StatusNotFound {
		t.Errorf("delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if rec := e.do(t, http.MethodGet, path, owner, nil); rec.Code != http.StatusOK {
		t.Errorf("owner get status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestCases(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/api/cases", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	list, _ := decodeEnvelope(t, rec).Data.([]any)
	if len(list) == 0 {
		t.Fatal("no cases listed")
	}

	rec = e.do(t, http.MethodGet, "/api/cases/fund-analysis", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	data := dataMap(t, decodeEnvelope(t, rec))
	if html, _ := data["html"].(string); !strings.Contains(html, "<h1") {
		t.Error("case html missing rendered heading")
	}

	rec = e.do(t, http.MethodGet, "/api/cases/no-such-case", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown case status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSubmitExercise(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "judy")

	rec := e.do(t, http.MethodPost, "/api/cases/fund-analysis/submit", token, map[string]any{
		"question_id": "downside",
		"answer":      1,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("submit status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := dataMap(t, decodeEnvelope(t, rec))["correct"]; got != true {
		t.Errorf("correct = %v, want true", got)
	}

	rec = e.do(t, http.MethodPost, "/api/cases/fund-analysis/submit", token, map[string]any{
		"question_id": "downside",
		"answer":      0,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("submit status = %d", rec.Code)
	}
	if got := dataMap(t, decodeEnvelope(t, rec))["correct"]; got != false {
		t.Errorf("correct = %v, want false", got)
	}

	rec = e.do(t, http.MethodPost, "/api/cases/fund-analysis/submit", token, map[string]any{
		"question_id": "downside",
		"answer":      9,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("out of range status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec = e.do(t, http.MethodPost, "/api/cases/no-such-case/submit", token, map[string]any{
		"question_id": "downside",
		"answer":      1,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown case status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = e.do(t, http.MethodGet, "/api/exercises?case=fund-analysis", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if got := len(decodeEnvelope(t, rec).Data.([]any)); got != 2 {
		t.Errorf("submissions = %d, want 2", got)
	}
}

func TestProgressFlow(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "kate")

	rec := e.do(t, http.MethodPost, "/api/progress", token, map[string]any{
		"module": "basics",
		"lesson": "what-is-a-fund",
		"status": "completed",
		"score":  88.0,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = e.do(t, http.MethodPost, "/api/progress", token, map[string]any{
		"module": "basics",
		"lesson": "fund-types",
		"status": "in_progress",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}

	rec = e.do(t, http.MethodGet, "/api/progress", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if got := len(decodeEnvelope(t, rec).Data.([]any)); got != 2 {
		t.Errorf("progress rows = %d, want 2", got)
	}

	rec = e.do(t, http.MethodGet, "/api/progress/basics/stats", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}
	stats := dataMap(t, decodeEnvelope(t, rec))
	if got := stats["completed"]; got != float64(1) {
		t.Errorf("completed = %v, want 1", got)
	}
	if got := stats["total"]; got != float64(2) {
		t.Errorf("total = %v, want 2", got)
	}

	rec = e.do(t, http.MethodPost, "/api/progress", token, map[string]any{
		"module": "basics",
		"lesson": "fund-types",
		"status": "rewound",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestNotes(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "liam")

	rec := e.do(t, http.MethodPost, "/api/notes", token, map[string]string{
		"module":  "basics",
		"lesson":  "what-is-a-fund",
		"content": "NAV is priced once per trading day.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = e.do(t, http.MethodPost, "/api/notes", token, map[string]string{
		"module": "basics",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty content status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec = e.do(t, http.MethodGet, "/api/notes?module=basics", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if got := len(decodeEnvelope(t, rec).Data.([]any)); got != 1 {
		t.Errorf("notes = %d, want 1", got)
	}
}

func TestActivity(t *testing.T) {
	e := newTestEnv(t)
	token := e.register(t, "mona")

	e.do(t, http.MethodPost, "/api/notes", token, map[string]string{
		"module":  "basics",
		"content": "Money market funds hold short paper.",
	})

	rec := e.do(t, http.MethodGet, "/api/activity?days=7", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	activity := dataMap(t, decodeEnvelope(t, rec))
	events, _ := activity["events"].([]any)
	if len(events) < 2 {
		// Login and note save both log events.
		t.Errorf("events = %d, want at least 2", len(events))
	}
	if _, ok := activity["daily"].([]any); !ok {
		t.Error("daily counts missing")
	}

	rec = e.do(t, http.MethodGet, "/api/activity?days=zero", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad days status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
