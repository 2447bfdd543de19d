package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"WealthSim/internal/domain/models"
	"WealthSim/internal/domain/repository"
	"WealthSim/internal/service/marketdata"
	"WealthSim/internal/services/montecarlo"
	"WealthSim/internal/services/valuation"
	"WealthSim/internal/usecase"
	xlogger "WealthSim/pkg/logger"

	"github.com/labstack/echo/v4"
)

type noopMetrics struct{}

func (noopMetrics) RecordValuation()                  {}
func (noopMetrics) RecordProjection(int)              {}
func (noopMetrics) RecordHistorySent(string, string)  {}
func (noopMetrics) RecordError(string)                {}
func (noopMetrics) RecordSignalLevel(string, float64) {}
func (noopMetrics) RecordLatency(string, float64)     {}

func testServer(t *testing.T, withSignals bool) *echo.Echo {
	t.Helper()

	store := marketdata.NewSnapshotStore([]string{"SET", "QQQ", "USDTHB", "GLD", "AGG"})
	if withSignals {
		now := time.Now()
		for sym, pct := range map[string]float64{"SET": 1, "QQQ": 2, "USDTHB": 1, "GLD": 0.5, "AGG": -0.2} {
			store.Put(models.MarketSignal{Symbol: sym, ChangePercent: pct, ObservedAt: now})
		}
	}

	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger init failed: %v", err)
	}

	valUC := usecase.NewValuationUsecase(store, valuation.NewCalculator(valuation.DefaultSymbols), noopMetrics{})
	projUC := usecase.NewProjectionUsecase(montecarlo.NewEngine(2, 5), nil, 0, noopMetrics{})
	h := NewPortfolioHandler(l, valUC, projUC, store, nil, ProjectionLimits{DefaultPaths: 1000, MaxHorizonYears: 50})

	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

// fakeHistory serves canned signals for the archive endpoint.
type fakeHistory struct {
	sigs []*models.MarketSignal
	err  error
}

func (f *fakeHistory) Init(ctx context.Context) error                          { return nil }
func (f *fakeHistory) Store(ctx context.Context, s *models.MarketSignal) error { return nil }
func (f *fakeHistory) StoreBatch(ctx context.Context, s []*models.MarketSignal) error {
	return nil
}
func (f *fakeHistory) Health(ctx context.Context) error { return nil }
func (f *fakeHistory) Close() error                     { return nil }

func (f *fakeHistory) Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.MarketSignal, error) {
	return f.sigs, f.err
}

func historyServer(t *testing.T, history repository.SignalStore, limits ProjectionLimits) *echo.Echo {
	t.Helper()

	store := marketdata.NewSnapshotStore([]string{"QQQ"})
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger init failed: %v", err)
	}

	valUC := usecase.NewValuationUsecase(store, valuation.NewCalculator(valuation.DefaultSymbols), noopMetrics{})
	projUC := usecase.NewProjectionUsecase(montecarlo.NewEngine(2, 50), nil, 0, noopMetrics{})
	h := NewPortfolioHandler(l, valUC, projUC, store, history, limits)

	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

// envelopeStatus extracts the logical status from the response body;
// the server always answers HTTP 200 with the status in the envelope.
func envelopeStatus(t *testing.T, rec *httptest.ResponseRecorder) int {
	t.Helper()
	var env struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v; body = %s", err, rec.Body.String())
	}
	return env.Status
}

func TestValuationEndpoint(t *testing.T) {
	e := testServer(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/valuation?cash=50000&principal=100000&us=100", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "152020") {
		t.Fatalf("expected total 152020 in body: %s", rec.Body.String())
	}
}

func TestValuationEndpointBadAllocation(t *testing.T) {
	e := testServer(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/valuation?principal=100000&thai=50&us=30", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := envelopeStatus(t, rec); got != http.StatusBadRequest {
		t.Fatalf("envelope status = %d, want 400; body = %s", got, rec.Body.String())
	}
}

func TestValuationEndpointNoSignals(t *testing.T) {
	e := testServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/valuation?principal=100000&thai=100", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := envelopeStatus(t, rec); got != http.StatusServiceUnavailable {
		t.Fatalf("envelope status = %d, want 503; body = %s", got, rec.Body.String())
	}
}

func TestValuationEndpointRejectsNegative(t *testing.T) {
	e := testServer(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/valuation?principal=-5", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := envelopeStatus(t, rec); got != http.StatusBadRequest {
		t.Fatalf("envelope status = %d, want 400; body = %s", got, rec.Body.String())
	}
}

func TestProjectionEndpoint(t *testing.T) {
	e := testServer(t, true)

	body := `{"initial_investment":100000,"monthly_contribution":1000,"annual_return":7,"annual_volatility":15,"path_count":100,"seed":42}`
	req := httptest.NewRequest(http.MethodPost, "/api/projection", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	// defaulted horizon of 20 years gives 21 year marks
	if !strings.Contains(rec.Body.String(), "Percentiles") {
		t.Fatalf("expected percentile bands in body: %s", rec.Body.String())
	}
}

func TestProjectionEndpointRejectsBadHorizon(t *testing.T) {
	e := testServer(t, true)

	body := `{"initial_investment":1000,"horizon_years":99,"path_count":10}`
	req := httptest.NewRequest(http.MethodPost, "/api/projection", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := envelopeStatus(t, rec); got != http.StatusBadRequest {
		t.Fatalf("envelope status = %d, want 400; body = %s", got, rec.Body.String())
	}
}

func TestProjectionEndpointDefaultsPathCount(t *testing.T) {
	e := historyServer(t, nil, ProjectionLimits{DefaultPaths: 7, MaxHorizonYears: 50})

	body := `{"initial_investment":1000,"horizon_years":2,"annual_return":7,"annual_volatility":15,"seed":42}`
	req := httptest.NewRequest(http.MethodPost, "/api/projection", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Data struct {
			SamplePaths [][]float64 `json:"SamplePaths"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// configured default of 7 paths, all below the 50-path sample cap
	if len(env.Data.SamplePaths) != 7 {
		t.Fatalf("sample paths = %d, want 7", len(env.Data.SamplePaths))
	}
}

func TestSignalsHistoryEndpoint(t *testing.T) {
	now := time.Now().UTC()
	history := &fakeHistory{sigs: []*models.MarketSignal{
		{Symbol: "QQQ", Price: 450, ChangePercent: 1.2, ObservedAt: now},
		{Symbol: "QQQ", Price: 448, ChangePercent: 0.8, ObservedAt: now.Add(-time.Hour)},
	}}
	e := historyServer(t, history, ProjectionLimits{DefaultPaths: 1000, MaxHorizonYears: 50})

	req := httptest.NewRequest(http.MethodGet, "/api/signals/history?symbol=QQQ&limit=10", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "448") {
		t.Fatalf("expected archived signals in body: %s", rec.Body.String())
	}
}

func TestSignalsHistoryEndpointRejectsMissingSymbol(t *testing.T) {
	e := historyServer(t, &fakeHistory{}, ProjectionLimits{DefaultPaths: 1000, MaxHorizonYears: 50})

	req := httptest.NewRequest(http.MethodGet, "/api/signals/history", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := envelopeStatus(t, rec); got != http.StatusBadRequest {
		t.Fatalf("envelope status = %d, want 400; body = %s", got, rec.Body.String())
	}
}

func TestSignalsHistoryEndpointNotConfigured(t *testing.T) {
	e := historyServer(t, nil, ProjectionLimits{DefaultPaths: 1000, MaxHorizonYears: 50})

	req := httptest.NewRequest(http.MethodGet, "/api/signals/history?symbol=QQQ", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := envelopeStatus(t, rec); got != http.StatusServiceUnavailable {
		t.Fatalf("envelope status = %d, want 503; body = %s", got, rec.Body.String())
	}
}

func TestRebalanceEndpoint(t *testing.T) {
	e := testServer(t, true)

	body := `{"portfolio_value":1000000,"current":{"thai":25,"us":45,"gold":10,"bonds":20},"target":{"thai":25,"us":35,"gold":20,"bonds":20}}`
	req := httptest.NewRequest(http.MethodPost, "/api/rebalance", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "SELL") || !strings.Contains(rec.Body.String(), "BUY") {
		t.Fatalf("expected trade actions in body: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "SharpeRatio") {
		t.Fatalf("expected portfolio stats in body: %s", rec.Body.String())
	}
}

func TestSignalsEndpoint(t *testing.T) {
	e := testServer(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/signals", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "QQQ") {
		t.Fatalf("expected symbols in body: %s", rec.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	e := testServer(t, true)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
