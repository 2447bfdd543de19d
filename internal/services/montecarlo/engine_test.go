package montecarlo

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"WealthSim/internal/domain/models"
)

func TestRunRejectsInvalidConfig(t *testing.T) {
	e := NewEngine(4, 10)
	cases := []models.SimulationConfig{
		{HorizonYears: 0, PathCount: 100},
		{HorizonYears: 10, PathCount: 0},
		{HorizonYears: 10, PathCount: 100, InitialInvestment: -1},
		{HorizonYears: 10, PathCount: 100, MonthlyContribution: -5},
		{HorizonYears: 10, PathCount: 100, AnnualVolatility: -1},
	}
	for i, cfg := range cases {
		if _, err := e.Run(context.Background(), cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("case %d: expected ErrInvalidConfig, got %v", i, err)
		}
	}
}

func TestRunPercentileOrdering(t *testing.T) {
	e := NewEngine(4, 10)
	cfg := models.SimulationConfig{
		InitialInvestment:   500000,
		MonthlyContribution: 5000,
		HorizonYears:        15,
		AnnualReturn:        7,
		AnnualVolatility:    15,
		PathCount:           500,
		Seed:                42,
	}
	res, err := e.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(res.Percentiles) != 16 || len(res.Years) != 16 {
		t.Fatalf("expected 16 year marks, got %d bands / %d years", len(res.Percentiles), len(res.Years))
	}
	for y, b := range res.Percentiles {
		if b.P10 > b.P50 || b.P50 > b.P90 {
			t.Fatalf("year %d: percentiles unordered: %+v", y, b)
		}
	}
	if res.Years[0] != 0 || res.Years[15] != 15 {
		t.Fatalf("year axis wrong: %v", res.Years)
	}
}

func TestRunDeterministicWithSeed(t *testing.T) {
	e := NewEngine(8, 5)
	cfg := models.SimulationConfig{
		InitialInvestment: 100000,
		HorizonYears:      5,
		AnnualReturn:      6,
		AnnualVolatility:  12,
		PathCount:         200,
		Seed:              7,
	}
	a, err := e.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	b, err := e.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if !reflect.DeepEqual(a.Percentiles, b.Percentiles) {
		t.Fatalf("seeded runs diverged")
	}
	if !reflect.DeepEqual(a.Summary, b.Summary) {
		t.Fatalf("seeded summaries diverged")
	}
}

func TestRunTotalContributed(t *testing.T) {
	e := NewEngine(2, 0)
	cfg := models.SimulationConfig{
		InitialInvestment:   1000000,
		MonthlyContribution: 10000,
		HorizonYears:        20,
		AnnualReturn:        5,
		AnnualVolatility:    10,
		PathCount:           50,
		Seed:                1,
	}
	res, err := e.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.TotalContributed != 3400000 {
		t.Fatalf("total contributed = %v, want 3400000", res.TotalContributed)
	}
}

func TestRunZeroVolatilityCollapsesBands(t *testing.T) {
	e := NewEngine(4, 3)
	cfg := models.SimulationConfig{
		InitialInvestment:   200000,
		MonthlyContribution: 2000,
		HorizonYears:        10,
		AnnualReturn:        6,
		PathCount:           100,
		Seed:                99,
	}
	res, err := e.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for y, b := range res.Percentiles {
		if math.Abs(b.P90-b.P10) > 1e-6 {
			t.Fatalf("year %d: bands spread with zero volatility: %+v", y, b)
		}
	}
	if math.Abs(res.Summary.Max-res.Summary.Min) > 1e-6 {
		t.Fatalf("final values spread with zero volatility: %+v", res.Summary)
	}
	if res.Summary.StdDev > 1e-6 {
		t.Fatalf("stddev = %v, want ~0", res.Summary.StdDev)
	}
}

func TestRunVolatilityWidensBands(t *testing.T) {
	e := NewEngine(4, 0)
	narrow := models.SimulationConfig{
		InitialInvestment: 100000,
		HorizonYears:      20,
		AnnualReturn:      7,
		AnnualVolatility:  5,
		PathCount:         1000,
		Seed:              11,
	}
	wide := narrow
	wide.AnnualVolatility = 25

	rn, err := e.Run(context.Background(), narrow)
	if err != nil {
		t.Fatalf("narrow run failed: %v", err)
	}
	rw, err := e.Run(context.Background(), wide)
	if err != nil {
		t.Fatalf("wide run failed: %v", err)
	}

	last := len(rn.Percentiles) - 1
	narrowSpread := rn.Percentiles[last].P90 - rn.Percentiles[last].P10
	wideSpread := rw.Percentiles[last].P90 - rw.Percentiles[last].P10
	if wideSpread <= narrowSpread {
		t.Fatalf("higher volatility did not widen bands: %v <= %v", wideSpread, narrowSpread)
	}
}

func TestRunGoalProbability(t *testing.T) {
	e := NewEngine(4, 0)
	cfg := models.SimulationConfig{
		InitialInvestment:   100000,
		MonthlyContribution: 1000,
		HorizonYears:        10,
		AnnualReturn:        6,
		PathCount:           100,
		Seed:                3,
	}

	// No goal set: every outcome counts.
	res, err := e.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.GoalProbability != 1.0 {
		t.Fatalf("goal probability without goal = %v, want 1.0", res.GoalProbability)
	}

	// Deterministic growth: an unreachable goal yields 0, a trivial one 1.
	cfg.GoalAmount = 1e12
	res, err = e.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.GoalProbability != 0 {
		t.Fatalf("goal probability for unreachable goal = %v, want 0", res.GoalProbability)
	}

	cfg.GoalAmount = 1
	res, err = e.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.GoalProbability != 1.0 {
		t.Fatalf("goal probability for trivial goal = %v, want 1.0", res.GoalProbability)
	}
}

func TestRunSamplePathCap(t *testing.T) {
	e := NewEngine(2, 50)
	cfg := models.SimulationConfig{
		InitialInvestment: 10000,
		HorizonYears:      2,
		AnnualReturn:      5,
		AnnualVolatility:  10,
		PathCount:         20,
		Seed:              5,
	}
	res, err := e.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(res.SamplePaths) != 20 {
		t.Fatalf("sample paths = %d, want 20 (capped at path count)", len(res.SamplePaths))
	}
	for i, p := range res.SamplePaths {
		if len(p) != 3 {
			t.Fatalf("sample %d has %d entries, want 3", i, len(p))
		}
	}
}

func TestRunCancelled(t *testing.T) {
	e := NewEngine(2, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := models.SimulationConfig{
		InitialInvestment: 10000,
		HorizonYears:      30,
		AnnualReturn:      5,
		AnnualVolatility:  10,
		PathCount:         10000,
		Seed:              1,
	}
	if _, err := e.Run(ctx, cfg); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
