package valuation

import (
	"math"
	"testing"
	"time"

	"WealthSim/internal/domain/models"
)

func snapshotWith(changes map[string]float64) models.SignalSnapshot {
	now := time.Now()
	var s models.SignalSnapshot
	for sym, pct := range changes {
		s = append(s, models.MarketSignal{Symbol: sym, ChangePercent: pct, ObservedAt: now})
	}
	return s
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeBasesSumToPrincipal(t *testing.T) {
	calc := NewCalculator(DefaultSymbols)
	alloc := models.Allocation{Thai: 40, US: 30, Gold: 20, Bonds: 10}
	snap := calc.Compute(nil, 0, 250000, alloc)

	if len(snap.Holdings) != 4 {
		t.Fatalf("expected 4 holdings, got %d", len(snap.Holdings))
	}
	var sum float64
	for _, h := range snap.Holdings {
		sum += h.BaseValue
	}
	if !almostEqual(sum, 250000) {
		t.Fatalf("base values sum to %v, want 250000", sum)
	}
}

func TestComputeOmitsZeroAllocationClasses(t *testing.T) {
	calc := NewCalculator(DefaultSymbols)
	signals := snapshotWith(map[string]float64{"QQQ": 2, "USDTHB": 1})

	cases := []struct {
		alloc models.Allocation
		want  int
	}{
		{models.Allocation{US: 100}, 1},
		{models.Allocation{Thai: 50, Bonds: 50}, 2},
		{models.Allocation{Thai: 40, US: 30, Gold: 20, Bonds: 10}, 4},
		{models.Allocation{}, 0},
	}
	for _, tc := range cases {
		snap := calc.Compute(signals, 0, 100000, tc.alloc)
		if len(snap.Holdings) != tc.want {
			t.Fatalf("alloc %+v: got %d holdings, want %d", tc.alloc, len(snap.Holdings), tc.want)
		}
		for _, h := range snap.Holdings {
			if h.AllocationPercent != tc.alloc.Weight(h.Class) {
				t.Fatalf("%s allocation percent = %v, want %v", h.Class, h.AllocationPercent, tc.alloc.Weight(h.Class))
			}
		}
	}
}

func TestComputeZeroPrincipal(t *testing.T) {
	calc := NewCalculator(DefaultSymbols)
	signals := snapshotWith(map[string]float64{"SET": 1.5, "QQQ": -2, "USDTHB": 0.3})
	snap := calc.Compute(signals, 50000, 0, models.Allocation{Thai: 50, US: 50})

	if snap.DailyChange != 0 {
		t.Fatalf("expected zero daily change, got %v", snap.DailyChange)
	}
	if snap.DailyChangePercent != 0 {
		t.Fatalf("expected zero change percent, got %v", snap.DailyChangePercent)
	}
	if !almostEqual(snap.TotalValue, 50000) {
		t.Fatalf("total value = %v, want 50000", snap.TotalValue)
	}
}

func TestComputeUSCurrencyCompounding(t *testing.T) {
	calc := NewCalculator(DefaultSymbols)
	signals := snapshotWith(map[string]float64{"QQQ": 2, "USDTHB": 1})
	snap := calc.Compute(signals, 0, 100000, models.Allocation{US: 100})

	// 100000 * 2% * (1 + 1%) = 2020
	if !almostEqual(snap.DailyChange, 2020) {
		t.Fatalf("daily change = %v, want 2020", snap.DailyChange)
	}
	if !almostEqual(snap.DailyChangePercent, 2.02) {
		t.Fatalf("change percent = %v, want 2.02", snap.DailyChangePercent)
	}
}

func TestComputeMissingSignalIsFlat(t *testing.T) {
	calc := NewCalculator(DefaultSymbols)
	signals := snapshotWith(map[string]float64{"SET": 3})
	snap := calc.Compute(signals, 0, 100000, models.Allocation{Thai: 50, Gold: 50})

	// GLD is absent, only the Thai slice moves: 50000 * 3% = 1500.
	if !almostEqual(snap.DailyChange, 1500) {
		t.Fatalf("daily change = %v, want 1500", snap.DailyChange)
	}
	for _, h := range snap.Holdings {
		if h.Class == models.AssetGold && h.DailyGain != 0 {
			t.Fatalf("gold gain = %v, want 0", h.DailyGain)
		}
	}
}

func TestComputeHoldingCurrentValues(t *testing.T) {
	calc := NewCalculator(DefaultSymbols)
	signals := snapshotWith(map[string]float64{"SET": -1, "AGG": 0.5})
	snap := calc.Compute(signals, 10000, 200000, models.Allocation{Thai: 25, Bonds: 75})

	for _, h := range snap.Holdings {
		if !almostEqual(h.CurrentValue, h.BaseValue+h.DailyGain) {
			t.Fatalf("%s current value %v != base %v + gain %v", h.Class, h.CurrentValue, h.BaseValue, h.DailyGain)
		}
	}
	if !almostEqual(snap.PrincipalValue, 200000+snap.DailyChange) {
		t.Fatalf("principal value = %v, want %v", snap.PrincipalValue, 200000+snap.DailyChange)
	}
}
