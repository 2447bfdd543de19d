package valuation

import (
	"time"

	"WealthSim/internal/domain/models"
)

// SymbolMap binds each asset class to the market symbol driving it.
// Fx is the THB-per-USD rate applied on top of the US equity move.
type SymbolMap struct {
	Thai  string
	US    string
	Fx    string
	Gold  string
	Bonds string
}

// DefaultSymbols is the standard signal binding.
var DefaultSymbols = SymbolMap{
	Thai:  "SET",
	US:    "QQQ",
	Fx:    "USDTHB",
	Gold:  "GLD",
	Bonds: "AGG",
}

// Calculator marks portfolio holdings against a signal snapshot.
type Calculator struct {
	symbols SymbolMap
}

// NewCalculator creates a calculator with the given symbol binding.
func NewCalculator(symbols SymbolMap) *Calculator {
	return &Calculator{symbols: symbols}
}

func (c *Calculator) symbolFor(class models.AssetClass) string {
	switch class {
	case models.AssetThai:
		return c.symbols.Thai
	case models.AssetUS:
		return c.symbols.US
	case models.AssetGold:
		return c.symbols.Gold
	case models.AssetBonds:
		return c.symbols.Bonds
	}
	return ""
}

// Compute values the portfolio against the snapshot. A symbol missing
// from the snapshot contributes zero daily change for its class, and
// classes with a zero allocation weight are left out of the holdings.
func (c *Calculator) Compute(snapshot models.SignalSnapshot, cash, principal float64, alloc models.Allocation) models.PortfolioSnapshot {
	fxPct, _ := snapshot.ChangePercent(c.symbols.Fx)

	holdings := make([]models.HoldingView, 0, len(models.AssetClasses))
	var totalGain float64

	for _, class := range models.AssetClasses {
		weight := alloc.Weight(class)
		if weight == 0 {
			continue
		}
		base := principal * weight / 100

		changePct, _ := snapshot.ChangePercent(c.symbolFor(class))
		gain := base * changePct / 100
		if class == models.AssetUS {
			// US holdings are quoted in USD, so the THB move of the
			// position compounds the equity move with the FX move.
			gain = base * (changePct / 100) * (1 + fxPct/100)
		}

		h := models.HoldingView{
			Class:             class,
			AllocationPercent: weight,
			BaseValue:         base,
			DailyGain:         gain,
			CurrentValue:      base + gain,
		}
		if base > 0 {
			h.ChangePercent = gain / base * 100
		}
		holdings = append(holdings, h)
		totalGain += gain
	}

	snap := models.PortfolioSnapshot{
		PrincipalValue: principal + totalGain,
		CashValue:      cash,
		TotalValue:     cash + principal + totalGain,
		DailyChange:    totalGain,
		Holdings:       holdings,
		ComputedAt:     time.Now().UTC(),
	}
	if principal > 0 {
		snap.DailyChangePercent = totalGain / principal * 100
	}
	return snap
}
