package models

import "time"

// AssetClass identifies one slice of the portfolio allocation.
type AssetClass string

const (
	AssetThai  AssetClass = "thai"
	AssetUS    AssetClass = "us"
	AssetGold  AssetClass = "gold"
	AssetBonds AssetClass = "bonds"
)

// AssetClasses lists all classes in display order.
var AssetClasses = []AssetClass{AssetThai, AssetUS, AssetGold, AssetBonds}

// Allocation holds percentage weights per asset class. Weights are in
// percent units (0..100), not fractions.
type Allocation struct {
	Thai  float64
	US    float64
	Gold  float64
	Bonds float64
}

// Total returns the sum of all weights.
func (a Allocation) Total() float64 {
	return a.Thai + a.US + a.Gold + a.Bonds
}

// Weight returns the weight for a single class.
func (a Allocation) Weight(class AssetClass) float64 {
	switch class {
	case AssetThai:
		return a.Thai
	case AssetUS:
		return a.US
	case AssetGold:
		return a.Gold
	case AssetBonds:
		return a.Bonds
	}
	return 0
}

// HoldingView is the per-class valuation line. Classes with a zero
// allocation weight are not represented at all.
type HoldingView struct {
	Class             AssetClass
	AllocationPercent float64
	BaseValue         float64
	DailyGain         float64
	CurrentValue      float64
	ChangePercent     float64
}

// PortfolioSnapshot is the full valuation output.
type PortfolioSnapshot struct {
	TotalValue         float64
	PrincipalValue     float64
	CashValue          float64
	DailyChange        float64
	DailyChangePercent float64
	Holdings           []HoldingView
	ComputedAt         time.Time
}
