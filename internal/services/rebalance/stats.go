package rebalance

import (
	"math"

	"WealthSim/internal/domain/models"
)

// PortfolioStats summarizes the allocation as annualized figures.
// ExpectedReturn and Volatility are in percent units.
type PortfolioStats struct {
	ExpectedReturn float64
	Volatility     float64
	SharpeRatio    float64
}

// classAssumptions carry the annualized return and volatility used for
// portfolio-level statistics, in percent units per class.
type classAssumptions struct {
	ret float64
	vol float64
}

var assumptions = map[models.AssetClass]classAssumptions{
	models.AssetThai:  {ret: 8, vol: 20},
	models.AssetUS:    {ret: 15, vol: 25},
	models.AssetGold:  {ret: 5, vol: 15},
	models.AssetBonds: {ret: 3, vol: 5},
}

// riskFreeRate is the annual risk-free rate in percent used by the
// Sharpe ratio.
const riskFreeRate = 2.0

// ExpectedReturn is the weight-averaged annual return of the
// allocation: E[R_p] = sum w_i * E[R_i].
func ExpectedReturn(alloc models.Allocation) float64 {
	var ret float64
	for _, class := range models.AssetClasses {
		ret += alloc.Weight(class) / 100 * assumptions[class].ret
	}
	return ret
}

// Volatility is the annualized standard deviation of the allocation.
// The class return streams are modeled as uncorrelated, so the
// portfolio variance reduces to sum (w_i * sigma_i)^2.
func Volatility(alloc models.Allocation) float64 {
	var variance float64
	for _, class := range models.AssetClasses {
		w := alloc.Weight(class) / 100
		sigma := assumptions[class].vol
		variance += w * w * sigma * sigma
	}
	return math.Sqrt(variance)
}

// SharpeRatio is (E[R_p] - Rf) / sigma_p, zero when the allocation
// carries no volatility.
func SharpeRatio(alloc models.Allocation) float64 {
	vol := Volatility(alloc)
	if vol == 0 {
		return 0
	}
	return (ExpectedReturn(alloc) - riskFreeRate) / vol
}

// Stats bundles the three portfolio-level figures for one allocation.
func Stats(alloc models.Allocation) PortfolioStats {
	return PortfolioStats{
		ExpectedReturn: ExpectedReturn(alloc),
		Volatility:     Volatility(alloc),
		SharpeRatio:    SharpeRatio(alloc),
	}
}
