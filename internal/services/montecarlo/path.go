package montecarlo

import (
	"math"

	"WealthSim/internal/domain/models"
)

// UniformSource yields uniform variates in [0, 1). *math/rand.Rand
// satisfies it; tests substitute deterministic sequences.
type UniformSource interface {
	Float64() float64
}

// normal draws one standard normal variate via the Box-Muller transform.
// u1 is clamped away from zero so the log stays finite.
func normal(src UniformSource) float64 {
	u1 := src.Float64()
	if u1 < 1e-12 {
		u1 = 1e-12
	}
	u2 := src.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// GeneratePath simulates one balance trajectory month by month and
// records the balance at each year mark. The returned path has
// HorizonYears+1 entries; entry 0 is the initial investment.
func GeneratePath(cfg models.SimulationConfig, src UniformSource) models.SimulationPath {
	months := cfg.HorizonYears * 12
	path := make(models.SimulationPath, 0, cfg.HorizonYears+1)
	path = append(path, cfg.InitialInvestment)

	monthlyDrift := cfg.AnnualReturn / 100 / 12
	monthlyVol := cfg.AnnualVolatility / 100 / math.Sqrt(12)

	balance := cfg.InitialInvestment
	for m := 1; m <= months; m++ {
		r := monthlyDrift + monthlyVol*normal(src)
		balance = balance*(1+r) + cfg.MonthlyContribution
		if m%12 == 0 {
			path = append(path, balance)
		}
	}
	return path
}
