package montecarlo

import (
	"math"
	"math/rand"
	"testing"

	"WealthSim/internal/domain/models"
)

// fixedSource always returns the same uniform value.
type fixedSource struct{ v float64 }

func (s fixedSource) Float64() float64 { return s.v }

func TestGeneratePathLength(t *testing.T) {
	cfg := models.SimulationConfig{
		InitialInvestment: 100000,
		HorizonYears:      10,
		AnnualReturn:      7,
		AnnualVolatility:  15,
	}
	p := GeneratePath(cfg, rand.New(rand.NewSource(1)))
	if len(p) != 11 {
		t.Fatalf("path length = %d, want 11", len(p))
	}
	if p[0] != 100000 {
		t.Fatalf("path[0] = %v, want initial investment", p[0])
	}
}

func TestGeneratePathZeroDriftZeroVol(t *testing.T) {
	cfg := models.SimulationConfig{
		InitialInvestment:   50000,
		MonthlyContribution: 1000,
		HorizonYears:        3,
	}
	p := GeneratePath(cfg, rand.New(rand.NewSource(1)))
	for y := 0; y <= 3; y++ {
		want := 50000 + 1000*float64(y)*12
		if math.Abs(p[y]-want) > 1e-6 {
			t.Fatalf("year %d balance = %v, want %v", y, p[y], want)
		}
	}
}

func TestGeneratePathDeterministicGrowth(t *testing.T) {
	// Zero volatility: each month compounds at exactly annual/12.
	cfg := models.SimulationConfig{
		InitialInvestment: 100000,
		HorizonYears:      1,
		AnnualReturn:      12,
	}
	p := GeneratePath(cfg, rand.New(rand.NewSource(1)))
	want := 100000 * math.Pow(1.01, 12)
	if math.Abs(p[1]-want) > 1e-6 {
		t.Fatalf("year 1 balance = %v, want %v", p[1], want)
	}
}

func TestNormalClampsSmallUniform(t *testing.T) {
	z := normal(fixedSource{v: 0})
	if math.IsInf(z, 0) || math.IsNaN(z) {
		t.Fatalf("normal variate not finite: %v", z)
	}
	// clamped at 1e-12, so |z| is bounded by sqrt(-2 ln 1e-12)
	if math.Abs(z) > math.Sqrt(-2*math.Log(1e-12))+1e-9 {
		t.Fatalf("normal variate out of clamp bound: %v", z)
	}
}
