package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"WealthSim/internal/domain/models"
)

// ErrInvalidConfig marks simulation inputs the engine refuses to run.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Engine runs Monte Carlo projections across a worker pool.
type Engine struct {
	workers     int
	samplePaths int
}

// NewEngine creates an engine. workers <= 0 falls back to 1,
// samplePaths caps the number of raw paths included in results.
func NewEngine(workers, samplePaths int) *Engine {
	if workers <= 0 {
		workers = 1
	}
	if samplePaths < 0 {
		samplePaths = 0
	}
	return &Engine{workers: workers, samplePaths: samplePaths}
}

func validate(cfg models.SimulationConfig) error {
	if cfg.HorizonYears < 1 {
		return fmt.Errorf("%w: horizon years must be >= 1, got %d", ErrInvalidConfig, cfg.HorizonYears)
	}
	if cfg.PathCount < 1 {
		return fmt.Errorf("%w: path count must be >= 1, got %d", ErrInvalidConfig, cfg.PathCount)
	}
	if cfg.InitialInvestment < 0 {
		return fmt.Errorf("%w: initial investment must be >= 0", ErrInvalidConfig)
	}
	if cfg.MonthlyContribution < 0 {
		return fmt.Errorf("%w: monthly contribution must be >= 0", ErrInvalidConfig)
	}
	if cfg.AnnualVolatility < 0 {
		return fmt.Errorf("%w: annual volatility must be >= 0", ErrInvalidConfig)
	}
	return nil
}

// pathSeed scrambles the base seed per path index so workers draw
// independent streams regardless of scheduling order.
func pathSeed(base int64, i int) int64 {
	z := uint64(base) + uint64(i+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}

// Run simulates cfg.PathCount trajectories and aggregates them into
// percentile bands, sample paths, goal probability and final-value stats.
func (e *Engine) Run(ctx context.Context, cfg models.SimulationConfig) (*models.ProjectionResult, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	baseSeed := cfg.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	paths := make([]models.SimulationPath, cfg.PathCount)

	idxCh := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idxCh {
				src := rand.New(rand.NewSource(pathSeed(baseSeed, i)))
				paths[i] = GeneratePath(cfg, src)
			}
		}()
	}

feed:
	for i := 0; i < cfg.PathCount; i++ {
		select {
		case idxCh <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(idxCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return e.aggregate(cfg, paths), nil
}

func (e *Engine) aggregate(cfg models.SimulationConfig, paths []models.SimulationPath) *models.ProjectionResult {
	n := len(paths)
	years := make([]int, cfg.HorizonYears+1)
	bands := make([]models.PercentileBand, cfg.HorizonYears+1)

	column := make([]float64, n)
	for y := 0; y <= cfg.HorizonYears; y++ {
		years[y] = y
		for i, p := range paths {
			column[i] = p[y]
		}
		sort.Float64s(column)
		bands[y] = models.PercentileBand{
			P10: column[n*10/100],
			P50: column[n*50/100],
			P90: column[n*90/100],
		}
	}

	finals := make([]float64, n)
	for i, p := range paths {
		finals[i] = p[cfg.HorizonYears]
	}

	sampleCount := e.samplePaths
	if sampleCount > n {
		sampleCount = n
	}
	samples := make([]models.SimulationPath, sampleCount)
	copy(samples, paths[:sampleCount])

	return &models.ProjectionResult{
		Years:            years,
		Percentiles:      bands,
		SamplePaths:      samples,
		TotalContributed: cfg.InitialInvestment + cfg.MonthlyContribution*float64(cfg.HorizonYears)*12,
		GoalProbability:  goalProbability(finals, cfg.GoalAmount),
		Summary:          summarize(finals),
	}
}

// goalProbability is the fraction of final balances at or above the
// goal. With no goal set every outcome counts as a success.
func goalProbability(finals []float64, goal float64) float64 {
	if goal <= 0 {
		return 1.0
	}
	hit := 0
	for _, v := range finals {
		if v >= goal {
			hit++
		}
	}
	return float64(hit) / float64(len(finals))
}

func summarize(finals []float64) models.FinalValueSummary {
	n := len(finals)
	sorted := make([]float64, n)
	copy(sorted, finals)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var sq float64
	for _, v := range sorted {
		d := v - mean
		sq += d * d
	}

	return models.FinalValueSummary{
		Mean:   mean,
		Median: sorted[n*50/100],
		StdDev: math.Sqrt(sq / float64(n)),
		Min:    sorted[0],
		Max:    sorted[n-1],
	}
}
