package models

// SimulationConfig holds all inputs of a Monte Carlo projection run.
type SimulationConfig struct {
	InitialInvestment   float64
	MonthlyContribution float64
	HorizonYears        int
	AnnualReturn        float64 // percent, e.g. 7 means 7%/year
	AnnualVolatility    float64 // percent
	PathCount           int
	GoalAmount          float64 // 0 means no goal
	Seed                int64   // 0 means time-derived
}

// SimulationPath is one simulated balance trajectory, sampled yearly.
// Index 0 is the initial investment, index i is the balance after i years.
type SimulationPath []float64

// PercentileBand holds the p10/p50/p90 balances for one year mark.
type PercentileBand struct {
	P10 float64
	P50 float64
	P90 float64
}

// FinalValueSummary describes the distribution of final balances.
type FinalValueSummary struct {
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
}

// ProjectionResult is the aggregate output of a simulation run.
type ProjectionResult struct {
	Years            []int
	Percentiles      []PercentileBand
	SamplePaths      []SimulationPath
	TotalContributed float64
	GoalProbability  float64
	Summary          FinalValueSummary
}
