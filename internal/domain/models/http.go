package models

// Requests for the portfolio HTTP endpoints. Defined in domain for consistency and reuse.

type ValuationRequest struct {
	Cash      float64 `query:"cash" json:"cash" validate:"gte=0"`
	Principal float64 `query:"principal" json:"principal" validate:"gte=0"`
	Thai      float64 `query:"thai" json:"thai" validate:"gte=0,lte=100"`
	US        float64 `query:"us" json:"us" validate:"gte=0,lte=100"`
	Gold      float64 `query:"gold" json:"gold" validate:"gte=0,lte=100"`
	Bonds     float64 `query:"bonds" json:"bonds" validate:"gte=0,lte=100"`
}

// Allocation converts the request weights into a domain allocation.
func (r ValuationRequest) Allocation() Allocation {
	return Allocation{Thai: r.Thai, US: r.US, Gold: r.Gold, Bonds: r.Bonds}
}

type ProjectionRequest struct {
	InitialInvestment   float64 `json:"initial_investment" validate:"gte=0"`
	MonthlyContribution float64 `json:"monthly_contribution" validate:"gte=0"`
	HorizonYears        int     `json:"horizon_years" default:"20" validate:"gte=1"`
	AnnualReturn        float64 `json:"annual_return" validate:"gte=-50,lte=50"`
	AnnualVolatility    float64 `json:"annual_volatility" validate:"gte=0,lte=100"`
	PathCount           int     `json:"path_count" validate:"gte=0,lte=100000"` // 0 means the configured default
	GoalAmount          float64 `json:"goal_amount" validate:"gte=0"`
	Seed                int64   `json:"seed"`
}

// SimulationConfig converts the request into engine inputs.
func (r ProjectionRequest) SimulationConfig() SimulationConfig {
	return SimulationConfig{
		InitialInvestment:   r.InitialInvestment,
		MonthlyContribution: r.MonthlyContribution,
		HorizonYears:        r.HorizonYears,
		AnnualReturn:        r.AnnualReturn,
		AnnualVolatility:    r.AnnualVolatility,
		PathCount:           r.PathCount,
		GoalAmount:          r.GoalAmount,
		Seed:                r.Seed,
	}
}

type WeightsPayload struct {
	Thai  float64 `json:"thai" validate:"gte=0,lte=100"`
	US    float64 `json:"us" validate:"gte=0,lte=100"`
	Gold  float64 `json:"gold" validate:"gte=0,lte=100"`
	Bonds float64 `json:"bonds" validate:"gte=0,lte=100"`
}

// Allocation converts the payload into a domain allocation.
func (w WeightsPayload) Allocation() Allocation {
	return Allocation{Thai: w.Thai, US: w.US, Gold: w.Gold, Bonds: w.Bonds}
}

// HistoryRequest queries the archived signal stream. From and To are
// RFC3339 timestamps; both default to a trailing 24h window.
type HistoryRequest struct {
	Symbol string `query:"symbol" validate:"required"`
	From   string `query:"from"`
	To     string `query:"to"`
	Limit  int    `query:"limit" default:"100" validate:"gte=1,lte=1000"`
}

type RebalanceRequest struct {
	PortfolioValue float64        `json:"portfolio_value" validate:"gt=0"`
	Current        WeightsPayload `json:"current"`
	Target         WeightsPayload `json:"target"`
	DriftThreshold float64        `json:"drift_threshold" default:"5" validate:"gt=0,lte=50"`
}
