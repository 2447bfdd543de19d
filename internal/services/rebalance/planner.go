package rebalance

import (
	"math"
	"sort"

	"WealthSim/internal/domain/models"
)

// DriftStatus classifies how far a class has drifted from target.
type DriftStatus string

const (
	StatusRebalanceNeeded DriftStatus = "rebalance_needed" // |drift| > 5%
	StatusMonitor         DriftStatus = "monitor"          // 2% < |drift| <= 5%
	StatusOnTarget        DriftStatus = "on_target"
)

// Side is the trade direction of a rebalance action.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// DriftLine reports current vs target weight for one class.
// Weights and drift are in percent units.
type DriftLine struct {
	Class   models.AssetClass
	Current float64
	Target  float64
	Drift   float64
	Status  DriftStatus
}

// Action is one recommended trade.
type Action struct {
	Class         models.AssetClass
	Side          Side
	CurrentWeight float64
	TargetWeight  float64
	Drift         float64
	TradeAmount   float64
	TradeUnits    int
}

// Plan is the full rebalance recommendation. Stats describe the
// current allocation.
type Plan struct {
	Drift     []DriftLine
	Actions   []Action
	MaxDrift  float64 // largest absolute drift in percent
	RiskScore int
	Stats     PortfolioStats
}

// defaultPrices are reference unit prices used to size trades when no
// live price is supplied.
var defaultPrices = map[models.AssetClass]float64{
	models.AssetThai:  100,
	models.AssetUS:    450,
	models.AssetGold:  180,
	models.AssetBonds: 100,
}

// riskRatings score each class 1-10, higher is riskier.
var riskRatings = map[models.AssetClass]int{
	models.AssetThai:  7,
	models.AssetUS:    8,
	models.AssetGold:  5,
	models.AssetBonds: 2,
}

func driftStatus(drift float64) DriftStatus {
	abs := math.Abs(drift)
	switch {
	case abs > 5:
		return StatusRebalanceNeeded
	case abs > 2:
		return StatusMonitor
	default:
		return StatusOnTarget
	}
}

// BuildPlan compares current and target allocations and produces drift
// lines for every class plus trade actions for classes whose absolute
// drift exceeds threshold (percent units).
func BuildPlan(current, target models.Allocation, portfolioValue, threshold float64) Plan {
	var plan Plan

	for _, class := range models.AssetClasses {
		cur := current.Weight(class)
		tgt := target.Weight(class)
		drift := cur - tgt

		plan.Drift = append(plan.Drift, DriftLine{
			Class:   class,
			Current: cur,
			Target:  tgt,
			Drift:   drift,
			Status:  driftStatus(drift),
		})
		if math.Abs(drift) > plan.MaxDrift {
			plan.MaxDrift = math.Abs(drift)
		}

		if math.Abs(drift) > threshold {
			amount := math.Abs(drift) / 100 * portfolioValue
			side := SideBuy
			if drift > 0 {
				side = SideSell
			}
			plan.Actions = append(plan.Actions, Action{
				Class:         class,
				Side:          side,
				CurrentWeight: cur,
				TargetWeight:  tgt,
				Drift:         drift,
				TradeAmount:   amount,
				TradeUnits:    int(amount / defaultPrices[class]),
			})
		}
	}

	// Largest over-allocation first, actions by trade size.
	sort.Slice(plan.Drift, func(i, j int) bool {
		return plan.Drift[i].Drift > plan.Drift[j].Drift
	})
	sort.Slice(plan.Actions, func(i, j int) bool {
		return plan.Actions[i].TradeAmount > plan.Actions[j].TradeAmount
	})

	plan.RiskScore = RiskScore(current)
	plan.Stats = Stats(current)
	return plan
}

// RiskScore is the weight-averaged risk of the allocation on a 1-10
// scale. An empty allocation scores the neutral 5.
func RiskScore(alloc models.Allocation) int {
	var totalRisk, totalWeight float64
	for _, class := range models.AssetClasses {
		w := alloc.Weight(class)
		totalRisk += w * float64(riskRatings[class])
		totalWeight += w
	}
	if totalWeight == 0 {
		return 5
	}
	return int(math.Round(totalRisk / totalWeight))
}
