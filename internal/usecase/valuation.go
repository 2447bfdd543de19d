package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"WealthSim/internal/domain/models"
	drepo "WealthSim/internal/domain/repository"
	"WealthSim/internal/service/marketdata"
	"WealthSim/internal/services/valuation"
)

var (
	// ErrBadAllocation is returned when class weights do not sum to 100.
	ErrBadAllocation = errors.New("allocation weights must sum to 100")
	// ErrNoSignals is returned before the first market observation arrives.
	ErrNoSignals = errors.New("no market signals available yet")
)

const allocationTolerance = 0.01

// ValuationUsecase marks portfolios against the latest signal snapshot.
type ValuationUsecase struct {
	store   *marketdata.SnapshotStore
	calc    *valuation.Calculator
	metrics drepo.Metrics
}

// NewValuationUsecase creates a valuation usecase.
func NewValuationUsecase(store *marketdata.SnapshotStore, calc *valuation.Calculator, metrics drepo.Metrics) *ValuationUsecase {
	return &ValuationUsecase{store: store, calc: calc, metrics: metrics}
}

// Value computes the portfolio snapshot for the request.
func (u *ValuationUsecase) Value(_ context.Context, req models.ValuationRequest) (*models.PortfolioSnapshot, error) {
	start := time.Now()

	alloc := req.Allocation()
	if req.Principal > 0 && math.Abs(alloc.Total()-100) > allocationTolerance {
		u.metrics.RecordError("bad_allocation")
		return nil, ErrBadAllocation
	}

	signals := u.store.Snapshot()
	if len(signals) == 0 {
		u.metrics.RecordError("no_signals")
		return nil, ErrNoSignals
	}

	snap := u.calc.Compute(signals, req.Cash, req.Principal, alloc)

	u.metrics.RecordValuation()
	u.metrics.RecordLatency("valuation", time.Since(start).Seconds())
	return &snap, nil
}
