package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"WealthSim/internal/domain/models"
	drepo "WealthSim/internal/domain/repository"
	"WealthSim/internal/services/montecarlo"
	"WealthSim/pkg/cache"
)

// ProjectionUsecase runs Monte Carlo projections with optional result
// caching. Only seeded runs are cached: unseeded runs are intentionally
// different every time.
type ProjectionUsecase struct {
	engine  *montecarlo.Engine
	cache   cache.Service
	ttl     time.Duration
	metrics drepo.Metrics
}

// NewProjectionUsecase creates a projection usecase. cacheSvc may be
// nil to disable caching.
func NewProjectionUsecase(engine *montecarlo.Engine, cacheSvc cache.Service, ttl time.Duration, metrics drepo.Metrics) *ProjectionUsecase {
	return &ProjectionUsecase{engine: engine, cache: cacheSvc, ttl: ttl, metrics: metrics}
}

func projectionKey(cfg models.SimulationConfig) string {
	raw := fmt.Sprintf("%v|%v|%d|%v|%v|%d|%v|%d",
		cfg.InitialInvestment, cfg.MonthlyContribution, cfg.HorizonYears,
		cfg.AnnualReturn, cfg.AnnualVolatility, cfg.PathCount,
		cfg.GoalAmount, cfg.Seed)
	return cache.GenerateKey("projection", cache.HashKey(raw))
}

// Project runs the simulation described by cfg.
func (u *ProjectionUsecase) Project(ctx context.Context, cfg models.SimulationConfig) (*models.ProjectionResult, error) {
	start := time.Now()
	cacheable := u.cache != nil && cfg.Seed != 0
	key := ""

	if cacheable {
		key = projectionKey(cfg)
		var cached models.ProjectionResult
		if err := u.cache.Get(ctx, key, &cached); err == nil {
			u.metrics.RecordLatency("projection_cached", time.Since(start).Seconds())
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			u.metrics.RecordError("cache_get")
		}
	}

	res, err := u.engine.Run(ctx, cfg)
	if err != nil {
		u.metrics.RecordError("projection")
		return nil, err
	}

	if cacheable {
		if err := u.cache.Set(ctx, key, res, u.ttl); err != nil {
			u.metrics.RecordError("cache_set")
		}
	}

	u.metrics.RecordProjection(cfg.PathCount)
	u.metrics.RecordLatency("projection", time.Since(start).Seconds())
	return res, nil
}
