package api

import (
	"errors"
	"net/http"
	"time"

	models "WealthSim/internal/domain/models"
	"WealthSim/internal/domain/repository"
	"WealthSim/internal/service/marketdata"
	"WealthSim/internal/services/montecarlo"
	"WealthSim/internal/services/rebalance"
	"WealthSim/internal/usecase"
	xhttp "WealthSim/pkg/http"
	xlogger "WealthSim/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ProjectionLimits bound what a single projection request may ask for.
type ProjectionLimits struct {
	DefaultPaths    int
	MaxHorizonYears int
}

// PortfolioHandler implements Echo-based HTTP handlers for valuation,
// projection and rebalancing. history may be nil when no archive
// backend is configured.
type PortfolioHandler struct {
	logger     *xlogger.Logger
	valuation  *usecase.ValuationUsecase
	projection *usecase.ProjectionUsecase
	store      *marketdata.SnapshotStore
	history    repository.SignalStore
	limits     ProjectionLimits
}

func NewPortfolioHandler(
	logger *xlogger.Logger,
	valuationUC *usecase.ValuationUsecase,
	projectionUC *usecase.ProjectionUsecase,
	store *marketdata.SnapshotStore,
	history repository.SignalStore,
	limits ProjectionLimits,
) *PortfolioHandler {
	return &PortfolioHandler{
		logger:     logger,
		valuation:  valuationUC,
		projection: projectionUC,
		store:      store,
		history:    history,
		limits:     limits,
	}
}

func (h *PortfolioHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	g := e.Group("/api")
	g.GET("/valuation", h.Valuation)
	g.POST("/projection", h.Projection)
	g.POST("/rebalance", h.Rebalance)
	g.GET("/signals", h.Signals)
	g.GET("/signals/history", h.SignalHistory)
}

func (h *PortfolioHandler) Valuation(c echo.Context) error {
	req := &models.ValuationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	snap, err := h.valuation.Value(c.Request().Context(), *req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBadAllocation):
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
		case errors.Is(err, usecase.ErrNoSignals):
			return xhttp.AppErrorResponse(c, xhttp.UnavailableError(err.Error()))
		}
		h.logger.Error("valuation usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, snap)
}

func (h *PortfolioHandler) Projection(c echo.Context) error {
	req := &models.ProjectionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if h.limits.MaxHorizonYears > 0 && req.HorizonYears > h.limits.MaxHorizonYears {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("horizon_years must be at most %d", h.limits.MaxHorizonYears))
	}
	cfg := req.SimulationConfig()
	if cfg.PathCount == 0 {
		cfg.PathCount = h.limits.DefaultPaths
	}

	res, err := h.projection.Project(c.Request().Context(), cfg)
	if err != nil {
		if errors.Is(err, montecarlo.ErrInvalidConfig) {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
		}
		h.logger.Error("projection usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PortfolioHandler) Rebalance(c echo.Context) error {
	req := &models.RebalanceRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	plan := rebalance.BuildPlan(req.Current.Allocation(), req.Target.Allocation(), req.PortfolioValue, req.DriftThreshold)
	return xhttp.SuccessResponse(c, plan)
}

func (h *PortfolioHandler) Signals(c echo.Context) error {
	snap := h.store.Snapshot()
	if len(snap) == 0 {
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("no market signals available yet"))
	}
	return xhttp.SuccessResponse(c, snap)
}

func (h *PortfolioHandler) SignalHistory(c echo.Context) error {
	if h.history == nil {
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("signal history archive is not configured"))
	}

	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	to := time.Now().UTC()
	if req.To != "" {
		t, err := time.Parse(time.RFC3339, req.To)
		if err != nil {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("to must be an RFC3339 timestamp"))
		}
		to = t
	}
	from := to.Add(-24 * time.Hour)
	if req.From != "" {
		t, err := time.Parse(time.RFC3339, req.From)
		if err != nil {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("from must be an RFC3339 timestamp"))
		}
		from = t
	}

	sigs, err := h.history.Query(c.Request().Context(), req.Symbol, from, to, req.Limit)
	if err != nil {
		h.logger.Error("signal history query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, sigs)
}

func (h *PortfolioHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
