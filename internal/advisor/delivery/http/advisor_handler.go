package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"invest-advisor/internal/advisor/config"
	"invest-advisor/internal/advisor/dto"
	"invest-advisor/internal/advisor/forecast"
	"invest-advisor/internal/advisor/repository"
	"invest-advisor/internal/advisor/service"
	"invest-advisor/pkg/logger"
	"invest-advisor/pkg/utils"

	"github.com/labstack/echo/v4"
)

// AdvisorHandler handles HTTP requests for the analysis pipeline.
type AdvisorHandler struct {
	cfg         *config.Config
	log         *logger.Logger
	advisorSvc  service.AdvisorService
	forecastSvc service.ForecastService
	riskSvc     service.RiskService
}

// NewAdvisorHandler creates a new AdvisorHandler.
func NewAdvisorHandler(cfg *config.Config, log *logger.Logger, advisorSvc service.AdvisorService, forecastSvc service.ForecastService, riskSvc service.RiskService) *AdvisorHandler {
	return &AdvisorHandler{cfg: cfg, log: log, advisorSvc: advisorSvc, forecastSvc: forecastSvc, riskSvc: riskSvc}
}

// RegisterRoutes registers the advisor routes to the Echo group.
func (h *AdvisorHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/health", h.Health)
	g.GET("/forecast", h.Forecast)
	g.GET("/risk", h.Risk)
	g.POST("/analyze", h.Analyze)
}

func (h *AdvisorHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *AdvisorHandler) Forecast(c echo.Context) error {
	symbol := strings.ToUpper(c.QueryParam("symbol"))
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "symbol is required"})
	}

	days := h.cfg.Advisor.ForecastDays
	if raw := c.QueryParam("days"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d <= 0 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "days must be a positive integer"})
		}
		days = d
	}

	start, end := utils.DateRange(days)
	result, err := h.forecastSvc.Forecast(c.Request().Context(), symbol, start, end, 0)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AdvisorHandler) Risk(c echo.Context) error {
	symbol := strings.ToUpper(c.QueryParam("symbol"))
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "symbol is required"})
	}

	assessment, err := h.riskSvc.Assess(c.Request().Context(), symbol)
	if assessment == nil {
		return h.errorResponse(c, err)
	}
	// Degenerate statistics are a partial result, not a failure.
	return c.JSON(http.StatusOK, assessment)
}

func (h *AdvisorHandler) Analyze(c echo.Context) error {
	var req dto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request payload"})
	}
	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if req.Symbol == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "symbol is required"})
	}

	result, err := h.advisorSvc.Analyze(c.Request().Context(), req.Symbol, req.UserID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AdvisorHandler) errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNoData):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, forecast.ErrInsufficientData):
		return c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrProviderUnavailable):
		return c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
	default:
		h.log.Error("Unhandled pipeline error", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}
