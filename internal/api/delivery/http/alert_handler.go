package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"golang-stock-watchlist/internal/api/dto"
	"golang-stock-watchlist/internal/api/repository"
	"golang-stock-watchlist/internal/api/service"
	"golang-stock-watchlist/pkg/logger"
	"golang-stock-watchlist/pkg/utils"
)

// AlertHandler handles HTTP requests for alerts.
type AlertHandler struct {
	alertService service.AlertService
	logger       *logger.Logger
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alertService service.AlertService, logger *logger.Logger) *AlertHandler {
	return &AlertHandler{alertService: alertService, logger: logger}
}

// RegisterRoutes registers the alert routes to the Echo group.
func (h *AlertHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetAlerts)
	g.POST("/:id/acknowledge", h.AcknowledgeAlert)
}

// GetAlerts lists alerts, newest first, with optional filters.
func (h *AlertHandler) GetAlerts(c echo.Context) error {
	var param dto.GetAlertsParam

	if raw := c.QueryParam("watch_id"); raw != "" {
		watchID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid watch_id"})
		}
		param.WatchID = utils.ToPointer(uint(watchID))
	}
	if raw := c.QueryParam("acknowledged"); raw != "" {
		acknowledged, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid acknowledged"})
		}
		param.Acknowledged = utils.ToPointer(acknowledged)
	}

	alerts, err := h.alertService.GetAlerts(c.Request().Context(), param)
	if err != nil {
		h.logger.Error("Failed to list alerts", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list alerts"})
	}
	return c.JSON(http.StatusOK, alerts)
}

// AcknowledgeAlert marks an alert as seen. Safe to call repeatedly; only an
// unknown id fails.
func (h *AlertHandler) AcknowledgeAlert(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid alert ID"})
	}

	if err := h.alertService.Acknowledge(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Alert not found"})
		}
		h.logger.Error("Failed to acknowledge alert", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to acknowledge alert"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "acknowledged"})
}
