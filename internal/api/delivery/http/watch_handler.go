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
)

// WatchHandler handles HTTP requests for the watchlist.
type WatchHandler struct {
	watchService service.WatchService
	logger       *logger.Logger
}

// NewWatchHandler creates a new WatchHandler.
func NewWatchHandler(watchService service.WatchService, logger *logger.Logger) *WatchHandler {
	return &WatchHandler{watchService: watchService, logger: logger}
}

// RegisterRoutes registers the watch routes to the Echo group.
func (h *WatchHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateWatch)
	g.GET("", h.GetWatches)
	g.GET("/:id", h.GetWatchByID)
	g.PUT("/:id", h.UpdateWatch)
	g.POST("/:id/toggle", h.ToggleWatch)
	g.DELETE("/:id", h.DeleteWatch)
}

// CreateWatch adds a new instrument to the watchlist.
func (h *WatchHandler) CreateWatch(c echo.Context) error {
	var req dto.CreateWatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	watch, err := h.watchService.Create(c.Request().Context(), &req)
	if err != nil {
		var validationErr *dto.ValidationError
		if errors.As(err, &validationErr) {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validationErr.Error()})
		}
		h.logger.Error("Failed to create watch", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create watch"})
	}

	return c.JSON(http.StatusCreated, watch)
}

// GetWatches lists the watches belonging to a user.
func (h *WatchHandler) GetWatches(c echo.Context) error {
	userID, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid user_id"})
	}

	watches, err := h.watchService.GetByUser(c.Request().Context(), uint(userID))
	if err != nil {
		h.logger.Error("Failed to list watches", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list watches"})
	}
	return c.JSON(http.StatusOK, watches)
}

// GetWatchByID fetches a single watch.
func (h *WatchHandler) GetWatchByID(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid watch ID"})
	}

	watch, err := h.watchService.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrWatchNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Watch not found"})
		}
		h.logger.Error("Failed to get watch", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get watch"})
	}
	return c.JSON(http.StatusOK, watch)
}

// UpdateWatch edits a watch's reference price and thresholds.
func (h *WatchHandler) UpdateWatch(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid watch ID"})
	}

	var req dto.UpdateWatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	watch, err := h.watchService.Update(c.Request().Context(), id, &req)
	if err != nil {
		var validationErr *dto.ValidationError
		if errors.As(err, &validationErr) {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validationErr.Error()})
		}
		if errors.Is(err, repository.ErrWatchNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Watch not found"})
		}
		h.logger.Error("Failed to update watch", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update watch"})
	}
	return c.JSON(http.StatusOK, watch)
}

// ToggleWatch pauses or resumes evaluation for a watch.
func (h *WatchHandler) ToggleWatch(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid watch ID"})
	}

	watch, err := h.watchService.Toggle(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrWatchNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Watch not found"})
		}
		h.logger.Error("Failed to toggle watch", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to toggle watch"})
	}
	return c.JSON(http.StatusOK, watch)
}

// DeleteWatch removes a watch and its alerts.
func (h *WatchHandler) DeleteWatch(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid watch ID"})
	}

	if err := h.watchService.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrWatchNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Watch not found"})
		}
		h.logger.Error("Failed to delete watch", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete watch"})
	}
	return c.NoContent(http.StatusNoContent)
}

func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
