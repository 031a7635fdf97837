package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-stock-watchlist/internal/api/dto"
	"golang-stock-watchlist/internal/api/service"
	"golang-stock-watchlist/pkg/logger"
)

// SearchHandler handles symbol autocomplete requests.
type SearchHandler struct {
	symbolService service.SymbolService
	logger        *logger.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(symbolService service.SymbolService, logger *logger.Logger) *SearchHandler {
	return &SearchHandler{symbolService: symbolService, logger: logger}
}

// RegisterRoutes registers the search routes to the Echo group.
func (h *SearchHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/search", h.SearchSymbols)
}

// SearchSymbols resolves a free-text query to instrument symbols.
func (h *SearchHandler) SearchSymbols(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusOK, []dto.SymbolSearchResult{})
	}

	results, err := h.symbolService.Search(c.Request().Context(), query)
	if err != nil {
		h.logger.Error("Symbol search failed", logger.ErrorField(err), logger.StringField("query", query))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Symbol search failed"})
	}
	if results == nil {
		results = []dto.SymbolSearchResult{}
	}
	return c.JSON(http.StatusOK, results)
}
