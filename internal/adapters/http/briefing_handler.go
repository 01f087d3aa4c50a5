package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/twinbot/core/internal/application/services"
	"github.com/twinbot/core/internal/infrastructure/logger"
)

// BriefingHandler handles the daily briefing and quick stats
type BriefingHandler struct {
	briefingService *services.BriefingService
	logger          *logger.Logger
}

// NewBriefingHandler creates a new briefing handler
func NewBriefingHandler(briefingService *services.BriefingService, logger *logger.Logger) *BriefingHandler {
	return &BriefingHandler{
		briefingService: briefingService,
		logger:          logger,
	}
}

// GetBriefing builds and returns the daily briefing
func (h *BriefingHandler) GetBriefing(c echo.Context) error {
	now, err := dateParam(c)
	if err != nil {
		return err
	}

	briefing, err := h.briefingService.BuildBriefing(c.Request().Context(), now)
	if err != nil {
		h.logger.Error("Build briefing failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build briefing")
	}
	return c.JSON(http.StatusOK, briefing)
}

// GetStats returns the quick-stats snapshot
func (h *BriefingHandler) GetStats(c echo.Context) error {
	stats, err := h.briefingService.Stats(c.Request().Context())
	if err != nil {
		h.logger.Error("Build stats failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build stats")
	}
	return c.JSON(http.StatusOK, stats)
}
