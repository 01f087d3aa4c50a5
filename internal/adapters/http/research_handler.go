package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/twinbot/core/internal/application/services"
	"github.com/twinbot/core/internal/domain/entities"
	"github.com/twinbot/core/internal/infrastructure/logger"
	"github.com/twinbot/core/internal/ports"
)

// ResearchHandler handles weather, quick facts, definitions, news, and bookmarks
type ResearchHandler struct {
	researchService *services.ResearchService
	logger          *logger.Logger
}

// NewResearchHandler creates a new research handler
func NewResearchHandler(researchService *services.ResearchService, logger *logger.Logger) *ResearchHandler {
	return &ResearchHandler{
		researchService: researchService,
		logger:          logger,
	}
}

// GetWeather returns the detailed weather report for a city
func (h *ResearchHandler) GetWeather(c echo.Context) error {
	city := c.QueryParam("city")
	if city == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Query parameter 'city' is required")
	}

	report, err := h.researchService.DetailedWeather(c.Request().Context(), city)
	if err != nil {
		h.logger.Warn("Weather fetch failed", "error", err, "city", city)
		return echo.NewHTTPError(http.StatusBadGateway, "Could not fetch weather")
	}
	return c.JSON(http.StatusOK, report)
}

// FactResponse carries an opaque lookup result
type FactResponse struct {
	Query  string `json:"query"`
	Result string `json:"result"`
}

// Wikipedia returns the Wikipedia summary for a topic
func (h *ResearchHandler) Wikipedia(c echo.Context) error {
	topic := c.QueryParam("q")
	if topic == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Query parameter 'q' is required")
	}

	result := h.researchService.WikipediaSummary(c.Request().Context(), topic, time.Now())
	return c.JSON(http.StatusOK, FactResponse{Query: topic, Result: result})
}

// QuickFact answers a query with an instant-answer summary
func (h *ResearchHandler) QuickFact(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Query parameter 'q' is required")
	}

	result := h.researchService.QuickFact(c.Request().Context(), query, time.Now())
	return c.JSON(http.StatusOK, FactResponse{Query: query, Result: result})
}

// Define returns a dictionary entry for a word
func (h *ResearchHandler) Define(c echo.Context) error {
	word := c.Param("word")

	result := h.researchService.Define(c.Request().Context(), word, time.Now())
	return c.JSON(http.StatusOK, FactResponse{Query: word, Result: result})
}

// ListNewsSources returns the supported news source names
func (h *ResearchHandler) ListNewsSources(c echo.Context) error {
	return c.JSON(http.StatusOK, h.researchService.NewsSources())
}

// GetHeadlines returns headlines from a named source
func (h *ResearchHandler) GetHeadlines(c echo.Context) error {
	source := c.Param("source")

	headlines, err := h.researchService.Headlines(c.Request().Context(), source)
	if err != nil {
		if errors.Is(err, entities.ErrUnknownNewsSource) {
			return echo.NewHTTPError(http.StatusNotFound, "Unknown news source")
		}
		h.logger.Warn("Headlines fetch failed", "error", err, "source", source)
		return echo.NewHTTPError(http.StatusBadGateway, "Could not fetch headlines")
	}
	return c.JSON(http.StatusOK, headlines)
}

// GetHistory returns recent research lookups
func (h *ResearchHandler) GetHistory(c echo.Context) error {
	history, err := h.researchService.History(c.Request().Context(), limitParam(c))
	if err != nil {
		h.logger.Error("Research history failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load research history")
	}
	return c.JSON(http.StatusOK, history)
}

// ListBookmarks returns saved bookmarks
func (h *ResearchHandler) ListBookmarks(c echo.Context) error {
	bookmarks, err := h.researchService.Bookmarks(c.Request().Context())
	if err != nil {
		h.logger.Error("List bookmarks failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load bookmarks")
	}
	return c.JSON(http.StatusOK, bookmarks)
}

// AddBookmark saves a bookmark
func (h *ResearchHandler) AddBookmark(c echo.Context) error {
	var req ports.AddBookmarkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bookmark, err := h.researchService.AddBookmark(c.Request().Context(), req, time.Now())
	if err != nil {
		h.logger.Error("Add bookmark failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save bookmark")
	}
	return c.JSON(http.StatusCreated, bookmark)
}
