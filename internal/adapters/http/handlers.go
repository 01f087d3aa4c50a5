package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/twinbot/core/internal/application/services"
	"github.com/twinbot/core/internal/domain/dates"
	"github.com/twinbot/core/internal/infrastructure/logger"
	"github.com/twinbot/core/internal/ports"
)

// MessageResponse is a simple message payload
type MessageResponse struct {
	Message string `json:"message"`
}

// CountResponse is a simple count payload
type CountResponse struct {
	Count int `json:"count"`
}

// dateParam reads an optional ?date=YYYY-MM-DD query; absent means now.
// This is the outermost point where the wall clock enters.
func dateParam(c echo.Context) (time.Time, error) {
	raw := c.QueryParam("date")
	if raw == "" {
		return time.Now(), nil
	}
	t, err := dates.Parse(raw)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
	}
	return t, nil
}

// indexParam reads a zero-based :index path parameter
func indexParam(c echo.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid index")
	}
	return index, nil
}

// limitParam reads an optional ?limit query; absent or invalid means 0
func limitParam(c echo.Context) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// ProfileHandler handles profile requests
type ProfileHandler struct {
	profileService *services.ProfileService
	logger         *logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *services.ProfileService, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// GetProfile returns the owner profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profile, err := h.profileService.Profile(c.Request().Context())
	if err != nil {
		h.logger.Error("Get profile failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load profile")
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile overwrites the owner profile
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req ports.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profileService.UpdateProfile(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Update profile failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save profile")
	}
	return c.JSON(http.StatusOK, profile)
}

// StudyHandler handles study-analyzer requests
type StudyHandler struct {
	studyService *services.StudyService
	logger       *logger.Logger
}

// NewStudyHandler creates a new study handler
func NewStudyHandler(studyService *services.StudyService, logger *logger.Logger) *StudyHandler {
	return &StudyHandler{
		studyService: studyService,
		logger:       logger,
	}
}

// GetOverview returns the dataset overview
func (h *StudyHandler) GetOverview(c echo.Context) error {
	overview, err := h.studyService.Overview(c.Request().Context())
	if err != nil {
		h.logger.Error("Study overview failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to analyze dataset")
	}
	return c.JSON(http.StatusOK, overview)
}

// GetByClass returns the per-class breakdown
func (h *StudyHandler) GetByClass(c echo.Context) error {
	breakdowns, err := h.studyService.ByClass(c.Request().Context())
	if err != nil {
		h.logger.Error("Study class breakdown failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to analyze dataset")
	}
	return c.JSON(http.StatusOK, breakdowns)
}

// Assess classifies a submitted study profile
func (h *StudyHandler) Assess(c echo.Context) error {
	var profile services.StudyProfile
	if err := c.Bind(&profile); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&profile); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	assessment, err := h.studyService.Assess(c.Request().Context(), profile)
	if err != nil {
		h.logger.Error("Study assessment failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to assess profile")
	}
	return c.JSON(http.StatusOK, assessment)
}
