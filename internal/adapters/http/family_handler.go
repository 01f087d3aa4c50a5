package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/twinbot/core/internal/application/services"
	"github.com/twinbot/core/internal/domain/entities"
	"github.com/twinbot/core/internal/infrastructure/logger"
	"github.com/twinbot/core/internal/ports"
)

// FamilyHandler handles family members, events, errands, and gift ideas
type FamilyHandler struct {
	familyService *services.FamilyService
	logger        *logger.Logger
}

// NewFamilyHandler creates a new family handler
func NewFamilyHandler(familyService *services.FamilyService, logger *logger.Logger) *FamilyHandler {
	return &FamilyHandler{
		familyService: familyService,
		logger:        logger,
	}
}

// ListMembers returns family members with birthday countdowns
func (h *FamilyHandler) ListMembers(c echo.Context) error {
	today, err := dateParam(c)
	if err != nil {
		return err
	}

	members, err := h.familyService.Members(c.Request().Context(), today)
	if err != nil {
		h.logger.Error("List members failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load family members")
	}
	return c.JSON(http.StatusOK, members)
}

// AddMember adds a family member
func (h *FamilyHandler) AddMember(c echo.Context) error {
	var req ports.AddMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	member, err := h.familyService.AddMember(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrDateFormat) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid birthday, expected YYYY-MM-DD")
		}
		h.logger.Error("Add member failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add family member")
	}
	return c.JSON(http.StatusCreated, member)
}

// ListEvents returns family events sorted by date
func (h *FamilyHandler) ListEvents(c echo.Context) error {
	events, err := h.familyService.Events(c.Request().Context())
	if err != nil {
		h.logger.Error("List events failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load family events")
	}
	return c.JSON(http.StatusOK, events)
}

// AddEvent records a family event
func (h *FamilyHandler) AddEvent(c echo.Context) error {
	var req ports.AddEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.familyService.AddEvent(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrDateFormat) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid event date, expected YYYY-MM-DD")
		}
		h.logger.Error("Add event failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add family event")
	}
	return c.JSON(http.StatusCreated, event)
}

// UpcomingEvents returns events from today onward
func (h *FamilyHandler) UpcomingEvents(c echo.Context) error {
	today, err := dateParam(c)
	if err != nil {
		return err
	}

	events, err := h.familyService.UpcomingEvents(c.Request().Context(), today, limitParam(c))
	if err != nil {
		h.logger.Error("Upcoming events failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load family events")
	}
	return c.JSON(http.StatusOK, events)
}

// ListErrands returns all errands
func (h *FamilyHandler) ListErrands(c echo.Context) error {
	errands, err := h.familyService.Errands(c.Request().Context())
	if err != nil {
		h.logger.Error("List errands failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load errands")
	}
	return c.JSON(http.StatusOK, errands)
}

// AddErrand adds an errand
func (h *FamilyHandler) AddErrand(c echo.Context) error {
	var req ports.AddErrandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	errand, err := h.familyService.AddErrand(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Add errand failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add errand")
	}
	return c.JSON(http.StatusCreated, errand)
}

// CompleteErrand marks an errand done by its store index
func (h *FamilyHandler) CompleteErrand(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	errand, err := h.familyService.CompleteErrand(c.Request().Context(), index)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidIndex) {
			return echo.NewHTTPError(http.StatusNotFound, "Errand not found")
		}
		h.logger.Error("Complete errand failed", "error", err, "index", index)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to complete errand")
	}
	return c.JSON(http.StatusOK, errand)
}

// ListGifts returns recorded gift ideas
func (h *FamilyHandler) ListGifts(c echo.Context) error {
	gifts, err := h.familyService.Gifts(c.Request().Context())
	if err != nil {
		h.logger.Error("List gifts failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load gift ideas")
	}
	return c.JSON(http.StatusOK, gifts)
}

// AddGift records a gift idea
func (h *FamilyHandler) AddGift(c echo.Context) error {
	var req ports.AddGiftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	gift, err := h.familyService.AddGift(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Add gift failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to record gift idea")
	}
	return c.JSON(http.StatusCreated, gift)
}

// GiftSuggestions suggests gift ideas per family member by relation
func (h *FamilyHandler) GiftSuggestions(c echo.Context) error {
	suggestions, err := h.familyService.GiftSuggestions(c.Request().Context())
	if err != nil {
		h.logger.Error("Gift suggestions failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build gift suggestions")
	}
	return c.JSON(http.StatusOK, suggestions)
}
