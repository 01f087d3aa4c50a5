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

// SecretaryHandler handles todos, notes, reminders, contacts, and the daily planner
type SecretaryHandler struct {
	secretaryService *services.SecretaryService
	logger           *logger.Logger
}

// NewSecretaryHandler creates a new secretary handler
func NewSecretaryHandler(secretaryService *services.SecretaryService, logger *logger.Logger) *SecretaryHandler {
	return &SecretaryHandler{
		secretaryService: secretaryService,
		logger:           logger,
	}
}

// ListTodos returns todos, pending first
func (h *SecretaryHandler) ListTodos(c echo.Context) error {
	todos, err := h.secretaryService.Todos(c.Request().Context())
	if err != nil {
		h.logger.Error("List todos failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load todos")
	}
	return c.JSON(http.StatusOK, todos)
}

// AddTodo adds a todo
func (h *SecretaryHandler) AddTodo(c echo.Context) error {
	var req ports.AddTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	todo, err := h.secretaryService.AddTodo(c.Request().Context(), req, time.Now())
	if err != nil {
		if errors.Is(err, entities.ErrDateFormat) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid due date, expected YYYY-MM-DD")
		}
		h.logger.Error("Add todo failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add todo")
	}
	return c.JSON(http.StatusCreated, todo)
}

// CompleteTodo marks a todo done by its store index
func (h *SecretaryHandler) CompleteTodo(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	todo, err := h.secretaryService.CompleteTodo(c.Request().Context(), index, time.Now())
	if err != nil {
		if errors.Is(err, entities.ErrInvalidIndex) {
			return echo.NewHTTPError(http.StatusNotFound, "Todo not found")
		}
		h.logger.Error("Complete todo failed", "error", err, "index", index)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to complete todo")
	}
	return c.JSON(http.StatusOK, todo)
}

// DeleteTodo removes a todo by its store index
func (h *SecretaryHandler) DeleteTodo(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	if err := h.secretaryService.DeleteTodo(c.Request().Context(), index); err != nil {
		if errors.Is(err, entities.ErrInvalidIndex) {
			return echo.NewHTTPError(http.StatusNotFound, "Todo not found")
		}
		h.logger.Error("Delete todo failed", "error", err, "index", index)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete todo")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Todo deleted"})
}

// TodoProgress returns done/total counts
func (h *SecretaryHandler) TodoProgress(c echo.Context) error {
	progress, err := h.secretaryService.Progress(c.Request().Context())
	if err != nil {
		h.logger.Error("Todo progress failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load todos")
	}
	return c.JSON(http.StatusOK, progress)
}

// ListNotes returns all notes
func (h *SecretaryHandler) ListNotes(c echo.Context) error {
	if keyword := c.QueryParam("q"); keyword != "" {
		notes, err := h.secretaryService.SearchNotes(c.Request().Context(), keyword)
		if err != nil {
			h.logger.Error("Search notes failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to search notes")
		}
		return c.JSON(http.StatusOK, notes)
	}

	notes, err := h.secretaryService.Notes(c.Request().Context())
	if err != nil {
		h.logger.Error("List notes failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load notes")
	}
	return c.JSON(http.StatusOK, notes)
}

// AddNote saves a note
func (h *SecretaryHandler) AddNote(c echo.Context) error {
	var req ports.AddNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.secretaryService.AddNote(c.Request().Context(), req, time.Now())
	if err != nil {
		h.logger.Error("Add note failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add note")
	}
	return c.JSON(http.StatusCreated, note)
}

// DeleteNote removes a note by its store index
func (h *SecretaryHandler) DeleteNote(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	if err := h.secretaryService.DeleteNote(c.Request().Context(), index); err != nil {
		if errors.Is(err, entities.ErrInvalidIndex) {
			return echo.NewHTTPError(http.StatusNotFound, "Note not found")
		}
		h.logger.Error("Delete note failed", "error", err, "index", index)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete note")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Note deleted"})
}

// ListReminders returns reminders sorted by date
func (h *SecretaryHandler) ListReminders(c echo.Context) error {
	reminders, err := h.secretaryService.Reminders(c.Request().Context())
	if err != nil {
		h.logger.Error("List reminders failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load reminders")
	}
	return c.JSON(http.StatusOK, reminders)
}

// AddReminder sets a reminder
func (h *SecretaryHandler) AddReminder(c echo.Context) error {
	var req ports.AddReminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reminder, err := h.secretaryService.AddReminder(c.Request().Context(), req, time.Now())
	if err != nil {
		if errors.Is(err, entities.ErrDateFormat) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid reminder date, expected YYYY-MM-DD")
		}
		h.logger.Error("Add reminder failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add reminder")
	}
	return c.JSON(http.StatusCreated, reminder)
}

// TodaysReminders returns reminders whose date matches today
func (h *SecretaryHandler) TodaysReminders(c echo.Context) error {
	today, err := dateParam(c)
	if err != nil {
		return err
	}

	reminders, err := h.secretaryService.TodaysReminders(c.Request().Context(), today)
	if err != nil {
		h.logger.Error("Today's reminders failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load reminders")
	}
	return c.JSON(http.StatusOK, reminders)
}

// DeleteReminder removes a reminder by its store index
func (h *SecretaryHandler) DeleteReminder(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	if err := h.secretaryService.DeleteReminder(c.Request().Context(), index); err != nil {
		if errors.Is(err, entities.ErrInvalidIndex) {
			return echo.NewHTTPError(http.StatusNotFound, "Reminder not found")
		}
		h.logger.Error("Delete reminder failed", "error", err, "index", index)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete reminder")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Reminder deleted"})
}

// ListContacts returns the contact book
func (h *SecretaryHandler) ListContacts(c echo.Context) error {
	contacts, err := h.secretaryService.Contacts(c.Request().Context())
	if err != nil {
		h.logger.Error("List contacts failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load contacts")
	}
	return c.JSON(http.StatusOK, contacts)
}

// AddContact saves a contact
func (h *SecretaryHandler) AddContact(c echo.Context) error {
	var req ports.AddContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	contact, err := h.secretaryService.AddContact(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Add contact failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save contact")
	}
	return c.JSON(http.StatusCreated, contact)
}

// GetPlan returns the plan for a calendar date
func (h *SecretaryHandler) GetPlan(c echo.Context) error {
	day, err := dateParam(c)
	if err != nil {
		return err
	}

	items, err := h.secretaryService.PlanFor(c.Request().Context(), day)
	if err != nil {
		h.logger.Error("Get plan failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load plan")
	}
	return c.JSON(http.StatusOK, items)
}

// AddPlanItem adds an item to a day's plan
func (h *SecretaryHandler) AddPlanItem(c echo.Context) error {
	day, err := dateParam(c)
	if err != nil {
		return err
	}

	var req ports.AddPlanItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.secretaryService.AddPlanItem(c.Request().Context(), day, req)
	if err != nil {
		h.logger.Error("Add plan item failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add plan item")
	}
	return c.JSON(http.StatusCreated, item)
}

// CompletePlanItem marks a plan item done by its index within the day
func (h *SecretaryHandler) CompletePlanItem(c echo.Context) error {
	day, err := dateParam(c)
	if err != nil {
		return err
	}
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	if err := h.secretaryService.CompletePlanItem(c.Request().Context(), day, index); err != nil {
		if errors.Is(err, entities.ErrInvalidIndex) {
			return echo.NewHTTPError(http.StatusNotFound, "Plan item not found")
		}
		h.logger.Error("Complete plan item failed", "error", err, "index", index)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to complete plan item")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Plan item completed"})
}
