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

// StudentHandler handles schedule, assignment, grade, and exam requests
type StudentHandler struct {
	studentService *services.StudentService
	logger         *logger.Logger
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService *services.StudentService, logger *logger.Logger) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		logger:         logger,
	}
}

// ListSchedule returns the weekly schedule
func (h *StudentHandler) ListSchedule(c echo.Context) error {
	schedule, err := h.studentService.WeeklySchedule(c.Request().Context())
	if err != nil {
		h.logger.Error("List schedule failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load schedule")
	}
	return c.JSON(http.StatusOK, schedule)
}

// AddClass adds a class slot
func (h *StudentHandler) AddClass(c echo.Context) error {
	var req ports.AddClassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	slot, err := h.studentService.AddClass(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Add class failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add class")
	}
	return c.JSON(http.StatusCreated, slot)
}

// RemoveClass removes a class by course name
func (h *StudentHandler) RemoveClass(c echo.Context) error {
	course := c.Param("course")

	err := h.studentService.RemoveClass(c.Request().Context(), course)
	if err != nil {
		if errors.Is(err, entities.ErrClassNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Class not found")
		}
		h.logger.Error("Remove class failed", "error", err, "course", course)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to remove class")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Class removed"})
}

// TodaysClasses returns the classes for today's weekday
func (h *StudentHandler) TodaysClasses(c echo.Context) error {
	today, err := dateParam(c)
	if err != nil {
		return err
	}

	classes, err := h.studentService.TodaysClasses(c.Request().Context(), today)
	if err != nil {
		h.logger.Error("Today's classes failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load schedule")
	}
	return c.JSON(http.StatusOK, classes)
}

// ListAssignments returns all assignments
func (h *StudentHandler) ListAssignments(c echo.Context) error {
	assignments, err := h.studentService.Assignments(c.Request().Context())
	if err != nil {
		h.logger.Error("List assignments failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load assignments")
	}
	return c.JSON(http.StatusOK, assignments)
}

// AddAssignment tracks a new assignment
func (h *StudentHandler) AddAssignment(c echo.Context) error {
	var req ports.AddAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	assignment, err := h.studentService.AddAssignment(c.Request().Context(), req, time.Now())
	if err != nil {
		if errors.Is(err, entities.ErrDateFormat) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid due date, expected YYYY-MM-DD")
		}
		h.logger.Error("Add assignment failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add assignment")
	}
	return c.JSON(http.StatusCreated, assignment)
}

// CompleteAssignmentRequest names the assignment to complete
type CompleteAssignmentRequest struct {
	Title string `json:"title" validate:"required"`
}

// CompleteAssignment marks an assignment done by title
func (h *StudentHandler) CompleteAssignment(c echo.Context) error {
	var req CompleteAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	assignment, err := h.studentService.CompleteAssignment(c.Request().Context(), req.Title, time.Now())
	if err != nil {
		if errors.Is(err, entities.ErrAssignmentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Assignment not found or already complete")
		}
		h.logger.Error("Complete assignment failed", "error", err, "title", req.Title)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to complete assignment")
	}
	return c.JSON(http.StatusOK, assignment)
}

// UpcomingDeadlines returns the next pending assignments
func (h *StudentHandler) UpcomingDeadlines(c echo.Context) error {
	deadlines, err := h.studentService.UpcomingDeadlines(c.Request().Context(), limitParam(c))
	if err != nil {
		h.logger.Error("Upcoming deadlines failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load assignments")
	}
	return c.JSON(http.StatusOK, deadlines)
}

// ListGrades returns the grade book
func (h *StudentHandler) ListGrades(c echo.Context) error {
	grades, err := h.studentService.Grades(c.Request().Context())
	if err != nil {
		h.logger.Error("List grades failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load grades")
	}
	return c.JSON(http.StatusOK, grades)
}

// AddGrade records a grade
func (h *StudentHandler) AddGrade(c echo.Context) error {
	var req ports.AddGradeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	grade, err := h.studentService.AddGrade(c.Request().Context(), req, time.Now())
	if err != nil {
		h.logger.Error("Add grade failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to record grade")
	}
	return c.JSON(http.StatusCreated, grade)
}

// GPAResponse carries the computed GPA
type GPAResponse struct {
	GPA float64 `json:"gpa"`
}

// GetGPA returns the cumulative GPA
func (h *StudentHandler) GetGPA(c echo.Context) error {
	gpa, err := h.studentService.GPA(c.Request().Context())
	if err != nil {
		h.logger.Error("GPA computation failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute GPA")
	}
	return c.JSON(http.StatusOK, GPAResponse{GPA: gpa})
}

// ListExams returns all exams by date
func (h *StudentHandler) ListExams(c echo.Context) error {
	exams, err := h.studentService.Exams(c.Request().Context())
	if err != nil {
		h.logger.Error("List exams failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load exams")
	}
	return c.JSON(http.StatusOK, exams)
}

// AddExam schedules an exam
func (h *StudentHandler) AddExam(c echo.Context) error {
	var req ports.AddExamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	exam, err := h.studentService.AddExam(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrDateFormat) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid exam date, expected YYYY-MM-DD")
		}
		h.logger.Error("Add exam failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to schedule exam")
	}
	return c.JSON(http.StatusCreated, exam)
}

// UpcomingExams returns exams from today onward
func (h *StudentHandler) UpcomingExams(c echo.Context) error {
	today, err := dateParam(c)
	if err != nil {
		return err
	}

	exams, err := h.studentService.UpcomingExams(c.Request().Context(), today, limitParam(c))
	if err != nil {
		h.logger.Error("Upcoming exams failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load exams")
	}
	return c.JSON(http.StatusOK, exams)
}
