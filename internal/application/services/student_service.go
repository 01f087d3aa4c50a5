package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/twinbot/core/internal/domain/dates"
	"github.com/twinbot/core/internal/domain/entities"
	"github.com/twinbot/core/internal/infrastructure/logger"
	"github.com/twinbot/core/internal/ports"
)

// UpcomingDeadlineLimit caps the upcoming-deadline view.
const UpcomingDeadlineLimit = 5

// StudentService handles schedule, assignment, grade, and exam operations
type StudentService struct {
	repo   ports.StudentRepository
	logger *logger.Logger
}

// NewStudentService creates a new student service
func NewStudentService(repo ports.StudentRepository, logger *logger.Logger) *StudentService {
	return &StudentService{
		repo:   repo,
		logger: logger,
	}
}

// AddClass adds a class slot to the weekly schedule
func (s *StudentService) AddClass(ctx context.Context, req ports.AddClassRequest) (*entities.ClassSlot, error) {
	schedule, err := s.repo.Schedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	slot := entities.ClassSlot{
		ID:        uuid.New().String(),
		Course:    req.Course,
		Day:       req.Day,
		Time:      req.Time,
		Room:      req.Room,
		Professor: req.Professor,
	}
	schedule = append(schedule, slot)

	if err := s.repo.SaveSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}

	s.logger.Info("Class added", "course", slot.Course, "day", slot.Day, "time", slot.Time)

	return &slot, nil
}

// RemoveClass removes every slot whose course matches the given name,
// case-insensitive.
func (s *StudentService) RemoveClass(ctx context.Context, course string) error {
	schedule, err := s.repo.Schedule(ctx)
	if err != nil {
		return fmt.Errorf("failed to load schedule: %w", err)
	}

	kept := schedule[:0]
	for _, c := range schedule {
		if !strings.EqualFold(c.Course, course) {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(schedule) {
		return entities.ErrClassNotFound
	}

	if err := s.repo.SaveSchedule(ctx, kept); err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}

	s.logger.Info("Class removed", "course", course)

	return nil
}

// WeeklySchedule returns the schedule ordered by weekday then time of day
func (s *StudentService) WeeklySchedule(ctx context.Context) ([]entities.ClassSlot, error) {
	schedule, err := s.repo.Schedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	sortClassSlots(schedule)
	return schedule, nil
}

// TodaysClasses returns the slots scheduled for today's weekday, ordered
// by time of day.
func (s *StudentService) TodaysClasses(ctx context.Context, today time.Time) ([]entities.ClassSlot, error) {
	schedule, err := s.repo.Schedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	weekday := dates.WeekdayName(today)
	todays := make([]entities.ClassSlot, 0)
	for _, c := range schedule {
		if c.Day == weekday {
			todays = append(todays, c)
		}
	}
	sortClassSlots(todays)
	return todays, nil
}

// sortClassSlots orders slots by weekday then parsed clock time;
// unparseable times sort last within their day.
func sortClassSlots(slots []entities.ClassSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		di, dj := entities.WeekdayRank(slots[i].Day), entities.WeekdayRank(slots[j].Day)
		if di != dj {
			return di < dj
		}
		return clockRank(slots[i].Time) < clockRank(slots[j].Time)
	})
}

func clockRank(s string) int {
	if m, ok := dates.ClockMinutes(s); ok {
		return m
	}
	return 24 * 60
}

// AddAssignment tracks a new assignment
func (s *StudentService) AddAssignment(ctx context.Context, req ports.AddAssignmentRequest, now time.Time) (*entities.Assignment, error) {
	if _, err := dates.Parse(req.DueDate); err != nil {
		return nil, err
	}

	assignments, err := s.repo.Assignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	priority := req.Priority
	if !priority.IsValid() {
		priority = entities.PriorityMedium
	}

	assignment := entities.Assignment{
		ID:       uuid.New().String(),
		Course:   req.Course,
		Title:    req.Title,
		DueDate:  req.DueDate,
		Priority: priority,
		Notes:    req.Notes,
		Created:  now,
	}
	assignments = append(assignments, assignment)

	if err := s.repo.SaveAssignments(ctx, assignments); err != nil {
		return nil, fmt.Errorf("failed to save assignments: %w", err)
	}

	s.logger.Info("Assignment added", "title", assignment.Title, "course", assignment.Course, "due_date", assignment.DueDate)

	return &assignment, nil
}

// CompleteAssignment marks the first pending assignment with a matching
// title as done, case-insensitive.
func (s *StudentService) CompleteAssignment(ctx context.Context, title string, now time.Time) (*entities.Assignment, error) {
	assignments, err := s.repo.Assignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	for i := range assignments {
		if strings.EqualFold(assignments[i].Title, title) && assignments[i].IsPending() {
			assignments[i].Complete(now)
			if err := s.repo.SaveAssignments(ctx, assignments); err != nil {
				return nil, fmt.Errorf("failed to save assignments: %w", err)
			}
			s.logger.Info("Assignment completed", "title", assignments[i].Title)
			return &assignments[i], nil
		}
	}

	return nil, entities.ErrAssignmentNotFound
}

// Assignments returns all assignments, pending first, then by due date
func (s *StudentService) Assignments(ctx context.Context) ([]entities.Assignment, error) {
	assignments, err := s.repo.Assignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	sort.SliceStable(assignments, func(i, j int) bool {
		if assignments[i].Done != assignments[j].Done {
			return !assignments[i].Done
		}
		return assignments[i].DueDate < assignments[j].DueDate
	})
	return assignments, nil
}

// UpcomingDeadlines returns the next pending assignments by due date
func (s *StudentService) UpcomingDeadlines(ctx context.Context, limit int) ([]entities.Assignment, error) {
	assignments, err := s.repo.Assignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	if limit <= 0 {
		limit = UpcomingDeadlineLimit
	}

	pending := make([]entities.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.IsPending() {
			pending = append(pending, a)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].DueDate < pending[j].DueDate
	})
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

// AddGrade records a grade for a course
func (s *StudentService) AddGrade(ctx context.Context, req ports.AddGradeRequest, now time.Time) (*entities.GradeEntry, error) {
	grades, err := s.repo.Grades(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load grades: %w", err)
	}

	grade := entities.GradeEntry{
		ID:       uuid.New().String(),
		Course:   req.Course,
		Grade:    strings.ToUpper(strings.TrimSpace(req.Grade)),
		Credits:  req.Credits,
		Recorded: now,
	}
	grades = append(grades, grade)

	if err := s.repo.SaveGrades(ctx, grades); err != nil {
		return nil, fmt.Errorf("failed to save grades: %w", err)
	}

	s.logger.Info("Grade recorded", "course", grade.Course, "grade", grade.Grade, "credits", grade.Credits)

	return &grade, nil
}

// Grades returns all recorded grades
func (s *StudentService) Grades(ctx context.Context) ([]entities.GradeEntry, error) {
	grades, err := s.repo.Grades(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load grades: %w", err)
	}
	return grades, nil
}

// GPA computes the cumulative GPA from the grade book
func (s *StudentService) GPA(ctx context.Context) (float64, error) {
	grades, err := s.repo.Grades(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load grades: %w", err)
	}
	return ComputeGPA(grades), nil
}

// ComputeGPA is the weighted grade-point average: total points times
// credits over total credits. Empty grade lists and zero total credits
// yield 0.0. Unknown letters are worth 0 points but their credits still
// count toward the denominator.
func ComputeGPA(grades []entities.GradeEntry) float64 {
	var totalPoints float64
	var totalCredits int
	for _, g := range grades {
		totalPoints += g.Points() * float64(g.Credits)
		totalCredits += g.Credits
	}
	if totalCredits == 0 {
		return 0.0
	}
	return totalPoints / float64(totalCredits)
}

// AddExam schedules an exam
func (s *StudentService) AddExam(ctx context.Context, req ports.AddExamRequest) (*entities.Exam, error) {
	if _, err := dates.Parse(req.Date); err != nil {
		return nil, err
	}

	exams, err := s.repo.Exams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load exams: %w", err)
	}

	exam := entities.Exam{
		ID:       uuid.New().String(),
		Course:   req.Course,
		Title:    req.Title,
		Date:     req.Date,
		Location: req.Location,
		Notes:    req.Notes,
	}
	exams = append(exams, exam)

	if err := s.repo.SaveExams(ctx, exams); err != nil {
		return nil, fmt.Errorf("failed to save exams: %w", err)
	}

	s.logger.Info("Exam scheduled", "title", exam.Title, "course", exam.Course, "date", exam.Date)

	return &exam, nil
}

// Exams returns all exams ordered by date
func (s *StudentService) Exams(ctx context.Context) ([]entities.Exam, error) {
	exams, err := s.repo.Exams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load exams: %w", err)
	}

	sort.SliceStable(exams, func(i, j int) bool {
		return exams[i].Date < exams[j].Date
	})
	return exams, nil
}

// UpcomingExams returns exams from today onward, soonest first, up to limit
func (s *StudentService) UpcomingExams(ctx context.Context, today time.Time, limit int) ([]entities.Exam, error) {
	exams, err := s.Exams(ctx)
	if err != nil {
		return nil, err
	}

	upcoming := make([]entities.Exam, 0, len(exams))
	for _, e := range exams {
		d, err := dates.DaysUntil(e.Date, today)
		if err != nil {
			s.logger.Warnw("Skipping exam with bad date", "exam_id", e.ID, "date", e.Date)
			continue
		}
		if d >= 0 {
			upcoming = append(upcoming, e)
		}
	}
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming, nil
}
