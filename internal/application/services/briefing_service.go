package services

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/twinbot/core/internal/domain/dates"
	"github.com/twinbot/core/internal/domain/entities"
	"github.com/twinbot/core/internal/infrastructure/logger"
	"github.com/twinbot/core/internal/ports"
)

// Briefing section caps and windows.
const (
	// FallbackAssignments is how many soonest pending assignments show
	// when nothing is urgent.
	FallbackAssignments = 3
	// ExamLimit caps the upcoming-exam section.
	ExamLimit = 3
	// HighPriorityLimit caps the high-priority to-do section.
	HighPriorityLimit = 3
	// FamilyEventWindowDays is the look-ahead for family events.
	FamilyEventWindowDays = 14
)

// quotePool feeds the closing line of every briefing.
var quotePool = []string{
	"The secret of getting ahead is getting started. — Mark Twain",
	"It always seems impossible until it's done. — Nelson Mandela",
	"Don't watch the clock; do what it does. Keep going. — Sam Levenson",
	"Success is not final, failure is not fatal: it is the courage to continue that counts. — Winston Churchill",
	"Education is the most powerful weapon which you can use to change the world. — Nelson Mandela",
	"The beautiful thing about learning is that nobody can take it away from you. — B.B. King",
	"You don't have to be great to start, but you have to start to be great. — Zig Ziglar",
	"Believe you can and you're halfway there. — Theodore Roosevelt",
	"The only way to do great work is to love what you do. — Steve Jobs",
	"Your limitation—it's only your imagination.",
	"Push yourself, because no one else is going to do it for you.",
	"Great things never come from comfort zones.",
	"Dream it. Wish it. Do it.",
	"Stay focused and extra sparkly.",
	"The harder you work for something, the greater you'll feel when you achieve it.",
	"Don't stop when you're tired. Stop when you're done.",
	"Wake up with determination. Go to bed with satisfaction.",
	"Do something today that your future self will thank you for.",
	"Little things make big days.",
	"It's going to be hard, but hard does not mean impossible.",
}

// AssignmentLine is an assignment with its rendered deadline text.
type AssignmentLine struct {
	entities.Assignment
	Deadline string `json:"deadline"`
}

// ExamLine is an exam with its deadline text and urgency bucket.
type ExamLine struct {
	entities.Exam
	Deadline string           `json:"deadline"`
	Urgency  entities.Urgency `json:"urgency"`
}

// EventLine is a family event with its rendered deadline text.
type EventLine struct {
	entities.FamilyEvent
	Deadline string `json:"deadline"`
}

// Briefing is the assembled daily summary. Every section is either
// populated or carries its empty-state flag; a malformed record never
// prevents the other sections from rendering.
type Briefing struct {
	Greeting            string               `json:"greeting"`
	Date                string               `json:"date"`
	Weather             string               `json:"weather,omitempty"`
	Classes             []entities.ClassSlot `json:"classes"`
	FreeDay             bool                 `json:"free_day"`
	UrgentDeadlines     []AssignmentLine     `json:"urgent_deadlines"`
	UpcomingAssignments []AssignmentLine     `json:"upcoming_assignments"`
	CaughtUp            bool                 `json:"caught_up"`
	Exams               []ExamLine           `json:"exams"`
	Reminders           []entities.Reminder  `json:"reminders"`
	HighPriorityTodos   []entities.Todo      `json:"high_priority_todos"`
	PendingTodoCount    int                  `json:"pending_todo_count"`
	FamilyEvents        []EventLine          `json:"family_events"`
	PendingErrands      int                  `json:"pending_errands"`
	Quote               string               `json:"quote"`
}

// QuickStats is a per-store count summary plus the GPA.
type QuickStats struct {
	Classes            int     `json:"classes"`
	PendingAssignments int     `json:"pending_assignments"`
	DoneAssignments    int     `json:"done_assignments"`
	PendingTodos       int     `json:"pending_todos"`
	DoneTodos          int     `json:"done_todos"`
	Exams              int     `json:"exams"`
	Notes              int     `json:"notes"`
	PendingErrands     int     `json:"pending_errands"`
	GPA                float64 `json:"gpa"`
}

// BriefingService assembles the daily briefing from fresh store
// snapshots. Nothing is cached between builds.
type BriefingService struct {
	studentRepo   ports.StudentRepository
	secretaryRepo ports.SecretaryRepository
	familyRepo    ports.FamilyRepository
	profileRepo   ports.ProfileRepository
	weather       ports.WeatherFetcher
	logger        *logger.Logger
}

// NewBriefingService creates a new briefing service. The weather
// fetcher may be nil; the weather line is then omitted.
func NewBriefingService(
	studentRepo ports.StudentRepository,
	secretaryRepo ports.SecretaryRepository,
	familyRepo ports.FamilyRepository,
	profileRepo ports.ProfileRepository,
	weather ports.WeatherFetcher,
	logger *logger.Logger,
) *BriefingService {
	return &BriefingService{
		studentRepo:   studentRepo,
		secretaryRepo: secretaryRepo,
		familyRepo:    familyRepo,
		profileRepo:   profileRepo,
		weather:       weather,
		logger:        logger,
	}
}

// BuildBriefing assembles every section against the given moment. All
// date math uses now's calendar day; section order and caps are fixed.
func (s *BriefingService) BuildBriefing(ctx context.Context, now time.Time) (*Briefing, error) {
	profile, err := s.profileRepo.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	briefing := &Briefing{
		Greeting: greetingFor(now, profile.DisplayName()),
		Date:     now.Format("Monday, January 2, 2006"),
		Quote:    quotePool[rand.Intn(len(quotePool))],
	}

	if s.weather != nil && profile.City != "" {
		briefing.Weather = s.weather.Weather(ctx, profile.City)
	}

	s.buildClassSection(ctx, briefing, now)
	s.buildAssignmentSection(ctx, briefing, now)
	s.buildExamSection(ctx, briefing, now)
	s.buildReminderSection(ctx, briefing, now)
	s.buildTodoSection(ctx, briefing)
	s.buildFamilySection(ctx, briefing, now)

	return briefing, nil
}

func greetingFor(now time.Time, name string) string {
	switch hour := now.Hour(); {
	case hour < 12:
		return fmt.Sprintf("Good morning, %s!", name)
	case hour < 17:
		return fmt.Sprintf("Good afternoon, %s!", name)
	case hour < 21:
		return fmt.Sprintf("Good evening, %s!", name)
	default:
		return fmt.Sprintf("Hey %s, burning the midnight oil?", name)
	}
}

func (s *BriefingService) buildClassSection(ctx context.Context, b *Briefing, now time.Time) {
	schedule, err := s.studentRepo.Schedule(ctx)
	if err != nil {
		s.logger.Warnw("Briefing: schedule unavailable", "error", err)
		b.Classes = []entities.ClassSlot{}
		b.FreeDay = true
		return
	}

	weekday := dates.WeekdayName(now)
	todays := make([]entities.ClassSlot, 0)
	for _, c := range schedule {
		if c.Day == weekday {
			todays = append(todays, c)
		}
	}
	sort.SliceStable(todays, func(i, j int) bool {
		return clockRank(todays[i].Time) < clockRank(todays[j].Time)
	})

	b.Classes = todays
	b.FreeDay = len(todays) == 0
}

func (s *BriefingService) buildAssignmentSection(ctx context.Context, b *Briefing, now time.Time) {
	b.UrgentDeadlines = []AssignmentLine{}
	b.UpcomingAssignments = []AssignmentLine{}

	assignments, err := s.studentRepo.Assignments(ctx)
	if err != nil {
		s.logger.Warnw("Briefing: assignments unavailable", "error", err)
		b.CaughtUp = true
		return
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

	for _, a := range pending {
		delta, err := dates.DaysUntil(a.DueDate, now)
		if err != nil {
			s.logger.Warnw("Briefing: skipping assignment with bad date", "assignment_id", a.ID, "due_date", a.DueDate)
			continue
		}
		if delta <= dates.CriticalWindowDays {
			deadline, _ := dates.FriendlyDeadline(a.DueDate, now)
			b.UrgentDeadlines = append(b.UrgentDeadlines, AssignmentLine{Assignment: a, Deadline: deadline})
		}
	}

	if len(b.UrgentDeadlines) > 0 {
		return
	}

	for _, a := range pending {
		if len(b.UpcomingAssignments) == FallbackAssignments {
			break
		}
		deadline, err := dates.FriendlyDeadline(a.DueDate, now)
		if err != nil {
			s.logger.Warnw("Briefing: skipping assignment with bad date", "assignment_id", a.ID, "due_date", a.DueDate)
			continue
		}
		b.UpcomingAssignments = append(b.UpcomingAssignments, AssignmentLine{Assignment: a, Deadline: deadline})
	}
	b.CaughtUp = len(b.UpcomingAssignments) == 0
}

func (s *BriefingService) buildExamSection(ctx context.Context, b *Briefing, now time.Time) {
	b.Exams = []ExamLine{}

	exams, err := s.studentRepo.Exams(ctx)
	if err != nil {
		s.logger.Warnw("Briefing: exams unavailable", "error", err)
		return
	}

	sort.SliceStable(exams, func(i, j int) bool {
		return exams[i].Date < exams[j].Date
	})

	for _, e := range exams {
		if len(b.Exams) == ExamLimit {
			break
		}
		delta, err := dates.DaysUntil(e.Date, now)
		if err != nil {
			s.logger.Warnw("Briefing: skipping exam with bad date", "exam_id", e.ID, "date", e.Date)
			continue
		}
		if delta < 0 {
			continue
		}
		deadline, _ := dates.FriendlyDeadline(e.Date, now)
		b.Exams = append(b.Exams, ExamLine{
			Exam:     e,
			Deadline: deadline,
			Urgency:  dates.BucketFor(delta),
		})
	}
}

func (s *BriefingService) buildReminderSection(ctx context.Context, b *Briefing, now time.Time) {
	b.Reminders = []entities.Reminder{}

	reminders, err := s.secretaryRepo.Reminders(ctx)
	if err != nil {
		s.logger.Warnw("Briefing: reminders unavailable", "error", err)
		return
	}

	// Literal date match only; repeat labels are never expanded.
	today := dates.FormatDate(now)
	for _, r := range reminders {
		if r.Date == today {
			b.Reminders = append(b.Reminders, r)
		}
	}
}

func (s *BriefingService) buildTodoSection(ctx context.Context, b *Briefing) {
	b.HighPriorityTodos = []entities.Todo{}

	todos, err := s.secretaryRepo.Todos(ctx)
	if err != nil {
		s.logger.Warnw("Briefing: todos unavailable", "error", err)
		return
	}

	for _, t := range todos {
		if !t.IsPending() {
			continue
		}
		b.PendingTodoCount++
		if t.Priority == entities.PriorityHigh && len(b.HighPriorityTodos) < HighPriorityLimit {
			b.HighPriorityTodos = append(b.HighPriorityTodos, t)
		}
	}
}

func (s *BriefingService) buildFamilySection(ctx context.Context, b *Briefing, now time.Time) {
	b.FamilyEvents = []EventLine{}

	events, err := s.familyRepo.Events(ctx)
	if err != nil {
		s.logger.Warnw("Briefing: family events unavailable", "error", err)
	} else {
		// Store order is preserved here on purpose.
		for _, e := range events {
			delta, err := dates.DaysUntil(e.Date, now)
			if err != nil {
				s.logger.Warnw("Briefing: skipping event with bad date", "event_id", e.ID, "date", e.Date)
				continue
			}
			if delta < 0 || delta > FamilyEventWindowDays {
				continue
			}
			deadline, _ := dates.FriendlyDeadline(e.Date, now)
			b.FamilyEvents = append(b.FamilyEvents, EventLine{FamilyEvent: e, Deadline: deadline})
		}
	}

	errands, err := s.familyRepo.Errands(ctx)
	if err != nil {
		s.logger.Warnw("Briefing: errands unavailable", "error", err)
		return
	}
	for _, e := range errands {
		if e.IsPending() {
			b.PendingErrands++
		}
	}
}

// Stats builds the quick-stats summary from fresh snapshots
func (s *BriefingService) Stats(ctx context.Context) (*QuickStats, error) {
	stats := &QuickStats{}

	schedule, err := s.studentRepo.Schedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	stats.Classes = len(schedule)

	assignments, err := s.studentRepo.Assignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}
	for _, a := range assignments {
		if a.Done {
			stats.DoneAssignments++
		} else {
			stats.PendingAssignments++
		}
	}

	todos, err := s.secretaryRepo.Todos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load todos: %w", err)
	}
	for _, t := range todos {
		if t.Done {
			stats.DoneTodos++
		} else {
			stats.PendingTodos++
		}
	}

	exams, err := s.studentRepo.Exams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load exams: %w", err)
	}
	stats.Exams = len(exams)

	notes, err := s.secretaryRepo.Notes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	stats.Notes = len(notes)

	errands, err := s.familyRepo.Errands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load errands: %w", err)
	}
	for _, e := range errands {
		if e.IsPending() {
			stats.PendingErrands++
		}
	}

	grades, err := s.studentRepo.Grades(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load grades: %w", err)
	}
	stats.GPA = ComputeGPA(grades)

	return stats, nil
}
