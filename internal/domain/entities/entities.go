package entities

import (
	"errors"
	"strings"
	"time"
)

// Common errors
var (
	ErrDateFormat         = errors.New("invalid date format")
	ErrMissingField       = errors.New("record is missing a required field")
	ErrStoreCorrupt       = errors.New("store content is corrupt")
	ErrClassNotFound      = errors.New("class not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrTodoNotFound       = errors.New("to-do not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrReminderNotFound   = errors.New("reminder not found")
	ErrErrandNotFound     = errors.New("errand not found")
	ErrPlanItemNotFound   = errors.New("plan item not found")
	ErrInvalidIndex       = errors.New("invalid item index")
	ErrUnknownNewsSource  = errors.New("unknown news source")
)

// Enums and types
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Rank returns the sort rank of a priority; lower sorts first.
// Unrecognized values rank as Medium rather than erroring.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

type Urgency string

const (
	UrgencyOverdue  Urgency = "overdue"
	UrgencyToday    Urgency = "today"
	UrgencyCritical Urgency = "critical"
	UrgencyWarning  Urgency = "warning"
	UrgencyNormal   Urgency = "normal"
)

type Repeat string

const (
	RepeatOnce    Repeat = "Once"
	RepeatDaily   Repeat = "Daily"
	RepeatWeekly  Repeat = "Weekly"
	RepeatMonthly Repeat = "Monthly"
)

func (r Repeat) IsValid() bool {
	switch r {
	case RepeatOnce, RepeatDaily, RepeatWeekly, RepeatMonthly:
		return true
	default:
		return false
	}
}

// weekdays in canonical order; unknown names sort last
var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeekdayRank returns the position of a weekday name in the week, Monday
// first. Names outside the canonical seven rank after Sunday.
func WeekdayRank(day string) int {
	for i, d := range weekdayOrder {
		if d == day {
			return i
		}
	}
	return len(weekdayOrder)
}

// ClassSlot is a recurring weekly class in the schedule.
type ClassSlot struct {
	ID        string `json:"id"`
	Course    string `json:"course"`
	Day       string `json:"day"`
	Time      string `json:"time"`
	Room      string `json:"room,omitempty"`
	Professor string `json:"professor,omitempty"`
}

// Assignment is a dated piece of coursework.
type Assignment struct {
	ID            string     `json:"id"`
	Course        string     `json:"course"`
	Title         string     `json:"title"`
	DueDate       string     `json:"due_date"`
	Priority      Priority   `json:"priority"`
	Notes         string     `json:"notes,omitempty"`
	Done          bool       `json:"done"`
	Created       time.Time  `json:"created"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
}

func (a *Assignment) DueMoment() (string, bool) {
	return a.DueDate, a.DueDate != ""
}

func (a *Assignment) IsPending() bool {
	return !a.Done
}

func (a *Assignment) Complete(at time.Time) {
	a.Done = true
	a.CompletedDate = &at
}

// Exam is a scheduled exam; it has no completion concept.
type Exam struct {
	ID       string `json:"id"`
	Course   string `json:"course"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

func (e *Exam) DueMoment() (string, bool) {
	return e.Date, e.Date != ""
}

func (e *Exam) IsPending() bool { return true }

// GradeEntry is a recorded letter grade for a course.
type GradeEntry struct {
	ID       string    `json:"id"`
	Course   string    `json:"course"`
	Grade    string    `json:"grade"`
	Credits  int       `json:"credits"`
	Recorded time.Time `json:"recorded"`
}

// gradePoints is the fixed letter-grade to grade-point table.
var gradePoints = map[string]float64{
	"A+": 4.0, "A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0, "D-": 0.7,
	"F": 0.0,
}

// GradePoints maps a letter grade to grade points. Unknown letters are
// worth 0 points; the caller still counts their credits.
func GradePoints(letter string) float64 {
	return gradePoints[strings.ToUpper(strings.TrimSpace(letter))]
}

// Points is the grade-point value of this entry's letter grade.
func (g *GradeEntry) Points() float64 {
	return GradePoints(g.Grade)
}

// Todo is a general to-do item.
type Todo struct {
	ID            string     `json:"id"`
	Task          string     `json:"task"`
	Priority      Priority   `json:"priority"`
	Category      string     `json:"category,omitempty"`
	DueDate       *string    `json:"due_date,omitempty"`
	Done          bool       `json:"done"`
	Created       time.Time  `json:"created"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
}

func (t *Todo) DueMoment() (string, bool) {
	if t.DueDate == nil || *t.DueDate == "" {
		return "", false
	}
	return *t.DueDate, true
}

func (t *Todo) IsPending() bool {
	return !t.Done
}

func (t *Todo) Complete(at time.Time) {
	t.Done = true
	t.CompletedDate = &at
}

// Reminder fires on its literal stored date. The Repeat label is stored
// but never expanded into extra occurrences.
type Reminder struct {
	ID      string    `json:"id"`
	Text    string    `json:"text"`
	Date    string    `json:"date"`
	Repeat  Repeat    `json:"repeat"`
	Created time.Time `json:"created"`
}

func (r *Reminder) DueMoment() (string, bool) {
	return r.Date, r.Date != ""
}

func (r *Reminder) IsPending() bool { return true }

// Note is a free-form saved note.
type Note struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Tag     string    `json:"tag,omitempty"`
	Created time.Time `json:"created"`
}

// Matches reports whether the note's title or content contains the
// keyword, case-insensitive.
func (n *Note) Matches(keyword string) bool {
	k := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(n.Title), k) ||
		strings.Contains(strings.ToLower(n.Content), k)
}

// Contact is an address-book entry.
type Contact struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Relation string `json:"relation,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// PlanItem is one slot in a day's plan. Items live under their owning
// calendar date in the DailyPlan mapping.
type PlanItem struct {
	Time string `json:"time"`
	Task string `json:"task"`
	Done bool   `json:"done"`
}

// DailyPlan maps a calendar date (fixed date format) to that day's plan.
type DailyPlan map[string][]PlanItem

// FamilyMember is a family contact with a tracked birthday.
type FamilyMember struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Relation string `json:"relation,omitempty"`
	Birthday string `json:"birthday,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// FamilyEvent is a dated family occasion.
type FamilyEvent struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

func (e *FamilyEvent) DueMoment() (string, bool) {
	return e.Date, e.Date != ""
}

func (e *FamilyEvent) IsPending() bool { return true }

// Errand is a small completable task run for someone.
type Errand struct {
	ID       string   `json:"id"`
	Task     string   `json:"task"`
	ForWhom  string   `json:"for_whom,omitempty"`
	Priority Priority `json:"priority"`
	Done     bool     `json:"done"`
}

func (e *Errand) IsPending() bool {
	return !e.Done
}

// GiftIdea is a saved gift idea for a person and occasion.
type GiftIdea struct {
	ID        string `json:"id"`
	ForWhom   string `json:"for_whom"`
	Idea      string `json:"idea"`
	Budget    string `json:"budget,omitempty"`
	Occasion  string `json:"occasion,omitempty"`
	Purchased bool   `json:"purchased"`
}

// Profile holds the owner's personal details. City feeds the weather
// collaborator.
type Profile struct {
	Name      string `json:"name"`
	Nickname  string `json:"nickname,omitempty"`
	School    string `json:"school,omitempty"`
	Major     string `json:"major,omitempty"`
	Year      string `json:"year,omitempty"`
	City      string `json:"city,omitempty"`
	WakeTime  string `json:"wake_time,omitempty"`
	SleepTime string `json:"sleep_time,omitempty"`
}

// DisplayName prefers the nickname, falling back to the full name.
func (p *Profile) DisplayName() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	if p.Name != "" {
		return p.Name
	}
	return "friend"
}

// ResearchEntry is one saved lookup in the research history.
type ResearchEntry struct {
	ID        string    `json:"id" db:"id"`
	Source    string    `json:"source" db:"source"`
	Topic     string    `json:"topic" db:"topic"`
	Summary   string    `json:"summary" db:"summary"`
	URL       string    `json:"url" db:"url"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// Bookmark is a saved URL.
type Bookmark struct {
	ID       string    `json:"id" db:"id"`
	Title    string    `json:"title" db:"title"`
	URL      string    `json:"url" db:"url"`
	Category string    `json:"category" db:"category"`
	Added    time.Time `json:"added" db:"added"`
}

// StudyRecord is one row of the study-habits dataset.
type StudyRecord struct {
	HoursStudied    float64
	SleepHours      float64
	BreakFrequency  string
	PhoneDistracted bool
	EnvRating       int
	Class           string
}
