package ports

import (
	"github.com/twinbot/core/internal/domain/entities"
)

// Request/Response Types

// Student related types
type AddClassRequest struct {
	Course    string `json:"course" validate:"required,max=100"`
	Day       string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Time      string `json:"time" validate:"required"`
	Room      string `json:"room" validate:"omitempty,max=100"`
	Professor string `json:"professor" validate:"omitempty,max=100"`
}

type AddAssignmentRequest struct {
	Course   string            `json:"course" validate:"required,max=100"`
	Title    string            `json:"title" validate:"required,max=200"`
	DueDate  string            `json:"due_date" validate:"required"`
	Priority entities.Priority `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	Notes    string            `json:"notes" validate:"omitempty,max=1000"`
}

type AddGradeRequest struct {
	Course  string `json:"course" validate:"required,max=100"`
	Grade   string `json:"grade" validate:"required,max=2"`
	Credits int    `json:"credits" validate:"required,gt=0"`
}

type AddExamRequest struct {
	Course   string `json:"course" validate:"required,max=100"`
	Title    string `json:"title" validate:"required,max=200"`
	Date     string `json:"date" validate:"required"`
	Location string `json:"location" validate:"omitempty,max=200"`
	Notes    string `json:"notes" validate:"omitempty,max=1000"`
}

// Secretary related types
type AddTodoRequest struct {
	Task     string            `json:"task" validate:"required,max=500"`
	Priority entities.Priority `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	Category string            `json:"category" validate:"omitempty,max=100"`
	DueDate  string            `json:"due_date" validate:"omitempty"`
}

type AddNoteRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	Tag     string `json:"tag" validate:"omitempty,max=100"`
}

type AddReminderRequest struct {
	Text   string          `json:"text" validate:"required,max=500"`
	Date   string          `json:"date" validate:"required"`
	Repeat entities.Repeat `json:"repeat" validate:"omitempty,oneof=Once Daily Weekly Monthly"`
}

type AddContactRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Relation string `json:"relation" validate:"omitempty,max=100"`
	Notes    string `json:"notes" validate:"omitempty,max=1000"`
}

type AddPlanItemRequest struct {
	Time string `json:"time" validate:"required"`
	Task string `json:"task" validate:"required,max=500"`
}

// Family related types
type AddMemberRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Relation string `json:"relation" validate:"omitempty,max=100"`
	Birthday string `json:"birthday" validate:"omitempty"`
	Phone    string `json:"phone" validate:"omitempty,max=50"`
	Notes    string `json:"notes" validate:"omitempty,max=1000"`
}

type AddEventRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Date     string `json:"date" validate:"required"`
	Location string `json:"location" validate:"omitempty,max=200"`
	Notes    string `json:"notes" validate:"omitempty,max=1000"`
}

type AddErrandRequest struct {
	Task     string            `json:"task" validate:"required,max=500"`
	ForWhom  string            `json:"for_whom" validate:"omitempty,max=100"`
	Priority entities.Priority `json:"priority" validate:"omitempty,oneof=High Medium Low"`
}

type AddGiftRequest struct {
	ForWhom  string `json:"for_whom" validate:"required,max=100"`
	Idea     string `json:"idea" validate:"required,max=500"`
	Budget   string `json:"budget" validate:"omitempty,max=50"`
	Occasion string `json:"occasion" validate:"omitempty,max=100"`
}

// Research related types
type AddBookmarkRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	URL      string `json:"url" validate:"required,url"`
	Category string `json:"category" validate:"omitempty,max=100"`
}

// Profile related types
type UpdateProfileRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Nickname  string `json:"nickname" validate:"omitempty,max=100"`
	School    string `json:"school" validate:"omitempty,max=200"`
	Major     string `json:"major" validate:"omitempty,max=200"`
	Year      string `json:"year" validate:"omitempty,max=50"`
	City      string `json:"city" validate:"omitempty,max=100"`
	WakeTime  string `json:"wake_time" validate:"omitempty,max=20"`
	SleepTime string `json:"sleep_time" validate:"omitempty,max=20"`
}
