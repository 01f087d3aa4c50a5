package ports

import (
	"context"

	"github.com/twinbot/core/internal/domain/entities"
)

// Every flat-file store is read and written wholesale: load the entire
// sequence, mutate in memory, persist the entire sequence. Corrupt or
// missing content loads as the empty default rather than failing.

// StudentRepository owns the schedule, assignment, grade, and exam stores.
type StudentRepository interface {
	Schedule(ctx context.Context) ([]entities.ClassSlot, error)
	SaveSchedule(ctx context.Context, slots []entities.ClassSlot) error
	Assignments(ctx context.Context) ([]entities.Assignment, error)
	SaveAssignments(ctx context.Context, assignments []entities.Assignment) error
	Grades(ctx context.Context) ([]entities.GradeEntry, error)
	SaveGrades(ctx context.Context, grades []entities.GradeEntry) error
	Exams(ctx context.Context) ([]entities.Exam, error)
	SaveExams(ctx context.Context, exams []entities.Exam) error
}

// SecretaryRepository owns the to-do, note, reminder, contact, and
// daily-plan stores.
type SecretaryRepository interface {
	Todos(ctx context.Context) ([]entities.Todo, error)
	SaveTodos(ctx context.Context, todos []entities.Todo) error
	Notes(ctx context.Context) ([]entities.Note, error)
	SaveNotes(ctx context.Context, notes []entities.Note) error
	Reminders(ctx context.Context) ([]entities.Reminder, error)
	SaveReminders(ctx context.Context, reminders []entities.Reminder) error
	Contacts(ctx context.Context) ([]entities.Contact, error)
	SaveContacts(ctx context.Context, contacts []entities.Contact) error
	Plan(ctx context.Context) (entities.DailyPlan, error)
	SavePlan(ctx context.Context, plan entities.DailyPlan) error
}

// FamilyRepository owns the family member, event, errand, and gift stores.
type FamilyRepository interface {
	Members(ctx context.Context) ([]entities.FamilyMember, error)
	SaveMembers(ctx context.Context, members []entities.FamilyMember) error
	Events(ctx context.Context) ([]entities.FamilyEvent, error)
	SaveEvents(ctx context.Context, events []entities.FamilyEvent) error
	Errands(ctx context.Context) ([]entities.Errand, error)
	SaveErrands(ctx context.Context, errands []entities.Errand) error
	Gifts(ctx context.Context) ([]entities.GiftIdea, error)
	SaveGifts(ctx context.Context, gifts []entities.GiftIdea) error
}

// ProfileRepository owns the single owner profile.
type ProfileRepository interface {
	Profile(ctx context.Context) (*entities.Profile, error)
	SaveProfile(ctx context.Context, profile *entities.Profile) error
}

// ResearchRepository owns the research history and bookmark stores.
type ResearchRepository interface {
	AddEntry(ctx context.Context, entry *entities.ResearchEntry) error
	History(ctx context.Context, limit int) ([]entities.ResearchEntry, error)
	AddBookmark(ctx context.Context, bookmark *entities.Bookmark) error
	Bookmarks(ctx context.Context) ([]entities.Bookmark, error)
}

// StudyRepository reads the study-habits dataset.
type StudyRepository interface {
	Records(ctx context.Context) ([]entities.StudyRecord, error)
}

// WeatherFetcher is the briefing's view of the weather collaborator:
// best-effort one-line text, never a typed error.
type WeatherFetcher interface {
	Weather(ctx context.Context, city string) string
}
