package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/twinbot/core/internal/domain/entities"
	"github.com/twinbot/core/internal/infrastructure/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// In-memory repository fakes backed by plain slices.

type fakeStudentRepo struct {
	schedule    []entities.ClassSlot
	assignments []entities.Assignment
	grades      []entities.GradeEntry
	exams       []entities.Exam
}

func (f *fakeStudentRepo) Schedule(ctx context.Context) ([]entities.ClassSlot, error) {
	return append([]entities.ClassSlot(nil), f.schedule...), nil
}

func (f *fakeStudentRepo) SaveSchedule(ctx context.Context, slots []entities.ClassSlot) error {
	f.schedule = slots
	return nil
}

func (f *fakeStudentRepo) Assignments(ctx context.Context) ([]entities.Assignment, error) {
	return append([]entities.Assignment(nil), f.assignments...), nil
}

func (f *fakeStudentRepo) SaveAssignments(ctx context.Context, assignments []entities.Assignment) error {
	f.assignments = assignments
	return nil
}

func (f *fakeStudentRepo) Grades(ctx context.Context) ([]entities.GradeEntry, error) {
	return append([]entities.GradeEntry(nil), f.grades...), nil
}

func (f *fakeStudentRepo) SaveGrades(ctx context.Context, grades []entities.GradeEntry) error {
	f.grades = grades
	return nil
}

func (f *fakeStudentRepo) Exams(ctx context.Context) ([]entities.Exam, error) {
	return append([]entities.Exam(nil), f.exams...), nil
}

func (f *fakeStudentRepo) SaveExams(ctx context.Context, exams []entities.Exam) error {
	f.exams = exams
	return nil
}

type fakeSecretaryRepo struct {
	todos     []entities.Todo
	notes     []entities.Note
	reminders []entities.Reminder
	contacts  []entities.Contact
	plan      entities.DailyPlan
}

func (f *fakeSecretaryRepo) Todos(ctx context.Context) ([]entities.Todo, error) {
	return append([]entities.Todo(nil), f.todos...), nil
}

func (f *fakeSecretaryRepo) SaveTodos(ctx context.Context, todos []entities.Todo) error {
	f.todos = todos
	return nil
}

func (f *fakeSecretaryRepo) Notes(ctx context.Context) ([]entities.Note, error) {
	return append([]entities.Note(nil), f.notes...), nil
}

func (f *fakeSecretaryRepo) SaveNotes(ctx context.Context, notes []entities.Note) error {
	f.notes = notes
	return nil
}

func (f *fakeSecretaryRepo) Reminders(ctx context.Context) ([]entities.Reminder, error) {
	return append([]entities.Reminder(nil), f.reminders...), nil
}

func (f *fakeSecretaryRepo) SaveReminders(ctx context.Context, reminders []entities.Reminder) error {
	f.reminders = reminders
	return nil
}

func (f *fakeSecretaryRepo) Contacts(ctx context.Context) ([]entities.Contact, error) {
	return append([]entities.Contact(nil), f.contacts...), nil
}

func (f *fakeSecretaryRepo) SaveContacts(ctx context.Context, contacts []entities.Contact) error {
	f.contacts = contacts
	return nil
}

func (f *fakeSecretaryRepo) Plan(ctx context.Context) (entities.DailyPlan, error) {
	if f.plan == nil {
		return entities.DailyPlan{}, nil
	}
	return f.plan, nil
}

func (f *fakeSecretaryRepo) SavePlan(ctx context.Context, plan entities.DailyPlan) error {
	f.plan = plan
	return nil
}

type fakeFamilyRepo struct {
	members []entities.FamilyMember
	events  []entities.FamilyEvent
	errands []entities.Errand
	gifts   []entities.GiftIdea
}

func (f *fakeFamilyRepo) Members(ctx context.Context) ([]entities.FamilyMember, error) {
	return append([]entities.FamilyMember(nil), f.members...), nil
}

func (f *fakeFamilyRepo) SaveMembers(ctx context.Context, members []entities.FamilyMember) error {
	f.members = members
	return nil
}

func (f *fakeFamilyRepo) Events(ctx context.Context) ([]entities.FamilyEvent, error) {
	return append([]entities.FamilyEvent(nil), f.events...), nil
}

func (f *fakeFamilyRepo) SaveEvents(ctx context.Context, events []entities.FamilyEvent) error {
	f.events = events
	return nil
}

func (f *fakeFamilyRepo) Errands(ctx context.Context) ([]entities.Errand, error) {
	return append([]entities.Errand(nil), f.errands...), nil
}

func (f *fakeFamilyRepo) SaveErrands(ctx context.Context, errands []entities.Errand) error {
	f.errands = errands
	return nil
}

func (f *fakeFamilyRepo) Gifts(ctx context.Context) ([]entities.GiftIdea, error) {
	return append([]entities.GiftIdea(nil), f.gifts...), nil
}

func (f *fakeFamilyRepo) SaveGifts(ctx context.Context, gifts []entities.GiftIdea) error {
	f.gifts = gifts
	return nil
}

type fakeProfileRepo struct {
	profile entities.Profile
}

func (f *fakeProfileRepo) Profile(ctx context.Context) (*entities.Profile, error) {
	p := f.profile
	return &p, nil
}

func (f *fakeProfileRepo) SaveProfile(ctx context.Context, profile *entities.Profile) error {
	f.profile = *profile
	return nil
}

type fakeStudyRepo struct {
	records []entities.StudyRecord
}

func (f *fakeStudyRepo) Records(ctx context.Context) ([]entities.StudyRecord, error) {
	return append([]entities.StudyRecord(nil), f.records...), nil
}

type fakeWeatherFetcher struct {
	result string
	city   string
}

func (f *fakeWeatherFetcher) Weather(ctx context.Context, city string) string {
	f.city = city
	return f.result
}
