package repository

import (
	"context"

	"github.com/twinbot/core/internal/domain/entities"
)

// Store file names for the secretary domain.
const (
	todosFile     = "todos.json"
	notesFile     = "notes.json"
	remindersFile = "reminders.json"
	contactsFile  = "contacts.json"
	plannerFile   = "planner.json"
)

// SecretaryRepository persists to-dos, notes, reminders, contacts, and
// the date-keyed daily planner.
type SecretaryRepository struct {
	store *Store
}

// NewSecretaryRepository creates a new secretary repository.
func NewSecretaryRepository(store *Store) *SecretaryRepository {
	return &SecretaryRepository{store: store}
}

func (r *SecretaryRepository) Todos(ctx context.Context) ([]entities.Todo, error) {
	var todos []entities.Todo
	if err := r.store.Load(todosFile, &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []entities.Todo{}
	}
	return todos, nil
}

func (r *SecretaryRepository) SaveTodos(ctx context.Context, todos []entities.Todo) error {
	return r.store.Save(todosFile, todos)
}

func (r *SecretaryRepository) Notes(ctx context.Context) ([]entities.Note, error) {
	var notes []entities.Note
	if err := r.store.Load(notesFile, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []entities.Note{}
	}
	return notes, nil
}

func (r *SecretaryRepository) SaveNotes(ctx context.Context, notes []entities.Note) error {
	return r.store.Save(notesFile, notes)
}

func (r *SecretaryRepository) Reminders(ctx context.Context) ([]entities.Reminder, error) {
	var reminders []entities.Reminder
	if err := r.store.Load(remindersFile, &reminders); err != nil {
		return nil, err
	}
	if reminders == nil {
		reminders = []entities.Reminder{}
	}
	return reminders, nil
}

func (r *SecretaryRepository) SaveReminders(ctx context.Context, reminders []entities.Reminder) error {
	return r.store.Save(remindersFile, reminders)
}

func (r *SecretaryRepository) Contacts(ctx context.Context) ([]entities.Contact, error) {
	var contacts []entities.Contact
	if err := r.store.Load(contactsFile, &contacts); err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []entities.Contact{}
	}
	return contacts, nil
}

func (r *SecretaryRepository) SaveContacts(ctx context.Context, contacts []entities.Contact) error {
	return r.store.Save(contactsFile, contacts)
}

func (r *SecretaryRepository) Plan(ctx context.Context) (entities.DailyPlan, error) {
	var plan entities.DailyPlan
	if err := r.store.Load(plannerFile, &plan); err != nil {
		return nil, err
	}
	if plan == nil {
		plan = entities.DailyPlan{}
	}
	return plan, nil
}

func (r *SecretaryRepository) SavePlan(ctx context.Context, plan entities.DailyPlan) error {
	return r.store.Save(plannerFile, plan)
}
