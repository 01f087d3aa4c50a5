package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/twinbot/core/internal/domain/dates"
	"github.com/twinbot/core/internal/domain/entities"
	"github.com/twinbot/core/internal/infrastructure/logger"
	"github.com/twinbot/core/internal/ports"
)

// PendingTodoLimit caps the pending to-do view used by the dashboard.
const PendingTodoLimit = 5

// TodoProgress summarizes completion across the to-do list.
type TodoProgress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// SecretaryService handles to-dos, notes, reminders, contacts, and the
// daily planner
type SecretaryService struct {
	repo   ports.SecretaryRepository
	logger *logger.Logger
}

// NewSecretaryService creates a new secretary service
func NewSecretaryService(repo ports.SecretaryRepository, logger *logger.Logger) *SecretaryService {
	return &SecretaryService{
		repo:   repo,
		logger: logger,
	}
}

// AddTodo adds a to-do item
func (s *SecretaryService) AddTodo(ctx context.Context, req ports.AddTodoRequest, now time.Time) (*entities.Todo, error) {
	todos, err := s.repo.Todos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load todos: %w", err)
	}

	priority := req.Priority
	if !priority.IsValid() {
		priority = entities.PriorityMedium
	}

	todo := entities.Todo{
		ID:       uuid.New().String(),
		Task:     req.Task,
		Priority: priority,
		Category: req.Category,
		Created:  now,
	}
	if req.DueDate != "" {
		if _, err := dates.Parse(req.DueDate); err != nil {
			return nil, err
		}
		due := req.DueDate
		todo.DueDate = &due
	}
	todos = append(todos, todo)

	if err := s.repo.SaveTodos(ctx, todos); err != nil {
		return nil, fmt.Errorf("failed to save todos: %w", err)
	}

	s.logger.Info("Todo added", "task", todo.Task, "priority", todo.Priority)

	return &todo, nil
}

// Todos returns all to-dos, pending first, then by priority rank
func (s *SecretaryService) Todos(ctx context.Context) ([]entities.Todo, error) {
	todos, err := s.repo.Todos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load todos: %w", err)
	}

	sort.SliceStable(todos, func(i, j int) bool {
		if todos[i].Done != todos[j].Done {
			return !todos[i].Done
		}
		return todos[i].Priority.Rank() < todos[j].Priority.Rank()
	})
	return todos, nil
}

// CompleteTodo marks the to-do at the given index as done. The index
// refers to the store order.
func (s *SecretaryService) CompleteTodo(ctx context.Context, index int, now time.Time) (*entities.Todo, error) {
	todos, err := s.repo.Todos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load todos: %w", err)
	}
	if index < 0 || index >= len(todos) {
		return nil, entities.ErrInvalidIndex
	}

	todos[index].Complete(now)
	if err := s.repo.SaveTodos(ctx, todos); err != nil {
		return nil, fmt.Errorf("failed to save todos: %w", err)
	}

	s.logger.Info("Todo completed", "task", todos[index].Task)

	return &todos[index], nil
}

// DeleteTodo removes the to-do at the given store index
func (s *SecretaryService) DeleteTodo(ctx context.Context, index int) error {
	todos, err := s.repo.Todos(ctx)
	if err != nil {
		return fmt.Errorf("failed to load todos: %w", err)
	}
	if index < 0 || index >= len(todos) {
		return entities.ErrInvalidIndex
	}

	removed := todos[index]
	todos = append(todos[:index], todos[index+1:]...)
	if err := s.repo.SaveTodos(ctx, todos); err != nil {
		return fmt.Errorf("failed to save todos: %w", err)
	}

	s.logger.Info("Todo deleted", "task", removed.Task)

	return nil
}

// PendingTodos returns pending to-dos by priority rank, up to limit
func (s *SecretaryService) PendingTodos(ctx context.Context, limit int) ([]entities.Todo, error) {
	todos, err := s.repo.Todos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load todos: %w", err)
	}

	if limit <= 0 {
		limit = PendingTodoLimit
	}

	pending := make([]entities.Todo, 0, len(todos))
	for _, t := range todos {
		if t.IsPending() {
			pending = append(pending, t)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Priority.Rank() < pending[j].Priority.Rank()
	})
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

// Progress reports how many to-dos are done out of the total
func (s *SecretaryService) Progress(ctx context.Context) (TodoProgress, error) {
	todos, err := s.repo.Todos(ctx)
	if err != nil {
		return TodoProgress{}, fmt.Errorf("failed to load todos: %w", err)
	}

	progress := TodoProgress{Total: len(todos)}
	for _, t := range todos {
		if t.Done {
			progress.Done++
		}
	}
	return progress, nil
}

// AddNote saves a note
func (s *SecretaryService) AddNote(ctx context.Context, req ports.AddNoteRequest, now time.Time) (*entities.Note, error) {
	notes, err := s.repo.Notes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}

	note := entities.Note{
		ID:      uuid.New().String(),
		Title:   req.Title,
		Content: req.Content,
		Tag:     req.Tag,
		Created: now,
	}
	notes = append(notes, note)

	if err := s.repo.SaveNotes(ctx, notes); err != nil {
		return nil, fmt.Errorf("failed to save notes: %w", err)
	}

	s.logger.Info("Note saved", "title", note.Title)

	return &note, nil
}

// Notes returns all notes in store order
func (s *SecretaryService) Notes(ctx context.Context) ([]entities.Note, error) {
	notes, err := s.repo.Notes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	return notes, nil
}

// SearchNotes returns notes whose title or content contains the keyword,
// case-insensitive.
func (s *SecretaryService) SearchNotes(ctx context.Context, keyword string) ([]entities.Note, error) {
	notes, err := s.repo.Notes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}

	results := make([]entities.Note, 0)
	for _, n := range notes {
		if n.Matches(keyword) {
			results = append(results, n)
		}
	}
	return results, nil
}

// DeleteNote removes the note at the given store index
func (s *SecretaryService) DeleteNote(ctx context.Context, index int) error {
	notes, err := s.repo.Notes(ctx)
	if err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}
	if index < 0 || index >= len(notes) {
		return entities.ErrInvalidIndex
	}

	removed := notes[index]
	notes = append(notes[:index], notes[index+1:]...)
	if err := s.repo.SaveNotes(ctx, notes); err != nil {
		return fmt.Errorf("failed to save notes: %w", err)
	}

	s.logger.Info("Note deleted", "title", removed.Title)

	return nil
}

// AddReminder sets a reminder. The repeat label is stored for display
// but reminders only ever fire on their literal date.
func (s *SecretaryService) AddReminder(ctx context.Context, req ports.AddReminderRequest, now time.Time) (*entities.Reminder, error) {
	if _, err := dates.Parse(req.Date); err != nil {
		return nil, err
	}

	reminders, err := s.repo.Reminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reminders: %w", err)
	}

	repeat := req.Repeat
	if !repeat.IsValid() {
		repeat = entities.RepeatOnce
	}

	reminder := entities.Reminder{
		ID:      uuid.New().String(),
		Text:    req.Text,
		Date:    req.Date,
		Repeat:  repeat,
		Created: now,
	}
	reminders = append(reminders, reminder)

	if err := s.repo.SaveReminders(ctx, reminders); err != nil {
		return nil, fmt.Errorf("failed to save reminders: %w", err)
	}

	s.logger.Info("Reminder set", "text", reminder.Text, "date", reminder.Date)

	return &reminder, nil
}

// Reminders returns all reminders ordered by date; absent dates sort last
func (s *SecretaryService) Reminders(ctx context.Context) ([]entities.Reminder, error) {
	reminders, err := s.repo.Reminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reminders: %w", err)
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		return reminderDateKey(reminders[i]) < reminderDateKey(reminders[j])
	})
	return reminders, nil
}

func reminderDateKey(r entities.Reminder) string {
	if r.Date == "" {
		return "9999-99-99"
	}
	return r.Date
}

// TodaysReminders returns reminders whose stored date equals today's
// date exactly.
func (s *SecretaryService) TodaysReminders(ctx context.Context, today time.Time) ([]entities.Reminder, error) {
	reminders, err := s.repo.Reminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reminders: %w", err)
	}

	todayStr := dates.FormatDate(today)
	todays := make([]entities.Reminder, 0)
	for _, r := range reminders {
		if r.Date == todayStr {
			todays = append(todays, r)
		}
	}
	return todays, nil
}

// DeleteReminder removes the reminder at the given store index
func (s *SecretaryService) DeleteReminder(ctx context.Context, index int) error {
	reminders, err := s.repo.Reminders(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reminders: %w", err)
	}
	if index < 0 || index >= len(reminders) {
		return entities.ErrInvalidIndex
	}

	removed := reminders[index]
	reminders = append(reminders[:index], reminders[index+1:]...)
	if err := s.repo.SaveReminders(ctx, reminders); err != nil {
		return fmt.Errorf("failed to save reminders: %w", err)
	}

	s.logger.Info("Reminder deleted", "text", removed.Text)

	return nil
}

// AddContact saves a contact
func (s *SecretaryService) AddContact(ctx context.Context, req ports.AddContactRequest) (*entities.Contact, error) {
	contacts, err := s.repo.Contacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	contact := entities.Contact{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Relation: req.Relation,
		Notes:    req.Notes,
	}
	contacts = append(contacts, contact)

	if err := s.repo.SaveContacts(ctx, contacts); err != nil {
		return nil, fmt.Errorf("failed to save contacts: %w", err)
	}

	s.logger.Info("Contact saved", "name", contact.Name)

	return &contact, nil
}

// Contacts returns all contacts in store order
func (s *SecretaryService) Contacts(ctx context.Context) ([]entities.Contact, error) {
	contacts, err := s.repo.Contacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	return contacts, nil
}

// PlanFor returns the plan items for a calendar date
func (s *SecretaryService) PlanFor(ctx context.Context, day time.Time) ([]entities.PlanItem, error) {
	plan, err := s.repo.Plan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily plan: %w", err)
	}
	return plan[dates.FormatDate(day)], nil
}

// AddPlanItem adds an item to the given day's plan, keeping the day
// ordered by parsed clock time.
func (s *SecretaryService) AddPlanItem(ctx context.Context, day time.Time, req ports.AddPlanItemRequest) (*entities.PlanItem, error) {
	plan, err := s.repo.Plan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily plan: %w", err)
	}

	key := dates.FormatDate(day)
	item := entities.PlanItem{
		Time: req.Time,
		Task: req.Task,
	}
	items := append(plan[key], item)
	sort.SliceStable(items, func(i, j int) bool {
		return clockRank(items[i].Time) < clockRank(items[j].Time)
	})
	plan[key] = items

	if err := s.repo.SavePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save daily plan: %w", err)
	}

	s.logger.Info("Plan item added", "date", key, "time", item.Time, "task", item.Task)

	return &item, nil
}

// CompletePlanItem marks the given day's plan item done by index
func (s *SecretaryService) CompletePlanItem(ctx context.Context, day time.Time, index int) error {
	plan, err := s.repo.Plan(ctx)
	if err != nil {
		return fmt.Errorf("failed to load daily plan: %w", err)
	}

	key := dates.FormatDate(day)
	items := plan[key]
	if index < 0 || index >= len(items) {
		return entities.ErrInvalidIndex
	}

	items[index].Done = true
	plan[key] = items
	if err := s.repo.SavePlan(ctx, plan); err != nil {
		return fmt.Errorf("failed to save daily plan: %w", err)
	}

	s.logger.Info("Plan item completed", "date", key, "task", items[index].Task)

	return nil
}
