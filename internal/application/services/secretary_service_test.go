package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/twinbot/core/internal/domain/entities"
	"github.com/twinbot/core/internal/ports"
)

func newSecretaryService(repo *fakeSecretaryRepo) *SecretaryService {
	return NewSecretaryService(repo, testLogger())
}

func TestAddTodoDefaults(t *testing.T) {
	repo := &fakeSecretaryRepo{}
	svc := newSecretaryService(repo)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	todo, err := svc.AddTodo(context.Background(), ports.AddTodoRequest{
		Task:     "laundry",
		Priority: entities.Priority("someday"),
	}, now)
	if err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	if todo.Priority != entities.PriorityMedium {
		t.Fatalf("Priority=%q, want medium", todo.Priority)
	}
	if todo.DueDate != nil {
		t.Fatal("no due date given, DueDate should be nil")
	}
}

func TestAddTodoRejectsBadDueDate(t *testing.T) {
	svc := newSecretaryService(&fakeSecretaryRepo{})

	_, err := svc.AddTodo(context.Background(), ports.AddTodoRequest{
		Task:    "laundry",
		DueDate: "tuesday",
	}, time.Now())
	if !errors.Is(err, entities.ErrDateFormat) {
		t.Fatalf("err=%v, want ErrDateFormat", err)
	}
}

func TestTodosPendingFirstThenPriority(t *testing.T) {
	repo := &fakeSecretaryRepo{
		todos: []entities.Todo{
			{ID: "1", Task: "done-high", Priority: entities.PriorityHigh, Done: true},
			{ID: "2", Task: "low", Priority: entities.PriorityLow},
			{ID: "3", Task: "high", Priority: entities.PriorityHigh},
			{ID: "4", Task: "medium", Priority: entities.PriorityMedium},
		},
	}
	svc := newSecretaryService(repo)

	got, err := svc.Todos(context.Background())
	if err != nil {
		t.Fatalf("Todos: %v", err)
	}
	wantOrder := []string{"3", "4", "2", "1"}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Fatalf("position %d: got %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestCompleteTodoUsesStoreIndex(t *testing.T) {
	repo := &fakeSecretaryRepo{
		todos: []entities.Todo{
			{ID: "1", Task: "first"},
			{ID: "2", Task: "second"},
		},
	}
	svc := newSecretaryService(repo)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	todo, err := svc.CompleteTodo(context.Background(), 1, now)
	if err != nil {
		t.Fatalf("CompleteTodo: %v", err)
	}
	if todo.ID != "2" || !todo.Done {
		t.Fatalf("completed %+v, want the second store entry done", todo)
	}
	if repo.todos[0].Done {
		t.Fatal("first entry should stay pending")
	}

	if _, err := svc.CompleteTodo(context.Background(), 5, now); !errors.Is(err, entities.ErrInvalidIndex) {
		t.Fatalf("err=%v, want ErrInvalidIndex", err)
	}
	if _, err := svc.CompleteTodo(context.Background(), -1, now); !errors.Is(err, entities.ErrInvalidIndex) {
		t.Fatalf("err=%v, want ErrInvalidIndex", err)
	}
}

func TestDeleteTodo(t *testing.T) {
	repo := &fakeSecretaryRepo{
		todos: []entities.Todo{
			{ID: "1", Task: "first"},
			{ID: "2", Task: "second"},
			{ID: "3", Task: "third"},
		},
	}
	svc := newSecretaryService(repo)

	if err := svc.DeleteTodo(context.Background(), 1); err != nil {
		t.Fatalf("DeleteTodo: %v", err)
	}
	if len(repo.todos) != 2 || repo.todos[1].ID != "3" {
		t.Fatalf("todos after delete: %+v", repo.todos)
	}
}

func TestSearchNotes(t *testing.T) {
	repo := &fakeSecretaryRepo{
		notes: []entities.Note{
			{ID: "1", Title: "Groceries", Content: "milk, eggs"},
			{ID: "2", Title: "Ideas", Content: "weekend trip"},
		},
	}
	svc := newSecretaryService(repo)

	got, err := svc.SearchNotes(context.Background(), "EGGS")
	if err != nil {
		t.Fatalf("SearchNotes: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("got %+v, want the groceries note", got)
	}
}

func TestAddReminderRepeatFallback(t *testing.T) {
	repo := &fakeSecretaryRepo{}
	svc := newSecretaryService(repo)

	r, err := svc.AddReminder(context.Background(), ports.AddReminderRequest{
		Text: "dentist",
		Date: "2025-03-14",
	}, time.Now())
	if err != nil {
		t.Fatalf("AddReminder: %v", err)
	}
	if r.Repeat != entities.RepeatOnce {
		t.Fatalf("Repeat=%q, want once", r.Repeat)
	}
}

func TestRemindersSortedDatelessLast(t *testing.T) {
	repo := &fakeSecretaryRepo{
		reminders: []entities.Reminder{
			{ID: "1", Text: "later", Date: "2025-04-01"},
			{ID: "2", Text: "no date", Date: ""},
			{ID: "3", Text: "sooner", Date: "2025-03-12"},
		},
	}
	svc := newSecretaryService(repo)

	got, err := svc.Reminders(context.Background())
	if err != nil {
		t.Fatalf("Reminders: %v", err)
	}
	wantOrder := []string{"3", "1", "2"}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Fatalf("position %d: got %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestTodaysRemindersLiteralMatchOnly(t *testing.T) {
	repo := &fakeSecretaryRepo{
		reminders: []entities.Reminder{
			{ID: "1", Text: "today", Date: "2025-03-10"},
			{ID: "2", Text: "weekly from last week", Date: "2025-03-03", Repeat: entities.RepeatWeekly},
			{ID: "3", Text: "daily from yesterday", Date: "2025-03-09", Repeat: entities.RepeatDaily},
		},
	}
	svc := newSecretaryService(repo)

	today := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	got, err := svc.TodaysReminders(context.Background(), today)
	if err != nil {
		t.Fatalf("TodaysReminders: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("got %+v, want only the literal date match", got)
	}
}

func TestPlanItemsOrderedByClockTime(t *testing.T) {
	repo := &fakeSecretaryRepo{plan: entities.DailyPlan{}}
	svc := newSecretaryService(repo)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	for _, req := range []ports.AddPlanItemRequest{
		{Time: "2:00 PM", Task: "study group"},
		{Time: "9:00 AM", Task: "gym"},
		{Time: "10:30 AM", Task: "lecture"},
	} {
		if _, err := svc.AddPlanItem(context.Background(), day, req); err != nil {
			t.Fatalf("AddPlanItem: %v", err)
		}
	}

	items, err := svc.PlanFor(context.Background(), day)
	if err != nil {
		t.Fatalf("PlanFor: %v", err)
	}
	wantOrder := []string{"gym", "lecture", "study group"}
	for i, want := range wantOrder {
		if items[i].Task != want {
			t.Fatalf("position %d: got %q, want %q", i, items[i].Task, want)
		}
	}

	if err := svc.CompletePlanItem(context.Background(), day, 0); err != nil {
		t.Fatalf("CompletePlanItem: %v", err)
	}
	items, _ = svc.PlanFor(context.Background(), day)
	if !items[0].Done {
		t.Fatal("first item should be done")
	}

	if err := svc.CompletePlanItem(context.Background(), day, 9); !errors.Is(err, entities.ErrInvalidIndex) {
		t.Fatalf("err=%v, want ErrInvalidIndex", err)
	}
}

func TestProgress(t *testing.T) {
	repo := &fakeSecretaryRepo{
		todos: []entities.Todo{
			{ID: "1", Done: true},
			{ID: "2"},
			{ID: "3", Done: true},
		},
	}
	svc := newSecretaryService(repo)

	progress, err := svc.Progress(context.Background())
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if progress.Done != 2 || progress.Total != 3 {
		t.Fatalf("progress=%+v, want 2/3", progress)
	}
}
