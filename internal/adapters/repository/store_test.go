package repository

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/twinbot/core/internal/domain/entities"
	"github.com/twinbot/core/internal/infrastructure/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := newTestStore(t)

	todos := []entities.Todo{}
	if err := store.Load("todos.json", &todos); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(todos) != 0 {
		t.Fatalf("expected empty default, got %d items", len(todos))
	}
}

func TestStoreLoadCorruptFile(t *testing.T) {
	store := newTestStore(t)

	path := filepath.Join(store.Dir(), "todos.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	todos := []entities.Todo{}
	if err := store.Load("todos.json", &todos); err != nil {
		t.Fatalf("corrupt content should degrade, got error: %v", err)
	}
	if len(todos) != 0 {
		t.Fatalf("expected empty default after corrupt load, got %d items", len(todos))
	}
}

func TestStoreSaveLoadRoundtrip(t *testing.T) {
	store := newTestStore(t)

	saved := []entities.Todo{
		{ID: "1", Task: "laundry", Priority: entities.PriorityHigh},
		{ID: "2", Task: "email advisor", Priority: entities.PriorityLow, Done: true},
	}
	if err := store.Save("todos.json", saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var loaded []entities.Todo
	if err := store.Load("todos.json", &loaded); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d items, want 2", len(loaded))
	}
	if loaded[0].Task != "laundry" || !loaded[1].Done {
		t.Fatalf("roundtrip mismatch: %+v", loaded)
	}
}

func TestStoreSaveIsPrettyPrinted(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("profile.json", entities.Profile{Name: "Alex"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(store.Dir(), "profile.json"))
	if err != nil {
		t.Fatal(err)
	}
	if data[len(data)-1] != '\n' {
		t.Fatal("saved document should end with a newline")
	}
	if !containsIndent(data) {
		t.Fatalf("saved document should be indented: %s", data)
	}
}

func containsIndent(data []byte) bool {
	for i := 0; i+2 < len(data); i++ {
		if data[i] == '\n' && data[i+1] == ' ' && data[i+2] == ' ' {
			return true
		}
	}
	return false
}

func TestStoreSaveLeavesNoTempFiles(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("notes.json", []entities.Note{{ID: "1", Title: "x"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(store.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "notes.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("unexpected directory contents: %v", names)
	}
}
