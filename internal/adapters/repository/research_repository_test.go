package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/twinbot/core/internal/domain/entities"
	"github.com/twinbot/core/internal/infrastructure/database"
)

func newTestResearchRepo(t *testing.T) *ResearchRepository {
	t.Helper()
	db, err := database.NewMemory()
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ddl, err := os.ReadFile("../../../migrations/000001_create_research_tables.up.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	if _, err := db.DB.Exec(string(ddl)); err != nil {
		t.Fatalf("apply migration: %v", err)
	}
	return NewResearchRepository(db)
}

func TestResearchHistoryRoundtrip(t *testing.T) {
	repo := newTestResearchRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		entry := &entities.ResearchEntry{
			ID:        fmt.Sprintf("entry-%d", i),
			Source:    "duckduckgo",
			Topic:     fmt.Sprintf("topic %d", i),
			Summary:   "a summary",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.AddEntry(ctx, entry); err != nil {
			t.Fatalf("AddEntry: %v", err)
		}
	}

	entries, err := repo.History(ctx, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	// Newest first.
	if entries[0].Topic != "topic 2" || entries[2].Topic != "topic 0" {
		t.Fatalf("wrong order: %q .. %q", entries[0].Topic, entries[2].Topic)
	}
	if !entries[0].Timestamp.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("timestamp mismatch: %v", entries[0].Timestamp)
	}
}

func TestResearchHistoryLimit(t *testing.T) {
	repo := newTestResearchRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		entry := &entities.ResearchEntry{
			ID:        fmt.Sprintf("entry-%d", i),
			Source:    "dictionary",
			Topic:     fmt.Sprintf("word %d", i),
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}
		if err := repo.AddEntry(ctx, entry); err != nil {
			t.Fatalf("AddEntry: %v", err)
		}
	}

	entries, err := repo.History(ctx, 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
}

func TestResearchHistoryPrunes(t *testing.T) {
	repo := newTestResearchRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	for i := 0; i < historyKeep+10; i++ {
		entry := &entities.ResearchEntry{
			ID:        fmt.Sprintf("entry-%04d", i),
			Source:    "duckduckgo",
			Topic:     "t",
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}
		if err := repo.AddEntry(ctx, entry); err != nil {
			t.Fatalf("AddEntry: %v", err)
		}
	}

	entries, err := repo.History(ctx, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != historyKeep {
		t.Fatalf("got %d entries after pruning, want %d", len(entries), historyKeep)
	}
	// The oldest surviving entry is the 11th inserted.
	last := entries[len(entries)-1]
	if last.ID != "entry-0010" {
		t.Fatalf("oldest surviving entry is %q, want entry-0010", last.ID)
	}
}

func TestResearchSummaryTruncation(t *testing.T) {
	repo := newTestResearchRepo(t)
	ctx := context.Background()

	long := make([]byte, summaryMax+200)
	for i := range long {
		long[i] = 'x'
	}
	entry := &entities.ResearchEntry{
		ID:        "entry-long",
		Source:    "duckduckgo",
		Topic:     "long",
		Summary:   string(long),
		Timestamp: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.AddEntry(ctx, entry); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	entries, err := repo.History(ctx, 1)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 1 || len(entries[0].Summary) != summaryMax {
		t.Fatalf("summary length=%d, want %d", len(entries[0].Summary), summaryMax)
	}
}

func TestResearchSummaryTruncatesAtRuneBoundary(t *testing.T) {
	repo := newTestResearchRepo(t)
	ctx := context.Background()

	// "é" is two bytes; an odd-length ASCII prefix puts a rune astride
	// the byte cap.
	summary := strings.Repeat("x", summaryMax-1) + strings.Repeat("é", 100)
	entry := &entities.ResearchEntry{
		ID:        "entry-multibyte",
		Source:    "wikipedia",
		Topic:     "accents",
		Summary:   summary,
		Timestamp: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.AddEntry(ctx, entry); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	entries, err := repo.History(ctx, 1)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	got := entries[0].Summary
	if len(got) > summaryMax {
		t.Fatalf("summary length=%d, want <= %d", len(got), summaryMax)
	}
	if !utf8.ValidString(got) {
		t.Fatal("stored summary is not valid UTF-8")
	}
}

func TestBookmarksInsertionOrder(t *testing.T) {
	repo := newTestResearchRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	titles := []string{"first", "second", "third"}
	for i, title := range titles {
		b := &entities.Bookmark{
			ID:       fmt.Sprintf("bm-%d", i),
			Title:    title,
			URL:      "https://example.com/" + title,
			Category: "General",
			Added:    base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.AddBookmark(ctx, b); err != nil {
			t.Fatalf("AddBookmark: %v", err)
		}
	}

	bookmarks, err := repo.Bookmarks(ctx)
	if err != nil {
		t.Fatalf("Bookmarks: %v", err)
	}
	if len(bookmarks) != 3 {
		t.Fatalf("got %d bookmarks, want 3", len(bookmarks))
	}
	for i, title := range titles {
		if bookmarks[i].Title != title {
			t.Fatalf("bookmarks[%d]=%q, want %q", i, bookmarks[i].Title, title)
		}
	}
}
