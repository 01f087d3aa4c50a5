package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/twinbot/core/internal/domain/entities"
	"github.com/twinbot/core/internal/ports"
)

type fakeResearchRepo struct {
	entries   []entities.ResearchEntry
	bookmarks []entities.Bookmark
}

func (f *fakeResearchRepo) AddEntry(ctx context.Context, entry *entities.ResearchEntry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeResearchRepo) History(ctx context.Context, limit int) ([]entities.ResearchEntry, error) {
	out := make([]entities.ResearchEntry, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

func (f *fakeResearchRepo) AddBookmark(ctx context.Context, bookmark *entities.Bookmark) error {
	f.bookmarks = append(f.bookmarks, *bookmark)
	return nil
}

func (f *fakeResearchRepo) Bookmarks(ctx context.Context) ([]entities.Bookmark, error) {
	out := make([]entities.Bookmark, len(f.bookmarks))
	copy(out, f.bookmarks)
	return out, nil
}

func newResearchService(repo *fakeResearchRepo) *ResearchService {
	return NewResearchService(repo, nil, testLogger())
}

func TestNewsSources(t *testing.T) {
	svc := newResearchService(&fakeResearchRepo{})

	got := svc.NewsSources()
	sort.Strings(got)

	want := []string{"bbc", "espn", "reuters", "sciencedaily", "techcrunch"}
	if len(got) != len(want) {
		t.Fatalf("NewsSources returned %d sources, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sources[%d]=%q, want %q", i, got[i], want[i])
		}
	}
}

func TestHeadlinesUnknownSource(t *testing.T) {
	svc := newResearchService(&fakeResearchRepo{})

	_, err := svc.Headlines(context.Background(), "gossip-weekly")
	if !errors.Is(err, entities.ErrUnknownNewsSource) {
		t.Fatalf("Headlines error=%v, want ErrUnknownNewsSource", err)
	}
}

func TestWeatherWithoutCity(t *testing.T) {
	svc := newResearchService(&fakeResearchRepo{})

	got := svc.Weather(context.Background(), "")
	if got != "Set your city in profile for weather info" {
		t.Fatalf("Weather(\"\")=%q", got)
	}
}

func TestWikipediaSummaryWithoutTopic(t *testing.T) {
	svc := newResearchService(&fakeResearchRepo{})
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	got := svc.WikipediaSummary(context.Background(), "   ", now)
	if got != "Give me a topic to look up" {
		t.Fatalf("WikipediaSummary(blank)=%q", got)
	}
}

func TestAddBookmarkDefaultsCategory(t *testing.T) {
	repo := &fakeResearchRepo{}
	svc := newResearchService(repo)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	bookmark, err := svc.AddBookmark(context.Background(), ports.AddBookmarkRequest{
		Title: "Go blog",
		URL:   "https://go.dev/blog",
	}, now)
	if err != nil {
		t.Fatalf("AddBookmark: %v", err)
	}
	if bookmark.Category != "General" {
		t.Errorf("Category=%q, want %q", bookmark.Category, "General")
	}
	if bookmark.ID == "" {
		t.Error("bookmark ID is empty")
	}
	if !bookmark.Added.Equal(now) {
		t.Errorf("Added=%v, want %v", bookmark.Added, now)
	}
	if len(repo.bookmarks) != 1 {
		t.Fatalf("stored %d bookmarks, want 1", len(repo.bookmarks))
	}
}
