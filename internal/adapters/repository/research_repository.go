package repository

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"

	"github.com/twinbot/core/internal/domain/entities"
	"github.com/twinbot/core/internal/infrastructure/database"
)

// historyKeep caps the research history; older entries are pruned on
// insert.
const historyKeep = 100

// summaryMax bounds stored lookup summaries.
const summaryMax = 500

// ResearchRepository persists research history and bookmarks in the
// embedded SQLite database.
type ResearchRepository struct {
	db *sqlx.DB
}

// NewResearchRepository creates a new research repository.
func NewResearchRepository(db *database.DB) *ResearchRepository {
	return &ResearchRepository{db: db.DB}
}

type researchRow struct {
	ID        string `db:"id"`
	Source    string `db:"source"`
	Topic     string `db:"topic"`
	Summary   string `db:"summary"`
	URL       string `db:"url"`
	Timestamp string `db:"timestamp"`
}

type bookmarkRow struct {
	ID       string `db:"id"`
	Title    string `db:"title"`
	URL      string `db:"url"`
	Category string `db:"category"`
	Added    string `db:"added"`
}

// AddEntry appends a lookup to the history and prunes everything beyond
// the newest historyKeep entries.
func (r *ResearchRepository) AddEntry(ctx context.Context, entry *entities.ResearchEntry) error {
	summary := entry.Summary
	if len(summary) > summaryMax {
		cut := summaryMax
		// Back up to a rune boundary so the stored tail stays valid UTF-8.
		for cut > 0 && !utf8.RuneStart(summary[cut]) {
			cut--
		}
		summary = summary[:cut]
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO research_history (id, source, topic, summary, url, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Source, entry.Topic, summary, entry.URL,
		entry.Timestamp.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert research entry: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`DELETE FROM research_history
		 WHERE id NOT IN (
		   SELECT id FROM research_history ORDER BY timestamp DESC, id DESC LIMIT ?
		 )`,
		historyKeep,
	)
	if err != nil {
		return fmt.Errorf("failed to prune research history: %w", err)
	}
	return nil
}

// History returns the newest entries first, up to limit.
func (r *ResearchRepository) History(ctx context.Context, limit int) ([]entities.ResearchEntry, error) {
	if limit <= 0 || limit > historyKeep {
		limit = historyKeep
	}

	var rows []researchRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, source, topic, summary, url, timestamp
		 FROM research_history
		 ORDER BY timestamp DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query research history: %w", err)
	}

	entries := make([]entities.ResearchEntry, 0, len(rows))
	for _, row := range rows {
		ts, err := time.Parse(time.RFC3339, row.Timestamp)
		if err != nil {
			// skip the one unreadable row, keep the rest
			continue
		}
		entries = append(entries, entities.ResearchEntry{
			ID:        row.ID,
			Source:    row.Source,
			Topic:     row.Topic,
			Summary:   row.Summary,
			URL:       row.URL,
			Timestamp: ts,
		})
	}
	return entries, nil
}

// AddBookmark saves a bookmark.
func (r *ResearchRepository) AddBookmark(ctx context.Context, bookmark *entities.Bookmark) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookmarks (id, title, url, category, added)
		 VALUES (?, ?, ?, ?, ?)`,
		bookmark.ID, bookmark.Title, bookmark.URL, bookmark.Category,
		bookmark.Added.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert bookmark: %w", err)
	}
	return nil
}

// Bookmarks returns all bookmarks in insertion order.
func (r *ResearchRepository) Bookmarks(ctx context.Context) ([]entities.Bookmark, error) {
	var rows []bookmarkRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, title, url, category, added FROM bookmarks ORDER BY added ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookmarks: %w", err)
	}

	bookmarks := make([]entities.Bookmark, 0, len(rows))
	for _, row := range rows {
		added, err := time.Parse(time.RFC3339, row.Added)
		if err != nil {
			continue
		}
		bookmarks = append(bookmarks, entities.Bookmark{
			ID:       row.ID,
			Title:    row.Title,
			URL:      row.URL,
			Category: row.Category,
			Added:    added,
		})
	}
	return bookmarks, nil
}
