// Package store handles SQLite persistence of per-word statistics.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/verte-zerg/typedojo/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrStore wraps every persistence failure.
var ErrStore = errors.New("store error")

// WordStatsStore is the persistence contract for saved word statistics.
type WordStatsStore interface {
	Get(ctx context.Context, word string) (model.SavedWordStats, bool, error)
	Put(ctx context.Context, rec model.SavedWordStats) error
	List(ctx context.Context) ([]model.SavedWordStats, error)
	Delete(ctx context.Context, word string) error
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// Store wraps SQLite access for saved words.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ WordStatsStore = (*Store)(nil)

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, wrap("create db directory", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrap("open db", err)
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY
	// between recorder workers.
	db.SetMaxOpenConns(1)
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS saved_words (
			word TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			starred INTEGER NOT NULL DEFAULT 0,
			seen INTEGER NOT NULL DEFAULT 0,
			correctly_typed INTEGER NOT NULL DEFAULT 0,
			wrongly_typed INTEGER NOT NULL DEFAULT 0,
			last_seen_ms INTEGER NOT NULL DEFAULT 0,
			journal_description TEXT NOT NULL DEFAULT '',
			journal_tags TEXT NOT NULL DEFAULT '[]',
			created_at_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_saved_words_starred ON saved_words(starred);`,
		`CREATE INDEX IF NOT EXISTS idx_saved_words_last_seen ON saved_words(last_seen_ms);`,
		`CREATE INDEX IF NOT EXISTS idx_saved_words_created_at ON saved_words(created_at_ms);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return wrap("migrate", err)
		}
	}
	return nil
}

const selectColumns = `word, payload, starred, seen, correctly_typed, wrongly_typed, last_seen_ms,
	journal_description, journal_tags, created_at_ms`

// Get returns the record for word, reporting false when none exists.
func (s *Store) Get(ctx context.Context, word string) (model.SavedWordStats, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM saved_words WHERE word = ?`, word)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SavedWordStats{}, false, nil
	}
	if err != nil {
		return model.SavedWordStats{}, false, wrap("get word", err)
	}
	return rec, true, nil
}

// Put inserts or replaces the record keyed by its word text. The creation
// time of an existing record is kept; a new record without one gets now.
func (s *Store) Put(ctx context.Context, rec model.SavedWordStats) error {
	if rec.Word.Text == "" {
		return wrap("put word", errors.New("word text is empty"))
	}
	payload, err := json.Marshal(rec.Word)
	if err != nil {
		return wrap("encode word", err)
	}
	tags := rec.Journal.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return wrap("encode tags", err)
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO saved_words (word, payload, starred, seen, correctly_typed, wrongly_typed, last_seen_ms,
			journal_description, journal_tags, created_at_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(word) DO UPDATE SET
			payload = excluded.payload,
			starred = excluded.starred,
			seen = excluded.seen,
			correctly_typed = excluded.correctly_typed,
			wrongly_typed = excluded.wrongly_typed,
			last_seen_ms = excluded.last_seen_ms,
			journal_description = excluded.journal_description,
			journal_tags = excluded.journal_tags`,
		rec.Word.Text,
		string(payload),
		rec.Stats.Starred,
		rec.Stats.Seen,
		rec.Stats.CorrectlyTyped,
		rec.Stats.WronglyTyped,
		toMillis(rec.Stats.LastSeen),
		rec.Journal.Description,
		string(tagsJSON),
		toMillis(createdAt),
	)
	if err != nil {
		return wrap("put word", err)
	}
	return nil
}

// List returns every record, newest first.
func (s *Store) List(ctx context.Context) ([]model.SavedWordStats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM saved_words ORDER BY created_at_ms DESC, word ASC`)
	if err != nil {
		return nil, wrap("list words", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.SavedWordStats
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, wrap("scan word", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list words", err)
	}
	return result, nil
}

// Delete removes the record for word. Missing words are not an error.
func (s *Store) Delete(ctx context.Context, word string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM saved_words WHERE word = ?`, word); err != nil {
		return wrap("delete word", err)
	}
	return nil
}

// Clear removes every record.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM saved_words`); err != nil {
		return wrap("clear words", err)
	}
	return nil
}

// Count returns the number of records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM saved_words`).Scan(&n); err != nil {
		return 0, wrap("count words", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (model.SavedWordStats, error) {
	var (
		rec        model.SavedWordStats
		word       string
		payload    string
		tagsJSON   string
		lastSeenMs int64
		createdMs  int64
	)
	if err := row.Scan(&word, &payload, &rec.Stats.Starred, &rec.Stats.Seen, &rec.Stats.CorrectlyTyped,
		&rec.Stats.WronglyTyped, &lastSeenMs, &rec.Journal.Description, &tagsJSON, &createdMs); err != nil {
		return model.SavedWordStats{}, err
	}
	if err := json.Unmarshal([]byte(payload), &rec.Word); err != nil {
		return model.SavedWordStats{}, fmt.Errorf("failed to decode word %q: %w", word, err)
	}
	rec.Word.Text = word
	if err := json.Unmarshal([]byte(tagsJSON), &rec.Journal.Tags); err != nil {
		return model.SavedWordStats{}, fmt.Errorf("failed to decode tags for %q: %w", word, err)
	}
	rec.Stats.LastSeen = fromMillis(lastSeenMs)
	rec.CreatedAt = fromMillis(createdMs)
	return rec, nil
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func wrap(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", ErrStore, op, err)
}
