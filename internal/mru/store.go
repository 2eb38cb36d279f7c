// Package mru keeps a most-recently-used list of item identifiers in an
// SQLite database. Entries are deduplicated by the case-folded projection
// of the identifier, so two byte-different identifiers naming the same item
// share one entry.
package mru

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
	// Pure-Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"

	"github.com/islandboy/idlist/internal/itemid"
)

// ErrNotFound is returned when no entry has the requested ID.
var ErrNotFound = errors.New("mru: entry not found")

// DefaultMaxEntries is the retention limit when Options.MaxEntries is zero.
const DefaultMaxEntries = 100

const (
	sqlUpsertEntry = `INSERT INTO entries (id, key, item, display, added_at, used_at, uses)
		VALUES (?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(key) DO UPDATE SET
		 item = excluded.item,
		 display = excluded.display,
		 used_at = excluded.used_at,
		 uses = entries.uses + 1
		RETURNING id, added_at, used_at, uses`

	sqlListEntries = `SELECT id, item, display, added_at, used_at, uses
		FROM entries ORDER BY used_at DESC, added_at DESC, id`

	sqlGetEntry = `SELECT id, item, display, added_at, used_at, uses
		FROM entries WHERE id = ?`

	sqlDeleteEntry = `DELETE FROM entries WHERE id = ?`

	sqlPruneEntries = `DELETE FROM entries WHERE id NOT IN (
		SELECT id FROM entries ORDER BY used_at DESC, added_at DESC, id LIMIT ?)`

	sqlMergeEntryByID = `UPDATE entries SET
		 used_at = max(used_at, ?),
		 uses = uses + ?
		WHERE id = ?`

	sqlImportEntry = `INSERT INTO entries (id, key, item, display, added_at, used_at, uses)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
		 used_at = max(entries.used_at, excluded.used_at),
		 uses = entries.uses + excluded.uses`
)

// Entry is one remembered identifier.
type Entry struct {
	ID      uuid.UUID
	Item    *itemid.List
	Display string
	AddedAt time.Time
	UsedAt  time.Time
	Uses    int
}

// Options configures a Store.
type Options struct {
	// MaxEntries bounds the list after every Push. Zero means
	// DefaultMaxEntries; negative disables pruning.
	MaxEntries int

	// Names resolves class names for projections. Nil projects GUIDs to
	// their braced strings.
	Names itemid.NameResolver

	Logger *slog.Logger
}

// Store is the MRU database. It is safe for concurrent use.
type Store struct {
	db         *sql.DB
	cmp        *itemid.Comparer
	maxEntries int
	logger     *slog.Logger
	nowFunc    func() time.Time
}

// Open opens (creating if needed) the store at path and applies pending
// migrations.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	maxEntries := opts.MaxEntries
	if maxEntries == 0 {
		maxEntries = DefaultMaxEntries
	}

	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)"+
			"&_pragma=busy_timeout(5000)",
		path,
	)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("mru: opening database %s: %w", path, err)
	}

	// Single writer keeps upsert-then-prune sequences serialized.
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db, logger); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("mru store opened", slog.String("db_path", path))

	return &Store{
		db:         db,
		cmp:        itemid.NewComparer(opts.Names, logger),
		maxEntries: maxEntries,
		logger:     logger,
		nowFunc:    time.Now,
	}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("mru: closing database: %w", err)
	}

	return nil
}

// dedupeKey hashes the case-folded projection of l. Records are separated
// by NUL, which no projection contains.
func (s *Store) dedupeKey(l *itemid.List) ([]byte, string) {
	parts := s.cmp.Projection(l)
	display := strings.Join(parts, `\`)

	sum := blake3.Sum256([]byte(itemid.FoldKey(strings.Join(parts, "\x00"))))

	return sum[:], display
}

// Push records a use of l. A new identifier is inserted at the front; one
// whose projection matches an existing entry refreshes that entry and
// replaces its stored bytes. The list is then pruned to MaxEntries.
func (s *Store) Push(ctx context.Context, l *itemid.List) (Entry, error) {
	if l == nil || l.Size() == 0 {
		return Entry{}, fmt.Errorf("mru: push: %w", itemid.ErrMalformed)
	}

	key, display := s.dedupeKey(l)
	now := s.nowFunc().UTC()

	var (
		id          string
		added, used int64
		uses        int
	)

	err := s.db.QueryRowContext(ctx, sqlUpsertEntry,
		uuid.NewString(), key, l, display, now.UnixNano(), now.UnixNano(),
	).Scan(&id, &added, &used, &uses)
	if err != nil {
		return Entry{}, fmt.Errorf("mru: upserting entry: %w", err)
	}

	entryID, err := uuid.Parse(id)
	if err != nil {
		return Entry{}, fmt.Errorf("mru: stored entry id %q: %w", id, err)
	}

	s.logger.Debug("mru push",
		slog.String("id", id),
		slog.String("display", display),
		slog.Int("uses", uses),
	)

	if _, err := s.Prune(ctx); err != nil {
		return Entry{}, err
	}

	return Entry{
		ID:      entryID,
		Item:    l.Clone(),
		Display: display,
		AddedAt: time.Unix(0, added).UTC(),
		UsedAt:  time.Unix(0, used).UTC(),
		Uses:    uses,
	}, nil
}

// List returns all entries, most recently used first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, sqlListEntries)
	if err != nil {
		return nil, fmt.Errorf("mru: listing entries: %w", err)
	}
	defer rows.Close()

	var out []Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mru: iterating entries: %w", err)
	}

	return out, nil
}

// Get returns the entry with the given ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Entry, error) {
	e, err := scanEntry(s.db.QueryRowContext(ctx, sqlGetEntry, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return e, err
}

// Remove deletes the entry with the given ID.
func (s *Store) Remove(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, sqlDeleteEntry, id.String())
	if err != nil {
		return fmt.Errorf("mru: deleting entry %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mru: deleting entry %s: %w", id, err)
	}

	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return nil
}

// Prune drops the least recently used entries beyond MaxEntries and
// returns how many were removed.
func (s *Store) Prune(ctx context.Context) (int, error) {
	if s.maxEntries < 0 {
		return 0, nil
	}

	res, err := s.db.ExecContext(ctx, sqlPruneEntries, s.maxEntries)
	if err != nil {
		return 0, fmt.Errorf("mru: pruning entries: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mru: pruning entries: %w", err)
	}

	if n > 0 {
		s.logger.Info("pruned mru entries", slog.Int64("removed", n))
	}

	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		id          string
		item        itemid.List
		e           Entry
		added, used int64
	)

	if err := row.Scan(&id, &item, &e.Display, &added, &used, &e.Uses); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}

		return Entry{}, fmt.Errorf("mru: scanning entry: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return Entry{}, fmt.Errorf("mru: stored entry id %q: %w", id, err)
	}

	e.ID = parsed
	e.Item = &item
	e.AddedAt = time.Unix(0, added).UTC()
	e.UsedAt = time.Unix(0, used).UTC()

	return e, nil
}
