package mru

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/islandboy/idlist/internal/itemid"
)

// exportVersion is bumped when the export layout changes incompatibly.
const exportVersion = 1

// ErrExportVersion is returned by Import for files written by an
// incompatible version.
var ErrExportVersion = errors.New("mru: unsupported export version")

// exportFile is the CBOR document written by Export. Integer keys keep the
// encoding compact and stable across field renames.
type exportFile struct {
	Version int           `cbor:"1,keyasint"`
	Entries []exportEntry `cbor:"2,keyasint"`
}

// exportEntry carries the identifier in the length-prefixed stream form so
// the file can be read back with itemid.Read.
type exportEntry struct {
	ID      []byte    `cbor:"1,keyasint"`
	Item    []byte    `cbor:"2,keyasint"`
	AddedAt time.Time `cbor:"3,keyasint"`
	UsedAt  time.Time `cbor:"4,keyasint"`
	Uses    int       `cbor:"5,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano

	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("mru: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("mru: CBOR decoder initialization failed: " + err.Error())
	}
}

// Export writes every entry to w as a single CBOR document.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	entries, err := s.List(ctx)
	if err != nil {
		return err
	}

	doc := exportFile{Version: exportVersion, Entries: make([]exportEntry, 0, len(entries))}

	for _, e := range entries {
		var item bytes.Buffer
		if err := itemid.Write(&item, e.Item); err != nil {
			return fmt.Errorf("mru: exporting entry %s: %w", e.ID, err)
		}

		doc.Entries = append(doc.Entries, exportEntry{
			ID:      e.ID[:],
			Item:    item.Bytes(),
			AddedAt: e.AddedAt,
			UsedAt:  e.UsedAt,
			Uses:    e.Uses,
		})
	}

	if err := encMode.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("mru: encoding export: %w", err)
	}

	s.logger.Info("exported mru entries", slog.Int("count", len(doc.Entries)))

	return nil
}

// Import merges the entries of an Export document into the store. Entries
// whose ID or projection already exists have their use counts added and
// keep the later use time. It returns the number of entries read.
func (s *Store) Import(ctx context.Context, r io.Reader) (int, error) {
	var doc exportFile
	if err := decMode.NewDecoder(r).Decode(&doc); err != nil {
		return 0, fmt.Errorf("mru: decoding import: %w", err)
	}

	if doc.Version != exportVersion {
		return 0, fmt.Errorf("%w: %d", ErrExportVersion, doc.Version)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("mru: beginning import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for i, e := range doc.Entries {
		id, err := uuid.FromBytes(e.ID)
		if err != nil {
			return 0, fmt.Errorf("mru: import entry %d: %w", i, err)
		}

		item, err := itemid.Read(bytes.NewReader(e.Item))
		if err != nil {
			return 0, fmt.Errorf("mru: import entry %d: %w", i, err)
		}

		if item == nil {
			return 0, fmt.Errorf("mru: import entry %d: %w", i, itemid.ErrMalformed)
		}

		if err := s.importEntry(ctx, tx, id, item, e); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("mru: committing import: %w", err)
	}

	s.logger.Info("imported mru entries", slog.Int("count", len(doc.Entries)))

	if _, err := s.Prune(ctx); err != nil {
		return len(doc.Entries), err
	}

	return len(doc.Entries), nil
}

// importEntry merges e into the row with the same ID, which may carry a
// stale key when class names changed since the export. Otherwise it inserts
// e, merging on the projection key.
func (s *Store) importEntry(ctx context.Context, tx *sql.Tx, id uuid.UUID, item *itemid.List, e exportEntry) error {
	uses := max(e.Uses, 1)

	res, err := tx.ExecContext(ctx, sqlMergeEntryByID, e.UsedAt.UnixNano(), uses, id.String())
	if err != nil {
		return fmt.Errorf("mru: merging entry %s: %w", id, err)
	}

	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("mru: merging entry %s: %w", id, err)
	} else if n > 0 {
		return nil
	}

	key, display := s.dedupeKey(item)

	if _, err := tx.ExecContext(ctx, sqlImportEntry,
		id.String(), key, item, display,
		e.AddedAt.UnixNano(), e.UsedAt.UnixNano(), uses,
	); err != nil {
		return fmt.Errorf("mru: importing entry %s: %w", id, err)
	}

	return nil
}
