package fsmeta

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/islandboy/idlist/internal/itemid"
)

// DefaultWorkers bounds concurrent stat calls when callers pass zero.
const DefaultWorkers = 8

// ReadDir returns one simple list per entry of dir, sorted by name. Entries
// are stat'ed concurrently by up to workers goroutines. Entries removed
// between the directory read and the stat are skipped. Generated short
// name aliases are numbered per directory and never repeat.
func ReadDir(ctx context.Context, dir string, workers int, logger *slog.Logger) ([]*itemid.List, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if workers <= 0 {
		workers = DefaultWorkers
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fsmeta: reading directory %s: %w", dir, err)
	}

	infos := make([]*itemid.FileInfo, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, entry := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			info, err := entry.Info()
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("entry vanished before stat",
					slog.String("path", filepath.Join(dir, entry.Name())))

				return nil
			}

			if err != nil {
				return fmt.Errorf("fsmeta: stat %s: %w", filepath.Join(dir, entry.Name()), err)
			}

			fi := fromFileInfo(entry.Name(), info)
			infos[i] = &fi

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Real 8.3 names are reserved before any alias is generated.
	used := make(map[string]bool, len(infos))

	for _, fi := range infos {
		if fi != nil && isShortName(fi.Name) {
			used[fi.Name] = true
		}
	}

	lists := make([]*itemid.List, 0, len(infos))

	for _, fi := range infos {
		if fi == nil {
			continue
		}

		fi.ShortName = uniqueShortName(fi.Name, used)

		l, err := itemid.NewFile(*fi)
		if err != nil {
			logger.Warn("skipping entry",
				slog.String("name", fi.Name), slog.String("error", err.Error()))

			continue
		}

		lists = append(lists, l)
	}

	logger.Debug("directory listed",
		slog.String("dir", dir), slog.Int("entries", len(lists)))

	return lists, nil
}

// uniqueShortName returns the first alias for name not in used and marks
// it. Names that are already 8.3 get no alias.
func uniqueShortName(name string, used map[string]bool) string {
	for seq := 1; ; seq++ {
		alias := ShortName(name, seq)
		if alias == "" {
			return ""
		}

		if !used[alias] {
			used[alias] = true
			return alias
		}
	}
}
