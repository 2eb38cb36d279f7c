package fsmeta

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/islandboy/idlist/internal/itemid"
)

// DirList returns a complex list of name-only folder records for every
// component of the absolute form of dir. The filesystem root yields the
// desktop root.
func DirList(dir string) (*itemid.List, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("fsmeta: resolving %s: %w", dir, err)
	}

	l := itemid.NewDesktop()

	rel := strings.TrimPrefix(abs, filepath.VolumeName(abs))
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if part == "" {
			continue
		}

		rec, err := NameOnly(part, true)
		if err != nil {
			return nil, err
		}

		l = itemid.Combine(l, rec)
	}

	return l, nil
}

// PathList returns the full list for path: its ancestors as name-only
// folders followed by a metadata record for path itself.
func PathList(path string) (*itemid.List, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("fsmeta: resolving %s: %w", path, err)
	}

	parent, err := DirList(filepath.Dir(abs))
	if err != nil {
		return nil, err
	}

	leaf, err := NewRecord(abs)
	if err != nil {
		return nil, err
	}

	return itemid.Combine(parent, leaf), nil
}
