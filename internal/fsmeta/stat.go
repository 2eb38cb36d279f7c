package fsmeta

import (
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/islandboy/idlist/internal/itemid"
)

// Stat returns the record metadata for path without following a final
// symlink. ShortName is left empty; callers pick the alias sequence.
func Stat(path string) (itemid.FileInfo, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return itemid.FileInfo{}, fmt.Errorf("fsmeta: stat %s: %w", path, err)
	}

	return fromFileInfo(filepath.Base(path), info), nil
}

// fromFileInfo maps info onto record metadata under the given name.
func fromFileInfo(name string, info fs.FileInfo) itemid.FileInfo {
	name = norm.NFC.String(name)
	mtime := info.ModTime()

	fi := itemid.FileInfo{
		Name:       name,
		Attributes: attributes(name, info.Mode()),
		ModTime:    mtime,
		Created:    mtime,
		Accessed:   accessTime(info),
	}

	if info.Mode().IsRegular() {
		// The record size field is 32 bits wide.
		fi.Size = min(info.Size(), math.MaxUint32)
	}

	// Names the narrow code page would mangle keep their exact spelling in
	// the wide-name extension.
	fi.ExtendedName = !itemid.NarrowLossless(name)

	return fi
}

func attributes(name string, mode fs.FileMode) itemid.Attr {
	var a itemid.Attr

	if mode.IsDir() {
		a |= itemid.AttrDirectory
	}

	if mode.IsRegular() {
		a |= itemid.AttrArchive
	}

	if mode.Perm()&0o200 == 0 {
		a |= itemid.AttrReadOnly
	}

	if strings.HasPrefix(name, ".") {
		a |= itemid.AttrHidden
	}

	if a == 0 {
		a = itemid.AttrNormal
	}

	return a
}

// NewRecord returns a simple list describing path, using the first short
// name alias when one is needed.
func NewRecord(path string) (*itemid.List, error) {
	fi, err := Stat(path)
	if err != nil {
		return nil, err
	}

	fi.ShortName = ShortName(fi.Name, 1)

	l, err := itemid.NewFile(fi)
	if err != nil {
		return nil, fmt.Errorf("fsmeta: building record for %s: %w", path, err)
	}

	return l, nil
}

// NameOnly returns a record carrying just a name, for entries that no
// longer exist on disk.
func NameOnly(name string, dir bool) (*itemid.List, error) {
	fi := itemid.FileInfo{Name: norm.NFC.String(name)}
	if dir {
		fi.Attributes = itemid.AttrDirectory
	}

	fi.ExtendedName = !itemid.NarrowLossless(fi.Name)

	l, err := itemid.NewFile(fi)
	if err != nil {
		return nil, fmt.Errorf("fsmeta: building name record for %q: %w", name, err)
	}

	return l, nil
}
