package fsmeta

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandboy/idlist/internal/itemid"
)

func writeFile(t *testing.T, dir, name string, size int, mtime time.Time) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	return path
}

func TestStat_RegularFile(t *testing.T) {
	mtime := time.Date(2024, time.May, 4, 10, 20, 30, 0, time.UTC)
	path := writeFile(t, t.TempDir(), "report.txt", 4096, mtime)

	fi, err := Stat(path)
	require.NoError(t, err)

	assert.Equal(t, "report.txt", fi.Name)
	assert.Equal(t, int64(4096), fi.Size)
	assert.True(t, fi.ModTime.Equal(mtime))
	assert.Equal(t, itemid.AttrArchive, fi.Attributes)
	assert.False(t, fi.ExtendedName)
	assert.Empty(t, fi.ShortName)
}

func TestStat_Directory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".cache")
	require.NoError(t, os.Mkdir(dir, 0o755))

	fi, err := Stat(dir)
	require.NoError(t, err)

	assert.Equal(t, itemid.AttrDirectory|itemid.AttrHidden, fi.Attributes)
	assert.Zero(t, fi.Size)
}

func TestStat_ReadOnly(t *testing.T) {
	path := writeFile(t, t.TempDir(), "locked.bin", 1, time.Now())
	require.NoError(t, os.Chmod(path, 0o444))

	fi, err := Stat(path)
	require.NoError(t, err)
	assert.Equal(t, itemid.AttrArchive|itemid.AttrReadOnly, fi.Attributes)
}

func TestStat_WideName(t *testing.T) {
	path := writeFile(t, t.TempDir(), "snow ☃.txt", 1, time.Now())

	fi, err := Stat(path)
	require.NoError(t, err)
	assert.True(t, fi.ExtendedName)
}

func TestStat_Missing(t *testing.T) {
	_, err := Stat(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewRecord(t *testing.T) {
	mtime := time.Date(2024, time.May, 4, 10, 20, 30, 0, time.UTC)
	path := writeFile(t, t.TempDir(), "snow ☃ report.txt", 2048, mtime)

	l, err := NewRecord(path)
	require.NoError(t, err)

	r, ok := l.First()
	require.True(t, ok)
	assert.True(t, r.IsValue())

	short, _ := r.ShortName()
	assert.Equal(t, "SNOW_R~1.TXT", short)

	got, _ := r.ModTime()
	assert.True(t, got.Equal(mtime))

	ext, ok := r.Extended()
	require.True(t, ok)
	assert.Equal(t, "snow ☃ report.txt", ext.Name)
}

func TestNameOnly(t *testing.T) {
	l, err := NameOnly("gone.txt", false)
	require.NoError(t, err)

	r, _ := l.First()
	assert.True(t, r.IsValue())

	name, _ := r.Name()
	assert.Equal(t, "gone.txt", name)

	_, ok := r.ModTime()
	assert.False(t, ok)

	l, err = NameOnly("olddir", true)
	require.NoError(t, err)

	r, _ = l.First()
	assert.True(t, r.IsFolder())
}
