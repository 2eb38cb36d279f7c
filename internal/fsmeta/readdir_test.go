package fsmeta

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDir(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	writeFile(t, dir, "report one.txt", 10, now)
	writeFile(t, dir, "report two.txt", 20, now)
	writeFile(t, dir, "README.TXT", 30, now)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	lists, err := ReadDir(context.Background(), dir, 2, nil)
	require.NoError(t, err)
	require.Len(t, lists, 4)

	type row struct {
		name, short string
		folder      bool
	}

	var rows []row

	for _, l := range lists {
		require.True(t, l.IsSimple())

		r, _ := l.First()
		name, _ := r.Name()
		short, _ := r.ShortName()
		rows = append(rows, row{name, short, r.IsFolder()})
	}

	assert.Equal(t, []row{
		{"README.TXT", "", false},
		{"report one.txt", "REPORT~1.TXT", false},
		{"report two.txt", "REPORT~2.TXT", false},
		{"sub", "SUB~1", true},
	}, rows)
}

func TestReadDir_Empty(t *testing.T) {
	lists, err := ReadDir(context.Background(), t.TempDir(), 0, nil)
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestReadDir_Missing(t *testing.T) {
	_, err := ReadDir(context.Background(), filepath.Join(t.TempDir(), "nope"), 1, nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadDir_Canceled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", 1, time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadDir(ctx, dir, 1, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestReadDir_AliasSkipsRealShortNames(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	// "ABCDEFGHI" sorts first and would otherwise take ABCDEF~1.
	writeFile(t, dir, "ABCDEFGHI", 1, now)
	writeFile(t, dir, "ABCDEF~1", 1, now)

	lists, err := ReadDir(context.Background(), dir, 1, nil)
	require.NoError(t, err)
	require.Len(t, lists, 2)

	shorts := map[string]string{}

	for _, l := range lists {
		r, _ := l.First()
		name, _ := r.Name()
		short, _ := r.ShortName()
		shorts[name] = short
	}

	assert.Equal(t, map[string]string{"ABCDEFGHI": "ABCDEF~2", "ABCDEF~1": ""}, shorts)
}
