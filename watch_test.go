package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandboy/idlist/internal/changenotify"
	"github.com/islandboy/idlist/internal/fsmeta"
	"github.com/islandboy/idlist/internal/itemid"
	"github.com/islandboy/idlist/internal/mru"
)

func watchEvents(t *testing.T, dir string, kinds ...changenotify.Kind) <-chan changenotify.Event {
	t.Helper()

	ch := make(chan changenotify.Event, len(kinds))

	for i, k := range kinds {
		name := []string{"a.txt", "b.txt", "c.txt"}[i]

		item, err := fsmeta.NameOnly(name, false)
		require.NoError(t, err)

		ch <- changenotify.Event{Kind: k, Path: filepath.Join(dir, name), Item: item}
	}

	close(ch)

	return ch
}

func TestConsumeEvents_Text(t *testing.T) {
	dir := t.TempDir()
	cc := &CLIContext{Logger: slog.New(slog.DiscardHandler)}

	var buf bytes.Buffer
	err := consumeEvents(context.Background(), watchEvents(t, dir, changenotify.Created, changenotify.Removed),
		itemid.NewDesktop(), nil, cc, &buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	fields := strings.Split(lines[0], "\t")
	require.Len(t, fields, 3)
	assert.Equal(t, "created", fields[0])
	assert.Equal(t, filepath.Join(dir, "a.txt"), fields[1])
	assert.NotEmpty(t, fields[2])

	assert.True(t, strings.HasPrefix(lines[1], "removed\t"))
}

func TestConsumeEvents_JSON(t *testing.T) {
	dir := t.TempDir()
	cc := &CLIContext{Flags: CLIFlags{JSON: true}, Logger: slog.New(slog.DiscardHandler)}

	var buf bytes.Buffer
	err := consumeEvents(context.Background(), watchEvents(t, dir, changenotify.Modified),
		itemid.NewDesktop(), nil, cc, &buf)
	require.NoError(t, err)

	var ev watchEvent
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, "modified", ev.Kind)
	assert.Equal(t, filepath.Join(dir, "b.txt"), ev.Path)
}

func TestConsumeEvents_RecordsFullPath(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := mru.Open(ctx, filepath.Join(t.TempDir(), "mru.db"), mru.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	parent, err := fsmeta.DirList(dir)
	require.NoError(t, err)

	cc := &CLIContext{Logger: slog.New(slog.DiscardHandler)}

	err = consumeEvents(ctx,
		watchEvents(t, dir, changenotify.Created, changenotify.Modified, changenotify.Removed),
		parent, store, cc, &bytes.Buffer{})
	require.NoError(t, err)

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2, "removals are not recorded")

	cmp := itemid.NewComparer(nil, nil)
	for _, e := range entries {
		assert.True(t, cmp.IsParent(parent, e.Item, true), e.Display)
	}
}

func TestWatchCmd_MissingDir(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, nil, "watch", filepath.Join(env.dir, "nope"))
	require.Error(t, err)
}

func TestWatchStop_NoWatcher(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, nil, "watch", "stop")
	require.Error(t, err)
}

func TestWatchLockPath(t *testing.T) {
	assert.Equal(t, "/data/mru.db.watch.lock", watchLockPath("/data/mru.db"))
}

func TestConsumeEvents_RecordsAfterCancel(t *testing.T) {
	dir := t.TempDir()

	store, err := mru.Open(context.Background(), filepath.Join(t.TempDir(), "mru.db"), mru.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cc := &CLIContext{Logger: slog.New(slog.DiscardHandler)}

	err = consumeEvents(ctx, watchEvents(t, dir, changenotify.Created, changenotify.Modified),
		itemid.NewDesktop(), store, cc, &bytes.Buffer{})
	require.NoError(t, err)

	entries, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2, "queued events are recorded after shutdown begins")
}
