package mru

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandboy/idlist/internal/itemid"
)

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t, 0)

	a, err := src.Push(ctx, filePath(t, "C", "docs", "a.txt"))
	require.NoError(t, err)
	_, err = src.Push(ctx, itemid.NewControlPanel())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, src.Export(ctx, &buf))

	dst := newTestStore(t, 0)

	n, err := dst.Import(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	want, err := src.List(ctx)
	require.NoError(t, err)
	got, err := dst.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(want))

	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Item.Bytes(), got[i].Item.Bytes())
		assert.Equal(t, want[i].Display, got[i].Display)
		assert.True(t, want[i].UsedAt.Equal(got[i].UsedAt))
	}

	// Importing into a store that already has the entry merges use counts.
	n, err = dst.Import(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	merged, err := dst.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, merged.Uses)
}

func TestExport_Empty(t *testing.T) {
	s := newTestStore(t, 0)

	var buf bytes.Buffer
	require.NoError(t, s.Export(context.Background(), &buf))

	var doc exportFile
	require.NoError(t, cbor.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, exportVersion, doc.Version)
	assert.Empty(t, doc.Entries)
}

func TestImport_Errors(t *testing.T) {
	ctx := context.Background()

	badVersion, err := cbor.Marshal(exportFile{Version: 99})
	require.NoError(t, err)

	badItem, err := cbor.Marshal(exportFile{
		Version: exportVersion,
		Entries: []exportEntry{{ID: make([]byte, 16), Item: []byte{4, 0, 1, 2, 3, 4}}},
	})
	require.NoError(t, err)

	absentItem, err := cbor.Marshal(exportFile{
		Version: exportVersion,
		Entries: []exportEntry{{ID: make([]byte, 16), Item: []byte{0, 0}}},
	})
	require.NoError(t, err)

	badID, err := cbor.Marshal(exportFile{
		Version: exportVersion,
		Entries: []exportEntry{{ID: []byte{1, 2}, Item: []byte{2, 0, 0, 0}}},
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"garbage", []byte{0xFF, 0x00}, nil},
		{"version", badVersion, ErrExportVersion},
		{"malformed item", badItem, itemid.ErrMalformed},
		{"absent item", absentItem, itemid.ErrMalformed},
		{"bad id", badID, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, 0)

			_, err := s.Import(ctx, bytes.NewReader(tt.data))
			require.Error(t, err)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}

			entries, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, entries, "failed import must not leave entries")
		})
	}
}

// Renaming a class changes the projection key of stored entries. Importing
// an older export into the same store must still merge by ID.
func TestImport_SameIDAfterClassRename(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "mru.db")
	item := itemid.Combine(itemid.NewMyComputer(), itemid.NewDrive("C"))

	s, err := Open(ctx, path, Options{})
	require.NoError(t, err)

	pushed, err := s.Push(ctx, item)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Export(ctx, &buf))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path, Options{Names: fixedNames{itemid.CLSIDMyComputer: "Computer"}})
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Import(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, pushed.ID, entries[0].ID)
	assert.Equal(t, 2, entries[0].Uses)
}
