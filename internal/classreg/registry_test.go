package classreg

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandboy/idlist/internal/itemid"
)

func TestNew_Builtins(t *testing.T) {
	r, err := New(nil, nil)
	require.NoError(t, err)

	name, err := r.ClassName(itemid.CLSIDMyComputer)
	require.NoError(t, err)
	assert.Equal(t, "My Computer", name)

	name, err = r.ClassName(itemid.CLSIDShellDesktop)
	require.NoError(t, err)
	assert.Equal(t, "Desktop", name)

	desc, ok := r.Describe("TXT")
	require.True(t, ok)
	assert.Equal(t, "Text Document", desc)
}

func TestClassName_Unknown(t *testing.T) {
	r, err := New(nil, nil)
	require.NoError(t, err)

	_, err = r.ClassName(uuid.MustParse("11111111-2222-3333-4444-555555555555"))
	require.ErrorIs(t, err, ErrUnknownClass)
	assert.Contains(t, err.Error(), "{11111111-2222-3333-4444-555555555555}")
}

func TestNew_Overlay(t *testing.T) {
	r, err := New(
		map[string]string{
			"{20D04FE0-3AEA-1069-A2D8-08002B30309D}": "This PC",
			"11111111-2222-3333-4444-555555555555":   "Custom",
		},
		map[string]string{".GO": "Go Source", "txt": "Plain Text"},
	)
	require.NoError(t, err)

	name, err := r.ClassName(itemid.CLSIDMyComputer)
	require.NoError(t, err)
	assert.Equal(t, "This PC", name)

	name, err = r.ClassName(uuid.MustParse("11111111-2222-3333-4444-555555555555"))
	require.NoError(t, err)
	assert.Equal(t, "Custom", name)

	desc, ok := r.Describe("go")
	require.True(t, ok)
	assert.Equal(t, "Go Source", desc)

	desc, _ = r.Describe(".txt")
	assert.Equal(t, "Plain Text", desc)

	_, ok = r.Describe("unknownext")
	assert.False(t, ok)
}

func TestNew_BadGUIDs(t *testing.T) {
	_, err := New(map[string]string{"not-a-guid": "x", "also bad": "y"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-guid")
	assert.Contains(t, err.Error(), "also bad")
}

func TestNew_DoesNotMutateBuiltins(t *testing.T) {
	_, err := New(map[string]string{"{645FF040-5081-101B-9F08-00AA002F954E}": "Trash"}, nil)
	require.NoError(t, err)

	r, err := New(nil, nil)
	require.NoError(t, err)

	name, _ := r.ClassName(itemid.CLSIDRecycleBin)
	assert.Equal(t, "Recycle Bin", name)
}

func TestLookup(t *testing.T) {
	r, err := New(nil, nil)
	require.NoError(t, err)

	id, ok := r.Lookup("recycle bin")
	require.True(t, ok)
	assert.Equal(t, itemid.CLSIDRecycleBin, id)

	_, ok = r.Lookup("nowhere")
	assert.False(t, ok)
}

func TestClasses_Sorted(t *testing.T) {
	r, err := New(nil, nil)
	require.NoError(t, err)

	entries := r.Classes()
	require.Len(t, entries, 8)
	assert.Equal(t, "Control Panel", entries[0].Name)
	assert.Equal(t, "Recycle Bin", entries[len(entries)-1].Name)
}

func TestRegistry_DrivesComparer(t *testing.T) {
	r, err := New(nil, nil)
	require.NoError(t, err)

	c := itemid.NewComparer(r, nil)
	root, _ := itemid.NewDesktop().First()
	assert.Equal(t, "Desktop", c.Text(root))

	assert.Equal(t, "Text Document", itemid.TypeDescription(mustFile(t, "a.TXT"), r))
}

func mustFile(t *testing.T, name string) *itemid.List {
	t.Helper()

	l, err := itemid.NewFile(itemid.FileInfo{Name: name})
	require.NoError(t, err)

	return l
}
