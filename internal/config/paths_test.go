package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDir_NonEmpty(t *testing.T) {
	dir := DefaultConfigDir()
	assert.NotEmpty(t, dir)
	assert.True(t, strings.Contains(dir, appName))
}

func TestDefaultConfigPath_EndsWithConfigToml(t *testing.T) {
	assert.True(t, strings.HasSuffix(DefaultConfigPath(), "config.toml"))
}

func TestDefaultStorePath_EndsWithDB(t *testing.T) {
	path := DefaultStorePath()
	assert.True(t, strings.HasSuffix(path, filepath.Join(appName, "mru.db")))
}

func TestDefaultDirs_LinuxXDG(t *testing.T) {
	if runtime.GOOS != platformLinux {
		t.Skip("Linux-only test")
	}

	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	assert.Equal(t, "/xdg/config/idlist", DefaultConfigDir())
	assert.Equal(t, "/xdg/data/idlist", DefaultDataDir())
}

func TestDefaultDirs_LinuxFallback(t *testing.T) {
	if runtime.GOOS != platformLinux {
		t.Skip("Linux-only test")
	}

	t.Setenv("HOME", "/home/testuser")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")

	assert.Equal(t, "/home/testuser/.config/idlist", DefaultConfigDir())
	assert.Equal(t, "/home/testuser/.local/share/idlist", DefaultDataDir())
}

func TestDefaultConfigDir_MacOS(t *testing.T) {
	if runtime.GOOS != platformDarwin {
		t.Skip("macOS-only test")
	}

	assert.Contains(t, DefaultConfigDir(), "Library/Application Support")
}

func TestExpandTilde(t *testing.T) {
	t.Setenv("HOME", "/home/testuser")

	tests := map[string]string{
		"~/data/mru.db": "/home/testuser/data/mru.db",
		"~":             "/home/testuser",
		"/abs/mru.db":   "/abs/mru.db",
		"~other/x":      "~other/x",
		"rel/x":         "rel/x",
	}

	for in, want := range tests {
		require.Equal(t, want, expandTilde(in), in)
	}
}
