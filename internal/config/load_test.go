package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidFullConfig(t *testing.T) {
	path := writeTestConfig(t, `
log_level = "debug"
log_format = "json"
date_format = "02 Jan 2006"
store_path = "/var/lib/idlist/mru.db"
mru_max_entries = 25

[class_names]
"{20D04FE0-3AEA-1069-A2D8-08002B30309D}" = "This PC"

[file_types]
go = "Go Source File"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "02 Jan 2006", cfg.DateFormat)
	assert.Equal(t, "/var/lib/idlist/mru.db", cfg.StorePath)
	assert.Equal(t, 25, cfg.MRUMaxEntries)
	assert.Equal(t, "This PC", cfg.ClassNames["{20D04FE0-3AEA-1069-A2D8-08002B30309D}"])
	assert.Equal(t, "Go Source File", cfg.FileTypes["go"])
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeTestConfig(t, `log_level = "error"`))
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "auto", cfg.LogFormat)
	assert.Equal(t, 100, cfg.MRUMaxEntries)
}

func TestLoad_InvalidTOML(t *testing.T) {
	_, err := Load(writeTestConfig(t, `log_level = `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoad_ValidationErrorsAccumulate(t *testing.T) {
	_, err := Load(writeTestConfig(t, `
log_level = "loud"
mru_max_entries = 0
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "mru_max_entries")
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestResolve_Precedence(t *testing.T) {
	path := writeTestConfig(t, `store_path = "/from/file.db"`)

	r, err := Resolve(EnvOverrides{ConfigPath: path}, CLIOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "/from/file.db", r.StorePath)
	assert.Equal(t, path, r.Path)

	r, err = Resolve(EnvOverrides{ConfigPath: path, StorePath: "/from/env.db"}, CLIOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", r.StorePath)

	cliStore := "/from/cli.db"
	r, err = Resolve(
		EnvOverrides{ConfigPath: "/ignored.toml", StorePath: "/from/env.db"},
		CLIOverrides{ConfigPath: path, StorePath: &cliStore},
	)
	require.NoError(t, err)
	assert.Equal(t, "/from/cli.db", r.StorePath)
	assert.Equal(t, path, r.Path)
}

func TestResolve_DefaultStorePath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")

	r, err := Resolve(EnvOverrides{ConfigPath: filepath.Join(t.TempDir(), "none.toml")}, CLIOverrides{})
	require.NoError(t, err)
	assert.Equal(t, DefaultStorePath(), r.StorePath)
}

func TestResolve_ExpandsTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store := "~/idlist.db"
	r, err := Resolve(EnvOverrides{ConfigPath: filepath.Join(home, "none.toml")}, CLIOverrides{StorePath: &store})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "idlist.db"), r.StorePath)
}

func TestResolve_RelativeStoreRejected(t *testing.T) {
	store := "relative.db"

	_, err := Resolve(EnvOverrides{ConfigPath: filepath.Join(t.TempDir(), "none.toml")}, CLIOverrides{StorePath: &store})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be absolute")
}

func TestResolve_BadFile(t *testing.T) {
	path := writeTestConfig(t, `log_levle = "debug"`)

	_, err := Resolve(EnvOverrides{ConfigPath: path}, CLIOverrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "log_level"`)
}
