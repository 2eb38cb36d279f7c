package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_UnknownKey_TopLevel(t *testing.T) {
	_, err := Load(writeTestConfig(t, `unknown_section = "value"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
}

func TestLoad_UnknownKey_Typo(t *testing.T) {
	_, err := Load(writeTestConfig(t, "mru_max_entrys = 5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "mru_max_entries"`)
}

func TestLoad_UnknownKey_NoSuggestion(t *testing.T) {
	_, err := Load(writeTestConfig(t, "completely_unrelated_key = true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestLoad_UnknownTable(t *testing.T) {
	_, err := Load(writeTestConfig(t, "[class_name]\nx = \"y\"\nz = \"w\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown config table "class_name"`)
	assert.Contains(t, err.Error(), `did you mean "class_names"`)
	assert.Equal(t, 1, strings.Count(err.Error(), "class_name\""), "reported once")
}

func TestLoad_UnknownKeys_AllReported(t *testing.T) {
	_, err := Load(writeTestConfig(t, "log_levle = \"info\"\ndate_fromat = \"2006\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "log_level"`)
	assert.Contains(t, err.Error(), `did you mean "date_format"`)
}

func TestConfigKeys(t *testing.T) {
	assert.Equal(t, []string{"date_format", "log_format", "log_level", "mru_max_entries", "store_path"}, scalarKeys)
	assert.Equal(t, []string{"class_names", "file_types"}, tableKeys)
}

func TestLoad_TableEntriesAreNotUnknown(t *testing.T) {
	_, err := Load(writeTestConfig(t, "[file_types]\nanything_at_all = \"Some Type\"\n"))
	require.NoError(t, err)
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"log_levle", "log_level", 2},
		{"kitten", "sitting", 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, levenshtein(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestClosestMatch(t *testing.T) {
	assert.Equal(t, "store_path", closestMatch("stor_path", scalarKeys))
	assert.Equal(t, "file_types", closestMatch("filetypes", tableKeys))
	assert.Empty(t, closestMatch("zzzzzzzzzzzz", scalarKeys))
}
