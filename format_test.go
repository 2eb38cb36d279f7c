package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAge(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"minutes", now.Add(-3 * time.Minute), "3 minutes ago"},
		{"days", now.Add(-2 * 24 * time.Hour), "2 days ago"},
		{"older than a week", time.Date(2024, time.December, 25, 8, 0, 0, 0, time.UTC), "2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, formatAge(tt.t, "2006-01-02", now), tt.want)
		})
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer

	headers := []string{"NAME", "SIZE", "MODIFIED"}
	rows := [][]string{
		{"file.txt", "1 KB", "2024-01-15 10:30"},
		{"folder", "", ""},
	}

	printTable(&buf, headers, rows)

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 3)

	assert.Equal(t, "NAME      SIZE  MODIFIED", string(lines[0]))
	assert.Equal(t, "file.txt  1 KB  2024-01-15 10:30", string(lines[1]))
	assert.Equal(t, "folder", string(lines[2]), "trailing padding is trimmed")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, printJSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}
