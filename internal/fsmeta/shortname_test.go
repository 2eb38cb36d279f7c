package fsmeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortName(t *testing.T) {
	tests := []struct {
		name string
		seq  int
		want string
	}{
		{"report.txt", 1, "REPORT~1.TXT"},
		{"report.txt", 2, "REPORT~2.TXT"},
		{"report.txt", 12, "REPOR~12.TXT"},
		{"My Document.docx", 1, "MYDOCU~1.DOC"},
		{".bashrc", 1, "BASHRC~1"},
		{"a+b=c.tar.gz", 1, "A_B_CT~1.GZ"},
		{"日本.txt", 1, "__~1.TXT"},
		{"...", 1, "_~1"},
		{"x", 0, "X~1"},

		// Already valid 8.3 names need no alias.
		{"README.TXT", 1, ""},
		{"MAKEFILE", 1, ""},
		{"A-B_C.1", 1, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ShortName(tt.name, tt.seq), "%q seq %d", tt.name, tt.seq)
	}
}

func TestIsShortName(t *testing.T) {
	valid := []string{"A", "ABCDEFGH.TXT", "FILE~1.C", "$RECYCLE"}
	invalid := []string{"", "abc", "ABCDEFGHI", "A.TEXT", "A.B.C", "A.", "~A", "A B"}

	for _, n := range valid {
		assert.True(t, isShortName(n), n)
	}

	for _, n := range invalid {
		assert.False(t, isShortName(n), n)
	}
}

func TestUniqueShortName(t *testing.T) {
	used := map[string]bool{}

	assert.Equal(t, "REPORT~1.TXT", uniqueShortName("report one.txt", used))
	assert.Equal(t, "REPORT~2.TXT", uniqueShortName("report two.txt", used))
	assert.Empty(t, uniqueShortName("NOTES.TXT", used))
	assert.Equal(t, "NOTES~1.TXT", uniqueShortName("notes.txt", used))
}
