package fsmeta

import (
	"strconv"
	"strings"
)

const (
	shortBaseMax = 8
	shortExtMax  = 3
)

// ShortName returns the 8.3 alias for name with the given collision
// sequence, e.g. ShortName("report.txt", 1) is "REPORT~1.TXT". It returns
// "" when name is already a valid upper-case 8.3 name and needs no alias.
// Sequences below 1 are treated as 1.
func ShortName(name string, seq int) string {
	if isShortName(name) {
		return ""
	}

	seq = max(seq, 1)

	base, ext := name, ""
	if dot := strings.LastIndexByte(name, '.'); dot > 0 {
		base, ext = name[:dot], name[dot+1:]
	}

	base = cleanShort(base)
	ext = cleanShort(ext)

	if base == "" {
		base = "_"
	}

	suffix := "~" + strconv.Itoa(seq)
	keep := max(shortBaseMax-len(suffix), 1)

	if len(base) > keep {
		base = base[:keep]
	}

	if len(ext) > shortExtMax {
		ext = ext[:shortExtMax]
	}

	alias := base + suffix
	if ext != "" {
		alias += "." + ext
	}

	return alias
}

// isShortName reports whether name already is a valid upper-case 8.3 name.
func isShortName(name string) bool {
	base, ext, hasDot := strings.Cut(name, ".")
	if base == "" || len(base) > shortBaseMax || len(ext) > shortExtMax {
		return false
	}

	if hasDot && (ext == "" || strings.Contains(ext, ".")) {
		return false
	}

	for i := range len(name) {
		c := name[i]
		if c == '.' {
			continue
		}

		if !isShortChar(c) || (c == '~' && i == 0) {
			return false
		}
	}

	return true
}

// cleanShort upper-cases s, drops spaces and dots, and replaces characters
// outside the 8.3 alphabet with '_'.
func cleanShort(s string) string {
	var sb strings.Builder

	for _, r := range s {
		switch {
		case r == ' ' || r == '.':
			continue
		case r < 0x80 && isShortChar(upperASCII(byte(r))):
			sb.WriteByte(upperASCII(byte(r)))
		default:
			sb.WriteByte('_')
		}
	}

	return sb.String()
}

func isShortChar(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	return strings.IndexByte("!#$%&'()-@^_`{}~", c) >= 0
}

func upperASCII(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}

	return c
}
