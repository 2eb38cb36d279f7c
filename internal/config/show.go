package config

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// RenderEffective writes the resolved configuration as an annotated
// summary to w. This powers the "config show" command.
func RenderEffective(r *Resolved, w io.Writer) error {
	ew := &errWriter{w: w}

	ew.printf("# Effective configuration (file: %s)\n\n", r.Path)

	renderLoggingSection(ew, &r.LoggingConfig)
	renderDisplaySection(ew, &r.DisplayConfig)
	renderStoreSection(ew, &r.StoreConfig)
	renderTable(ew, "class_names", r.ClassNames)
	renderTable(ew, "file_types", r.FileTypes)

	return ew.err
}

// errWriter wraps an io.Writer and captures the first write error.
// Subsequent writes after an error are no-ops.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}

	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func renderLoggingSection(ew *errWriter, l *LoggingConfig) {
	ew.printf("# logging\n")
	ew.printf("log_level       = %q\n", l.LogLevel)
	ew.printf("log_format      = %q\n", l.LogFormat)
	ew.printf("\n")
}

func renderDisplaySection(ew *errWriter, d *DisplayConfig) {
	ew.printf("# display\n")
	ew.printf("date_format     = %q\n", d.DateFormat)
	ew.printf("\n")
}

func renderStoreSection(ew *errWriter, s *StoreConfig) {
	ew.printf("# store\n")
	ew.printf("store_path      = %q\n", s.StorePath)
	ew.printf("mru_max_entries = %d\n", s.MRUMaxEntries)
}

// renderTable writes a TOML table with keys in sorted order. Empty tables
// are omitted.
func renderTable(ew *errWriter, name string, entries map[string]string) {
	if len(entries) == 0 {
		return
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	width := 0
	for _, k := range keys {
		width = max(width, len(fmt.Sprintf("%q", k)))
	}

	ew.printf("\n[%s]\n", name)

	for _, k := range keys {
		quoted := fmt.Sprintf("%q", k)
		ew.printf("%s%s = %q\n", quoted, strings.Repeat(" ", width-len(quoted)), entries[k])
	}
}
