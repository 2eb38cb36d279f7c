package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// configFilePermissions is the permission mode for config files.
const configFilePermissions = 0o644

// configDirPermissions is the permission mode for config directories.
const configDirPermissions = 0o755

// Table names that SetTableEntry and DeleteTableEntry edit.
const (
	TableClassNames = "class_names"
	TableFileTypes  = "file_types"
)

// configTemplate is the config file content written by "config init".
// Every setting is present as a commented-out default so users can
// discover the options without reading docs.
const configTemplate = `# idlist configuration

# Log verbosity: debug, info, warn, error
# log_level = "warn"

# Log handler: auto, text, json
# log_format = "auto"

# Go time layout for record dates
# date_format = "2006-01-02 15:04"

# Most-recently-used store location and size
# store_path = ""
# mru_max_entries = 100

# Display names for class identifiers, e.g.
# "{20D04FE0-3AEA-1069-A2D8-08002B30309D}" = "This PC"
[class_names]

# Descriptions for file extensions, e.g.
# "go" = "Go Source File"
[file_types]
`

// ErrConfigExists is returned by CreateConfig when the file is present.
var ErrConfigExists = errors.New("config file already exists")

// CreateConfig writes the default template to path. It refuses to replace
// an existing file.
func CreateConfig(path string, logger *slog.Logger) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	logger.Info("creating config file", slog.String("path", path))

	return atomicWriteFile(path, []byte(configTemplate))
}

// SetTableEntry sets key = value inside [table], replacing an existing line
// for key or inserting one after the table header. The table is appended
// when missing and the file is created from the template when absent.
// Comments and unrelated lines are preserved.
func SetTableEntry(path, table, key, value string, logger *slog.Logger) error {
	logger.Info("setting config table entry",
		slog.String("path", path),
		slog.String("table", table),
		slog.String("key", key),
		slog.String("value", value),
	)

	content, err := readOrTemplate(path)
	if err != nil {
		return err
	}

	lines := strings.Split(content, "\n")
	newLine := fmt.Sprintf("%q = %q", key, value)

	headerLine := findTableHeader(lines, table)
	if headerLine < 0 {
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}

		lines = append(lines, "", "["+table+"]", newLine, "")
	} else {
		lines = setKeyInTable(lines, headerLine, key, newLine)
	}

	return atomicWriteFile(path, []byte(strings.Join(lines, "\n")))
}

// DeleteTableEntry removes key from [table]. It reports whether the key
// was present.
func DeleteTableEntry(path, table, key string, logger *slog.Logger) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading config file: %w", err)
	}

	lines := strings.Split(string(data), "\n")

	headerLine := findTableHeader(lines, table)
	if headerLine < 0 {
		return false, nil
	}

	i := findKeyLine(lines, headerLine, key)
	if i < 0 {
		return false, nil
	}

	logger.Info("deleting config table entry",
		slog.String("path", path),
		slog.String("table", table),
		slog.String("key", key),
	)

	lines = append(lines[:i], lines[i+1:]...)

	return true, atomicWriteFile(path, []byte(strings.Join(lines, "\n")))
}

func readOrTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return configTemplate, nil
	}

	if err != nil {
		return "", fmt.Errorf("reading config file: %w", err)
	}

	return string(data), nil
}

// findTableHeader returns the line index of [table], or -1.
func findTableHeader(lines []string, table string) int {
	header := "[" + table + "]"

	for i, line := range lines {
		if strings.TrimSpace(line) == header {
			return i
		}
	}

	return -1
}

// findTableEnd returns the index of the next table header after
// headerLine, or len(lines).
func findTableEnd(lines []string, headerLine int) int {
	for i := headerLine + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "[") {
			return i
		}
	}

	return len(lines)
}

// findKeyLine returns the line index of key within the table starting at
// headerLine. Keys may be bare or quoted.
func findKeyLine(lines []string, headerLine int, key string) int {
	end := findTableEnd(lines, headerLine)
	candidates := []string{key, fmt.Sprintf("%q", key)}

	for i := headerLine + 1; i < end; i++ {
		trimmed := strings.TrimSpace(lines[i])

		for _, c := range candidates {
			rest, ok := strings.CutPrefix(trimmed, c)
			if ok && strings.HasPrefix(strings.TrimSpace(rest), "=") {
				return i
			}
		}
	}

	return -1
}

// setKeyInTable either replaces an existing key line or inserts a new one
// after the table header.
func setKeyInTable(lines []string, headerLine int, key, newLine string) []string {
	if i := findKeyLine(lines, headerLine, key); i >= 0 {
		lines[i] = newLine
		return lines
	}

	inserted := make([]string, 0, len(lines)+1)
	inserted = append(inserted, lines[:headerLine+1]...)
	inserted = append(inserted, newLine)
	inserted = append(inserted, lines[headerLine+1:]...)

	return inserted
}

// atomicWriteFile writes data to a temporary file in the same directory as
// path, then renames it over path. Parent directories are created as
// needed.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, configDirPermissions); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tempPath := f.Name()

	succeeded := false
	defer func() {
		if !succeeded {
			os.Remove(tempPath)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()

		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tempPath, configFilePermissions); err != nil {
		return fmt.Errorf("setting file permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	succeeded = true

	return nil
}
