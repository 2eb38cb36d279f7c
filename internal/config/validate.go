package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation range constants.
const (
	minMRUEntries = 1
	maxMRUEntries = 10_000
)

// Validate checks all configuration values and returns all errors found,
// so users can fix every issue in one pass.
func Validate(cfg *Config) error {
	var errs []error

	errs = append(errs, validateLogging(&cfg.LoggingConfig)...)
	errs = append(errs, validateDisplay(&cfg.DisplayConfig)...)
	errs = append(errs, validateStore(&cfg.StoreConfig)...)
	errs = append(errs, validateClassNames(cfg.ClassNames)...)
	errs = append(errs, validateFileTypes(cfg.FileTypes)...)

	return errors.Join(errs...)
}

func validateLogging(l *LoggingConfig) []error {
	var errs []error

	errs = append(errs, validateLogLevel(l.LogLevel)...)
	errs = append(errs, validateLogFormat(l.LogFormat)...)

	return errs
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func validateLogLevel(level string) []error {
	if !validLogLevels[level] {
		return []error{fmt.Errorf("log_level: must be one of debug, info, warn, error; got %q", level)}
	}

	return nil
}

var validLogFormats = map[string]bool{
	"auto": true,
	"text": true,
	"json": true,
}

func validateLogFormat(format string) []error {
	if !validLogFormats[format] {
		return []error{fmt.Errorf("log_format: must be one of auto, text, json; got %q", format)}
	}

	return nil
}

// dateProbe is formatted with date_format to detect layouts without any
// time element.
var dateProbe = time.Date(2001, time.February, 3, 4, 5, 6, 0, time.UTC)

func validateDisplay(d *DisplayConfig) []error {
	if d.DateFormat == "" {
		return []error{errors.New("date_format: must not be empty")}
	}

	if dateProbe.Format(d.DateFormat) == d.DateFormat {
		return []error{fmt.Errorf("date_format: %q contains no Go time layout elements", d.DateFormat)}
	}

	return nil
}

func validateStore(s *StoreConfig) []error {
	if s.MRUMaxEntries < minMRUEntries || s.MRUMaxEntries > maxMRUEntries {
		return []error{fmt.Errorf("mru_max_entries: must be between %d and %d, got %d",
			minMRUEntries, maxMRUEntries, s.MRUMaxEntries)}
	}

	return nil
}

func validateClassNames(names map[string]string) []error {
	var errs []error

	for key, name := range names {
		if _, err := uuid.Parse(strings.TrimSpace(key)); err != nil {
			errs = append(errs, fmt.Errorf("class_names: %q is not a GUID", key))
		}

		if name == "" {
			errs = append(errs, fmt.Errorf("class_names: %q has an empty name", key))
		}
	}

	return errs
}

func validateFileTypes(types map[string]string) []error {
	var errs []error

	for ext, desc := range types {
		trimmed := strings.TrimPrefix(ext, ".")
		if trimmed == "" || strings.ContainsAny(trimmed, `. \`) {
			errs = append(errs, fmt.Errorf("file_types: %q is not a file extension", ext))
		}

		if desc == "" {
			errs = append(errs, fmt.Errorf("file_types: %q has an empty description", ext))
		}
	}

	return errs
}
