// Package config implements TOML configuration loading, validation, and
// platform-specific path resolution for idlist. Values are layered as
// defaults -> config file -> environment -> CLI flags.
package config

// Config is the top-level configuration structure parsed from a TOML file.
// The embedded sections are flat top-level keys; ClassNames and FileTypes
// are the only tables.
type Config struct {
	LoggingConfig
	DisplayConfig
	StoreConfig

	// ClassNames overlays the built-in class name table. Keys are GUIDs,
	// braced or bare.
	ClassNames map[string]string `toml:"class_names"`

	// FileTypes overlays the built-in extension table. Keys are extensions
	// without the leading dot.
	FileTypes map[string]string `toml:"file_types"`
}

// LoggingConfig controls log output: level and handler format.
type LoggingConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// DisplayConfig controls how record metadata is rendered.
type DisplayConfig struct {
	DateFormat string `toml:"date_format"`
}

// StoreConfig locates and bounds the most-recently-used store.
type StoreConfig struct {
	StorePath     string `toml:"store_path"`
	MRUMaxEntries int    `toml:"mru_max_entries"`
}

// CLIOverrides holds values from CLI flags that override the config file
// and environment. Pointer fields distinguish "not specified" (nil) from an
// explicit empty value.
type CLIOverrides struct {
	ConfigPath string  // --config flag (empty = use default)
	StorePath  *string // --store flag
}
