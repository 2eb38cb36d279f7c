package config

// Default values for configuration options.
const (
	defaultLogLevel      = "warn"
	defaultLogFormat     = "auto"
	defaultDateFormat    = "2006-01-02 15:04"
	defaultMRUMaxEntries = 100
)

// DefaultConfig returns a Config populated with all default values. It is
// the starting point for TOML decoding, so unset fields keep their
// defaults. StorePath stays empty until Resolve fills in the data
// directory.
func DefaultConfig() *Config {
	return &Config{
		LoggingConfig: LoggingConfig{
			LogLevel:  defaultLogLevel,
			LogFormat: defaultLogFormat,
		},
		DisplayConfig: DisplayConfig{
			DateFormat: defaultDateFormat,
		},
		StoreConfig: StoreConfig{
			MRUMaxEntries: defaultMRUMaxEntries,
		},
		ClassNames: make(map[string]string),
		FileTypes:  make(map[string]string),
	}
}
