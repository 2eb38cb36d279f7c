package config

import "os"

// Environment variable names for overrides.
const (
	EnvConfig = "IDLIST_CONFIG"
	EnvStore  = "IDLIST_STORE"
)

// EnvOverrides holds values derived from environment variables.
type EnvOverrides struct {
	ConfigPath string // IDLIST_CONFIG: override config file path
	StorePath  string // IDLIST_STORE: override MRU store path
}

// ReadEnvOverrides reads environment variables and returns any overrides
// found. It does not modify a Config; Resolve applies the fields.
func ReadEnvOverrides() EnvOverrides {
	return EnvOverrides{
		ConfigPath: os.Getenv(EnvConfig),
		StorePath:  os.Getenv(EnvStore),
	}
}
