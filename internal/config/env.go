package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvRoot       = "DOCREFS_ROOT"
	EnvRedirects  = "DOCREFS_REDIRECTS"
	EnvNavigation = "DOCREFS_NAVIGATION"
	EnvLogLevel   = "DOCREFS_LOG_LEVEL"
)

// loadEnvFile loads .env and .env.local from the working directory when
// present. Existing process environment variables are not overwritten.
func loadEnvFile() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvRoot); v != "" {
		cfg.Root = v
	}
	if v := os.Getenv(EnvRedirects); v != "" {
		cfg.RedirectsFile = v
	}
	if v := os.Getenv(EnvNavigation); v != "" {
		cfg.NavigationFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = LogLevel(v)
	}
}
