// Package config provides application configuration loaded from defaults,
// an optional YAML file, and PENGUIN_* environment variables, in increasing
// order of precedence.
//
// Usage:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    slog.Error("failed to load config", "error", err)
//	    os.Exit(1)
//	}
//
// Environment variables follow the envconfig convention, for example
// PENGUIN_PATHS_OUTPUT_DIR or PENGUIN_LOGGING_LEVEL.
package config
