// Package config carries the runtime configuration of the dashboard
// process. Values come from defaults overridden by RENEWDASH_-prefixed
// environment variables; the entrypoint loads a .env file first so a
// local deployment can keep them next to the binary.
package config

import "os"

type Config struct {
	// Addr is the listen address of the web dashboard.
	Addr string
	// Password guards the dashboard login. Empty disables login
	// entirely, which is only sensible behind a trusted proxy.
	Password string
	// DataPath is the JSON document holding accounts and settings.
	DataPath string
	// LogPath receives the flushed dashboard log buffer.
	LogPath string
}

func Default() *Config {
	return &Config{
		Addr:     ":8210",
		DataPath: "data/data.json",
		LogPath:  "data/dashboard.log",
	}
}

// Load builds the runtime config from defaults and environment
// overrides.
func Load() *Config {
	cfg := Default()
	applyEnvOverrides(cfg)
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	envMap := map[string]*string{
		"RENEWDASH_ADDR":     &cfg.Addr,
		"RENEWDASH_PASSWORD": &cfg.Password,
		"RENEWDASH_DATA":     &cfg.DataPath,
		"RENEWDASH_LOG":      &cfg.LogPath,
	}
	for env, ptr := range envMap {
		if val := os.Getenv(env); val != "" {
			*ptr = val
		}
	}
}
