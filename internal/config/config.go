package config

import (
	"os"
	"strconv"
)

// Config holds application configuration from environment variables.
type Config struct {
	Port      int
	DBPath    string
	DataDir   string // Directory holding the schedule CSV tables
	GraphPath string // Location of the serialized graph snapshot

	ImportData bool // CLI flag: force schedule re-import
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:      envInt("RAILPLAN_PORT", 8080),
		DBPath:    envStr("RAILPLAN_DB_PATH", "./railplan.db"),
		DataDir:   envStr("RAILPLAN_DATA_DIR", "./data"),
		GraphPath: envStr("RAILPLAN_GRAPH_PATH", "./data/railplan-graph.gob"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
