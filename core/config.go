package core

import (
	"os"
	"strconv"
)

// Config holds runtime settings for the server process.
type Config struct {
	Port        string // HTTP listen port (e.g., "3000")
	DataDir     string // directory holding secret, config.json, login.json
	LogDir      string // directory to write application logs
	HashWorkers int    // goroutines reserved for password hashing
}

// Load populates Config from environment variables with sane defaults.
func Load() Config {
	return Config{
		Port:        firstNonEmpty(os.Getenv("PORT"), "3000"),
		DataDir:     firstNonEmpty(os.Getenv("DATA_DIR"), "."),
		LogDir:      firstNonEmpty(os.Getenv("LOG_DIR"), "./log"),
		HashWorkers: intFromEnv("HASH_WORKERS", 2),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// intFromEnv reads an int from env var name, falling back to defaultVal when empty or invalid.
func intFromEnv(name string, defaultVal int) int {
	if v := os.Getenv(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
