package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	APIURL      string
	HTTPTimeout time.Duration
	Debounce    time.Duration
	// Session persistence
	SessionBackend string // memory | file | redis
	SessionFile    string
	SessionTTL     time.Duration
	RedisURL       string
}

func Load() Config {
	return Config{
		APIURL:         getenv("PARLEY_API_URL", "http://localhost:8080"),
		HTTPTimeout:    time.Duration(getenvInt("PARLEY_HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
		Debounce:       time.Duration(getenvInt("PARLEY_SEARCH_DEBOUNCE_MS", 250)) * time.Millisecond,
		SessionBackend: getenv("PARLEY_SESSION_BACKEND", "file"),
		SessionFile:    getenv("PARLEY_SESSION_FILE", defaultSessionFile()),
		SessionTTL:     time.Duration(getenvInt("PARLEY_SESSION_TTL_SECONDS", 0)) * time.Second,
		RedisURL:       getenv("REDIS_URL", "redis://localhost:6379/0"),
	}
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".parley-session.json"
	}
	return home + "/.parley-session.json"
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
