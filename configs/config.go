package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr      string
	GraphBaseURL    string
	GraphVersion    string
	UpstreamTimeout time.Duration
	StateDir        string
	RelayURL        string
	FrontendURL     string
}

func LoadConfig() *Config {
	return &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":3000"),
		GraphBaseURL:    getEnv("GRAPH_BASE_URL", "https://graph.facebook.com"),
		GraphVersion:    getEnv("GRAPH_VERSION", "v19.0"),
		UpstreamTimeout: getDurationSeconds("UPSTREAM_TIMEOUT", 30),
		StateDir:        getEnv("STATE_DIR", ".pageflow"),
		RelayURL:        getEnv("RELAY_URL", "http://localhost:3000"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationSeconds(key string, defaultValue int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(defaultValue) * time.Second
}
