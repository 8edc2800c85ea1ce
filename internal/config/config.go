package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the service reads from the environment.
type Config struct {
	ListenAddress  string
	OracleIdentity string
	EscrowAccount  string
	DatabasePath   string
	LogLevel       string
	LogFile        string
	ErrorFile      string
	LogConsole     bool
	SweepInterval  time.Duration
}

func Load() Config {
	// A missing .env file is fine in production, variables come from the
	// process environment there.
	_ = godotenv.Load()

	return Config{
		ListenAddress:  getenv("LISTEN_ADDRESS", ":8080"),
		OracleIdentity: getenv("ORACLE_IDENTITY", ""),
		EscrowAccount:  getenv("ESCROW_ACCOUNT", "raffled:escrow"),
		DatabasePath:   getenv("DATABASE_PATH", "persistent.db"),
		LogLevel:       getenv("LOG_LEVEL", "debug"),
		LogFile:        getenv("LOG_FILE", ""),
		ErrorFile:      getenv("ERROR_FILE", ""),
		LogConsole:     getbool("LOG_CONSOLE", true),
		SweepInterval:  getduration("SWEEP_INTERVAL", 30*time.Second),
	}
}

func getenv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getduration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
