package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr       string
	DBPath         string
	SecretKey      string
	SessionBackend string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SessionTTL     time.Duration
	CookieSecure   bool
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set win over the file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:       getenv("HTTP_ADDR", "0.0.0.0:5000"),
		DBPath:         getenv("DB_PATH", "points.db"),
		SecretKey:      getenv("SECRET_KEY", "dev-secret"),
		SessionBackend: getenv("SESSION_BACKEND", "memory"),
		RedisAddr:      getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:  getenv("REDIS_PASSWORD", ""),
		RedisDB:        getenvInt("REDIS_DB", 0),
		SessionTTL:     getenvDuration("SESSION_TTL", 0),
		CookieSecure:   getenvBool("COOKIE_SECURE", false),
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
