package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port            string
	Env             string
	LogLevel        string
	StaticDir       string
	AllowedOrigin   string
	ShutdownTimeout time.Duration

	// Gemini AI
	GeminiAPIKey string
	GeminiModel  string
	GeminiAPIURL string
	GeminiClient string
}

const (
	ClientREST = "rest"
	ClientSDK  = "sdk"
)

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:            getEnvOrDefault("PORT", "3000"),
		Env:             getEnvOrDefault("ENV", "development"),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		StaticDir:       getEnvOrDefault("STATIC_DIR", "public"),
		AllowedOrigin:   getEnvOrDefault("ALLOWED_ORIGIN", "*"),
		ShutdownTimeout: getEnvAsDurationOrDefault("SHUTDOWN_TIMEOUT", 30*time.Second),
		// A missing key is reported per request, not at startup.
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiAPIURL: getEnvOrDefault("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1"),
		GeminiClient: getEnvOrDefault("GEMINI_CLIENT", ClientREST),
	}

	if cfg.GeminiClient != ClientSDK {
		cfg.GeminiClient = ClientREST
	}

	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

// getEnvAsDurationOrDefault accepts Go durations ("45s") or bare seconds ("45").
func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if n := getEnvAsIntOrDefault(key, -1); n >= 0 {
		return time.Duration(n) * time.Second
	}
	return defaultVal
}
