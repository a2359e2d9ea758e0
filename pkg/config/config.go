// Package config gathers runtime settings from the environment.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// DefaultEnvPaths are searched in order; the first existing file is loaded.
var DefaultEnvPaths = []string{".env", "../.env", "../../.env"}

// Config holds every setting the server and tools read
type Config struct {
	Port            string
	GinMode         string
	DatabaseURL     string
	DataPath        string
	JWTSecret       string
	APIMasterSecret string
	AdminUsername   string
	AdminPassword   string
	LogLevel        string
}

// LoadEnv loads the first .env file found. Variables already set in the
// process environment win over the file.
func LoadEnv(paths ...string) (string, error) {
	if len(paths) == 0 {
		paths = DefaultEnvPaths
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, godotenv.Load(p)
		}
	}
	return "", nil
}

// Load reads the environment, applying defaults for unset values
func Load() Config {
	return Config{
		Port:            getenv("PORT", "8000"),
		GinMode:         os.Getenv("GIN_MODE"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DataPath:        getenv("DATA_PATH", "api_keys.db"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		APIMasterSecret: os.Getenv("API_MASTER_SECRET"),
		AdminUsername:   getenv("ADMIN_USERNAME", "admin"),
		AdminPassword:   getenv("ADMIN_PASSWORD", "admin123"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
