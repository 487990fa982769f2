// Package config loads runtime configuration from the environment, with
// a .env file as an optional local override.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port string
	// DataDir is the root directory for the database and stored images.
	DataDir string
	// DBPath is the SQLite database file. Defaults to cabslip.db under
	// DataDir.
	DBPath string
	// ImageDir is where uploaded logos and signatures are stored.
	// Defaults to images/ under DataDir.
	ImageDir string
}

// Load reads configuration from environment variables. A .env file in
// the working directory is loaded first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "data")

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		DataDir:  dataDir,
		DBPath:   getEnv("DB_PATH", filepath.Join(dataDir, "cabslip.db")),
		ImageDir: getEnv("IMAGE_DIR", filepath.Join(dataDir, "images")),
	}
	return cfg, nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
