// Package config loads handrunner configuration from the environment.
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// CameraID is the capture device index.
	CameraID int
	// DBPath is the SQLite score database path.
	DBPath string
	// MotionThreshold is the percentage of changed pixels that counts as
	// motion for the inference gate.
	MotionThreshold float64
	// NoCamera disables the webcam pipeline entirely; the game is then
	// playable by touch and keyboard only.
	NoCamera bool
	// Rich enables the visually rich client variant.
	Rich bool
	// StaticDir is the browser client directory, empty to skip serving it.
	StaticDir string
}

// Load reads configuration from a .env file (if present) and the
// environment, falling back to defaults for anything unset.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return Config{
		Addr:            getString("HANDRUNNER_ADDR", ":8080"),
		CameraID:        getInt("HANDRUNNER_CAMERA_ID", 0),
		DBPath:          getString("HANDRUNNER_DB_PATH", defaultDBPath()),
		MotionThreshold: getFloat("HANDRUNNER_MOTION_THRESHOLD", 1.0),
		NoCamera:        getBool("HANDRUNNER_NO_CAMERA", false),
		Rich:            getBool("HANDRUNNER_RICH", true),
		StaticDir:       getString("HANDRUNNER_STATIC_DIR", ""),
	}
}

// defaultDBPath is ~/.handrunner/handrunner.db, or a relative path when
// the home directory cannot be determined.
func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "handrunner.db"
	}
	return filepath.Join(homeDir, ".handrunner", "handrunner.db")
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using %f", key, v, fallback)
		return fallback
	}
	return f
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}
