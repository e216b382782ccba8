package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	ListenAddr    string
	DataDir       string
	LogDir        string
	BaseYear      int
	Iterations    int
	Confidence    float64
	MaxParallel   int
	Seed          int64
	ScenariosFile string
}

// Load loads the configuration from .env files and environment variables.
// Zero values for the numeric knobs mean "use the planner defaults".
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for deployments)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		if exeDir != "" {
			dataDir = filepath.Join(exeDir, "data")
		} else {
			dataDir = "data"
		}
	}

	logDir := filepath.Join(filepath.Dir(dataDir), "logs")

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	cfg := &AppConfig{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		DataDir:       dataDir,
		LogDir:        logDir,
		BaseYear:      getEnvInt("BASE_YEAR", 0),
		Iterations:    getEnvInt("MC_ITERATIONS", 0),
		Confidence:    getEnvFloat("CONFIDENCE_LEVEL", 0),
		MaxParallel:   getEnvInt("MAX_PARALLEL", 0),
		Seed:          getEnvInt64("SIMULATION_SEED", 0),
		ScenariosFile: getEnv("SCENARIOS_FILE", ""),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-integer environment value")
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-integer environment value")
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric environment value")
	}
	return fallback
}
