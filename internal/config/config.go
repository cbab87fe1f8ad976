package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                string
	DBPath              string
	LogLevel            string
	RandomSeed          int64
	SessionSize         int
	RevisionBias        float64
	StudySetSize        int
	PlannerSafetyFactor int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "file:mindforge.db"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		RandomSeed:          int64(envIntOr("RANDOM_SEED", 0)),
		SessionSize:         envIntOr("SESSION_SIZE", 10),
		RevisionBias:        envFloatOr("REVISION_BIAS", 0.7),
		StudySetSize:        envIntOr("STUDY_SET_SIZE", 10),
		PlannerSafetyFactor: envIntOr("PLANNER_SAFETY_FACTOR", 5),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.SessionSize < 1 {
		problems = append(problems, fmt.Sprintf("SESSION_SIZE must be at least 1 (got %d)", c.SessionSize))
	}
	if c.RevisionBias < 0 || c.RevisionBias > 1 {
		problems = append(problems, fmt.Sprintf("REVISION_BIAS must be between 0 and 1 (got %v)", c.RevisionBias))
	}
	if c.StudySetSize < 1 {
		problems = append(problems, fmt.Sprintf("STUDY_SET_SIZE must be at least 1 (got %d)", c.StudySetSize))
	}
	if c.PlannerSafetyFactor < 1 {
		problems = append(problems, fmt.Sprintf("PLANNER_SAFETY_FACTOR must be at least 1 (got %d)", c.PlannerSafetyFactor))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
