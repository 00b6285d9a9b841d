package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string
	ServerPort string

	AIAPIKey  string
	AIAPIURL  string
	AIModel   string
	AITimeout time.Duration

	EvaluatorURL     string
	EvaluatorTimeout time.Duration
	FeedbackURL      string
	FeedbackTimeout  time.Duration

	SessionIdleTTL time.Duration
	SweepSchedule  string
	CORSOrigins    []string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "studypal"),
		SQLitePath: getEnv("SQLITE_PATH", "studypal.db"),
		ServerPort: getEnv("SERVER_PORT", "8000"),

		AIAPIKey:  getEnv("AI_API_KEY", ""),
		AIAPIURL:  getEnv("AI_API_URL", "https://api.openai.com/v1"),
		AIModel:   getEnv("AI_MODEL", "gpt-3.5-turbo"),
		AITimeout: getEnvDuration("AI_TIMEOUT", 60*time.Second),

		EvaluatorURL:     getEnv("EVALUATOR_URL", ""),
		EvaluatorTimeout: getEnvDuration("EVALUATOR_TIMEOUT", 10*time.Second),
		FeedbackURL:      getEnv("FEEDBACK_URL", ""),
		FeedbackTimeout:  getEnvDuration("FEEDBACK_TIMEOUT", 15*time.Second),

		SessionIdleTTL: getEnvDuration("SESSION_IDLE_TTL", 2*time.Hour),
		SweepSchedule:  getEnv("SWEEP_SCHEDULE", "@every 5m"),
		CORSOrigins:    getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", key, val, fallback)
		return fallback
	}
	return n
}

// getEnvDuration accepts Go durations ("90s") or a plain number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	return time.Duration(getEnvInt(key, int(fallback/time.Second))) * time.Second
}

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
