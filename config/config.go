package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Dataset sources understood by DatasetSource.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	HTTPAddr      string
	DatasetSource string
	DataCSVPath   string
	IconPath      string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int

	DashboardURL string
	SnapshotDir  string
	ChromeBin    string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8501"),
		DatasetSource: getEnv("DATASET_SOURCE", SourceCSV),
		DataCSVPath:   getEnv("DATA_CSV_PATH", "data/train.csv"),
		IconPath:      getEnv("ICON_PATH", "data/house.jpg"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "houses"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "houses123"),
		PostgresDB:       getEnv("POSTGRES_DB", "house_prices"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 500),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		DashboardURL: getEnv("DASHBOARD_URL", "http://localhost:8501/"),
		SnapshotDir:  getEnv("SNAPSHOT_DIR", "./output/snapshots"),
		ChromeBin:    getEnv("CHROME_BIN", ""),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
