package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port        string
	Env         string
	ProjectName string
	CORSOrigins string

	DBDriver       string // postgres, mysql or sqlite
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBDSN          string // Overrides the DSN built from the fields above
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBLogSQL       bool

	RequestTimeout time.Duration

	JWTKey string // Empty disables bearer auth on mutating routes

	StatsCron string // Empty disables the catalog report job
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = FromEnv()

	if AppConfig.JWTKey == "" {
		log.Println("Warning: JWT_SECRET_KEY is not set. Mutating routes are not authenticated.")
	}
}

// FromEnv builds a Config from the current environment without touching AppConfig.
func FromEnv() *Config {
	return &Config{
		Port:        getEnv("PORT", "3000"),
		Env:         getEnv("APP_ENV", "development"),
		ProjectName: getEnv("PROJECT_NAME", "Course Service API"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "courses"),
		DBDSN:          getEnv("DB_DSN", ""),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBLogSQL:       getEnvBool("DB_LOG_SQL", false),

		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 0)) * time.Second,

		JWTKey: getEnv("JWT_SECRET_KEY", ""),

		StatsCron: getEnv("STATS_CRON", ""),
	}
}

// AuthEnabled reports whether mutating routes require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTKey != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return b
}
