package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort        = "8080"
	defaultOracleTimeout   = 10 * time.Second
	defaultDistanceTimeout = 5 * time.Second
)

type Config struct {
	HTTPPort        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSslMode       string
	OracleURL       string
	OracleAPIKey    string
	OracleTimeout   time.Duration
	DistanceURL     string
	DistanceTimeout time.Duration
	LogLevel        slog.Level
}

// LoadConfig reads the configuration from the environment. Values in
// envFile, when it exists, are loaded first and never override variables
// already set.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	oracleTimeout, err := durationEnv("ORACLE_TIMEOUT", defaultOracleTimeout)
	if err != nil {
		return Config{}, err
	}
	distanceTimeout, err := durationEnv("DISTANCE_TIMEOUT", defaultDistanceTimeout)
	if err != nil {
		return Config{}, err
	}

	var level slog.Level
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}

	return Config{
		HTTPPort:        stringEnv("HTTP_PORT", defaultHTTPPort),
		DBHost:          stringEnv("DB_HOST", "localhost"),
		DBPort:          stringEnv("DB_PORT", "5432"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBSslMode:       stringEnv("DB_SSLMODE", "disable"),
		OracleURL:       os.Getenv("ORACLE_URL"),
		OracleAPIKey:    os.Getenv("ORACLE_API_KEY"),
		OracleTimeout:   oracleTimeout,
		DistanceURL:     os.Getenv("DISTANCE_URL"),
		DistanceTimeout: distanceTimeout,
		LogLevel:        level,
	}, nil
}

// DSN returns the libpq connection string for the configured database.
func (c Config) DSN() string {
	parts := []string{
		"host=" + c.DBHost,
		"port=" + c.DBPort,
		"user=" + c.DBUser,
		"password=" + c.DBPassword,
		"dbname=" + c.DBName,
		"sslmode=" + c.DBSslMode,
	}
	return strings.Join(parts, " ")
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return fallback, nil
	}
	return d, nil
}
