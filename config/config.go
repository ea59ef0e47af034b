package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
)

type Config struct {
	Environment string
	ServerPort  string
	StorageType string
	SeedData    bool

	MongoURI      string
	MongoDatabase string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string
	TokenTTL  time.Duration

	LogLevel  string
	LogFormat string

	RedisURL        string
	SensorInterval  time.Duration
	SensorRetention time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	CORSAllowedOrigins []string
}

// Load reads configuration from a .env file, an optional config.yaml and the
// environment. Environment variables win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "8000")
	v.SetDefault("STORAGE_TYPE", StorageMemory)
	v.SetDefault("SEED_DATA", false)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "forum")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "forum")
	v.SetDefault("TOKEN_TTL", 24*time.Hour)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("SENSOR_INTERVAL", time.Second)
	v.SetDefault("SENSOR_RETENTION", 5*time.Minute)
	v.SetDefault("RATE_LIMIT_RPS", 5.0)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Environment:        v.GetString("ENVIRONMENT"),
		ServerPort:         v.GetString("PORT"),
		StorageType:        strings.ToLower(v.GetString("STORAGE_TYPE")),
		SeedData:           v.GetBool("SEED_DATA"),
		MongoURI:           v.GetString("MONGO_URI"),
		MongoDatabase:      v.GetString("MONGO_DATABASE"),
		DBHost:             v.GetString("DB_HOST"),
		DBPort:             v.GetInt("DB_PORT"),
		DBUser:             v.GetString("DB_USER"),
		DBPassword:         v.GetString("DB_PASSWORD"),
		DBName:             v.GetString("DB_NAME"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		TokenTTL:           v.GetDuration("TOKEN_TTL"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
		RedisURL:           v.GetString("REDIS_URL"),
		SensorInterval:     v.GetDuration("SENSOR_INTERVAL"),
		SensorRetention:    v.GetDuration("SENSOR_RETENTION"),
		RateLimitRPS:       v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:     v.GetInt("RATE_LIMIT_BURST"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}
}

// Validate checks required values for the selected storage backend.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}

	switch c.StorageType {
	case StorageMemory:
	case StorageMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required when STORAGE_TYPE=mongo")
		}
	case StoragePostgres:
		if c.DBPassword == "" {
			return errors.New("DB_PASSWORD environment variable is required when STORAGE_TYPE=postgres")
		}
	default:
		return fmt.Errorf("unknown STORAGE_TYPE %q", c.StorageType)
	}

	if c.SensorInterval <= 0 {
		return errors.New("SENSOR_INTERVAL must be positive")
	}
	if c.SensorRetention < c.SensorInterval {
		return errors.New("SENSOR_RETENTION must be at least SENSOR_INTERVAL")
	}
	return nil
}

// PostgresURL builds the connection string for lib/pq.
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func (c *Config) AllowAllOrigins() bool {
	return len(c.CORSAllowedOrigins) == 0 || (len(c.CORSAllowedOrigins) == 1 && c.CORSAllowedOrigins[0] == "*")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
