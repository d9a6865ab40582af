package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Settings SettingsConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Events   EventsConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

// SettingsConfig controls the tenant settings store
type SettingsConfig struct {
	CacheTTL    time.Duration
	CacheDriver string // memory or redis
}

// StorageConfig selects the settings persistence backend
type StorageConfig struct {
	Driver string // mongodb, postgres, sqlite or memory
	DSN    string // postgres and sqlite only
}

// RedisConfig is used when settings.cachedriver is redis
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// EventsConfig enables settings change events when AMQPURL is set
type EventsConfig struct {
	AMQPURL string
}

const (
	DriverMongoDB  = "mongodb"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Load loads configuration from an optional .env file, config files and
// environment variables. Environment variables use the FITCOACH_ prefix,
// e.g. FITCOACH_MONGODB_URI.
func Load(paths ...string) (*Config, error) {
	// A missing .env is fine, the process environment is used as-is
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix("fitcoach")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the server cannot run without
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	switch c.Storage.Driver {
	case DriverMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("mongodb.uri is required when storage.driver is mongodb")
		}
	case DriverPostgres, DriverSQLite:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required when storage.driver is %s", c.Storage.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Settings.CacheDriver {
	case CacheMemory:
	case CacheRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis.addr is required when settings.cachedriver is redis")
		}
	default:
		return fmt.Errorf("unknown cache driver %q", c.Settings.CacheDriver)
	}
	if c.Settings.CacheTTL <= 0 {
		return errors.New("settings.cachettl must be positive")
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "4000")
	v.SetDefault("server.allowedorigins", []string{"http://localhost:3000"})
	v.SetDefault("mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("mongodb.database", "fitcoach")
	v.SetDefault("mongodb.timeout", 10*time.Second)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiresin", 24*time.Hour)
	v.SetDefault("settings.cachettl", 5*time.Minute)
	v.SetDefault("settings.cachedriver", CacheMemory)
	v.SetDefault("storage.driver", DriverMongoDB)
	v.SetDefault("storage.dsn", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("events.amqpurl", "")
	v.SetDefault("loglevel", "info")
}
