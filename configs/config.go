package configs

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	TripsAPI TripsAPIConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	DSN      string
	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
}

// TripsAPIConfig configures the upstream trips provider client.
type TripsAPIConfig struct {
	BaseURL string
	APIKey  string
	// AttemptTimeout bounds a single HTTP attempt; MaxRetries is the number
	// of additional attempts after the first.
	AttemptTimeout time.Duration
	MaxRetries     int
}

// CacheConfig selects the cache backend and the per-entry TTLs.
type CacheConfig struct {
	Backend       string // "redis" or "memory"
	KeyPrefix     string
	SearchTTL     time.Duration
	SavedTripsTTL time.Duration
}

type AuthConfig struct {
	JWTSecret string
	Issuer    string
	Audience  string
	// Identity management API (registration)
	MgmtBaseURL      string
	MgmtClientID     string
	MgmtClientSecret string
	MgmtAudience     string
	MgmtConnection   string
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "trip_search"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getDurationEnv("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:  getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
		},
		TripsAPI: TripsAPIConfig{
			BaseURL:        getEnvRequired("TRIPS_API_BASE_URL"),
			APIKey:         getEnv("TRIPS_API_KEY", ""),
			AttemptTimeout: getDurationEnv("TRIPS_API_ATTEMPT_TIMEOUT", 2500*time.Millisecond),
			MaxRetries:     getIntEnv("TRIPS_API_MAX_RETRIES", 3),
		},
		Cache: CacheConfig{
			Backend:       getEnv("CACHE_BACKEND", CacheBackendRedis),
			KeyPrefix:     getEnv("CACHE_KEY_PREFIX", "tripsearch"),
			SearchTTL:     getDurationEnv("CACHE_TTL_SEARCH", 120*time.Second),
			SavedTripsTTL: getDurationEnv("CACHE_TTL_SAVED_TRIPS", 60*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnvRequired("JWT_SECRET"),
			Issuer:           getEnv("JWT_ISSUER", ""),
			Audience:         getEnv("JWT_AUDIENCE", ""),
			MgmtBaseURL:      getEnv("IDP_MGMT_BASE_URL", ""),
			MgmtClientID:     getEnv("IDP_MGMT_CLIENT_ID", ""),
			MgmtClientSecret: getEnv("IDP_MGMT_CLIENT_SECRET", ""),
			MgmtAudience:     getEnv("IDP_MGMT_AUDIENCE", ""),
			MgmtConnection:   getEnv("IDP_MGMT_CONNECTION", "Username-Password-Authentication"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if cfg.Cache.Backend != CacheBackendRedis && cfg.Cache.Backend != CacheBackendMemory {
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}

	// Build database DSN
	cfg.Database.DSN = fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("Required environment variable %s is not set", key))
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
