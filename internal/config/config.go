package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// MySQL holds the in-app notification inbox
	Database DatabaseConfig `json:"database"`

	// MongoDB holds sessions, rooms, messages and profiles
	MongoDB MongoDBConfig `json:"mongodb"`

	Redis RedisConfig `json:"redis"`

	// Firebase Configuration
	Firebase FirebaseConfig `json:"firebase"`

	// Notification Configuration
	Notification NotificationConfig `json:"notification"`

	Auth AuthConfig `json:"auth"`

	Gateway GatewayConfig `json:"gateway"`

	// Logging Configuration
	Logging LoggingConfig `json:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port        string `json:"port"`
	GRPCPort    string `json:"grpc_port"`
	Host        string `json:"host"`
	ReadTimeout int    `json:"read_timeout"`
	Environment string `json:"environment"` // development, staging, production
	BucketURL   string `json:"bucket_url"`  // prefix for stored media paths
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

type MongoDBConfig struct {
	URI      string `json:"-"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	Enabled  bool   `json:"enabled"`
}

// FirebaseConfig contains Firebase Cloud Messaging configuration
type FirebaseConfig struct {
	ProjectID           string `json:"project_id"`
	CredentialsFilePath string `json:"credentials_file_path"`
	Enabled             bool   `json:"enabled"`
}

// NotificationConfig contains notification system configuration
type NotificationConfig struct {
	Workers           int    `json:"workers"`             // Number of worker goroutines
	ChannelBufferSize int    `json:"channel_buffer_size"` // Channel buffer size
	TopicBatchSize    int    `json:"topic_batch_size"`    // FCM accepts at most 1000 tokens per topic call
	AndroidChannelID  string `json:"android_channel_id"`
	Sound             string `json:"sound"`
	Enabled           bool   `json:"enabled"`
}

type AuthConfig struct {
	JWTSecret           string        `json:"-"`
	Issuer              string        `json:"issuer"`
	Audience            string        `json:"audience"`
	AccessTokenTTL      time.Duration `json:"access_token_ttl"`
	RefreshTokenTTLDays int           `json:"refresh_token_ttl_days"`
	BcryptCost          int           `json:"bcrypt_cost"`
	InternalAPIKey      string        `json:"-"`
	SweepInterval       time.Duration `json:"sweep_interval"`
}

type GatewayConfig struct {
	EventsPerSecond float64       `json:"events_per_second"`
	EventBurst      int           `json:"event_burst"`
	SendBuffer      int           `json:"send_buffer"`
	PingPeriod      time.Duration `json:"ping_period"`
	PongWait        time.Duration `json:"pong_wait"`
	WriteWait       time.Duration `json:"write_wait"`
	MaxMessageBytes int64         `json:"max_message_bytes"`
	DefaultPageSize int           `json:"default_page_size"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `json:"level"`       // debug, info, warn, error
	Format     string `json:"format"`      // json, text
	OutputPath string `json:"output_path"` // stdout, stderr, or file path
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnvOrDefault("SERVER_PORT", "8080"),
			GRPCPort:    getEnvOrDefault("GRPC_PORT", "7003"),
			Host:        getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout: getEnvIntOrDefault("SERVER_READ_TIMEOUT", 15),
			Environment: getEnvOrDefault("APP_ENV", "development"),
			BucketURL:   getEnvOrDefault("BUCKET_URL", ""),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("MYSQL_HOST", "localhost"),
			Port:         getEnvOrDefault("MYSQL_PORT", "3306"),
			Username:     getEnvOrDefault("MYSQL_USERNAME", "gochat"),
			Password:     getEnvOrDefault("MYSQL_PASSWORD", "gochat123"),
			DatabaseName: getEnvOrDefault("MYSQL_DATABASE", "gochat"),
			MaxOpenConns: getEnvIntOrDefault("MYSQL_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvIntOrDefault("MYSQL_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnvOrDefault("MONGODB_URI", ""),
			Host:     getEnvOrDefault("MONGO_HOST", "localhost"),
			Port:     getEnvOrDefault("MONGO_PORT", "27017"),
			Username: getEnvOrDefault("MONGO_USERNAME", ""),
			Password: getEnvOrDefault("MONGO_PASSWORD", ""),
			Database: getEnvOrDefault("MONGO_DATABASE", "gochat"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getEnvIntOrDefault("REDIS_DB", 0),
			Enabled:  getEnvBoolOrDefault("REDIS_ENABLED", true),
		},
		Firebase: FirebaseConfig{
			ProjectID:           getEnvOrDefault("FIREBASE_PROJECT_ID", ""),
			CredentialsFilePath: getEnvOrDefault("FIREBASE_CREDENTIALS_PATH", ""),
			Enabled:             getEnvBoolOrDefault("FIREBASE_ENABLED", false),
		},
		Notification: NotificationConfig{
			Workers:           getEnvIntOrDefault("NOTIF_WORKERS", 5),
			ChannelBufferSize: getEnvIntOrDefault("NOTIF_BUFFER", 1000),
			TopicBatchSize:    getEnvIntOrDefault("NOTIF_TOPIC_BATCH", 1000),
			AndroidChannelID:  getEnvOrDefault("NOTIF_ANDROID_CHANNEL", "chat_messages"),
			Sound:             getEnvOrDefault("NOTIF_SOUND", "default"),
			Enabled:           getEnvBoolOrDefault("NOTIF_ENABLED", true),
		},
		Auth: AuthConfig{
			JWTSecret:           getEnvOrDefault("TOKEN_KEY", ""),
			Issuer:              getEnvOrDefault("TOKEN_ISSUER", "pet-api"),
			Audience:            getEnvOrDefault("TOKEN_AUDIENCE", "pet-app"),
			AccessTokenTTL:      getEnvDurationOrDefault("TOKEN_EXPIRES_IN", time.Hour),
			RefreshTokenTTLDays: getEnvIntOrDefault("REFRESH_TOKEN_TTL_DAYS", 30),
			BcryptCost:          getEnvIntOrDefault("BCRYPT_SALT_ROUNDS", 12),
			InternalAPIKey:      getEnvOrDefault("INTERNAL_API_KEY", ""),
			SweepInterval:       getEnvDurationOrDefault("SESSION_SWEEP_INTERVAL", time.Hour),
		},
		Gateway: GatewayConfig{
			EventsPerSecond: float64(getEnvIntOrDefault("WS_EVENTS_PER_SECOND", 20)),
			EventBurst:      getEnvIntOrDefault("WS_EVENT_BURST", 40),
			SendBuffer:      256,
			PingPeriod:      30 * time.Second,
			PongWait:        60 * time.Second,
			WriteWait:       10 * time.Second,
			MaxMessageBytes: 1 << 20,
			DefaultPageSize: 10,
		},
		Logging: LoggingConfig{
			Level:      getEnvOrDefault("LOG_LEVEL", "info"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
		},
	}
}

// Validate rejects configurations the service cannot run with.
func (cfg *Config) Validate() error {
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("TOKEN_KEY is required")
	}
	if cfg.Auth.RefreshTokenTTLDays < 1 || cfg.Auth.RefreshTokenTTLDays > 90 {
		return fmt.Errorf("REFRESH_TOKEN_TTL_DAYS must be between 1 and 90, got %d", cfg.Auth.RefreshTokenTTLDays)
	}
	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_SALT_ROUNDS must be between 4 and 31, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Notification.Workers < 1 {
		return fmt.Errorf("NOTIF_WORKERS must be positive")
	}
	return nil
}

func (cfg *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(cfg.Auth.RefreshTokenTTLDays) * 24 * time.Hour
}

func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

func (cfg *Config) GetMongoURI() string {
	if cfg.MongoDB.URI != "" {
		return cfg.MongoDB.URI
	}
	if cfg.MongoDB.Username == "" {
		return fmt.Sprintf("mongodb://%s:%s", cfg.MongoDB.Host, cfg.MongoDB.Port)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=admin",
		cfg.MongoDB.Username,
		cfg.MongoDB.Password,
		cfg.MongoDB.Host,
		cfg.MongoDB.Port,
		cfg.MongoDB.Database,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("invalid integer in environment, using default")
		return defaultValue
	}
	return n
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	switch value {
	case "":
		return defaultValue
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// getEnvDurationOrDefault accepts Go durations ("90m") and the bare "<n>h"/"<n>d" forms used by the mobile backend.
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if strings.HasSuffix(value, "d") {
		if days, err := strconv.Atoi(strings.TrimSuffix(value, "d")); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("invalid duration in environment, using default")
		return defaultValue
	}
	return d
}
