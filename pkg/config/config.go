package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Server
	ServerPort  string
	ServiceName string
	UploadDir   string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT
	JWTSecret string

	// Object storage
	StorageDriver      string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSEndpoint        string
	S3UseSSL           string
	S3BucketName       string

	// RabbitMQ
	RabbitMQHost     string
	RabbitMQPort     string
	RabbitMQUser     string
	RabbitMQPassword string

	// Tracing
	OTLPEndpoint string

	// Rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Toggle locks: "redis" or "local"
	LockBackend string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	l := &loader{v: v}

	config := &Config{
		ServerPort:  l.getEnv("SERVER_PORT", "8080"),
		ServiceName: l.getEnv("SERVICE_NAME", "videotube"),
		UploadDir:   l.getEnv("UPLOAD_DIR", "./public/temp"),

		DBDriver:   l.getEnv("DB_DRIVER", "postgres"),
		DBHost:     l.getEnv("DB_HOST", "localhost"),
		DBPort:     l.getEnv("DB_PORT", "5432"),
		DBUser:     l.getEnv("DB_USER", "postgres"),
		DBPassword: l.getEnv("DB_PASSWORD", "postgres"),
		DBName:     l.getEnv("DB_NAME", "videotube"),
		DBSSLMode:  l.getEnv("DB_SSLMODE", "disable"),

		RedisHost:     l.getEnv("REDIS_HOST", "localhost"),
		RedisPort:     l.getEnv("REDIS_PORT", "6379"),
		RedisPassword: l.getEnv("REDIS_PASSWORD", ""),

		JWTSecret: l.getEnv("JWT_SECRET", "your-secret-key-change-in-production"),

		StorageDriver:      l.getEnv("STORAGE_DRIVER", "s3"),
		AWSRegion:          l.getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     l.getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: l.getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpoint:        l.getEnv("AWS_ENDPOINT", ""),
		S3UseSSL:           l.getEnv("S3_USE_SSL", "true"),
		S3BucketName:       l.getEnv("S3_BUCKET_NAME", "videotube-media"),

		RabbitMQHost:     l.getEnv("RABBITMQ_HOST", "localhost"),
		RabbitMQPort:     l.getEnv("RABBITMQ_PORT", "5672"),
		RabbitMQUser:     l.getEnv("RABBITMQ_USER", "guest"),
		RabbitMQPassword: l.getEnv("RABBITMQ_PASSWORD", "guest"),

		OTLPEndpoint: l.getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),

		LockBackend: l.getEnv("LOCK_BACKEND", "redis"),
	}

	var err error
	if config.RedisDB, err = l.getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if config.RateLimitRequests, err = l.getInt("RATE_LIMIT_REQUESTS", 100); err != nil {
		return nil, err
	}
	if config.RateLimitWindow, err = l.getDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	switch config.DBDriver {
	case "postgres", "mysql":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", config.DBDriver)
	}
	switch config.StorageDriver {
	case "s3", "minio":
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", config.StorageDriver)
	}

	return config, nil
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

type loader struct {
	v *viper.Viper
}

// getEnv resolves key from the environment first, then config.yml.
func (l *loader) getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(l.v.GetString(key)); value != "" {
		return value
	}
	return defaultValue
}

func (l *loader) getInt(key string, defaultValue int) (int, error) {
	raw := l.getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func (l *loader) getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := l.getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
