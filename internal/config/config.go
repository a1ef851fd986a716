package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StorageDisk = "disk"
	StorageS3   = "s3"
)

// Config holds everything the service reads from the environment
type Config struct {
	Env  string
	Port string

	DBDriver string
	DBDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	FeedCacheTTL  time.Duration

	JWTSecret string

	ImageStorage       string
	UploadDir          string
	AWSRegion          string
	AWSBucket          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Env:                valueOr(getenv("APP_ENV"), "development"),
		Port:               valueOr(getenv("APP_PORT"), "8080"),
		DBDriver:           valueOr(getenv("DB_DRIVER"), DriverMySQL),
		DBDSN:              getenv("DB_DSN"),
		RedisAddr:          getenv("REDIS_ADDR"),
		RedisPassword:      getenv("REDIS_PASSWORD"),
		FeedCacheTTL:       30 * time.Second,
		JWTSecret:          getenv("JWT_SECRET"),
		ImageStorage:       valueOr(getenv("IMAGE_STORAGE"), StorageDisk),
		UploadDir:          valueOr(getenv("UPLOAD_DIR"), "uploads"),
		AWSRegion:          getenv("AWS_REGION"),
		AWSBucket:          getenv("AWS_BUCKET_NAME"),
		AWSAccessKeyID:     getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: getenv("AWS_SECRET_ACCESS_KEY"),
	}

	var problems []error
	if cfg.DBDSN == "" {
		problems = append(problems, errors.New("DB_DSN is not set"))
	}
	if cfg.JWTSecret == "" {
		problems = append(problems, errors.New("JWT_SECRET is not set"))
	}
	switch cfg.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		problems = append(problems, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver))
	}
	switch cfg.ImageStorage {
	case StorageDisk:
	case StorageS3:
		if cfg.AWSRegion == "" || cfg.AWSBucket == "" {
			problems = append(problems, errors.New("AWS_REGION and AWS_BUCKET_NAME are required for s3 image storage"))
		}
	default:
		problems = append(problems, fmt.Errorf("unsupported IMAGE_STORAGE %q", cfg.ImageStorage))
	}

	if v := getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			problems = append(problems, fmt.Errorf("REDIS_DB: %w", err))
		}
		cfg.RedisDB = n
	}
	if v := getenv("FEED_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			problems = append(problems, fmt.Errorf("FEED_CACHE_TTL: invalid duration %q", v))
		} else {
			cfg.FeedCacheTTL = ttl
		}
	}

	if err := errors.Join(problems...); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether APP_ENV selects the production logger
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
