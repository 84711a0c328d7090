package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Events   EventsConfig
	Importer ImporterConfig
	Scraper  ScraperConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogJSON     bool
	LogDebug    bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiresIn time.Duration
}

// StorageConfig selects the resume file store. An empty bucket keeps files
// in memory.
type StorageConfig struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// EventsConfig enables the AMQP publisher when URL is set.
type EventsConfig struct {
	AMQPURL  string
	Exchange string
}

type ImporterConfig struct {
	Mode      string
	UserAgent string
	Timeout   time.Duration
}

type ScraperConfig struct {
	TargetsFile string
	Schedule    string
	Workers     int
	Pages       int
}

const (
	ImporterDemo     = "demo"
	ImporterHTML     = "html"
	ImporterHeadless = "headless"
)

var errMissingRequiredEnv = errors.New("missing required environment variables")

var errInvalidEnv = errors.New("invalid environment variables")

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return load(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_DEBUG", false)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("JWT_ACCESS_EXPIRES_IN", "1h")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("AMQP_EXCHANGE", "resume-match.events")
	v.SetDefault("IMPORTER_MODE", ImporterDemo)
	v.SetDefault("IMPORTER_TIMEOUT", "20s")
	v.SetDefault("SCRAPER_TARGETS_FILE", "scraper_targets.yaml")
	v.SetDefault("SCRAPER_WORKERS", 4)
	v.SetDefault("SCRAPER_PAGES", 1)
}

func load(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}
	dur := func(key string) time.Duration {
		s := opt(key)
		if s == "" {
			return 0
		}
		d, err := time.ParseDuration(s)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return 0
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		LogJSON:     v.GetBool("LOG_JSON"),
		LogDebug:    v.GetBool("LOG_DEBUG"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        dur("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   dur("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   dur("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: dur("DB_POOL_HEALTH_CHECK_PERIOD"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		CacheTTL: dur("CACHE_TTL"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:    req("JWT_ACCESS_SECRET"),
		AccessExpiresIn: dur("JWT_ACCESS_EXPIRES_IN"),
	}

	cfg.Storage = StorageConfig{
		Bucket:          opt("S3_BUCKET"),
		Region:          opt("S3_REGION"),
		Endpoint:        opt("S3_ENDPOINT"),
		AccessKeyID:     opt("S3_ACCESS_KEY_ID"),
		SecretAccessKey: opt("S3_SECRET_ACCESS_KEY"),
	}

	cfg.Events = EventsConfig{
		AMQPURL:  opt("AMQP_URL"),
		Exchange: opt("AMQP_EXCHANGE"),
	}

	cfg.Importer = ImporterConfig{
		Mode:      strings.ToLower(opt("IMPORTER_MODE")),
		UserAgent: opt("IMPORTER_USER_AGENT"),
		Timeout:   dur("IMPORTER_TIMEOUT"),
	}
	switch cfg.Importer.Mode {
	case ImporterDemo, ImporterHTML, ImporterHeadless:
	default:
		invalid = append(invalid, "IMPORTER_MODE")
	}

	cfg.Scraper = ScraperConfig{
		TargetsFile: opt("SCRAPER_TARGETS_FILE"),
		Schedule:    opt("SCRAPER_SCHEDULE"),
		Workers:     v.GetInt("SCRAPER_WORKERS"),
		Pages:       v.GetInt("SCRAPER_PAGES"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
