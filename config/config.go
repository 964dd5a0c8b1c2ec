package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

const (
	defaultRedisURL          = "redis://localhost:6379"
	defaultPort              = 4000
	defaultApproachingWindow = 24 * time.Hour
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	JWT   JWTConfig
	SLA   SLAConfig
}

type AppConfig struct {
	Port      int
	Env       string
	SentryDSN string
}

type DBConfig struct {
	URL string
}

type RedisConfig struct {
	URL string
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type SLAConfig struct {
	ApproachingWindow time.Duration
}

// LoadConfig reads .env plus the process environment and validates the
// result. Validation failures are collected into a single error so
// operators see every missing or invalid key at once; the process must
// not start on a partial config.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// .env is optional; real deployments inject env vars directly
	_ = viper.ReadInConfig()

	var problems []string

	required := []string{"DATABASE_URL", "JWT_ACCESS_SECRET", "JWT_REFRESH_SECRET"}
	for _, key := range required {
		if viper.GetString(key) == "" {
			problems = append(problems, fmt.Sprintf("%s is required", key))
		}
	}

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = EnvDevelopment
	}
	switch env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		problems = append(problems, fmt.Sprintf("APP_ENV must be one of development, production, test (got %q)", env))
	}

	port := defaultPort
	if raw := viper.GetString("PORT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			port = parsed
		}
	}

	redisURL := viper.GetString("REDIS_URL")
	if redisURL == "" {
		redisURL = defaultRedisURL
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	approachingWindow, err := time.ParseDuration(viper.GetString("SLA_APPROACHING_WINDOW"))
	if err != nil {
		approachingWindow = defaultApproachingWindow
	}

	if len(problems) > 0 {
		return nil, errors.New(strings.Join(problems, "\n"))
	}

	config := &Config{
		App: AppConfig{
			Port:      port,
			Env:       env,
			SentryDSN: viper.GetString("SENTRY_DSN"),
		},
		DB: DBConfig{
			URL: viper.GetString("DATABASE_URL"),
		},
		Redis: RedisConfig{
			URL: redisURL,
		},
		JWT: JWTConfig{
			AccessSecret:  viper.GetString("JWT_ACCESS_SECRET"),
			RefreshSecret: viper.GetString("JWT_REFRESH_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		SLA: SLAConfig{
			ApproachingWindow: approachingWindow,
		},
	}

	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == EnvProduction
}
