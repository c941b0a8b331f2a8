// Package config loads runtime settings from the environment, an optional
// app.env file and a local .env file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	StoreDriver string `mapstructure:"STORE_DRIVER"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`

	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBName     string `mapstructure:"DB_NAME"`
	DBTable    string `mapstructure:"DB_TABLE"`

	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	CacheEnabled  bool   `mapstructure:"CACHE_ENABLED"`

	Port           string `mapstructure:"PORT"`
	BindAddr       string `mapstructure:"BIND_ADDR"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	RateLimit      int    `mapstructure:"RATE_LIMIT"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTIssuer string        `mapstructure:"JWT_ISSUER"`
	TokenTTL  time.Duration `mapstructure:"TOKEN_TTL"`

	WriteTimeout     time.Duration `mapstructure:"WRITE_TIMEOUT"`
	SyncInterval     time.Duration `mapstructure:"SYNC_INTERVAL"`
	ReminderInterval time.Duration `mapstructure:"REMINDER_INTERVAL"`

	CoachProvider string `mapstructure:"COACH_PROVIDER"`
	GeminiAPIKey  string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel   string `mapstructure:"GEMINI_MODEL"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]any{
	"STORE_DRIVER":      DriverSQLite,
	"SQLITE_PATH":       "data/kanso.db",
	"DB_USER":           "kanso_user",
	"DB_PASSWORD":       "",
	"DB_HOST":           "localhost",
	"DB_PORT":           "5432",
	"DB_NAME":           "kanso_db",
	"DB_TABLE":          "kanso_records",
	"REDIS_HOST":        "localhost",
	"REDIS_PORT":        "6379",
	"REDIS_PASSWORD":    "",
	"REDIS_DB":          0,
	"CACHE_ENABLED":     false,
	"PORT":              "8080",
	"BIND_ADDR":         "localhost",
	"ALLOWED_ORIGINS":   "http://localhost:8081",
	"RATE_LIMIT":        100,
	"JWT_SECRET":        "kanso-dev-secret",
	"JWT_ISSUER":        "kanso-wellness",
	"TOKEN_TTL":         "24h",
	"WRITE_TIMEOUT":     "3s",
	"SYNC_INTERVAL":     "30s",
	"REMINDER_INTERVAL": "1m",
	"COACH_PROVIDER":    "mock",
	"GEMINI_API_KEY":    "",
	"GEMINI_MODEL":      "gemini-1.5-flash",
	"LOG_LEVEL":         "info",
	"LOG_FORMAT":        "json",
}

// Load reads configuration from path/app.env when present. A .env file in
// the working directory is loaded into the environment first; real
// environment variables always win.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(cfg.StoreDriver)
	cfg.CoachProvider = strings.ToLower(cfg.CoachProvider)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite, DriverPostgres, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("%w: unknown STORE_DRIVER %q", ErrInvalidConfig, c.StoreDriver)
	}
	switch c.CoachProvider {
	case "mock":
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("%w: GEMINI_API_KEY is required for the gemini coach", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown COACH_PROVIDER %q", ErrInvalidConfig, c.CoachProvider)
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("%w: WRITE_TIMEOUT must be positive", ErrInvalidConfig)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: TOKEN_TTL must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c Config) Addr() string {
	return c.BindAddr + ":" + c.Port
}

func (c Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
