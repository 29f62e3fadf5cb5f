package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the runtime settings of the API.
type Config struct {
	Env  string
	Port string

	DatabaseDriver string
	DatabaseDSN    string
	DBWaitAttempts int
	DBWaitInterval time.Duration
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	RabbitMQURL    string
	RabbitMQQueue  string
	AdminEmail     string
	AdminPassword  string
}

const devJWTSecret = "dev_jwt_secret"

// Load reads an optional .env file and then resolves every setting from the
// environment, falling back to defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	return FromViper(viper.New())
}

// FromViper builds a Config from an already prepared viper instance. Defaults
// are registered on v before reading.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=recipes port=5432 sslmode=disable")
	v.SetDefault("DB_WAIT_ATTEMPTS", 10)
	v.SetDefault("DB_WAIT_INTERVAL", "1s")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "recipe_events")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.AutomaticEnv()

	cfg := &Config{
		Env:            v.GetString("APP_ENV"),
		Port:           v.GetString("APP_PORT"),
		DatabaseDriver: v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		DBWaitAttempts: v.GetInt("DB_WAIT_ATTEMPTS"),
		DBWaitInterval: v.GetDuration("DB_WAIT_INTERVAL"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		TokenTTL:       v.GetDuration("TOKEN_TTL"),
		BcryptCost:     v.GetInt("BCRYPT_COST"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:  v.GetString("RABBITMQ_QUEUE"),
		AdminEmail:     v.GetString("ADMIN_EMAIL"),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
	}

	if cfg.JWTSecret == "" {
		if cfg.Env != "dev" && cfg.Env != "test" {
			return nil, fmt.Errorf("JWT_SECRET is required when APP_ENV=%s", cfg.Env)
		}
		cfg.JWTSecret = devJWTSecret
	}
	switch cfg.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.DBWaitAttempts < 1 {
		cfg.DBWaitAttempts = 1
	}
	return cfg, nil
}

// EventsEnabled reports whether recipe change events should be published.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}
