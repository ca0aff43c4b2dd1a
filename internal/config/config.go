package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	ServerPort    string `envconfig:"SERVER_PORT" default:"8080"`
	SessionSecret string `envconfig:"SESSION_SECRET" required:"true"`
	SessionMaxAge int    `envconfig:"SESSION_MAX_AGE" default:"86400"` // секунды
	Debug         bool   `envconfig:"DEBUG" default:"false"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`

	// необязательный TOML со списком сотрудников для старта
	SeedFile         string `envconfig:"SEED_FILE"`
	PasswordHashCost int    `envconfig:"PASSWORD_HASH_COST" default:"10"`

	UploadTick       time.Duration `envconfig:"UPLOAD_TICK" default:"200ms"`
	UploadMaxPreview int64         `envconfig:"UPLOAD_MAX_PREVIEW" default:"10485760"`
	UploadMaxSize    int64         `envconfig:"UPLOAD_MAX_SIZE" default:"67108864"`
	UploadRetention  time.Duration `envconfig:"UPLOAD_RETENTION" default:"30m"`
}

// Load читает .env (если есть) и переменные окружения.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if len(c.SessionSecret) < 16 {
		return fmt.Errorf("config: SESSION_SECRET must be at least 16 bytes")
	}
	if c.PasswordHashCost < bcrypt.MinCost || c.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("config: PASSWORD_HASH_COST must be within [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.UploadTick <= 0 {
		return fmt.Errorf("config: UPLOAD_TICK must be positive")
	}
	if c.UploadMaxSize <= 0 {
		return fmt.Errorf("config: UPLOAD_MAX_SIZE must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.ServerPort
}
