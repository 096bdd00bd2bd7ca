package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port             string        `env:"PORT" env-default:"8080"`
	DatabaseURL      string        `env:"DATABASE_URL" env-default:""`
	JWTSecret        string        `env:"JWT_SECRET" env-default:"dev_secret_change_me"`
	TokenTTL         time.Duration `env:"TOKEN_TTL" env-default:"1h"`
	ReminderInterval time.Duration `env:"REMINDER_INTERVAL" env-default:"1m"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
