package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
// A local .env file is honored when present (development convenience).
type Config struct {
	HTTPAddr      string `envconfig:"HTTP_ADDR" default:":8080"`
	DBPath        string `envconfig:"DB_PATH" default:"./data/barometre.db"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	JWTSecret     string `envconfig:"JWT_SECRET" required:"true"`
	TelegramToken string `envconfig:"TELEGRAM_BOT_TOKEN"` // empty disables the display surface

	// Entitlement: the founder override email; must match the lifetime grant
	// row seeded by the migrations.
	FounderEmail string `envconfig:"FOUNDER_EMAIL" default:"fondatrice@barometre-energetique.fr"`

	// Moderation denylist, comma-separated; empty keeps the built-in list.
	ModerationDenylist []string `envconfig:"MODERATION_DENYLIST"`

	// Scheduling horizon in days.
	HorizonDays int `envconfig:"HORIZON_DAYS" default:"30"`
}

// Load reads .env (if any) then the environment into Config.
func Load() (Config, error) {
	_ = godotenv.Load() // missing .env is fine

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
