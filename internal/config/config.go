package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"3000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"INFO"`

	BotToken            string `env:"DISCORD_BOT_TOKEN"`
	GuildID             string `env:"DISCORD_GUILD_ID"`
	AttendanceChannelID string `env:"ATTENDANCE_CHANNEL_ID"`
	GitChannelID        string `env:"GIT_CHANNEL_ID"`

	// WebhookSecret is read for completeness but incoming deliveries are
	// not verified against it yet.
	WebhookSecret string `env:"WEBHOOK_SECRET"`

	StateFile       string `env:"STATE_FILE" envDefault:"data/attendance.json"`
	Timezone        string `env:"TIMEZONE" envDefault:"Asia/Tokyo"`
	TranslateAPIURL string `env:"TRANSLATE_API_URL"`
	Locale          string `env:"LOCALE" envDefault:"ja"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool { return c.Environment == "development" }
