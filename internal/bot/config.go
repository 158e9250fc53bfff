package bot

import (
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// DefaultCommandPrefix is the prefix used when COMMAND_PREFIX is unset.
const DefaultCommandPrefix = "!"

// Config holds the bot configuration loaded from environment variables.
type Config struct {
	DiscordToken  string     `env:"DISCORD_TOKEN,notEmpty"`
	CommandPrefix string     `env:"COMMAND_PREFIX" envDefault:"!"`
	LogLevel      slog.Level `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig loads configuration from environment variables.
// Returns an error if required fields are missing.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.CommandPrefix == "" {
		cfg.CommandPrefix = DefaultCommandPrefix
	}

	return cfg, nil
}
