package music_player

import (
	"fmt"
	"time"
)

// Config holds the music player module configuration.
type Config struct {
	LavalinkAddress  string `env:"LAVALINK_ADDRESS,notEmpty"`
	LavalinkPassword string `env:"LAVALINK_PASSWORD,notEmpty"`
	LavalinkSecure   bool   `env:"LAVALINK_SECURE" envDefault:"false"`
	LavalinkNodeName string `env:"LAVALINK_NODE_NAME" envDefault:"main"`

	DefaultVolume     float64       `env:"DEFAULT_VOLUME" envDefault:"0.5"`
	VoiceTickInterval time.Duration `env:"VOICE_TICK_INTERVAL" envDefault:"60s"`
}

// Validate checks values env tags cannot express.
func (c *Config) Validate() error {
	if c.DefaultVolume < 0 || c.DefaultVolume > 1 {
		return fmt.Errorf("DEFAULT_VOLUME must be between 0 and 1, got %v", c.DefaultVolume)
	}
	if c.VoiceTickInterval <= 0 {
		return fmt.Errorf("VOICE_TICK_INTERVAL must be positive, got %v", c.VoiceTickInterval)
	}
	return nil
}
