package ports

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// NotificationSender defines the interface for sending notifications to Discord channels.
type NotificationSender interface {
	// SendTrackEnded announces that a track reached its end.
	SendTrackEnded(channelID snowflake.ID, title string) error

	// SendElapsed announces how long the bot has been in a voice channel.
	SendElapsed(channelID, voiceChannelID snowflake.ID, elapsed time.Duration) error
}
