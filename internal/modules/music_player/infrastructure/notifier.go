package infrastructure

import (
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/hibiki/internal/bot"
	"github.com/sglre6355/hibiki/internal/modules/music_player/application/ports"
)

// Notifier sends notifications to Discord channels.
type Notifier struct {
	chat bot.ChatClient
}

// NewNotifier creates a new Notifier.
func NewNotifier(chat bot.ChatClient) *Notifier {
	return &Notifier{chat: chat}
}

// SendTrackEnded posts "Tracks ended: <title>." to the channel.
func (n *Notifier) SendTrackEnded(channelID snowflake.ID, title string) error {
	if title == "" {
		title = "Unknown"
	}
	return n.chat.Send(channelID.String(), fmt.Sprintf("Tracks ended: %s.", title))
}

// SendElapsed posts how long the bot has been in the voice channel.
func (n *Notifier) SendElapsed(channelID, voiceChannelID snowflake.ID, elapsed time.Duration) error {
	return n.chat.Send(
		channelID.String(),
		fmt.Sprintf("I've been in <#%s> for %s!", voiceChannelID, formatElapsed(elapsed)),
	)
}

// formatElapsed renders whole minutes as "N minute(s)" and anything else as a duration.
func formatElapsed(elapsed time.Duration) string {
	if elapsed < time.Minute || elapsed%time.Minute != 0 {
		return elapsed.Round(time.Second).String()
	}

	minutes := int(elapsed / time.Minute)
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// Ensure Notifier implements ports.NotificationSender.
var _ ports.NotificationSender = (*Notifier)(nil)
