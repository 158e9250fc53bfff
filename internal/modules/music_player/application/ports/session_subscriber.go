package ports

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/hibiki/internal/modules/music_player/domain"
)

// SessionSubscriber manages the event subscriptions bound to a voice session.
type SessionSubscriber interface {
	// Subscribe starts the track-end and periodic subscriptions for session.
	Subscribe(session *domain.VoiceSession)

	// Cancel stops the guild's subscriptions and returns once no more
	// events will be produced for them.
	Cancel(guildID snowflake.ID)
}
