package domain

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/google/uuid"
)

// VoiceSession represents the bot's presence in a guild's voice channel.
// A guild has at most one session at a time.
type VoiceSession struct {
	id                    uuid.UUID
	guildID               snowflake.ID
	voiceChannelID        snowflake.ID
	notificationChannelID snowflake.ID
	muted                 bool
	deafened              bool
	bitrate               int
	connectedAt           time.Time

	Queue *Queue
}

// NewVoiceSession creates a session with a fresh id and an empty queue.
func NewVoiceSession(
	guildID, voiceChannelID, notificationChannelID snowflake.ID,
	bitrate int,
) *VoiceSession {
	return &VoiceSession{
		id:                    uuid.New(),
		guildID:               guildID,
		voiceChannelID:        voiceChannelID,
		notificationChannelID: notificationChannelID,
		bitrate:               bitrate,
		connectedAt:           time.Now(),
		Queue:                 NewQueue(),
	}
}

// GetID returns the unique id of this session.
func (s *VoiceSession) GetID() uuid.UUID {
	return s.id
}

// GetGuildID returns the guild ID.
func (s *VoiceSession) GetGuildID() snowflake.ID {
	return s.guildID
}

// GetVoiceChannelID returns the voice channel ID.
func (s *VoiceSession) GetVoiceChannelID() snowflake.ID {
	return s.voiceChannelID
}

// SetVoiceChannelID updates the voice channel ID.
func (s *VoiceSession) SetVoiceChannelID(channelID snowflake.ID) {
	s.voiceChannelID = channelID
}

// GetNotificationChannelID returns the text channel status messages are posted to.
func (s *VoiceSession) GetNotificationChannelID() snowflake.ID {
	return s.notificationChannelID
}

// SetNotificationChannelID updates the notification channel ID.
func (s *VoiceSession) SetNotificationChannelID(channelID snowflake.ID) {
	s.notificationChannelID = channelID
}

// IsMuted returns whether the bot is self-muted.
func (s *VoiceSession) IsMuted() bool {
	return s.muted
}

// SetMuted sets the self-mute flag.
func (s *VoiceSession) SetMuted(muted bool) {
	s.muted = muted
}

// IsDeafened returns whether the bot is self-deafened.
func (s *VoiceSession) IsDeafened() bool {
	return s.deafened
}

// SetDeafened sets the self-deafen flag.
func (s *VoiceSession) SetDeafened(deafened bool) {
	s.deafened = deafened
}

// GetBitrate returns the bitrate of the voice channel at join time.
func (s *VoiceSession) GetBitrate() int {
	return s.bitrate
}

// GetConnectedAt returns when the session was created.
func (s *VoiceSession) GetConnectedAt() time.Time {
	return s.connectedAt
}

// Snapshot returns a deep copy that can be read without holding the guild lock.
func (s *VoiceSession) Snapshot() *VoiceSession {
	c := *s
	c.Queue = s.Queue.Clone()
	return &c
}
