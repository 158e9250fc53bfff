package domain

import (
	"github.com/disgoorg/snowflake/v2"
)

// SessionRepository stores at most one VoiceSession per guild and serializes
// access to it.
type SessionRepository interface {
	// Acquire blocks until the guild's lock is held and returns a lease on its slot.
	// Different guilds never block each other.
	Acquire(guildID snowflake.ID) SessionLease

	// Count returns the number of live sessions.
	Count() int
}

// SessionLease grants exclusive access to one guild's session slot until Release.
type SessionLease interface {
	// Session returns the guild's session, or nil if there is none.
	Session() *VoiceSession

	// Save stores the session in the slot.
	Save(session *VoiceSession)

	// Delete empties the slot.
	Delete()

	// Release gives the guild's lock back. Calling it more than once is a no-op.
	Release()
}
