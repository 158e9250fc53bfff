package domain

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/google/uuid"
)

// Event is a domain event delivered through the event bus.
type Event interface {
	EventName() string
	// EventGuildID returns the guild whose session the event belongs to.
	EventGuildID() snowflake.ID
}

// TrackEndReason represents why a track ended.
type TrackEndReason string

const (
	// TrackEndFinished means the track finished normally.
	TrackEndFinished TrackEndReason = "finished"
	// TrackEndLoadFailed means the track failed to load.
	TrackEndLoadFailed TrackEndReason = "load_failed"
	// TrackEndStopped means the track was stopped by the user.
	TrackEndStopped TrackEndReason = "stopped"
	// TrackEndReplaced means the track was replaced by another.
	TrackEndReplaced TrackEndReason = "replaced"
	// TrackEndCleanup means the track was cleaned up.
	TrackEndCleanup TrackEndReason = "cleanup"
)

// ShouldAdvanceQueue returns true if this end reason should advance the queue.
func (r TrackEndReason) ShouldAdvanceQueue() bool {
	return r == TrackEndFinished || r == TrackEndLoadFailed
}

// TrackEndedEvent is published when a track ends (from Lavalink).
type TrackEndedEvent struct {
	GuildID snowflake.ID
	Reason  TrackEndReason
	TrackID TrackID // queue entry the ended track was played for, if known
	Encoded string  // encoded payload of the track that ended, if known
}

func (TrackEndedEvent) EventName() string { return "track_ended" }
func (e TrackEndedEvent) EventGuildID() snowflake.ID { return e.GuildID }

// TrackFinishedEvent is published when the current track of a session
// reached its natural end and was removed from the queue.
type TrackFinishedEvent struct {
	GuildID               snowflake.ID
	SessionID             uuid.UUID
	NotificationChannelID snowflake.ID
	Title                 string
}

func (TrackFinishedEvent) EventName() string { return "track_finished" }
func (e TrackFinishedEvent) EventGuildID() snowflake.ID { return e.GuildID }

// PeriodicTickEvent is published every tick interval while a session is alive.
type PeriodicTickEvent struct {
	GuildID               snowflake.ID
	SessionID             uuid.UUID
	VoiceChannelID        snowflake.ID
	NotificationChannelID snowflake.ID
	Occurrence            int // 1 for the first tick
	Elapsed               time.Duration
}

func (PeriodicTickEvent) EventName() string { return "periodic_tick" }
func (e PeriodicTickEvent) EventGuildID() snowflake.ID { return e.GuildID }
