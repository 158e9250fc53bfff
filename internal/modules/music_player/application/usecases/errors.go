package usecases

import (
	"fmt"

	"github.com/sglre6355/hibiki/internal/bot"
)

// Domain errors for the music player module.
var (
	// ErrNotInVoiceChannel is returned when the user, or the bot, is not in a voice channel.
	ErrNotInVoiceChannel = bot.NewKindError("not_in_voice_channel", "not in a voice channel")

	// ErrAlreadyMuted is returned when muting while already muted.
	ErrAlreadyMuted = bot.NewKindError("already_muted", "already muted")

	// ErrNotMuted is returned when unmuting while not muted.
	ErrNotMuted = bot.NewKindError("not_muted", "not muted")

	// ErrAlreadyDeafened is returned when deafening while already deafened.
	ErrAlreadyDeafened = bot.NewKindError("already_deafened", "already deafened")

	// ErrNotDeafened is returned when undeafening while not deafened.
	ErrNotDeafened = bot.NewKindError("not_deafened", "not deafened")

	// ErrNotSeekable is returned when seeking a track that does not support it.
	ErrNotSeekable = bot.NewKindError("not_seekable", "the current track is not seekable")

	// ErrTransportInitFailed is returned when the voice client was never set up.
	ErrTransportInitFailed = bot.NewKindError("transport_init_failed", "voice client was not initialized")

	// ErrConnectionFailed wraps errors from connecting to a voice channel.
	ErrConnectionFailed = bot.NewKindError("connection_failed", "failed to connect to the voice channel")

	// ErrLoadFailed wraps errors from resolving a track.
	ErrLoadFailed = bot.NewKindError("load_failed", "failed to load track")

	// ErrNothingPlaying is returned when no track is currently playing.
	ErrNothingPlaying = fmt.Errorf("%w: nothing is currently playing", bot.ErrUnknown)
)
