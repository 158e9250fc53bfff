package ports

import (
	"context"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/hibiki/internal/modules/music_player/domain"
)

// AudioPlayer defines the interface for audio playback operations.
type AudioPlayer interface {
	// Play starts playback of the given resolved track at its volume,
	// replacing whatever is playing.
	Play(ctx context.Context, guildID snowflake.ID, track *domain.Track) error

	// Stop stops the current playback.
	Stop(ctx context.Context, guildID snowflake.ID) error

	// Seek moves the playback position of the current track.
	Seek(ctx context.Context, guildID snowflake.ID, position time.Duration) error

	// SetVolume changes the volume of the current playback. volume is in [0, 1].
	SetVolume(ctx context.Context, guildID snowflake.ID, volume float64) error
}
