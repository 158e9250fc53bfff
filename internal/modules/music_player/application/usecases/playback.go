package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/hibiki/internal/bot"
	"github.com/sglre6355/hibiki/internal/modules/music_player/application/ports"
	"github.com/sglre6355/hibiki/internal/modules/music_player/domain"
)

// DefaultVolume is the volume new tracks start at.
const DefaultVolume = 0.5

// EnqueueInput contains the input for the Enqueue use case.
type EnqueueInput struct {
	GuildID     snowflake.ID
	URL         string
	RequesterID snowflake.ID
}

// EnqueueOutput contains the result of the Enqueue use case.
type EnqueueOutput struct {
	Track          *domain.Track
	Position       int // 0 means the track is playing now
	StartedPlaying bool
}

// SkipInput contains the input for the Skip use case.
type SkipInput struct {
	GuildID snowflake.ID
}

// SkipOutput contains the result of the Skip use case.
type SkipOutput struct {
	Skipped *domain.Track
	Next    *domain.Track // nil if the queue ran dry
}

// StopInput contains the input for the Stop use case.
type StopInput struct {
	GuildID snowflake.ID
}

// SeekInput contains the input for the Seek use case.
type SeekInput struct {
	GuildID  snowflake.ID
	Position time.Duration
}

// SetVolumeInput contains the input for the SetVolume use case.
type SetVolumeInput struct {
	GuildID snowflake.ID
	Percent int
}

// ListOutput contains the current and upcoming tracks of a queue.
type ListOutput struct {
	Current  *domain.Track
	Upcoming []*domain.Track
}

// PlaybackService handles the playback queue of voice sessions.
type PlaybackService struct {
	repo          domain.SessionRepository
	player        ports.AudioPlayer
	resolver      ports.SourceResolver
	publisher     ports.EventPublisher
	defaultVolume float64
}

// NewPlaybackService creates a new PlaybackService.
// A nil player makes Enqueue fail with ErrTransportInitFailed.
func NewPlaybackService(
	repo domain.SessionRepository,
	player ports.AudioPlayer,
	resolver ports.SourceResolver,
	publisher ports.EventPublisher,
	defaultVolume float64,
) *PlaybackService {
	return &PlaybackService{
		repo:          repo,
		player:        player,
		resolver:      resolver,
		publisher:     publisher,
		defaultVolume: domain.ClampVolume(defaultVolume),
	}
}

// Enqueue appends a track to the guild's queue.
// If nothing was playing, the track is resolved and started immediately.
func (p *PlaybackService) Enqueue(ctx context.Context, input EnqueueInput) (*EnqueueOutput, error) {
	sourceURL, err := domain.ParseSourceURL(input.URL)
	if err != nil {
		return nil, bot.InvalidArguments(err.Error())
	}

	if p.player == nil {
		return nil, ErrTransportInitFailed
	}

	lease := p.repo.Acquire(input.GuildID)
	defer lease.Release()

	session := lease.Session()
	if session == nil {
		return nil, ErrNotInVoiceChannel
	}

	track := domain.NewTrack(sourceURL.String(), input.RequesterID, p.defaultVolume)
	wasEmpty := session.Queue.Append(track)

	if !wasEmpty {
		lease.Save(session)
		return &EnqueueOutput{
			Track:    track.Clone(),
			Position: session.Queue.Len() - 1,
		}, nil
	}

	if err := p.start(ctx, input.GuildID, track); err != nil {
		session.Queue.Pop()
		return nil, err
	}
	lease.Save(session)

	return &EnqueueOutput{Track: track.Clone(), StartedPlaying: true}, nil
}

// Skip drops the current track and starts the next one.
func (p *PlaybackService) Skip(ctx context.Context, input SkipInput) (*SkipOutput, error) {
	if p.player == nil {
		return nil, ErrTransportInitFailed
	}

	lease := p.repo.Acquire(input.GuildID)
	defer lease.Release()

	session := lease.Session()
	if session == nil {
		return nil, ErrNotInVoiceChannel
	}

	skipped := session.Queue.Pop()
	if skipped == nil {
		return nil, ErrNothingPlaying
	}

	next, err := p.startCurrent(ctx, session)
	lease.Save(session)
	if err != nil {
		return nil, err
	}

	return &SkipOutput{Skipped: skipped, Next: next.Clone()}, nil
}

// Stop clears the guild's queue and halts playback.
// Stopping an idle session succeeds.
func (p *PlaybackService) Stop(ctx context.Context, input StopInput) error {
	lease := p.repo.Acquire(input.GuildID)
	defer lease.Release()

	session := lease.Session()
	if session == nil {
		return ErrNotInVoiceChannel
	}

	session.Queue.Clear()
	lease.Save(session)

	if p.player == nil {
		return nil
	}
	if err := p.player.Stop(ctx, input.GuildID); err != nil {
		slog.Warn("failed to stop player",
			"guild", input.GuildID,
			"error", err,
		)
	}
	return nil
}

// Seek moves the playback position of the current track.
func (p *PlaybackService) Seek(ctx context.Context, input SeekInput) error {
	if input.Position < 0 {
		return bot.InvalidArguments("position must not be negative")
	}
	if p.player == nil {
		return ErrTransportInitFailed
	}

	lease := p.repo.Acquire(input.GuildID)
	defer lease.Release()

	session := lease.Session()
	if session == nil {
		return ErrNotInVoiceChannel
	}

	current := session.Queue.Current()
	if current == nil {
		return ErrNothingPlaying
	}
	if !current.Seekable {
		return ErrNotSeekable
	}

	if err := p.player.Seek(ctx, input.GuildID, input.Position); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}

	current.Position = input.Position
	lease.Save(session)
	return nil
}

// SetVolume changes the volume of the current track.
func (p *PlaybackService) SetVolume(ctx context.Context, input SetVolumeInput) error {
	if input.Percent < 0 || input.Percent > 100 {
		return bot.InvalidArguments("volume must be between 0 and 100")
	}
	if p.player == nil {
		return ErrTransportInitFailed
	}

	lease := p.repo.Acquire(input.GuildID)
	defer lease.Release()

	session := lease.Session()
	if session == nil {
		return ErrNotInVoiceChannel
	}

	current := session.Queue.Current()
	if current == nil {
		return ErrNothingPlaying
	}

	volume := float64(input.Percent) / 100
	if err := p.player.SetVolume(ctx, input.GuildID, volume); err != nil {
		return fmt.Errorf("failed to set volume: %w", err)
	}

	current.Volume = volume
	lease.Save(session)
	return nil
}

// Current returns a copy of the guild's current track, or nil.
func (p *PlaybackService) Current(guildID snowflake.ID) *domain.Track {
	lease := p.repo.Acquire(guildID)
	defer lease.Release()

	session := lease.Session()
	if session == nil {
		return nil
	}
	return session.Queue.Current().Clone()
}

// List returns copies of the current and upcoming tracks.
func (p *PlaybackService) List(guildID snowflake.ID) (*ListOutput, error) {
	lease := p.repo.Acquire(guildID)
	defer lease.Release()

	session := lease.Session()
	if session == nil {
		return nil, ErrNotInVoiceChannel
	}

	output := &ListOutput{Current: session.Queue.Current().Clone()}
	for _, track := range session.Queue.Upcoming() {
		output.Upcoming = append(output.Upcoming, track.Clone())
	}
	return output, nil
}

// HandleTrackEnded advances the queue after the current track ended on its own.
// Natural ends are announced with a TrackFinishedEvent.
func (p *PlaybackService) HandleTrackEnded(ctx context.Context, event domain.TrackEndedEvent) error {
	if !event.Reason.ShouldAdvanceQueue() {
		return nil
	}

	lease := p.repo.Acquire(event.GuildID)
	defer lease.Release()

	session := lease.Session()
	if session == nil {
		return nil
	}

	current := session.Queue.Current()
	if current == nil {
		return nil
	}
	if isStaleEnd(current, event) {
		slog.Debug("ignoring end of a track that is no longer current",
			"guild", event.GuildID,
		)
		return nil
	}

	session.Queue.Pop()

	if event.Reason == domain.TrackEndFinished {
		if err := p.publisher.Publish(domain.TrackFinishedEvent{
			GuildID:               event.GuildID,
			SessionID:             session.GetID(),
			NotificationChannelID: session.GetNotificationChannelID(),
			Title:                 current.DisplayTitle(),
		}); err != nil {
			slog.Warn("failed to publish track finished event",
				"guild", event.GuildID,
				"error", err,
			)
		}
	}

	_, err := p.startCurrent(ctx, session)
	lease.Save(session)
	return err
}

// isStaleEnd reports whether event ended a track other than current.
// The queue entry id is preferred since the same URL may be queued twice.
func isStaleEnd(current *domain.Track, event domain.TrackEndedEvent) bool {
	switch {
	case event.TrackID != "":
		return current.ID != event.TrackID
	case event.Encoded != "":
		return current.Encoded != event.Encoded
	default:
		return false
	}
}

// startCurrent plays the head of the queue. Tracks that fail to start are
// dropped until one starts; an exhausted queue stops the player.
func (p *PlaybackService) startCurrent(
	ctx context.Context,
	session *domain.VoiceSession,
) (*domain.Track, error) {
	guildID := session.GetGuildID()

	for {
		current := session.Queue.Current()
		if current == nil {
			if err := p.player.Stop(ctx, guildID); err != nil {
				return nil, fmt.Errorf("failed to stop player: %w", err)
			}
			return nil, nil
		}

		if err := p.start(ctx, guildID, current); err != nil {
			slog.Warn("dropping track that failed to start",
				"guild", guildID,
				"url", current.SourceURL,
				"error", err,
			)
			session.Queue.Pop()
			continue
		}

		return current, nil
	}
}

// start resolves track if needed and plays it from the beginning.
func (p *PlaybackService) start(ctx context.Context, guildID snowflake.ID, track *domain.Track) error {
	if !track.IsResolved() {
		source, err := p.resolver.Resolve(ctx, track.SourceURL)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}
		track.MarkResolved(
			source.Encoded,
			source.Title,
			source.Duration,
			source.SourceName,
			source.IsStream,
			source.IsSeekable,
		)
	}

	track.Position = 0
	if err := p.player.Play(ctx, guildID, track); err != nil {
		return fmt.Errorf("failed to play track: %w", err)
	}

	slog.Debug("started track",
		"guild", guildID,
		"track", track.ID,
		"title", track.Title,
	)
	return nil
}
