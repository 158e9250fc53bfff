package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/hibiki/internal/modules/music_player/application/ports"
	"github.com/sglre6355/hibiki/internal/modules/music_player/domain"
)

// JoinInput contains the input for the Join use case.
type JoinInput struct {
	GuildID               snowflake.ID
	UserID                snowflake.ID
	NotificationChannelID snowflake.ID
}

// JoinOutput contains the result of the Join use case.
type JoinOutput struct {
	Session          *domain.VoiceSession // snapshot
	AlreadyConnected bool
}

// LeaveInput contains the input for the Leave use case.
type LeaveInput struct {
	GuildID snowflake.ID
}

// SetMuteInput contains the input for the SetMute use case.
type SetMuteInput struct {
	GuildID snowflake.ID
	Muted   bool
}

// SetDeafenInput contains the input for the SetDeafen use case.
type SetDeafenInput struct {
	GuildID  snowflake.ID
	Deafened bool
}

// BotVoiceStateChangeInput contains the input for handling bot voice state changes.
type BotVoiceStateChangeInput struct {
	GuildID      snowflake.ID
	NewChannelID *snowflake.ID // nil means disconnected
	// ObservedAt is when the gateway event was received. A disconnect
	// observed before the current session connected belongs to an earlier
	// session and is ignored. Zero applies the change unconditionally.
	ObservedAt time.Time
}

// VoiceChannelService handles voice channel operations.
type VoiceChannelService struct {
	repo            domain.SessionRepository
	voiceConnection ports.VoiceConnection
	voiceState      ports.VoiceStateProvider
	subscriber      ports.SessionSubscriber
}

// NewVoiceChannelService creates a new VoiceChannelService.
// A nil voiceConnection makes every connecting operation fail with ErrTransportInitFailed.
func NewVoiceChannelService(
	repo domain.SessionRepository,
	voiceConnection ports.VoiceConnection,
	voiceState ports.VoiceStateProvider,
	subscriber ports.SessionSubscriber,
) *VoiceChannelService {
	return &VoiceChannelService{
		repo:            repo,
		voiceConnection: voiceConnection,
		voiceState:      voiceState,
		subscriber:      subscriber,
	}
}

// Join joins the bot to the invoking user's voice channel.
// If the guild already has a session it is returned unchanged.
func (v *VoiceChannelService) Join(ctx context.Context, input JoinInput) (*JoinOutput, error) {
	lease := v.repo.Acquire(input.GuildID)
	defer lease.Release()

	if existing := lease.Session(); existing != nil {
		return &JoinOutput{Session: existing.Snapshot(), AlreadyConnected: true}, nil
	}

	if v.voiceConnection == nil {
		return nil, ErrTransportInitFailed
	}

	userChannel, err := v.voiceState.GetUserVoiceChannel(input.GuildID, input.UserID)
	if err != nil || userChannel == nil {
		return nil, ErrNotInVoiceChannel
	}
	voiceChannelID := *userChannel

	bitrate, err := v.voiceState.GetChannelBitrate(voiceChannelID)
	if err != nil {
		slog.Debug("could not resolve voice channel bitrate",
			"guild", input.GuildID,
			"channel", voiceChannelID,
			"error", err,
		)
		return nil, ErrNotInVoiceChannel
	}

	if err := v.voiceConnection.JoinChannel(ctx, input.GuildID, voiceChannelID); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	session := domain.NewVoiceSession(
		input.GuildID,
		voiceChannelID,
		input.NotificationChannelID,
		bitrate,
	)
	lease.Save(session)
	v.subscriber.Subscribe(session)

	slog.Info("joined voice channel",
		"guild", input.GuildID,
		"channel", voiceChannelID,
		"session", session.GetID(),
		"bitrate", bitrate,
	)

	return &JoinOutput{Session: session.Snapshot()}, nil
}

// Leave leaves the voice channel and deletes the session with its queue.
// The session's subscriptions are cancelled before Leave returns.
func (v *VoiceChannelService) Leave(ctx context.Context, input LeaveInput) error {
	lease := v.repo.Acquire(input.GuildID)
	defer lease.Release()

	session := lease.Session()
	if session == nil {
		return ErrNotInVoiceChannel
	}

	v.subscriber.Cancel(input.GuildID)
	lease.Delete()

	if v.voiceConnection == nil {
		return ErrTransportInitFailed
	}
	if err := v.voiceConnection.LeaveChannel(ctx, input.GuildID); err != nil {
		return fmt.Errorf("failed to leave voice channel: %w", err)
	}

	slog.Info("left voice channel",
		"guild", input.GuildID,
		"channel", session.GetVoiceChannelID(),
		"session", session.GetID(),
	)

	return nil
}

// Get returns a snapshot of the guild's session, or nil if there is none.
func (v *VoiceChannelService) Get(guildID snowflake.ID) *domain.VoiceSession {
	lease := v.repo.Acquire(guildID)
	defer lease.Release()

	session := lease.Session()
	if session == nil {
		return nil
	}
	return session.Snapshot()
}

// SetMute changes the bot's self-mute flag.
func (v *VoiceChannelService) SetMute(ctx context.Context, input SetMuteInput) error {
	lease := v.repo.Acquire(input.GuildID)
	defer lease.Release()

	session := lease.Session()
	if session == nil {
		return ErrNotInVoiceChannel
	}

	switch {
	case input.Muted && session.IsMuted():
		return ErrAlreadyMuted
	case !input.Muted && !session.IsMuted():
		return ErrNotMuted
	}

	if err := v.updateSelfState(ctx, session, input.Muted, session.IsDeafened()); err != nil {
		return err
	}

	session.SetMuted(input.Muted)
	lease.Save(session)
	return nil
}

// SetDeafen changes the bot's self-deafen flag.
func (v *VoiceChannelService) SetDeafen(ctx context.Context, input SetDeafenInput) error {
	lease := v.repo.Acquire(input.GuildID)
	defer lease.Release()

	session := lease.Session()
	if session == nil {
		return ErrNotInVoiceChannel
	}

	switch {
	case input.Deafened && session.IsDeafened():
		return ErrAlreadyDeafened
	case !input.Deafened && !session.IsDeafened():
		return ErrNotDeafened
	}

	if err := v.updateSelfState(ctx, session, session.IsMuted(), input.Deafened); err != nil {
		return err
	}

	session.SetDeafened(input.Deafened)
	lease.Save(session)
	return nil
}

func (v *VoiceChannelService) updateSelfState(
	ctx context.Context,
	session *domain.VoiceSession,
	mute, deaf bool,
) error {
	if v.voiceConnection == nil {
		return ErrTransportInitFailed
	}

	if err := v.voiceConnection.UpdateSelfState(
		ctx,
		session.GetGuildID(),
		session.GetVoiceChannelID(),
		mute,
		deaf,
	); err != nil {
		return fmt.Errorf("failed to update voice state: %w", err)
	}
	return nil
}

// HandleBotVoiceStateChange handles external voice state changes (bot moved or disconnected).
// This should be called when the bot's voice state changes due to external factors
// (e.g., being moved by a user or disconnected by Discord).
func (v *VoiceChannelService) HandleBotVoiceStateChange(input BotVoiceStateChangeInput) {
	lease := v.repo.Acquire(input.GuildID)
	defer lease.Release()

	session := lease.Session()
	if session == nil {
		// No session exists, nothing to do
		return
	}

	if input.NewChannelID == nil {
		if !input.ObservedAt.IsZero() && input.ObservedAt.Before(session.GetConnectedAt()) {
			slog.Debug("ignoring disconnect from an earlier voice session",
				"guild", input.GuildID,
				"session", session.GetID(),
				"observed_at", input.ObservedAt,
			)
			return
		}

		// Bot was disconnected from voice
		v.subscriber.Cancel(input.GuildID)
		lease.Delete()

		slog.Info("voice session ended by disconnect",
			"guild", input.GuildID,
			"session", session.GetID(),
		)
		return
	}

	// Bot was moved to a different channel
	if *input.NewChannelID != session.GetVoiceChannelID() {
		session.SetVoiceChannelID(*input.NewChannelID)
		lease.Save(session)
	}
}
