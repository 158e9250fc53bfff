package events

import (
	"context"
	"log/slog"

	"github.com/sglre6355/hibiki/internal/modules/music_player/application/ports"
	"github.com/sglre6355/hibiki/internal/modules/music_player/domain"
)

// TrackEndedFunc is the function signature for advancing a queue after its
// current track ended.
type TrackEndedFunc func(ctx context.Context, event domain.TrackEndedEvent) error

// Compile-time checks that the handlers implement ports.EventHandler.
var (
	_ ports.EventHandler = (*PlaybackEventHandler)(nil)
	_ ports.EventHandler = (*NotificationEventHandler)(nil)
)

// PlaybackEventHandler handles events related to playback control.
type PlaybackEventHandler struct {
	ports.NopEventHandler

	onTrackEnded  TrackEndedFunc
	subscriptions *Subscriptions
}

// NewPlaybackEventHandler creates a new PlaybackEventHandler.
func NewPlaybackEventHandler(
	onTrackEnded TrackEndedFunc,
	subscriptions *Subscriptions,
) *PlaybackEventHandler {
	return &PlaybackEventHandler{
		onTrackEnded:  onTrackEnded,
		subscriptions: subscriptions,
	}
}

// HandleTrackEnded advances the queue when the track finished or failed to load.
func (h *PlaybackEventHandler) HandleTrackEnded(ctx context.Context, event domain.TrackEndedEvent) {
	// Only advance queue for certain end reasons
	if !event.Reason.ShouldAdvanceQueue() {
		slog.Debug("track ended but should not advance queue",
			"guild", event.GuildID,
			"reason", event.Reason,
		)
		return
	}

	if _, ok := h.subscriptions.SessionID(event.GuildID); !ok {
		slog.Debug("track ended for a guild without a live session",
			"guild", event.GuildID,
		)
		return
	}

	if err := h.onTrackEnded(ctx, event); err != nil {
		slog.Error("failed to advance queue after track ended",
			"guild", event.GuildID,
			"error", err,
		)
	}
}

// NotificationEventHandler posts status messages to the session's
// notification channel. Delivery failures are logged and dropped.
type NotificationEventHandler struct {
	ports.NopEventHandler

	notifier      ports.NotificationSender
	subscriptions *Subscriptions
}

// NewNotificationEventHandler creates a new NotificationEventHandler.
func NewNotificationEventHandler(
	notifier ports.NotificationSender,
	subscriptions *Subscriptions,
) *NotificationEventHandler {
	return &NotificationEventHandler{
		notifier:      notifier,
		subscriptions: subscriptions,
	}
}

// HandleTrackFinished announces the finished track.
func (h *NotificationEventHandler) HandleTrackFinished(
	_ context.Context,
	event domain.TrackFinishedEvent,
) {
	if !h.subscriptions.IsActive(event.GuildID, event.SessionID) {
		slog.Debug("discarding track finished event of an ended session",
			"guild", event.GuildID,
			"session", event.SessionID,
		)
		return
	}

	if err := h.notifier.SendTrackEnded(event.NotificationChannelID, event.Title); err != nil {
		slog.Warn("failed to send track ended notification",
			"guild", event.GuildID,
			"channel", event.NotificationChannelID,
			"error", err,
		)
	}
}

// HandlePeriodicTick announces how long the bot has been in the voice channel.
func (h *NotificationEventHandler) HandlePeriodicTick(
	_ context.Context,
	event domain.PeriodicTickEvent,
) {
	if !h.subscriptions.IsActive(event.GuildID, event.SessionID) {
		slog.Debug("discarding periodic tick of an ended session",
			"guild", event.GuildID,
			"session", event.SessionID,
		)
		return
	}

	if err := h.notifier.SendElapsed(
		event.NotificationChannelID,
		event.VoiceChannelID,
		event.Elapsed,
	); err != nil {
		slog.Warn("failed to send elapsed time notification",
			"guild", event.GuildID,
			"channel", event.NotificationChannelID,
			"error", err,
		)
	}
}
