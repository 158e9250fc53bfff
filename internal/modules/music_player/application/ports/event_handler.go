package ports

import (
	"context"

	"github.com/sglre6355/hibiki/internal/modules/music_player/domain"
)

// EventHandler receives every event kind delivered by the event bus.
type EventHandler interface {
	HandleTrackEnded(ctx context.Context, event domain.TrackEndedEvent)
	HandleTrackFinished(ctx context.Context, event domain.TrackFinishedEvent)
	HandlePeriodicTick(ctx context.Context, event domain.PeriodicTickEvent)
}

// NopEventHandler ignores every event. Embed it to handle only some kinds.
type NopEventHandler struct{}

func (NopEventHandler) HandleTrackEnded(context.Context, domain.TrackEndedEvent)       {}
func (NopEventHandler) HandleTrackFinished(context.Context, domain.TrackFinishedEvent) {}
func (NopEventHandler) HandlePeriodicTick(context.Context, domain.PeriodicTickEvent)   {}
