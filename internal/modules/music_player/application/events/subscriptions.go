package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/google/uuid"
	"github.com/sglre6355/hibiki/internal/modules/music_player/application/ports"
	"github.com/sglre6355/hibiki/internal/modules/music_player/domain"
)

// DefaultTickInterval is the period of the elapsed-time notification.
const DefaultTickInterval = 60 * time.Second

// TickerFunc starts a ticker firing every interval.
// The returned function stops it.
type TickerFunc func(interval time.Duration) (<-chan time.Time, func())

// NewTimeTicker is a TickerFunc backed by time.Ticker.
func NewTimeTicker(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}

// Compile-time check that Subscriptions implements ports.SessionSubscriber.
var _ ports.SessionSubscriber = (*Subscriptions)(nil)

type subscription struct {
	sessionID uuid.UUID
	cancel    context.CancelFunc
	done      chan struct{}
}

// Subscriptions tracks the live track-end and periodic subscriptions of every
// voice session. Each session owns one ticker goroutine.
type Subscriptions struct {
	publisher ports.EventPublisher
	interval  time.Duration
	newTicker TickerFunc

	mu   sync.Mutex
	live map[snowflake.ID]*subscription
}

// NewSubscriptions creates a Subscriptions publishing ticks every interval.
// A nil newTicker uses NewTimeTicker.
func NewSubscriptions(
	publisher ports.EventPublisher,
	interval time.Duration,
	newTicker TickerFunc,
) *Subscriptions {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if newTicker == nil {
		newTicker = NewTimeTicker
	}

	return &Subscriptions{
		publisher: publisher,
		interval:  interval,
		newTicker: newTicker,
		live:      make(map[snowflake.ID]*subscription),
	}
}

// Subscribe starts the subscriptions of session, replacing any previous ones
// of the same guild.
func (s *Subscriptions) Subscribe(session *domain.VoiceSession) {
	guildID := session.GetGuildID()
	s.Cancel(guildID)

	ctx, cancel := context.WithCancel(context.Background())
	sub := &subscription{
		sessionID: session.GetID(),
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	s.mu.Lock()
	s.live[guildID] = sub
	s.mu.Unlock()

	template := domain.PeriodicTickEvent{
		GuildID:               guildID,
		SessionID:             session.GetID(),
		VoiceChannelID:        session.GetVoiceChannelID(),
		NotificationChannelID: session.GetNotificationChannelID(),
	}
	ticks, stop := s.newTicker(s.interval)

	go s.tick(ctx, sub, ticks, stop, template)

	slog.Debug("subscribed voice session",
		"guild", guildID,
		"session", sub.sessionID,
	)
}

func (s *Subscriptions) tick(
	ctx context.Context,
	sub *subscription,
	ticks <-chan time.Time,
	stop func(),
	template domain.PeriodicTickEvent,
) {
	defer close(sub.done)
	defer stop()

	occurrence := 0
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			occurrence++

			event := template
			event.Occurrence = occurrence
			event.Elapsed = time.Duration(occurrence) * s.interval

			if err := s.publisher.Publish(event); err != nil {
				slog.Warn("failed to publish periodic tick",
					"guild", event.GuildID,
					"error", err,
				)
			}
		}
	}
}

// Cancel stops the guild's subscriptions. It returns after the ticker goroutine
// has exited, so no tick of the cancelled session is published afterwards.
func (s *Subscriptions) Cancel(guildID snowflake.ID) {
	s.mu.Lock()
	sub, ok := s.live[guildID]
	delete(s.live, guildID)
	s.mu.Unlock()

	if !ok {
		return
	}

	sub.cancel()
	<-sub.done

	slog.Debug("cancelled voice session subscriptions",
		"guild", guildID,
		"session", sub.sessionID,
	)
}

// SessionID returns the id of the guild's subscribed session.
func (s *Subscriptions) SessionID(guildID snowflake.ID) (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.live[guildID]
	if !ok {
		return uuid.Nil, false
	}
	return sub.sessionID, true
}

// IsActive reports whether sessionID is the guild's subscribed session.
func (s *Subscriptions) IsActive(guildID snowflake.ID, sessionID uuid.UUID) bool {
	id, ok := s.SessionID(guildID)
	return ok && id == sessionID
}

// Count returns the number of live subscriptions, two per subscribed session.
func (s *Subscriptions) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return 2 * len(s.live)
}

// Close cancels every subscription.
func (s *Subscriptions) Close() {
	s.mu.Lock()
	guildIDs := make([]snowflake.ID, 0, len(s.live))
	for guildID := range s.live {
		guildIDs = append(guildIDs, guildID)
	}
	s.mu.Unlock()

	for _, guildID := range guildIDs {
		s.Cancel(guildID)
	}
}
