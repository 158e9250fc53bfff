package infrastructure

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/hibiki/internal/modules/music_player/application/ports"
	"github.com/sglre6355/hibiki/internal/modules/music_player/domain"
)

var (
	// ErrEventBusClosed is returned when publishing after Close.
	ErrEventBusClosed = errors.New("event bus is closed")

	// ErrEventBusStarted is returned when Start is called twice.
	ErrEventBusStarted = errors.New("event bus already started")
)

// Compile-time check that ChannelEventBus implements ports.EventPublisher.
var _ ports.EventPublisher = (*ChannelEventBus)(nil)

// ChannelEventBus delivers events to a fixed set of handlers. Each guild has
// its own queue and dispatcher goroutine, so events of one guild arrive in
// publish order while a slow handler never holds up another guild. Queues are
// unbounded: Publish never blocks and never drops.
type ChannelEventBus struct {
	mu     sync.Mutex
	queues map[snowflake.ID]*guildQueue

	handlers []ports.EventHandler
	started  bool
	closed   bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// guildQueue holds the undelivered events of one guild.
// running is set while a dispatcher goroutine owns the queue.
type guildQueue struct {
	pending []domain.Event
	running bool
}

// NewChannelEventBus creates a new ChannelEventBus.
func NewChannelEventBus() *ChannelEventBus {
	ctx, cancel := context.WithCancel(context.Background())

	return &ChannelEventBus{
		queues: make(map[snowflake.ID]*guildQueue),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start registers the handlers and starts dispatching.
// Handlers cannot be added afterwards.
func (b *ChannelEventBus) Start(handlers ...ports.EventHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrEventBusClosed
	}
	if b.started {
		return ErrEventBusStarted
	}
	b.started = true
	b.handlers = handlers

	// Events published before Start
	for guildID, q := range b.queues {
		b.startDispatcherLocked(guildID, q)
	}

	slog.Debug("channel event bus started", "handlers", len(handlers))
	return nil
}

// Publish queues event for delivery.
func (b *ChannelEventBus) Publish(event domain.Event) error {
	guildID := event.EventGuildID()

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		slog.Warn("attempted to publish to closed event bus", "type", event.EventName())
		return ErrEventBusClosed
	}
	q, ok := b.queues[guildID]
	if !ok {
		q = &guildQueue{}
		b.queues[guildID] = q
	}
	q.pending = append(q.pending, event)
	if b.started {
		b.startDispatcherLocked(guildID, q)
	}
	b.mu.Unlock()

	slog.Debug("published event", "type", event.EventName(), "guild_id", guildID)
	return nil
}

// startDispatcherLocked must be called with b.mu held.
func (b *ChannelEventBus) startDispatcherLocked(guildID snowflake.ID, q *guildQueue) {
	if q.running {
		return
	}
	q.running = true

	b.wg.Add(1)
	go b.dispatch(guildID, q)
}

// dispatch drains q until it is empty, then releases it.
func (b *ChannelEventBus) dispatch(guildID snowflake.ID, q *guildQueue) {
	defer b.wg.Done()

	for {
		b.mu.Lock()
		if len(q.pending) == 0 || b.ctx.Err() != nil {
			q.running = false
			if len(q.pending) == 0 && b.queues[guildID] == q {
				delete(b.queues, guildID)
			}
			b.mu.Unlock()
			return
		}
		batch := q.pending
		q.pending = nil
		b.mu.Unlock()

		for _, event := range batch {
			if b.ctx.Err() != nil {
				return
			}
			b.deliver(event)
		}
	}
}

func (b *ChannelEventBus) deliver(event domain.Event) {
	for _, handler := range b.handlers {
		switch e := event.(type) {
		case domain.TrackEndedEvent:
			handler.HandleTrackEnded(b.ctx, e)
		case domain.TrackFinishedEvent:
			handler.HandleTrackFinished(b.ctx, e)
		case domain.PeriodicTickEvent:
			handler.HandlePeriodicTick(b.ctx, e)
		default:
			slog.Warn("dropping event of unknown type", "type", event.EventName())
			return
		}
	}
}

// Pending returns the number of events waiting for delivery across all guilds.
func (b *ChannelEventBus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := 0
	for _, q := range b.queues {
		total += len(q.pending)
	}
	return total
}

// Close stops every dispatcher and waits for them to finish.
// Events still pending are discarded.
func (b *ChannelEventBus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	dropped := 0
	for _, q := range b.queues {
		dropped += len(q.pending)
		q.pending = nil
	}
	b.mu.Unlock()

	b.cancel()
	b.wg.Wait()

	slog.Debug("channel event bus closed", "dropped", dropped)
}
