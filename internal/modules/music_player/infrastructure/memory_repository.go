package infrastructure

import (
	"sync"
	"sync/atomic"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/hibiki/internal/modules/music_player/domain"
)

// guildSlot holds one guild's session behind that guild's lock.
type guildSlot struct {
	mu      sync.Mutex
	session *domain.VoiceSession
}

// MemoryRepository is an in-memory implementation of SessionRepository.
// Each guild has its own lock; the map of slots has another.
type MemoryRepository struct {
	mu    sync.Mutex
	slots map[snowflake.ID]*guildSlot
	count atomic.Int64
}

// NewMemoryRepository creates a new MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		slots: make(map[snowflake.ID]*guildSlot),
	}
}

// Acquire locks the guild's slot and returns a lease on it.
func (r *MemoryRepository) Acquire(guildID snowflake.ID) domain.SessionLease {
	r.mu.Lock()
	slot, ok := r.slots[guildID]
	if !ok {
		slot = &guildSlot{}
		r.slots[guildID] = slot
	}
	r.mu.Unlock()

	slot.mu.Lock()
	return &memoryLease{repo: r, slot: slot}
}

// Count returns the number of live sessions (for testing/monitoring).
func (r *MemoryRepository) Count() int {
	return int(r.count.Load())
}

type memoryLease struct {
	repo     *MemoryRepository
	slot     *guildSlot
	released bool
}

func (l *memoryLease) Session() *domain.VoiceSession {
	return l.slot.session
}

func (l *memoryLease) Save(session *domain.VoiceSession) {
	if l.slot.session == nil && session != nil {
		l.repo.count.Add(1)
	}
	l.slot.session = session
}

func (l *memoryLease) Delete() {
	if l.slot.session != nil {
		l.repo.count.Add(-1)
	}
	l.slot.session = nil
}

func (l *memoryLease) Release() {
	if l.released {
		return
	}
	l.released = true
	l.slot.mu.Unlock()
}

// Ensure MemoryRepository implements SessionRepository.
var _ domain.SessionRepository = (*MemoryRepository)(nil)
