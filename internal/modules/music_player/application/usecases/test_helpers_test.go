package usecases

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/google/uuid"
	"github.com/sglre6355/hibiki/internal/modules/music_player/application/ports"
	"github.com/sglre6355/hibiki/internal/modules/music_player/domain"
)

var errTest = errors.New("test error")

func resolvedTrack(id string) *domain.Track {
	return &domain.Track{
		ID:          domain.TrackID(id),
		SourceURL:   "https://example.com/" + id,
		Title:       "Track " + id,
		Encoded:     "encoded-" + id,
		Duration:    3 * time.Minute,
		Seekable:    true,
		Volume:      DefaultVolume,
		RequesterID: snowflake.ID(123),
	}
}

func unresolvedTrack(id string) *domain.Track {
	return domain.NewTrack("https://example.com/"+id, 123, DefaultVolume)
}

// mockRepository serializes every lease behind one mutex.
type mockRepository struct {
	mu       sync.Mutex
	sessions map[snowflake.ID]*domain.VoiceSession
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		sessions: make(map[snowflake.ID]*domain.VoiceSession),
	}
}

func (m *mockRepository) Acquire(guildID snowflake.ID) domain.SessionLease {
	m.mu.Lock()
	return &mockLease{repo: m, guildID: guildID}
}

// Count must not be called while a lease is held.
func (m *mockRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// createSession stores a connected session holding tracks.
func (m *mockRepository) createSession(guildID snowflake.ID, tracks ...*domain.Track) *domain.VoiceSession {
	session := domain.NewVoiceSession(guildID, 2, 3, 64000)
	session.Queue.Append(tracks...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[guildID] = session
	return session
}

func (m *mockRepository) session(guildID snowflake.ID) *domain.VoiceSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[guildID]
}

type mockLease struct {
	repo     *mockRepository
	guildID  snowflake.ID
	released bool
}

func (l *mockLease) Session() *domain.VoiceSession {
	return l.repo.sessions[l.guildID]
}

func (l *mockLease) Save(session *domain.VoiceSession) {
	l.repo.sessions[l.guildID] = session
}

func (l *mockLease) Delete() {
	delete(l.repo.sessions, l.guildID)
}

func (l *mockLease) Release() {
	if l.released {
		return
	}
	l.released = true
	l.repo.mu.Unlock()
}

type selfState struct {
	channelID  snowflake.ID
	mute, deaf bool
}

type mockVoiceConnection struct {
	joinErr   error
	updateErr error
	leaveErr  error

	joined  []snowflake.ID
	updates []selfState
	left    []snowflake.ID
}

func (m *mockVoiceConnection) JoinChannel(_ context.Context, _, channelID snowflake.ID) error {
	if m.joinErr != nil {
		return m.joinErr
	}
	m.joined = append(m.joined, channelID)
	return nil
}

func (m *mockVoiceConnection) UpdateSelfState(
	_ context.Context,
	_, channelID snowflake.ID,
	mute, deaf bool,
) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates = append(m.updates, selfState{channelID: channelID, mute: mute, deaf: deaf})
	return nil
}

func (m *mockVoiceConnection) LeaveChannel(_ context.Context, guildID snowflake.ID) error {
	m.left = append(m.left, guildID)
	return m.leaveErr
}

type mockVoiceStateProvider struct {
	channels   map[snowflake.ID]snowflake.ID // userID -> channelID
	bitrates   map[snowflake.ID]int          // channelID -> bitrate
	err        error
	bitrateErr error
}

func (m *mockVoiceStateProvider) GetUserVoiceChannel(
	_, userID snowflake.ID,
) (*snowflake.ID, error) {
	if m.err != nil {
		return nil, m.err
	}
	channelID, ok := m.channels[userID]
	if !ok {
		return nil, nil
	}
	return &channelID, nil
}

func (m *mockVoiceStateProvider) GetChannelBitrate(channelID snowflake.ID) (int, error) {
	if m.bitrateErr != nil {
		return 0, m.bitrateErr
	}
	return m.bitrates[channelID], nil
}

type mockSubscriber struct {
	subscribed []uuid.UUID
	cancelled  []snowflake.ID
}

func (m *mockSubscriber) Subscribe(session *domain.VoiceSession) {
	m.subscribed = append(m.subscribed, session.GetID())
}

func (m *mockSubscriber) Cancel(guildID snowflake.ID) {
	m.cancelled = append(m.cancelled, guildID)
}

type mockAudioPlayer struct {
	playErr   map[string]error // encoded -> error
	stopErr   error
	seekErr   error
	volumeErr error

	played  []*domain.Track
	stopped int
	seeks   []time.Duration
	volumes []float64
}

func (m *mockAudioPlayer) Play(_ context.Context, _ snowflake.ID, track *domain.Track) error {
	if err := m.playErr[track.Encoded]; err != nil {
		return err
	}
	m.played = append(m.played, track.Clone())
	return nil
}

func (m *mockAudioPlayer) Stop(_ context.Context, _ snowflake.ID) error {
	m.stopped++
	return m.stopErr
}

func (m *mockAudioPlayer) Seek(_ context.Context, _ snowflake.ID, position time.Duration) error {
	if m.seekErr != nil {
		return m.seekErr
	}
	m.seeks = append(m.seeks, position)
	return nil
}

func (m *mockAudioPlayer) SetVolume(_ context.Context, _ snowflake.ID, volume float64) error {
	if m.volumeErr != nil {
		return m.volumeErr
	}
	m.volumes = append(m.volumes, volume)
	return nil
}

func (m *mockAudioPlayer) lastPlayed() *domain.Track {
	if len(m.played) == 0 {
		return nil
	}
	return m.played[len(m.played)-1]
}

// mockResolver resolves every URL to a seekable track unless told otherwise.
type mockResolver struct {
	errs  map[string]error
	calls []string
}

func (m *mockResolver) Resolve(_ context.Context, url string) (*ports.ResolvedSource, error) {
	m.calls = append(m.calls, url)
	if err := m.errs[url]; err != nil {
		return nil, err
	}
	return &ports.ResolvedSource{
		Encoded:    "encoded:" + url,
		Title:      "Title of " + url,
		Duration:   3 * time.Minute,
		URI:        url,
		SourceName: "http",
		IsSeekable: true,
	}, nil
}

type mockEventPublisher struct {
	events []domain.Event
	err    error
}

func (m *mockEventPublisher) Publish(event domain.Event) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

// Compile-time checks for the mocks.
var (
	_ domain.SessionRepository = (*mockRepository)(nil)
	_ ports.VoiceConnection    = (*mockVoiceConnection)(nil)
	_ ports.VoiceStateProvider = (*mockVoiceStateProvider)(nil)
	_ ports.SessionSubscriber  = (*mockSubscriber)(nil)
	_ ports.AudioPlayer        = (*mockAudioPlayer)(nil)
	_ ports.SourceResolver     = (*mockResolver)(nil)
	_ ports.EventPublisher     = (*mockEventPublisher)(nil)
)
