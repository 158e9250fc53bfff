package discord

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/hibiki/internal/bot"
	"github.com/sglre6355/hibiki/internal/modules/music_player/application/ports"
	"github.com/sglre6355/hibiki/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/hibiki/internal/modules/music_player/domain"
	"github.com/sglre6355/hibiki/internal/modules/music_player/infrastructure"
)

const (
	testGuildID      = snowflake.ID(1)
	testUserID       = snowflake.ID(100)
	testVoiceChannel = snowflake.ID(200)
)

type fakeVoice struct {
	mu     sync.Mutex
	joined []snowflake.ID
	left   int
	mute   bool
	deaf   bool
}

func (f *fakeVoice) JoinChannel(_ context.Context, _, channelID snowflake.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joined = append(f.joined, channelID)
	return nil
}

func (f *fakeVoice) UpdateSelfState(_ context.Context, _, _ snowflake.ID, mute, deaf bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mute, f.deaf = mute, deaf
	return nil
}

func (f *fakeVoice) LeaveChannel(context.Context, snowflake.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.left++
	return nil
}

type fakeVoiceState struct{}

func (fakeVoiceState) GetUserVoiceChannel(_, userID snowflake.ID) (*snowflake.ID, error) {
	if userID != testUserID {
		return nil, nil
	}
	id := testVoiceChannel
	return &id, nil
}

func (fakeVoiceState) GetChannelBitrate(snowflake.ID) (int, error) {
	return 64000, nil
}

type fakeSubscriber struct{}

func (fakeSubscriber) Subscribe(*domain.VoiceSession) {}
func (fakeSubscriber) Cancel(snowflake.ID)            {}

type fakePlayer struct {
	mu       sync.Mutex
	played   []string
	seekedTo time.Duration
	volume   float64
	stopped  int
}

func (f *fakePlayer) Play(_ context.Context, _ snowflake.ID, track *domain.Track) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, track.Encoded)
	return nil
}

func (f *fakePlayer) Stop(context.Context, snowflake.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped++
	return nil
}

func (f *fakePlayer) Seek(_ context.Context, _ snowflake.ID, position time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seekedTo = position
	return nil
}

func (f *fakePlayer) SetVolume(_ context.Context, _ snowflake.ID, volume float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = volume
	return nil
}

type fakeResolver struct{}

func (fakeResolver) Resolve(_ context.Context, url string) (*ports.ResolvedSource, error) {
	return &ports.ResolvedSource{
		Encoded:    "enc:" + url,
		Title:      "Title of " + url,
		Duration:   3 * time.Minute,
		IsSeekable: true,
	}, nil
}

type fakePublisher struct{}

func (fakePublisher) Publish(domain.Event) error { return nil }

type fixture struct {
	handlers *CommandHandlers
	voice    *fakeVoice
	player   *fakePlayer
	chat     *bot.MockChatClient
	commands map[string]*bot.Command
}

func newFixture() *fixture {
	repo := infrastructure.NewMemoryRepository()
	voice := &fakeVoice{}
	player := &fakePlayer{}

	handlers := NewCommandHandlers(
		usecases.NewVoiceChannelService(repo, voice, fakeVoiceState{}, fakeSubscriber{}),
		usecases.NewPlaybackService(repo, player, fakeResolver{}, fakePublisher{}, usecases.DefaultVolume),
	)

	f := &fixture{
		handlers: handlers,
		voice:    voice,
		player:   player,
		chat:     bot.NewMockChatClient(),
		commands: make(map[string]*bot.Command),
	}
	for _, cmd := range handlers.Commands() {
		f.commands[cmd.Name] = cmd
	}
	return f
}

// run invokes a command as if testUserID sent it in testGuildID.
func (f *fixture) run(name string, args ...string) error {
	return f.runIn(testGuildID.String(), name, args...)
}

func (f *fixture) runIn(guildID, name string, args ...string) error {
	cmd, ok := f.commands[name]
	if !ok {
		panic("unknown command " + name)
	}
	return cmd.Handler(context.Background(), &bot.CommandContext{
		Message: &discordgo.Message{
			ID:        "10",
			ChannelID: "300",
			GuildID:   guildID,
			Author:    &discordgo.User{ID: testUserID.String()},
		},
		Args: args,
		Chat: f.chat,
	})
}

func TestCommands_AreGuildOnlyWithAliases(t *testing.T) {
	f := newFixture()

	aliases := map[string]string{
		"join":       "j",
		"leave":      "l",
		"mute":       "m",
		"queue":      "q",
		"stop":       "s",
		"volume":     "v",
		"nowplaying": "np",
	}

	for _, cmd := range f.handlers.Commands() {
		if !cmd.GuildOnly {
			t.Errorf("%s: expected a guild-only command", cmd.Name)
		}
		if want, ok := aliases[cmd.Name]; ok {
			if len(cmd.Aliases) != 1 || cmd.Aliases[0] != want {
				t.Errorf("%s: expected alias %q, got %v", cmd.Name, want, cmd.Aliases)
			}
		}
	}

	if _, err := bot.NewCommandTable(f.handlers.Commands()...); err != nil {
		t.Errorf("commands collide: %v", err)
	}
}

func TestHandleJoin(t *testing.T) {
	f := newFixture()

	if err := f.run("join"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.voice.joined) != 1 || f.voice.joined[0] != testVoiceChannel {
		t.Errorf("expected to join %d, got %v", testVoiceChannel, f.voice.joined)
	}
	if len(f.chat.Replies) != 0 {
		t.Errorf("expected no reply on a fresh join, got %v", f.chat.Replies)
	}

	if err := f.run("join"); err != nil {
		t.Fatalf("unexpected error on second join: %v", err)
	}
	if len(f.voice.joined) != 1 {
		t.Error("second join must not reconnect")
	}
	if len(f.chat.Replies) != 1 || f.chat.Replies[0] != "Already connected to <#200>." {
		t.Errorf("unexpected replies: %v", f.chat.Replies)
	}
}

func TestHandlers_RequireGuild(t *testing.T) {
	f := newFixture()

	if err := f.runIn("", "join"); !errors.Is(err, bot.ErrGuildOnly) {
		t.Errorf("expected ErrGuildOnly, got %v", err)
	}
}

func TestHandlers_WithoutSession(t *testing.T) {
	f := newFixture()

	for _, name := range []string{"leave", "mute", "unmute", "deafen", "undeafen", "skip", "stop", "nowplaying"} {
		if err := f.run(name); !errors.Is(err, usecases.ErrNotInVoiceChannel) {
			t.Errorf("%s: expected ErrNotInVoiceChannel, got %v", name, err)
		}
	}
}

func TestHandleMuteAndDeafen(t *testing.T) {
	f := newFixture()
	if err := f.run("join"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		command string
		wantErr error
	}{
		{command: "unmute", wantErr: usecases.ErrNotMuted},
		{command: "mute"},
		{command: "mute", wantErr: usecases.ErrAlreadyMuted},
		{command: "undeafen", wantErr: usecases.ErrNotDeafened},
		{command: "deafen"},
		{command: "deafen", wantErr: usecases.ErrAlreadyDeafened},
		{command: "unmute"},
		{command: "undeafen"},
	}

	for _, tt := range tests {
		err := f.run(tt.command)
		if tt.wantErr == nil && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.command, err)
		}
		if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: expected %v, got %v", tt.command, tt.wantErr, err)
		}
	}

	if f.voice.mute || f.voice.deaf {
		t.Error("expected the bot to end up neither muted nor deafened")
	}
}

func TestHandleQueue_Arguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing url", args: nil},
		{name: "too many args", args: []string{"https://a.example", "https://b.example"}},
		{name: "not a url", args: []string{"hello"}},
		{name: "unsupported scheme", args: []string{"ftp://example.com/a.mp3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if err := f.run("join"); err != nil {
				t.Fatal(err)
			}

			err := f.run("queue", tt.args...)
			if !errors.Is(err, bot.ErrInvalidArguments) {
				t.Errorf("expected ErrInvalidArguments, got %v", err)
			}
			if len(f.player.played) != 0 {
				t.Error("expected nothing to be played")
			}
		})
	}
}

func TestHandleQueue_PlaysAndLists(t *testing.T) {
	f := newFixture()
	if err := f.run("join"); err != nil {
		t.Fatal(err)
	}

	if err := f.run("queue", "https://example.com/a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.run("queue", "https://example.com/b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.player.played) != 1 || f.player.played[0] != "enc:https://example.com/a" {
		t.Errorf("expected only the first track to play, got %v", f.player.played)
	}

	if err := f.run("nowplaying"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reply := f.chat.Replies[len(f.chat.Replies)-1]
	if !strings.HasPrefix(reply, "Now playing: **Title of https://example.com/a** [03:00] (volume 50%)") {
		t.Errorf("unexpected now playing line: %q", reply)
	}
	if !strings.Contains(reply, "1. <https://example.com/b>") {
		t.Errorf("expected the upcoming track to be listed, got %q", reply)
	}
}

func TestHandleSkipAndStop(t *testing.T) {
	f := newFixture()
	if err := f.run("join"); err != nil {
		t.Fatal(err)
	}

	if err := f.run("skip"); !errors.Is(err, bot.ErrUnknown) {
		t.Errorf("expected an unknown error when nothing plays, got %v", err)
	}

	_ = f.run("queue", "https://example.com/a")
	_ = f.run("queue", "https://example.com/b")

	if err := f.run("skip"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.player.played) != 2 || f.player.played[1] != "enc:https://example.com/b" {
		t.Errorf("expected the second track to play, got %v", f.player.played)
	}

	if err := f.run("stop"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.run("stop"); err != nil {
		t.Errorf("stop must be idempotent, got %v", err)
	}
	if err := f.run("nowplaying"); !errors.Is(err, usecases.ErrNothingPlaying) {
		t.Errorf("expected ErrNothingPlaying after stop, got %v", err)
	}
}

func TestHandleSeek(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		queue   bool
		wantErr error
		want    time.Duration
	}{
		{name: "missing", args: nil, queue: true, wantErr: bot.ErrInvalidArguments},
		{name: "not a number", args: []string{"abc"}, queue: true, wantErr: bot.ErrInvalidArguments},
		{name: "negative", args: []string{"-5"}, queue: true, wantErr: bot.ErrInvalidArguments},
		{name: "nothing playing", args: []string{"30"}, wantErr: usecases.ErrNothingPlaying},
		{name: "ok", args: []string{"30"}, queue: true, want: 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if err := f.run("join"); err != nil {
				t.Fatal(err)
			}
			if tt.queue {
				if err := f.run("queue", "https://example.com/a"); err != nil {
					t.Fatal(err)
				}
			}

			err := f.run("seek", tt.args...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.player.seekedTo != tt.want {
				t.Errorf("expected seek to %v, got %v", tt.want, f.player.seekedTo)
			}
		})
	}
}

func TestHandleVolume(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		wantErr error
		want    float64
	}{
		{name: "plain", arg: "40", want: 0.4},
		{name: "percent sign", arg: "75%", want: 0.75},
		{name: "too loud", arg: "150", wantErr: bot.ErrInvalidArguments},
		{name: "not a number", arg: "loud", wantErr: bot.ErrInvalidArguments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if err := f.run("join"); err != nil {
				t.Fatal(err)
			}
			if err := f.run("queue", "https://example.com/a"); err != nil {
				t.Fatal(err)
			}

			err := f.run("volume", tt.arg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.player.volume != tt.want {
				t.Errorf("expected volume %v, got %v", tt.want, f.player.volume)
			}
		})
	}
}

func TestHandleLeave(t *testing.T) {
	f := newFixture()
	if err := f.run("join"); err != nil {
		t.Fatal(err)
	}

	if err := f.run("leave"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.voice.left != 1 {
		t.Errorf("expected one leave, got %d", f.voice.left)
	}
	if err := f.run("leave"); !errors.Is(err, usecases.ErrNotInVoiceChannel) {
		t.Errorf("expected ErrNotInVoiceChannel on second leave, got %v", err)
	}
}

func TestFormatNowPlaying_TruncatesUpcoming(t *testing.T) {
	output := &usecases.ListOutput{
		Current: &domain.Track{Title: "Song", Encoded: "x", Duration: time.Minute, Volume: 1},
	}
	for i := 0; i < maxListedTracks+3; i++ {
		output.Upcoming = append(output.Upcoming, &domain.Track{Title: "Next"})
	}

	got := formatNowPlaying(output)

	if !strings.HasPrefix(got, "Now playing: **Song** [01:00] (volume 100%)") {
		t.Errorf("unexpected header: %q", got)
	}
	if strings.Count(got, "Next") != maxListedTracks {
		t.Errorf("expected %d listed tracks, got %q", maxListedTracks, got)
	}
	if !strings.HasSuffix(got, "...and 3 more") {
		t.Errorf("expected a truncation line, got %q", got)
	}
}
