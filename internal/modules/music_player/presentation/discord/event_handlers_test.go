package discord

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/hibiki/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/hibiki/internal/modules/music_player/infrastructure"
)

const testBotID = snowflake.ID(999)

func newEventFixture(t *testing.T) (*EventHandlers, *usecases.VoiceChannelService) {
	t.Helper()

	repo := infrastructure.NewMemoryRepository()
	voiceChannel := usecases.NewVoiceChannelService(repo, &fakeVoice{}, fakeVoiceState{}, fakeSubscriber{})
	if _, err := voiceChannel.Join(context.Background(), usecases.JoinInput{
		GuildID:               testGuildID,
		UserID:                testUserID,
		NotificationChannelID: 300,
	}); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	return NewEventHandlers(testBotID, voiceChannel), voiceChannel
}

func voiceStateUpdate(userID, guildID, channelID string) *discordgo.VoiceStateUpdate {
	return &discordgo.VoiceStateUpdate{
		VoiceState: &discordgo.VoiceState{
			UserID:    userID,
			GuildID:   guildID,
			ChannelID: channelID,
		},
	}
}

func TestHandleVoiceStateUpdate(t *testing.T) {
	tests := []struct {
		name        string
		event       *discordgo.VoiceStateUpdate
		wantSession bool
		wantChannel snowflake.ID
	}{
		{
			name:        "other user disconnects",
			event:       voiceStateUpdate("100", "1", ""),
			wantSession: true,
			wantChannel: testVoiceChannel,
		},
		{
			name:        "bot moved",
			event:       voiceStateUpdate("999", "1", "555"),
			wantSession: true,
			wantChannel: 555,
		},
		{
			name:        "bot disconnected",
			event:       voiceStateUpdate("999", "1", ""),
			wantSession: false,
		},
		{
			name:        "malformed guild",
			event:       voiceStateUpdate("999", "not-a-guild", ""),
			wantSession: true,
			wantChannel: testVoiceChannel,
		},
		{
			name:        "malformed channel",
			event:       voiceStateUpdate("999", "1", "not-a-channel"),
			wantSession: true,
			wantChannel: testVoiceChannel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlers, voiceChannel := newEventFixture(t)

			handlers.HandleVoiceStateUpdate(nil, tt.event)

			session := voiceChannel.Get(testGuildID)
			if (session != nil) != tt.wantSession {
				t.Fatalf("expected session present=%v, got %v", tt.wantSession, session != nil)
			}
			if session != nil && session.GetVoiceChannelID() != tt.wantChannel {
				t.Errorf("expected channel %d, got %d", tt.wantChannel, session.GetVoiceChannelID())
			}
		})
	}
}

func TestHandleVoiceStateUpdate_NilState(t *testing.T) {
	handlers, voiceChannel := newEventFixture(t)

	handlers.HandleVoiceStateUpdate(nil, &discordgo.VoiceStateUpdate{})

	if voiceChannel.Get(testGuildID) == nil {
		t.Error("expected the session to survive an empty update")
	}
}
