package music_player

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/hibiki/internal/bot"
	"github.com/sglre6355/hibiki/internal/modules/music_player/application/events"
	"github.com/sglre6355/hibiki/internal/modules/music_player/application/ports"
	"github.com/sglre6355/hibiki/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/hibiki/internal/modules/music_player/infrastructure"
	"github.com/sglre6355/hibiki/internal/modules/music_player/presentation/discord"
)

// lavalinkConnectTimeout bounds the initial connection to the Lavalink node.
const lavalinkConnectTimeout = 10 * time.Second

func init() {
	bot.Register(&MusicPlayerModule{})
}

// Compile-time interface checks.
var _ bot.ConfigurableModule = (*MusicPlayerModule)(nil)

// MusicPlayerModule provides voice channel and playback commands.
type MusicPlayerModule struct {
	config          *Config
	commandHandlers *discord.CommandHandlers
	eventHandlers   *discord.EventHandlers
	lavalinkAdapter *infrastructure.LavalinkAdapter

	// Event-driven components
	eventBus      *infrastructure.ChannelEventBus
	subscriptions *events.Subscriptions
	repo          *infrastructure.MemoryRepository
}

// Name returns the module name.
func (m *MusicPlayerModule) Name() string {
	return "music_player"
}

// Commands returns the text commands for this module.
func (m *MusicPlayerModule) Commands() []*bot.Command {
	if m.commandHandlers == nil {
		return nil
	}
	return m.commandHandlers.Commands()
}

// EventHandlers returns the event handlers for this module.
func (m *MusicPlayerModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		func(s *discordgo.Session, event *discordgo.VoiceServerUpdate) {
			m.handleVoiceServerUpdate(s, event)
		},
		func(s *discordgo.Session, event *discordgo.VoiceStateUpdate) {
			m.handleVoiceStateUpdate(s, event)
		},
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *MusicPlayerModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
// Without a Discord session the voice transport stays uninitialized and every
// command needing it fails with ErrTransportInitFailed.
func (m *MusicPlayerModule) Init(deps bot.ModuleDependencies) error {
	if m.config == nil {
		m.config = &Config{
			DefaultVolume:     usecases.DefaultVolume,
			VoiceTickInterval: events.DefaultTickInterval,
		}
	}

	m.eventBus = infrastructure.NewChannelEventBus()
	m.subscriptions = events.NewSubscriptions(m.eventBus, m.config.VoiceTickInterval, nil)
	m.repo = infrastructure.NewMemoryRepository()

	var (
		voiceConnection ports.VoiceConnection
		voiceState      ports.VoiceStateProvider
		player          ports.AudioPlayer
		resolver        ports.SourceResolver
		botID           snowflake.ID
	)

	if deps.Session == nil {
		slog.Warn("music_player module initialized without session, Lavalink integration disabled")
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), lavalinkConnectTimeout)
		defer cancel()

		adapter, err := infrastructure.NewLavalinkAdapter(ctx, deps.Session, infrastructure.LavalinkConfig{
			NodeName: m.config.LavalinkNodeName,
			Address:  m.config.LavalinkAddress,
			Password: m.config.LavalinkPassword,
			Secure:   m.config.LavalinkSecure,
		}, m.eventBus)
		if err != nil {
			return err
		}
		m.lavalinkAdapter = adapter

		botID, err = snowflake.Parse(deps.Session.State.User.ID)
		if err != nil {
			return fmt.Errorf("failed to parse bot ID: %w", err)
		}

		voiceConnection = adapter
		player = adapter
		resolver = adapter
		voiceState = infrastructure.NewVoiceStateProvider(deps.Session.State)
	}

	voiceChannel := usecases.NewVoiceChannelService(
		m.repo,
		voiceConnection,
		voiceState,
		m.subscriptions,
	)
	playback := usecases.NewPlaybackService(
		m.repo,
		player,
		resolver,
		m.eventBus,
		m.config.DefaultVolume,
	)

	handlers := []ports.EventHandler{
		events.NewPlaybackEventHandler(playback.HandleTrackEnded, m.subscriptions),
	}
	if deps.Chat != nil {
		handlers = append(handlers, events.NewNotificationEventHandler(
			infrastructure.NewNotifier(deps.Chat),
			m.subscriptions,
		))
	}
	if err := m.eventBus.Start(handlers...); err != nil {
		return err
	}

	m.commandHandlers = discord.NewCommandHandlers(voiceChannel, playback)
	m.eventHandlers = discord.NewEventHandlers(botID, voiceChannel)

	slog.Info("music_player module initialized",
		"lavalink", m.lavalinkAdapter != nil,
		"tick_interval", m.config.VoiceTickInterval,
	)

	return nil
}

// Shutdown cleans up module resources.
func (m *MusicPlayerModule) Shutdown() error {
	// Stop tickers before the bus so nothing publishes into a closed bus
	if m.subscriptions != nil {
		m.subscriptions.Close()
	}

	if m.eventBus != nil {
		m.eventBus.Close()
	}

	if m.lavalinkAdapter != nil {
		m.lavalinkAdapter.Close()
	}

	return nil
}

// Event handlers.

func (m *MusicPlayerModule) handleVoiceServerUpdate(
	_ *discordgo.Session,
	event *discordgo.VoiceServerUpdate,
) {
	if m.lavalinkAdapter != nil {
		m.lavalinkAdapter.OnVoiceServerUpdate(event)
	}
}

func (m *MusicPlayerModule) handleVoiceStateUpdate(
	s *discordgo.Session,
	event *discordgo.VoiceStateUpdate,
) {
	if m.lavalinkAdapter != nil {
		m.lavalinkAdapter.OnVoiceStateUpdate(event)
	}
	if m.eventHandlers != nil {
		m.eventHandlers.HandleVoiceStateUpdate(s, event)
	}
}
