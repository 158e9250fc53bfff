package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/sglre6355/hibiki/internal/bot"
	"github.com/sglre6355/hibiki/internal/modules/translate/application/ports"
	"github.com/sglre6355/hibiki/internal/modules/translate/application/usecases"
	"github.com/sglre6355/hibiki/internal/modules/translate/domain"
	"github.com/sglre6355/hibiki/internal/modules/translate/infrastructure"
	"github.com/sglre6355/hibiki/internal/modules/translate/presentation/discord"
)

func init() {
	bot.Register(&TranslateModule{})
}

// Compile-time interface checks.
var _ bot.ConfigurableModule = (*TranslateModule)(nil)

// TranslateModule provides the translate command and flag-reaction translation.
type TranslateModule struct {
	config   *Config
	handlers *discord.Handlers
}

// Name returns the module name.
func (m *TranslateModule) Name() string {
	return "translate"
}

// Commands returns the text commands for this module.
func (m *TranslateModule) Commands() []*bot.Command {
	if m.handlers == nil {
		return nil
	}
	return m.handlers.Commands()
}

// EventHandlers returns the event handlers for this module.
func (m *TranslateModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
			if m.handlers != nil {
				m.handlers.HandleReactionAdd(s, r)
			}
		},
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *TranslateModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, ErrProviderNotConfigured) {
			slog.Warn("translate module disabled", "reason", err)
			return nil
		}
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *TranslateModule) Init(deps bot.ModuleDependencies) error {
	// Left unconfigured by LoadConfig: no commands, reactions are ignored
	if m.config == nil {
		slog.Info("translate module not configured, skipping")
		return nil
	}

	translator, err := m.newTranslator()
	if err != nil {
		return err
	}
	translator = infrastructure.NewRateLimitedTranslator(translator, m.config.RateLimit, m.config.RateBurst)

	service := usecases.NewTranslateService(translator, domain.NewLanguageCache())

	var botID string
	fetch := func(string, string) (*discordgo.Message, error) {
		return nil, errors.New("no Discord session")
	}
	if deps.Session != nil {
		if deps.Session.State != nil && deps.Session.State.User != nil {
			botID = deps.Session.State.User.ID
		}
		fetch = func(channelID, messageID string) (*discordgo.Message, error) {
			return deps.Session.ChannelMessage(channelID, messageID)
		}
	}

	m.handlers = discord.NewHandlers(service, deps.Chat, fetch, botID)

	slog.Info("translate module initialized", "provider", m.config.Provider)

	return nil
}

func (m *TranslateModule) newTranslator() (ports.Translator, error) {
	switch m.config.Provider {
	case ProviderGoogle:
		// The context outlives Init: it is used to refresh tokens
		translator, err := infrastructure.NewGoogleTranslator(
			context.Background(),
			m.config.GoogleEndpoint,
			m.config.GoogleProjectID,
		)
		if err != nil {
			return nil, err
		}
		return translator, nil
	case ProviderOpenAI:
		return infrastructure.NewOpenAITranslator(
			m.config.OpenAIAPIKey,
			m.config.OpenAIBaseURL,
			m.config.OpenAIModel,
		), nil
	default:
		return nil, fmt.Errorf("unknown TRANSLATE_PROVIDER %q", m.config.Provider)
	}
}

// Shutdown cleans up module resources.
func (m *TranslateModule) Shutdown() error {
	return nil
}
