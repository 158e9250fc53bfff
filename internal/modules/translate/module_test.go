package translate

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/hibiki/internal/bot"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "google", config: Config{Provider: ProviderGoogle, GoogleProjectID: "p"}},
		{name: "google without project", config: Config{Provider: ProviderGoogle}, wantErr: true},
		{name: "openai", config: Config{Provider: ProviderOpenAI, OpenAIAPIKey: "k"}},
		{name: "openai without key", config: Config{Provider: ProviderOpenAI}, wantErr: true},
		{name: "unknown", config: Config{Provider: "deepl"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("TRANSLATE_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "key")

	m := &TranslateModule{}
	if err := m.LoadConfig(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.config.RateLimit != 1 || m.config.RateBurst != 3 {
		t.Errorf("unexpected rate defaults: %v/%d", m.config.RateLimit, m.config.RateBurst)
	}
	if m.config.GoogleEndpoint != "https://translation.googleapis.com" {
		t.Errorf("unexpected Google endpoint %q", m.config.GoogleEndpoint)
	}
}

func TestLoadConfig_UnconfiguredProviderDisablesModule(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "default provider without project",
			env:  map[string]string{"TRANSLATE_PROVIDER": "", "GOOGLE_PROJECT_ID": ""},
		},
		{
			name: "openai without key",
			env:  map[string]string{"TRANSLATE_PROVIDER": "openai", "OPENAI_API_KEY": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			m := &TranslateModule{}
			if err := m.LoadConfig(); err != nil {
				t.Fatalf("expected the module to be disabled without an error, got %v", err)
			}
			if err := m.Init(bot.ModuleDependencies{Chat: bot.NewMockChatClient()}); err != nil {
				t.Fatalf("unexpected init error: %v", err)
			}
			if m.Commands() != nil {
				t.Error("expected no commands from a disabled module")
			}

			// Reactions are ignored rather than dereferencing missing handlers
			for _, handler := range m.EventHandlers() {
				h, ok := handler.(func(*discordgo.Session, *discordgo.MessageReactionAdd))
				if !ok {
					t.Fatalf("unexpected handler type %T", handler)
				}
				h(nil, &discordgo.MessageReactionAdd{})
			}
		})
	}
}

func TestLoadConfig_UnknownProvider(t *testing.T) {
	t.Setenv("TRANSLATE_PROVIDER", "deepl")

	m := &TranslateModule{}
	err := m.LoadConfig()
	if err == nil {
		t.Fatal("expected an error for an unknown provider")
	}
	if errors.Is(err, ErrProviderNotConfigured) {
		t.Errorf("expected a hard configuration error, got %v", err)
	}
}

func TestTranslateModule_InitWithOpenAI(t *testing.T) {
	m := &TranslateModule{
		config: &Config{Provider: ProviderOpenAI, OpenAIAPIKey: "key", RateLimit: 1, RateBurst: 1},
	}

	if m.Commands() != nil {
		t.Error("expected no commands before init")
	}
	if err := m.Init(bot.ModuleDependencies{Chat: bot.NewMockChatClient()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(m.Commands()) != 1 {
		t.Errorf("expected 1 command, got %d", len(m.Commands()))
	}
	if len(m.EventHandlers()) != 1 {
		t.Errorf("expected 1 event handler, got %d", len(m.EventHandlers()))
	}
	if m.Name() != "translate" {
		t.Errorf("unexpected name %q", m.Name())
	}
}
