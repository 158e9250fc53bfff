package translate

import (
	"errors"
	"fmt"
)

// ErrProviderNotConfigured means the selected provider lacks its credentials.
// The module is disabled instead of failing startup.
var ErrProviderNotConfigured = errors.New("translation provider is not configured")

// Translation backends.
const (
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"
)

// Config holds the translate module configuration.
type Config struct {
	Provider string `env:"TRANSLATE_PROVIDER" envDefault:"google"`

	GoogleProjectID string `env:"GOOGLE_PROJECT_ID"`
	GoogleEndpoint  string `env:"GOOGLE_TRANSLATE_ENDPOINT" envDefault:"https://translation.googleapis.com"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	RateLimit float64 `env:"TRANSLATE_RATE_LIMIT" envDefault:"1"`
	RateBurst int     `env:"TRANSLATE_RATE_BURST" envDefault:"3"`
}

// Validate checks that the selected provider has what it needs.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGoogle:
		if c.GoogleProjectID == "" {
			return fmt.Errorf("%w: GOOGLE_PROJECT_ID is required for the %s provider",
				ErrProviderNotConfigured, ProviderGoogle)
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY is required for the %s provider",
				ErrProviderNotConfigured, ProviderOpenAI)
		}
	default:
		return fmt.Errorf("unknown TRANSLATE_PROVIDER %q", c.Provider)
	}
	return nil
}
