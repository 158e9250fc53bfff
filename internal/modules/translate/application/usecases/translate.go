package usecases

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/hibiki/internal/bot"
	"github.com/sglre6355/hibiki/internal/modules/translate/application/ports"
	"github.com/sglre6355/hibiki/internal/modules/translate/domain"
)

// ErrTranslationFailed wraps errors from the translation backend.
var ErrTranslationFailed = bot.NewKindError("translation_failed", "failed to translate")

// TranslateInput contains the input for the Translate use case.
type TranslateInput struct {
	UserID snowflake.ID
	Text   string
	Locale string // empty means the user's last locale
}

// TranslateOutput contains the result of the Translate use case.
type TranslateOutput struct {
	Text   string
	Locale string
}

// TranslateService translates messages and remembers each user's last locale.
type TranslateService struct {
	translator ports.Translator
	cache      *domain.LanguageCache
}

// NewTranslateService creates a new TranslateService.
func NewTranslateService(translator ports.Translator, cache *domain.LanguageCache) *TranslateService {
	return &TranslateService{
		translator: translator,
		cache:      cache,
	}
}

// Translate translates input.Text. An explicit locale wins over the cached one;
// with neither the input is invalid.
func (s *TranslateService) Translate(ctx context.Context, input TranslateInput) (*TranslateOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, bot.InvalidArguments("Reference message to translate")
	}

	locale := strings.ToLower(strings.TrimSpace(input.Locale))
	if locale == "" {
		cached, ok := s.cache.Get(input.UserID)
		if !ok {
			return nil, bot.InvalidArguments("Target language")
		}
		locale = cached
	}

	translated, err := s.translator.Translate(ctx, input.Text, locale)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranslationFailed, err)
	}

	s.cache.Set(input.UserID, locale)

	slog.Debug("translated message", "user", input.UserID, "locale", locale)

	return &TranslateOutput{
		Text:   html.UnescapeString(translated),
		Locale: locale,
	}, nil
}
