package ports

import "context"

// Translator translates text with an external service.
type Translator interface {
	// Translate returns text translated into targetLocale. The result may
	// contain HTML entities.
	Translate(ctx context.Context, text, targetLocale string) (string, error)
}
