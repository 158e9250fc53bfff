package infrastructure

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sglre6355/hibiki/internal/modules/translate/application/ports"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = openai.GPT4o

const translatePrompt = "You are a translator. Translate the user's message into the language " +
	"identified by the locale %q. Reply with the translation only, keeping formatting, " +
	"mentions and emoji unchanged."

// Compile-time check that OpenAITranslator implements ports.Translator.
var _ ports.Translator = (*OpenAITranslator)(nil)

// OpenAITranslator translates with a chat completion model.
type OpenAITranslator struct {
	client *openai.Client
	model  string
}

// NewOpenAITranslator creates an OpenAITranslator. An empty baseURL uses the
// public OpenAI API.
func NewOpenAITranslator(apiKey, baseURL, model string) *OpenAITranslator {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAITranslator{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Translate translates text into targetLocale.
func (o *OpenAITranslator) Translate(ctx context.Context, text, targetLocale string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(translatePrompt, targetLocale),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyTranslation
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyTranslation
	}
	return content, nil
}
