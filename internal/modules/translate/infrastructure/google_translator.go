package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sglre6355/hibiki/internal/modules/translate/application/ports"
	"golang.org/x/oauth2/google"
)

// DefaultGoogleEndpoint is the Cloud Translation API base URL.
const DefaultGoogleEndpoint = "https://translation.googleapis.com"

// googleScope is the OAuth scope of the Cloud Translation API.
const googleScope = "https://www.googleapis.com/auth/cloud-translation"

// maxErrorBody bounds how much of an error response is kept in the error message.
const maxErrorBody = 512

// ErrEmptyTranslation is returned when a backend answers without any text.
var ErrEmptyTranslation = errors.New("translation response contained no text")

// Compile-time check that GoogleTranslator implements ports.Translator.
var _ ports.Translator = (*GoogleTranslator)(nil)

type translateTextRequest struct {
	Contents           []string `json:"contents"`
	TargetLanguageCode string   `json:"targetLanguageCode"`
	MimeType           string   `json:"mimeType,omitempty"`
}

type translateTextResponse struct {
	Translations []struct {
		TranslatedText       string `json:"translatedText"`
		DetectedLanguageCode string `json:"detectedLanguageCode"`
	} `json:"translations"`
}

// GoogleTranslator calls Cloud Translation v3 translateText.
type GoogleTranslator struct {
	client    *http.Client
	endpoint  string
	projectID string
}

// NewGoogleTranslator creates a GoogleTranslator authenticated with application
// default credentials. An empty endpoint uses DefaultGoogleEndpoint.
func NewGoogleTranslator(ctx context.Context, endpoint, projectID string) (*GoogleTranslator, error) {
	client, err := google.DefaultClient(ctx, googleScope)
	if err != nil {
		return nil, fmt.Errorf("failed to load Google credentials: %w", err)
	}
	if endpoint == "" {
		endpoint = DefaultGoogleEndpoint
	}
	return NewGoogleTranslatorWithClient(client, endpoint, projectID), nil
}

// NewGoogleTranslatorWithClient creates a GoogleTranslator using an already
// authenticated client against endpoint.
func NewGoogleTranslatorWithClient(client *http.Client, endpoint, projectID string) *GoogleTranslator {
	return &GoogleTranslator{
		client:    client,
		endpoint:  strings.TrimSuffix(endpoint, "/"),
		projectID: projectID,
	}
}

// Translate translates text into targetLocale.
func (g *GoogleTranslator) Translate(ctx context.Context, text, targetLocale string) (string, error) {
	body, err := json.Marshal(translateTextRequest{
		Contents:           []string{text},
		TargetLanguageCode: targetLocale,
		MimeType:           "text/plain",
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v3/projects/%s:translateText", g.endpoint, url.PathEscape(g.projectID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("translate request returned %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var result translateTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Translations) == 0 || result.Translations[0].TranslatedText == "" {
		return "", ErrEmptyTranslation
	}

	return result.Translations[0].TranslatedText, nil
}
