package ai

import (
	"context"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

// DefaultModelID is used when no model is configured.
const DefaultModelID = "gemini-2.5-flash"

// Completer turns one instruction into one generated text.
// Each call is independent; no conversation state is carried between calls.
type Completer interface {
	Complete(ctx context.Context, modelID, text string) (string, error)
}

type Generator struct {
	client *openai.Client
}

// Ensure Generator implements Completer.
var _ Completer = (*Generator)(nil)

// NewGenerator builds a chat-completions client. An empty baseURL falls back to
// DefaultBaseURL; a zero timeout leaves the HTTP client without a deadline and
// relies on the caller's context.
func NewGenerator(apiKey, baseURL string, timeout time.Duration) *Generator {
	config := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(baseURL, "/")
	config.HTTPClient = &http.Client{Timeout: timeout}

	return &Generator{
		client: openai.NewClientWithConfig(config),
	}
}
