package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("model returned empty response")

// Complete sends text as a single user message and returns the first choice verbatim.
func (g *Generator) Complete(ctx context.Context, modelID, text string) (string, error) {
	if modelID == "" {
		modelID = DefaultModelID
	}

	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: modelID,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: text},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}
