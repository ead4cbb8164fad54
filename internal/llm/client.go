// Package llm wraps the external language model used for keyword
// extraction. The service talks to any OpenAI-compatible chat completion
// endpoint; Groq is the default provider.
package llm

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Model asks a language model a single question and returns its raw text
// reply. Implementations may fail for any transport or API reason; callers
// are expected to recover with a local fallback.
type Model interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

const defaultSystemPrompt = "You are an AI photo assistant."

// GroqClient talks to Groq's OpenAI-compatible chat completion API
type GroqClient struct {
	client openai.Client
	model  string
	system string
}

// NewGroqClient creates a Groq chat client. baseURL should point at the
// OpenAI-compatible root, e.g. https://api.groq.com/openai/v1.
func NewGroqClient(apiKey, baseURL, model string) *GroqClient {
	return &GroqClient{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
		model:  model,
		system: defaultSystemPrompt,
	}
}

// Ask sends a single-turn prompt and returns the model's text reply
func (c *GroqClient) Ask(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.system),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in completion")
	}
	return resp.Choices[0].Message.Content, nil
}
