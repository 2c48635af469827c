// Package openai adapts the hosted completion provider to the narrow
// streaming interface the chat pipeline consumes.
package openai

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"
)

// Message is one turn of the conversation sent to the provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Stream yields incremental text deltas. Recv returns io.EOF on normal
// provider-side stream end.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// Streamer starts a streamed completion for a prepared message window.
type Streamer interface {
	Stream(ctx context.Context, messages []Message, maxTokens int) (Stream, error)
}

// Client wraps the go-openai SDK as a Streamer.
type Client struct {
	api         *goopenai.Client
	model       string
	temperature float32
}

// NewClient creates a provider client. Temperature is fixed low so answers
// about the portfolio stay close to the persona facts.
func NewClient(apiKey, model string) *Client {
	return &Client{
		api:         goopenai.NewClient(apiKey),
		model:       model,
		temperature: 0.3,
	}
}

func (c *Client) Stream(ctx context.Context, messages []Message, maxTokens int) (Stream, error) {
	reqMessages := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		reqMessages = append(reqMessages, goopenai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	s, err := c.api.CreateChatCompletionStream(ctx, goopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    reqMessages,
		MaxTokens:   maxTokens,
		Temperature: c.temperature,
		Stream:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating completion stream: %w", err)
	}

	return &stream{inner: s}, nil
}

type stream struct {
	inner *goopenai.ChatCompletionStream
}

// Recv returns the next non-empty content delta, skipping chunks that carry
// only role/finish metadata.
func (s *stream) Recv() (string, error) {
	for {
		resp, err := s.inner.Recv()
		if err != nil {
			return "", err // io.EOF on normal completion
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if content := resp.Choices[0].Delta.Content; content != "" {
			return content, nil
		}
	}
}

func (s *stream) Close() error {
	return s.inner.Close()
}
