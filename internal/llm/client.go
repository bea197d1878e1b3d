// Package llm answers free-form utterances with Gemini through its
// OpenAI-compatible chat completions endpoint.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/varsilias/crystal/internal/upstream"
	"github.com/varsilias/crystal/pkg/types"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel   = "gemini-1.5-flash"
)

var (
	ErrNoAPIKey = errors.New("llm: api key not configured")
	ErrBlocked  = errors.New("llm: prompt blocked by safety policy")
	ErrEmpty    = errors.New("llm: response has no choices")
)

// APIError is a 4xx/5xx answer from the model endpoint.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm: HTTP %d: %s", e.Status, e.Message)
}

type Client struct {
	client openai.Client
	apiKey string
	model  string
	log    *slog.Logger
}

// NewClient builds a client that never retries; each utterance gets exactly
// one attempt.
func NewClient(baseURL, apiKey, model string, timeout time.Duration, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
		option.WithHTTPClient(upstream.NewHTTPClient(timeout)),
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	return &Client{
		client: openai.NewClient(opts...),
		apiKey: apiKey,
		model:  model,
		log:    log,
	}
}

func (c *Client) Model() string { return c.model }

// Complete sends history followed by prompt and returns the model's text.
func (c *Client) Complete(ctx context.Context, prompt string, history []types.Turn) (text string, err error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}
	start := time.Now()
	defer func() { upstream.Observe("llm", start, err) }()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: buildMessages(prompt, history),
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmpty
	}
	choice := resp.Choices[0]
	if string(choice.FinishReason) == "content_filter" {
		return "", ErrBlocked
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", ErrEmpty
	}
	return choice.Message.Content, nil
}

// Reply is Complete with failures turned into an apology.
func (c *Client) Reply(ctx context.Context, prompt string, history []types.Turn) string {
	text, err := c.Complete(ctx, prompt, history)
	if err != nil {
		c.log.Error("llm completion failed", "model", c.model, "err", err)
		return Apology(err)
	}
	return text
}

func buildMessages(prompt string, history []types.Turn) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	for _, t := range history {
		switch t.Role {
		case types.RoleModel, types.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(t.Text))
		default:
			msgs = append(msgs, openai.UserMessage(t.Text))
		}
	}
	return append(msgs, openai.UserMessage(prompt))
}

func classify(err error) error {
	var (
		apiErr *openai.Error
		uerr   *url.Error
		operr  *net.OpError
	)
	switch {
	case errors.As(err, &apiErr):
		return &APIError{Status: apiErr.StatusCode, Message: apiErr.Message}
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &uerr), errors.As(err, &operr):
		return upstream.Transport(err)
	default:
		return upstream.Decode(err)
	}
}
