package ai

import (
	"context"

	"LLMClients/internal/llm"
	"LLMClients/internal/transport"
)

// AnthropicClient отправляет историю в Anthropic Messages API.
type AnthropicClient struct {
	transport *transport.Transport
	opts      Options
}

func NewAnthropicClient(t *transport.Transport, opts Options) *AnthropicClient {
	return &AnthropicClient{transport: t, opts: opts}
}

func (c *AnthropicClient) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	resp := c.transport.Send(ctx, transport.Request{
		Endpoint: endpoint(c.opts.BaseURL, "/v1/messages"),
		Headers: map[string]string{
			"x-api-key":         c.opts.APIKey,
			"anthropic-version": c.opts.Version,
		},
		Body:        llm.NewMessagesRequest(c.opts.Model, c.opts.MaxTokens, messages),
		Timeout:     c.opts.Timeout,
		ContentPath: llm.AnthropicContentPath,
	})
	if resp.Status != transport.StatusSuccess {
		return "", resp.Err
	}

	return resp.Content, nil
}
