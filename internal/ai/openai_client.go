package ai

import (
	"context"

	"LLMClients/internal/llm"
	"LLMClients/internal/transport"
)

// OpenAIClient отправляет историю в OpenAI Chat Completions API напрямую через HTTP.
type OpenAIClient struct {
	transport *transport.Transport
	opts      Options
}

func NewOpenAIClient(t *transport.Transport, opts Options) *OpenAIClient {
	return &OpenAIClient{transport: t, opts: opts}
}

func (c *OpenAIClient) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	resp := c.transport.Send(ctx, transport.Request{
		Endpoint: endpoint(c.opts.BaseURL, "/v1/chat/completions"),
		Headers: map[string]string{
			"Authorization": "Bearer " + c.opts.APIKey,
		},
		Body:        llm.NewChatCompletionRequest(c.opts.Model, c.opts.MaxTokens, messages),
		Timeout:     c.opts.Timeout,
		ContentPath: llm.OpenAIContentPath,
	})
	if resp.Status != transport.StatusSuccess {
		return "", resp.Err
	}

	return resp.Content, nil
}
