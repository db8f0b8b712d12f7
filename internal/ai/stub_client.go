package ai

import (
	"context"

	"LLMClients/internal/llm"
)

// StubClient заглушка, которая не делает реальных запросов
type StubClient struct {
	reply string
	err   error
	calls [][]llm.Message
}

func NewStubClient() *StubClient { return &StubClient{reply: "request received"} }

// NewStubClientWith возвращает заглушку с заданным ответом или ошибкой.
func NewStubClientWith(reply string, err error) *StubClient {
	return &StubClient{reply: reply, err: err}
}

func (c *StubClient) Complete(_ context.Context, messages []llm.Message) (string, error) {
	c.calls = append(c.calls, messages)
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

// Calls возвращает историю, переданную в каждом вызове.
func (c *StubClient) Calls() [][]llm.Message { return c.calls }
