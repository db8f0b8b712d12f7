package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"LLMClients/internal/ai"
	"LLMClients/internal/conversation"
	"LLMClients/internal/llm"
)

// Chat связывает историю диалога с AI-клиентом.
// Реплика пользователя попадает в историю только вместе с ответом ассистента.
type Chat struct {
	client ai.Client
	state  *conversation.State
	logger *zap.SugaredLogger
}

// NewChat создаёт сервис диалога.
func NewChat(client ai.Client, state *conversation.State, logger *zap.SugaredLogger) *Chat {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Chat{client: client, state: state, logger: logger}
}

// Send отправляет историю вместе с новой репликой и сохраняет обмен при успехе.
// При ошибке история не меняется.
func (c *Chat) Send(ctx context.Context, text string) (string, error) {
	user := llm.NewTextMessage(llm.RoleUser, text)
	messages := append(c.state.Snapshot(), user)

	start := time.Now()
	reply, err := c.client.Complete(ctx, messages)
	if err != nil {
		c.logger.Debugw("Запрос к AI завершился ошибкой", "history", c.state.Len(), "error", err)
		return "", err
	}
	c.logger.Debugw("Ответ AI получен", "history", c.state.Len(), "chars", len(reply), "duration", time.Since(start).String())

	c.state.AppendMessage(user)
	c.state.AppendText(llm.RoleAssistant, reply)
	return reply, nil
}

// Clear очищает историю, системное сообщение сохраняется.
func (c *Chat) Clear() { c.state.Clear() }

// SetSystem заменяет системное сообщение.
func (c *Chat) SetSystem(text string) { c.state.SetSystem(text) }

// History возвращает копию истории вместе с системным сообщением.
func (c *Chat) History() []llm.Message { return c.state.Snapshot() }
