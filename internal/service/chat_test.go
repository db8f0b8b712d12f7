package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"LLMClients/internal/ai"
	"LLMClients/internal/conversation"
	apperrors "LLMClients/internal/errors"
	"LLMClients/internal/llm"
	"LLMClients/internal/transport"
)

func TestSendAppendsExchangeOnSuccess(t *testing.T) {
	stub := ai.NewStubClientWith("Hello", nil)
	chat := NewChat(stub, conversation.New("You are a helpful assistant."), nil)

	reply, err := chat.Send(context.Background(), "Hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello", reply)

	history := chat.History()
	require.Len(t, history, 3)
	assert.Equal(t, llm.RoleSystem, history[0].Role)
	assert.Equal(t, llm.RoleUser, history[1].Role)
	assert.Equal(t, "Hi", history[1].Text())
	assert.Equal(t, llm.RoleAssistant, history[2].Role)
	assert.Equal(t, "Hello", history[2].Text())
}

func TestSendIncludesFullHistoryAndCurrentTurn(t *testing.T) {
	stub := ai.NewStubClientWith("ok", nil)
	chat := NewChat(stub, conversation.New("sys"), nil)

	_, err := chat.Send(context.Background(), "first")
	require.NoError(t, err)
	_, err = chat.Send(context.Background(), "second")
	require.NoError(t, err)

	calls := stub.Calls()
	require.Len(t, calls, 2)
	assert.Len(t, calls[0], 2)

	last := calls[1]
	require.Len(t, last, 4)
	assert.Equal(t, "sys", last[0].Text())
	assert.Equal(t, "first", last[1].Text())
	assert.Equal(t, "ok", last[2].Text())
	assert.Equal(t, "second", last[3].Text())
	assert.Equal(t, llm.RoleUser, last[3].Role)
}

func TestSendFailureLeavesHistoryUntouched(t *testing.T) {
	stub := ai.NewStubClientWith("", errors.New("network error: connection refused"))
	chat := NewChat(stub, conversation.New("sys"), nil)

	_, err := chat.Send(context.Background(), "Hi")
	require.Error(t, err)

	history := chat.History()
	require.Len(t, history, 1)
	assert.Equal(t, llm.RoleSystem, history[0].Role)
}

func TestSendUnauthorizedKeepsPreviousExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	client := ai.NewAnthropicClient(transport.New(nil, nil), ai.Options{BaseURL: srv.URL, MaxTokens: 16})
	state := conversation.New("")
	state.AppendText(llm.RoleUser, "earlier")
	state.AppendText(llm.RoleAssistant, "answer")
	chat := NewChat(client, state, nil)

	_, err := chat.Send(context.Background(), "Hi")

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	history := chat.History()
	require.Len(t, history, 2)
	assert.Equal(t, "answer", history[1].Text())
	for _, m := range history {
		assert.NotEqual(t, "Hi", m.Text())
	}
}

func TestClearAndSetSystem(t *testing.T) {
	chat := NewChat(ai.NewStubClient(), conversation.New("old"), nil)
	_, err := chat.Send(context.Background(), "Hi")
	require.NoError(t, err)

	chat.SetSystem("new")
	chat.Clear()

	history := chat.History()
	require.Len(t, history, 1)
	assert.Equal(t, "new", history[0].Text())
}

func TestSendFailureLogsOnlyAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	stub := ai.NewStubClientWith("", errors.New("invalid x-api-key"))
	chat := NewChat(stub, conversation.New(""), zap.New(core).Sugar())

	_, err := chat.Send(context.Background(), "Hi")
	require.Error(t, err)

	warnOrAbove := logs.Filter(func(e observer.LoggedEntry) bool { return e.Level >= zapcore.WarnLevel })
	assert.Equal(t, 0, warnOrAbove.Len())

	failures := logs.FilterMessage("Запрос к AI завершился ошибкой")
	require.Equal(t, 1, failures.Len())
	assert.Equal(t, zapcore.DebugLevel, failures.All()[0].Level)
}
