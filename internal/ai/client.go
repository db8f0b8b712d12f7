package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"LLMClients/internal/config"
	apperrors "LLMClients/internal/errors"
	"LLMClients/internal/llm"
	"LLMClients/internal/transport"
)

// Client интерфейс для взаимодействия с AI. Все реализации должны быть взаимозаменяемыми.
// messages: полная история, включая текущую реплику пользователя; клиент состояния не хранит.
type Client interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// Options параметры конкретного клиента.
type Options struct {
	APIKey    string
	BaseURL   string
	Version   string // только Anthropic
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// NewChatClient создаёт клиента чат-бота по конфигурации.
func NewChatClient(cfg *config.Config, t *transport.Transport) (Client, error) {
	if err := cfg.Validate(cfg.Provider); err != nil {
		return nil, err
	}
	opts, err := providerOptions(cfg, cfg.Provider)
	if err != nil {
		return nil, err
	}
	if cfg.Model != "" {
		opts.Model = cfg.Model
	}
	opts.Timeout = cfg.RequestTimeout
	return newClient(cfg.Provider, cfg.Backend, opts, t)
}

// AssistantName имя ассистента для вывода в терминал.
func AssistantName(provider string) string {
	switch strings.ToLower(provider) {
	case config.ProviderAnthropic:
		return "Claude"
	case config.ProviderOpenAI:
		return "GPT"
	default:
		return "Assistant"
	}
}

// ProviderTitle название провайдера для баннера.
func ProviderTitle(provider string) string {
	switch strings.ToLower(provider) {
	case config.ProviderAnthropic:
		return "Claude"
	case config.ProviderOpenAI:
		return "OpenAI"
	default:
		return "Stub"
	}
}

func providerOptions(cfg *config.Config, provider string) (Options, error) {
	switch strings.ToLower(provider) {
	case config.ProviderAnthropic:
		return Options{
			APIKey:    cfg.Anthropic.APIKey,
			BaseURL:   cfg.Anthropic.BaseURL,
			Version:   cfg.Anthropic.Version,
			Model:     cfg.Anthropic.Model,
			MaxTokens: cfg.MaxTokens,
		}, nil
	case config.ProviderOpenAI:
		return Options{
			APIKey:    cfg.OpenAI.APIKey,
			BaseURL:   cfg.OpenAI.BaseURL,
			Model:     cfg.OpenAI.Model,
			MaxTokens: cfg.MaxTokens,
		}, nil
	case config.ProviderStub:
		return Options{MaxTokens: cfg.MaxTokens}, nil
	}
	return Options{}, apperrors.NewUnknownProviderError(provider)
}

func newClient(provider, backend string, opts Options, t *transport.Transport) (Client, error) {
	provider = strings.ToLower(provider)
	if strings.EqualFold(backend, config.BackendSDK) {
		if provider != config.ProviderOpenAI {
			return nil, &apperrors.ConfigurationError{
				Message: fmt.Sprintf("backend %q supports only the %s provider", config.BackendSDK, config.ProviderOpenAI),
			}
		}
		return NewSDKClient(opts), nil
	}

	switch provider {
	case config.ProviderAnthropic:
		return NewAnthropicClient(t, opts), nil
	case config.ProviderOpenAI:
		return NewOpenAIClient(t, opts), nil
	case config.ProviderStub:
		return NewStubClient(), nil
	}
	return nil, apperrors.NewUnknownProviderError(provider)
}

// endpoint склеивает базовый URL и путь без двойных слэшей.
func endpoint(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + path
}
