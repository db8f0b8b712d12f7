package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	apperrors "LLMClients/internal/errors"
)

// Провайдеры и бэкенды, которые понимает приложение
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderStub      = "stub"

	BackendHTTP = "http"
	BackendSDK  = "sdk"
)

type Config struct {
	DebugMode      bool          `env:"DEBUG_MODE"`        //Режим дебага
	Provider       string        `env:"CHAT_PROVIDER"`     // anthropic|openai|stub
	Backend        string        `env:"OPENAI_BACKEND"`    // http|sdk, только для openai
	SystemPrompt   string        `env:"SYSTEM_PROMPT"`     // Системное сообщение диалога
	MaxTokens      int           `env:"MAX_TOKENS"`        // Ограничение длины ответа
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`   // Таймаут одного запроса чата
	RenderMarkdown bool          `env:"RENDER_MARKDOWN"`   // Рендерить ответы как markdown
	HistoryFile    string        `env:"CHAT_HISTORY_FILE"` // Файл истории ввода (пусто: не сохранять)
	Model          string        // --model, перекрывает модель выбранного провайдера

	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Vision    VisionConfig
}

// AnthropicConfig настройки Messages API.
type AnthropicConfig struct {
	APIKey  string `env:"ANTHROPIC_API_KEY"`
	BaseURL string `env:"ANTHROPIC_BASE_URL"`
	Version string `env:"ANTHROPIC_VERSION"` // значение заголовка anthropic-version
	Model   string `env:"ANTHROPIC_MODEL"`
}

// OpenAIConfig настройки Chat Completions API.
type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL"`
	Model   string `env:"OPENAI_MODEL"`
}

// VisionConfig настройки анализатора изображений. Ключ берётся у выбранного провайдера.
type VisionConfig struct {
	Provider string        `env:"VISION_PROVIDER"`
	BaseURL  string        `env:"VISION_BASE_URL"` // если пусто, BaseURL провайдера
	Model    string        `env:"VISION_MODEL"`    // если пусто, модель провайдера
	Prompt   string        `env:"VISION_PROMPT"`
	Timeout  time.Duration `env:"VISION_TIMEOUT"` // картинки обрабатываются дольше текста
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode:      false,
		Provider:       ProviderAnthropic,
		Backend:        BackendHTTP,
		SystemPrompt:   "You are a helpful assistant.",
		MaxTokens:      4096,
		RequestTimeout: 30 * time.Second,
		Anthropic: AnthropicConfig{
			BaseURL: "https://api.anthropic.com",
			Version: "2023-06-01",
			Model:   "claude-sonnet-4-20250514",
		},
		OpenAI: OpenAIConfig{
			BaseURL: "https://api.openai.com",
			Model:   "gpt-4o-mini",
		},
		Vision: VisionConfig{
			Provider: ProviderOpenAI,
			Prompt:   "Please analyze this image and describe what you see in detail.",
			Timeout:  60 * time.Second,
		},
	}
}

// Load загружает конфигурацию: дефолты, затем .env, затем окружение.
// Флаги CLI накладываются позже через Bind*Flags.
func Load() (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, &apperrors.ConfigurationError{Message: err.Error(), Err: err}
	}
	return cfg, nil
}

// BindCommonFlags регистрирует флаги, общие для обеих программ.
func BindCommonFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DebugMode, "debug", cfg.DebugMode, "включить режим дебага (подробные логи в stderr)")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "транспорт для openai: http|sdk")
	fs.IntVar(&cfg.MaxTokens, "max-tokens", cfg.MaxTokens, "максимум токенов в ответе")
}

// BindChatFlags регистрирует флаги чат-бота.
func BindChatFlags(fs *pflag.FlagSet, cfg *Config) {
	BindCommonFlags(fs, cfg)
	fs.StringVar(&cfg.Provider, "provider", cfg.Provider, "провайдер: anthropic|openai|stub")
	fs.StringVar(&cfg.SystemPrompt, "system", cfg.SystemPrompt, "системное сообщение")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "таймаут одного запроса, напр. 30s")
	fs.BoolVar(&cfg.RenderMarkdown, "markdown", cfg.RenderMarkdown, "рендерить ответы как markdown")
	fs.StringVar(&cfg.HistoryFile, "history-file", cfg.HistoryFile, "файл для истории ввода")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "модель (по умолчанию модель провайдера)")
	fs.StringVar(&cfg.Anthropic.Model, "anthropic-model", cfg.Anthropic.Model, "модель Anthropic")
	fs.StringVar(&cfg.OpenAI.Model, "openai-model", cfg.OpenAI.Model, "модель OpenAI")
}

// BindVisionFlags регистрирует флаги анализатора изображений.
func BindVisionFlags(fs *pflag.FlagSet, cfg *Config) {
	BindCommonFlags(fs, cfg)
	fs.StringVarP(&cfg.Vision.Prompt, "prompt", "p", cfg.Vision.Prompt, "инструкция для анализа изображения")
	fs.StringVar(&cfg.Vision.Provider, "provider", cfg.Vision.Provider, "провайдер: openai|anthropic|stub")
	fs.StringVar(&cfg.Vision.Model, "model", cfg.Vision.Model, "модель с поддержкой изображений")
	fs.DurationVar(&cfg.Vision.Timeout, "timeout", cfg.Vision.Timeout, "таймаут запроса, напр. 60s")
}

// Validate проверяет перечислимые поля и наличие ключа для провайдера.
func (c *Config) Validate(provider string) error {
	if c.MaxTokens <= 0 {
		return &apperrors.ConfigurationError{Message: fmt.Sprintf("max tokens must be positive, got %d", c.MaxTokens)}
	}
	switch strings.ToLower(c.Backend) {
	case BackendHTTP, BackendSDK:
	default:
		return &apperrors.ConfigurationError{Message: fmt.Sprintf("unknown backend %q", c.Backend)}
	}
	return c.RequireKey(provider)
}

// RequireKey возвращает ConfigurationError, если для провайдера не задан ключ.
func (c *Config) RequireKey(provider string) error {
	switch strings.ToLower(provider) {
	case ProviderAnthropic:
		if strings.TrimSpace(c.Anthropic.APIKey) == "" {
			return apperrors.NewMissingCredentialError("ANTHROPIC_API_KEY")
		}
	case ProviderOpenAI:
		if strings.TrimSpace(c.OpenAI.APIKey) == "" {
			return apperrors.NewMissingCredentialError("OPENAI_API_KEY")
		}
	case ProviderStub:
	default:
		return apperrors.NewUnknownProviderError(provider)
	}
	return nil
}

// CredentialHint возвращает строку-подсказку для .env при отсутствии ключа.
func CredentialHint(variable string) string {
	return fmt.Sprintf("Please create a .env file with your API key:\n%s=your-api-key-here", variable)
}
