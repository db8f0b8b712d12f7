package ai

import (
	"context"
	"errors"
	"net/http"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	apperrors "LLMClients/internal/errors"
	"LLMClients/internal/llm"
)

// SDKClient отправляет историю в Chat Completions через официальный SDK.
// Повторы SDK отключены: ошибка сразу возвращается вызывающему.
type SDKClient struct {
	client    openai.Client
	model     string
	maxTokens int
}

func NewSDKClient(opts Options) *SDKClient {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithBaseURL(endpoint(opts.BaseURL, "/v1/")),
		option.WithMaxRetries(0),
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}

	return &SDKClient{
		client:    openai.NewClient(reqOpts...),
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
	}
}

func (c *SDKClient) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(c.model),
		MaxTokens: openai.Int(int64(c.maxTokens)),
		Messages:  sdkMessages(messages),
	})
	if err != nil {
		return "", sdkError(ctx, err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.NewMalformedResponseError(http.StatusOK, "no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func sdkMessages(messages []llm.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			out = append(out, openai.SystemMessage(m.Text()))
		case llm.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Text()))
		default:
			if m.IsTextOnly() {
				out = append(out, openai.UserMessage(m.Text()))
				continue
			}
			parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(m.Parts))
			for _, p := range m.Parts {
				switch p.Type {
				case llm.PartText:
					parts = append(parts, openai.TextContentPart(p.Text))
				case llm.PartImage:
					if p.Image == nil {
						continue
					}
					parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
						URL: p.Image.DataURL(),
					}))
				}
			}
			out = append(out, openai.UserMessage(parts))
		}
	}
	return out
}

// sdkError приводит ошибки SDK к ошибкам приложения.
func sdkError(ctx context.Context, err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apperrors.NewAPIError(apiErr.StatusCode, apiErr.Type, apiErr.Message)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(err)
	}
	return apperrors.NewTransportError(err)
}
