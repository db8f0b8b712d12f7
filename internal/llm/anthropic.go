package llm

import "strings"

// AnthropicContentPath путь (gjson) к тексту ответа Messages API, см. MessagesResponse.
const AnthropicContentPath = "content.0.text"

// MessagesRequest тело запроса к /v1/messages.
type MessagesRequest struct {
	Model     string             `json:"model"`            // Идентификатор модели
	MaxTokens int                `json:"max_tokens"`       // Максимум токенов в ответе
	System    string             `json:"system,omitempty"` // Системное сообщение отдельным полем
	Messages  []AnthropicMessage `json:"messages"`         // Вся история, включая текущую реплику
}

// AnthropicMessage сообщение в формате Messages API.
type AnthropicMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // строка или []AnthropicBlock
}

// AnthropicBlock блок контента: текст или изображение.
type AnthropicBlock struct {
	Type   string                `json:"type"` // "text" или "image"
	Text   string                `json:"text,omitempty"`
	Source *AnthropicImageSource `json:"source,omitempty"`
}

// AnthropicImageSource источник изображения, встроенного в запрос.
type AnthropicImageSource struct {
	Type      string `json:"type"` // всегда "base64"
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// MessagesResponse ответ /v1/messages.
type MessagesResponse struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	Role       string           `json:"role"`
	Model      string           `json:"model"`
	Content    []AnthropicBlock `json:"content"`
	StopReason string           `json:"stop_reason,omitempty"`
	Usage      *AnthropicUsage  `json:"usage,omitempty"`
}

// AnthropicUsage счётчики токенов.
type AnthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// NewMessagesRequest собирает запрос из истории.
// Сообщения с ролью system поднимаются в поле System, остальные идут в Messages по порядку.
func NewMessagesRequest(model string, maxTokens int, messages []Message) MessagesRequest {
	req := MessagesRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages:  make([]AnthropicMessage, 0, len(messages)),
	}

	var system []string
	for _, m := range messages {
		if m.Role == RoleSystem {
			if t := m.Text(); t != "" {
				system = append(system, t)
			}
			continue
		}
		req.Messages = append(req.Messages, AnthropicMessage{
			Role:    string(m.Role),
			Content: anthropicContent(m),
		})
	}
	req.System = strings.Join(system, "\n\n")

	return req
}

func anthropicContent(m Message) any {
	if m.IsTextOnly() {
		return m.Parts[0].Text
	}
	blocks := make([]AnthropicBlock, 0, len(m.Parts))
	for _, p := range m.Parts {
		switch p.Type {
		case PartText:
			blocks = append(blocks, AnthropicBlock{Type: "text", Text: p.Text})
		case PartImage:
			if p.Image == nil {
				continue
			}
			blocks = append(blocks, AnthropicBlock{
				Type: "image",
				Source: &AnthropicImageSource{
					Type:      "base64",
					MediaType: p.Image.MediaType,
					Data:      p.Image.Data,
				},
			})
		}
	}
	return blocks
}
