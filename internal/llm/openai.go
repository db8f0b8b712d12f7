package llm

// OpenAIContentPath путь (gjson) к тексту ответа Chat Completions API, см. ChatCompletionResponse.
const OpenAIContentPath = "choices.0.message.content"

// ChatCompletionRequest тело запроса к /v1/chat/completions.
type ChatCompletionRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []OpenAIMessage `json:"messages"` // system-сообщение идёт первым в списке
}

// OpenAIMessage сообщение в формате Chat Completions.
type OpenAIMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // строка или []ContentPart
}

// ContentPart часть составного сообщения (текст или изображение)
type ContentPart struct {
	Type     string    `json:"type"` // "text" или "image_url"
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL ссылка на изображение; для локальных файлов это data URL.
type ImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

// ChatCompletionResponse ответ /v1/chat/completions.
type ChatCompletionResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []Choice     `json:"choices"`
	Usage   *OpenAIUsage `json:"usage,omitempty"`
}

// Choice один вариант ответа.
type Choice struct {
	Index        int           `json:"index"`
	Message      OpenAIMessage `json:"message"`
	FinishReason string        `json:"finish_reason,omitempty"`
}

// OpenAIUsage счётчики токенов.
type OpenAIUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// NewChatCompletionRequest собирает запрос из истории как есть, сохраняя порядок и роли.
func NewChatCompletionRequest(model string, maxTokens int, messages []Message) ChatCompletionRequest {
	req := ChatCompletionRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages:  make([]OpenAIMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, OpenAIMessage{
			Role:    string(m.Role),
			Content: openAIContent(m),
		})
	}
	return req
}

func openAIContent(m Message) any {
	if m.IsTextOnly() || m.Role != RoleUser {
		return m.Text()
	}
	parts := make([]ContentPart, 0, len(m.Parts))
	for _, p := range m.Parts {
		switch p.Type {
		case PartText:
			parts = append(parts, ContentPart{Type: "text", Text: p.Text})
		case PartImage:
			if p.Image == nil {
				continue
			}
			parts = append(parts, ContentPart{Type: "image_url", ImageURL: &ImageURL{URL: p.Image.DataURL()}})
		}
	}
	return parts
}
