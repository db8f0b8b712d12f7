package llm

// ErrorResponse конверт ошибки, общий для Anthropic и OpenAI. Транспорт читает из него error.type и error.message.
type ErrorResponse struct {
	Type  string      `json:"type,omitempty"` // "error" у Anthropic
	Error ErrorDetail `json:"error"`
}

// ErrorDetail описание ошибки от API.
type ErrorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
