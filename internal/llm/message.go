// Package llm содержит модель сообщений диалога и явные записи запросов/ответов
// для Anthropic Messages API и OpenAI Chat Completions API.
package llm

import "strings"

// Role роль автора сообщения.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// PartType тип части сообщения.
type PartType string

const (
	PartText  PartType = "text"
	PartImage PartType = "image"
)

// Image изображение в base64 с MIME-типом.
type Image struct {
	MediaType string // например, image/png
	Data      string // base64, стандартный алфавит
}

// DataURL возвращает изображение в формате data URL.
func (i Image) DataURL() string {
	return "data:" + i.MediaType + ";base64," + i.Data
}

// Part часть сообщения: текст или изображение.
type Part struct {
	Type  PartType
	Text  string
	Image *Image
}

// TextPart создаёт текстовую часть.
func TextPart(text string) Part {
	return Part{Type: PartText, Text: text}
}

// ImagePart создаёт часть с изображением.
func ImagePart(img Image) Part {
	return Part{Type: PartImage, Image: &img}
}

// Message одно сообщение диалога.
type Message struct {
	Role  Role
	Parts []Part
}

// NewTextMessage создаёт сообщение из одного текста.
func NewTextMessage(role Role, text string) Message {
	return Message{Role: role, Parts: []Part{TextPart(text)}}
}

// Text склеивает текстовые части сообщения.
func (m Message) Text() string {
	texts := make([]string, 0, len(m.Parts))
	for _, p := range m.Parts {
		if p.Type == PartText {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// IsTextOnly сообщает, что в сообщении ровно одна текстовая часть.
func (m Message) IsTextOnly() bool {
	return len(m.Parts) == 1 && m.Parts[0].Type == PartText
}

// Clone возвращает копию сообщения, не разделяющую память с оригиналом.
func (m Message) Clone() Message {
	parts := make([]Part, len(m.Parts))
	for i, p := range m.Parts {
		parts[i] = p
		if p.Image != nil {
			img := *p.Image
			parts[i].Image = &img
		}
	}
	return Message{Role: m.Role, Parts: parts}
}
