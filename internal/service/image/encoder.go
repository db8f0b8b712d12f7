// Package image проверяет файл изображения и готовит его к отправке в API в виде base64.
package image

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "LLMClients/internal/errors"
	"LLMClients/internal/llm"
)

// MaxImageSize предельный размер файла, который принимают API.
const MaxImageSize = 20 * 1024 * 1024

// mimeTypes допустимые расширения и их MIME-типы.
var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var supported = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

type EncodedImage struct {
	Path     string
	Name     string
	MimeType string
	Data     string // base64, стандартный алфавит
	Size     int64
}

// DataURL возвращает data:<mime>;base64,<data> для Chat Completions.
func (e EncodedImage) DataURL() string {
	return e.ToLLM().DataURL()
}

// ToLLM превращает результат в часть сообщения.
func (e EncodedImage) ToLLM() llm.Image {
	return llm.Image{MediaType: e.MimeType, Data: e.Data}
}

type Encoder struct {
	maxSize int64
}

func NewEncoder() *Encoder {
	return &Encoder{maxSize: MaxImageSize}
}

// Encode проверяет файл и кодирует его содержимое. Сеть не используется.
func (e *Encoder) Encode(path string) (EncodedImage, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return EncodedImage{}, apperrors.NewValidationError(path, apperrors.ErrFileNotFound, "")
		}
		return EncodedImage{}, apperrors.NewValidationError(path, apperrors.ErrFileNotFound, err.Error())
	}
	if !fi.Mode().IsRegular() {
		return EncodedImage{}, apperrors.NewValidationError(path, apperrors.ErrNotAFile, "")
	}

	mimeType, ok := mimeTypeFor(path)
	if !ok {
		detail := fmt.Sprintf("%q, supported: %s", filepath.Ext(path), strings.Join(supported, ", "))
		return EncodedImage{}, apperrors.NewValidationError(path, apperrors.ErrUnsupportedFormat, detail)
	}

	if fi.Size() > e.maxSize {
		detail := fmt.Sprintf("%d bytes, limit %d", fi.Size(), e.maxSize)
		return EncodedImage{}, apperrors.NewValidationError(path, apperrors.ErrFileTooLarge, detail)
	}
	if fi.Size() == 0 {
		return EncodedImage{}, apperrors.NewValidationError(path, apperrors.ErrEmptyFile, "")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("could not read image: %w", err)
	}

	return EncodedImage{
		Path:     path,
		Name:     filepath.Base(path),
		MimeType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(raw),
		Size:     int64(len(raw)),
	}, nil
}

// Decode обратное преобразование base64 в байты.
func Decode(data string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(data)
}

// mimeTypeFor возвращает MIME-тип по расширению файла без учёта регистра.
func mimeTypeFor(path string) (string, bool) {
	m, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]
	return m, ok
}

// SupportedFormats список допустимых расширений.
func SupportedFormats() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	return out
}
