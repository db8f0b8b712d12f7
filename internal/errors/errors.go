// Package errors содержит типизированные ошибки клиентов: конфигурация, валидация входа,
// транспорт и ответы API.
package errors

import (
	"errors"
	"fmt"
)

// Сентинельные ошибки для сравнения через errors.Is
var (
	ErrMissingCredential = errors.New("missing credential")
	ErrUnknownProvider   = errors.New("unknown provider")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrFileNotFound      = errors.New("file not found")
	ErrNotAFile          = errors.New("not a file")
	ErrFileTooLarge      = errors.New("file too large")
	ErrEmptyFile         = errors.New("file is empty")
	ErrTimeout           = errors.New("request timed out")
	ErrMalformedResponse = errors.New("malformed response")
)

// ConfigurationError ошибка настройки, обнаруженная до любого сетевого вызова.
type ConfigurationError struct {
	Variable string // имя переменной окружения, если ошибка про неё
	Message  string
	Err      error
}

func (e *ConfigurationError) Error() string {
	if e.Variable != "" && errors.Is(e.Err, ErrMissingCredential) {
		return fmt.Sprintf("%s not found in environment variables", e.Variable)
	}
	if e.Message == "" {
		return "configuration error"
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// NewMissingCredentialError создаёт ошибку отсутствующего ключа.
func NewMissingCredentialError(variable string) *ConfigurationError {
	return &ConfigurationError{Variable: variable, Err: ErrMissingCredential}
}

// NewUnknownProviderError создаёт ошибку неизвестного провайдера.
func NewUnknownProviderError(provider string) *ConfigurationError {
	return &ConfigurationError{
		Message: fmt.Sprintf("unknown provider %q", provider),
		Err:     ErrUnknownProvider,
	}
}

// ValidationError: входные данные (файл изображения) не прошли проверку.
type ValidationError struct {
	Path   string
	Detail string
	Err    error
}

func (e *ValidationError) Error() string {
	msg := "invalid input"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Path == "" {
		return msg
	}
	return fmt.Sprintf("%s (%s)", msg, e.Path)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError создаёт ValidationError с причиной-сентинелом.
func NewValidationError(path string, cause error, detail string) *ValidationError {
	return &ValidationError{Path: path, Err: cause, Detail: detail}
}

// TransportError сбой сети или таймаут; сообщение описывает сбой, а не содержимое ответа.
type TransportError struct {
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return "request timed out"
	}
	if e.Err == nil {
		return "network error"
	}
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is позволяет сравнивать таймауты с ErrTimeout
func (e *TransportError) Is(target error) bool {
	if target == ErrTimeout {
		return e.Timeout
	}
	_, ok := target.(*TransportError)
	return ok
}

// NewTransportError оборачивает ошибку сети.
func NewTransportError(err error) *TransportError {
	return &TransportError{Err: err}
}

// NewTimeoutError создаёт TransportError для истёкшего таймаута.
func NewTimeoutError(err error) *TransportError {
	return &TransportError{Timeout: true, Err: err}
}

// APIError ответ сервера со статусом, отличным от 200, или непригодное тело ответа.
type APIError struct {
	StatusCode int
	Type       string // тип ошибки из JSON-ответа, если есть
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API Error: %d", e.StatusCode)
}

// Is позволяет сравнивать с ErrMalformedResponse
func (e *APIError) Is(target error) bool {
	if target == ErrMalformedResponse {
		return e.Type == malformedType
	}
	_, ok := target.(*APIError)
	return ok
}

const malformedType = "malformed_response"

// NewAPIError создаёт APIError. Пустое сообщение заменяется кодом статуса.
func NewAPIError(statusCode int, errType, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("API Error: %d", statusCode)
	}
	return &APIError{StatusCode: statusCode, Type: errType, Message: message}
}

// NewMalformedResponseError создаёт APIError для ответа 200 без ожидаемого содержимого.
func NewMalformedResponseError(statusCode int, detail string) *APIError {
	msg := ErrMalformedResponse.Error()
	if detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}
	return &APIError{StatusCode: statusCode, Type: malformedType, Message: msg}
}

// IsFatal сообщает, что ошибка относится к настройке или входу и продолжать работу нельзя.
func IsFatal(err error) bool {
	var cfgErr *ConfigurationError
	var valErr *ValidationError
	return errors.As(err, &cfgErr) || errors.As(err, &valErr)
}
