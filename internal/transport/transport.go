// Package transport выполняет один POST-запрос к API и превращает HTTP-ответ
// в успешный результат или типизированную ошибку. Повторов нет.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apperrors "LLMClients/internal/errors"
)

// MaxResponseSize ограничение на размер тела ответа.
const MaxResponseSize = 10 * 1024 * 1024

// Status итог запроса.
type Status int

const (
	StatusSuccess Status = iota
	StatusError
)

func (s Status) String() string {
	if s == StatusSuccess {
		return "success"
	}
	return "error"
}

// Request один запрос к API.
type Request struct {
	Endpoint    string
	Headers     map[string]string
	Body        any           // сериализуется в JSON
	Timeout     time.Duration // 0 без отдельного таймаута
	ContentPath string        // путь gjson к тексту ответа ассистента
}

// Response результат запроса. При StatusError заполнены ErrorDetail и Err.
type Response struct {
	Status      Status
	StatusCode  int
	Content     string
	ErrorDetail string
	Err         error // *errors.TransportError или *errors.APIError
}

// Transport HTTP-клиент для запросов к API.
type Transport struct {
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// New создаёт транспорт. nil httpClient заменяется клиентом по умолчанию.
func New(httpClient *http.Client, logger *zap.SugaredLogger) *Transport {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Transport{httpClient: httpClient, logger: logger}
}

// Send выполняет один блокирующий POST и разбирает ответ.
func (t *Transport) Send(ctx context.Context, req Request) Response {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(req.Body)
	if err != nil {
		return failure(0, fmt.Errorf("could not marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Endpoint, bytes.NewReader(body))
	if err != nil {
		return failure(0, apperrors.NewTransportError(err))
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	t.logger.Debugw("Отправка запроса", "endpoint", req.Endpoint, "bytes", len(body))

	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		t.logger.Debugw("Ошибка транспорта", "endpoint", req.Endpoint, "duration", time.Since(start).String(), "error", err)
		return failure(0, classify(ctx, err))
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, MaxResponseSize))
	if err != nil {
		return failure(httpResp.StatusCode, classify(ctx, err))
	}

	t.logger.Debugw("Ответ получен",
		"endpoint", req.Endpoint,
		"status", httpResp.StatusCode,
		"duration", time.Since(start).String(),
	)

	if httpResp.StatusCode != http.StatusOK {
		return failure(httpResp.StatusCode, apiError(httpResp.StatusCode, respBody))
	}

	if !gjson.ValidBytes(respBody) {
		return failure(httpResp.StatusCode, apperrors.NewMalformedResponseError(httpResp.StatusCode, "invalid JSON"))
	}
	content := gjson.GetBytes(respBody, req.ContentPath)
	if !content.Exists() || content.Type != gjson.String {
		return failure(httpResp.StatusCode, apperrors.NewMalformedResponseError(httpResp.StatusCode, "no assistant content"))
	}

	return Response{
		Status:     StatusSuccess,
		StatusCode: httpResp.StatusCode,
		Content:    content.String(),
	}
}

// apiError собирает ошибку из кода статуса и JSON-описания ошибки, если оно есть.
func apiError(statusCode int, body []byte) *apperrors.APIError {
	var errType, message string
	if gjson.ValidBytes(body) {
		errType = gjson.GetBytes(body, "error.type").String()
		message = gjson.GetBytes(body, "error.message").String()
	}
	return apperrors.NewAPIError(statusCode, errType, message)
}

func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.NewTimeoutError(err)
	}
	return apperrors.NewTransportError(err)
}

func failure(statusCode int, err error) Response {
	return Response{
		Status:      StatusError,
		StatusCode:  statusCode,
		ErrorDetail: err.Error(),
		Err:         err,
	}
}
