// Package analyzer отправляет одно изображение с инструкцией в vision-модель.
package analyzer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"LLMClients/internal/ai"
	"LLMClients/internal/llm"
	"LLMClients/internal/service/image"
)

// DefaultPrompt инструкция, если пользователь не задал свою.
const DefaultPrompt = "Please analyze this image and describe what you see in detail."

var headerStyle = lipgloss.NewStyle().Bold(true)

// ClientFunc создаёт клиента при первом запросе, уже после проверки файла.
type ClientFunc func() (ai.Client, error)

type Analyzer struct {
	newClient ClientFunc
	encoder   *image.Encoder
	logger    *zap.SugaredLogger
}

// New создаёт анализатор. newClient вызывается только для прошедшего проверку файла.
func New(newClient ClientFunc, encoder *image.Encoder, logger *zap.SugaredLogger) *Analyzer {
	if encoder == nil {
		encoder = image.NewEncoder()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Analyzer{newClient: newClient, encoder: encoder, logger: logger}
}

// Run кодирует файл, отправляет его в модель и печатает результат в out.
// Ошибки проверки файла и настройки клиента возвращаются до любого вывода и сетевого запроса.
func (a *Analyzer) Run(ctx context.Context, path, prompt string, out io.Writer) error {
	img, err := a.encoder.Encode(path)
	if err != nil {
		return err
	}
	client, err := a.newClient()
	if err != nil {
		return err
	}

	rule := strings.Repeat("=", 50)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, headerStyle.Render("Analyzing Image: "+img.Name))
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "Processing image...")

	result, err := a.send(ctx, client, img, prompt)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\n"+headerStyle.Render("Analysis Result:")+"\n")
	fmt.Fprintln(out, result)
	return nil
}

func (a *Analyzer) send(ctx context.Context, client ai.Client, img image.EncodedImage, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultPrompt
	}

	msg := llm.Message{
		Role: llm.RoleUser,
		Parts: []llm.Part{
			llm.TextPart(prompt),
			llm.ImagePart(img.ToLLM()),
		},
	}

	a.logger.Debugw("Отправка изображения", "name", img.Name, "mime", img.MimeType, "bytes", img.Size)
	start := time.Now()
	result, err := client.Complete(ctx, []llm.Message{msg})
	if err != nil {
		a.logger.Debugw("Анализ изображения не удался", "name", img.Name, "error", err)
		return "", err
	}
	a.logger.Debugw("Анализ получен", "name", img.Name, "duration", time.Since(start).String())

	return result, nil
}
