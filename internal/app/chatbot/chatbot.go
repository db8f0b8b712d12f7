// Package chatbot реализует интерактивный цикл диалога в терминале.
package chatbot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/peterh/liner"
	"go.uber.org/zap"

	"LLMClients/internal/service"
)

// Служебные команды, вводятся вместо реплики
const (
	cmdQuit   = "quit"
	cmdExit   = "exit"
	cmdClear  = "clear"
	cmdSystem = "system"
)

const (
	userPrompt   = "You: "
	systemPrompt = "Enter new system message: "
)

// LineReader источник строк ввода. io.EOF и liner.ErrPromptAborted завершают цикл.
type LineReader interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// Options параметры отображения.
type Options struct {
	Title         string              // заголовок баннера
	AssistantName string              // подпись ответов, напр. Claude
	Render        func(string) string // если nil, ответ печатается как есть
}

type App struct {
	chat      *service.Chat
	in        LineReader
	out       io.Writer
	opts      Options
	logger    *zap.SugaredLogger
	sessionID string
}

func New(chat *service.Chat, in LineReader, out io.Writer, opts Options, logger *zap.SugaredLogger) *App {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if opts.AssistantName == "" {
		opts.AssistantName = "Assistant"
	}
	return &App{
		chat:      chat,
		in:        in,
		out:       out,
		opts:      opts,
		logger:    logger,
		sessionID: uuid.NewString(),
	}
}

// Run печатает баннер и обрабатывает ввод до quit/exit, EOF, Ctrl+C или отмены ctx.
// Ошибки запросов выводятся, и цикл продолжается.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infow("Сессия чата начата", "session", a.sessionID)
	a.printBanner()

	for {
		input, err := a.in.Prompt(userPrompt)
		if err != nil {
			if isInterrupt(err) {
				a.println("\nInterrupted. Goodbye!")
				return nil
			}
			return fmt.Errorf("could not read input: %w", err)
		}

		text := strings.TrimSpace(input)
		if text == "" {
			continue
		}

		switch strings.ToLower(text) {
		case cmdQuit, cmdExit:
			a.println("Goodbye!")
			return nil
		case cmdClear:
			a.chat.Clear()
			a.logger.Debugw("История очищена", "session", a.sessionID)
			a.println("Conversation cleared.")
			continue
		case cmdSystem:
			newSystem, err := a.in.Prompt(systemPrompt)
			if err != nil {
				if isInterrupt(err) {
					a.println("\nInterrupted. Goodbye!")
					return nil
				}
				return fmt.Errorf("could not read input: %w", err)
			}
			a.chat.SetSystem(strings.TrimSpace(newSystem))
			a.println("System message updated.")
			continue
		}

		a.println("\n" + labelStyle.Render(a.opts.AssistantName+":"))
		reply, err := a.chat.Send(ctx, text)
		if err != nil {
			if ctx.Err() != nil {
				a.println("\nInterrupted. Goodbye!")
				return nil
			}
			a.println(errorStyle.Render("Error:") + " " + err.Error())
			continue
		}
		a.println(a.render(reply))
	}
}

func (a *App) printBanner() {
	rule := strings.Repeat("=", 50)
	a.println(rule)
	a.println(titleStyle.Render(a.opts.Title))
	a.println(rule)
	a.println("Commands:")
	a.println("  • Type 'quit' or 'exit' to end")
	a.println("  • Type 'clear' to reset conversation")
	a.println("  • Type 'system' to change system message")
	a.println(rule)
}

func (a *App) render(reply string) string {
	if a.opts.Render == nil {
		return reply
	}
	return a.opts.Render(reply)
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}

func isInterrupt(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted)
}
