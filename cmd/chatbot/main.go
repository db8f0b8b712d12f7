package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"LLMClients/internal/ai"
	"LLMClients/internal/app/chatbot"
	"LLMClients/internal/config"
	"LLMClients/internal/conversation"
	apperrors "LLMClients/internal/errors"
	"LLMClients/internal/logger"
	"LLMClients/internal/service"
	"LLMClients/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		exit(err)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		exit(err)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chatbot",
		Short: "Interactive command line chatbot",
		Long: `chatbot keeps a conversation with a chat-completion API in the terminal.

Commands inside the chat:
  quit, exit   end the session
  clear        reset the conversation
  system       change the system message`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg)
		},
	}
	config.BindChatFlags(cmd.Flags(), cfg)
	return cmd
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	log := logger.New(cfg.DebugMode)
	sugar := log.Sugar()
	//сброс буфера логгера
	defer func() { _ = log.Sync() }()

	sugar.Infow(
		"Starting app",
		"DebugMode", cfg.DebugMode,
		"Provider", cfg.Provider,
		"Backend", cfg.Backend,
	)

	client, err := ai.NewChatClient(cfg, transport.New(nil, sugar))
	if err != nil {
		return err
	}

	// Ctrl+C во время запроса отменяет его; в приглашении ввода его обрабатывает liner
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	chat := service.NewChat(client, conversation.New(cfg.SystemPrompt), sugar)

	in := chatbot.NewLineReader(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.HistoryFile)
	defer in.Close()

	opts := chatbot.Options{
		Title:         ai.ProviderTitle(cfg.Provider) + " Command Line Chatbot",
		AssistantName: ai.AssistantName(cfg.Provider),
	}
	if cfg.RenderMarkdown {
		opts.Render = chatbot.NewMarkdownRenderer()
	}

	return chatbot.New(chat, in, cmd.OutOrStdout(), opts, sugar).Run(ctx)
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var cfgErr *apperrors.ConfigurationError
	if errors.As(err, &cfgErr) && cfgErr.Variable != "" {
		fmt.Fprintln(os.Stderr, config.CredentialHint(cfgErr.Variable))
	}
	os.Exit(1)
}
