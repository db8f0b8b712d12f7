package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"LLMClients/internal/ai"
	"LLMClients/internal/app/analyzer"
	"LLMClients/internal/config"
	apperrors "LLMClients/internal/errors"
	"LLMClients/internal/logger"
	"LLMClients/internal/service/image"
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
		Use:   "image-analyzer <image>",
		Short: "Analyze an image with a vision model",
		Long: fmt.Sprintf(`image-analyzer sends one image and a prompt to a vision model and prints the answer.

Supported formats: %s

Examples:
  image-analyzer photo.jpg
  image-analyzer photo.png --prompt "What objects are in this image?"`, strings.Join(image.SupportedFormats(), ", ")),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg, args[0])
		},
	}
	config.BindVisionFlags(cmd.Flags(), cfg)
	return cmd
}

func run(cmd *cobra.Command, cfg *config.Config, path string) error {
	log := logger.New(cfg.DebugMode)
	sugar := log.Sugar()
	defer func() { _ = log.Sync() }()

	sugar.Infow(
		"Starting app",
		"DebugMode", cfg.DebugMode,
		"Provider", cfg.Vision.Provider,
		"Path", path,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	// файл проверяется раньше ключа, клиент создаётся только для корректного файла
	newClient := func() (ai.Client, error) {
		return ai.NewVisionClient(cfg, transport.New(nil, sugar))
	}

	return analyzer.New(newClient, image.NewEncoder(), sugar).Run(ctx, path, cfg.Vision.Prompt, cmd.OutOrStdout())
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var cfgErr *apperrors.ConfigurationError
	if errors.As(err, &cfgErr) && cfgErr.Variable != "" {
		fmt.Fprintln(os.Stderr, config.CredentialHint(cfgErr.Variable))
	}
	if errors.Is(err, apperrors.ErrUnsupportedFormat) {
		fmt.Fprintf(os.Stderr, "Supported formats: %s\n", strings.Join(image.SupportedFormats(), ", "))
	}
	os.Exit(1)
}
