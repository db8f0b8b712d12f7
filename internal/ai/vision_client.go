package ai

import (
	"LLMClients/internal/config"
	"LLMClients/internal/transport"
)

// NewVisionClient создаёт клиента для анализа изображений.
// Ключ и BaseURL берутся у провайдера, если для Vision они не заданы отдельно.
func NewVisionClient(cfg *config.Config, t *transport.Transport) (Client, error) {
	provider := cfg.Vision.Provider
	if err := cfg.Validate(provider); err != nil {
		return nil, err
	}
	opts, err := providerOptions(cfg, provider)
	if err != nil {
		return nil, err
	}
	if cfg.Vision.BaseURL != "" {
		opts.BaseURL = cfg.Vision.BaseURL
	}
	if cfg.Vision.Model != "" {
		opts.Model = cfg.Vision.Model
	}
	opts.Timeout = cfg.Vision.Timeout

	return newClient(provider, cfg.Backend, opts, t)
}
