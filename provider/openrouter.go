package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"mogen/model"
)

// OpenRouterProvider implements model.Provider against OpenRouter's API,
// which is OpenAI-compatible, so it delegates the streaming conversion to an
// embedded OpenAIProvider with a different base URL.
type OpenRouterProvider struct {
	inner *OpenAIProvider
}

// NewOpenRouterProvider creates a new OpenRouter provider instance.
//
// Parameters:
//   - baseURL: OpenRouter API base URL ("https://openrouter.ai/api/v1")
//   - apiKey: OpenRouter API key (required)
//   - model: Initial model to use (can be changed with SetModel)
func NewOpenRouterProvider(baseURL, apiKey, modelName string) (*OpenRouterProvider, error) {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is required")
	}
	if modelName == "" {
		modelName = "meta-llama/llama-3.2-90b-instruct"
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenRouterProvider{
		inner: &OpenAIProvider{
			client:  client,
			model:   modelName,
			baseURL: baseURL,
			apiKey:  apiKey,
		},
	}, nil
}

// Generate implements model.Provider.Generate.
func (p *OpenRouterProvider) Generate(ctx context.Context, req model.GenerationRequest, callback model.StreamCallback) error {
	return p.inner.Generate(ctx, req, callback)
}

// GetModel implements model.Provider.GetModel. Returns the full model name
// with vendor prefix, as the API expects it.
func (p *OpenRouterProvider) GetModel() string {
	return p.inner.GetModel()
}

// GetDisplayName implements model.Provider.GetDisplayName, stripping the
// vendor prefix ("meta-llama/llama-3.2-90b" displays as "llama-3.2-90b").
func (p *OpenRouterProvider) GetDisplayName() string {
	name := p.inner.GetModel()
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

// SetModel implements model.Provider.SetModel.
func (p *OpenRouterProvider) SetModel(modelName string) {
	p.inner.SetModel(modelName)
}

// Ping implements model.Provider.Ping.
func (p *OpenRouterProvider) Ping(ctx context.Context) error {
	if err := p.inner.Ping(ctx); err != nil {
		return fmt.Errorf("OpenRouter ping failed: %w", err)
	}
	return nil
}
