// Package provider implements generation backends behind model.Provider.
//
// Two families exist: the gateway provider speaks the line protocol against a
// generation service that owns prompting and tool execution server-side, and
// the SDK providers (OpenAI, OpenRouter, Anthropic) talk to model APIs
// directly, advertising the overlay toolset themselves and normalizing each
// SDK's stream into the same model.StreamEvent vocabulary.
//
// The Provider interface and StreamCallback are defined in the model package
// (model/provider.go) to avoid import cycles. This package implements
// model.Provider.
package provider

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeGateway    ProviderType = "gateway"
	ProviderTypeOpenAI     ProviderType = "openai"
	ProviderTypeOpenRouter ProviderType = "openrouter"
	ProviderTypeAnthropic  ProviderType = "anthropic"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	Model   string
	APIKey  string // unused for the gateway
}
