package provider

import (
	"mogen/config"
	"mogen/model"
)

// InitializeProviders creates provider instances for every configured
// backend. The gateway provider is always attempted; SDK providers are built
// only when enabled and their API key is present in the credential store.
// Failures degrade gracefully: a provider that cannot be built is logged and
// left out of the map.
func InitializeProviders(cfg *config.Config) map[string]model.Provider {
	providers := make(map[string]model.Provider)

	gateway, err := NewGatewayProvider(cfg.GatewayHost, cfg.DefaultModel)
	if err != nil {
		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Printf("[Provider] gateway init failed: %v", err)
		}
	} else {
		providers["gateway"] = gateway
	}

	for _, pc := range cfg.Providers {
		if !pc.Enabled || pc.ID == "gateway" {
			continue
		}

		apiKey := ""
		if cfg.CredentialStore != nil {
			apiKey = cfg.CredentialStore.Get(pc.ID)
		}
		if apiKey == "" {
			if config.Debug && config.DebugLog != nil {
				config.DebugLog.Printf("[Provider] %s enabled but no API key stored, skipping", pc.ID)
			}
			continue
		}

		p, err := NewProvider(Config{
			Type:    MapProviderIDToType(pc.ID),
			BaseURL: pc.BaseURL,
			Model:   pc.Model,
			APIKey:  apiKey,
		})
		if err != nil {
			if config.Debug && config.DebugLog != nil {
				config.DebugLog.Printf("[Provider] %s init failed: %v", pc.ID, err)
			}
			continue
		}
		providers[pc.ID] = p
	}

	return providers
}

// SelectProvider picks the configured default provider, falling back to the
// gateway, then to any available provider.
func SelectProvider(cfg *config.Config, providers map[string]model.Provider) model.Provider {
	if p, ok := providers[cfg.DefaultProvider]; ok {
		return p
	}
	if p, ok := providers["gateway"]; ok {
		return p
	}
	for _, p := range providers {
		return p
	}
	return nil
}
