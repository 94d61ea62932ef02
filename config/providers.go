package config

import (
	"fmt"
)

// UpdateProviderField updates a single provider configuration field.
//
// Fields:
//   - gateway: "host", "model", "enabled"
//   - SDK providers: "apikey", "model", "enabled"
func UpdateProviderField(dataDir, providerID, fieldName, value string) error {
	cfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch providerID {
	case "gateway":
		switch fieldName {
		case "host":
			cfg.Gateway.Host = value
		case "model":
			cfg.Gateway.DefaultModel = value
		case "enabled":
			updateProviderEnabled(cfg, providerID, value == "true")
		default:
			return fmt.Errorf("unknown field for gateway: %s", fieldName)
		}

	case "openai", "openrouter", "anthropic":
		switch fieldName {
		case "apikey":
			// API keys live in the credential store, never in config.toml.
			fullCfg, err := Load()
			if err != nil {
				return fmt.Errorf("failed to load full config for credential update: %w", err)
			}
			if fullCfg.CredentialStore == nil {
				return fmt.Errorf("credential store unavailable")
			}
			if err := fullCfg.CredentialStore.Set(providerID, value); err != nil {
				return fmt.Errorf("failed to set API key: %w", err)
			}
			if err := fullCfg.CredentialStore.Save(dataDir); err != nil {
				return fmt.Errorf("failed to persist credentials: %w", err)
			}
			return nil

		case "model":
			updateProviderModel(cfg, providerID, value)
		case "enabled":
			updateProviderEnabled(cfg, providerID, value == "true")
		default:
			return fmt.Errorf("unknown field for %s: %s", providerID, fieldName)
		}

	default:
		return fmt.Errorf("unknown provider: %s", providerID)
	}

	if err := SaveUserConfig(cfg, dataDir); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func updateProviderEnabled(cfg *UserConfig, providerID string, enabled bool) {
	for i := range cfg.Providers {
		if cfg.Providers[i].ID == providerID {
			cfg.Providers[i].Enabled = enabled
			return
		}
	}
	cfg.Providers = append(cfg.Providers, ProviderConfig{
		ID:      providerID,
		Name:    getProviderDisplayName(providerID),
		Enabled: enabled,
		BaseURL: getProviderDefaultBaseURL(providerID),
	})
}

func updateProviderModel(cfg *UserConfig, providerID, model string) {
	for i := range cfg.Providers {
		if cfg.Providers[i].ID == providerID {
			cfg.Providers[i].Model = model
			return
		}
	}
	cfg.Providers = append(cfg.Providers, ProviderConfig{
		ID:      providerID,
		Name:    getProviderDisplayName(providerID),
		Enabled: true,
		BaseURL: getProviderDefaultBaseURL(providerID),
		Model:   model,
	})
}

// getProviderDisplayName returns the display name for a provider
func getProviderDisplayName(providerID string) string {
	switch providerID {
	case "gateway":
		return "Gateway"
	case "openrouter":
		return "OpenRouter"
	case "anthropic":
		return "Anthropic"
	case "openai":
		return "OpenAI"
	default:
		return providerID
	}
}

// getProviderDefaultBaseURL returns the default base URL for a provider
func getProviderDefaultBaseURL(providerID string) string {
	switch providerID {
	case "gateway":
		return "http://localhost:8787"
	case "openrouter":
		return "https://openrouter.ai/api/v1"
	case "anthropic":
		return "https://api.anthropic.com"
	case "openai":
		return "https://api.openai.com/v1"
	default:
		return ""
	}
}
