package config

import (
	"testing"
)

func TestUpdateProviderFieldGateway(t *testing.T) {
	dir := t.TempDir()

	if err := UpdateProviderField(dir, "gateway", "host", "http://10.0.0.5:8787"); err != nil {
		t.Fatalf("host update failed: %v", err)
	}
	if err := UpdateProviderField(dir, "gateway", "model", "overlay-pro"); err != nil {
		t.Fatalf("model update failed: %v", err)
	}

	cfg, err := LoadUserConfig(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Gateway.Host != "http://10.0.0.5:8787" {
		t.Errorf("host = %q", cfg.Gateway.Host)
	}
	if cfg.Gateway.DefaultModel != "overlay-pro" {
		t.Errorf("model = %q", cfg.Gateway.DefaultModel)
	}
}

func TestUpdateProviderFieldAppendsMissingProvider(t *testing.T) {
	dir := t.TempDir()

	if err := UpdateProviderField(dir, "openrouter", "model", "some/model"); err != nil {
		t.Fatalf("model update failed: %v", err)
	}
	if err := UpdateProviderField(dir, "openrouter", "enabled", "true"); err != nil {
		t.Fatalf("enabled update failed: %v", err)
	}

	cfg, err := LoadUserConfig(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	var found *ProviderConfig
	for i := range cfg.Providers {
		if cfg.Providers[i].ID == "openrouter" {
			found = &cfg.Providers[i]
		}
	}
	if found == nil {
		t.Fatal("openrouter entry not appended")
	}
	if found.Model != "some/model" || !found.Enabled {
		t.Errorf("provider = %+v", found)
	}
	if found.BaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("base url = %q, want the default", found.BaseURL)
	}
}

func TestUpdateProviderFieldErrors(t *testing.T) {
	dir := t.TempDir()

	if err := UpdateProviderField(dir, "gateway", "apikey", "x"); err == nil {
		t.Error("gateway has no apikey field, expected an error")
	}
	if err := UpdateProviderField(dir, "anthropic", "host", "x"); err == nil {
		t.Error("SDK providers have no host field, expected an error")
	}
	if err := UpdateProviderField(dir, "nonsense", "model", "x"); err == nil {
		t.Error("unknown provider should error")
	}
}
