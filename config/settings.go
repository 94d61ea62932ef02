package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LoadSystemConfig reads ~/.config/mogen/settings.toml, writing the commented
// template first if no file exists yet.
func LoadSystemConfig() (*SystemConfig, error) {
	cfg := DefaultSystemConfig()
	settingsPath := GetSettingsFilePath()

	if !FileExists(settingsPath) {
		if err := EnsureDir(GetConfigDir()); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := writeTemplate(settingsPath, GenerateSystemConfigTemplate()); err != nil {
			return nil, fmt.Errorf("failed to create system config: %w", err)
		}
		return cfg, nil
	}

	_, err := toml.DecodeFile(settingsPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse system config: %w", err)
	}

	return cfg, nil
}

// LoadUserConfig reads <dataDir>/config.toml, writing the commented template
// first if no file exists yet. Render values that cannot drive playback
// (zero or negative fps, duration or surface size) are replaced with the
// defaults rather than rejected.
func LoadUserConfig(dataDir string) (*UserConfig, error) {
	cfg := DefaultUserConfig()
	userConfigPath := filepath.Join(dataDir, "config.toml")

	if !FileExists(userConfigPath) {
		if err := os.MkdirAll(dataDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		if err := writeTemplate(userConfigPath, GenerateUserConfigTemplate()); err != nil {
			return nil, fmt.Errorf("failed to create user config: %w", err)
		}
		return cfg, nil
	}

	_, err := toml.DecodeFile(userConfigPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	cfg.Render = sanitizeRender(cfg.Render)
	return cfg, nil
}

func SaveUserConfig(cfg *UserConfig, dataDir string) error {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	userConfigPath := filepath.Join(dataDir, "config.toml")
	// 0600 - user configuration data
	f, err := os.OpenFile(userConfigPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create user config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode user config: %w", err)
	}

	return nil
}

// writeTemplate creates a config file from its commented template, leaving
// an existing file untouched.
func writeTemplate(path, content string) error {
	if FileExists(path) {
		return nil
	}
	return os.WriteFile(path, []byte(content), 0600)
}

// sanitizeRender falls back to the default for every render field that would
// break frame playback. A config with fps = 0 would otherwise divide by zero
// in the spring primitive, and a zero-frame duration has no frames to play.
func sanitizeRender(r RenderConfig) RenderConfig {
	def := DefaultRenderConfig()
	if r.FPS <= 0 {
		r.FPS = def.FPS
	}
	if r.DurationInFrames <= 0 {
		r.DurationInFrames = def.DurationInFrames
	}
	if r.Width <= 0 {
		r.Width = def.Width
	}
	if r.Height <= 0 {
		r.Height = def.Height
	}
	return r
}
