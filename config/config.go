package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type GatewayConfig struct {
	Host         string `toml:"host"`
	DefaultModel string `toml:"default_model"`
}

// RenderConfig holds the defaults handed to the sandbox when playing back a
// program: frames per second and the surface the frame context reports.
type RenderConfig struct {
	FPS              float64 `toml:"fps"`
	DurationInFrames int     `toml:"duration_in_frames"`
	Width            int     `toml:"width"`
	Height           int     `toml:"height"`
}

// ProviderConfig describes one configured generation backend.
type ProviderConfig struct {
	ID      string `toml:"id"`
	Name    string `toml:"name"`
	Enabled bool   `toml:"enabled"`
	BaseURL string `toml:"base_url,omitempty"`
	Model   string `toml:"model,omitempty"`
}

// SecurityConfig selects how API credentials are stored.
type SecurityConfig struct {
	CredentialStorage string `toml:"credential_storage"` // "plaintext" or "ssh_key"
	SSHKeyPath        string `toml:"ssh_key_path,omitempty"`
}

type UserConfig struct {
	Gateway         GatewayConfig    `toml:"gateway"`
	Render          RenderConfig     `toml:"render"`
	DefaultProvider string           `toml:"default_provider,omitempty"`
	Providers       []ProviderConfig `toml:"providers,omitempty"`
	Security        SecurityConfig   `toml:"security"`
}

type Config struct {
	DataDirectory   string
	GatewayHost     string
	DefaultModel    string
	DefaultProvider string
	Render          RenderConfig
	Providers       []ProviderConfig
	Security        SecurityConfig
	CredentialStore *CredentialStore
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) GatewayURL() string {
	return c.GatewayHost
}

func (c *Config) Model() string {
	return c.DefaultModel
}

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// Provider returns the configured provider with the given ID, or nil.
func (c *Config) Provider(id string) *ProviderConfig {
	for i := range c.Providers {
		if c.Providers[i].ID == id {
			return &c.Providers[i]
		}
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("MOGEN_GATEWAY_HOST"); host != "" {
		c.GatewayHost = host
	}
	if model := os.Getenv("MOGEN_MODEL"); model != "" {
		c.DefaultModel = model
	}
	if dataDir := os.Getenv("MOGEN_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if providerID := os.Getenv("MOGEN_PROVIDER"); providerID != "" {
		c.DefaultProvider = providerID
	}
}

func CheckDebug() bool {
	debug := os.Getenv("MOGEN_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: debug output can include request payloads
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (MOGEN_DEBUG=%s) ===", os.Getenv("MOGEN_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

func applyUserConfig(cfg *Config, userCfg *UserConfig) {
	cfg.GatewayHost = userCfg.Gateway.Host
	cfg.DefaultModel = userCfg.Gateway.DefaultModel
	cfg.DefaultProvider = userCfg.DefaultProvider
	cfg.Providers = userCfg.Providers
	cfg.Security = userCfg.Security
	cfg.Render = userCfg.Render
}

func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory:   "~/.local/share/mogen",
		GatewayHost:     "http://localhost:8787",
		DefaultModel:    "default",
		DefaultProvider: "gateway",
		Render:          DefaultRenderConfig(),
		Security:        SecurityConfig{CredentialStorage: string(SecurityPlainText)},
	}

	settingsPath := GetSettingsFilePath()

	if FileExists(settingsPath) || !HasAllEnvVars() {
		systemCfg, err := LoadSystemConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load system config: %w", err)
		}
		cfg.DataDirectory = systemCfg.DataDirectory

		userCfg, err := LoadUserConfig(cfg.DataDir())
		if err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
		applyUserConfig(cfg, userCfg)
	}
	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	store := NewCredentialStore(
		SecurityMethod(cfg.Security.CredentialStorage),
		ExpandPath(cfg.Security.SSHKeyPath),
	)
	if err := store.Load(dataDir); err != nil {
		// Missing or undecryptable credentials degrade to an empty store so
		// the gateway provider still works without keys.
		if Debug && DebugLog != nil {
			DebugLog.Printf("[Config] credential load failed: %v", err)
		}
	} else {
		cfg.CredentialStore = store
	}

	return cfg, nil
}

func HasAllEnvVars() bool {
	return os.Getenv("MOGEN_GATEWAY_HOST") != "" &&
		os.Getenv("MOGEN_MODEL") != "" &&
		os.Getenv("MOGEN_DATA_DIR") != ""
}

func HasAnyEnvVar() bool {
	return os.Getenv("MOGEN_GATEWAY_HOST") != "" ||
		os.Getenv("MOGEN_MODEL") != "" ||
		os.Getenv("MOGEN_DATA_DIR") != ""
}
