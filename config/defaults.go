package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/mogen",
	}
}

func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		FPS:              30,
		DurationInFrames: 150,
		Width:            1920,
		Height:           1080,
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Gateway: GatewayConfig{
			Host:         "http://localhost:8787",
			DefaultModel: "default",
		},
		Render:          DefaultRenderConfig(),
		DefaultProvider: "gateway",
		Security: SecurityConfig{
			CredentialStorage: string(SecurityPlainText),
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# Mogen System Configuration
# Location: ~/.config/mogen/settings.toml
# This file uses TOML format: https://toml.io

# Directory where sessions, the overlay library and user config are stored
data_directory = "~/.local/share/mogen"
`
}

func GenerateUserConfigTemplate() string {
	return `# Mogen User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[gateway]
# Generation gateway URL
host = "http://localhost:8787"

# Default model the gateway should use
default_model = "default"

[render]
# Playback defaults handed to overlay programs
fps = 30.0
duration_in_frames = 150
width = 1920
height = 1080

# Provider used for generation: "gateway", "openai", "openrouter" or "anthropic"
default_provider = "gateway"

[security]
# Credential storage: "plaintext" or "ssh_key"
credential_storage = "plaintext"

# Direct SDK providers. API keys live in the credential store, not here.
# [[providers]]
# id = "anthropic"
# name = "Anthropic"
# enabled = true
# model = "claude-sonnet-4-5-20250929"
`
}
