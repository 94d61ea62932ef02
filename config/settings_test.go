package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadUserConfigWritesTemplate(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadUserConfig(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Gateway.Host != "http://localhost:8787" {
		t.Errorf("host = %q, want default", cfg.Gateway.Host)
	}
	if cfg.Render != DefaultRenderConfig() {
		t.Errorf("render = %+v, want defaults", cfg.Render)
	}

	path := filepath.Join(dir, "config.toml")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("template not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("perms = %o, want 0600", info.Mode().Perm())
	}
}

func TestUserConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultUserConfig()
	cfg.Gateway.Host = "http://10.1.1.1:9000"
	cfg.Render.FPS = 60
	cfg.DefaultProvider = "anthropic"
	cfg.Security = SecurityConfig{CredentialStorage: string(SecuritySSHKey), SSHKeyPath: "~/.ssh/mogen_ed25519"}

	if err := SaveUserConfig(cfg, dir); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := LoadUserConfig(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Gateway.Host != cfg.Gateway.Host {
		t.Errorf("host = %q", loaded.Gateway.Host)
	}
	if loaded.Render.FPS != 60 {
		t.Errorf("fps = %v", loaded.Render.FPS)
	}
	if loaded.DefaultProvider != "anthropic" {
		t.Errorf("provider = %q", loaded.DefaultProvider)
	}
	if loaded.Security.SSHKeyPath != "~/.ssh/mogen_ed25519" {
		t.Errorf("ssh key path = %q", loaded.Security.SSHKeyPath)
	}
}

func TestLoadUserConfigSanitizesRender(t *testing.T) {
	dir := t.TempDir()
	content := `[render]
fps = 0.0
duration_in_frames = -5
width = 1280
height = 720
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := LoadUserConfig(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	def := DefaultRenderConfig()
	if cfg.Render.FPS != def.FPS {
		t.Errorf("fps = %v, want default %v", cfg.Render.FPS, def.FPS)
	}
	if cfg.Render.DurationInFrames != def.DurationInFrames {
		t.Errorf("duration = %d, want default %d", cfg.Render.DurationInFrames, def.DurationInFrames)
	}
	// Valid fields survive sanitizing.
	if cfg.Render.Width != 1280 || cfg.Render.Height != 720 {
		t.Errorf("surface = %dx%d, want 1280x720", cfg.Render.Width, cfg.Render.Height)
	}
}
