package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
  run_mode: longpoll
nasa:
  api_key: "DEMO_KEY"
database:
  host: localhost
  port: "5432"
  user: astrobot
  name: astrobot
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Core.Telegram.Token != "123:abc" {
		t.Errorf("token = %q", cfg.Core.Telegram.Token)
	}
	if cfg.NASA.APIKey != "DEMO_KEY" {
		t.Errorf("api key = %q", cfg.NASA.APIKey)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("db host = %q", cfg.Database.Host)
	}
	if cfg.CoreConfig() != &cfg.Core {
		t.Error("CoreConfig must expose the embedded core section")
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected missing nasa.api_key to fail")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
nasa:
  api_key: "from-file"
`)
	t.Setenv("NASA_API_KEY", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NASA.APIKey != "from-env" {
		t.Errorf("api key = %q, want env override", cfg.NASA.APIKey)
	}
}
