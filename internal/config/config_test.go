package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
database:
  path: /tmp/trailhead-test.db
provider: anthropic
anthropic:
  model: claude-sonnet-4-20250514
  use_aws_bedrock: true
  aws_region: us-west-2
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Database.Path != "/tmp/trailhead-test.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q, want anthropic", cfg.Provider)
	}
	if !cfg.Anthropic.UseAWSBedrock || cfg.Anthropic.AWSRegion != "us-west-2" {
		t.Errorf("bedrock settings not loaded: %+v", cfg.Anthropic)
	}
}

func TestLoadFromPathDefaults(t *testing.T) {
	path := writeConfig(t, `{}`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("default Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Provider != "openai" {
		t.Errorf("default Provider = %q, want openai", cfg.Provider)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("default OpenAI.Model = %q, want gpt-4o", cfg.OpenAI.Model)
	}
}

func TestLoadFromPathExpandsEnvInKeys(t *testing.T) {
	t.Setenv("TRAILHEAD_TEST_KEY", "sk-expanded")

	path := writeConfig(t, `
openai:
  api_key: ${TRAILHEAD_TEST_KEY}
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-expanded" {
		t.Errorf("APIKey = %q, want sk-expanded", cfg.OpenAI.APIKey)
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Addr != ":8080" || cfg.Provider != "openai" || cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}
