package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
model:
  name: "BAAI/bge-base-en-v1.5"
  path: "/opt/models/bge-base.onnx"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Model.Name != "BAAI/bge-base-en-v1.5" {
		t.Errorf("model name: got %q", cfg.Model.Name)
	}
	if cfg.Model.MaxBatchSize != DefaultMaxBatchSize {
		t.Errorf("max_batch_size should default to %d, got %d", DefaultMaxBatchSize, cfg.Model.MaxBatchSize)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_missingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("port: got %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Model.Name != DefaultModelName {
		t.Errorf("model name: got %q", cfg.Model.Name)
	}
	if cfg.Model.Provider != "onnx" {
		t.Errorf("provider: got %q, want onnx", cfg.Model.Provider)
	}
}

func TestLoad_envOverrides(t *testing.T) {
	t.Setenv("EMBEDDING_MODEL", "BAAI/bge-small-en-v1.5")
	t.Setenv("MAX_BATCH_SIZE", "8")
	t.Setenv("EMBEDDING_SERVICE_PORT", "6003")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model.Name != "BAAI/bge-small-en-v1.5" {
		t.Errorf("model name: got %q", cfg.Model.Name)
	}
	if cfg.Model.MaxBatchSize != 8 {
		t.Errorf("max batch size: got %d, want 8", cfg.Model.MaxBatchSize)
	}
	if cfg.Server.Port != 6003 {
		t.Errorf("port: got %d, want 6003", cfg.Server.Port)
	}
}

func TestLoad_envOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9000
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EMBEDDING_SERVICE_PORT", "7000")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("env should win over file: got %d, want 7000", cfg.Server.Port)
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
model:
  path: "./models/bge-large.onnx"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "models", "bge-large.onnx")
	if cfg.Model.Path != want {
		t.Errorf("model path: got %q, want %q", cfg.Model.Path, want)
	}
}
