// Package config provides configuration loading and structs for the umekomi server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug  bool         `yaml:"debug"`
	Server ServerConfig `yaml:"server"`
	Model  ModelConfig  `yaml:"model"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// ModelConfig holds embedding model settings. The embedding dimension is not
// configurable: it is fixed by the model family (see embedding.Dimension).
type ModelConfig struct {
	// Name is the model identifier echoed in responses (e.g. "BAAI/bge-large-en-v1.5").
	Name string `yaml:"name"`
	// Path is the ONNX model file on disk.
	Path string `yaml:"path"`
	// Provider selects the embedder implementation: "onnx" or "mock".
	Provider string `yaml:"provider"`
	// MaxTokens is the tokenizer sequence length.
	MaxTokens int `yaml:"max_tokens"`
	// MaxBatchSize caps the number of texts per forward pass; larger request
	// batches are split internally.
	MaxBatchSize int `yaml:"max_batch_size"`
}

// envOverrides are environment variables applied on top of the config file.
// Zero values mean "not set" and leave the file/default value in place.
type envOverrides struct {
	ModelName    string `envconfig:"EMBEDDING_MODEL"`
	ModelPath    string `envconfig:"EMBEDDING_MODEL_PATH"`
	Provider     string `envconfig:"EMBEDDING_PROVIDER"`
	MaxTokens    int    `envconfig:"EMBEDDING_MAX_TOKENS"`
	MaxBatchSize int    `envconfig:"MAX_BATCH_SIZE"`
	Port         int    `envconfig:"EMBEDDING_SERVICE_PORT"`
	Host         string `envconfig:"EMBEDDING_SERVICE_HOST"`
	Debug        bool   `envconfig:"UMEKOMI_DEBUG"`
}

// Load reads and parses the config file at path, applies defaults, expands
// the model path, and applies environment overrides. A missing file is not an
// error: defaults plus environment apply.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
		// defaults + env only
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.Model.Path = expandPath(cfg.Model.Path, filepath.Dir(path))
	return &cfg, nil
}

// FromEnv returns the default config with environment overrides applied,
// used when no config file is involved.
func FromEnv() (*Config, error) {
	var cfg Config
	ApplyDefaults(&cfg)
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	if env.ModelName != "" {
		cfg.Model.Name = env.ModelName
	}
	if env.ModelPath != "" {
		cfg.Model.Path = env.ModelPath
	}
	if env.Provider != "" {
		cfg.Model.Provider = env.Provider
	}
	if env.MaxTokens > 0 {
		cfg.Model.MaxTokens = env.MaxTokens
	}
	if env.MaxBatchSize > 0 {
		cfg.Model.MaxBatchSize = env.MaxBatchSize
	}
	if env.Port > 0 {
		cfg.Server.Port = env.Port
	}
	if env.Host != "" {
		cfg.Server.Host = env.Host
	}
	if env.Debug {
		cfg.Debug = true
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative
// to configDir; other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
