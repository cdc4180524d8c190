package config

// Default values for the embedding service.
const (
	DefaultModelName    = "BAAI/bge-large-en-v1.5"
	DefaultModelPath    = "/usr/local/var/umekomi/models/bge-large-en-v1.5.onnx"
	DefaultMaxTokens    = 512
	DefaultMaxBatchSize = 32
	DefaultPort         = 5003
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Model.Name == "" {
		cfg.Model.Name = DefaultModelName
	}
	if cfg.Model.Path == "" {
		cfg.Model.Path = DefaultModelPath
	}
	if cfg.Model.Provider == "" {
		cfg.Model.Provider = "onnx"
	}
	if cfg.Model.MaxTokens == 0 {
		cfg.Model.MaxTokens = DefaultMaxTokens
	}
	if cfg.Model.MaxBatchSize == 0 {
		cfg.Model.MaxBatchSize = DefaultMaxBatchSize
	}
}
