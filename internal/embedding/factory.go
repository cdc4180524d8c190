package embedding

import (
	"fmt"

	"github.com/hyperjump/umekomi/internal/config"
	"github.com/hyperjump/umekomi/internal/device"
)

// NewEmbedder creates an embedder for the configured provider and returns it
// together with the device it is bound to.
// Supported providers: "onnx" (default), "mock".
func NewEmbedder(cfg *config.ModelConfig) (Embedder, device.Descriptor, error) {
	switch cfg.Provider {
	case "onnx", "":
		return NewONNXEmbedder(cfg.Path, cfg.MaxTokens)
	case "mock":
		return NewMockEmbedder(Dimension), device.Descriptor{Kind: device.KindCPU, Name: "mock"}, nil
	default:
		return nil, device.Descriptor{}, fmt.Errorf("unknown embedding provider: %s (supported: onnx, mock)", cfg.Provider)
	}
}
