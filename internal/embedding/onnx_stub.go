//go:build !cgo
// +build !cgo

package embedding

import (
	"context"
	"errors"

	"github.com/hyperjump/umekomi/internal/device"
)

var errONNXUnavailable = errors.New("ONNX embedder requires CGO; build with CGO_ENABLED=1 and onnxruntime")

// ONNXEmbedder stub type when built without CGO (see onnx.go for the real implementation).
type ONNXEmbedder struct{}

// NewONNXEmbedder returns an error when built without CGO (ONNX not available).
func NewONNXEmbedder(_ string, _ int) (*ONNXEmbedder, device.Descriptor, error) {
	return nil, device.Descriptor{}, errONNXUnavailable
}

// DeviceProbes returns an empty capability table without CGO, so selection
// falls back to CPU.
func DeviceProbes() []device.Probe {
	return nil
}

// GPUAvailable is always false without CGO: the runtime cannot be probed.
func GPUAvailable() bool {
	return false
}

func (e *ONNXEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, errONNXUnavailable
}

func (e *ONNXEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errONNXUnavailable
}

func (e *ONNXEmbedder) Dimensions() int {
	return Dimension
}

func (e *ONNXEmbedder) Device() device.Descriptor {
	return device.Descriptor{Kind: device.KindUnknown}
}

func (e *ONNXEmbedder) Close() error {
	return nil
}
