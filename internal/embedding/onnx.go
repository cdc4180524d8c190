//go:build cgo
// +build cgo

package embedding

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/hyperjump/umekomi/internal/device"
	"github.com/hyperjump/umekomi/pkg/utils"
)

// ONNXEmbedder runs a BGE-family ONNX model. It requires CGO and the
// onnxruntime shared library. Sessions are dynamic so each forward pass can
// carry a full sub-batch in one [n, maxTokens] tensor. Run calls are
// serialized: the runtime is not assumed re-entrant.
type ONNXEmbedder struct {
	session    *ort.DynamicAdvancedSession
	dimensions int
	maxTokens  int
	tokenizer  Tokenizer
	dev        device.Descriptor
	mu         sync.Mutex
}

// NewONNXEmbedder loads the model at modelPath onto the best available
// device (cuda, then coreml, then cpu) and returns the embedder together
// with the selected device descriptor.
func NewONNXEmbedder(modelPath string, maxTokens int) (*ONNXEmbedder, device.Descriptor, error) {
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, device.Descriptor{}, fmt.Errorf("failed to initialize ONNX runtime: %w", err)
		}
	}

	dev := device.Select(DeviceProbes())
	opts, err := sessionOptionsFor(dev)
	if err != nil {
		return nil, device.Descriptor{}, err
	}
	defer opts.Destroy()

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"output"},
		opts,
	)
	if err != nil {
		return nil, device.Descriptor{}, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXEmbedder{
		session:    session,
		dimensions: Dimension,
		maxTokens:  maxTokens,
		tokenizer:  &SimpleTokenizer{},
		dev:        dev,
	}, dev, nil
}

// DeviceProbes returns the ordered capability table for device selection:
// dedicated GPU first, Apple accelerator second, CPU fallback implicit.
func DeviceProbes() []device.Probe {
	return []device.Probe{
		{
			Kind:  device.KindCUDA,
			Check: cudaAvailable,
			Name:  func() string { return device.CUDADeviceName(context.Background()) },
		},
		{
			Kind:  device.KindCoreML,
			Check: coremlAvailable,
		},
	}
}

// GPUAvailable probes CUDA without loading a model, so health can report
// hardware capability while the model is still loading.
func GPUAvailable() bool {
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return false
		}
	}
	return cudaAvailable()
}

// cudaAvailable probes CUDA by attempting to append the CUDA execution
// provider to throwaway session options.
func cudaAvailable() bool {
	opts, err := ort.NewSessionOptions()
	if err != nil {
		return false
	}
	defer opts.Destroy()
	cudaOpts, err := ort.NewCUDAProviderOptions()
	if err != nil {
		return false
	}
	defer cudaOpts.Destroy()
	if err := cudaOpts.Update(map[string]string{"device_id": "0"}); err != nil {
		return false
	}
	return opts.AppendExecutionProviderCUDA(cudaOpts) == nil
}

func coremlAvailable() bool {
	if runtime.GOOS != "darwin" {
		return false
	}
	opts, err := ort.NewSessionOptions()
	if err != nil {
		return false
	}
	defer opts.Destroy()
	return opts.AppendExecutionProviderCoreML(0) == nil
}

func sessionOptionsFor(dev device.Descriptor) (*ort.SessionOptions, error) {
	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}
	switch dev.Kind {
	case device.KindCUDA:
		cudaOpts, err := ort.NewCUDAProviderOptions()
		if err != nil {
			opts.Destroy()
			return nil, fmt.Errorf("failed to create CUDA provider options: %w", err)
		}
		defer cudaOpts.Destroy()
		if err := cudaOpts.Update(map[string]string{"device_id": "0"}); err != nil {
			opts.Destroy()
			return nil, fmt.Errorf("failed to configure CUDA provider: %w", err)
		}
		if err := opts.AppendExecutionProviderCUDA(cudaOpts); err != nil {
			opts.Destroy()
			return nil, fmt.Errorf("failed to append CUDA provider: %w", err)
		}
	case device.KindCoreML:
		if err := opts.AppendExecutionProviderCoreML(0); err != nil {
			opts.Destroy()
			return nil, fmt.Errorf("failed to append CoreML provider: %w", err)
		}
	}
	return opts, nil
}

// Embed returns the normalized embedding for a single text.
func (e *ONNXEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// EmbedBatch runs one forward pass over all texts and returns one normalized
// embedding per text, in input order. Callers cap the batch size; this method
// accepts whatever it is given.
func (e *ONNXEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	n := int64(len(texts))
	inputIDs, attentionMask, tokenTypeIDs := e.tokenizer.TokenizeBatch(texts, e.maxTokens)
	inputShape := ort.NewShape(n, int64(e.maxTokens))

	inputIDsTensor, err := ort.NewTensor(inputShape, inputIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to create input_ids tensor: %w", err)
	}
	defer inputIDsTensor.Destroy()
	attentionMaskTensor, err := ort.NewTensor(inputShape, attentionMask)
	if err != nil {
		return nil, fmt.Errorf("failed to create attention_mask tensor: %w", err)
	}
	defer attentionMaskTensor.Destroy()
	tokenTypeIDsTensor, err := ort.NewTensor(inputShape, tokenTypeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to create token_type_ids tensor: %w", err)
	}
	defer tokenTypeIDsTensor.Destroy()
	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(n, int64(e.dimensions)))
	if err != nil {
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	err = e.session.Run(
		[]ort.ArbitraryTensor{inputIDsTensor, attentionMaskTensor, tokenTypeIDsTensor},
		[]ort.ArbitraryTensor{outputTensor},
	)
	if err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	outputData := outputTensor.GetData()
	embeddings := make([][]float32, len(texts))
	for i := range embeddings {
		row := make([]float32, e.dimensions)
		copy(row, outputData[i*e.dimensions:(i+1)*e.dimensions])
		utils.NormalizeL2(row)
		embeddings[i] = row
	}
	return embeddings, nil
}

// Dimensions returns the embedding dimension.
func (e *ONNXEmbedder) Dimensions() int {
	return e.dimensions
}

// Device returns the device the session is bound to.
func (e *ONNXEmbedder) Device() device.Descriptor {
	return e.dev
}

// Close destroys the session.
func (e *ONNXEmbedder) Close() error {
	if e.session != nil {
		err := e.session.Destroy()
		e.session = nil
		return err
	}
	return nil
}
