// Package encoder wraps the embedding model behind a process-wide handle:
// load and warm-up, readiness gating, instruction templating, sub-batch
// capped invocation, and similarity.
package encoder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/umekomi/internal/config"
	"github.com/hyperjump/umekomi/internal/device"
	"github.com/hyperjump/umekomi/internal/embedding"
	"github.com/hyperjump/umekomi/internal/vector"
)

// ErrModelNotLoaded is returned for inference requested before the model
// finished loading. The HTTP layer maps it to 503.
var ErrModelNotLoaded = errors.New("model not loaded")

// Engine is the shared model handle. One Engine exists per process; it is
// constructed at startup and passed to request handlers. All methods are safe
// for concurrent use once Load has completed.
type Engine struct {
	cfg    *config.ModelConfig
	logger *zap.Logger

	mu       sync.Mutex
	embedder embedding.Embedder
	dev      device.Descriptor
	loadTime time.Duration
	ready    atomic.Bool

	// gpuProbe answers whether GPU hardware is usable, independent of model
	// state, so health can report it while the model is still loading. The
	// probe can be slow, so its result is cached after the first call.
	gpuProbe func() bool
	gpuOnce  sync.Once
	gpuAvail bool
}

// NewEngine creates an engine that is not yet ready; call Load to bind the model.
func NewEngine(cfg *config.ModelConfig, logger *zap.Logger) *Engine {
	return &Engine{
		cfg:      cfg,
		logger:   logger,
		dev:      device.Descriptor{Kind: device.KindUnknown},
		gpuProbe: embedding.GPUAvailable,
	}
}

// NewEngineWithEmbedder creates a ready engine over an existing embedder.
// Used by tests and anywhere load has already happened out of band.
func NewEngineWithEmbedder(cfg *config.ModelConfig, embedder embedding.Embedder, dev device.Descriptor, logger *zap.Logger) *Engine {
	e := &Engine{cfg: cfg, logger: logger, embedder: embedder, dev: dev, gpuProbe: dev.GPU}
	e.ready.Store(true)
	return e
}

// Load constructs the embedder for the configured provider, binds it to the
// selected device, and runs one warm-up inference so lazy runtime
// initialization happens before traffic. On success the engine becomes ready.
func (e *Engine) Load(ctx context.Context) error {
	e.logger.Info("loading embedding model",
		zap.String("model", e.cfg.Name),
		zap.String("path", e.cfg.Path),
		zap.String("provider", e.cfg.Provider),
	)
	start := time.Now()

	embedder, dev, err := embedding.NewEmbedder(e.cfg)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	if _, err := embedder.Embed(ctx, "warm up"); err != nil {
		_ = embedder.Close()
		return fmt.Errorf("warm-up inference failed: %w", err)
	}
	loadTime := time.Since(start)

	e.mu.Lock()
	e.embedder = embedder
	e.dev = dev
	e.loadTime = loadTime
	e.mu.Unlock()
	e.ready.Store(true)

	e.logger.Info("model loaded",
		zap.Duration("load_time", loadTime),
		zap.String("device", string(dev.Kind)),
		zap.String("device_name", dev.Name),
	)
	return nil
}

// Ready reports whether the model is loaded and serving.
func (e *Engine) Ready() bool {
	return e.ready.Load()
}

// Device returns the bound device descriptor (KindUnknown before load).
func (e *Engine) Device() device.Descriptor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dev
}

// GPUAvailable reports whether GPU hardware is usable. Unlike Device it does
// not depend on the model being loaded.
func (e *Engine) GPUAvailable() bool {
	e.gpuOnce.Do(func() {
		if e.gpuProbe != nil {
			e.gpuAvail = e.gpuProbe()
		}
	})
	return e.gpuAvail
}

// ModelName returns the configured model identifier.
func (e *Engine) ModelName() string {
	return e.cfg.Name
}

// Dimensions returns the embedding dimension.
func (e *Engine) Dimensions() int {
	return embedding.Dimension
}

// EmbedOne embeds a single text, applying the optional instruction prefix.
func (e *Engine) EmbedOne(ctx context.Context, text, instruction string) ([]float32, error) {
	if !e.ready.Load() {
		return nil, ErrModelNotLoaded
	}
	emb, err := e.embedder.Embed(ctx, embedding.PrepareText(text, instruction))
	if err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}
	return emb, nil
}

// EmbedMany embeds texts in input order, applying the optional instruction
// prefix uniformly. Input is split into sub-batches of at most MaxBatchSize
// per forward pass; callers only observe one embedding per input text.
// Any sub-batch failure aborts the whole call with no partial result.
func (e *Engine) EmbedMany(ctx context.Context, texts []string, instruction string) ([][]float32, error) {
	if !e.ready.Load() {
		return nil, ErrModelNotLoaded
	}
	prepared := embedding.PrepareTexts(texts, instruction)
	maxBatch := e.cfg.MaxBatchSize
	if maxBatch <= 0 {
		maxBatch = config.DefaultMaxBatchSize
	}

	embeddings := make([][]float32, 0, len(prepared))
	for start := 0; start < len(prepared); start += maxBatch {
		end := start + maxBatch
		if end > len(prepared) {
			end = len(prepared)
		}
		chunk, err := e.embedder.EmbedBatch(ctx, prepared[start:end])
		if err != nil {
			return nil, fmt.Errorf("batch embedding failed: %w", err)
		}
		embeddings = append(embeddings, chunk...)
	}
	return embeddings, nil
}

// Similarity returns the cosine similarity of two texts as the dot product of
// their independently computed normalized embeddings. No instruction prefix
// is applied and nothing is cached: repeated identical calls re-run inference.
func (e *Engine) Similarity(ctx context.Context, text1, text2 string) (float64, error) {
	emb1, err := e.EmbedOne(ctx, text1, "")
	if err != nil {
		return 0, err
	}
	emb2, err := e.EmbedOne(ctx, text2, "")
	if err != nil {
		return 0, err
	}
	return vector.InnerProduct(emb1, emb2), nil
}

// Close releases the embedder. The engine stops reporting ready.
func (e *Engine) Close() error {
	e.ready.Store(false)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.embedder != nil {
		err := e.embedder.Close()
		e.embedder = nil
		return err
	}
	return nil
}
