// Package embedding provides text embedding via ONNX runtime inference.
package embedding

import "context"

// Dimension is the embedding dimension of the supported model family
// (BGE-large). It is fixed regardless of batch size or instruction use.
const Dimension = 1024

// Embedder produces L2-normalized vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
