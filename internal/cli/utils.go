// Package cli provides output formatting for the umekomi CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/umekomi/internal/models"
)

// OutputFormat is the format for CLI output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// previewValues is how many leading vector components the text format shows.
const previewValues = 8

// WriteEmbedding writes a single-embedding response to w in the given format.
func WriteEmbedding(w io.Writer, resp *models.EmbedResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	fmt.Fprintf(w, "Model: %s\n", resp.Model)
	fmt.Fprintf(w, "Dimension: %d\n", resp.Dimension)
	fmt.Fprintf(w, "Embedding: %s\n", PreviewVector(resp.Embedding, previewValues))
	fmt.Fprintf(w, "Processing time: %.2fms\n", resp.ProcessingTimeMs)
	return nil
}

// WriteBatch writes a batch-embedding response to w in the given format.
func WriteBatch(w io.Writer, resp *models.EmbedBatchResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	fmt.Fprintf(w, "Model: %s\n", resp.Model)
	fmt.Fprintf(w, "Count: %d (dimension %d)\n", resp.Count, resp.Dimension)
	for i, emb := range resp.Embeddings {
		fmt.Fprintf(w, "  [%d] %s\n", i, PreviewVector(emb, previewValues))
	}
	fmt.Fprintf(w, "Processing time: %.2fms\n", resp.ProcessingTimeMs)
	return nil
}

// WriteSimilarity writes a similarity response to w in the given format.
func WriteSimilarity(w io.Writer, resp *models.SimilarityResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	fmt.Fprintf(w, "Similarity: %.6f\n", resp.Similarity)
	fmt.Fprintf(w, "Processing time: %.2fms\n", resp.ProcessingTimeMs)
	return nil
}

// WriteHealth writes a health response to w in the given format.
func WriteHealth(w io.Writer, resp *models.HealthResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	fmt.Fprintf(w, "Status: %s\n", resp.Status)
	fmt.Fprintf(w, "Model: %s (dimension %d)\n", resp.Model, resp.Dimension)
	fmt.Fprintf(w, "Device: %s\n", resp.Device)
	if resp.GPUAvailable {
		fmt.Fprintf(w, "GPU: %s\n", resp.GPUName)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PreviewVector renders the first n components of vec followed by the total
// length, e.g. "[0.0123, -0.0456, ...] (1024 values)".
func PreviewVector(vec []float32, n int) string {
	if len(vec) == 0 {
		return "[] (0 values)"
	}
	if n > len(vec) {
		n = len(vec)
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("%.4f", vec[i])
	}
	suffix := ""
	if n < len(vec) {
		suffix = ", ..."
	}
	return fmt.Sprintf("[%s%s] (%d values)", strings.Join(parts, ", "), suffix, len(vec))
}
