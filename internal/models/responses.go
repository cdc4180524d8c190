package models

// EmbedResponse carries one embedding plus traceability metadata.
type EmbedResponse struct {
	Embedding        []float32 `json:"embedding"`
	Dimension        int       `json:"dimension"`
	Model            string    `json:"model"`
	ProcessingTimeMs float64   `json:"processing_time_ms"`
}

// EmbedBatchResponse carries embeddings positionally aligned with the
// request texts.
type EmbedBatchResponse struct {
	Embeddings       [][]float32 `json:"embeddings"`
	Dimension        int         `json:"dimension"`
	Count            int         `json:"count"`
	Model            string      `json:"model"`
	ProcessingTimeMs float64     `json:"processing_time_ms"`
}

// SimilarityResponse carries a cosine similarity rounded to 6 decimal places.
type SimilarityResponse struct {
	Similarity       float64 `json:"similarity"`
	ProcessingTimeMs float64 `json:"processing_time_ms"`
}

// Health status values.
const (
	StatusHealthy = "healthy"
	StatusLoading = "loading"
)

// HealthResponse reports model readiness and the bound device.
type HealthResponse struct {
	Status       string `json:"status"`
	Model        string `json:"model"`
	Dimension    int    `json:"dimension"`
	Device       string `json:"device"`
	GPUAvailable bool   `json:"gpu_available"`
	GPUName      string `json:"gpu_name,omitempty"`
}

// ServiceInfo is the root endpoint payload: identity plus endpoint map.
type ServiceInfo struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Model     string            `json:"model"`
	Dimension int               `json:"dimension"`
	Endpoints map[string]string `json:"endpoints"`
}

// ErrorResponse is the error payload for every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
