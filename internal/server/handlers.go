package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/umekomi/internal/device"
	"github.com/hyperjump/umekomi/internal/encoder"
	"github.com/hyperjump/umekomi/internal/models"
	"github.com/hyperjump/umekomi/pkg/utils"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, &models.ServiceInfo{
		Service:   "umekomi embedding service",
		Version:   s.version,
		Model:     s.engine.ModelName(),
		Dimension: s.engine.Dimensions(),
		Endpoints: map[string]string{
			"health":      "GET /health",
			"embed":       "POST /embed",
			"embed_batch": "POST /embed/batch",
			"similarity":  "POST /similarity",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := &models.HealthResponse{
		Status:       models.StatusLoading,
		Model:        s.engine.ModelName(),
		Dimension:    s.engine.Dimensions(),
		Device:       string(device.KindUnknown),
		GPUAvailable: s.engine.GPUAvailable(),
	}
	if s.engine.Ready() {
		dev := s.engine.Device()
		resp.Status = models.StatusHealthy
		resp.Device = string(dev.Kind)
		if dev.GPU() {
			resp.GPUName = dev.Name
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEmbed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req models.EmbedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	emb, err := s.engine.EmbedOne(r.Context(), *req.Text, req.Instruction)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, &models.EmbedResponse{
		Embedding:        emb,
		Dimension:        len(emb),
		Model:            s.engine.ModelName(),
		ProcessingTimeMs: utils.ElapsedMs(time.Since(start).Nanoseconds()),
	})
}

func (s *Server) handleEmbedBatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req models.EmbedBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	embs, err := s.engine.EmbedMany(r.Context(), req.Texts, req.Instruction)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, &models.EmbedBatchResponse{
		Embeddings:       embs,
		Dimension:        s.engine.Dimensions(),
		Count:            len(embs),
		Model:            s.engine.ModelName(),
		ProcessingTimeMs: utils.ElapsedMs(time.Since(start).Nanoseconds()),
	})
}

func (s *Server) handleSimilarity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req models.SimilarityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sim, err := s.engine.Similarity(r.Context(), *req.Text1, *req.Text2)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, &models.SimilarityResponse{
		Similarity:       utils.RoundTo(sim, 6),
		ProcessingTimeMs: utils.ElapsedMs(time.Since(start).Nanoseconds()),
	})
}

// respondEngineError translates engine failures: not-ready becomes 503,
// anything else is an inference failure surfaced as 500 with its description.
func (s *Server) respondEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, encoder.ErrModelNotLoaded) {
		s.respondError(w, http.StatusServiceUnavailable, encoder.ErrModelNotLoaded.Error())
		return
	}
	s.logger.Error("inference failed", zap.Error(err))
	s.respondError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, &models.ErrorResponse{Error: message})
}
