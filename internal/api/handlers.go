// internal/api/handlers.go
package api

import (
	"encoding/json"
	"io"
	"net/http"

	"procurement-workers/internal/catalog"
	apperrors "procurement-workers/internal/common/errors"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/common/validation"
	"procurement-workers/internal/procurement"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	service *procurement.Service
	catalog catalog.Source
	logger  logger.Logger
}

func NewHandler(svc *procurement.Service, src catalog.Source, log logger.Logger) *Handler {
	return &Handler{
		service: svc,
		catalog: src,
		logger:  log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Products(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handler) Tariffs(w http.ResponseWriter, r *http.Request) {
	tariffs, err := h.catalog.Tariffs(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tariffs)
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r, validation.AnalyzeRequestSchema)
	if !ok {
		return
	}

	var req procurement.Request
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Analyze(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) Substitute(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r, validation.ProductRequestSchema)
	if !ok {
		return
	}

	var req struct {
		ProductID string `json:"productId"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	subs, err := h.service.Substitutes(r.Context(), req.ProductID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, subs)
}

// readBody reads and validates the request body, writing a 400 on failure.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request, schema *validation.Schema) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read request body")
		return nil, false
	}

	result := schema.ValidateBytes(body)
	if result.Valid {
		return body, true
	}
	if result.HasErrors("productId") {
		respondError(w, http.StatusBadRequest, "productId is required")
		return nil, false
	}
	respondJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":   "invalid request",
		"details": result.GetErrorMessages(),
	})
	return nil, false
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	if apperrors.HasCode(err, apperrors.ErrCodeProductNotFound) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	h.logger.Error("Request failed", map[string]interface{}{"error": err})
	status := http.StatusInternalServerError
	if stdErr, ok := apperrors.AsStandardError(err); ok && stdErr.Retryable {
		status = http.StatusServiceUnavailable
	}
	respondError(w, status, "internal error")
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
