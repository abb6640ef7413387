// internal/workers/procurement/analyze-product/handler.go
package analyzeproduct

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "procurement-workers/internal/common/errors"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/common/validation"
	"procurement-workers/internal/procurement"
)

const (
	TaskType = "analyze-product"
)

type Handler struct {
	config     *Config
	service    *procurement.Service
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, service *procurement.Service, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		service:    service,
		errHandler: apperrors.NewErrorHandler(log),
		logger:     log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	if result := validation.AnalyzeRequestSchema.ValidateBytes([]byte(job.Variables)); !result.Valid {
		h.errHandler.HandleJobError(ctx, client, job, apperrors.NewInvalidAnalysisInputError(result.Error()))
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errHandler.HandleJobError(ctx, client, job, apperrors.NewInvalidAnalysisInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || input.ProductID == "" {
		return nil, apperrors.NewInvalidAnalysisInputError("productId is required")
	}

	result, err := h.service.Analyze(ctx, *input)
	if err != nil {
		return nil, err
	}

	h.logger.Info("product analyzed", map[string]interface{}{
		"productId":      input.ProductID,
		"analysisId":     result.AnalysisID,
		"recommendation": result.Recommendation,
		"substitutes":    len(result.Substitutes),
	})

	return &Output{
		AnalysisID:      result.AnalysisID,
		Recommendation:  result.Recommendation,
		Analysis:        result.Analysis,
		Substitutes:     result.Substitutes,
		SubstituteCount: len(result.Substitutes),
		Context:         result.Context,
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
