// internal/workers/procurement/find-substitutes/handler.go
package findsubstitutes

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"procurement-workers/internal/catalog"
	apperrors "procurement-workers/internal/common/errors"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/common/metrics"
	"procurement-workers/internal/decision/similarity"
)

const (
	TaskType = "find-substitutes"
)

type Handler struct {
	config     *Config
	catalog    catalog.Source
	finder     *similarity.Finder
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, src catalog.Source, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		catalog:    src,
		finder:     similarity.NewFinder(config.Similarity, log),
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

// execute returns an empty list for an unknown product; only catalog failures are errors.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || input.ProductID == "" {
		return nil, apperrors.NewInvalidAnalysisInputError("productId is required")
	}

	products, err := h.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}

	subs := h.finder.FindSubstitutes(input.ProductID, products)
	metrics.SubstitutesReturned.Observe(float64(len(subs)))

	return &Output{
		ProductID:   input.ProductID,
		Substitutes: subs,
		Count:       len(subs),
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
