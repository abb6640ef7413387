// internal/workers/signals/fetch-demand-signal/handler.go
package fetchdemandsignal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"procurement-workers/internal/catalog"
	apperrors "procurement-workers/internal/common/errors"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/procurement"
)

const (
	TaskType = "fetch-demand-signal"
)

type Handler struct {
	config     *Config
	demand     procurement.DemandSource
	catalog    catalog.Source
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, demand procurement.DemandSource, src catalog.Source, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		demand:     demand,
		catalog:    src,
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

// execute resolves the product name from the catalog when only an id is given.
// Upstream news failures degrade to a neutral signal rather than failing the job.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInvalidAnalysisInputError("input cannot be nil")
	}

	name := input.ProductName
	if name == "" && input.ProductID != "" {
		product, err := h.catalog.Product(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}
		name = product.Name
	}
	if name == "" {
		return nil, apperrors.NewInvalidAnalysisInputError("productName or productId is required")
	}

	sig := h.demand.DemandSignal(ctx, name)
	return &Output{
		ProductName:  name,
		DemandSignal: sig.Score,
		ArticleCount: sig.ArticleCount,
		DemandSource: sig.Source,
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
