// internal/workers/signals/lookup-tariff/handler.go
package lookuptariff

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"procurement-workers/internal/catalog"
	apperrors "procurement-workers/internal/common/errors"
	"procurement-workers/internal/common/logger"
)

const (
	TaskType = "lookup-tariff"
)

type Handler struct {
	config     *Config
	catalog    catalog.Source
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, src catalog.Source, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
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

// execute returns rate 0 with Found=false when the table has no entry.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInvalidAnalysisInputError("input cannot be nil")
	}

	country, category := input.OriginCountry, input.Category
	if input.ProductID != "" {
		product, err := h.catalog.Product(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}
		if country == "" {
			country = product.CountryOfOrigin
		}
		if category == "" {
			category = product.Category
		}
	}
	if country == "" || category == "" {
		return nil, apperrors.NewInvalidAnalysisInputError("productId or originCountry and category are required")
	}

	table, err := h.catalog.Tariffs(ctx)
	if err != nil {
		return nil, apperrors.NewTariffLookupFailedError(err)
	}

	_, found := table[country][category]
	return &Output{
		OriginCountry: country,
		Category:      category,
		TariffRate:    table.Rate(country, category),
		Found:         found,
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
