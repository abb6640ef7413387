// internal/workers/signals/fetch-weather-factor/handler.go
package fetchweatherfactor

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/procurement"
)

const (
	TaskType = "fetch-weather-factor"
)

type Handler struct {
	config  *Config
	weather procurement.WeatherSource
	logger  logger.Logger
}

func NewHandler(config *Config, weather procurement.WeatherSource, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		weather: weather,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Handle always completes the job; a failed lookup reports factor 0.
func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output := h.execute(ctx, &Input{})
	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, _ *Input) *Output {
	sig := h.weather.Current(ctx)
	h.logger.Debug("weather factor fetched", map[string]interface{}{
		"weatherFactor": sig.Factor,
		"condition":     sig.Source,
	})
	return &Output{
		WeatherFactor:    sig.Factor,
		WeatherCondition: sig.Source,
	}
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
	return h.execute(ctx, input), nil
}
