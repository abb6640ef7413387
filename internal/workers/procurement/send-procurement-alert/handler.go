// internal/workers/procurement/send-procurement-alert/handler.go
package sendprocurementalert

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	apperrors "procurement-workers/internal/common/errors"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/models"
)

const (
	TaskType = "send-procurement-alert"
)

type TopicPublisher interface {
	PublishToTopic(ctx context.Context, topicARN, subject, message string, attributes map[string]string) (string, error)
}

type EmailSender interface {
	SendText(ctx context.Context, from string, to []string, subject, body string) (string, error)
}

type Handler struct {
	config     *Config
	publisher  TopicPublisher
	email      EmailSender
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

// NewHandler accepts nil publisher or email sender; the matching channel is then skipped.
func NewHandler(config *Config, publisher TopicPublisher, email EmailSender, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		publisher:  publisher,
		email:      email,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || input.ProductID == "" || input.Recommendation == "" {
		return nil, apperrors.NewInvalidAnalysisInputError("productId and recommendation are required")
	}

	base := models.ProcurementAlert{
		ProductID:      input.ProductID,
		ProductName:    input.ProductName,
		SKU:            input.SKU,
		Recommendation: input.Recommendation,
		Substitutes:    substituteIDs(input.Substitutes),
	}

	if !h.config.shouldAlert(input.Recommendation) {
		h.logger.Debug("recommendation does not need an alert", map[string]interface{}{
			"productId":      input.ProductID,
			"recommendation": input.Recommendation,
		})
		skipped := base
		skipped.ID = uuid.New().String()
		skipped.Status = StatusSkipped
		return &Output{Alerts: []models.ProcurementAlert{skipped}}, nil
	}

	subject := fmt.Sprintf("Procurement alert: %s for %s", input.Recommendation, displayName(input))
	body := formatBody(input)

	out := &Output{Alerts: []models.ProcurementAlert{}}

	if h.config.SNSEnabled && h.publisher != nil {
		alert := base
		alert.ID = uuid.New().String()
		alert.Channel = ChannelSNS
		_, err := h.publisher.PublishToTopic(ctx, h.config.TopicARN, subject, body, map[string]string{
			"alertId":        alert.ID,
			"productId":      input.ProductID,
			"recommendation": input.Recommendation,
		})
		if err != nil {
			return nil, apperrors.NewAlertPublishFailedError(ChannelSNS, err).WithMetadata("productId", input.ProductID)
		}
		alert.Status = StatusSent
		alert.SentAt = time.Now().UTC().Format(time.RFC3339)
		out.Alerts = append(out.Alerts, alert)
	}

	if h.config.EmailEnabled && h.email != nil && len(h.config.Recipients) > 0 {
		alert := base
		alert.ID = uuid.New().String()
		alert.Channel = ChannelEmail
		if _, err := h.email.SendText(ctx, h.config.FromEmail, h.config.Recipients, subject, body); err != nil {
			return nil, apperrors.NewAlertPublishFailedError(ChannelEmail, err).WithMetadata("productId", input.ProductID)
		}
		alert.Status = StatusSent
		alert.SentAt = time.Now().UTC().Format(time.RFC3339)
		out.Alerts = append(out.Alerts, alert)
	}

	out.AlertSent = len(out.Alerts) > 0
	h.logger.Info("procurement alert processed", map[string]interface{}{
		"productId":      input.ProductID,
		"recommendation": input.Recommendation,
		"channels":       len(out.Alerts),
	})
	return out, nil
}

func substituteIDs(subs []models.SubstituteEntry) []string {
	if len(subs) == 0 {
		return nil
	}
	ids := make([]string, len(subs))
	for i, s := range subs {
		ids[i] = s.ID
	}
	return ids
}

func displayName(input *Input) string {
	if input.ProductName != "" {
		return input.ProductName
	}
	return input.ProductID
}

func formatBody(input *Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s (%s)\n", displayName(input), input.ProductID)
	if input.SKU != "" {
		fmt.Fprintf(&b, "SKU: %s\n", input.SKU)
	}
	fmt.Fprintf(&b, "Recommendation: %s\n", input.Recommendation)
	if len(input.Substitutes) > 0 {
		b.WriteString("Substitutes:\n")
		for _, s := range input.Substitutes {
			fmt.Fprintf(&b, "  - %s %s (similarity %.2f)\n", s.SKU, s.Name, s.Similarity)
		}
	}
	return b.String()
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
