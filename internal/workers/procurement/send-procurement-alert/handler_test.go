package sendprocurementalert

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "procurement-workers/internal/common/errors"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/models"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishToTopic(ctx context.Context, topicARN, subject, message string, attributes map[string]string) (string, error) {
	args := m.Called(ctx, topicARN, subject, message, attributes)
	return args.String(0), args.Error(1)
}

type MockEmail struct {
	mock.Mock
}

func (m *MockEmail) SendText(ctx context.Context, from string, to []string, subject, body string) (string, error) {
	args := m.Called(ctx, from, to, subject, body)
	return args.String(0), args.Error(1)
}

func createTestConfig() *Config {
	return &Config{
		Timeout:      5 * time.Second,
		AlertLabels:  []string{models.RecommendationUseSubstitute, models.RecommendationBulkOrder},
		SNSEnabled:   true,
		TopicARN:     "arn:aws:sns:us-east-1:123456789012:procurement-alerts",
		EmailEnabled: true,
		FromEmail:    "alerts@example.com",
		Recipients:   []string{"buyer@example.com"},
	}
}

func createValidInput(rec string) *Input {
	return &Input{
		ProductID:      "P1",
		ProductName:    "Cordless Drill",
		SKU:            "TL-001",
		Recommendation: rec,
		Substitutes: []models.SubstituteEntry{
			{ID: "P3", Name: "Impact Driver", SKU: "TL-003", Similarity: 0.87},
		},
	}
}

func TestHandler_Execute_SendsOnBothChannels(t *testing.T) {
	pub := &MockPublisher{}
	pub.On("PublishToTopic", mock.Anything, "arn:aws:sns:us-east-1:123456789012:procurement-alerts",
		"Procurement alert: Use Substitute for Cordless Drill",
		mock.MatchedBy(func(body string) bool { return strings.Contains(body, "TL-003 Impact Driver (similarity 0.87)") }),
		mock.MatchedBy(func(attrs map[string]string) bool { return attrs["recommendation"] == "Use Substitute" }),
	).Return("msg-1", nil)

	email := &MockEmail{}
	email.On("SendText", mock.Anything, "alerts@example.com", []string{"buyer@example.com"}, mock.Anything, mock.Anything).
		Return("email-1", nil)

	h := NewHandler(createTestConfig(), pub, email, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), createValidInput(models.RecommendationUseSubstitute))
	require.NoError(t, err)

	assert.True(t, out.AlertSent)
	require.Len(t, out.Alerts, 2)
	assert.Equal(t, ChannelSNS, out.Alerts[0].Channel)
	assert.Equal(t, ChannelEmail, out.Alerts[1].Channel)
	assert.Equal(t, []string{"P3"}, out.Alerts[0].Substitutes)
	assert.Equal(t, StatusSent, out.Alerts[0].Status)
	pub.AssertExpectations(t)
	email.AssertExpectations(t)
}

func TestHandler_Execute_SkipsQuietLabels(t *testing.T) {
	pub := &MockPublisher{}
	h := NewHandler(createTestConfig(), pub, nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), createValidInput(models.RecommendationHold))
	require.NoError(t, err)

	assert.False(t, out.AlertSent)
	require.Len(t, out.Alerts, 1)
	assert.Equal(t, StatusSkipped, out.Alerts[0].Status)
	pub.AssertNotCalled(t, "PublishToTopic")
}

func TestHandler_Execute_PublishFailure(t *testing.T) {
	pub := &MockPublisher{}
	pub.On("PublishToTopic", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("throttled"))

	cfg := createTestConfig()
	cfg.EmailEnabled = false
	h := NewHandler(cfg, pub, nil, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), createValidInput(models.RecommendationBulkOrder))
	require.Error(t, err)

	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAlertPublishFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.Equal(t, "P1", stdErr.Metadata["productId"])
}

func TestHandler_Execute_InvalidInput(t *testing.T) {
	h := NewHandler(createTestConfig(), nil, nil, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{ProductID: "P1"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidAnalysisInput))
}
