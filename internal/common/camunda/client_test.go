package camunda

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"procurement-workers/internal/common/errors"
)

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unavailable", status.Error(codes.Unavailable, "gateway down"), true},
		{"deadline", status.Error(codes.DeadlineExceeded, "slow"), true},
		{"not found", status.Error(codes.NotFound, "no such process"), false},
		{"invalid argument", status.Error(codes.InvalidArgument, "bad vars"), false},
		{"plain connection refused", fmt.Errorf("dial tcp: connection refused"), true},
		{"plain other", fmt.Errorf("bad request"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableZeebeError(tt.err))
		})
	}
}

func TestExecuteWithRetry(t *testing.T) {
	c := &Client{config: &ClientConfig{RetryConfig: &RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}}}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := c.ExecuteWithRetry(context.Background(), "deploy", func(context.Context) error {
			calls++
			if calls < 3 {
				return status.Error(codes.Unavailable, "down")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		calls := 0
		err := c.ExecuteWithRetry(context.Background(), "deploy", func(context.Context) error {
			calls++
			return status.Error(codes.InvalidArgument, "bad")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)

		stdErr, ok := errors.AsStandardError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrorCode("EXTERNAL_SERVICE_ERROR"), stdErr.Code)
	})

	t.Run("deadline maps to timeout", func(t *testing.T) {
		err := c.ExecuteWithRetry(context.Background(), "create", func(context.Context) error {
			return status.Error(codes.DeadlineExceeded, "slow")
		})
		stdErr, ok := errors.AsStandardError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrorCode("TIMEOUT_ERROR"), stdErr.Code)
	})
}

func TestBackoff(t *testing.T) {
	r := &RetryConfig{BaseDelay: time.Second, MaxDelay: 5 * time.Second}
	assert.Equal(t, time.Second, backoff(r, 0))
	assert.Equal(t, 4*time.Second, backoff(r, 2))
	assert.Equal(t, 5*time.Second, backoff(r, 5))
}
