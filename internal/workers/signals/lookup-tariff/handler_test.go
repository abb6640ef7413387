package lookuptariff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement-workers/internal/catalog"
	apperrors "procurement-workers/internal/common/errors"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/models"
)

func createTestHandler(t *testing.T) *Handler {
	src := catalog.NewMemoryStore([]models.Product{
		{ID: "P1", Name: "Cordless Drill", Category: "Tools", CountryOfOrigin: "China"},
		{ID: "P2", Name: "Rake", Category: "Garden", CountryOfOrigin: "USA"},
	}, models.TariffTable{"China": {"Tools": 0.25, "Garden": 0.1}})
	return NewHandler(&Config{Timeout: 5 * time.Second}, src, logger.NewTestLogger(t))
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		wantRate float64
		found    bool
	}{
		{"by product", &Input{ProductID: "P1"}, 0.25, true},
		{"explicit pair", &Input{OriginCountry: "China", Category: "Garden"}, 0.1, true},
		{"explicit category overrides product", &Input{ProductID: "P1", Category: "Garden"}, 0.1, true},
		{"unknown country defaults to zero", &Input{ProductID: "P2"}, 0, false},
		{"unknown category defaults to zero", &Input{OriginCountry: "China", Category: "Toys"}, 0, false},
	}

	h := createTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRate, out.TariffRate)
			assert.Equal(t, tt.found, out.Found)
		})
	}
}

func TestHandler_Execute_Errors(t *testing.T) {
	h := createTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidAnalysisInput))

	_, err = h.Execute(context.Background(), &Input{ProductID: "P9"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeProductNotFound))
}
