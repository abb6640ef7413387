package findsubstitutes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement-workers/internal/catalog"
	apperrors "procurement-workers/internal/common/errors"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/decision/similarity"
	"procurement-workers/internal/models"
)

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second, Similarity: similarity.DefaultConfig()}
}

func createTestCatalog() *catalog.MemoryStore {
	return catalog.NewMemoryStore([]models.Product{
		{ID: "A", Name: "Steel Kettle", SKU: "K-1", Category: "Kitchen", Price: 30, BaseCost: 12, Features: []string{"steel", "kettle", "electric"}},
		{ID: "B", Name: "Glass Kettle", SKU: "K-2", Category: "Kitchen", Price: 35, BaseCost: 14, Features: []string{"glass", "kettle", "electric"}},
		{ID: "C", Name: "Toaster", SKU: "T-1", Category: "Kitchen", Price: 25, BaseCost: 10, Features: []string{"toaster", "electric"}},
		{ID: "D", Name: "Rake", SKU: "G-1", Category: "Garden", Price: 15, BaseCost: 5, Features: []string{"rake", "outdoor"}},
	}, nil)
}

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(createTestConfig(), createTestCatalog(), logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{ProductID: "A"})
	require.NoError(t, err)

	assert.Equal(t, "A", out.ProductID)
	assert.Equal(t, len(out.Substitutes), out.Count)
	require.NotEmpty(t, out.Substitutes)
	assert.Equal(t, "B", out.Substitutes[0].ID)
	for i, s := range out.Substitutes {
		assert.NotEqual(t, "A", s.ID)
		assert.Greater(t, s.Similarity, 0.10)
		if i > 0 {
			assert.LessOrEqual(t, s.Similarity, out.Substitutes[i-1].Similarity)
		}
	}
}

func TestHandler_Execute_UnknownProduct(t *testing.T) {
	h := NewHandler(createTestConfig(), createTestCatalog(), logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{ProductID: "Z"})
	require.NoError(t, err)
	assert.Empty(t, out.Substitutes)
	assert.NotNil(t, out.Substitutes)
}

func TestHandler_Execute_MissingID(t *testing.T) {
	h := NewHandler(createTestConfig(), createTestCatalog(), logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidAnalysisInput))
}

type failingSource struct{ catalog.Source }

func (failingSource) Products(context.Context) ([]models.Product, error) {
	return nil, apperrors.NewCatalogLoadFailedError("postgres", errors.New("connection refused"))
}

func TestHandler_Execute_CatalogFailure(t *testing.T) {
	h := NewHandler(createTestConfig(), failingSource{}, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{ProductID: "A"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCatalogLoadFailed))
}
