// internal/catalog/file.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	apperrors "procurement-workers/internal/common/errors"
	"procurement-workers/internal/models"
)

// FileStore reads products.json (a list of products) and tariffs.json
// (country -> category -> rate). Files are re-read on every call so edits
// are picked up without a restart. A missing file reads as empty.
type FileStore struct {
	productsPath string
	tariffsPath  string
}

func NewFileStore(productsPath, tariffsPath string) *FileStore {
	return &FileStore{productsPath: productsPath, tariffsPath: tariffsPath}
}

func readJSON(path string, dst interface{}) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return true, nil
}

func (s *FileStore) Products(_ context.Context) ([]models.Product, error) {
	var products []models.Product
	if _, err := readJSON(s.productsPath, &products); err != nil {
		return nil, apperrors.NewCatalogLoadFailedError("file", err)
	}
	return withDefaults(products), nil
}

func (s *FileStore) Product(ctx context.Context, id string) (models.Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return models.Product{}, err
	}
	p, ok := models.FindProduct(products, id)
	if !ok {
		return models.Product{}, apperrors.NewProductNotFoundError(id)
	}
	return p, nil
}

func (s *FileStore) Tariffs(_ context.Context) (models.TariffTable, error) {
	table := models.TariffTable{}
	if _, err := readJSON(s.tariffsPath, &table); err != nil {
		return nil, apperrors.NewCatalogLoadFailedError("file", err)
	}
	return table, nil
}
