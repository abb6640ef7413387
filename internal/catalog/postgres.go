// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"errors"

	apperrors "procurement-workers/internal/common/errors"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/models"
)

// PostgresStore reads products and tariffs from PostgreSQL. Features are a
// text[] column; stock and sales_velocity are nullable.
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: log.WithFields(map[string]interface{}{"catalog": "postgres"})}
}

func (s *PostgresStore) run(ctx context.Context, qt models.QueryType, args ...interface{}) (interface{}, error) {
	fn, ok := registry[qt]
	if !ok {
		return nil, apperrors.NewInvalidQueryTypeError(string(qt))
	}

	result, err := fn(ctx, s.db, args...)
	if err == nil {
		return result, nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, apperrors.NewQueryTimeoutError(string(qt))
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	s.logger.Error("Catalog query failed", map[string]interface{}{
		"queryType": string(qt),
		"error":     err.Error(),
	})
	return nil, apperrors.NewQueryExecutionFailedError(string(qt), err)
}

func (s *PostgresStore) Products(ctx context.Context) ([]models.Product, error) {
	result, err := s.run(ctx, models.QueryTypeAllProducts)
	if err != nil {
		return nil, err
	}
	return result.([]models.Product), nil
}

func (s *PostgresStore) Product(ctx context.Context, id string) (models.Product, error) {
	result, err := s.run(ctx, models.QueryTypeProductByID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, apperrors.NewProductNotFoundError(id)
	}
	if err != nil {
		return models.Product{}, err
	}
	return result.(models.Product), nil
}

func (s *PostgresStore) Tariffs(ctx context.Context) (models.TariffTable, error) {
	result, err := s.run(ctx, models.QueryTypeAllTariffs)
	if err != nil {
		return nil, err
	}
	return result.(models.TariffTable), nil
}
