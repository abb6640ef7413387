// internal/catalog/queries.go
package catalog

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"procurement-workers/internal/models"
)

const productColumns = `id, name, sku, category, price, base_cost, origin_country, features, stock, sales_velocity`

type queryFunc func(ctx context.Context, db *sql.DB, args ...interface{}) (interface{}, error)

// registry maps each catalog query type to its implementation.
var registry = map[models.QueryType]queryFunc{
	models.QueryTypeAllProducts: allProducts,
	models.QueryTypeProductByID: productByID,
	models.QueryTypeAllTariffs:  allTariffs,
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p        models.Product
		features pq.StringArray
		stock    sql.NullInt64
		velocity sql.NullFloat64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.Price, &p.BaseCost,
		&p.CountryOfOrigin, &features, &stock, &velocity); err != nil {
		return models.Product{}, err
	}

	p.Features = []string(features)
	if stock.Valid || velocity.Valid {
		p.Inventory = &models.Inventory{Stock: int(stock.Int64), SalesVelocity: velocity.Float64}
	}
	return p.WithDefaults(), nil
}

func allProducts(ctx context.Context, db *sql.DB, _ ...interface{}) (interface{}, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func productByID(ctx context.Context, db *sql.DB, args ...interface{}) (interface{}, error) {
	row := db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, args...)
	return scanProduct(row)
}

func allTariffs(ctx context.Context, db *sql.DB, _ ...interface{}) (interface{}, error) {
	rows, err := db.QueryContext(ctx, `SELECT country, category, rate FROM tariffs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	table := models.TariffTable{}
	for rows.Next() {
		var country, category string
		var rate float64
		if err := rows.Scan(&country, &category, &rate); err != nil {
			return nil, err
		}
		if table[country] == nil {
			table[country] = map[string]float64{}
		}
		table[country][category] = rate
	}
	return table, rows.Err()
}
