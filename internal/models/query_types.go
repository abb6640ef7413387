// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeAllProducts QueryType = "all_products"
	QueryTypeProductByID QueryType = "product_by_id"
	QueryTypeAllTariffs  QueryType = "all_tariffs"
)
