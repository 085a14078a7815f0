package domain

import (
	"context"
)

// ProductStore defines the contract of the catalog state container: the
// product collection plus the view state the derived pages are computed from.
//
// Mutations never fail. EditProduct and DeleteProduct report whether a product
// matched, but an unknown id leaves the store unchanged and is not an error.
type ProductStore interface {
	AddProduct(ctx context.Context, data ProductData) Product
	EditProduct(ctx context.Context, id string, data ProductData) bool
	DeleteProduct(ctx context.Context, id string) bool
	FindByID(ctx context.Context, id string) (Product, error)
	FindAll(ctx context.Context) []Product
	Len() int

	SetSearchQuery(ctx context.Context, query string)
	SetCurrentPage(ctx context.Context, page int)
	SetViewMode(ctx context.Context, mode ViewMode)
	Snapshot(ctx context.Context) CatalogView
}
