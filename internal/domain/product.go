package domain

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrStoreNotInitialized = errors.New("product store used before it was constructed with NewProductStore")
)

// LowStockThreshold is the stock level under which a product counts as running low.
const LowStockThreshold = 20

// Product represents the product entity
type Product struct {
	ID          string
	Name        string
	Price       float64
	Category    string
	Stock       int
	Description string
	CreatedAt   time.Time
}

// ProductData holds the client-supplied fields of a product, i.e. everything
// except the store-assigned ID and CreatedAt.
type ProductData struct {
	Name        string
	Price       float64
	Category    string
	Stock       int
	Description string
}

// Apply overwrites the mutable fields of the product with data.
// ID and CreatedAt are left untouched.
func (p *Product) Apply(data ProductData) {
	p.Name = data.Name
	p.Price = data.Price
	p.Category = data.Category
	p.Stock = data.Stock
	p.Description = data.Description
}

// Data returns the mutable fields of the product.
func (p Product) Data() ProductData {
	return ProductData{
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Stock:       p.Stock,
		Description: p.Description,
	}
}

type StockStatus string

const (
	StockOut StockStatus = "out"
	StockLow StockStatus = "low"
	StockIn  StockStatus = "in"
)

// StockStatus classifies the product's stock level
func (p Product) StockStatus() StockStatus {
	switch {
	case p.Stock <= 0:
		return StockOut
	case p.Stock < LowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}

var categories = []string{
	"Electronics",
	"Clothing",
	"Home & Garden",
	"Sports",
	"Books",
	"Toys",
	"Beauty",
	"Food",
}

// Categories returns the catalog's category set. The store does not enforce
// membership; it is offered to clients building product forms.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}
