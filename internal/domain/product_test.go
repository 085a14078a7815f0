package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProductApplyKeepsIdentity(t *testing.T) {
	created := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	p := Product{ID: "prod-1", Name: "Old", Price: 1, Category: "Books", Stock: 1, CreatedAt: created}
	data := ProductData{Name: "New", Price: 2.5, Category: "Food", Stock: 7, Description: "tasty"}

	p.Apply(data)

	assert.Equal(t, "prod-1", p.ID)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, data, p.Data())
}

func TestStockStatus(t *testing.T) {
	assert.Equal(t, StockOut, Product{Stock: 0}.StockStatus())
	assert.Equal(t, StockLow, Product{Stock: 1}.StockStatus())
	assert.Equal(t, StockLow, Product{Stock: 19}.StockStatus())
	assert.Equal(t, StockIn, Product{Stock: 20}.StockStatus())
}

func TestCategoriesReturnsACopy(t *testing.T) {
	c := Categories()
	assert.Len(t, c, 8)
	c[0] = "Changed"
	assert.Equal(t, "Electronics", Categories()[0])
}
