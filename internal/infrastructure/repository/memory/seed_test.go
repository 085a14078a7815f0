package memory

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/mrops-br/catalog-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMockProducts(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	products := GenerateMockProducts(24, rand.New(rand.NewPCG(7, 7)), now)

	require.Len(t, products, 24)
	assert.Equal(t, "prod-1", products[0].ID)
	assert.Equal(t, "Premium Widget 1", products[0].Name)
	assert.Equal(t, "Electronics", products[0].Category)
	assert.Equal(t, "Ultra Accessory 8", products[7].Name)
	assert.Equal(t, "Premium Widget 9", products[8].Name)

	seen := map[string]bool{}
	for _, p := range products {
		assert.False(t, seen[p.ID])
		seen[p.ID] = true

		assert.GreaterOrEqual(t, p.Price, 10.0)
		assert.LessOrEqual(t, p.Price, 510.0)
		assert.InDelta(t, p.Price*100, float64(int64(p.Price*100+0.5)), 1e-6)
		assert.GreaterOrEqual(t, p.Stock, 0)
		assert.Less(t, p.Stock, 200)
		assert.Contains(t, domain.Categories(), p.Category)
		assert.False(t, p.CreatedAt.After(now))
		assert.True(t, p.CreatedAt.After(now.Add(-mockCreatedWindow-time.Second)))
	}
}

func TestGenerateMockProductsIsDeterministicForASeed(t *testing.T) {
	now := time.Now()
	a := GenerateMockProducts(5, rand.New(rand.NewPCG(1, 1)), now)
	b := GenerateMockProducts(5, rand.New(rand.NewPCG(1, 1)), now)
	assert.Equal(t, a, b)
	assert.Empty(t, GenerateMockProducts(0, rand.New(rand.NewPCG(1, 1)), now))
}
