package memory

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/mrops-br/catalog-api/internal/domain"
)

var (
	mockAdjectives = []string{"Premium", "Classic", "Modern", "Vintage", "Deluxe", "Essential", "Pro", "Ultra"}
	mockNouns      = []string{"Widget", "Gadget", "Device", "Tool", "Item", "Product", "Gear", "Accessory"}
)

const mockCreatedWindow = 30 * 24 * time.Hour

// GenerateMockProducts builds n demo products with ids prod-1..prod-n,
// created at random moments within the 30 days before now.
func GenerateMockProducts(n int, rnd *rand.Rand, now time.Time) []domain.Product {
	categories := domain.Categories()
	products := make([]domain.Product, 0, max(n, 0))

	for i := 0; i < n; i++ {
		noun := mockNouns[i%len(mockNouns)]
		products = append(products, domain.Product{
			ID:       fmt.Sprintf("prod-%d", i+1),
			Name:     fmt.Sprintf("%s %s %d", mockAdjectives[i%len(mockAdjectives)], noun, i+1),
			Price:    math.Round((rnd.Float64()*500+10)*100) / 100,
			Category: categories[i%len(categories)],
			Stock:    rnd.IntN(200),
			Description: fmt.Sprintf(
				"High-quality %s designed for everyday use. Perfect for those who appreciate quality and functionality.",
				strings.ToLower(noun),
			),
			CreatedAt: now.Add(-time.Duration(rnd.Int64N(int64(mockCreatedWindow)))),
		})
	}

	return products
}
