package memory

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/mrops-br/catalog-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func setup(t *testing.T, opts ...Option) (*ProductStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	store := NewProductStore(noop.NewTracerProvider().Tracer("test"), slog.New(slog.DiscardHandler), opts...)
	return store, clock
}

func widget(name string) domain.ProductData {
	return domain.ProductData{Name: name, Price: 9.99, Category: "Toys", Stock: 5}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestNewProductStoreDefaults(t *testing.T) {
	store, _ := setup(t)

	assert.Equal(t, "", store.SearchQuery())
	assert.Equal(t, 1, store.CurrentPage())
	assert.Equal(t, domain.ViewModeGrid, store.ViewMode())
	assert.Equal(t, 8, store.ItemsPerPage())
	assert.Empty(t, store.FindAll(context.Background()))
	assert.Equal(t, 0, store.TotalPages())
	assert.Empty(t, store.PaginatedProducts())
}

func TestAddProduct(t *testing.T) {
	ctx := context.Background()
	store, _ := setup(t)

	t.Run("assigns id and timestamp and keeps the payload", func(t *testing.T) {
		data := domain.ProductData{Name: "Lamp", Price: 12.345, Category: "Home & Garden", Stock: 3, Description: "bright"}
		p := store.AddProduct(ctx, data)

		assert.NotEmpty(t, p.ID)
		assert.False(t, p.CreatedAt.IsZero())
		assert.Equal(t, data, p.Data())
		assert.Equal(t, 12.345, p.Price)

		found, err := store.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p, found)
	})

	t.Run("inserts at the front", func(t *testing.T) {
		second := store.AddProduct(ctx, widget("Second"))
		all := store.FindAll(ctx)
		require.Len(t, all, 2)
		assert.Equal(t, second.ID, all[0].ID)
	})

	t.Run("resets the current page", func(t *testing.T) {
		store.SetCurrentPage(ctx, 4)
		store.AddProduct(ctx, widget("Third"))
		assert.Equal(t, 1, store.CurrentPage())
	})
}

func TestAddProductIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	store, _ := setup(t)

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		p := store.AddProduct(ctx, widget(fmt.Sprintf("W%d", i)))
		require.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
	assert.Equal(t, 200, store.Len())
}

func TestEditProduct(t *testing.T) {
	ctx := context.Background()
	store, _ := setup(t)
	original := store.AddProduct(ctx, widget("Widget"))

	t.Run("overwrites mutable fields and keeps identity", func(t *testing.T) {
		data := domain.ProductData{Name: "Renamed", Price: 1.5, Category: "Books", Stock: 0, Description: "new"}
		ok := store.EditProduct(ctx, original.ID, data)
		require.True(t, ok)

		edited, err := store.FindByID(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, original.ID, edited.ID)
		assert.Equal(t, original.CreatedAt, edited.CreatedAt)
		assert.Equal(t, data, edited.Data())
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		before := store.FindAll(ctx)
		ok := store.EditProduct(ctx, "missing", widget("Ghost"))
		assert.False(t, ok)
		assert.Equal(t, before, store.FindAll(ctx))
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	store, _ := setup(t)
	a := store.AddProduct(ctx, widget("A"))
	b := store.AddProduct(ctx, widget("B"))

	assert.True(t, store.DeleteProduct(ctx, a.ID))
	afterFirst := store.FindAll(ctx)

	assert.False(t, store.DeleteProduct(ctx, a.ID))
	assert.Equal(t, afterFirst, store.FindAll(ctx))
	assert.Equal(t, []string{b.ID}, ids(afterFirst))

	_, err := store.FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeleteDoesNotClampCurrentPage(t *testing.T) {
	ctx := context.Background()
	store, _ := setup(t)
	for i := 0; i < 9; i++ {
		store.AddProduct(ctx, widget(fmt.Sprintf("W%d", i)))
	}
	store.SetCurrentPage(ctx, 2)
	require.Len(t, store.PaginatedProducts(), 1)

	// page 2 holds the oldest product
	all := store.FindAll(ctx)
	store.DeleteProduct(ctx, all[len(all)-1].ID)

	assert.Equal(t, 2, store.CurrentPage())
	assert.Empty(t, store.PaginatedProducts())
	assert.Equal(t, 1, store.TotalPages())
}

func TestSetSearchQuery(t *testing.T) {
	ctx := context.Background()
	store, _ := setup(t)
	store.SetCurrentPage(ctx, 3)

	store.SetSearchQuery(ctx, "gear")

	assert.Equal(t, "gear", store.SearchQuery())
	assert.Equal(t, 1, store.CurrentPage())
}

func TestSetCurrentPageIsNotClamped(t *testing.T) {
	ctx := context.Background()
	store, _ := setup(t)
	store.AddProduct(ctx, widget("Only"))

	for _, page := range []int{0, -2, 2, 99} {
		store.SetCurrentPage(ctx, page)
		assert.Equal(t, page, store.CurrentPage())
		assert.Empty(t, store.PaginatedProducts(), "page %d", page)
	}
}

func TestSetViewMode(t *testing.T) {
	ctx := context.Background()
	store, _ := setup(t)
	store.SetCurrentPage(ctx, 2)

	store.SetViewMode(ctx, domain.ViewModeList)

	assert.Equal(t, domain.ViewModeList, store.ViewMode())
	assert.Equal(t, 2, store.CurrentPage())
}

func TestSnapshotPipeline(t *testing.T) {
	ctx := context.Background()
	store, _ := setup(t)
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("Widget %d", i)
		if i%2 == 1 {
			name = fmt.Sprintf("Gadget %d", i)
		}
		store.AddProduct(ctx, widget(name))
	}

	store.SetSearchQuery(ctx, "  WIDGET")
	view := store.Snapshot(ctx)
	assert.Equal(t, 0, view.FilteredCount, "untrimmed query must match literally")

	store.SetSearchQuery(ctx, "WIDGET")
	view = store.Snapshot(ctx)
	require.Equal(t, 10, view.FilteredCount)
	assert.Equal(t, 2, view.TotalPages)
	assert.Len(t, view.Items, 8)
	for i, p := range view.Filtered {
		assert.True(t, strings.Contains(strings.ToLower(p.Name), "widget"))
		if i > 0 {
			assert.False(t, p.CreatedAt.After(view.Filtered[i-1].CreatedAt))
		}
	}

	store.SetCurrentPage(ctx, 2)
	view = store.Snapshot(ctx)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, view.Filtered[8:], view.Items)
	assert.Equal(t, domain.PageSummary{Start: 9, End: 10, Total: 10}, view.Summary)
}

func TestSnapshotReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store, _ := setup(t)
	p := store.AddProduct(ctx, widget("Widget"))

	view := store.Snapshot(ctx)
	view.Items[0].Name = "Mutated"
	all := store.FindAll(ctx)
	all[0].Name = "Mutated too"

	found, err := store.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", found.Name)
}

func TestWithProductsAndIDGenerator(t *testing.T) {
	ctx := context.Background()
	seed := GenerateMockProducts(3, rand.New(rand.NewPCG(1, 2)), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	n := 0
	store, _ := setup(t,
		WithProducts(seed),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("custom-%d", n)
		}),
	)

	assert.Equal(t, ids(seed), ids(store.FindAll(ctx)))
	p := store.AddProduct(ctx, widget("New"))
	assert.Equal(t, "custom-1", p.ID)
	assert.Equal(t, p.ID, store.FilteredProducts()[0].ID)
}

func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	store, _ := setup(t)

	a := store.AddProduct(ctx, domain.ProductData{Name: "Widget", Price: 9.99, Category: "Toys", Stock: 5})
	b := store.AddProduct(ctx, domain.ProductData{Name: "Gadget", Price: 19.99, Category: "Toys", Stock: 0})

	assert.Equal(t, []string{b.ID, a.ID}, ids(store.FilteredProducts()))

	store.SetSearchQuery(ctx, "widget")
	assert.Equal(t, []string{a.ID}, ids(store.FilteredProducts()))
	assert.Equal(t, 1, store.TotalPages())
	assert.Equal(t, 1, store.CurrentPage())

	store.DeleteProduct(ctx, a.ID)
	assert.Empty(t, store.FilteredProducts())
	assert.Equal(t, 0, store.TotalPages())
}

func TestUnconstructedStorePanics(t *testing.T) {
	var zero ProductStore
	assert.PanicsWithValue(t, domain.ErrStoreNotInitialized, func() {
		zero.AddProduct(context.Background(), widget("X"))
	})

	var nilStore *ProductStore
	assert.PanicsWithValue(t, domain.ErrStoreNotInitialized, func() {
		nilStore.Snapshot(context.Background())
	})
}
