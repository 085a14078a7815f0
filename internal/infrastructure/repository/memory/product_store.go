package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mrops-br/catalog-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProductStore is the in-memory implementation of domain.ProductStore.
// It owns the product collection and the view state; every read hands out copies.
type ProductStore struct {
	mu       sync.RWMutex
	products []domain.Product
	state    domain.ViewState

	newID  func() string
	now    func() time.Time
	tracer trace.Tracer
	logger *slog.Logger
	ready  bool
}

// Option configures a ProductStore
type Option func(*ProductStore)

// WithClock overrides the clock used to stamp CreatedAt
func WithClock(now func() time.Time) Option {
	return func(s *ProductStore) {
		s.now = now
	}
}

// WithIDGenerator overrides the id generator used by AddProduct
func WithIDGenerator(newID func() string) Option {
	return func(s *ProductStore) {
		s.newID = newID
	}
}

// WithProducts preloads the collection, keeping the given order
func WithProducts(products []domain.Product) Option {
	return func(s *ProductStore) {
		s.products = slices.Clone(products)
	}
}

// NewProductStore creates a new in-memory product store
func NewProductStore(tracer trace.Tracer, logger *slog.Logger, opts ...Option) *ProductStore {
	s := &ProductStore{
		products: []domain.Product{},
		state: domain.ViewState{
			CurrentPage:  1,
			ViewMode:     domain.ViewModeGrid,
			ItemsPerPage: domain.ItemsPerPage,
		},
		newID:  uuid.NewString,
		now:    time.Now,
		tracer: tracer,
		logger: logger,
		ready:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// mustBeReady panics when the store did not come from NewProductStore.
// Using such a store is a wiring bug, not a runtime condition.
func (s *ProductStore) mustBeReady() {
	if s == nil || !s.ready {
		panic(domain.ErrStoreNotInitialized)
	}
}

// AddProduct stores a new product at the front of the collection and resets
// the current page to 1 so the new product is visible right away.
func (s *ProductStore) AddProduct(ctx context.Context, data domain.ProductData) domain.Product {
	s.mustBeReady()
	ctx, span := s.tracer.Start(ctx, "ProductStore.AddProduct")
	defer span.End()

	product := domain.Product{
		ID:        s.newID(),
		CreatedAt: s.now(),
	}
	product.Apply(data)

	s.mu.Lock()
	s.products = slices.Insert(s.products, 0, product)
	s.state.CurrentPage = 1
	s.mu.Unlock()

	span.SetAttributes(
		attribute.String("product.id", product.ID),
		attribute.String("product.name", product.Name),
	)

	s.logger.InfoContext(ctx, "Product added to store",
		slog.String("product_id", product.ID),
		slog.String("product_name", product.Name),
	)

	span.SetStatus(codes.Ok, "Product added")
	return product
}

// EditProduct replaces the mutable fields of the product with id.
// It is a no-op returning false when no product matches.
func (s *ProductStore) EditProduct(ctx context.Context, id string, data domain.ProductData) bool {
	s.mustBeReady()
	ctx, span := s.tracer.Start(ctx, "ProductStore.EditProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	s.mu.Lock()
	i := s.indexOf(id)
	if i >= 0 {
		s.products[i].Apply(data)
	}
	s.mu.Unlock()

	if i < 0 {
		s.logger.DebugContext(ctx, "Edit ignored, product not in store",
			slog.String("product_id", id),
		)
		span.SetAttributes(attribute.Bool("product.found", false))
		return false
	}

	s.logger.InfoContext(ctx, "Product edited in store",
		slog.String("product_id", id),
	)

	span.SetStatus(codes.Ok, "Product edited")
	return true
}

// DeleteProduct removes the product with id. Deleting an unknown id is a no-op
// returning false, so repeated deletes are harmless.
func (s *ProductStore) DeleteProduct(ctx context.Context, id string) bool {
	s.mustBeReady()
	ctx, span := s.tracer.Start(ctx, "ProductStore.DeleteProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	s.mu.Lock()
	i := s.indexOf(id)
	if i >= 0 {
		s.products = slices.Delete(s.products, i, i+1)
	}
	s.mu.Unlock()

	if i < 0 {
		s.logger.DebugContext(ctx, "Delete ignored, product not in store",
			slog.String("product_id", id),
		)
		span.SetAttributes(attribute.Bool("product.found", false))
		return false
	}

	s.logger.InfoContext(ctx, "Product deleted from store",
		slog.String("product_id", id),
	)

	span.SetStatus(codes.Ok, "Product deleted")
	return true
}

// FindByID retrieves a product by ID
func (s *ProductStore) FindByID(ctx context.Context, id string) (domain.Product, error) {
	s.mustBeReady()
	ctx, span := s.tracer.Start(ctx, "ProductStore.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		s.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", id),
		)
		return domain.Product{}, domain.ErrProductNotFound
	}

	span.SetStatus(codes.Ok, "Product found")
	return s.products[i], nil
}

// FindAll returns the raw collection in insertion order (newest insert first)
func (s *ProductStore) FindAll(ctx context.Context) []domain.Product {
	s.mustBeReady()
	ctx, span := s.tracer.Start(ctx, "ProductStore.FindAll")
	defer span.End()

	s.mu.RLock()
	products := slices.Clone(s.products)
	s.mu.RUnlock()

	span.SetAttributes(attribute.Int("product.count", len(products)))

	s.logger.DebugContext(ctx, "Products retrieved from store",
		slog.Int("count", len(products)),
	)

	return products
}

// Len returns the number of products held
func (s *ProductStore) Len() int {
	s.mustBeReady()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// SetSearchQuery replaces the search query and resets the current page to 1,
// since the previous page number means nothing against a new filter.
func (s *ProductStore) SetSearchQuery(ctx context.Context, query string) {
	s.mustBeReady()
	ctx, span := s.tracer.Start(ctx, "ProductStore.SetSearchQuery")
	defer span.End()

	span.SetAttributes(attribute.String("catalog.search_query", query))

	s.mu.Lock()
	s.state.SearchQuery = query
	s.state.CurrentPage = 1
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "Search query updated",
		slog.String("search_query", query),
	)
}

// SetCurrentPage stores page as given. It is not clamped: a page past the
// last one simply reads back as an empty page.
func (s *ProductStore) SetCurrentPage(ctx context.Context, page int) {
	s.mustBeReady()
	ctx, span := s.tracer.Start(ctx, "ProductStore.SetCurrentPage")
	defer span.End()

	span.SetAttributes(attribute.Int("catalog.current_page", page))

	s.mu.Lock()
	s.state.CurrentPage = page
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "Current page updated",
		slog.Int("current_page", page),
	)
}

// SetViewMode replaces the view mode
func (s *ProductStore) SetViewMode(ctx context.Context, mode domain.ViewMode) {
	s.mustBeReady()
	ctx, span := s.tracer.Start(ctx, "ProductStore.SetViewMode")
	defer span.End()

	span.SetAttributes(attribute.String("catalog.view_mode", string(mode)))

	s.mu.Lock()
	s.state.ViewMode = mode
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "View mode updated",
		slog.String("view_mode", string(mode)),
	)
}

// Snapshot computes the derived catalog view from one consistent read of the
// collection and view state.
func (s *ProductStore) Snapshot(ctx context.Context) domain.CatalogView {
	s.mustBeReady()
	_, span := s.tracer.Start(ctx, "ProductStore.Snapshot")
	defer span.End()

	s.mu.RLock()
	view := domain.BuildCatalogView(s.products, s.state)
	s.mu.RUnlock()

	span.SetAttributes(
		attribute.Int("catalog.filtered_count", view.FilteredCount),
		attribute.Int("catalog.total_pages", view.TotalPages),
		attribute.Int("catalog.current_page", view.CurrentPage),
	)

	return view
}

func (s *ProductStore) SearchQuery() string {
	s.mustBeReady()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.SearchQuery
}

func (s *ProductStore) CurrentPage() int {
	s.mustBeReady()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentPage
}

func (s *ProductStore) ViewMode() domain.ViewMode {
	s.mustBeReady()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ViewMode
}

func (s *ProductStore) ItemsPerPage() int {
	s.mustBeReady()
	return s.state.ItemsPerPage
}

// FilteredProducts returns the products matching the search query, newest first
func (s *ProductStore) FilteredProducts() []domain.Product {
	return s.Snapshot(context.Background()).Filtered
}

func (s *ProductStore) TotalPages() int {
	return s.Snapshot(context.Background()).TotalPages
}

// PaginatedProducts returns the current page of the filtered products
func (s *ProductStore) PaginatedProducts() []domain.Product {
	return s.Snapshot(context.Background()).Items
}

// indexOf must be called with s.mu held
func (s *ProductStore) indexOf(id string) int {
	return slices.IndexFunc(s.products, func(p domain.Product) bool {
		return p.ID == id
	})
}
