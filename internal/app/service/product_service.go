package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mrops-br/catalog-api/internal/app/dto"
	"github.com/mrops-br/catalog-api/internal/app/validation"
	"github.com/mrops-br/catalog-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ProductService handles catalog use cases. It plays the form collaborator:
// payloads are validated here and only valid data reaches the store.
type ProductService struct {
	store                 domain.ProductStore
	validator             *validation.ProductValidator
	tracer                trace.Tracer
	logger                *slog.Logger
	productCreatedCounter metric.Int64Counter
	catalogOperations     metric.Int64Counter
}

// NewProductService creates a new product service
func NewProductService(
	store domain.ProductStore,
	validator *validation.ProductValidator,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	productCreatedCounter, _ := meter.Int64Counter(
		"catalog.products.created.total",
		metric.WithDescription("Total number of products created"),
	)

	catalogOperations, _ := meter.Int64Counter(
		"catalog.operations",
		metric.WithDescription("Total number of catalog operations"),
	)

	_, _ = meter.Int64ObservableGauge(
		"catalog.products.count",
		metric.WithDescription("Number of products currently in the catalog"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(store.Len()))
			return nil
		}),
	)

	return &ProductService{
		store:                 store,
		validator:             validator,
		tracer:                tracer,
		logger:                logger,
		productCreatedCounter: productCreatedCounter,
		catalogOperations:     catalogOperations,
	}
}

func (s *ProductService) record(ctx context.Context, operation, result string) {
	s.catalogOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

// validate runs the validator and records a rejected form on the span
func (s *ProductService) validate(ctx context.Context, span trace.Span, operation string, form validation.ProductForm) (domain.ProductData, error) {
	data, err := s.validator.Validate(form)
	if err == nil {
		return data, nil
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, "Validation failed")

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		s.logger.WarnContext(ctx, "Product form rejected",
			slog.String("operation", operation),
			slog.Any("fields", verrs.Fields()),
		)
		s.record(ctx, operation, "invalid")
	} else {
		s.logger.ErrorContext(ctx, "Product validation failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		s.record(ctx, operation, "failure")
	}
	return domain.ProductData{}, err
}

// CreateProduct validates form and adds the product to the catalog
func (s *ProductService) CreateProduct(ctx context.Context, form validation.ProductForm) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.CreateProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.name", form.Name))

	s.logger.InfoContext(ctx, "Creating product",
		slog.String("name", form.Name),
	)

	data, err := s.validate(ctx, span, "create", form)
	if err != nil {
		return nil, err
	}

	product := s.store.AddProduct(ctx, data)
	span.SetAttributes(attribute.String("product.id", product.ID))

	s.productCreatedCounter.Add(ctx, 1)
	s.record(ctx, "create", "success")

	s.logger.InfoContext(ctx, "Product created successfully",
		slog.String("product_id", product.ID),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return dto.ToProductResponse(product), nil
}

// UpdateProduct validates form and overwrites the product with id.
// The store ignores unknown ids; the service reports them as ErrProductNotFound.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, form validation.ProductForm) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.UpdateProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	data, err := s.validate(ctx, span, "update", form)
	if err != nil {
		return nil, err
	}

	if !s.store.EditProduct(ctx, id, data) {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		s.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", id),
		)
		s.record(ctx, "update", "not_found")
		return nil, domain.ErrProductNotFound
	}

	product, err := s.store.FindByID(ctx, id)
	if err != nil {
		// deleted between the edit and the read
		span.RecordError(err)
		s.record(ctx, "update", "not_found")
		return nil, err
	}

	s.record(ctx, "update", "success")
	s.logger.InfoContext(ctx, "Product updated successfully",
		slog.String("product_id", id),
	)

	span.SetStatus(codes.Ok, "Product updated successfully")
	return dto.ToProductResponse(product), nil
}

// DeleteProduct removes the product with id; deleting an unknown id succeeds
func (s *ProductService) DeleteProduct(ctx context.Context, id string) {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	removed := s.store.DeleteProduct(ctx, id)
	span.SetAttributes(attribute.Bool("product.removed", removed))

	result := "success"
	if !removed {
		result = "noop"
	}
	s.record(ctx, "delete", result)

	s.logger.InfoContext(ctx, "Product delete handled",
		slog.String("product_id", id),
		slog.Bool("removed", removed),
	)

	span.SetStatus(codes.Ok, "Product deleted")
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProductByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	product, err := s.store.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		s.record(ctx, "read", "not_found")
		return nil, err
	}

	s.record(ctx, "read", "success")
	span.SetStatus(codes.Ok, "Product retrieved successfully")
	return dto.ToProductResponse(product), nil
}

// ListAllProducts returns the raw collection in insertion order
func (s *ProductService) ListAllProducts(ctx context.Context) []*dto.ProductResponse {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListAllProducts")
	defer span.End()

	products := s.store.FindAll(ctx)
	span.SetAttributes(attribute.Int("product.count", len(products)))

	s.record(ctx, "list", "success")
	s.logger.InfoContext(ctx, "Products listed successfully",
		slog.Int("count", len(products)),
	)

	return dto.ToProductResponseList(products)
}

// CatalogView returns the current page of the catalog with its view state
func (s *ProductService) CatalogView(ctx context.Context) *dto.CatalogViewResponse {
	ctx, span := s.tracer.Start(ctx, "ProductService.CatalogView")
	defer span.End()

	view := s.store.Snapshot(ctx)
	span.SetAttributes(
		attribute.Int("catalog.filtered_count", view.FilteredCount),
		attribute.Int("catalog.page_size", len(view.Items)),
	)

	s.record(ctx, "view", "success")
	return dto.ToCatalogViewResponse(view)
}

// SetSearchQuery applies query immediately; debouncing keystrokes is up to the client
func (s *ProductService) SetSearchQuery(ctx context.Context, query string) *dto.CatalogViewResponse {
	ctx, span := s.tracer.Start(ctx, "ProductService.SetSearchQuery")
	defer span.End()

	s.store.SetSearchQuery(ctx, query)
	s.record(ctx, "search", "success")

	s.logger.InfoContext(ctx, "Search query set",
		slog.String("search_query", query),
	)

	return dto.ToCatalogViewResponse(s.store.Snapshot(ctx))
}

// SetCurrentPage moves to page without clamping it to the available pages
func (s *ProductService) SetCurrentPage(ctx context.Context, page int) *dto.CatalogViewResponse {
	ctx, span := s.tracer.Start(ctx, "ProductService.SetCurrentPage")
	defer span.End()

	s.store.SetCurrentPage(ctx, page)
	view := s.store.Snapshot(ctx)

	if page < 1 || page > view.TotalPages {
		s.logger.WarnContext(ctx, "Current page is outside the catalog",
			slog.Int("current_page", page),
			slog.Int("total_pages", view.TotalPages),
		)
	}
	s.record(ctx, "paginate", "success")

	return dto.ToCatalogViewResponse(view)
}

// SetViewMode parses and applies a display mode
func (s *ProductService) SetViewMode(ctx context.Context, raw string) (*dto.CatalogViewResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.SetViewMode")
	defer span.End()

	mode, err := domain.ParseViewMode(raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid view mode")
		s.logger.WarnContext(ctx, "Invalid view mode",
			slog.String("view_mode", raw),
		)
		s.record(ctx, "view_mode", "invalid")
		return nil, err
	}

	s.store.SetViewMode(ctx, mode)
	s.record(ctx, "view_mode", "success")

	return dto.ToCatalogViewResponse(s.store.Snapshot(ctx)), nil
}

// Categories returns the category set offered to product forms
func (s *ProductService) Categories() []string {
	return domain.Categories()
}
